package service

import (
	"math"
	"strings"
	"time"

	"sakay/internal/domain"
)

// FareConfig contains the tunable pricing constants. The shape of each
// formula is fixed; only the constants are externalized.
type FareConfig struct {
	CarBaseFare   float64 // first-kilometer fare for car transport
	CarPerKmRate  float64 // per-km rate beyond the first km
	BikeBaseFare  float64
	BikePerKmRate float64
	PriorityFee   float64 // flat surcharge for priority bike bookings
	ErrandFee     float64 // flat fee for errand jobs, distance-independent
	DriverFee     float64 // per-day fee when a rental includes a driver

	// Rental day rates by vehicle category, in-city and outside-city.
	SedanDayRate        float64
	SedanDayRateOut     float64
	SUVDayRate          float64
	SUVDayRateOut       float64
	VanPickupDayRate    float64
	VanPickupDayRateOut float64
}

// DefaultFareConfig returns the platform's default pricing constants.
func DefaultFareConfig() FareConfig {
	return FareConfig{
		CarBaseFare:   40,
		CarPerKmRate:  35,
		BikeBaseFare:  10,
		BikePerKmRate: 15,
		PriorityFee:   20,
		ErrandFee:     150,
		DriverFee:     800,

		SedanDayRate:        1500,
		SedanDayRateOut:     2000,
		SUVDayRate:          2000,
		SUVDayRateOut:       2500,
		VanPickupDayRate:    2800,
		VanPickupDayRateOut: 3500,
	}
}

// FareRequest carries the service-specific parameters read at quote time.
type FareRequest struct {
	ServiceType domain.ServiceType

	// Transport.
	DistanceKm float64
	IsPriority bool

	// Professional service.
	RateType    domain.RateType
	Duration    int
	ServiceRate float64 // selected professional's rate; zero means none chosen

	// Rental.
	VehicleModel   string
	RentalDays     int
	IsOutsideCity  bool
	WithDriver     bool
	IncludeCarWash bool
	CarWashFee     float64

	// Stay.
	NightlyPrice float64
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// FareCalculator maps a service request's parameters to a monetary amount.
// Pure and deterministic: no side effects, no clock reads.
type FareCalculator struct {
	config FareConfig
}

// NewFareCalculator creates a FareCalculator with the given constants.
func NewFareCalculator(config FareConfig) *FareCalculator {
	return &FareCalculator{config: config}
}

// ComputeFare computes the quote for a service request. The result is
// rounded up to the nearest whole currency unit so the platform never
// under-collects on fractional amounts. Missing required parameters yield
// ErrIncompleteQuote.
func (c *FareCalculator) ComputeFare(req FareRequest) (float64, error) {
	var fare float64

	switch req.ServiceType {
	case domain.ServiceTransportCar:
		if req.DistanceKm <= 0 {
			return 0, ErrIncompleteQuote
		}
		fare = c.distanceFare(req.DistanceKm, c.config.CarBaseFare, c.config.CarPerKmRate)

	case domain.ServiceTransportBike:
		if req.DistanceKm <= 0 {
			return 0, ErrIncompleteQuote
		}
		fare = c.distanceFare(req.DistanceKm, c.config.BikeBaseFare, c.config.BikePerKmRate)
		if req.IsPriority {
			fare += c.config.PriorityFee
		}

	case domain.ServiceErrand:
		fare = c.config.ErrandFee

	case domain.ServiceProfessional:
		if req.ServiceRate <= 0 {
			return 0, ErrIncompleteQuote
		}
		if req.RateType == domain.RateLumpSum {
			// Negotiated lump sum; duration is ignored.
			fare = req.ServiceRate
		} else {
			if req.Duration < 1 {
				return 0, ErrIncompleteQuote
			}
			fare = req.ServiceRate * float64(req.Duration)
		}

	case domain.ServiceRental:
		if req.VehicleModel == "" || req.RentalDays < 1 {
			return 0, ErrIncompleteQuote
		}
		dayRate := c.rentalDayRate(ClassifyVehicle(req.VehicleModel), req.IsOutsideCity)
		if req.WithDriver {
			dayRate += c.config.DriverFee
		}
		fare = dayRate * float64(req.RentalDays)
		if req.IncludeCarWash {
			fare += req.CarWashFee
		}

	case domain.ServiceStay:
		nights := StayNights(req.CheckInDate, req.CheckOutDate)
		if nights < 1 || req.NightlyPrice <= 0 {
			return 0, ErrIncompleteQuote
		}
		fare = req.NightlyPrice * float64(nights)

	default:
		return 0, ErrInvalidServiceType
	}

	return math.Ceil(fare), nil
}

// distanceFare charges the base for the first kilometer and a linear rate
// beyond it.
func (c *FareCalculator) distanceFare(distanceKm, base, perKm float64) float64 {
	if distanceKm <= 1 {
		return base
	}
	return base + (distanceKm-1)*perKm
}

// rentalDayRate returns the daily rate for a vehicle category.
func (c *FareCalculator) rentalDayRate(category domain.VehicleCategory, outsideCity bool) float64 {
	switch category {
	case domain.CategorySUV:
		if outsideCity {
			return c.config.SUVDayRateOut
		}
		return c.config.SUVDayRate
	case domain.CategoryVanPickup:
		if outsideCity {
			return c.config.VanPickupDayRateOut
		}
		return c.config.VanPickupDayRate
	default:
		if outsideCity {
			return c.config.SedanDayRateOut
		}
		return c.config.SedanDayRate
	}
}

// ClassifyVehicle infers the rental pricing tier from the vehicle's
// free-text model description. This is a keyword heuristic carried over
// from the booking flow and can misclassify unusual model names; sedan is
// the fallback tier.
func ClassifyVehicle(model string) domain.VehicleCategory {
	upper := strings.ToUpper(model)
	switch {
	case strings.Contains(upper, "SUV"):
		return domain.CategorySUV
	case strings.Contains(upper, "VAN"),
		strings.Contains(upper, "HILUX"),
		strings.Contains(upper, "PICK"):
		return domain.CategoryVanPickup
	default:
		return domain.CategorySedan
	}
}

// StayNights derives the billable night count from a check-in/check-out
// range: the ceiling of the whole-day difference. Zero or negative ranges
// yield zero nights, which is an invalid quote.
func StayNights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return 0
	}
	diff := checkOut.Sub(checkIn)
	return int(math.Ceil(diff.Hours() / 24))
}
