package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending    RideStatus = "PENDING"
	RideStatusAccepted   RideStatus = "ACCEPTED"
	RideStatusArrived    RideStatus = "ARRIVED"
	RideStatusInProgress RideStatus = "IN_PROGRESS"
	RideStatusCompleted  RideStatus = "COMPLETED"
	RideStatusCancelled  RideStatus = "CANCELLED"
)

// IsTerminal reports whether the status is final.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// ServiceType represents the category of service a ride covers.
type ServiceType string

const (
	ServiceTransportCar  ServiceType = "TRANSPORT_CAR"
	ServiceTransportBike ServiceType = "TRANSPORT_BIKE"
	ServiceErrand        ServiceType = "ERRAND"
	ServiceProfessional  ServiceType = "PROFESSIONAL_SERVICE"
	ServiceRental        ServiceType = "RENTAL"
	ServiceStay          ServiceType = "STAY"
)

// PaymentMethod represents how a ride is paid.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

// RateType represents the billing basis for professional-service jobs.
type RateType string

const (
	RateHourly      RateType = "HOURLY"
	RateDaily       RateType = "DAILY"
	RateWeekly      RateType = "WEEKLY"
	RateSemiMonthly RateType = "SEMI_MONTHLY"
	RateMonthly     RateType = "MONTHLY"
	RateLumpSum     RateType = "LUMP_SUM"
)

// VehicleCategory represents the rental pricing tier of a vehicle.
type VehicleCategory string

const (
	CategorySedan     VehicleCategory = "SEDAN"
	CategorySUV       VehicleCategory = "SUV"
	CategoryVanPickup VehicleCategory = "VAN_PICKUP"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64
	Lng float64
}

// Ride is the unit-of-work entity covering rides, errands, rentals, stays,
// and professional-service bookings.
type Ride struct {
	ID                string
	UserID            string
	UserName          string
	DriverID          string // bound once at accept, immutable afterward
	DriverName        string
	Origin            string
	Destination       string
	OriginCoords      Point
	DestinationCoords Point
	ServiceType       ServiceType
	Status            RideStatus
	Fare              float64 // frozen at creation, never recomputed
	Tip               float64 // additive only
	PaymentMethod     PaymentMethod
	CreatedAt         time.Time

	// Errand specific.
	ErrandItems string

	// Professional-service specific.
	ServiceDescription string
	ServiceCategory    string
	RateType           RateType
	Duration           int

	// Priority booking (bike transport).
	IsPriority bool

	// Rental specific.
	RentalVehicle  string
	RentalDays     int
	IsOutsideCity  bool
	WithDriver     bool
	IncludeCarWash bool
	CarWashFee     float64

	// Stay specific.
	StayTitle    string
	CheckInDate  time.Time
	CheckOutDate time.Time
	StayNights   int

	// Advance booking.
	IsAdvanceBooking bool
	ScheduledDate    string
}
