package domain

import "time"

// Partner represents a driver, professional, or asset owner fulfilling jobs.
type Partner struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Avatar       string
	Rating       float64
	Balance      float64
	Status       AccountStatus
	JoinDate     time.Time
	VehicleType  ServiceType // service category this partner fulfils
	VehicleModel string
	PlateNumber  string
	IsOnline     bool    // gates job-matching eligibility
	TotalEarnings float64 // monotonically non-decreasing

	// Professional-service pricing.
	ServiceRate     float64
	ServiceCategory string

	// Rental owner pricing.
	RentalPrice float64
	CarWashFee  float64

	// Stay owner pricing.
	StayPrice float64
}
