package domain

import "time"

// Receipt is the settlement breakdown issued when a ride completes.
type Receipt struct {
	ID            string
	RideID        string
	UserID        string
	DriverID      string
	ServiceType   ServiceType
	Fare          float64
	Commission    float64 // platform cut deducted from the partner
	NetToPartner  float64 // fare minus commission
	Tip           float64
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}
