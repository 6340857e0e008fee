package domain

import "time"

// User represents a rider account in the system.
type User struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Avatar   string
	Rating   float64
	Balance  float64
	Status   AccountStatus
	JoinDate time.Time
}
