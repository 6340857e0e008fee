package repository

import (
	"context"

	"sakay/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetAll retrieves all rides, newest first.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// GetActiveByUserID retrieves the non-terminal ride for a rider.
	// Returns nil if the rider has no active ride.
	GetActiveByUserID(ctx context.Context, userID string) (*domain.Ride, error)

	// GetActiveByDriverID retrieves the non-terminal ride for a partner.
	// Returns nil if the partner has no active ride.
	GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Ride, error)

	// Update updates an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error

	// DeleteAll removes every ride. Used by the demo reset.
	DeleteAll(ctx context.Context) error
}
