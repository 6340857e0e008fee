package repository

import (
	"context"

	"sakay/internal/domain"
)

// UserRepository defines the persistence operations for rider accounts.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByContact retrieves a user by email or phone.
	GetByContact(ctx context.Context, identifier string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user.
	Delete(ctx context.Context, id string) error
}
