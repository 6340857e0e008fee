package repository

import (
	"context"

	"sakay/internal/domain"
)

// PartnerRepository defines the persistence operations for partner accounts.
type PartnerRepository interface {
	// Create adds a new partner.
	Create(ctx context.Context, partner *domain.Partner) error

	// GetByID retrieves a partner by ID.
	GetByID(ctx context.Context, id string) (*domain.Partner, error)

	// GetByContact retrieves a partner by email or phone.
	GetByContact(ctx context.Context, identifier string) (*domain.Partner, error)

	// GetAll retrieves all partners.
	GetAll(ctx context.Context) ([]*domain.Partner, error)

	// Update updates an existing partner.
	Update(ctx context.Context, partner *domain.Partner) error

	// Delete removes a partner.
	Delete(ctx context.Context, id string) error
}
