package memory

import (
	"context"
	"strings"
	"sync"

	"sakay/internal/domain"
	"sakay/internal/repository"
)

// PartnerRepository is a mutex-guarded in-memory implementation of
// repository.PartnerRepository.
type PartnerRepository struct {
	mu       sync.RWMutex
	partners map[string]*domain.Partner
}

// NewPartnerRepository creates an empty in-memory partner repository.
func NewPartnerRepository() *PartnerRepository {
	return &PartnerRepository{partners: make(map[string]*domain.Partner)}
}

var _ repository.PartnerRepository = (*PartnerRepository)(nil)

func (r *PartnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *partner
	r.partners[partner.ID] = &c
	return nil
}

func (r *PartnerRepository) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	partner, ok := r.partners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *partner
	return &c, nil
}

func (r *PartnerRepository) GetByContact(ctx context.Context, identifier string) (*domain.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.partners {
		if strings.EqualFold(p.Email, identifier) || p.Phone == identifier {
			c := *p
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PartnerRepository) GetAll(ctx context.Context) ([]*domain.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		c := *p
		result = append(result, &c)
	}
	return result, nil
}

func (r *PartnerRepository) Update(ctx context.Context, partner *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.partners[partner.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *partner
	r.partners[partner.ID] = &c
	return nil
}

func (r *PartnerRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.partners[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.partners, id)
	return nil
}
