package memory

import (
	"context"
	"sync"

	"sakay/internal/domain"
	"sakay/internal/repository"
)

// RideRepository is a mutex-guarded in-memory implementation of
// repository.RideRepository. Insertion order is tracked so listings come
// back newest first.
type RideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride
	order []string // ride IDs in insertion order
}

// NewRideRepository creates an empty in-memory ride repository.
func NewRideRepository() *RideRepository {
	return &RideRepository{rides: make(map[string]*domain.Ride)}
}

var _ repository.RideRepository = (*RideRepository)(nil)

func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *ride
	r.rides[ride.ID] = &c
	r.order = append(r.order, ride.ID)
	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ride, ok := r.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *ride
	return &c, nil
}

func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Ride, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if ride, ok := r.rides[r.order[i]]; ok {
			c := *ride
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *RideRepository) GetActiveByUserID(ctx context.Context, userID string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ride := range r.rides {
		if ride.UserID == userID && !ride.Status.IsTerminal() {
			c := *ride
			return &c, nil
		}
	}
	return nil, nil
}

func (r *RideRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ride := range r.rides {
		if ride.DriverID == driverID && !ride.Status.IsTerminal() {
			c := *ride
			return &c, nil
		}
	}
	return nil, nil
}

func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *ride
	r.rides[ride.ID] = &c
	return nil
}

func (r *RideRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rides = make(map[string]*domain.Ride)
	r.order = nil
	return nil
}
