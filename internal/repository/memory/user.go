package memory

import (
	"context"
	"strings"
	"sync"

	"sakay/internal/domain"
	"sakay/internal/repository"
)

// UserRepository is a mutex-guarded in-memory implementation of
// repository.UserRepository. All state lives in memory and resets on restart.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

// Ensure the interface is implemented.
var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *user
	return &c, nil
}

func (r *UserRepository) GetByContact(ctx context.Context, identifier string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, identifier) || u.Phone == identifier {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		result = append(result, &c)
	}
	return result, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
