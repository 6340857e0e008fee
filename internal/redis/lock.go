package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquirePartnerLock attempts to acquire a lock for the given partner while
// a ride acceptance is in flight. Returns true if the lock was acquired,
// false if already held.
func (s *LockStore) AcquirePartnerLock(ctx context.Context, partnerID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:partner:%s", partnerID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleasePartnerLock releases the lock for the given partner.
func (s *LockStore) ReleasePartnerLock(ctx context.Context, partnerID string) error {
	key := fmt.Sprintf("lock:partner:%s", partnerID)

	return s.client.Del(ctx, key).Err()
}
