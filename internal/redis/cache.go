package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles partner entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// PartnerCacheTTL is short because online status flips frequently.
const PartnerCacheTTL = 30 * time.Second

const partnerCachePrefix = "cache:partner:"

// CachedPartner represents a cached partner entity.
type CachedPartner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	VehicleType string `json:"vehicle_type"`
	IsOnline    bool   `json:"is_online"`
}

// GetPartner retrieves a partner from cache.
func (s *CacheStore) GetPartner(ctx context.Context, partnerID string) (*CachedPartner, error) {
	key := partnerCachePrefix + partnerID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var partner CachedPartner
	if err := json.Unmarshal(data, &partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

// SetPartner stores a partner in cache.
func (s *CacheStore) SetPartner(ctx context.Context, partner *CachedPartner) error {
	key := partnerCachePrefix + partner.ID
	data, err := json.Marshal(partner)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, PartnerCacheTTL).Err()
}

// InvalidatePartner removes a partner from cache.
func (s *CacheStore) InvalidatePartner(ctx context.Context, partnerID string) error {
	key := partnerCachePrefix + partnerID
	return s.client.Del(ctx, key).Err()
}
