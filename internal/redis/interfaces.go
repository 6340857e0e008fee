package redis

import (
	"context"
	"time"
)

// PositionStoreInterface defines the interface for partner position operations.
type PositionStoreInterface interface {
	SetPosition(ctx context.Context, partnerID string, lat, lng float64) error
	GetPosition(ctx context.Context, partnerID string) (*PartnerPosition, error)
	FindNearbyPartners(ctx context.Context, lat, lng, radiusKm float64) ([]PartnerPosition, error)
	GetAllPositions(ctx context.Context) ([]PartnerPosition, error)
	RemovePosition(ctx context.Context, partnerID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquirePartnerLock(ctx context.Context, partnerID string, ttl time.Duration) (bool, error)
	ReleasePartnerLock(ctx context.Context, partnerID string) error
}

// CacheStoreInterface defines the interface for partner summary caching.
type CacheStoreInterface interface {
	GetPartner(ctx context.Context, partnerID string) (*CachedPartner, error)
	SetPartner(ctx context.Context, partner *CachedPartner) error
	InvalidatePartner(ctx context.Context, partnerID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ PositionStoreInterface = (*PositionStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ CacheStoreInterface    = (*CacheStore)(nil)
)
