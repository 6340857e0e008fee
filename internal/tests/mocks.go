package tests

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"sakay/internal/redis"
	"sakay/internal/service"
)

// ──────────────────────────────────────────────
// MOCK POSITION STORE
// ──────────────────────────────────────────────

// MockPositionStore is an in-memory implementation of PositionStoreInterface.
type MockPositionStore struct {
	mu        sync.RWMutex
	positions map[string]redis.PartnerPosition

	// Counters for verification
	SetPositionCallCount int32

	// Error injection
	SetPositionError error
	GetPositionError error
}

// NewMockPositionStore creates a new mock position store.
func NewMockPositionStore() *MockPositionStore {
	return &MockPositionStore{
		positions: make(map[string]redis.PartnerPosition),
	}
}

func (m *MockPositionStore) SetPosition(ctx context.Context, partnerID string, lat, lng float64) error {
	atomic.AddInt32(&m.SetPositionCallCount, 1)
	if m.SetPositionError != nil {
		return m.SetPositionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[partnerID] = redis.PartnerPosition{PartnerID: partnerID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockPositionStore) GetPosition(ctx context.Context, partnerID string) (*redis.PartnerPosition, error) {
	if m.GetPositionError != nil {
		return nil, m.GetPositionError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.positions[partnerID]
	if !ok {
		return nil, nil
	}
	copy := pos
	return &copy, nil
}

func (m *MockPositionStore) FindNearbyPartners(ctx context.Context, lat, lng, radiusKm float64) ([]redis.PartnerPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Rough degree-based cut-off, close enough for tests.
	radiusDeg := radiusKm / 111.0
	result := make([]redis.PartnerPosition, 0)
	for _, pos := range m.positions {
		dLat := pos.Lat - lat
		dLng := pos.Lng - lng
		if math.Sqrt(dLat*dLat+dLng*dLng) <= radiusDeg {
			result = append(result, pos)
		}
	}
	return result, nil
}

func (m *MockPositionStore) GetAllPositions(ctx context.Context) ([]redis.PartnerPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]redis.PartnerPosition, 0, len(m.positions))
	for _, pos := range m.positions {
		result = append(result, pos)
	}
	return result, nil
}

func (m *MockPositionStore) RemovePosition(ctx context.Context, partnerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, partnerID)
	return nil
}

// Position returns the stored position for test assertions.
func (m *MockPositionStore) Position(partnerID string) (redis.PartnerPosition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.positions[partnerID]
	return pos, ok
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu   sync.Mutex
	held map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquirePartnerLock(ctx context.Context, partnerID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[partnerID] {
		return false, nil
	}
	m.held[partnerID] = true
	return true, nil
}

func (m *MockLockStore) ReleasePartnerLock(ctx context.Context, partnerID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, partnerID)
	return nil
}

// Hold marks a partner lock as already held by someone else.
func (m *MockLockStore) Hold(partnerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[partnerID] = true
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is an in-memory implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu       sync.RWMutex
	partners map[string]redis.CachedPartner

	// Counters for verification
	GetPartnerCallCount int32
	SetPartnerCallCount int32

	// Error injection
	GetPartnerError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{partners: make(map[string]redis.CachedPartner)}
}

func (m *MockCacheStore) GetPartner(ctx context.Context, partnerID string) (*redis.CachedPartner, error) {
	atomic.AddInt32(&m.GetPartnerCallCount, 1)
	if m.GetPartnerError != nil {
		return nil, m.GetPartnerError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cached, ok := m.partners[partnerID]
	if !ok {
		return nil, nil
	}
	copy := cached
	return &copy, nil
}

func (m *MockCacheStore) SetPartner(ctx context.Context, partner *redis.CachedPartner) error {
	atomic.AddInt32(&m.SetPartnerCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partners[partner.ID] = *partner
	return nil
}

func (m *MockCacheStore) InvalidatePartner(ctx context.Context, partnerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.partners, partnerID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a configurable implementation of PaymentGateway.
type MockGateway struct {
	// Counters for verification
	ChargeCallCount int32

	// Behavior
	Declined    bool
	ChargeError error
}

// NewMockGateway creates a new mock gateway that approves every charge.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Charge(ctx context.Context, amount float64) (bool, error) {
	atomic.AddInt32(&m.ChargeCallCount, 1)
	if m.ChargeError != nil {
		return false, m.ChargeError
	}
	return !m.Declined, nil
}

// Compile-time interface checks.
var (
	_ redis.PositionStoreInterface = (*MockPositionStore)(nil)
	_ redis.LockStoreInterface     = (*MockLockStore)(nil)
	_ redis.CacheStoreInterface    = (*MockCacheStore)(nil)
	_ service.PaymentGateway       = (*MockGateway)(nil)
)
