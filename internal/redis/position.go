package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const partnerPositionKey = "partners:positions"

// PartnerPosition represents a partner's simulated position.
type PartnerPosition struct {
	PartnerID string
	Lat       float64
	Lng       float64
}

// PositionStore handles partner position operations in Redis.
// The fleet simulator writes here; ride and account records are never
// touched from this index.
type PositionStore struct {
	client *redis.Client
}

// NewPositionStore creates a new PositionStore.
func NewPositionStore(client *redis.Client) *PositionStore {
	return &PositionStore{client: client}
}

// SetPosition stores a partner's position using GEOADD.
func (s *PositionStore) SetPosition(ctx context.Context, partnerID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, partnerPositionKey, &redis.GeoLocation{
		Name:      partnerID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// GetPosition retrieves a partner's position.
// Returns nil when the partner has no recorded position.
func (s *PositionStore) GetPosition(ctx context.Context, partnerID string) (*PartnerPosition, error) {
	results, err := s.client.GeoPos(ctx, partnerPositionKey, partnerID).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 || results[0] == nil {
		return nil, nil
	}
	return &PartnerPosition{
		PartnerID: partnerID,
		Lat:       results[0].Latitude,
		Lng:       results[0].Longitude,
	}, nil
}

// FindNearbyPartners returns partner positions within the given radius
// (in kilometers), closest first.
func (s *PositionStore) FindNearbyPartners(ctx context.Context, lat, lng, radiusKm float64) ([]PartnerPosition, error) {
	results, err := s.client.GeoRadius(ctx, partnerPositionKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	positions := make([]PartnerPosition, 0, len(results))
	for _, r := range results {
		positions = append(positions, PartnerPosition{
			PartnerID: r.Name,
			Lat:       r.Latitude,
			Lng:       r.Longitude,
		})
	}

	return positions, nil
}

// GetAllPositions returns the position of every tracked partner.
func (s *PositionStore) GetAllPositions(ctx context.Context) ([]PartnerPosition, error) {
	ids, err := s.client.ZRange(ctx, partnerPositionKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	coords, err := s.client.GeoPos(ctx, partnerPositionKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	positions := make([]PartnerPosition, 0, len(ids))
	for i, id := range ids {
		if i >= len(coords) || coords[i] == nil {
			continue
		}
		positions = append(positions, PartnerPosition{
			PartnerID: id,
			Lat:       coords[i].Latitude,
			Lng:       coords[i].Longitude,
		})
	}

	return positions, nil
}

// RemovePosition removes a partner from the geo index.
func (s *PositionStore) RemovePosition(ctx context.Context, partnerID string) error {
	return s.client.ZRem(ctx, partnerPositionKey, partnerID).Err()
}
