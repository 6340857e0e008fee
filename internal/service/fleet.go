package service

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"sakay/internal/domain"
	"sakay/internal/redis"
	"sakay/internal/repository"
)

// FleetConfig contains the tunable movement constants for the simulator.
type FleetConfig struct {
	TickInterval  time.Duration // time between movement ticks
	StepDegrees   float64       // distance a busy partner covers per tick
	JitterDegrees float64       // idle wander amplitude per axis
}

// DefaultFleetConfig returns the default simulator constants.
func DefaultFleetConfig() FleetConfig {
	return FleetConfig{
		TickInterval:  time.Second,
		StepDegrees:   0.0002,
		JitterDegrees: 0.0001,
	}
}

// FleetSimulator moves online partners on the map each tick. Partners on an
// active ride head toward the pickup point until the job starts, then
// toward the destination; idle partners drift randomly in place. Positions
// live in the Redis GEO index, same place real position pings would land.
type FleetSimulator struct {
	config        FleetConfig
	partnerRepo   repository.PartnerRepository
	rideRepo      repository.RideRepository
	positionStore redis.PositionStoreInterface
}

// NewFleetSimulator creates a new FleetSimulator.
func NewFleetSimulator(
	config FleetConfig,
	partnerRepo repository.PartnerRepository,
	rideRepo repository.RideRepository,
	positionStore redis.PositionStoreInterface,
) *FleetSimulator {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	return &FleetSimulator{
		config:        config,
		partnerRepo:   partnerRepo,
		rideRepo:      rideRepo,
		positionStore: positionStore,
	}
}

// Run ticks the simulator until the context is cancelled. Intended to be
// started as a goroutine from main.
func (s *FleetSimulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				log.Printf("fleet tick failed: %v", err)
			}
		}
	}
}

// Tick advances every online approved partner by one movement step. A
// failure on one partner skips that partner for the tick; the rest still
// move.
func (s *FleetSimulator) Tick(ctx context.Context) error {
	partners, err := s.partnerRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, partner := range partners {
		if !partner.IsOnline || partner.Status != domain.AccountStatusApproved {
			continue
		}
		if err := s.movePartner(ctx, partner); err != nil {
			log.Printf("fleet tick: partner %s skipped: %v", partner.ID, err)
		}
	}

	return nil
}

// movePartner applies one step for a single partner.
func (s *FleetSimulator) movePartner(ctx context.Context, partner *domain.Partner) error {
	pos, err := s.positionStore.GetPosition(ctx, partner.ID)
	if err != nil {
		return err
	}
	if pos == nil {
		// Not on the map yet; nothing to move.
		return nil
	}

	target, busy, err := s.currentTarget(ctx, partner.ID)
	if err != nil {
		return err
	}

	var next domain.Point
	if busy {
		next = stepToward(domain.Point{Lat: pos.Lat, Lng: pos.Lng}, target, s.config.StepDegrees)
	} else {
		next = domain.Point{
			Lat: pos.Lat + (rand.Float64()-0.5)*s.config.JitterDegrees,
			Lng: pos.Lng + (rand.Float64()-0.5)*s.config.JitterDegrees,
		}
	}

	return s.positionStore.SetPosition(ctx, partner.ID, next.Lat, next.Lng)
}

// currentTarget resolves where the partner is headed: the pickup point
// while the ride is ACCEPTED or ARRIVED, the destination once IN_PROGRESS.
// busy is false when the partner has no active ride.
func (s *FleetSimulator) currentTarget(ctx context.Context, partnerID string) (domain.Point, bool, error) {
	ride, err := s.rideRepo.GetActiveByDriverID(ctx, partnerID)
	if err != nil {
		return domain.Point{}, false, err
	}
	if ride == nil {
		return domain.Point{}, false, nil
	}

	switch ride.Status {
	case domain.RideStatusAccepted, domain.RideStatusArrived:
		return ride.OriginCoords, true, nil
	case domain.RideStatusInProgress:
		return ride.DestinationCoords, true, nil
	default:
		return domain.Point{}, false, nil
	}
}

// stepToward moves one fixed-size step along the straight line from current
// to target. Within one step of the target the partner holds position, so
// movement never overshoots or oscillates.
func stepToward(current, target domain.Point, step float64) domain.Point {
	dLat := target.Lat - current.Lat
	dLng := target.Lng - current.Lng
	dist := math.Sqrt(dLat*dLat + dLng*dLng)
	if dist <= step {
		return current
	}
	return domain.Point{
		Lat: current.Lat + (dLat/dist)*step,
		Lng: current.Lng + (dLng/dist)*step,
	}
}
