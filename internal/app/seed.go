package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"sakay/internal/domain"
	"sakay/internal/redis"
	"sakay/internal/repository"
	"sakay/internal/service"
)

// seedCommissionTotal is the platform's commission figure carried into the
// demo environment, so the admin dashboard never opens at zero.
const seedCommissionTotal = 15420.50

// Seeder populates and resets the demo environment. Implements
// handler.DemoControl.
type Seeder struct {
	userRepo      repository.UserRepository
	partnerRepo   repository.PartnerRepository
	rideRepo      repository.RideRepository
	ledger        *service.Ledger
	positionStore redis.PositionStoreInterface
	cacheStore    redis.CacheStoreInterface
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	userRepo repository.UserRepository,
	partnerRepo repository.PartnerRepository,
	rideRepo repository.RideRepository,
	ledger *service.Ledger,
	positionStore redis.PositionStoreInterface,
	cacheStore redis.CacheStoreInterface,
) *Seeder {
	return &Seeder{
		userRepo:      userRepo,
		partnerRepo:   partnerRepo,
		rideRepo:      rideRepo,
		ledger:        ledger,
		positionStore: positionStore,
		cacheStore:    cacheStore,
	}
}

// seedUsers returns the initial rider accounts.
func seedUsers() []*domain.User {
	return []*domain.User{
		{
			ID:       "u1",
			Name:     "Juan Dela Cruz",
			Email:    "user@test.ph",
			Phone:    "09123456789",
			Avatar:   "https://i.pravatar.cc/150?u=u1",
			Rating:   4.8,
			Balance:  1500.50,
			Status:   domain.AccountStatusApproved,
			JoinDate: time.Now().Add(-28 * time.Hour),
		},
	}
}

// seedPartners returns the initial partner accounts: one bike driver and
// five professionals.
func seedPartners() []*domain.Partner {
	now := time.Now()
	return []*domain.Partner{
		{
			ID:            "d1",
			Name:          "Ricardo Dalisay",
			Email:         "driver@test.ph",
			Phone:         "09998887777",
			Avatar:        "https://i.pravatar.cc/150?u=d1",
			Rating:        4.9,
			Balance:       850.00,
			Status:        domain.AccountStatusApproved,
			JoinDate:      now.Add(-83 * time.Hour),
			VehicleType:   domain.ServiceTransportBike,
			VehicleModel:  "Honda Click 125i",
			PlateNumber:   "ABC 1234",
			IsOnline:      true,
			TotalEarnings: 12500.00,
		},
		{
			ID:              "pro1",
			Name:            "Master Ben",
			Email:           "ben@pro.ph",
			Phone:           "09112223333",
			Avatar:          "https://i.pravatar.cc/150?u=pro1",
			Rating:          4.95,
			Balance:         2000,
			Status:          domain.AccountStatusApproved,
			JoinDate:        now.Add(-138 * time.Hour),
			VehicleType:     domain.ServiceProfessional,
			VehicleModel:    "Professional Tools",
			PlateNumber:     "PRC-12345",
			IsOnline:        true,
			TotalEarnings:   45000,
			ServiceRate:     450,
			ServiceCategory: "Electricians",
		},
		{
			ID:              "pro2",
			Name:            "Nanay Rosa",
			Email:           "rosa@clean.ph",
			Phone:           "09445556666",
			Avatar:          "https://i.pravatar.cc/150?u=pro2",
			Rating:          4.88,
			Balance:         1500,
			Status:          domain.AccountStatusApproved,
			JoinDate:        now.Add(-111 * time.Hour),
			VehicleType:     domain.ServiceProfessional,
			VehicleModel:    "Cleaning Supplies",
			PlateNumber:     "CLEAN-01",
			IsOnline:        true,
			TotalEarnings:   22000,
			ServiceRate:     350,
			ServiceCategory: "Home Cleaners",
		},
		{
			ID:              "pro3",
			Name:            "Ate Linda",
			Email:           "linda@nails.ph",
			Phone:           "09778889999",
			Avatar:          "https://i.pravatar.cc/150?u=pro3",
			Rating:          4.92,
			Balance:         1000,
			Status:          domain.AccountStatusApproved,
			JoinDate:        now.Add(-97 * time.Hour),
			VehicleType:     domain.ServiceProfessional,
			VehicleModel:    "Nail Art Kit",
			PlateNumber:     "NAILS-01",
			IsOnline:        true,
			TotalEarnings:   15000,
			ServiceRate:     200,
			ServiceCategory: "Manicurist",
		},
		{
			ID:              "pro4",
			Name:            "Teacher Clara",
			Email:           "clara@tutor.ph",
			Phone:           "09887776666",
			Avatar:          "https://i.pravatar.cc/150?u=pro4",
			Rating:          5.0,
			Balance:         3000,
			Status:          domain.AccountStatusApproved,
			JoinDate:        now.Add(-166 * time.Hour),
			VehicleType:     domain.ServiceProfessional,
			VehicleModel:    "Educational Kits",
			PlateNumber:     "TUTOR-01",
			IsOnline:        true,
			TotalEarnings:   30000,
			ServiceRate:     500,
			ServiceCategory: "Tutors",
		},
		{
			ID:              "pro5",
			Name:            "Chef Gardo",
			Email:           "gardo@cooks.ph",
			Phone:           "09121212121",
			Avatar:          "https://i.pravatar.cc/150?u=pro5",
			Rating:          4.85,
			Balance:         5000,
			Status:          domain.AccountStatusApproved,
			JoinDate:        now.Add(-222 * time.Hour),
			VehicleType:     domain.ServiceProfessional,
			VehicleModel:    "Mobile Kitchen",
			PlateNumber:     "CATER-01",
			IsOnline:        true,
			TotalEarnings:   150000,
			ServiceRate:     2500,
			ServiceCategory: "Catering Services",
		},
	}
}

// seedPositions returns the initial map positions.
func seedPositions() map[string]domain.Point {
	return map[string]domain.Point{
		"d1":   {Lat: 8.47, Lng: 124.64},
		"pro1": {Lat: 8.48, Lng: 124.65},
		"pro2": {Lat: 8.46, Lng: 124.63},
		"pro3": {Lat: 8.49, Lng: 124.66},
		"pro4": {Lat: 8.50, Lng: 124.67},
		"pro5": {Lat: 8.51, Lng: 124.68},
	}
}

// Seed loads the demo accounts, positions, and commission figure.
func (s *Seeder) Seed(ctx context.Context) error {
	for _, user := range seedUsers() {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.ID, err)
		}
	}

	for _, partner := range seedPartners() {
		if err := s.partnerRepo.Create(ctx, partner); err != nil {
			return fmt.Errorf("seed partner %s: %w", partner.ID, err)
		}
	}

	if s.positionStore != nil {
		for partnerID, pos := range seedPositions() {
			if err := s.positionStore.SetPosition(ctx, partnerID, pos.Lat, pos.Lng); err != nil {
				return fmt.Errorf("seed position %s: %w", partnerID, err)
			}
		}
	}

	s.ledger.SeedCommissionTotal(seedCommissionTotal)
	return nil
}

// Reset wipes all rides and accounts and reloads the seed state.
func (s *Seeder) Reset(ctx context.Context) error {
	if err := s.rideRepo.DeleteAll(ctx); err != nil {
		return err
	}

	partners, err := s.partnerRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, partner := range partners {
		if err := s.partnerRepo.Delete(ctx, partner.ID); err != nil {
			return err
		}
		if s.positionStore != nil {
			_ = s.positionStore.RemovePosition(ctx, partner.ID)
		}
		if s.cacheStore != nil {
			_ = s.cacheStore.InvalidatePartner(ctx, partner.ID)
		}
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := s.userRepo.Delete(ctx, user.ID); err != nil {
			return err
		}
	}

	return s.Seed(ctx)
}

// spawnVehicles are the bike models assigned to spawned demo drivers.
var spawnVehicles = []string{
	"Honda Click 125i",
	"Yamaha Mio i125",
	"Suzuki Raider R150",
	"Honda XRM 125",
	"Yamaha NMAX 155",
}

// SpawnPartners creates extra online bike drivers scattered around the
// city center, for load-testing the map view.
func (s *Seeder) SpawnPartners(ctx context.Context, count int) ([]*domain.Partner, error) {
	partners := make([]*domain.Partner, 0, count)

	for i := 0; i < count; i++ {
		id := uuid.New().String()
		partner := &domain.Partner{
			ID:           id,
			Name:         fmt.Sprintf("Demo Driver %s", id[:8]),
			Phone:        fmt.Sprintf("0900%07d", rand.Intn(10000000)),
			Rating:       4.5 + rand.Float64()*0.5,
			Status:       domain.AccountStatusApproved,
			JoinDate:     time.Now(),
			VehicleType:  domain.ServiceTransportBike,
			VehicleModel: spawnVehicles[rand.Intn(len(spawnVehicles))],
			PlateNumber:  fmt.Sprintf("DMO %04d", rand.Intn(10000)),
			IsOnline:     true,
		}

		if err := s.partnerRepo.Create(ctx, partner); err != nil {
			return nil, err
		}

		if s.positionStore != nil {
			lat := 8.47 + (rand.Float64()-0.5)*0.04
			lng := 124.64 + (rand.Float64()-0.5)*0.04
			_ = s.positionStore.SetPosition(ctx, partner.ID, lat, lng)
		}

		partners = append(partners, partner)
	}

	return partners, nil
}
