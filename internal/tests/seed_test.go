package tests

import (
	"context"
	"testing"

	"sakay/internal/app"
	"sakay/internal/domain"
	"sakay/internal/repository/memory"
	"sakay/internal/service"
)

// ──────────────────────────────────────────────
// 6. DEMO SEED AND RESET
// ──────────────────────────────────────────────

type seedFixture struct {
	userRepo      *memory.UserRepository
	partnerRepo   *memory.PartnerRepository
	rideRepo      *memory.RideRepository
	positionStore *MockPositionStore
	ledger        *service.Ledger
	seeder        *app.Seeder
}

func newSeedFixture(t *testing.T) *seedFixture {
	t.Helper()

	f := &seedFixture{
		userRepo:      memory.NewUserRepository(),
		partnerRepo:   memory.NewPartnerRepository(),
		rideRepo:      memory.NewRideRepository(),
		positionStore: NewMockPositionStore(),
	}
	f.ledger = service.NewLedger(f.userRepo, f.partnerRepo, f.rideRepo)
	f.seeder = app.NewSeeder(f.userRepo, f.partnerRepo, f.rideRepo, f.ledger, f.positionStore, nil)
	return f
}

func TestSeed_LoadsDemoAccounts(t *testing.T) {
	t.Parallel()

	f := newSeedFixture(t)
	ctx := context.Background()

	if err := f.seeder.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	user, err := f.userRepo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("seed user missing: %v", err)
	}
	if user.Balance != 1500.50 {
		t.Errorf("expected rider balance 1500.50, got %.2f", user.Balance)
	}

	driver, err := f.partnerRepo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("seed driver missing: %v", err)
	}
	if driver.VehicleType != domain.ServiceTransportBike || driver.Balance != 850.00 {
		t.Errorf("unexpected seed driver: %s %.2f", driver.VehicleType, driver.Balance)
	}

	partners, _ := f.partnerRepo.GetAll(ctx)
	if len(partners) != 6 {
		t.Errorf("expected 6 seed partners, got %d", len(partners))
	}

	if got := f.ledger.CommissionTotal(); got != 15420.50 {
		t.Errorf("expected seeded commission total 15420.50, got %.2f", got)
	}

	if _, ok := f.positionStore.Position("d1"); !ok {
		t.Error("expected seed position for d1")
	}
}

func TestSeed_ResetRestoresInitialState(t *testing.T) {
	t.Parallel()

	f := newSeedFixture(t)
	ctx := context.Background()

	if err := f.seeder.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Mutate the world: a settled ride and an extra account.
	_ = f.rideRepo.Create(ctx, &domain.Ride{ID: "ride-1", UserID: "u1", Status: domain.RideStatusCompleted})
	_ = f.userRepo.Create(ctx, &domain.User{ID: "extra", Status: domain.AccountStatusApproved})
	user, _ := f.userRepo.GetByID(ctx, "u1")
	user.Balance = 12
	_ = f.userRepo.Update(ctx, user)

	if err := f.seeder.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	rides, _ := f.rideRepo.GetAll(ctx)
	if len(rides) != 0 {
		t.Errorf("expected no rides after reset, got %d", len(rides))
	}
	if _, err := f.userRepo.GetByID(ctx, "extra"); err == nil {
		t.Error("expected extra account removed by reset")
	}
	user, _ = f.userRepo.GetByID(ctx, "u1")
	if user.Balance != 1500.50 {
		t.Errorf("expected balance restored to 1500.50, got %.2f", user.Balance)
	}
	if got := f.ledger.CommissionTotal(); got != 15420.50 {
		t.Errorf("expected commission total restored, got %.2f", got)
	}
}

func TestSeed_SpawnPartnersComeUpOnlineWithPositions(t *testing.T) {
	t.Parallel()

	f := newSeedFixture(t)
	ctx := context.Background()

	partners, err := f.seeder.SpawnPartners(ctx, 5)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(partners) != 5 {
		t.Fatalf("expected 5 partners, got %d", len(partners))
	}

	for _, p := range partners {
		if !p.IsOnline || p.Status != domain.AccountStatusApproved {
			t.Errorf("partner %s: expected online and approved", p.ID)
		}
		pos, ok := f.positionStore.Position(p.ID)
		if !ok {
			t.Errorf("partner %s: expected a map position", p.ID)
			continue
		}
		if pos.Lat < 8.44 || pos.Lat > 8.50 || pos.Lng < 124.61 || pos.Lng > 124.67 {
			t.Errorf("partner %s: position (%.4f, %.4f) outside spawn area", p.ID, pos.Lat, pos.Lng)
		}
	}
}
