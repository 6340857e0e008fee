package tests

import (
	"context"
	"errors"
	"testing"

	"sakay/internal/domain"
	"sakay/internal/repository/memory"
	"sakay/internal/service"
)

// ──────────────────────────────────────────────
// 5. ACCOUNTS AND PRESENCE
// ──────────────────────────────────────────────

type accountFixture struct {
	userRepo      *memory.UserRepository
	partnerRepo   *memory.PartnerRepository
	positionStore *MockPositionStore
	cacheStore    *MockCacheStore
	service       *service.AccountService
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	f := &accountFixture{
		userRepo:      memory.NewUserRepository(),
		partnerRepo:   memory.NewPartnerRepository(),
		positionStore: NewMockPositionStore(),
		cacheStore:    NewMockCacheStore(),
	}
	f.service = service.NewAccountService(f.userRepo, f.partnerRepo, f.positionStore, f.cacheStore)
	return f
}

func TestAccount_RiderRegistrationDefaults(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)

	user, err := f.service.RegisterUser(context.Background(), service.RegisterUserRequest{
		Name:  "Maria Santos",
		Phone: "09170001111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Status != domain.AccountStatusApproved {
		t.Errorf("expected riders approved on signup, got %s", user.Status)
	}
	if user.Rating != 5.0 {
		t.Errorf("expected fresh rating 5.0, got %.2f", user.Rating)
	}
	if user.Balance != 0 {
		t.Errorf("expected empty wallet, got %.2f", user.Balance)
	}
	if user.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestAccount_PartnerRegistrationStartsPendingOffline(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)

	partner, err := f.service.RegisterPartner(context.Background(), service.RegisterPartnerRequest{
		Name:        "New Driver",
		Phone:       "09170002222",
		VehicleType: domain.ServiceTransportBike,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if partner.Status != domain.AccountStatusPending {
		t.Errorf("expected PENDING on signup, got %s", partner.Status)
	}
	if partner.IsOnline {
		t.Error("expected new partners offline")
	}
}

func TestAccount_PartnerRegistrationRejectsUnknownServiceType(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)

	_, err := f.service.RegisterPartner(context.Background(), service.RegisterPartnerRequest{
		Name:        "Mystery",
		Phone:       "09170003333",
		VehicleType: "HOVERCRAFT",
	})
	if !errors.Is(err, service.ErrInvalidServiceType) {
		t.Errorf("expected ErrInvalidServiceType, got %v", err)
	}
}

func TestAccount_PendingPartnerCannotGoOnline(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	partner, _ := f.service.RegisterPartner(ctx, service.RegisterPartnerRequest{
		Name:        "New Driver",
		Phone:       "09170002222",
		VehicleType: domain.ServiceTransportBike,
	})

	_, err := f.service.SetPartnerOnline(ctx, service.SetPartnerOnlineRequest{
		PartnerID: partner.ID,
		Online:    true,
	})
	if !errors.Is(err, service.ErrAccountSuspended) {
		t.Errorf("expected ErrAccountSuspended, got %v", err)
	}
}

func TestAccount_OnlineTogglePlacesAndClearsPosition(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	partner, _ := f.service.RegisterPartner(ctx, service.RegisterPartnerRequest{
		Name:        "New Driver",
		Phone:       "09170002222",
		VehicleType: domain.ServiceTransportBike,
	})
	if err := f.service.UpdateAccountStatus(ctx, partner.ID, domain.RolePartner, domain.AccountStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	online, err := f.service.SetPartnerOnline(ctx, service.SetPartnerOnlineRequest{
		PartnerID: partner.ID,
		Online:    true,
		Lat:       8.47,
		Lng:       124.64,
	})
	if err != nil {
		t.Fatalf("go online: %v", err)
	}
	if !online.IsOnline {
		t.Error("expected partner online")
	}
	if _, ok := f.positionStore.Position(partner.ID); !ok {
		t.Error("expected position registered on going online")
	}

	offline, err := f.service.SetPartnerOnline(ctx, service.SetPartnerOnlineRequest{
		PartnerID: partner.ID,
		Online:    false,
	})
	if err != nil {
		t.Fatalf("go offline: %v", err)
	}
	if offline.IsOnline {
		t.Error("expected partner offline")
	}
	if _, ok := f.positionStore.Position(partner.ID); ok {
		t.Error("expected position cleared on going offline")
	}
}

func TestAccount_SuspendingOnlinePartnerForcesOffline(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d1",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    true,
	})
	_ = f.positionStore.SetPosition(ctx, "d1", 8.47, 124.64)

	if err := f.service.UpdateAccountStatus(ctx, "d1", domain.RolePartner, domain.AccountStatusSuspended); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	partner, _ := f.partnerRepo.GetByID(ctx, "d1")
	if partner.IsOnline {
		t.Error("expected suspended partner forced offline")
	}
	if _, ok := f.positionStore.Position("d1"); ok {
		t.Error("expected position cleared on suspension")
	}
}

func TestAccount_DeletePartnerClearsPresence(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d1",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    true,
	})
	_ = f.positionStore.SetPosition(ctx, "d1", 8.47, 124.64)

	if err := f.service.DeleteAccount(ctx, "d1", domain.RolePartner); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.partnerRepo.GetByID(ctx, "d1"); err == nil {
		t.Error("expected partner gone")
	}
	if _, ok := f.positionStore.Position("d1"); ok {
		t.Error("expected position cleared on deletion")
	}
}

func TestAccount_PartnerSummaryServedCacheAside(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d1",
		Name:        "Ricardo Dalisay",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    true,
	})

	// First lookup misses and primes the cache from the repository.
	first, err := f.service.PartnerSummary(ctx, "d1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if first.Name != "Ricardo Dalisay" || first.VehicleType != string(domain.ServiceTransportBike) {
		t.Errorf("unexpected summary: %+v", first)
	}
	if f.cacheStore.SetPartnerCallCount != 1 {
		t.Errorf("expected cache primed once, got %d sets", f.cacheStore.SetPartnerCallCount)
	}

	// A repository change behind the cache is not visible on a hit.
	partner, _ := f.partnerRepo.GetByID(ctx, "d1")
	partner.Name = "Renamed Elsewhere"
	_ = f.partnerRepo.Update(ctx, partner)

	second, err := f.service.PartnerSummary(ctx, "d1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if second.Name != "Ricardo Dalisay" {
		t.Errorf("expected cached name, got %q", second.Name)
	}
	if f.cacheStore.SetPartnerCallCount != 1 {
		t.Errorf("expected no re-prime on a hit, got %d sets", f.cacheStore.SetPartnerCallCount)
	}
}

func TestAccount_ProfileUpdateInvalidatesSummaryCache(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d1",
		Name:        "Ricardo Dalisay",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
	})
	if _, err := f.service.PartnerSummary(ctx, "d1"); err != nil {
		t.Fatalf("prime: %v", err)
	}

	if _, err := f.service.UpdatePartnerProfile(ctx, service.UpdatePartnerProfileRequest{
		PartnerID: "d1",
		Name:      "Ricky D",
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	summary, err := f.service.PartnerSummary(ctx, "d1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Name != "Ricky D" {
		t.Errorf("expected fresh name after invalidation, got %q", summary.Name)
	}
}

func TestAccount_PartnerSummaryFallsBackWhenCacheFails(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d1",
		Name:        "Ricardo Dalisay",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
	})
	f.cacheStore.GetPartnerError = errors.New("redis down")

	summary, err := f.service.PartnerSummary(ctx, "d1")
	if err != nil {
		t.Fatalf("expected repository fallback, got %v", err)
	}
	if summary.Name != "Ricardo Dalisay" {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestAccount_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(t)

	err := f.service.UpdateAccountStatus(context.Background(), "whoever", domain.RolePartner, "FROZEN")
	if !errors.Is(err, service.ErrInvalidAccountStatus) {
		t.Errorf("expected ErrInvalidAccountStatus, got %v", err)
	}
}
