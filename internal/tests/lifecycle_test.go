package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sakay/internal/domain"
	"sakay/internal/repository/memory"
	"sakay/internal/service"
)

// ──────────────────────────────────────────────
// 3. RIDE LIFECYCLE
// ──────────────────────────────────────────────

type lifecycleFixture struct {
	userRepo    *memory.UserRepository
	partnerRepo *memory.PartnerRepository
	rideRepo    *memory.RideRepository
	lockStore   *MockLockStore
	ledger      *service.Ledger
	lifecycle   *service.LifecycleService
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	f := &lifecycleFixture{
		userRepo:    memory.NewUserRepository(),
		partnerRepo: memory.NewPartnerRepository(),
		rideRepo:    memory.NewRideRepository(),
		lockStore:   NewMockLockStore(),
	}
	f.ledger = service.NewLedger(f.userRepo, f.partnerRepo, f.rideRepo)
	f.lifecycle = service.NewLifecycleService(
		f.rideRepo, f.userRepo, f.partnerRepo,
		service.NewFareCalculator(service.DefaultFareConfig()),
		f.ledger, f.lockStore,
		service.NewReceiptService(nil), nil,
	)

	ctx := context.Background()
	if err := f.userRepo.Create(ctx, &domain.User{
		ID:      "u1",
		Name:    "Juan Dela Cruz",
		Balance: 1500.50,
		Status:  domain.AccountStatusApproved,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d1",
		Name:        "Ricardo Dalisay",
		Balance:     850.00,
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    true,
	}); err != nil {
		t.Fatalf("seed partner: %v", err)
	}
	return f
}

func (f *lifecycleFixture) createBikeRide(t *testing.T) *domain.Ride {
	t.Helper()
	ride, err := f.lifecycle.CreateRide(context.Background(), service.CreateRideRequest{
		UserID:        "u1",
		ServiceType:   domain.ServiceTransportBike,
		PaymentMethod: domain.PaymentMethodCash,
		Origin:        "Divisoria",
		Destination:   "Limketkai",
		DistanceKm:    2,
	})
	if err != nil {
		t.Fatalf("create ride: %v", err)
	}
	return ride
}

func TestLifecycle_CreateRideStartsPendingWithFrozenFare(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ride := f.createBikeRide(t)

	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected PENDING, got %s", ride.Status)
	}
	if ride.Fare != 25 {
		t.Errorf("expected fare 25, got %.2f", ride.Fare)
	}
	if ride.DriverID != "" {
		t.Errorf("expected no partner bound at creation, got %q", ride.DriverID)
	}
	if ride.ID == "" {
		t.Error("expected a generated ride ID")
	}
}

func TestLifecycle_WalletBookingRejectedWhenUncovered(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)

	_, err := f.lifecycle.CreateRide(context.Background(), service.CreateRideRequest{
		UserID:        "u1",
		ServiceType:   domain.ServiceTransportCar,
		PaymentMethod: domain.PaymentMethodWallet,
		DistanceKm:    100, // 40 + 99*35 = 3505 > 1500.50
	})
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	rides, _ := f.rideRepo.GetAll(context.Background())
	if len(rides) != 0 {
		t.Errorf("expected no ride created, got %d", len(rides))
	}
}

func TestLifecycle_SecondActiveRideRejected(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	f.createBikeRide(t)

	_, err := f.lifecycle.CreateRide(context.Background(), service.CreateRideRequest{
		UserID:        "u1",
		ServiceType:   domain.ServiceTransportBike,
		PaymentMethod: domain.PaymentMethodCash,
		DistanceKm:    3,
	})
	if !errors.Is(err, service.ErrUserHasActiveRide) {
		t.Errorf("expected ErrUserHasActiveRide, got %v", err)
	}
}

func TestLifecycle_CancelledRideFreesTheRider(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()
	ride := f.createBikeRide(t)

	cancelled, err := f.lifecycle.Cancel(ctx, ride.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.RideStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.DriverID != "" {
		t.Errorf("expected no partner on a never-accepted ride, got %q", cancelled.DriverID)
	}

	// Rider can immediately book again.
	if _, err := f.lifecycle.CreateRide(ctx, service.CreateRideRequest{
		UserID:        "u1",
		ServiceType:   domain.ServiceTransportBike,
		PaymentMethod: domain.PaymentMethodCash,
		DistanceKm:    2,
	}); err != nil {
		t.Errorf("expected new booking after cancel, got %v", err)
	}
}

func TestLifecycle_AcceptBindsPartnerOnce(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()
	ride := f.createBikeRide(t)

	accepted, err := f.lifecycle.Accept(ctx, ride.ID, "d1")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != domain.RideStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", accepted.Status)
	}
	if accepted.DriverID != "d1" || accepted.DriverName != "Ricardo Dalisay" {
		t.Errorf("expected partner d1 bound, got %q/%q", accepted.DriverID, accepted.DriverName)
	}

	// A second acceptance is an invalid transition, not a reassignment.
	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "d2",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    true,
	})
	if _, err := f.lifecycle.Accept(ctx, ride.ID, "d2"); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	got, _ := f.rideRepo.GetByID(ctx, ride.ID)
	if got.DriverID != "d1" {
		t.Errorf("expected binding to stay d1, got %q", got.DriverID)
	}
}

func TestLifecycle_AcceptEligibilityChecks(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "offline",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    false,
	})
	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "pending",
		Status:      domain.AccountStatusPending,
		VehicleType: domain.ServiceTransportBike,
		IsOnline:    true,
	})
	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "wrong-type",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportCar,
		IsOnline:    true,
	})

	ride := f.createBikeRide(t)

	for _, partnerID := range []string{"offline", "pending", "wrong-type"} {
		if _, err := f.lifecycle.Accept(ctx, ride.ID, partnerID); !errors.Is(err, service.ErrPartnerNotEligible) {
			t.Errorf("%s: expected ErrPartnerNotEligible, got %v", partnerID, err)
		}
	}

	got, _ := f.rideRepo.GetByID(ctx, ride.ID)
	if got.Status != domain.RideStatusPending {
		t.Errorf("expected ride to stay PENDING, got %s", got.Status)
	}
}

func TestLifecycle_AcceptWhilePartnerLockedReturnsBusy(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ride := f.createBikeRide(t)

	f.lockStore.Hold("d1")

	_, err := f.lifecycle.Accept(context.Background(), ride.ID, "d1")
	if !errors.Is(err, service.ErrPartnerBusy) {
		t.Errorf("expected ErrPartnerBusy, got %v", err)
	}
}

func TestLifecycle_PartnerWithActiveRideCannotAcceptAnother(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()

	first := f.createBikeRide(t)
	if _, err := f.lifecycle.Accept(ctx, first.ID, "d1"); err != nil {
		t.Fatalf("accept first: %v", err)
	}

	_ = f.userRepo.Create(ctx, &domain.User{
		ID:     "u2",
		Status: domain.AccountStatusApproved,
	})
	second, err := f.lifecycle.CreateRide(ctx, service.CreateRideRequest{
		UserID:        "u2",
		ServiceType:   domain.ServiceTransportBike,
		PaymentMethod: domain.PaymentMethodCash,
		DistanceKm:    2,
	})
	if err != nil {
		t.Fatalf("create second ride: %v", err)
	}

	if _, err := f.lifecycle.Accept(ctx, second.ID, "d1"); !errors.Is(err, service.ErrPartnerHasActiveRide) {
		t.Errorf("expected ErrPartnerHasActiveRide, got %v", err)
	}
}

func TestLifecycle_FullHappyPathSettlesExactlyOnce(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()
	ride := f.createBikeRide(t)

	if _, err := f.lifecycle.Accept(ctx, ride.ID, "d1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.lifecycle.Arrive(ctx, ride.ID); err != nil {
		t.Fatalf("arrive: %v", err)
	}
	if _, err := f.lifecycle.Start(ctx, ride.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	result, err := f.lifecycle.Complete(ctx, ride.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if result.Ride.Status != domain.RideStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", result.Ride.Status)
	}
	if result.Receipt == nil {
		t.Fatal("expected a receipt")
	}
	if result.Receipt.Fare != 25 || result.Receipt.Commission != 2.5 {
		t.Errorf("expected receipt fare 25 / commission 2.5, got %.2f / %.2f",
			result.Receipt.Fare, result.Receipt.Commission)
	}

	partner, _ := f.partnerRepo.GetByID(ctx, "d1")
	if partner.Balance != 847.50 {
		t.Errorf("expected partner balance 847.50, got %.2f", partner.Balance)
	}
	if partner.TotalEarnings != 25 {
		t.Errorf("expected total earnings 25, got %.2f", partner.TotalEarnings)
	}

	// Completing again must fail and must not settle a second time.
	if _, err := f.lifecycle.Complete(ctx, ride.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	partner, _ = f.partnerRepo.GetByID(ctx, "d1")
	if partner.Balance != 847.50 || partner.TotalEarnings != 25 {
		t.Errorf("second complete changed balances: %.2f / %.2f", partner.Balance, partner.TotalEarnings)
	}
	if got := f.ledger.CommissionTotal(); got != 2.5 {
		t.Errorf("expected commission total 2.5, got %.2f", got)
	}
}

func TestLifecycle_SkippingStatesRejected(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()
	ride := f.createBikeRide(t)

	// PENDING -> IN_PROGRESS is not reachable.
	if _, err := f.lifecycle.Start(ctx, ride.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("start from PENDING: expected ErrInvalidTransition, got %v", err)
	}

	if _, err := f.lifecycle.Accept(ctx, ride.ID, "d1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.lifecycle.Arrive(ctx, ride.ID); err != nil {
		t.Fatalf("arrive: %v", err)
	}

	// ARRIVED -> COMPLETED skips IN_PROGRESS.
	if _, err := f.lifecycle.Complete(ctx, ride.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("complete from ARRIVED: expected ErrInvalidTransition, got %v", err)
	}

	got, _ := f.rideRepo.GetByID(ctx, ride.ID)
	if got.Status != domain.RideStatusArrived {
		t.Errorf("expected ride to stay ARRIVED, got %s", got.Status)
	}
}

func TestLifecycle_CancelAllowedOnlyBeforeStart(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()
	ride := f.createBikeRide(t)

	_, _ = f.lifecycle.Accept(ctx, ride.ID, "d1")
	_, _ = f.lifecycle.Arrive(ctx, ride.ID)
	if _, err := f.lifecycle.Start(ctx, ride.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := f.lifecycle.Cancel(ctx, ride.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("cancel from IN_PROGRESS: expected ErrInvalidTransition, got %v", err)
	}

	result, err := f.lifecycle.Complete(ctx, ride.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.lifecycle.Cancel(ctx, result.Ride.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("cancel from COMPLETED: expected ErrInvalidTransition, got %v", err)
	}
}

func TestLifecycle_WalletCompletionDebitsRider(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()

	ride, err := f.lifecycle.CreateRide(ctx, service.CreateRideRequest{
		UserID:        "u1",
		ServiceType:   domain.ServiceTransportCar,
		PaymentMethod: domain.PaymentMethodWallet,
		DistanceKm:    3, // fare 110
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:          "car1",
		Name:        "Car Driver",
		Status:      domain.AccountStatusApproved,
		VehicleType: domain.ServiceTransportCar,
		IsOnline:    true,
	})

	_, _ = f.lifecycle.Accept(ctx, ride.ID, "car1")
	_, _ = f.lifecycle.Arrive(ctx, ride.ID)
	_, _ = f.lifecycle.Start(ctx, ride.ID)
	if _, err := f.lifecycle.Complete(ctx, ride.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	user, _ := f.userRepo.GetByID(ctx, "u1")
	if user.Balance != 1390.50 {
		t.Errorf("expected rider balance 1390.50, got %.2f", user.Balance)
	}
}

func TestLifecycle_ProfessionalQuoteReadsPartnerRate(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()

	_ = f.partnerRepo.Create(ctx, &domain.Partner{
		ID:              "pro1",
		Name:            "Master Ben",
		Status:          domain.AccountStatusApproved,
		VehicleType:     domain.ServiceProfessional,
		IsOnline:        true,
		ServiceRate:     450,
		ServiceCategory: "Electricians",
	})

	ride, err := f.lifecycle.CreateRide(ctx, service.CreateRideRequest{
		UserID:        "u1",
		ServiceType:   domain.ServiceProfessional,
		PaymentMethod: domain.PaymentMethodCash,
		PartnerID:     "pro1",
		RateType:      domain.RateHourly,
		Duration:      4,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if ride.Fare != 1800 {
		t.Errorf("expected fare 1800, got %.2f", ride.Fare)
	}
	if ride.ServiceCategory != "Electricians" {
		t.Errorf("expected category from partner, got %q", ride.ServiceCategory)
	}
	if ride.DriverID != "" {
		t.Error("quoting against a professional must not bind them")
	}
}

func TestLifecycle_SuspendedRiderCannotBook(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()

	_ = f.userRepo.Create(ctx, &domain.User{
		ID:     "banned",
		Status: domain.AccountStatusSuspended,
	})

	_, err := f.lifecycle.CreateRide(ctx, service.CreateRideRequest{
		UserID:        "banned",
		ServiceType:   domain.ServiceTransportBike,
		PaymentMethod: domain.PaymentMethodCash,
		DistanceKm:    2,
	})
	if !errors.Is(err, service.ErrAccountSuspended) {
		t.Errorf("expected ErrAccountSuspended, got %v", err)
	}
}

func TestLifecycle_TipOnCompletedRide(t *testing.T) {
	t.Parallel()

	f := newLifecycleFixture(t)
	ctx := context.Background()
	ride := f.createBikeRide(t)

	_, _ = f.lifecycle.Accept(ctx, ride.ID, "d1")
	_, _ = f.lifecycle.Arrive(ctx, ride.ID)
	_, _ = f.lifecycle.Start(ctx, ride.ID)
	if _, err := f.lifecycle.Complete(ctx, ride.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	tipped, err := f.lifecycle.Tip(ctx, ride.ID, 50)
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	if tipped.Tip != 50 {
		t.Errorf("expected tip 50, got %.2f", tipped.Tip)
	}
}

func TestLifecycle_ConcurrentTipAndCompleteKeepBothEffects(t *testing.T) {
	t.Parallel()

	// A tip races the completion of the same ride. Whichever order they
	// land in, the completed ride must carry the tip and the settlement
	// must apply exactly once.
	for i := 0; i < 200; i++ {
		f := newLifecycleFixture(t)
		ctx := context.Background()
		ride := f.createBikeRide(t)

		if _, err := f.lifecycle.Accept(ctx, ride.ID, "d1"); err != nil {
			t.Fatalf("accept: %v", err)
		}
		if _, err := f.lifecycle.Arrive(ctx, ride.ID); err != nil {
			t.Fatalf("arrive: %v", err)
		}
		if _, err := f.lifecycle.Start(ctx, ride.ID); err != nil {
			t.Fatalf("start: %v", err)
		}

		var (
			wg          sync.WaitGroup
			tipErr      error
			completeErr error
		)
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, tipErr = f.lifecycle.Tip(ctx, ride.ID, 50)
		}()
		go func() {
			defer wg.Done()
			<-start
			_, completeErr = f.lifecycle.Complete(ctx, ride.ID)
		}()
		close(start)
		wg.Wait()

		if tipErr != nil {
			t.Fatalf("iteration %d: tip: %v", i, tipErr)
		}
		if completeErr != nil {
			t.Fatalf("iteration %d: complete: %v", i, completeErr)
		}

		got, _ := f.rideRepo.GetByID(ctx, ride.ID)
		if got.Status != domain.RideStatusCompleted {
			t.Fatalf("iteration %d: expected COMPLETED, got %s", i, got.Status)
		}
		if got.Tip != 50 {
			t.Fatalf("iteration %d: tip lost, ride records %.2f", i, got.Tip)
		}

		// 850 - 2.50 commission + 50 tip; earnings fare 25 + tip 50.
		partner, _ := f.partnerRepo.GetByID(ctx, "d1")
		if partner.Balance != 897.50 || partner.TotalEarnings != 75 {
			t.Fatalf("iteration %d: partner balance %.2f / earnings %.2f",
				i, partner.Balance, partner.TotalEarnings)
		}
		if got := f.ledger.CommissionTotal(); got != 2.5 {
			t.Fatalf("iteration %d: expected commission total 2.5, got %.2f", i, got)
		}

		// CASH ride: the rider only parts with the tip.
		user, _ := f.userRepo.GetByID(ctx, "u1")
		if user.Balance != 1450.50 {
			t.Fatalf("iteration %d: expected rider balance 1450.50, got %.2f", i, user.Balance)
		}
	}
}
