package service

import (
	"context"
	"sync"

	"sakay/internal/domain"
	"sakay/internal/repository"
)

// CommissionRate is the platform's fixed cut of a completed ride's fare.
// Commission is always computed at settlement time from the ride's frozen
// fare, so historical figures stay stable if this constant ever changes:
// only rides settled afterwards use the new rate.
const CommissionRate = 0.10

// Ledger applies the monetary effects of ride completion, tipping, top-ups,
// and transfers to accounts. Every mutating operation runs under one mutex
// so each is a critical section: no partial settlement is ever visible.
type Ledger struct {
	mu          sync.Mutex
	userRepo    repository.UserRepository
	partnerRepo repository.PartnerRepository
	rideRepo    repository.RideRepository

	commissionTotal float64 // process-wide running total of collected commissions
}

// NewLedger creates a new Ledger.
func NewLedger(
	userRepo repository.UserRepository,
	partnerRepo repository.PartnerRepository,
	rideRepo repository.RideRepository,
) *Ledger {
	return &Ledger{
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
		rideRepo:    rideRepo,
	}
}

// SettleCompletion applies the monetary effects of a ride transitioning to
// COMPLETED: the partner pays the platform commission, earns the full fare,
// and — for WALLET rides — the rider's balance is debited by the fare,
// clamped at zero. All effects happen together or not at all.
//
// The lifecycle manager invokes this exactly once per ride, on the
// IN_PROGRESS -> COMPLETED transition.
func (l *Ledger) SettleCompletion(ctx context.Context, ride *domain.Ride) error {
	if ride == nil || ride.ID == "" {
		return ErrInvalidRideID
	}
	if ride.DriverID == "" {
		return ErrRideNotAccepted
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Validate everything up front so the apply phase cannot half-fail.
	partner, err := l.partnerRepo.GetByID(ctx, ride.DriverID)
	if err != nil {
		return err
	}

	var user *domain.User
	if ride.PaymentMethod == domain.PaymentMethodWallet {
		user, err = l.userRepo.GetByID(ctx, ride.UserID)
		if err != nil {
			return err
		}
	}

	commission := ride.Fare * CommissionRate

	partner.Balance = clampBalance(partner.Balance - commission)
	partner.TotalEarnings += ride.Fare
	if err := l.partnerRepo.Update(ctx, partner); err != nil {
		return err
	}

	if user != nil {
		user.Balance = clampBalance(user.Balance - ride.Fare)
		if err := l.userRepo.Update(ctx, user); err != nil {
			return err
		}
	}

	l.commissionTotal += commission
	return nil
}

// ApplyTip moves a tip from the rider to the ride's partner and accumulates
// it on the ride. Rejected when the amount is not positive, the ride has no
// partner bound, or the rider cannot cover it.
func (l *Ledger) ApplyTip(ctx context.Context, rideID string, amount float64) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ride, err := l.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID == "" {
		return nil, ErrRideNotAccepted
	}

	user, err := l.userRepo.GetByID(ctx, ride.UserID)
	if err != nil {
		return nil, err
	}
	if user.Balance < amount {
		return nil, ErrInsufficientBalance
	}

	partner, err := l.partnerRepo.GetByID(ctx, ride.DriverID)
	if err != nil {
		return nil, err
	}

	user.Balance -= amount
	if err := l.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	partner.Balance += amount
	partner.TotalEarnings += amount
	if err := l.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}

	ride.Tip += amount
	if err := l.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// Transfer moves an amount between two partner balances. Rejected unless
// the sender can cover it; on rejection both balances are unchanged.
func (l *Ledger) Transfer(ctx context.Context, senderID, receiverID string, amount float64) error {
	if senderID == "" || receiverID == "" {
		return ErrInvalidPartnerID
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sender, err := l.partnerRepo.GetByID(ctx, senderID)
	if err != nil {
		return err
	}
	receiver, err := l.partnerRepo.GetByID(ctx, receiverID)
	if err != nil {
		return err
	}

	if sender.Balance < amount {
		return ErrInsufficientBalance
	}

	sender.Balance -= amount
	if err := l.partnerRepo.Update(ctx, sender); err != nil {
		return err
	}

	receiver.Balance += amount
	return l.partnerRepo.Update(ctx, receiver)
}

// TopUp unconditionally credits an account's balance. The payment
// collaborator has already reported a successful capture before this is
// invoked. Each call is independent and additive, not idempotent.
func (l *Ledger) TopUp(ctx context.Context, accountID string, role domain.Role, amount float64) error {
	if accountID == "" {
		return ErrInvalidUserID
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if role == domain.RoleUser {
		user, err := l.userRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		user.Balance += amount
		return l.userRepo.Update(ctx, user)
	}

	partner, err := l.partnerRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	partner.Balance += amount
	return l.partnerRepo.Update(ctx, partner)
}

// CommissionTotal returns the running total of collected commissions.
func (l *Ledger) CommissionTotal() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commissionTotal
}

// SeedCommissionTotal overwrites the commission running total. Used by the
// demo bootstrap and reset.
func (l *Ledger) SeedCommissionTotal(total float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commissionTotal = total
}

// clampBalance enforces the non-negative balance invariant at the
// mutation site.
func clampBalance(balance float64) float64 {
	if balance < 0 {
		return 0
	}
	return balance
}
