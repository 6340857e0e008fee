package service

import (
	"context"

	"sakay/internal/domain"
)

// PaymentGateway is the interface for an external cash-in provider.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64) (bool, error)
}

// MockGateway is a mock implementation of PaymentGateway for testing.
type MockGateway struct{}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Charge simulates a cash-in capture. Always succeeds.
func (g *MockGateway) Charge(ctx context.Context, amount float64) (bool, error) {
	// Mock implementation: always succeeds.
	return true, nil
}

// WalletService fronts the ledger's top-up with the external gateway: the
// balance is only credited after the provider confirms the capture.
type WalletService struct {
	gateway PaymentGateway
	ledger  *Ledger
}

// NewWalletService creates a new WalletService.
func NewWalletService(gateway PaymentGateway, ledger *Ledger) *WalletService {
	return &WalletService{
		gateway: gateway,
		ledger:  ledger,
	}
}

// TopUpRequest contains the parameters for a wallet top-up.
type TopUpRequest struct {
	AccountID string
	Role      domain.Role
	Amount    float64
}

// TopUp charges the gateway and credits the account on success. A declined
// or cancelled capture leaves the balance untouched.
func (s *WalletService) TopUp(ctx context.Context, req TopUpRequest) error {
	if req.AccountID == "" {
		return ErrInvalidUserID
	}
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}

	success, err := s.gateway.Charge(ctx, req.Amount)
	if err != nil {
		return err
	}
	if !success {
		return ErrPaymentCancelled
	}

	return s.ledger.TopUp(ctx, req.AccountID, req.Role, req.Amount)
}
