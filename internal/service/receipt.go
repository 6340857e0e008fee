package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sakay/internal/domain"
)

// ReceiptService builds the settlement breakdown for completed rides.
type ReceiptService struct {
	notificationService *NotificationService
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(notificationService *NotificationService) *ReceiptService {
	return &ReceiptService{
		notificationService: notificationService,
	}
}

// Generate builds a receipt for a completed ride. The commission figure is
// derived from the ride's frozen fare with the same rate the ledger used,
// so the breakdown always matches what was actually settled.
func (s *ReceiptService) Generate(ctx context.Context, ride *domain.Ride) (*domain.Receipt, error) {
	if ride == nil || ride.ID == "" {
		return nil, ErrInvalidRideID
	}

	commission := ride.Fare * CommissionRate

	receipt := &domain.Receipt{
		ID:            uuid.New().String(),
		RideID:        ride.ID,
		UserID:        ride.UserID,
		DriverID:      ride.DriverID,
		ServiceType:   ride.ServiceType,
		Fare:          ride.Fare,
		Commission:    commission,
		NetToPartner:  ride.Fare - commission,
		Tip:           ride.Tip,
		PaymentMethod: ride.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyReceiptReady(ctx, receipt, s.FormatReceipt(receipt))
	}

	return receipt, nil
}

// FormatReceipt formats the receipt as a string (for email/print).
func (s *ReceiptService) FormatReceipt(receipt *domain.Receipt) string {
	return `
=====================================
         SAKAY RECEIPT
=====================================
Receipt ID: ` + receipt.ID + `
Ride ID: ` + receipt.RideID + `
Date: ` + receipt.CreatedAt.Format("Jan 02, 2006 3:04 PM") + `

SERVICE
-------------------------------------
Type: ` + string(receipt.ServiceType) + `

FARE BREAKDOWN
-------------------------------------
Fare:             PHP ` + formatFloat(receipt.Fare) + `
Tip:              PHP ` + formatFloat(receipt.Tip) + `
Platform Fee:     PHP ` + formatFloat(receipt.Commission) + `
-------------------------------------
Partner Net:      PHP ` + formatFloat(receipt.NetToPartner+receipt.Tip) + `

PAYMENT
-------------------------------------
Method: ` + string(receipt.PaymentMethod) + `

=====================================
    Thank you for riding with us!
=====================================
`
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
