package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"sakay/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideRequested  NotificationType = "RIDE_REQUESTED"
	NotificationRideAccepted   NotificationType = "RIDE_ACCEPTED"
	NotificationPartnerArrived NotificationType = "PARTNER_ARRIVED"
	NotificationRideStarted    NotificationType = "RIDE_STARTED"
	NotificationRideCompleted  NotificationType = "RIDE_COMPLETED"
	NotificationRideCancelled  NotificationType = "RIDE_CANCELLED"
	NotificationTipReceived    NotificationType = "TIP_RECEIVED"
	NotificationReceiptReady   NotificationType = "RECEIPT_READY"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string // User or Partner ID
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client
	// - WebSocket connections for real-time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideRequested announces a new booking to matching partners.
func (s *NotificationService) NotifyRideRequested(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationRideRequested,
		RecipientID: string(ride.ServiceType), // broadcast channel per service category
		Title:       "New Booking",
		Message:     fmt.Sprintf("New %s booking from %s", ride.ServiceType, ride.Origin),
		Data: map[string]interface{}{
			"ride_id":      ride.ID,
			"service_type": ride.ServiceType,
			"fare":         ride.Fare,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideAccepted tells the rider their booking was accepted.
func (s *NotificationService) NotifyRideAccepted(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationRideAccepted,
		RecipientID: ride.UserID,
		Title:       "Booking Accepted",
		Message:     fmt.Sprintf("%s accepted your booking", ride.DriverName),
		Data: map[string]interface{}{
			"ride_id":    ride.ID,
			"partner_id": ride.DriverID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPartnerArrived tells the rider their partner is at the pickup point.
func (s *NotificationService) NotifyPartnerArrived(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationPartnerArrived,
		RecipientID: ride.UserID,
		Title:       "Partner Arrived",
		Message:     fmt.Sprintf("%s has arrived at %s", ride.DriverName, ride.Origin),
		Data: map[string]interface{}{
			"ride_id": ride.ID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideStarted tells the rider the job is underway.
func (s *NotificationService) NotifyRideStarted(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationRideStarted,
		RecipientID: ride.UserID,
		Title:       "Trip Started",
		Message:     "Your trip is underway.",
		Data: map[string]interface{}{
			"ride_id": ride.ID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideCompleted tells the rider the job finished and what it cost.
func (s *NotificationService) NotifyRideCompleted(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationRideCompleted,
		RecipientID: ride.UserID,
		Title:       "Trip Completed",
		Message:     fmt.Sprintf("Your trip is complete. Total fare: PHP %.2f (%s)", ride.Fare, ride.PaymentMethod),
		Data: map[string]interface{}{
			"ride_id":        ride.ID,
			"fare":           ride.Fare,
			"payment_method": ride.PaymentMethod,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideCancelled tells the bound partner, if any, that the booking is off.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride) error {
	if ride.DriverID == "" {
		return nil // no one to notify
	}
	notification := Notification{
		Type:        NotificationRideCancelled,
		RecipientID: ride.DriverID,
		Title:       "Booking Cancelled",
		Message:     "The rider has cancelled the booking.",
		Data: map[string]interface{}{
			"ride_id": ride.ID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTipReceived tells the partner a tip landed.
func (s *NotificationService) NotifyTipReceived(ctx context.Context, ride *domain.Ride, amount float64) error {
	notification := Notification{
		Type:        NotificationTipReceived,
		RecipientID: ride.DriverID,
		Title:       "Tip Received",
		Message:     fmt.Sprintf("%s tipped you PHP %.2f", ride.UserName, amount),
		Data: map[string]interface{}{
			"ride_id": ride.ID,
			"amount":  amount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyReceiptReady tells the rider their receipt is ready. The formatted
// body rides along in the payload for email/print delivery.
func (s *NotificationService) NotifyReceiptReady(ctx context.Context, receipt *domain.Receipt, body string) error {
	notification := Notification{
		Type:        NotificationReceiptReady,
		RecipientID: receipt.UserID,
		Title:       "Receipt Ready",
		Message:     fmt.Sprintf("Your receipt for PHP %.2f is ready", receipt.Fare),
		Data: map[string]interface{}{
			"receipt_id": receipt.ID,
			"ride_id":    receipt.RideID,
			"fare":       receipt.Fare,
			"body":       body,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send push notification via FCM/APNS
	// 3. Broadcast via WebSocket for real-time updates

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
