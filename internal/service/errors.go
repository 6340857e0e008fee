package service

import "errors"

var (
	// ErrInvalidTransition is returned when a requested ride status change is
	// not reachable from the current status. The ride is left unchanged.
	ErrInvalidTransition = errors.New("invalid ride status transition")

	// ErrIncompleteQuote is returned when fare computation is invoked with
	// missing or invalid required parameters. No ride is created.
	ErrIncompleteQuote = errors.New("incomplete quote: missing required parameters")

	// ErrInsufficientBalance is returned when a debit would drive a balance
	// negative. The operation is rejected with no partial effect.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidPartnerID is returned when the partner ID is empty.
	ErrInvalidPartnerID = errors.New("invalid partner id")

	// ErrInvalidRideID is returned when the ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidAmount is returned when a monetary amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidServiceType is returned when the service type is unknown.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidAccountStatus is returned when the account status is unknown.
	ErrInvalidAccountStatus = errors.New("invalid account status")

	// ErrUserHasActiveRide is returned when a rider already has a
	// non-terminal ride.
	ErrUserHasActiveRide = errors.New("user already has an active ride")

	// ErrPartnerHasActiveRide is returned when a partner already has a
	// non-terminal ride.
	ErrPartnerHasActiveRide = errors.New("partner already has an active ride")

	// ErrPartnerNotEligible is returned when a partner cannot take a ride:
	// offline, not approved, or wrong service category.
	ErrPartnerNotEligible = errors.New("partner not eligible for this ride")

	// ErrPartnerBusy is returned when another acceptance for the same
	// partner is already in flight.
	ErrPartnerBusy = errors.New("partner is being assigned to another ride")

	// ErrRideNotAccepted is returned when a tip or settlement is requested
	// for a ride with no partner bound.
	ErrRideNotAccepted = errors.New("ride has no assigned partner")

	// ErrAccountSuspended is returned when a suspended or pending account
	// attempts a gated operation.
	ErrAccountSuspended = errors.New("account is not approved")

	// ErrPaymentCancelled is returned when the payment collaborator reports
	// the charge was cancelled. No state changes.
	ErrPaymentCancelled = errors.New("payment cancelled")
)
