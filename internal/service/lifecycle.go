package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"sakay/internal/domain"
	"sakay/internal/redis"
	"sakay/internal/repository"
)

const acceptLockTTL = 10 * time.Second

// AllowedTransitions represents the ride state flow as data. PENDING is
// initial; COMPLETED and CANCELLED are terminal. Any request not present
// here is rejected and the ride is left unchanged.
var AllowedTransitions = map[domain.RideStatus][]domain.RideStatus{
	domain.RideStatusPending:    {domain.RideStatusAccepted, domain.RideStatusCancelled},
	domain.RideStatusAccepted:   {domain.RideStatusArrived, domain.RideStatusCancelled},
	domain.RideStatusArrived:    {domain.RideStatusInProgress, domain.RideStatusCancelled},
	domain.RideStatusInProgress: {domain.RideStatusCompleted},
}

// CanTransition reports whether a ride may move from one status to another.
func CanTransition(from, to domain.RideStatus) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LifecycleService owns ride creation and status transitions. It invokes
// the fare calculator once at creation (the quote is frozen afterwards) and
// the ledger exactly once, on the transition into COMPLETED. Every write to
// a ride record goes through its mutex, so a transition never clobbers a
// concurrent tip and vice versa.
type LifecycleService struct {
	mu sync.Mutex

	rideRepo    repository.RideRepository
	userRepo    repository.UserRepository
	partnerRepo repository.PartnerRepository

	fareCalculator      *FareCalculator
	ledger              *Ledger
	lockStore           redis.LockStoreInterface
	receiptService      *ReceiptService
	notificationService *NotificationService
}

// NewLifecycleService creates a new LifecycleService. The lock store,
// receipt service, and notification service are optional.
func NewLifecycleService(
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	partnerRepo repository.PartnerRepository,
	fareCalculator *FareCalculator,
	ledger *Ledger,
	lockStore redis.LockStoreInterface,
	receiptService *ReceiptService,
	notificationService *NotificationService,
) *LifecycleService {
	return &LifecycleService{
		rideRepo:            rideRepo,
		userRepo:            userRepo,
		partnerRepo:         partnerRepo,
		fareCalculator:      fareCalculator,
		ledger:              ledger,
		lockStore:           lockStore,
		receiptService:      receiptService,
		notificationService: notificationService,
	}
}

// CreateRideRequest contains the parameters for creating a ride. PartnerID
// names the pre-selected professional, rental vehicle owner, or stay owner
// whose pricing the quote reads; the partner itself is only bound at accept.
type CreateRideRequest struct {
	UserID        string
	ServiceType   domain.ServiceType
	PaymentMethod domain.PaymentMethod

	Origin            string
	Destination       string
	OriginCoords      *domain.Point
	DestinationCoords *domain.Point
	DistanceKm        float64

	ErrandItems string

	PartnerID          string
	ServiceDescription string
	ServiceCategory    string
	RateType           domain.RateType
	Duration           int

	IsPriority bool

	RentalDays     int
	IsOutsideCity  bool
	WithDriver     bool
	IncludeCarWash bool

	StayTitle    string
	CheckInDate  time.Time
	CheckOutDate time.Time

	IsAdvanceBooking bool
	ScheduledDate    string
}

// CreateRide quotes and creates a new ride in PENDING state. The fare is
// computed once here and never recomputed. WALLET bookings are rejected
// when the rider cannot cover the quote, and a rider may hold at most one
// active ride.
func (s *LifecycleService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.PaymentMethod != domain.PaymentMethodCash && req.PaymentMethod != domain.PaymentMethodWallet {
		return nil, ErrInvalidPaymentMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.AccountStatusApproved {
		return nil, ErrAccountSuspended
	}

	active, err := s.rideRepo.GetActiveByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrUserHasActiveRide
	}

	fareReq, ride, err := s.buildQuote(ctx, req)
	if err != nil {
		return nil, err
	}

	fare, err := s.fareCalculator.ComputeFare(fareReq)
	if err != nil {
		return nil, err
	}

	if req.PaymentMethod == domain.PaymentMethodWallet && user.Balance < fare {
		return nil, ErrInsufficientBalance
	}

	ride.ID = uuid.New().String()
	ride.UserID = user.ID
	ride.UserName = user.Name
	ride.Status = domain.RideStatusPending
	ride.Fare = fare
	ride.CreatedAt = time.Now()

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideRequested(ctx, ride)
	}

	return ride, nil
}

// buildQuote assembles the fare request and the ride skeleton from the
// create request, resolving pricing off the pre-selected partner where the
// service type calls for one.
func (s *LifecycleService) buildQuote(ctx context.Context, req CreateRideRequest) (FareRequest, *domain.Ride, error) {
	ride := &domain.Ride{
		ServiceType:       req.ServiceType,
		PaymentMethod:     req.PaymentMethod,
		Origin:            req.Origin,
		Destination:       req.Destination,
		OriginCoords:      defaultCoords(req.OriginCoords),
		DestinationCoords: defaultCoords(req.DestinationCoords),
		ErrandItems:       req.ErrandItems,
		IsPriority:        req.ServiceType == domain.ServiceTransportBike && req.IsPriority,
		IsAdvanceBooking:  req.IsAdvanceBooking,
		ScheduledDate:     req.ScheduledDate,
	}

	fareReq := FareRequest{
		ServiceType: req.ServiceType,
		DistanceKm:  req.DistanceKm,
		IsPriority:  ride.IsPriority,
	}

	switch req.ServiceType {
	case domain.ServiceTransportCar, domain.ServiceTransportBike, domain.ServiceErrand:
		// Distance-based or flat; nothing to resolve.

	case domain.ServiceProfessional:
		partner, err := s.quotedPartner(ctx, req.PartnerID)
		if err != nil {
			return FareRequest{}, nil, err
		}
		rateType := req.RateType
		if rateType == "" {
			rateType = domain.RateHourly
		}
		fareReq.RateType = rateType
		fareReq.Duration = req.Duration
		fareReq.ServiceRate = partner.ServiceRate
		ride.ServiceDescription = req.ServiceDescription
		ride.ServiceCategory = partner.ServiceCategory
		ride.RateType = rateType
		ride.Duration = req.Duration

	case domain.ServiceRental:
		partner, err := s.quotedPartner(ctx, req.PartnerID)
		if err != nil {
			return FareRequest{}, nil, err
		}
		fareReq.VehicleModel = partner.VehicleModel
		fareReq.RentalDays = req.RentalDays
		fareReq.IsOutsideCity = req.IsOutsideCity
		fareReq.WithDriver = req.WithDriver
		fareReq.IncludeCarWash = req.IncludeCarWash
		fareReq.CarWashFee = partner.CarWashFee
		ride.RentalVehicle = partner.VehicleModel
		ride.RentalDays = req.RentalDays
		ride.IsOutsideCity = req.IsOutsideCity
		ride.WithDriver = req.WithDriver
		ride.IncludeCarWash = req.IncludeCarWash
		if req.IncludeCarWash {
			ride.CarWashFee = partner.CarWashFee
		}

	case domain.ServiceStay:
		partner, err := s.quotedPartner(ctx, req.PartnerID)
		if err != nil {
			return FareRequest{}, nil, err
		}
		fareReq.NightlyPrice = partner.StayPrice
		fareReq.CheckInDate = req.CheckInDate
		fareReq.CheckOutDate = req.CheckOutDate
		ride.StayTitle = req.StayTitle
		ride.CheckInDate = req.CheckInDate
		ride.CheckOutDate = req.CheckOutDate
		ride.StayNights = StayNights(req.CheckInDate, req.CheckOutDate)

	default:
		return FareRequest{}, nil, ErrInvalidServiceType
	}

	return fareReq, ride, nil
}

// quotedPartner loads the pre-selected partner a quote prices against.
// A missing selection is an incomplete quote, not a lookup failure.
func (s *LifecycleService) quotedPartner(ctx context.Context, partnerID string) (*domain.Partner, error) {
	if partnerID == "" {
		return nil, ErrIncompleteQuote
	}
	return s.partnerRepo.GetByID(ctx, partnerID)
}

// Accept binds a partner to a PENDING ride. The binding is immutable: a
// ride is never reassigned once accepted. A short-lived partner lock keeps
// two concurrent acceptances from racing on the same partner.
func (s *LifecycleService) Accept(ctx context.Context, rideID, partnerID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if partnerID == "" {
		return nil, ErrInvalidPartnerID
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquirePartnerLock(ctx, partnerID, acceptLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrPartnerBusy
		}
		defer func() { _ = s.lockStore.ReleasePartnerLock(ctx, partnerID) }()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(ride.Status, domain.RideStatusAccepted) {
		return nil, ErrInvalidTransition
	}

	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.Status != domain.AccountStatusApproved || !partner.IsOnline {
		return nil, ErrPartnerNotEligible
	}
	if partner.VehicleType != ride.ServiceType {
		return nil, ErrPartnerNotEligible
	}

	activeRide, err := s.rideRepo.GetActiveByDriverID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if activeRide != nil {
		return nil, ErrPartnerHasActiveRide
	}

	ride.Status = domain.RideStatusAccepted
	ride.DriverID = partner.ID
	ride.DriverName = partner.Name

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideAccepted(ctx, ride)
	}

	return ride, nil
}

// Arrive marks the partner as arrived at the pickup point.
func (s *LifecycleService) Arrive(ctx context.Context, rideID string) (*domain.Ride, error) {
	ride, err := s.transition(ctx, rideID, domain.RideStatusArrived)
	if err != nil {
		return nil, err
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyPartnerArrived(ctx, ride)
	}
	return ride, nil
}

// Start marks the job as underway.
func (s *LifecycleService) Start(ctx context.Context, rideID string) (*domain.Ride, error) {
	ride, err := s.transition(ctx, rideID, domain.RideStatusInProgress)
	if err != nil {
		return nil, err
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideStarted(ctx, ride)
	}
	return ride, nil
}

// CompleteResponse contains the result of completing a ride.
type CompleteResponse struct {
	Ride    *domain.Ride
	Receipt *domain.Receipt
}

// Complete moves an IN_PROGRESS ride to COMPLETED and settles it. The
// ledger fires before the status flips so a settlement failure leaves the
// ride IN_PROGRESS; once COMPLETED, the transition table has no outgoing
// edge, so settlement can never double-fire.
func (s *LifecycleService) Complete(ctx context.Context, rideID string) (*CompleteResponse, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(ride.Status, domain.RideStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	if err := s.ledger.SettleCompletion(ctx, ride); err != nil {
		return nil, err
	}

	ride.Status = domain.RideStatusCompleted
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	var receipt *domain.Receipt
	if s.receiptService != nil {
		receipt, _ = s.receiptService.Generate(ctx, ride)
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideCompleted(ctx, ride)
	}

	return &CompleteResponse{Ride: ride, Receipt: receipt}, nil
}

// Cancel cancels a ride that has not yet started. No settlement occurs.
func (s *LifecycleService) Cancel(ctx context.Context, rideID string) (*domain.Ride, error) {
	ride, err := s.transition(ctx, rideID, domain.RideStatusCancelled)
	if err != nil {
		return nil, err
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideCancelled(ctx, ride)
	}
	return ride, nil
}

// Tip forwards a tip to the ledger and notifies the partner. Allowed at any
// point after a partner is bound, including on completed rides. Runs under
// the lifecycle mutex: the ledger writes the ride record here, and that
// write must not interleave with a concurrent status transition.
func (s *LifecycleService) Tip(ctx context.Context, rideID string, amount float64) (*domain.Ride, error) {
	s.mu.Lock()
	ride, err := s.ledger.ApplyTip(ctx, rideID, amount)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTipReceived(ctx, ride, amount)
	}
	return ride, nil
}

// GetRide retrieves a ride by ID.
func (s *LifecycleService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// transition applies a side-effect-free status change via the table.
func (s *LifecycleService) transition(ctx context.Context, rideID string, to domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(ride.Status, to) {
		return nil, ErrInvalidTransition
	}

	ride.Status = to
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// ValidatePaymentMethod validates a payment method string, defaulting to CASH.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCash, domain.PaymentMethodWallet:
		return domain.PaymentMethod(method), nil
	case "":
		return domain.PaymentMethodCash, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// ValidateServiceType validates a service type string.
func ValidateServiceType(serviceType string) (domain.ServiceType, error) {
	switch domain.ServiceType(serviceType) {
	case domain.ServiceTransportCar, domain.ServiceTransportBike, domain.ServiceErrand,
		domain.ServiceProfessional, domain.ServiceRental, domain.ServiceStay:
		return domain.ServiceType(serviceType), nil
	default:
		return "", ErrInvalidServiceType
	}
}

// City-center defaults for bookings that arrive without coordinates.
const (
	defaultCenterLat = 8.47
	defaultCenterLng = 124.64
	coordSpread      = 0.04
)

// defaultCoords returns the given point, or a random point near the city
// center when the booking carried none.
func defaultCoords(p *domain.Point) domain.Point {
	if p != nil {
		return *p
	}
	return domain.Point{
		Lat: defaultCenterLat + (rand.Float64()-0.5)*coordSpread,
		Lng: defaultCenterLng + (rand.Float64()-0.5)*coordSpread,
	}
}
