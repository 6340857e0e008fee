package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sakay/internal/domain"
	"sakay/internal/redis"
	"sakay/internal/repository"
)

// AccountService handles user and partner account operations.
type AccountService struct {
	userRepo      repository.UserRepository
	partnerRepo   repository.PartnerRepository
	positionStore redis.PositionStoreInterface
	cacheStore    redis.CacheStoreInterface
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	userRepo repository.UserRepository,
	partnerRepo repository.PartnerRepository,
	positionStore redis.PositionStoreInterface,
	cacheStore redis.CacheStoreInterface,
) *AccountService {
	return &AccountService{
		userRepo:      userRepo,
		partnerRepo:   partnerRepo,
		positionStore: positionStore,
		cacheStore:    cacheStore,
	}
}

// RegisterUserRequest contains the parameters for registering a rider.
type RegisterUserRequest struct {
	Name  string
	Email string
	Phone string
}

// RegisterUser creates a rider account. Riders are approved immediately and
// start with an empty wallet and a clean 5.0 rating.
func (s *AccountService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if req.Name == "" || (req.Email == "" && req.Phone == "") {
		return nil, ErrInvalidUserID
	}

	user := &domain.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Rating:   5.0,
		Balance:  0,
		Status:   domain.AccountStatusApproved,
		JoinDate: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// RegisterPartnerRequest contains the parameters for registering a partner.
type RegisterPartnerRequest struct {
	Name         string
	Email        string
	Phone        string
	VehicleType  domain.ServiceType
	VehicleModel string
	PlateNumber  string

	ServiceRate     float64
	ServiceCategory string
	RentalPrice     float64
	CarWashFee      float64
	StayPrice       float64
}

// RegisterPartner creates a partner account. Partners start PENDING and
// offline; an admin approval is required before they can take jobs.
func (s *AccountService) RegisterPartner(ctx context.Context, req RegisterPartnerRequest) (*domain.Partner, error) {
	if req.Name == "" || (req.Email == "" && req.Phone == "") {
		return nil, ErrInvalidPartnerID
	}
	if _, err := ValidateServiceType(string(req.VehicleType)); err != nil {
		return nil, err
	}

	partner := &domain.Partner{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Rating:       0,
		Balance:      0,
		Status:       domain.AccountStatusPending,
		JoinDate:     time.Now(),
		VehicleType:  req.VehicleType,
		VehicleModel: req.VehicleModel,
		PlateNumber:  req.PlateNumber,
		IsOnline:     false,

		ServiceRate:     req.ServiceRate,
		ServiceCategory: req.ServiceCategory,
		RentalPrice:     req.RentalPrice,
		CarWashFee:      req.CarWashFee,
		StayPrice:       req.StayPrice,
	}

	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, err
	}

	return partner, nil
}

// UpdateAccountStatus moves an account between PENDING, APPROVED, and
// SUSPENDED. Suspending a partner also forces them offline.
func (s *AccountService) UpdateAccountStatus(ctx context.Context, accountID string, role domain.Role, status domain.AccountStatus) error {
	switch status {
	case domain.AccountStatusPending, domain.AccountStatusApproved, domain.AccountStatusSuspended:
	default:
		return ErrInvalidAccountStatus
	}

	if role == domain.RoleUser {
		user, err := s.userRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		user.Status = status
		return s.userRepo.Update(ctx, user)
	}

	partner, err := s.partnerRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	partner.Status = status
	if status != domain.AccountStatusApproved && partner.IsOnline {
		partner.IsOnline = false
		s.clearPartnerPresence(ctx, partner.ID)
	}
	return s.partnerRepo.Update(ctx, partner)
}

// SetPartnerOnlineRequest contains the parameters for toggling availability.
type SetPartnerOnlineRequest struct {
	PartnerID string
	Online    bool
	Lat       float64
	Lng       float64
}

// SetPartnerOnline toggles a partner's availability. Going online requires
// an approved account and registers the partner's position in the GEO
// index; going offline clears position and cache state.
func (s *AccountService) SetPartnerOnline(ctx context.Context, req SetPartnerOnlineRequest) (*domain.Partner, error) {
	if req.PartnerID == "" {
		return nil, ErrInvalidPartnerID
	}

	partner, err := s.partnerRepo.GetByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}

	if req.Online {
		if partner.Status != domain.AccountStatusApproved {
			return nil, ErrAccountSuspended
		}
		partner.IsOnline = true
		if err := s.partnerRepo.Update(ctx, partner); err != nil {
			return nil, err
		}

		if s.positionStore != nil && req.Lat != 0 && req.Lng != 0 {
			_ = s.positionStore.SetPosition(ctx, partner.ID, req.Lat, req.Lng)
		}
		if s.cacheStore != nil {
			_ = s.cacheStore.SetPartner(ctx, &redis.CachedPartner{
				ID:          partner.ID,
				Name:        partner.Name,
				Phone:       partner.Phone,
				Status:      string(partner.Status),
				VehicleType: string(partner.VehicleType),
				IsOnline:    true,
			})
		}
		return partner, nil
	}

	partner.IsOnline = false
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	s.clearPartnerPresence(ctx, partner.ID)
	return partner, nil
}

// UpdateUserProfile updates a rider's editable fields.
func (s *AccountService) UpdateUserProfile(ctx context.Context, accountID, name, avatar string) (*domain.User, error) {
	if accountID == "" {
		return nil, ErrInvalidUserID
	}
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePartnerProfileRequest contains the editable partner fields. Zero
// values leave the current value in place.
type UpdatePartnerProfileRequest struct {
	PartnerID    string
	Name         string
	Avatar       string
	VehicleModel string
	PlateNumber  string
	ServiceRate  float64
	RentalPrice  float64
	CarWashFee   float64
	StayPrice    float64
}

// UpdatePartnerProfile updates a partner's editable fields. Pricing changes
// affect future quotes only; existing rides keep their frozen fares.
func (s *AccountService) UpdatePartnerProfile(ctx context.Context, req UpdatePartnerProfileRequest) (*domain.Partner, error) {
	if req.PartnerID == "" {
		return nil, ErrInvalidPartnerID
	}
	partner, err := s.partnerRepo.GetByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		partner.Name = req.Name
	}
	if req.Avatar != "" {
		partner.Avatar = req.Avatar
	}
	if req.VehicleModel != "" {
		partner.VehicleModel = req.VehicleModel
	}
	if req.PlateNumber != "" {
		partner.PlateNumber = req.PlateNumber
	}
	if req.ServiceRate > 0 {
		partner.ServiceRate = req.ServiceRate
	}
	if req.RentalPrice > 0 {
		partner.RentalPrice = req.RentalPrice
	}
	if req.CarWashFee > 0 {
		partner.CarWashFee = req.CarWashFee
	}
	if req.StayPrice > 0 {
		partner.StayPrice = req.StayPrice
	}
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidatePartner(ctx, partner.ID)
	}
	return partner, nil
}

// DeleteAccount removes an account. Partner deletions also clear any
// presence state left in Redis.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string, role domain.Role) error {
	if accountID == "" {
		return ErrInvalidUserID
	}

	if role == domain.RoleUser {
		return s.userRepo.Delete(ctx, accountID)
	}

	if err := s.partnerRepo.Delete(ctx, accountID); err != nil {
		return err
	}
	s.clearPartnerPresence(ctx, accountID)
	return nil
}

// clearPartnerPresence drops a partner's GEO entry and cache state.
// Best-effort: presence data is rebuilt the next time the partner comes
// online.
func (s *AccountService) clearPartnerPresence(ctx context.Context, partnerID string) {
	if s.positionStore != nil {
		_ = s.positionStore.RemovePosition(ctx, partnerID)
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidatePartner(ctx, partnerID)
	}
}

// PartnerSummary returns a partner's display summary, served cache-aside:
// a hit is returned as-is, a miss loads from the repository and primes the
// cache for the next caller.
func (s *AccountService) PartnerSummary(ctx context.Context, partnerID string) (*redis.CachedPartner, error) {
	if partnerID == "" {
		return nil, ErrInvalidPartnerID
	}

	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetPartner(ctx, partnerID); err == nil && cached != nil {
			return cached, nil
		}
	}

	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	summary := &redis.CachedPartner{
		ID:          partner.ID,
		Name:        partner.Name,
		Phone:       partner.Phone,
		Status:      string(partner.Status),
		VehicleType: string(partner.VehicleType),
		IsOnline:    partner.IsOnline,
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.SetPartner(ctx, summary)
	}
	return summary, nil
}
