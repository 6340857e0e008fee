package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sakay/internal/domain"
	"sakay/internal/repository"
	"sakay/internal/service"
)

// PartnerHandler handles HTTP requests for partner accounts.
type PartnerHandler struct {
	accountService *service.AccountService
	ledger         *service.Ledger
	partnerRepo    repository.PartnerRepository
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(accountService *service.AccountService, ledger *service.Ledger, partnerRepo repository.PartnerRepository) *PartnerHandler {
	return &PartnerHandler{
		accountService: accountService,
		ledger:         ledger,
		partnerRepo:    partnerRepo,
	}
}

// RegisterPartnerRequest is the HTTP request body for partner registration.
type RegisterPartnerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	VehicleType  string `json:"vehicle_type"` // service category the partner fulfils
	VehicleModel string `json:"vehicle_model,omitempty"`
	PlateNumber  string `json:"plate_number,omitempty"`

	ServiceRate     float64 `json:"service_rate,omitempty"`
	ServiceCategory string  `json:"service_category,omitempty"`
	RentalPrice     float64 `json:"rental_price,omitempty"`
	CarWashFee      float64 `json:"car_wash_fee,omitempty"`
	StayPrice       float64 `json:"stay_price,omitempty"`
}

// PartnerResponse is the HTTP representation of a partner account.
type PartnerResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Avatar        string  `json:"avatar,omitempty"`
	Rating        float64 `json:"rating"`
	Balance       float64 `json:"balance"`
	Status        string  `json:"status"`
	JoinDate      string  `json:"join_date"`
	VehicleType   string  `json:"vehicle_type"`
	VehicleModel  string  `json:"vehicle_model,omitempty"`
	PlateNumber   string  `json:"plate_number,omitempty"`
	IsOnline      bool    `json:"is_online"`
	TotalEarnings float64 `json:"total_earnings"`

	ServiceRate     float64 `json:"service_rate,omitempty"`
	ServiceCategory string  `json:"service_category,omitempty"`
	RentalPrice     float64 `json:"rental_price,omitempty"`
	CarWashFee      float64 `json:"car_wash_fee,omitempty"`
	StayPrice       float64 `json:"stay_price,omitempty"`
}

func toPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		Avatar:        p.Avatar,
		Rating:        p.Rating,
		Balance:       p.Balance,
		Status:        string(p.Status),
		JoinDate:      p.JoinDate.Format(time.RFC3339),
		VehicleType:   string(p.VehicleType),
		VehicleModel:  p.VehicleModel,
		PlateNumber:   p.PlateNumber,
		IsOnline:      p.IsOnline,
		TotalEarnings: p.TotalEarnings,

		ServiceRate:     p.ServiceRate,
		ServiceCategory: p.ServiceCategory,
		RentalPrice:     p.RentalPrice,
		CarWashFee:      p.CarWashFee,
		StayPrice:       p.StayPrice,
	}
}

// Register handles POST /v1/partners/register
func (h *PartnerHandler) Register(c *gin.Context) {
	var req RegisterPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || (req.Email == "" && req.Phone == "") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and email or phone are required"})
		return
	}

	contact := req.Email
	if contact == "" {
		contact = req.Phone
	}
	existing, err := h.partnerRepo.GetByContact(c.Request.Context(), contact)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Partner already registered",
			"partner": toPartnerResponse(existing),
		})
		return
	}

	partner, err := h.accountService.RegisterPartner(c.Request.Context(), service.RegisterPartnerRequest{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		VehicleType:  domain.ServiceType(req.VehicleType),
		VehicleModel: req.VehicleModel,
		PlateNumber:  req.PlateNumber,

		ServiceRate:     req.ServiceRate,
		ServiceCategory: req.ServiceCategory,
		RentalPrice:     req.RentalPrice,
		CarWashFee:      req.CarWashFee,
		StayPrice:       req.StayPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPartnerResponse(partner))
}

// Get handles GET /v1/partners/:id
func (h *PartnerHandler) Get(c *gin.Context) {
	partner, err := h.partnerRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPartnerResponse(partner))
}

// GetAll handles GET /v1/partners
func (h *PartnerHandler) GetAll(c *gin.Context) {
	partners, err := h.partnerRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		response = append(response, toPartnerResponse(p))
	}
	respondJSON(c, http.StatusOK, response)
}

// SetOnlineRequest is the HTTP request body for toggling availability.
type SetOnlineRequest struct {
	Online bool    `json:"online"`
	Lat    float64 `json:"lat,omitempty"`
	Lng    float64 `json:"lng,omitempty"`
}

// SetOnline handles POST /v1/partners/:id/online
func (h *PartnerHandler) SetOnline(c *gin.Context) {
	var req SetOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	partner, err := h.accountService.SetPartnerOnline(c.Request.Context(), service.SetPartnerOnlineRequest{
		PartnerID: c.Param("id"),
		Online:    req.Online,
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPartnerResponse(partner))
}

// UpdatePartnerProfileRequest is the HTTP request body for profile updates.
type UpdatePartnerProfileRequest struct {
	Name         string  `json:"name,omitempty"`
	Avatar       string  `json:"avatar,omitempty"`
	VehicleModel string  `json:"vehicle_model,omitempty"`
	PlateNumber  string  `json:"plate_number,omitempty"`
	ServiceRate  float64 `json:"service_rate,omitempty"`
	RentalPrice  float64 `json:"rental_price,omitempty"`
	CarWashFee   float64 `json:"car_wash_fee,omitempty"`
	StayPrice    float64 `json:"stay_price,omitempty"`
}

// UpdateProfile handles PATCH /v1/partners/:id/profile
func (h *PartnerHandler) UpdateProfile(c *gin.Context) {
	var req UpdatePartnerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	partner, err := h.accountService.UpdatePartnerProfile(c.Request.Context(), service.UpdatePartnerProfileRequest{
		PartnerID:    c.Param("id"),
		Name:         req.Name,
		Avatar:       req.Avatar,
		VehicleModel: req.VehicleModel,
		PlateNumber:  req.PlateNumber,
		ServiceRate:  req.ServiceRate,
		RentalPrice:  req.RentalPrice,
		CarWashFee:   req.CarWashFee,
		StayPrice:    req.StayPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPartnerResponse(partner))
}

// TransferRequest is the HTTP request body for partner-to-partner transfers.
type TransferRequest struct {
	ReceiverID string  `json:"receiver_id"`
	Amount     float64 `json:"amount"`
}

// Transfer handles POST /v1/partners/:id/transfer
func (h *PartnerHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.ledger.Transfer(c.Request.Context(), c.Param("id"), req.ReceiverID, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	sender, err := h.partnerRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPartnerResponse(sender))
}
