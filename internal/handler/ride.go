package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sakay/internal/domain"
	"sakay/internal/repository"
	"sakay/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	lifecycle *service.LifecycleService
	rideRepo  repository.RideRepository
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(lifecycle *service.LifecycleService, rideRepo repository.RideRepository) *RideHandler {
	return &RideHandler{
		lifecycle: lifecycle,
		rideRepo:  rideRepo,
	}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	UserID        string `json:"user_id"`
	ServiceType   string `json:"service_type"`
	PaymentMethod string `json:"payment_method,omitempty"` // CASH, WALLET

	Origin         string   `json:"origin,omitempty"`
	Destination    string   `json:"destination,omitempty"`
	OriginLat      *float64 `json:"origin_lat,omitempty"`
	OriginLng      *float64 `json:"origin_lng,omitempty"`
	DestinationLat *float64 `json:"destination_lat,omitempty"`
	DestinationLng *float64 `json:"destination_lng,omitempty"`
	DistanceKm     float64  `json:"distance_km,omitempty"`

	ErrandItems string `json:"errand_items,omitempty"`

	PartnerID          string `json:"partner_id,omitempty"` // pre-selected professional/owner
	ServiceDescription string `json:"service_description,omitempty"`
	RateType           string `json:"rate_type,omitempty"`
	Duration           int    `json:"duration,omitempty"`

	IsPriority bool `json:"is_priority,omitempty"`

	RentalDays     int  `json:"rental_days,omitempty"`
	IsOutsideCity  bool `json:"is_outside_city,omitempty"`
	WithDriver     bool `json:"with_driver,omitempty"`
	IncludeCarWash bool `json:"include_car_wash,omitempty"`

	StayTitle    string `json:"stay_title,omitempty"`
	CheckInDate  string `json:"check_in_date,omitempty"`  // RFC 3339
	CheckOutDate string `json:"check_out_date,omitempty"` // RFC 3339

	IsAdvanceBooking bool   `json:"is_advance_booking,omitempty"`
	ScheduledDate    string `json:"scheduled_date,omitempty"`
}

// AcceptRideRequest is the HTTP request body for accepting a ride.
type AcceptRideRequest struct {
	PartnerID string `json:"partner_id"`
}

// TipRequest is the HTTP request body for tipping a ride's partner.
type TipRequest struct {
	Amount float64 `json:"amount"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name,omitempty"`
	DriverID       string  `json:"driver_id,omitempty"`
	DriverName     string  `json:"driver_name,omitempty"`
	ServiceType    string  `json:"service_type"`
	Status         string  `json:"status"`
	Fare           float64 `json:"fare"`
	Tip            float64 `json:"tip,omitempty"`
	PaymentMethod  string  `json:"payment_method"`
	Origin         string  `json:"origin,omitempty"`
	Destination    string  `json:"destination,omitempty"`
	OriginLat      float64 `json:"origin_lat"`
	OriginLng      float64 `json:"origin_lng"`
	DestinationLat float64 `json:"destination_lat"`
	DestinationLng float64 `json:"destination_lng"`
	CreatedAt      string  `json:"created_at"`

	ErrandItems        string `json:"errand_items,omitempty"`
	ServiceDescription string `json:"service_description,omitempty"`
	ServiceCategory    string `json:"service_category,omitempty"`
	RateType           string `json:"rate_type,omitempty"`
	Duration           int    `json:"duration,omitempty"`
	IsPriority         bool   `json:"is_priority,omitempty"`
	RentalVehicle      string `json:"rental_vehicle,omitempty"`
	RentalDays         int    `json:"rental_days,omitempty"`
	StayTitle          string `json:"stay_title,omitempty"`
	StayNights         int    `json:"stay_nights,omitempty"`
	IsAdvanceBooking   bool   `json:"is_advance_booking,omitempty"`
	ScheduledDate      string `json:"scheduled_date,omitempty"`
}

// ReceiptResponse is the HTTP representation of a settlement receipt.
type ReceiptResponse struct {
	ID            string  `json:"id"`
	RideID        string  `json:"ride_id"`
	Fare          float64 `json:"fare"`
	Commission    float64 `json:"commission"`
	NetToPartner  float64 `json:"net_to_partner"`
	Tip           float64 `json:"tip"`
	PaymentMethod string  `json:"payment_method"`
}

// CompleteRideResponse is the HTTP response for completing a ride.
type CompleteRideResponse struct {
	Ride    RideResponse     `json:"ride"`
	Receipt *ReceiptResponse `json:"receipt,omitempty"`
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		DriverID:      r.DriverID,
		DriverName:    r.DriverName,
		ServiceType:   string(r.ServiceType),
		Status:        string(r.Status),
		Fare:          r.Fare,
		Tip:           r.Tip,
		PaymentMethod: string(r.PaymentMethod),
		Origin:        r.Origin,
		Destination:   r.Destination,
		OriginLat:      r.OriginCoords.Lat,
		OriginLng:      r.OriginCoords.Lng,
		DestinationLat: r.DestinationCoords.Lat,
		DestinationLng: r.DestinationCoords.Lng,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),

		ErrandItems:        r.ErrandItems,
		ServiceDescription: r.ServiceDescription,
		ServiceCategory:    r.ServiceCategory,
		RateType:           string(r.RateType),
		Duration:           r.Duration,
		IsPriority:         r.IsPriority,
		RentalVehicle:      r.RentalVehicle,
		RentalDays:         r.RentalDays,
		StayTitle:          r.StayTitle,
		StayNights:         r.StayNights,
		IsAdvanceBooking:   r.IsAdvanceBooking,
		ScheduledDate:      r.ScheduledDate,
	}
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	serviceType, err := service.ValidateServiceType(req.ServiceType)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	paymentMethod, err := service.ValidatePaymentMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	createReq := service.CreateRideRequest{
		UserID:             req.UserID,
		ServiceType:        serviceType,
		PaymentMethod:      paymentMethod,
		Origin:             req.Origin,
		Destination:        req.Destination,
		OriginCoords:       pointFrom(req.OriginLat, req.OriginLng),
		DestinationCoords:  pointFrom(req.DestinationLat, req.DestinationLng),
		DistanceKm:         req.DistanceKm,
		ErrandItems:        req.ErrandItems,
		PartnerID:          req.PartnerID,
		ServiceDescription: req.ServiceDescription,
		RateType:           domain.RateType(req.RateType),
		Duration:           req.Duration,
		IsPriority:         req.IsPriority,
		RentalDays:         req.RentalDays,
		IsOutsideCity:      req.IsOutsideCity,
		WithDriver:         req.WithDriver,
		IncludeCarWash:     req.IncludeCarWash,
		StayTitle:          req.StayTitle,
		IsAdvanceBooking:   req.IsAdvanceBooking,
		ScheduledDate:      req.ScheduledDate,
	}

	if req.CheckInDate != "" {
		t, err := time.Parse(time.RFC3339, req.CheckInDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid check_in_date"})
			return
		}
		createReq.CheckInDate = t
	}
	if req.CheckOutDate != "" {
		t, err := time.Parse(time.RFC3339, req.CheckOutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid check_out_date"})
			return
		}
		createReq.CheckOutDate = t
	}

	ride, err := h.lifecycle.CreateRide(c.Request.Context(), createReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.lifecycle.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetAll handles GET /v1/rides
func (h *RideHandler) GetAll(c *gin.Context) {
	rides, err := h.rideRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}
	respondJSON(c, http.StatusOK, response)
}

// Accept handles POST /v1/rides/:id/accept
func (h *RideHandler) Accept(c *gin.Context) {
	var req AcceptRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.Accept(c.Request.Context(), c.Param("id"), req.PartnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Arrive handles POST /v1/rides/:id/arrive
func (h *RideHandler) Arrive(c *gin.Context) {
	ride, err := h.lifecycle.Arrive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Start handles POST /v1/rides/:id/start
func (h *RideHandler) Start(c *gin.Context) {
	ride, err := h.lifecycle.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Complete handles POST /v1/rides/:id/complete
func (h *RideHandler) Complete(c *gin.Context) {
	result, err := h.lifecycle.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := CompleteRideResponse{Ride: toRideResponse(result.Ride)}
	if result.Receipt != nil {
		response.Receipt = &ReceiptResponse{
			ID:            result.Receipt.ID,
			RideID:        result.Receipt.RideID,
			Fare:          result.Receipt.Fare,
			Commission:    result.Receipt.Commission,
			NetToPartner:  result.Receipt.NetToPartner,
			Tip:           result.Receipt.Tip,
			PaymentMethod: string(result.Receipt.PaymentMethod),
		}
	}
	respondJSON(c, http.StatusOK, response)
}

// Cancel handles POST /v1/rides/:id/cancel
func (h *RideHandler) Cancel(c *gin.Context) {
	ride, err := h.lifecycle.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Tip handles POST /v1/rides/:id/tip
func (h *RideHandler) Tip(c *gin.Context) {
	var req TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.Tip(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// pointFrom builds a Point only when both coordinates were supplied.
func pointFrom(lat, lng *float64) *domain.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.Point{Lat: *lat, Lng: *lng}
}
