package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sakay/internal/redis"
	"sakay/internal/service"
)

// FleetHandler handles HTTP requests for partner positions.
type FleetHandler struct {
	positionStore  redis.PositionStoreInterface
	accountService *service.AccountService
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(positionStore redis.PositionStoreInterface, accountService *service.AccountService) *FleetHandler {
	return &FleetHandler{
		positionStore:  positionStore,
		accountService: accountService,
	}
}

// PositionResponse is the HTTP representation of a partner's map position.
type PositionResponse struct {
	PartnerID string  `json:"partner_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// GetAll handles GET /v1/fleet/positions
func (h *FleetHandler) GetAll(c *gin.Context) {
	positions, err := h.positionStore.GetAllPositions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		response = append(response, PositionResponse{
			PartnerID: p.PartnerID,
			Lat:       p.Lat,
			Lng:       p.Lng,
		})
	}
	respondJSON(c, http.StatusOK, response)
}

// GetNearby handles GET /v1/fleet/nearby?lat=&lng=&radius_km=
func (h *FleetHandler) GetNearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lng"})
		return
	}

	radiusKm := 5.0
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius_km"})
			return
		}
	}

	positions, err := h.positionStore.FindNearbyPartners(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]NearbyPartnerResponse, 0, len(positions))
	for _, p := range positions {
		entry := NearbyPartnerResponse{
			PartnerID: p.PartnerID,
			Lat:       p.Lat,
			Lng:       p.Lng,
		}
		// Best-effort hydration: a summary failure still leaves the pin
		// on the map.
		if summary, err := h.accountService.PartnerSummary(c.Request.Context(), p.PartnerID); err == nil {
			entry.Name = summary.Name
			entry.VehicleType = summary.VehicleType
			entry.IsOnline = summary.IsOnline
		}
		response = append(response, entry)
	}
	respondJSON(c, http.StatusOK, response)
}

// NearbyPartnerResponse pairs a map position with the partner's cached
// profile summary.
type NearbyPartnerResponse struct {
	PartnerID   string  `json:"partner_id"`
	Name        string  `json:"name,omitempty"`
	VehicleType string  `json:"vehicle_type,omitempty"`
	IsOnline    bool    `json:"is_online"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}
