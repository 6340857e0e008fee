package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay/internal/domain"
	"sakay/internal/service"
)

// DemoControl resets and repopulates the demo environment. Implemented by
// the app-level seeder.
type DemoControl interface {
	Reset(ctx context.Context) error
	SpawnPartners(ctx context.Context, count int) ([]*domain.Partner, error)
}

// AdminHandler handles HTTP requests for platform administration.
type AdminHandler struct {
	accountService *service.AccountService
	ledger         *service.Ledger
	demo           DemoControl
}

// NewAdminHandler creates a new AdminHandler. demo may be nil when the
// server runs without demo controls.
func NewAdminHandler(accountService *service.AccountService, ledger *service.Ledger, demo DemoControl) *AdminHandler {
	return &AdminHandler{
		accountService: accountService,
		ledger:         ledger,
		demo:           demo,
	}
}

// UpdateStatusRequest is the HTTP request body for account status changes.
type UpdateStatusRequest struct {
	Role   string `json:"role"` // USER or PARTNER
	Status string `json:"status"`
}

// UpdateAccountStatus handles PATCH /v1/admin/accounts/:id/status
func (h *AdminHandler) UpdateAccountStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := domain.RoleUser
	if req.Role == string(domain.RolePartner) {
		role = domain.RolePartner
	}

	err := h.accountService.UpdateAccountStatus(c.Request.Context(), c.Param("id"), role, domain.AccountStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"account_id": c.Param("id"),
		"status":     req.Status,
	})
}

// DeleteAccountRequest is the HTTP request body for account deletion.
type DeleteAccountRequest struct {
	Role string `json:"role"` // USER or PARTNER
}

// DeleteAccount handles DELETE /v1/admin/accounts/:id
func (h *AdminHandler) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := domain.RoleUser
	if req.Role == string(domain.RolePartner) {
		role = domain.RolePartner
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("id"), role); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Commissions handles GET /v1/admin/commissions
func (h *AdminHandler) Commissions(c *gin.Context) {
	respondJSON(c, http.StatusOK, gin.H{
		"total_commissions": h.ledger.CommissionTotal(),
		"commission_rate":   service.CommissionRate,
	})
}

// Reset handles POST /v1/admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	if h.demo == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "demo controls disabled"})
		return
	}
	if err := h.demo.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "RESET"})
}

// SpawnPartnersRequest is the HTTP request body for spawning demo partners.
type SpawnPartnersRequest struct {
	Count int `json:"count"`
}

// SpawnPartners handles POST /v1/admin/partners/spawn
func (h *AdminHandler) SpawnPartners(c *gin.Context) {
	if h.demo == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "demo controls disabled"})
		return
	}

	var req SpawnPartnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Count < 1 || req.Count > 100 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "count must be between 1 and 100"})
		return
	}

	partners, err := h.demo.SpawnPartners(c.Request.Context(), req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		response = append(response, toPartnerResponse(p))
	}
	respondJSON(c, http.StatusCreated, response)
}
