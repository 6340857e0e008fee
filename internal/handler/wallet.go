package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay/internal/domain"
	"sakay/internal/service"
)

// WalletHandler handles HTTP requests for wallet top-ups.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// TopUpRequest is the HTTP request body for a wallet top-up.
type TopUpRequest struct {
	AccountID string  `json:"account_id"`
	Role      string  `json:"role,omitempty"` // USER (default) or PARTNER
	Amount    float64 `json:"amount"`
}

// TopUp handles POST /v1/wallet/topup
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := domain.RoleUser
	if req.Role == string(domain.RolePartner) {
		role = domain.RolePartner
	}

	err := h.walletService.TopUp(c.Request.Context(), service.TopUpRequest{
		AccountID: req.AccountID,
		Role:      role,
		Amount:    req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"account_id": req.AccountID,
		"amount":     req.Amount,
		"status":     "CREDITED",
	})
}
