package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay/internal/repository"
	"sakay/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidPartnerID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidServiceType),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidAccountStatus),
		errors.Is(err, service.ErrIncompleteQuote):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrUserHasActiveRide),
		errors.Is(err, service.ErrPartnerHasActiveRide),
		errors.Is(err, service.ErrPartnerBusy),
		errors.Is(err, service.ErrRideNotAccepted):
		return http.StatusConflict

	// Payment/balance errors
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrPaymentCancelled):
		return http.StatusPaymentRequired

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrPartnerNotEligible),
		errors.Is(err, service.ErrAccountSuspended):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
