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

// UserHandler handles HTTP requests for rider accounts.
type UserHandler struct {
	accountService *service.AccountService
	userRepo       repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService *service.AccountService, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		userRepo:       userRepo,
	}
}

// RegisterUserRequest is the HTTP request body for rider registration.
type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UserResponse is the HTTP representation of a rider account.
type UserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
	Rating   float64 `json:"rating"`
	Balance  float64 `json:"balance"`
	Status   string  `json:"status"`
	JoinDate string  `json:"join_date"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   u.Avatar,
		Rating:   u.Rating,
		Balance:  u.Balance,
		Status:   string(u.Status),
		JoinDate: u.JoinDate.Format(time.RFC3339),
	}
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || (req.Email == "" && req.Phone == "") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and email or phone are required"})
		return
	}

	// Check if user already exists
	contact := req.Email
	if contact == "" {
		contact = req.Phone
	}
	existing, err := h.userRepo.GetByContact(c.Request.Context(), contact)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "User already registered",
			"user":    toUserResponse(existing),
		})
		return
	}

	user, err := h.accountService.RegisterUser(c.Request.Context(), service.RegisterUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}
	respondJSON(c, http.StatusOK, response)
}

// UpdateProfileRequest is the HTTP request body for profile updates.
type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// UpdateProfile handles PATCH /v1/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.accountService.UpdateUserProfile(c.Request.Context(), c.Param("id"), req.Name, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}
