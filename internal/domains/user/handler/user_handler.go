package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/domains/user/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// USER HANDLER
// =====================================================
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	auth, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Registered", auth)
}

// Login POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	auth, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged in", auth)
}

// Me GET /auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// handleServiceError maps user errors to HTTP responses
func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	var usrErr *model.UserError
	if errors.As(err, &usrErr) {
		status := http.StatusUnprocessableEntity
		if usrErr.Code == model.ErrCodeEmailTaken {
			status = http.StatusConflict
		}
		response.ErrorWithDetails(c, status, usrErr.Code, usrErr.Message, nil)
		return
	}

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, model.ErrUserDisabled):
		response.Forbidden(c, "Account is disabled")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		logger.Error("Unexpected user error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
