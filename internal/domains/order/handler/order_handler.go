package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout POST /checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, created, err := h.orderService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// A retry while an unpaid order exists replays that order
	if !created {
		response.Success(c, http.StatusOK, "Existing pending order returned", order)
		return
	}

	response.Success(c, http.StatusCreated, "Order created", order)
}

// ListMyOrders GET /orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	orders, err := h.orderService.ListMyOrders(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Orders retrieved", orders)
}

// GetOrder GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)
	isAdmin := c.GetString("role") == "admin"

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Order ID must be a valid UUID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID, isAdmin)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order retrieved", order)
}

// ConfirmOrder POST /admin/orders/:id/confirm
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	adminID := c.MustGet("userID").(uuid.UUID)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Order ID must be a valid UUID")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), orderID, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order confirmed", order)
}

// CancelOrder POST /admin/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	actorID := c.MustGet("userID").(uuid.UUID)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Order ID must be a valid UUID")
		return
	}

	var req model.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Cancellation reason is required")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, actorID, req.Reason)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order cancelled", order)
}

// handleServiceError maps order errors to HTTP responses
func (h *OrderHandler) handleServiceError(c *gin.Context, err error) {
	var ordErr *model.OrderError
	if errors.As(err, &ordErr) {
		status := http.StatusUnprocessableEntity
		if ordErr.Code == model.ErrCodeInvalidTransition {
			status = http.StatusConflict
		}
		response.ErrorWithDetails(c, status, ordErr.Code, ordErr.Message, nil)
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.NotFound(c, "Order not found")
	default:
		logger.Error("Unexpected order error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
