package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// PAYMENT HANDLER
// =====================================================
type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPayment POST /payment
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	var req model.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payment recorded", payment)
}

// ListMyTransactions GET /payment/transactions
func (h *PaymentHandler) ListMyTransactions(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	txns, err := h.paymentService.ListMyTransactions(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Transactions retrieved", txns)
}

// handleServiceError maps payment errors to HTTP responses
func (h *PaymentHandler) handleServiceError(c *gin.Context, err error) {
	var payErr *model.PaymentError
	if errors.As(err, &payErr) {
		status := http.StatusUnprocessableEntity
		if payErr.Code == model.ErrCodePaymentFailed {
			status = http.StatusPaymentRequired
		}
		response.ErrorWithDetails(c, status, payErr.Code, payErr.Message, nil)
		return
	}

	switch {
	case errors.Is(err, model.ErrNoPendingOrder):
		response.NotFound(c, "No pending order to pay")
	default:
		logger.Error("Unexpected payment error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
