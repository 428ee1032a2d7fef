package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/voucher/model"
	"storefront-backend/internal/domains/voucher/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// =====================================================
// VOUCHER HANDLER
// =====================================================
type VoucherHandler struct {
	voucherService service.VoucherService
}

func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// StoreUserVoucher POST /vouchers/store-user
func (h *VoucherHandler) StoreUserVoucher(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	var req model.GrantVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Voucher ID is required")
		return
	}

	if err := h.voucherService.Grant(c.Request.Context(), userID, req.VoucherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Voucher saved", nil)
}

// ListMyVouchers GET /vouchers/me
func (h *VoucherHandler) ListMyVouchers(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	vouchers, err := h.voucherService.ListUserVouchers(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Vouchers retrieved", vouchers)
}

// CreateVoucher POST /admin/vouchers
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req model.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Voucher created", model.BuildVoucherResponse(voucher))
}

// handleServiceError maps voucher errors to HTTP responses
func (h *VoucherHandler) handleServiceError(c *gin.Context, err error) {
	var vchErr *model.VoucherError
	if errors.As(err, &vchErr) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, vchErr.Code, vchErr.Message, nil)
		return
	}

	switch {
	case errors.Is(err, model.ErrVoucherNotFound):
		response.NotFound(c, "Voucher not found")
	case errors.Is(err, model.ErrVoucherInvalid):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, model.ErrCodeVoucherInvalid, "Voucher is not valid", nil)
	case errors.Is(err, model.ErrAlreadyGranted):
		response.ErrorWithDetails(c, http.StatusConflict, model.ErrCodeAlreadyGranted, "Voucher already saved", nil)
	case errors.Is(err, model.ErrVoucherExhausted):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, model.ErrCodeVoucherExhausted, "Voucher has no redemptions left", nil)
	case errors.Is(err, model.ErrVoucherNotGranted):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, model.ErrCodeVoucherNotGranted, "Voucher not saved to your account", nil)
	default:
		logger.Error("Unexpected voucher error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
