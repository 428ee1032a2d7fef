package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/inventory/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type InventoryHandler struct {
	inventoryService service.ServiceInterface
}

func NewInventoryHandler(inventoryService service.ServiceInterface) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// Restock POST /admin/products/:id/restock
func (h *InventoryHandler) Restock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Product ID must be a valid UUID")
		return
	}

	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	remaining, err := h.inventoryService.Restock(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Stock updated", gin.H{
		"product_id": productID,
		"quantity":   remaining,
	})
}

func (h *InventoryHandler) handleServiceError(c *gin.Context, err error) {
	var invErr *model.InventoryError
	if errors.As(err, &invErr) {
		response.ErrorResponse(c, http.StatusBadRequest, invErr.Code, invErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrInvalidQuantity):
		response.BadRequest(c, "Quantity must be positive")
	default:
		logger.Error("Unexpected inventory error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
