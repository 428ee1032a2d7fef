package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogmodel "storefront-backend/internal/domains/catalog/model"
	inventorymodel "storefront-backend/internal/domains/inventory/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	vouchermodel "storefront-backend/internal/domains/voucher/model"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	orderRepo repository.OrderRepository
	products  ProductReader
	stock     StockAdjuster
	vouchers  VoucherApplier
	cache     cache.Cache
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	products ProductReader,
	stock StockAdjuster,
	vouchers VoucherApplier,
	c cache.Cache,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		products:  products,
		stock:     stock,
		vouchers:  vouchers,
		cache:     c,
	}
}

// =====================================================
// CHECKOUT
// =====================================================
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.OrderResponse, bool, error) {
	// Step 1: validate the cart shape before touching the database
	if len(req.Cart) == 0 {
		return nil, false, model.NewOrderError(model.ErrCodeEmptyCart, "Cart is empty", model.ErrEmptyCart)
	}
	if err := req.Validate(); err != nil {
		return nil, false, model.NewOrderError(model.ErrCodeInvalidCart, "Invalid cart", err)
	}
	for _, line := range req.Cart {
		if err := line.Validate(); err != nil {
			return nil, false, model.NewOrderError(model.ErrCodeInvalidCart, "Invalid cart line", err)
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, false, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.orderRepo.RollbackTx(ctx, tx); rbErr != nil {
				logger.Error("Failed to rollback checkout transaction", rbErr)
			}
		}
	}()

	// Step 2: one pending order per user. A second checkout while the
	// first is unpaid returns the existing order instead of failing,
	// which makes client retries harmless.
	pending, err := s.orderRepo.GetPendingOrderByUserForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, false, err
	}
	if pending != nil {
		details, err := s.orderRepo.GetOrderDetailsByOrderIDWithTx(ctx, tx, pending.ID)
		if err != nil {
			return nil, false, err
		}
		if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
			return nil, false, err
		}
		committed = true

		resp := model.BuildOrderResponse(pending, details)
		return &resp, false, nil
	}

	// Step 3: re-price every line from the catalog under row locks.
	// Whatever price the client sent is ignored.
	orderID := uuid.New()
	subtotal := decimal.Zero
	details := make([]model.OrderDetail, 0, len(req.Cart))

	for _, line := range req.Cart {
		product, err := s.products.GetProductByIDForUpdate(ctx, tx, line.ID)
		if err != nil {
			if errors.Is(err, catalogmodel.ErrProductNotFound) {
				return nil, false, model.NewOrderError(model.ErrCodeInvalidCart,
					fmt.Sprintf("Product %s no longer exists", line.ID), err)
			}
			return nil, false, err
		}
		if !product.Purchasable() {
			return nil, false, model.NewOrderError(model.ErrCodeInvalidCart,
				fmt.Sprintf("%s is no longer available", product.Name), nil)
		}
		if product.Quantity < line.Quantity {
			return nil, false, model.NewOrderError(model.ErrCodeInsufficientStock,
				fmt.Sprintf("Not enough stock for %s", product.Name), inventorymodel.ErrInsufficientStock)
		}

		unitPrice := product.EffectivePrice()
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))

		details = append(details, model.OrderDetail{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        line.Unit,
			Price:       unitPrice,
			Quantity:    line.Quantity,
		})
	}

	// Step 4: redeem the voucher, if any, against the server subtotal
	discount := decimal.Zero
	if req.VoucherID != nil {
		discount, err = s.vouchers.ApplyWithTx(ctx, tx, userID, *req.VoucherID, subtotal)
		if err != nil {
			if isVoucherRejection(err) {
				return nil, false, model.NewOrderError(model.ErrCodeVoucherRejected, "Voucher cannot be applied", err)
			}
			return nil, false, err
		}
	}

	// Step 5: persist the order and its lines
	order := &model.Order{
		ID:        orderID,
		Code:      model.GenerateOrderCode(),
		UserID:    userID,
		Status:    model.StatusPendingPayment,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
		VoucherID: req.VoucherID,
		UpdatedBy: userID,
	}
	if err := s.orderRepo.CreateOrderWithTx(ctx, tx, order); err != nil {
		return nil, false, err
	}
	if err := s.orderRepo.CreateOrderDetailsWithTx(ctx, tx, details); err != nil {
		return nil, false, err
	}

	// Step 6: reserve stock for every line. The conditional update is
	// the last word on overselling even though quantities were checked
	// under lock above.
	for i := range details {
		d := &details[i]
		if _, err := s.stock.ReserveWithTx(ctx, tx, d.ProductID, d.Quantity); err != nil {
			if errors.Is(err, inventorymodel.ErrInsufficientStock) {
				return nil, false, model.NewOrderError(model.ErrCodeInsufficientStock,
					fmt.Sprintf("Not enough stock for %s", d.ProductName), err)
			}
			return nil, false, err
		}
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return nil, false, err
	}
	committed = true

	// Stock moved, so product caches are stale. Post-commit only.
	s.evictProductCaches(ctx, details)

	logger.Info("Order created", map[string]interface{}{
		"order_id": order.ID.String(),
		"code":     order.Code,
		"user_id":  userID.String(),
		"total":    order.Total.String(),
	})

	resp := model.BuildOrderResponse(order, details)
	return &resp, true, nil
}

// =====================================================
// LIFECYCLE: CONFIRM / CANCEL
// =====================================================

func (s *orderService) Confirm(ctx context.Context, orderID, adminID uuid.UUID) (*model.OrderResponse, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.orderRepo.RollbackTx(ctx, tx); rbErr != nil {
				logger.Error("Failed to rollback confirm transaction", rbErr)
			}
		}
	}()

	order, err := s.orderRepo.GetOrderByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := order.Status.Next(model.ActionConfirm)
	if err != nil {
		return nil, model.NewOrderError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot confirm an order in status %s", order.Status), err)
	}

	if err := s.orderRepo.UpdateOrderStatusWithTx(ctx, tx, orderID, next, adminID, nil); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("Order confirmed", map[string]interface{}{
		"order_id": orderID.String(),
		"from":     order.Status.String(),
		"to":       next.String(),
		"admin_id": adminID.String(),
	})

	order.Status = next
	order.UpdatedBy = adminID
	resp := model.BuildOrderResponse(order, nil)
	return &resp, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID, actorID uuid.UUID, reason string) (*model.OrderResponse, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.orderRepo.RollbackTx(ctx, tx); rbErr != nil {
				logger.Error("Failed to rollback cancel transaction", rbErr)
			}
		}
	}()

	order, err := s.orderRepo.GetOrderByIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanCancel() {
		return nil, model.NewOrderError(model.ErrCodeInvalidTransition,
			cancelRejectionMessage(order.Status), model.ErrInvalidTransition)
	}

	// Return every reserved line to stock in the same transaction
	details, err := s.orderRepo.GetOrderDetailsByOrderIDWithTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	for i := range details {
		d := &details[i]
		if _, err := s.stock.ReleaseWithTx(ctx, tx, d.ProductID, d.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateOrderStatusWithTx(ctx, tx, orderID, model.StatusCancelled, actorID, &reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.evictProductCaches(ctx, details)

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": orderID.String(),
		"from":     order.Status.String(),
		"actor_id": actorID.String(),
		"reason":   reason,
	})

	order.Status = model.StatusCancelled
	order.CancelReason = &reason
	order.UpdatedBy = actorID
	resp := model.BuildOrderResponse(order, details)
	return &resp, nil
}

// cancelRejectionMessage explains why the specific state blocks
// cancellation rather than returning one generic message.
func cancelRejectionMessage(status model.Status) string {
	switch status {
	case model.StatusApproved:
		return "Order is already approved for shipping and can no longer be cancelled"
	case model.StatusDelivered:
		return "Order has already been delivered"
	case model.StatusCancelled:
		return "Order is already cancelled"
	case model.StatusReturned:
		return "Order has already been returned"
	default:
		return fmt.Sprintf("Cannot cancel an order in status %s", status)
	}
}

// =====================================================
// QUERIES
// =====================================================

func (s *orderService) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Hide other users' orders behind not-found
	if !isAdmin && order.UserID != requesterID {
		return nil, model.ErrOrderNotFound
	}

	details, err := s.orderRepo.GetOrderDetailsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := model.BuildOrderResponse(order, details)
	return &resp, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, model.BuildOrderResponse(&orders[i], nil))
	}

	return responses, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *orderService) evictProductCaches(ctx context.Context, details []model.OrderDetail) {
	keys := make([]string, 0, len(details)+1)
	keys = append(keys, catalogmodel.ActiveProductsCacheKey)
	for i := range details {
		keys = append(keys, catalogmodel.ProductCacheKey(details[i].ProductID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Error("Failed to evict product caches", err)
	}
}

func isVoucherRejection(err error) bool {
	return errors.Is(err, vouchermodel.ErrVoucherNotFound) ||
		errors.Is(err, vouchermodel.ErrVoucherInvalid) ||
		errors.Is(err, vouchermodel.ErrVoucherNotGranted)
}
