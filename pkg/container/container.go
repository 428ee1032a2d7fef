package container

import (
	"context"
	"fmt"

	"storefront-backend/internal/config"
	"storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/pkg/jwt"

	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	catalogService "storefront-backend/internal/domains/catalog/service"

	inventoryHandler "storefront-backend/internal/domains/inventory/handler"
	inventoryRepo "storefront-backend/internal/domains/inventory/repository"
	inventoryService "storefront-backend/internal/domains/inventory/service"

	voucherHandler "storefront-backend/internal/domains/voucher/handler"
	voucherRepo "storefront-backend/internal/domains/voucher/repository"
	voucherService "storefront-backend/internal/domains/voucher/service"

	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"

	"storefront-backend/internal/domains/payment/gateway"
	paymentHandler "storefront-backend/internal/domains/payment/handler"
	paymentRepo "storefront-backend/internal/domains/payment/repository"
	paymentService "storefront-backend/internal/domains/payment/service"

	reviewHandler "storefront-backend/internal/domains/review/handler"
	reviewRepo "storefront-backend/internal/domains/review/repository"
	reviewService "storefront-backend/internal/domains/review/service"

	userHandler "storefront-backend/internal/domains/user/handler"
	userRepo "storefront-backend/internal/domains/user/repository"
	userService "storefront-backend/internal/domains/user/service"
)

// =====================================================
// DEPENDENCY CONTAINER
// =====================================================
// Container owns the infrastructure connections and wires every domain
// bottom-up: repositories, then services, then handlers.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Redis *cache.RedisCache

	CatalogHandler   *catalogHandler.CatalogHandler
	InventoryHandler *inventoryHandler.InventoryHandler
	VoucherHandler   *voucherHandler.VoucherHandler
	OrderHandler     *orderHandler.OrderHandler
	PaymentHandler   *paymentHandler.PaymentHandler
	ReviewHandler    *reviewHandler.ReviewHandler
	UserHandler      *userHandler.UserHandler
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ===== Infrastructure =====
	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbCfg)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	c.Redis = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	pool := c.DB.Pool

	// ===== Repositories =====
	catalogRepository := catalogRepo.NewPostgresCatalogRepository(pool)
	inventoryRepository := inventoryRepo.NewRepository(pool)
	voucherRepository := voucherRepo.NewPostgresVoucherRepository(pool)
	orderRepository := orderRepo.NewPostgresOrderRepository(pool)
	paymentRepository := paymentRepo.NewPostgresPaymentRepository(pool)
	reviewRepository := reviewRepo.NewPostgresReviewRepository(pool)
	userRepository := userRepo.NewPostgresUserRepository(pool)

	// ===== Services =====
	catalogSvc := catalogService.NewCatalogService(catalogRepository, c.Redis)
	inventorySvc := inventoryService.NewInventoryService(inventoryRepository, c.Redis)
	voucherSvc := voucherService.NewVoucherService(voucherRepository)
	orderSvc := orderService.NewOrderService(orderRepository, catalogRepository, inventorySvc, voucherSvc, c.Redis)

	gateways := gateway.NewRegistry(
		gateway.NewCreditCardGateway(cfg.Payment.CreditCardEnabled),
		gateway.NewPaypalGateway(cfg.Payment.PaypalEnabled),
		gateway.NewCODGateway(),
	)
	paymentSvc := paymentService.NewPaymentService(paymentRepository, gateways)

	reviewSvc := reviewService.NewReviewService(reviewRepository, catalogRepository)
	userSvc := userService.NewUserService(userRepository, jwtManager)

	// ===== Handlers =====
	c.CatalogHandler = catalogHandler.NewCatalogHandler(catalogSvc)
	c.InventoryHandler = inventoryHandler.NewInventoryHandler(inventorySvc)
	c.VoucherHandler = voucherHandler.NewVoucherHandler(voucherSvc)
	c.OrderHandler = orderHandler.NewOrderHandler(orderSvc)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(paymentSvc)
	c.ReviewHandler = reviewHandler.NewReviewHandler(reviewSvc)
	c.UserHandler = userHandler.NewUserHandler(userSvc)

	return c, nil
}

// Close releases infrastructure connections in reverse order
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
