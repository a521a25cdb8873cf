package shop

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/middleware"
	"gorm.io/gorm"
)

type ShopModule struct {
	db  *gorm.DB
	cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *ShopModule {
	return &ShopModule{db: db, cfg: cfg}
}

func (m *ShopModule) ID() string { return "shop" }

func (m *ShopModule) Models() []interface{} {
	return []interface{}{
		&Product{},
		&Order{},
	}
}

func (m *ShopModule) RegisterRoutes(router fiber.Router) {
	productService := NewProductService(m.db)
	orderService := NewOrderService(m.db, m.cfg)

	productHandler := NewProductHandler(productService)
	orderHandler := NewOrderHandler(orderService, m.cfg)

	protected := middleware.JWTProtected(m.cfg)
	admin := middleware.AdminRequired(m.db, m.cfg)

	// Catalog: public reads, admin writes
	router.Get("/products", productHandler.ListProducts)
	router.Get("/products/:productId", productHandler.GetProduct)
	router.Post("/products", protected, admin, productHandler.CreateProduct)
	router.Put("/products/:productId", protected, admin, productHandler.UpdateProduct)
	router.Delete("/products/:productId", protected, admin, productHandler.DeleteProduct)

	// Orders
	router.Post("/orders", protected, orderHandler.CreateOrder)
	router.Get("/orders", protected, admin, orderHandler.ListOrders)
	router.Get("/orders/me", protected, orderHandler.ListMyOrders)
	router.Get("/orders/:orderId", protected, orderHandler.GetOrder)
	router.Patch("/orders/:orderId/status", protected, admin, orderHandler.UpdateOrderStatus)
	router.Post("/orders/:orderId/payment-proof", protected, orderHandler.UploadPaymentProof)
}
