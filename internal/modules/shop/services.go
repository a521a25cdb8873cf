package shop

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/identity"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNegativeStock   = errors.New("stock must not be negative")
	ErrPriceRequired   = errors.New("price is required")

	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrAddressRequired = errors.New("shipping address is required")
	ErrTotalMismatch   = errors.New("total amount does not match item subtotals")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNotOrderOwner   = errors.New("not authorized to access this order")
	ErrOrderExpired    = errors.New("order has expired")
	ErrProofRequired   = errors.New("payment proof URL is required")
)

var validOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusPaid:      true,
	OrderStatusDelivery:  true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
	OrderStatusExpired:   true,
}

// =============================================================================
// ProductService
// =============================================================================

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) List() ([]Product, error) {
	var products []Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(id uuid.UUID) (*Product, error) {
	var product Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Create(req *CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Price == nil {
		return nil, ErrPriceRequired
	}
	if *req.Price < 0 {
		return nil, ErrNegativePrice
	}

	stock := 0
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, ErrNegativeStock
		}
		stock = *req.Stock
	}

	product := Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Price:       *req.Price,
		Stock:       stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update applies merge-patch semantics: only non-nil fields overwrite.
func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrNegativePrice
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, ErrNegativeStock
		}
		updates["stock"] = *req.Stock
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return s.Get(id)
}

// Delete is idempotent; removing an unknown id is a no-op.
func (s *ProductService) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&Product{}).Error
}

// =============================================================================
// OrderService
// =============================================================================

type OrderService struct {
	db            *gorm.DB
	paymentWindow time.Duration
	now           func() time.Time
}

func NewOrderService(db *gorm.DB, cfg *config.Config) *OrderService {
	return &OrderService{
		db:            db,
		paymentWindow: cfg.OrderPaymentWindow,
		now:           time.Now,
	}
}

func (s *OrderService) Create(userID uuid.UUID, req *CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.ShippingAddress == "" {
		return nil, ErrAddressRequired
	}

	var sum float64
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if item.Price < 0 {
			return nil, ErrNegativePrice
		}
		sum += item.Price * float64(item.Quantity)
	}
	if math.Abs(sum-req.TotalAmount) > 0.01 {
		return nil, ErrTotalMismatch
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "manual-transfer"
	}

	now := s.now()
	order := Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		Status:          OrderStatusPending,
		PaymentMethod:   paymentMethod,
		ShippingAddress: req.ShippingAddress,
		ExpiresAt:       now.Add(s.paymentWindow),
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// List returns all orders, newest first. The expiry sweep runs first so no
// stale pending order is ever read back.
func (s *OrderService) List() ([]Order, error) {
	if _, err := s.ExpireOld(); err != nil {
		return nil, err
	}

	var orders []Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListByUser(userID uuid.UUID) ([]Order, error) {
	if _, err := s.ExpireOld(); err != nil {
		return nil, err
	}

	var orders []Order
	if err := s.db.Scopes(identity.ForUser(userID)).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get enforces ownership: non-admin callers only see their own orders.
func (s *OrderService) Get(orderID, requesterID uuid.UUID, isAdmin bool) (*Order, error) {
	var order Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	if !isAdmin && order.UserID != requesterID {
		return nil, ErrNotOrderOwner
	}
	return &order, nil
}

// UpdateStatus is the admin override: any status within the enum is allowed,
// no transition graph is enforced.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, status string) (*Order, error) {
	if !validOrderStatuses[status] {
		return nil, ErrInvalidStatus
	}

	var order Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	return &order, nil
}

// AttachPaymentProof stores the proof URL and moves the order to paid.
// Expiry is re-checked against the clock, not the stored status, because the
// sweep only runs lazily.
func (s *OrderService) AttachPaymentProof(orderID uuid.UUID, proofURL string, requesterID uuid.UUID) (*Order, error) {
	if proofURL == "" {
		return nil, ErrProofRequired
	}

	var order Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	if order.UserID != requesterID {
		return nil, ErrNotOrderOwner
	}

	if order.Status == OrderStatusExpired {
		return nil, ErrOrderExpired
	}
	if order.Status == OrderStatusPending && order.ExpiresAt.Before(s.now()) {
		if err := s.db.Model(&order).Update("status", OrderStatusExpired).Error; err != nil {
			return nil, fmt.Errorf("failed to expire order: %w", err)
		}
		return nil, ErrOrderExpired
	}

	updates := map[string]interface{}{
		"payment_proof": proofURL,
		"status":        OrderStatusPaid,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to attach payment proof: %w", err)
	}
	order.PaymentProof = &proofURL
	order.Status = OrderStatusPaid
	return &order, nil
}

// ExpireOld transitions stale pending orders to expired. Strict less-than:
// an order whose deadline is exactly now is still payable. Idempotent.
func (s *OrderService) ExpireOld() (int64, error) {
	result := s.db.Model(&Order{}).
		Where("status = ? AND expires_at < ?", OrderStatusPending, s.now()).
		Update("status", OrderStatusExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire orders: %w", result.Error)
	}
	return result.RowsAffected, nil
}
