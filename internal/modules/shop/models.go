package shop

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product is a catalog item sold through the shop.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order statuses. Terminal: completed, cancelled, expired.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusDelivery  = "delivery"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusExpired   = "expired"
)

// OrderItem is a snapshot of a product at order time. Price and name are
// frozen here; later product edits do not touch existing orders.
type OrderItem struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Quantity  int        `json:"quantity"`
}

type Order struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	Items           datatypes.JSONSlice[OrderItem] `json:"items"`
	TotalAmount     float64                        `gorm:"not null" json:"total_amount"`
	Status          string                         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentMethod   string                         `gorm:"size:50;default:'manual-transfer'" json:"payment_method"`
	ShippingAddress string                         `gorm:"size:500;not null" json:"shipping_address"`
	PaymentProof    *string                        `gorm:"size:500" json:"payment_proof"`
	ExpiresAt       time.Time                      `gorm:"not null;index" json:"expires_at"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

// BankInfo is the manual-transfer destination returned with a created order.
type BankInfo struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

// --- DTOs ---

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

type CreateOrderRequest struct {
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type PaymentProofRequest struct {
	PaymentProofURL string `json:"paymentProofUrl"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
