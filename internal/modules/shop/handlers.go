package shop

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/identity"
)

// =============================================================================
// ProductHandler
// =============================================================================

type ProductHandler struct {
	productService *ProductService
}

func NewProductHandler(productService *ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.List()
	if err != nil {
		slog.Error("list products failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid product ID"})
	}

	product, err := h.productService.Get(id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch product"})
	}
	return c.JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		if isProductValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("create product failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid product ID"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if isProductValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update product failed", "error", err, "product_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update product"})
	}
	return c.JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid product ID"})
	}

	if err := h.productService.Delete(id); err != nil {
		slog.Error("delete product failed", "error", err, "product_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete product"})
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func isProductValidationErr(err error) bool {
	return errors.Is(err, ErrNameRequired) || errors.Is(err, ErrPriceRequired) ||
		errors.Is(err, ErrNegativePrice) || errors.Is(err, ErrNegativeStock)
}

// =============================================================================
// OrderHandler
// =============================================================================

type OrderHandler struct {
	orderService *OrderService
	cfg          *config.Config
}

func NewOrderHandler(orderService *OrderService, cfg *config.Config) *OrderHandler {
	return &OrderHandler{orderService: orderService, cfg: cfg}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	order, err := h.orderService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, ErrEmptyItems) || errors.Is(err, ErrAddressRequired) ||
			errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrTotalMismatch) ||
			errors.Is(err, ErrNegativePrice) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("create order failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order": order,
		"bankInfo": BankInfo{
			BankName:      h.cfg.BankName,
			AccountNumber: h.cfg.BankAccountNumber,
			AccountHolder: h.cfg.BankAccountHolder,
		},
		"message": fmt.Sprintf("Order created. Please upload payment proof within %.0f hours.", h.cfg.OrderPaymentWindow.Hours()),
	})
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.List()
	if err != nil {
		slog.Error("list orders failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *OrderHandler) ListMyOrders(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	orders, err := h.orderService.ListByUser(userID)
	if err != nil {
		slog.Error("list my orders failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid order ID"})
	}

	order, err := h.orderService.Get(orderID, userID, identity.IsAdmin(c))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNotOrderOwner) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: "Not authorized to view this order"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch order"})
	}
	return c.JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid order ID"})
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Status is required"})
	}

	order, err := h.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update order status failed", "error", err, "order_id", orderID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update order status"})
	}
	return c.JSON(fiber.Map{"order": order, "message": "Order status updated to " + order.Status})
}

func (h *OrderHandler) UploadPaymentProof(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid order ID"})
	}

	var req PaymentProofRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	order, err := h.orderService.AttachPaymentProof(orderID, req.PaymentProofURL, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProofRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Payment proof URL is required"})
		case errors.Is(err, ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrNotOrderOwner):
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: "Not authorized"})
		case errors.Is(err, ErrOrderExpired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("upload payment proof failed", "error", err, "order_id", orderID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to upload payment proof"})
	}

	return c.JSON(fiber.Map{
		"order":   order,
		"message": "Payment proof uploaded successfully. Waiting for admin verification.",
	})
}
