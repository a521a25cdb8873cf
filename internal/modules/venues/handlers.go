package venues

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sporthub-id/sporthub-backend/internal/identity"
)

// =============================================================================
// VenueHandler
// =============================================================================

type VenueHandler struct {
	venueService *VenueService
}

func NewVenueHandler(venueService *VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) ListVenues(c *fiber.Ctx) error {
	venues, err := h.venueService.List()
	if err != nil {
		slog.Error("list venues failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch venues"})
	}
	return c.JSON(fiber.Map{"venues": venues})
}

func (h *VenueHandler) GetVenue(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid venue ID"})
	}

	venue, err := h.venueService.Get(id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch venue"})
	}
	return c.JSON(fiber.Map{"venue": venue})
}

func (h *VenueHandler) CreateVenue(c *fiber.Ctx) error {
	var req CreateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	venue, err := h.venueService.Create(&req)
	if err != nil {
		if errors.Is(err, ErrVenueName) || errors.Is(err, ErrVenuePriceRequired) || errors.Is(err, ErrNegativePrice) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("create venue failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create venue"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"venue": venue})
}

func (h *VenueHandler) UpdateVenue(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid venue ID"})
	}

	var req UpdateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	venue, err := h.venueService.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrVenueName) || errors.Is(err, ErrNegativePrice) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update venue failed", "error", err, "venue_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update venue"})
	}
	return c.JSON(fiber.Map{"venue": venue})
}

func (h *VenueHandler) DeleteVenue(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid venue ID"})
	}

	if err := h.venueService.Delete(id); err != nil {
		slog.Error("delete venue failed", "error", err, "venue_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete venue"})
	}
	return c.JSON(fiber.Map{"message": "Venue deleted successfully"})
}

// =============================================================================
// BookingHandler
// =============================================================================

type BookingHandler struct {
	bookingService *BookingService
}

func NewBookingHandler(bookingService *BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	booking, err := h.bookingService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, ErrBookingFields) || errors.Is(err, ErrNegativePrice) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("create booking failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create booking"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.bookingService.List()
	if err != nil {
		slog.Error("list bookings failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch bookings"})
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

func (h *BookingHandler) ListMyBookings(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	bookings, err := h.bookingService.ListByUser(userID)
	if err != nil {
		slog.Error("list my bookings failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch bookings"})
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid booking ID"})
	}

	booking, err := h.bookingService.Get(id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch booking"})
	}

	// Owners and admins only.
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	if !identity.IsAdmin(c) && booking.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: "Not authorized to view this booking"})
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid booking ID"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	booking, err := h.bookingService.UpdateStatus(id, req.Status, req.AdminNotes)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrInvalidBookingStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update booking status failed", "error", err, "booking_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update booking"})
	}
	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid booking ID"})
	}

	booking, err := h.bookingService.Cancel(id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrNotBookingOwner):
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrBookingNotPending):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("cancel booking failed", "error", err, "booking_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to cancel booking"})
	}
	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid booking ID"})
	}

	if err := h.bookingService.Delete(id); err != nil {
		slog.Error("delete booking failed", "error", err, "booking_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete booking"})
	}
	return c.JSON(fiber.Map{"message": "Booking deleted successfully"})
}

func (h *BookingHandler) PendingCount(c *fiber.Ctx) error {
	count, err := h.bookingService.PendingCount()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to count pending bookings"})
	}
	return c.JSON(fiber.Map{"count": count})
}
