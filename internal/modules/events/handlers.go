package events

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sporthub-id/sporthub-backend/internal/identity"
)

// =============================================================================
// EventHandler
// =============================================================================

type EventHandler struct {
	eventService *EventService
}

func NewEventHandler(eventService *EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventService.List()
	if err != nil {
		slog.Error("list events failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch events"})
	}
	return c.JSON(fiber.Map{"events": events})
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	event, err := h.eventService.Get(id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch event"})
	}
	return c.JSON(fiber.Map{"event": event})
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	event, err := h.eventService.Create(&req)
	if err != nil {
		if errors.Is(err, ErrTitleRequired) || errors.Is(err, ErrEventDateRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("create event failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create event"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event})
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	var req UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	event, err := h.eventService.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrTitleRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update event failed", "error", err, "event_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update event"})
	}
	return c.JSON(fiber.Map{"event": event})
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	if err := h.eventService.Delete(id); err != nil {
		slog.Error("delete event failed", "error", err, "event_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete event"})
	}
	return c.JSON(fiber.Map{"message": "Event deleted successfully"})
}

// =============================================================================
// RegistrationHandler
// =============================================================================

type RegistrationHandler struct {
	registrationService *RegistrationService
}

func NewRegistrationHandler(registrationService *RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	registration, err := h.registrationService.Register(eventID, userID)
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("event registration failed", "error", err, "event_id", eventID, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to register for event"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"registration": registration,
		"message":      "Registered for event successfully",
	})
}

func (h *RegistrationHandler) Cancel(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid registration ID"})
	}

	if err := h.registrationService.Cancel(registrationID, userID); err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNotRegistrationOwner) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("cancel registration failed", "error", err, "registration_id", registrationID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to cancel registration"})
	}
	return c.JSON(fiber.Map{"message": "Registration cancelled successfully"})
}

func (h *RegistrationHandler) Check(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	isRegistered, err := h.registrationService.IsRegistered(eventID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to check registration"})
	}
	return c.JSON(fiber.Map{"isRegistered": isRegistered})
}

func (h *RegistrationHandler) Count(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	count, err := h.registrationService.CountByEvent(eventID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to count registrations"})
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *RegistrationHandler) MyRegistrations(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	registrations, err := h.registrationService.FindByUser(userID)
	if err != nil {
		slog.Error("list my registrations failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch registrations"})
	}
	return c.JSON(fiber.Map{"registrations": registrations})
}

func (h *RegistrationHandler) ListAll(c *fiber.Ctx) error {
	registrations, err := h.registrationService.FindAll()
	if err != nil {
		slog.Error("list registrations failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch registrations"})
	}
	return c.JSON(fiber.Map{"registrations": registrations})
}

func (h *RegistrationHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid event ID"})
	}

	registrations, err := h.registrationService.FindByEvent(eventID)
	if err != nil {
		slog.Error("list event registrations failed", "error", err, "event_id", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch registrations"})
	}
	return c.JSON(fiber.Map{"registrations": registrations})
}

func (h *RegistrationHandler) UpdateStatus(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid registration ID"})
	}

	var req UpdateRegistrationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	registration, err := h.registrationService.UpdateStatus(registrationID, req.Status)
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrInvalidRegStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update registration status failed", "error", err, "registration_id", registrationID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update registration"})
	}
	return c.JSON(fiber.Map{"registration": registration})
}

func (h *RegistrationHandler) Delete(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid registration ID"})
	}

	if err := h.registrationService.Delete(registrationID); err != nil {
		slog.Error("delete registration failed", "error", err, "registration_id", registrationID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete registration"})
	}
	return c.JSON(fiber.Map{"message": "Registration deleted successfully"})
}
