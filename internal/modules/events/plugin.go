package events

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/middleware"
	"gorm.io/gorm"
)

type EventsModule struct {
	db  *gorm.DB
	cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *EventsModule {
	return &EventsModule{db: db, cfg: cfg}
}

func (m *EventsModule) ID() string { return "events" }

func (m *EventsModule) Models() []interface{} {
	return []interface{}{
		&Event{},
		&Registration{},
	}
}

func (m *EventsModule) RegisterRoutes(router fiber.Router) {
	eventService := NewEventService(m.db)
	registrationService := NewRegistrationService(m.db)

	eventHandler := NewEventHandler(eventService)
	registrationHandler := NewRegistrationHandler(registrationService)

	protected := middleware.JWTProtected(m.cfg)
	admin := middleware.AdminRequired(m.db, m.cfg)

	// Events: public reads, admin writes
	router.Get("/events", eventHandler.ListEvents)
	router.Get("/events/:id", eventHandler.GetEvent)
	router.Post("/events", protected, admin, eventHandler.CreateEvent)
	router.Put("/events/:id", protected, admin, eventHandler.UpdateEvent)
	router.Delete("/events/:id", protected, admin, eventHandler.DeleteEvent)

	// Registrations
	registrations := router.Group("/event-registrations")
	registrations.Get("/my-registrations", protected, registrationHandler.MyRegistrations)
	registrations.Post("/:eventId/register", protected, registrationHandler.Register)
	registrations.Get("/:eventId/check", protected, registrationHandler.Check)
	registrations.Get("/:eventId/count", registrationHandler.Count)
	registrations.Post("/:id/cancel", protected, registrationHandler.Cancel)

	// Registration admin
	registrations.Get("/", protected, admin, registrationHandler.ListAll)
	registrations.Get("/event/:eventId", protected, admin, registrationHandler.ListByEvent)
	registrations.Patch("/:id/status", protected, admin, registrationHandler.UpdateStatus)
	registrations.Delete("/:id", protected, admin, registrationHandler.Delete)
}
