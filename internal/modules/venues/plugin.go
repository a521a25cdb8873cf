package venues

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/middleware"
	"gorm.io/gorm"
)

// VenuesModule wires venue catalog management and the booking lifecycle.
type VenuesModule struct {
	db  *gorm.DB
	cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *VenuesModule {
	return &VenuesModule{db: db, cfg: cfg}
}

func (m *VenuesModule) ID() string {
	return "venues"
}

func (m *VenuesModule) Models() []interface{} {
	return []interface{}{&Venue{}, &Booking{}}
}

func (m *VenuesModule) RegisterRoutes(router fiber.Router) {
	venueHandler := NewVenueHandler(NewVenueService(m.db))
	bookingHandler := NewBookingHandler(NewBookingService(m.db))

	protected := middleware.JWTProtected(m.cfg)
	admin := middleware.AdminRequired(m.db, m.cfg)

	venues := router.Group("/venues")
	venues.Get("/", venueHandler.ListVenues)
	venues.Get("/:id", venueHandler.GetVenue)
	venues.Post("/", protected, admin, venueHandler.CreateVenue)
	venues.Put("/:id", protected, admin, venueHandler.UpdateVenue)
	venues.Delete("/:id", protected, admin, venueHandler.DeleteVenue)

	bookings := router.Group("/bookings")
	bookings.Get("/me", protected, bookingHandler.ListMyBookings)
	bookings.Get("/pending-count", protected, admin, bookingHandler.PendingCount)
	bookings.Post("/", protected, bookingHandler.CreateBooking)
	bookings.Get("/", protected, admin, bookingHandler.ListBookings)
	bookings.Get("/:id", protected, bookingHandler.GetBooking)
	bookings.Post("/:id/cancel", protected, bookingHandler.CancelBooking)
	bookings.Patch("/:id/status", protected, admin, bookingHandler.UpdateBookingStatus)
	bookings.Delete("/:id", protected, admin, bookingHandler.DeleteBooking)
}
