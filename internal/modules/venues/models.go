package venues

import (
	"time"

	"github.com/google/uuid"
)

type Venue struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Type         string    `gorm:"size:100" json:"type,omitempty"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	Address      string    `gorm:"size:500" json:"address,omitempty"`
	Description  string    `gorm:"size:2000" json:"description,omitempty"`
	ImageURL     string    `gorm:"size:500" json:"image_url,omitempty"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VenueID     uuid.UUID `gorm:"type:uuid;not null;index" json:"venue_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingDate string    `gorm:"size:10;not null" json:"booking_date"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	TotalPrice  float64   `gorm:"not null" json:"total_price"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes       string    `gorm:"size:1000" json:"notes,omitempty"`
	AdminNotes  string    `gorm:"size:1000" json:"admin_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingDetail is a booking enriched with venue and user fields.
type BookingDetail struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	UserID      uuid.UUID `json:"user_id"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	TotalPrice  float64   `json:"total_price"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	AdminNotes  string    `json:"admin_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	VenueName    *string `json:"venue_name,omitempty"`
	VenueType    *string `json:"venue_type,omitempty"`
	VenueAddress *string `json:"venue_address,omitempty"`
	UserName     *string `json:"user_name,omitempty"`
	UserEmail    *string `json:"user_email,omitempty"`
}

// --- DTOs ---

type CreateVenueRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	PricePerHour *float64 `json:"price_per_hour"`
	Address      string   `json:"address"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"image_url"`
}

type UpdateVenueRequest struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	PricePerHour *float64 `json:"price_per_hour"`
	Address      *string  `json:"address"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"image_url"`
	IsAvailable  *bool    `json:"is_available"`
}

type CreateBookingRequest struct {
	VenueID     uuid.UUID `json:"venue_id"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	TotalPrice  float64   `json:"total_price"`
	Notes       string    `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
