package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	EventDate   time.Time `gorm:"not null" json:"event_date"`
	Location    string    `gorm:"size:500" json:"location,omitempty"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusAttended   = "attended"
	RegistrationStatusCancelled  = "cancelled"
)

// Registration links a user to an event. Only a row in 'registered' status
// blocks a new registration; cancelled rows do not.
type Registration struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status       string    `gorm:"size:20;not null;default:'registered'" json:"status"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegistrationDetail is a registration enriched with event and user fields.
type RegistrationDetail struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	UserID       uuid.UUID `json:"user_id"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	EventTitle    *string    `json:"event_title,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	EventLocation *string    `json:"event_location,omitempty"`
	EventImageURL *string    `json:"event_image_url,omitempty"`
	UserName      *string    `json:"user_name,omitempty"`
	UserEmail     *string    `json:"user_email,omitempty"`
}

// --- DTOs ---

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"image_url"`
	IsActive    *bool      `json:"is_active"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Location    *string    `json:"location"`
	ImageURL    *string    `json:"image_url"`
	IsActive    *bool      `json:"is_active"`
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
