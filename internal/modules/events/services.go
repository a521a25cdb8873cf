package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrEventDateRequired    = errors.New("event date is required")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrNotRegistrationOwner = errors.New("not authorized to modify this registration")
	ErrInvalidRegStatus     = errors.New("invalid registration status")
)

var validRegistrationStatuses = map[string]bool{
	RegistrationStatusRegistered: true,
	RegistrationStatusAttended:   true,
	RegistrationStatusCancelled:  true,
}

// =============================================================================
// EventService
// =============================================================================

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// List returns events soonest first.
func (s *EventService) List() ([]Event, error) {
	var events []Event
	if err := s.db.Order("event_date ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) Get(id uuid.UUID) (*Event, error) {
	var event Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Create(req *CreateEventRequest) (*Event, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.EventDate == nil {
		return nil, ErrEventDateRequired
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	event := Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		EventDate:   *req.EventDate,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		IsActive:    isActive,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Update(id uuid.UUID, req *UpdateEventRequest) (*Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.EventDate != nil {
		updates["event_date"] = *req.EventDate
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(event).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}
	return s.Get(id)
}

func (s *EventService) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&Event{}).Error
}

// =============================================================================
// RegistrationService
// =============================================================================

type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// IsRegistered reports whether the user holds a 'registered' row for the
// event. Cancelled registrations do not block re-registration.
func (s *RegistrationService) IsRegistered(eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&Registration{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, RegistrationStatusRegistered).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return count > 0, nil
}

func (s *RegistrationService) Register(eventID, userID uuid.UUID) (*Registration, error) {
	isRegistered, err := s.IsRegistered(eventID, userID)
	if err != nil {
		return nil, err
	}
	if isRegistered {
		return nil, ErrAlreadyRegistered
	}

	registration := Registration{
		ID:           uuid.New(),
		EventID:      eventID,
		UserID:       userID,
		Status:       RegistrationStatusRegistered,
		RegisteredAt: time.Now(),
	}

	if err := s.db.Create(&registration).Error; err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return &registration, nil
}

func (s *RegistrationService) Cancel(registrationID, userID uuid.UUID) error {
	var registration Registration
	if err := s.db.First(&registration, "id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to fetch registration: %w", err)
	}

	if registration.UserID != userID {
		return ErrNotRegistrationOwner
	}

	if err := s.db.Model(&registration).Update("status", RegistrationStatusCancelled).Error; err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	return nil
}

// CountByEvent counts rows in 'registered' state; there is no denormalized
// counter for events, the query is the source of truth.
func (s *RegistrationService) CountByEvent(eventID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&Registration{}).
		Where("event_id = ? AND status = ?", eventID, RegistrationStatusRegistered).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

func (s *RegistrationService) FindAll() ([]RegistrationDetail, error) {
	return s.findDetails(s.db.Model(&Registration{}))
}

func (s *RegistrationService) FindByEvent(eventID uuid.UUID) ([]RegistrationDetail, error) {
	return s.findDetails(s.db.Model(&Registration{}).Where("registrations.event_id = ?", eventID))
}

func (s *RegistrationService) FindByUser(userID uuid.UUID) ([]RegistrationDetail, error) {
	return s.findDetails(s.db.Model(&Registration{}).Where("registrations.user_id = ?", userID))
}

func (s *RegistrationService) findDetails(q *gorm.DB) ([]RegistrationDetail, error) {
	var details []RegistrationDetail
	err := q.
		Select("registrations.id, registrations.event_id, registrations.user_id, registrations.status, registrations.registered_at, registrations.updated_at, " +
			"events.title AS event_title, events.event_date AS event_date, " +
			"events.location AS event_location, events.image_url AS event_image_url, " +
			"users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN events ON events.id = registrations.event_id").
		Joins("LEFT JOIN users ON users.id = registrations.user_id").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return details, nil
}

// UpdateStatus is an admin override within the status enum.
func (s *RegistrationService) UpdateStatus(registrationID uuid.UUID, status string) (*Registration, error) {
	if !validRegistrationStatuses[status] {
		return nil, ErrInvalidRegStatus
	}

	var registration Registration
	if err := s.db.First(&registration, "id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to fetch registration: %w", err)
	}

	if err := s.db.Model(&registration).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update registration: %w", err)
	}
	registration.Status = status
	return &registration, nil
}

// Delete hard-removes a registration (admin). Idempotent.
func (s *RegistrationService) Delete(registrationID uuid.UUID) error {
	return s.db.Where("id = ?", registrationID).Delete(&Registration{}).Error
}
