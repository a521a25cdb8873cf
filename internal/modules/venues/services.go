package venues

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVenueNotFound        = errors.New("venue not found")
	ErrVenueName            = errors.New("name is required")
	ErrVenuePriceRequired   = errors.New("price per hour is required")
	ErrNegativePrice        = errors.New("price per hour must not be negative")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingFields        = errors.New("venue, booking date, start time and end time are required")
	ErrNotBookingOwner      = errors.New("not authorized to cancel this booking")
	ErrBookingNotPending    = errors.New("only pending bookings can be cancelled")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
)

var validBookingStatuses = map[string]bool{
	BookingStatusPending:   true,
	BookingStatusApproved:  true,
	BookingStatusRejected:  true,
	BookingStatusCancelled: true,
	BookingStatusCompleted: true,
}

// =============================================================================
// VenueService
// =============================================================================

type VenueService struct {
	db *gorm.DB
}

func NewVenueService(db *gorm.DB) *VenueService {
	return &VenueService{db: db}
}

func (s *VenueService) List() ([]Venue, error) {
	var venues []Venue
	if err := s.db.Order("created_at DESC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *VenueService) Get(id uuid.UUID) (*Venue, error) {
	var venue Venue
	if err := s.db.First(&venue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to fetch venue: %w", err)
	}
	return &venue, nil
}

func (s *VenueService) Create(req *CreateVenueRequest) (*Venue, error) {
	if req.Name == "" {
		return nil, ErrVenueName
	}
	if req.PricePerHour == nil {
		return nil, ErrVenuePriceRequired
	}
	if *req.PricePerHour < 0 {
		return nil, ErrNegativePrice
	}

	venue := Venue{
		ID:           uuid.New(),
		Name:         req.Name,
		Type:         req.Type,
		PricePerHour: *req.PricePerHour,
		Address:      req.Address,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
	}

	if err := s.db.Create(&venue).Error; err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return &venue, nil
}

func (s *VenueService) Update(id uuid.UUID, req *UpdateVenueRequest) (*Venue, error) {
	venue, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrVenueName
		}
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrNegativePrice
		}
		updates["price_per_hour"] = *req.PricePerHour
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := s.db.Model(venue).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update venue: %w", err)
		}
	}
	return s.Get(id)
}

func (s *VenueService) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&Venue{}).Error
}

// =============================================================================
// BookingService
// =============================================================================

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

func (s *BookingService) Create(userID uuid.UUID, req *CreateBookingRequest) (*Booking, error) {
	if req.VenueID == uuid.Nil || req.BookingDate == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrBookingFields
	}
	if req.TotalPrice < 0 {
		return nil, ErrNegativePrice
	}

	booking := Booking{
		ID:          uuid.New(),
		VenueID:     req.VenueID,
		UserID:      userID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TotalPrice:  req.TotalPrice,
		Status:      BookingStatusPending,
		Notes:       req.Notes,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) List() ([]BookingDetail, error) {
	return s.findDetails(s.db.Model(&Booking{}))
}

func (s *BookingService) ListByUser(userID uuid.UUID) ([]BookingDetail, error) {
	return s.findDetails(s.db.Model(&Booking{}).Where("bookings.user_id = ?", userID))
}

func (s *BookingService) Get(id uuid.UUID) (*BookingDetail, error) {
	details, err := s.findDetails(s.db.Model(&Booking{}).Where("bookings.id = ?", id))
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrBookingNotFound
	}
	return &details[0], nil
}

func (s *BookingService) findDetails(q *gorm.DB) ([]BookingDetail, error) {
	var details []BookingDetail
	err := q.
		Select("bookings.id, bookings.venue_id, bookings.user_id, bookings.booking_date, bookings.start_time, bookings.end_time, "+
			"bookings.total_price, bookings.status, bookings.notes, bookings.admin_notes, bookings.created_at, bookings.updated_at, "+
			"venues.name AS venue_name, venues.type AS venue_type, venues.address AS venue_address, "+
			"users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN venues ON venues.id = bookings.venue_id").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Order("bookings.created_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return details, nil
}

// UpdateStatus is the admin approve/reject/complete path.
func (s *BookingService) UpdateStatus(id uuid.UUID, status, adminNotes string) (*BookingDetail, error) {
	if !validBookingStatuses[status] {
		return nil, ErrInvalidBookingStatus
	}

	var booking Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}
	if err := s.db.Model(&booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return s.Get(id)
}

// Cancel is the user-facing exit; only pending bookings may be cancelled.
func (s *BookingService) Cancel(id, userID uuid.UUID) (*BookingDetail, error) {
	var booking Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != BookingStatusPending {
		return nil, ErrBookingNotPending
	}

	if err := s.db.Model(&booking).Update("status", BookingStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return s.Get(id)
}

func (s *BookingService) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&Booking{}).Error
}

// PendingCount feeds the admin dashboard badge.
func (s *BookingService) PendingCount() (int64, error) {
	var count int64
	err := s.db.Model(&Booking{}).Where("status = ?", BookingStatusPending).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending bookings: %w", err)
	}
	return count, nil
}
