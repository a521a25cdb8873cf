package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporthub-id/sporthub-backend/internal/dto"
	"github.com/sporthub-id/sporthub-backend/internal/models"
	"github.com/sporthub-id/sporthub-backend/internal/modules/communities"
	"github.com/sporthub-id/sporthub-backend/internal/modules/events"
	"github.com/sporthub-id/sporthub-backend/internal/modules/shop"
	"github.com/sporthub-id/sporthub-backend/internal/modules/venues"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("role must be 'user' or 'admin'")

// UserService covers the admin user-management surface.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return out, nil
}

func (s *UserService) Get(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := userResponse(&user)
	return &resp, nil
}

func (s *UserService) UpdateRole(userID uuid.UUID, role string) (*dto.UserResponse, error) {
	if role != "user" && role != "admin" {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = role

	resp := userResponse(&user)
	return &resp, nil
}

// Delete removes a user together with everything the user owns. Idempotent:
// deleting an unknown id is a no-op.
func (s *UserService) Delete(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteOwnedRecords(tx, userID)
	})
}

// deleteOwnedRecords clears every collection the user owns inside tx. Active
// memberships still hold a slot in their community's member_count, so each
// slot is released with the same guarded decrement the membership service
// uses before the rows go.
func deleteOwnedRecords(tx *gorm.DB, userID uuid.UUID) error {
	var communityIDs []uuid.UUID
	err := tx.Model(&communities.Membership{}).
		Where("user_id = ? AND status = ?", userID, communities.MembershipStatusActive).
		Pluck("community_id", &communityIDs).Error
	if err != nil {
		return fmt.Errorf("failed to collect memberships: %w", err)
	}
	for _, communityID := range communityIDs {
		err := tx.Model(&communities.Community{}).
			Where("id = ? AND member_count > 0", communityID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
		if err != nil {
			return fmt.Errorf("failed to update member count: %w", err)
		}
	}

	tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
	tx.Where("user_id = ?", userID).Delete(&shop.Order{})
	tx.Where("user_id = ?", userID).Delete(&venues.Booking{})
	tx.Where("user_id = ?", userID).Delete(&communities.Membership{})
	tx.Where("user_id = ?", userID).Delete(&events.Registration{})
	return tx.Where("id = ?", userID).Delete(&models.User{}).Error
}
