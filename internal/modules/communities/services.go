package communities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCommunityNotFound  = errors.New("community not found")
	ErrCommunityName      = errors.New("name is required")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("already a member of this community")
	ErrNotMembershipOwner = errors.New("not authorized to modify this membership")
	ErrInvalidMemberRole  = errors.New("role must be 'member' or 'admin'")
)

// =============================================================================
// CommunityService
// =============================================================================

type CommunityService struct {
	db *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{db: db}
}

func (s *CommunityService) List() ([]Community, error) {
	var communities []Community
	if err := s.db.Order("created_at DESC").Find(&communities).Error; err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}
	return communities, nil
}

func (s *CommunityService) Get(id uuid.UUID) (*Community, error) {
	var community Community
	if err := s.db.First(&community, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to fetch community: %w", err)
	}
	return &community, nil
}

func (s *CommunityService) Create(req *CreateCommunityRequest) (*Community, error) {
	if req.Name == "" {
		return nil, ErrCommunityName
	}

	community := Community{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		MemberCount: 0,
		IsActive:    true,
	}

	if err := s.db.Create(&community).Error; err != nil {
		return nil, fmt.Errorf("failed to create community: %w", err)
	}
	return &community, nil
}

func (s *CommunityService) Update(id uuid.UUID, req *UpdateCommunityRequest) (*Community, error) {
	community, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrCommunityName
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(community).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update community: %w", err)
		}
	}
	return s.Get(id)
}

func (s *CommunityService) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&Community{}).Error
}

// =============================================================================
// MembershipService
// =============================================================================

type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// IsMember reports whether the user currently holds an active membership.
// Rows with status 'left' do not count.
func (s *MembershipService) IsMember(communityID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&Membership{}).
		Where("community_id = ? AND user_id = ? AND status = ?", communityID, userID, MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// Join creates an active membership and bumps the community's denormalized
// counter. The duplicate check is a query, not a uniqueness constraint.
func (s *MembershipService) Join(communityID, userID uuid.UUID) (*Membership, error) {
	isMember, err := s.IsMember(communityID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	membership := Membership{
		ID:          uuid.New(),
		CommunityID: communityID,
		UserID:      userID,
		Status:      MembershipStatusActive,
		Role:        MembershipRoleMember,
		JoinedAt:    time.Now(),
	}

	if err := s.db.Create(&membership).Error; err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	// Atomic in-store increment; no read-modify-write.
	if err := s.db.Model(&Community{}).Where("id = ?", communityID).
		UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("failed to update member count: %w", err)
	}

	return &membership, nil
}

// Leave flips the membership to 'left'. The counter decrement only fires when
// this call actually performed the transition, and is floored at zero, so
// repeated or concurrent leaves cannot drive the count negative.
func (s *MembershipService) Leave(membershipID, userID uuid.UUID) error {
	var membership Membership
	if err := s.db.First(&membership, "id = ?", membershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to fetch membership: %w", err)
	}

	if membership.UserID != userID {
		return ErrNotMembershipOwner
	}

	result := s.db.Model(&Membership{}).
		Where("id = ? AND status = ?", membershipID, MembershipStatusActive).
		Update("status", MembershipStatusLeft)
	if result.Error != nil {
		return fmt.Errorf("failed to leave community: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		if err := s.decrementCount(membership.CommunityID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MembershipService) decrementCount(communityID uuid.UUID) error {
	err := s.db.Model(&Community{}).
		Where("id = ? AND member_count > 0", communityID).
		UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
	if err != nil {
		return fmt.Errorf("failed to update member count: %w", err)
	}
	return nil
}

// CountByCommunity is the authoritative count: active rows, computed by query.
func (s *MembershipService) CountByCommunity(communityID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&Membership{}).
		Where("community_id = ? AND status = ?", communityID, MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

func (s *MembershipService) FindAll() ([]MembershipDetail, error) {
	return s.findDetails(s.db.Model(&Membership{}))
}

func (s *MembershipService) FindByCommunity(communityID uuid.UUID) ([]MembershipDetail, error) {
	return s.findDetails(s.db.Model(&Membership{}).Where("memberships.community_id = ?", communityID))
}

func (s *MembershipService) FindByUser(userID uuid.UUID) ([]MembershipDetail, error) {
	return s.findDetails(s.db.Model(&Membership{}).Where("memberships.user_id = ?", userID))
}

func (s *MembershipService) findDetails(q *gorm.DB) ([]MembershipDetail, error) {
	var details []MembershipDetail
	err := q.
		Select("memberships.id, memberships.community_id, memberships.user_id, memberships.status, memberships.role, memberships.joined_at, memberships.updated_at, " +
			"communities.name AS community_name, communities.category AS community_category, " +
			"communities.description AS community_description, communities.image_url AS community_image_url, " +
			"users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN communities ON communities.id = memberships.community_id").
		Joins("LEFT JOIN users ON users.id = memberships.user_id").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return details, nil
}

// UpdateRole is an admin override; no ownership precondition.
func (s *MembershipService) UpdateRole(membershipID uuid.UUID, role string) (*Membership, error) {
	if role != MembershipRoleMember && role != MembershipRoleAdmin {
		return nil, ErrInvalidMemberRole
	}

	var membership Membership
	if err := s.db.First(&membership, "id = ?", membershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}

	if err := s.db.Model(&membership).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update membership role: %w", err)
	}
	membership.Role = role
	return &membership, nil
}

// Delete hard-removes a membership (admin). The counter is adjusted exactly
// when the deleted row was still active, mirroring Leave.
func (s *MembershipService) Delete(membershipID uuid.UUID) error {
	var membership Membership
	err := s.db.First(&membership, "id = ?", membershipID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch membership: %w", err)
	}

	wasActive := membership.Status == MembershipStatusActive
	if err := s.db.Delete(&membership).Error; err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	if wasActive {
		return s.decrementCount(membership.CommunityID)
	}
	return nil
}
