package communities

import (
	"time"

	"github.com/google/uuid"
)

// Community groups players around a sport or interest. MemberCount is
// denormalized; only the membership service mutates it, via atomic SQL
// expressions.
type Community struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	Category    string    `gorm:"size:100" json:"category,omitempty"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	MemberCount int       `gorm:"not null;default:0" json:"member_count"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	MembershipStatusActive = "active"
	MembershipStatusLeft   = "left"

	MembershipRoleMember = "member"
	MembershipRoleAdmin  = "admin"
)

// Membership links a user to a community. At most one active row may exist
// per (community, user) pair; the service checks this by querying, the store
// enforces no composite uniqueness.
type Membership struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID uuid.UUID `gorm:"type:uuid;not null;index" json:"community_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Role        string    `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt    time.Time `gorm:"not null" json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MembershipDetail is a membership enriched with community and user fields
// for admin listings and per-user views.
type MembershipDetail struct {
	ID          uuid.UUID `json:"id"`
	CommunityID uuid.UUID `json:"community_id"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CommunityName        *string `json:"community_name,omitempty"`
	CommunityCategory    *string `json:"community_category,omitempty"`
	CommunityDescription *string `json:"community_description,omitempty"`
	CommunityImageURL    *string `json:"community_image_url,omitempty"`
	UserName             *string `json:"user_name,omitempty"`
	UserEmail            *string `json:"user_email,omitempty"`
}

// --- DTOs ---

type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

type UpdateCommunityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateMembershipRoleRequest struct {
	Role string `json:"role"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
