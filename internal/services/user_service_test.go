package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sporthub-id/sporthub-backend/internal/models"
	"github.com/sporthub-id/sporthub-backend/internal/modules/communities"
)

func TestUpdateRole(t *testing.T) {
	db := testDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewUserService(db)
	resp := register(t, auth, "andi@example.com")

	_, err := svc.UpdateRole(resp.User.ID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	updated, err := svc.UpdateRole(resp.User.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)

	_, err = svc.UpdateRole(uuid.New(), "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminDeleteReleasesCommunitySlots(t *testing.T) {
	db := testDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewUserService(db)
	resp := register(t, auth, "andi@example.com")

	futsal := communities.Community{ID: uuid.New(), Name: "Futsal Minggu", IsActive: true}
	tennis := communities.Community{ID: uuid.New(), Name: "Tenis Sore", IsActive: true}
	require.NoError(t, db.Create(&futsal).Error)
	require.NoError(t, db.Create(&tennis).Error)

	memberships := communities.NewMembershipService(db)
	_, err := memberships.Join(futsal.ID, resp.User.ID)
	require.NoError(t, err)
	_, err = memberships.Join(tennis.ID, resp.User.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(resp.User.ID))

	for _, id := range []uuid.UUID{futsal.ID, tennis.ID} {
		var reloaded communities.Community
		require.NoError(t, db.First(&reloaded, "id = ?", id).Error)
		assert.Equal(t, 0, reloaded.MemberCount)

		count, err := memberships.CountByCommunity(id)
		require.NoError(t, err)
		assert.Zero(t, count)
	}

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Zero(t, users)
}

func TestAdminDeleteUnknownUserIsNoOp(t *testing.T) {
	db := testDB(t)
	svc := NewUserService(db)

	require.NoError(t, svc.Delete(uuid.New()))
}
