package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/dto"
	"github.com/sporthub-id/sporthub-backend/internal/models"
	"github.com/sporthub-id/sporthub-backend/internal/modules/communities"
	"github.com/sporthub-id/sporthub-backend/internal/modules/events"
	"github.com/sporthub-id/sporthub-backend/internal/modules/shop"
	"github.com/sporthub-id/sporthub-backend/internal/modules/venues"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.RefreshToken{},
		&shop.Order{}, &venues.Booking{},
		&communities.Community{}, &communities.Membership{}, &events.Registration{},
	))
	return db
}

func register(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@b.co", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrFieldsRequired)

	_, err = svc.Register(&dto.RegisterRequest{Name: "A", Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	resp := register(t, svc, "  Andi@Example.COM ")
	assert.Equal(t, "andi@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err := svc.Register(&dto.RegisterRequest{
		Name:     "Other",
		Email:    "andi@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())
	register(t, svc, "andi@example.com")

	resp, err := svc.Login(&dto.LoginRequest{Email: "ANDI@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "andi@example.com", resp.User.Email)

	_, err = svc.Login(&dto.LoginRequest{Email: "andi@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessTokenCarriesIdentityClaims(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(testDB(t), cfg)
	resp := register(t, svc, "andi@example.com")

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "andi@example.com", claims["email"])
	assert.Equal(t, "user", claims["role"])
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())
	resp := register(t, svc, "andi@example.com")

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The presented token was single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated one still works.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())
	resp := register(t, svc, "andi@example.com")

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())
	resp := register(t, svc, "andi@example.com")

	err := svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrongpass",
		NewPassword:     "newsecret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "supersecret",
		NewPassword:     "tiny",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	err = svc.ChangePassword(resp.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "supersecret",
		NewPassword:     "newsecret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "andi@example.com", Password: "newsecret123"})
	require.NoError(t, err)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	cfg.OrderPaymentWindow = 10 * time.Hour
	svc := NewAuthService(db, cfg)
	resp := register(t, svc, "andi@example.com")

	orders := shop.NewOrderService(db, cfg)
	_, err := orders.Create(resp.User.ID, &shop.CreateOrderRequest{
		Items:           []shop.OrderItem{{Name: "Ball", Price: 50, Quantity: 1}},
		TotalAmount:     50,
		ShippingAddress: "Jl. Raya 1",
	})
	require.NoError(t, err)

	err = svc.DeleteAccount(resp.User.ID, "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.DeleteAccount(resp.User.ID, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	require.NoError(t, svc.DeleteAccount(resp.User.ID, "supersecret"))

	var users, orderRows, tokens int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&shop.Order{}).Count(&orderRows)
	db.Model(&models.RefreshToken{}).Count(&tokens)
	assert.Zero(t, users)
	assert.Zero(t, orderRows)
	assert.Zero(t, tokens)
}

func TestDeleteAccountReleasesCommunitySlot(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	resp := register(t, svc, "andi@example.com")
	other := register(t, svc, "budi@example.com")

	community := communities.Community{ID: uuid.New(), Name: "Futsal Minggu", IsActive: true}
	require.NoError(t, db.Create(&community).Error)

	memberships := communities.NewMembershipService(db)
	_, err := memberships.Join(community.ID, resp.User.ID)
	require.NoError(t, err)
	_, err = memberships.Join(community.ID, other.User.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(resp.User.ID, "supersecret"))

	var reloaded communities.Community
	require.NoError(t, db.First(&reloaded, "id = ?", community.ID).Error)
	assert.Equal(t, 1, reloaded.MemberCount)

	count, err := memberships.CountByCommunity(community.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteAccountSkipsCounterForLeftMemberships(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	resp := register(t, svc, "andi@example.com")

	community := communities.Community{ID: uuid.New(), Name: "Badminton Pagi", IsActive: true}
	require.NoError(t, db.Create(&community).Error)

	memberships := communities.NewMembershipService(db)
	m, err := memberships.Join(community.ID, resp.User.ID)
	require.NoError(t, err)
	require.NoError(t, memberships.Leave(m.ID, resp.User.ID))

	// Leave already returned the slot; the cascade must not decrement again.
	require.NoError(t, svc.DeleteAccount(resp.User.ID, "supersecret"))

	var reloaded communities.Community
	require.NoError(t, db.First(&reloaded, "id = ?", community.ID).Error)
	assert.Equal(t, 0, reloaded.MemberCount)
}

func TestRegisterAfterDeleteFreesEmail(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())
	resp := register(t, svc, "andi@example.com")

	require.NoError(t, svc.DeleteAccount(resp.User.ID, "supersecret"))

	again := register(t, svc, "andi@example.com")
	assert.NotEqual(t, resp.User.ID, again.User.ID)
}
