package venues

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sporthub-id/sporthub-backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &Venue{}, &Booking{}))
	return db
}

func floatPtr(v float64) *float64 { return &v }

func seedVenue(t *testing.T, db *gorm.DB) *Venue {
	t.Helper()
	v, err := NewVenueService(db).Create(&CreateVenueRequest{
		Name:         "GOR Satria",
		Type:         "badminton",
		PricePerHour: floatPtr(75),
	})
	require.NoError(t, err)
	return v
}

func bookingRequest(venueID uuid.UUID) *CreateBookingRequest {
	return &CreateBookingRequest{
		VenueID:     venueID,
		BookingDate: "2026-10-12",
		StartTime:   "18:00",
		EndTime:     "20:00",
		TotalPrice:  150,
	}
}

func TestVenueCreateValidation(t *testing.T) {
	svc := NewVenueService(testDB(t))

	_, err := svc.Create(&CreateVenueRequest{PricePerHour: floatPtr(75)})
	assert.ErrorIs(t, err, ErrVenueName)

	_, err = svc.Create(&CreateVenueRequest{Name: "GOR Satria"})
	assert.ErrorIs(t, err, ErrVenuePriceRequired)

	_, err = svc.Create(&CreateVenueRequest{Name: "GOR Satria", PricePerHour: floatPtr(-5)})
	assert.ErrorIs(t, err, ErrNegativePrice)

	v, err := svc.Create(&CreateVenueRequest{Name: "GOR Satria", PricePerHour: floatPtr(75)})
	require.NoError(t, err)
	assert.True(t, v.IsAvailable)
}

func TestVenueUpdateMergesOnlyProvidedFields(t *testing.T) {
	db := testDB(t)
	svc := NewVenueService(db)
	v := seedVenue(t, db)

	available := false
	updated, err := svc.Update(v.ID, &UpdateVenueRequest{IsAvailable: &available})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "GOR Satria", updated.Name)
	assert.Equal(t, 75.0, updated.PricePerHour)
}

func TestBookingCreateValidation(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	venue := seedVenue(t, db)

	req := bookingRequest(venue.ID)
	req.StartTime = ""
	_, err := svc.Create(uuid.New(), req)
	assert.ErrorIs(t, err, ErrBookingFields)

	b, err := svc.Create(uuid.New(), bookingRequest(venue.ID))
	require.NoError(t, err)
	assert.Equal(t, BookingStatusPending, b.Status)
}

func TestCancelOnlyPendingAndOwned(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	venue := seedVenue(t, db)
	owner := uuid.New()

	b, err := svc.Create(owner, bookingRequest(venue.ID))
	require.NoError(t, err)

	_, err = svc.Cancel(b.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	got, err := svc.Cancel(b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCancelled, got.Status)

	// Terminal bookings cannot be cancelled again.
	_, err = svc.Cancel(b.ID, owner)
	assert.ErrorIs(t, err, ErrBookingNotPending)
}

func TestUpdateStatusRecordsAdminNotes(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	venue := seedVenue(t, db)

	b, err := svc.Create(uuid.New(), bookingRequest(venue.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(b.ID, "confirmed", "")
	assert.ErrorIs(t, err, ErrInvalidBookingStatus)

	got, err := svc.UpdateStatus(b.ID, BookingStatusApproved, "Court 2 assigned")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusApproved, got.Status)
	assert.Equal(t, "Court 2 assigned", got.AdminNotes)
}

func TestBookingDetailsJoinVenueAndUser(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	venue := seedVenue(t, db)

	user := models.User{ID: uuid.New(), Email: "budi@example.com", Name: "Budi", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	_, err := svc.Create(user.ID, bookingRequest(venue.ID))
	require.NoError(t, err)

	details, err := svc.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].VenueName)
	assert.Equal(t, "GOR Satria", *details[0].VenueName)
	require.NotNil(t, details[0].UserName)
	assert.Equal(t, "Budi", *details[0].UserName)
}

func TestPendingCount(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	venue := seedVenue(t, db)
	owner := uuid.New()

	b, err := svc.Create(owner, bookingRequest(venue.ID))
	require.NoError(t, err)
	_, err = svc.Create(owner, bookingRequest(venue.ID))
	require.NoError(t, err)

	_, err = svc.Cancel(b.ID, owner)
	require.NoError(t, err)

	count, err := svc.PendingCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
