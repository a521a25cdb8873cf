package events

import (
	"fmt"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &Event{}, &Registration{}))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, title string, date time.Time) *Event {
	t.Helper()
	e, err := NewEventService(db).Create(&CreateEventRequest{Title: title, EventDate: &date})
	require.NoError(t, err)
	return e
}

func TestEventCreateValidation(t *testing.T) {
	svc := NewEventService(testDB(t))
	date := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(&CreateEventRequest{EventDate: &date})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(&CreateEventRequest{Title: "Fun Run"})
	assert.ErrorIs(t, err, ErrEventDateRequired)

	e, err := svc.Create(&CreateEventRequest{Title: "Fun Run", EventDate: &date})
	require.NoError(t, err)
	assert.Equal(t, date, e.EventDate.UTC())
}

func TestEventListOrderedByDate(t *testing.T) {
	db := testDB(t)
	svc := NewEventService(db)

	seedEvent(t, db, "December Cup", time.Date(2026, 12, 1, 8, 0, 0, 0, time.UTC))
	seedEvent(t, db, "October Cup", time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC))

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "October Cup", list[0].Title)
}

func TestRegisterIsIdempotentPerEvent(t *testing.T) {
	db := testDB(t)
	event := seedEvent(t, db, "Fun Run", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))
	svc := NewRegistrationService(db)
	userID := uuid.New()

	r, err := svc.Register(event.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, RegistrationStatusRegistered, r.Status)

	_, err = svc.Register(event.ID, userID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestCancelledRegistrationDoesNotBlockReRegistration(t *testing.T) {
	db := testDB(t)
	event := seedEvent(t, db, "Fun Run", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))
	svc := NewRegistrationService(db)
	userID := uuid.New()

	r, err := svc.Register(event.ID, userID)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(r.ID, userID))

	ok, err := svc.IsRegistered(event.ID, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Register(event.ID, userID)
	require.NoError(t, err)
}

func TestCancelRequiresOwnership(t *testing.T) {
	db := testDB(t)
	event := seedEvent(t, db, "Fun Run", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))
	svc := NewRegistrationService(db)

	r, err := svc.Register(event.ID, uuid.New())
	require.NoError(t, err)

	err = svc.Cancel(r.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotRegistrationOwner)

	err = svc.Cancel(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestCountByEventCountsRegisteredOnly(t *testing.T) {
	db := testDB(t)
	event := seedEvent(t, db, "Fun Run", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))
	svc := NewRegistrationService(db)

	_, err := svc.Register(event.ID, uuid.New())
	require.NoError(t, err)
	r, err := svc.Register(event.ID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(r.ID, r.UserID))

	count, err := svc.CountByEvent(event.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateStatusWithinEnum(t *testing.T) {
	db := testDB(t)
	event := seedEvent(t, db, "Fun Run", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))
	svc := NewRegistrationService(db)

	r, err := svc.Register(event.ID, uuid.New())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(r.ID, "waitlisted")
	assert.ErrorIs(t, err, ErrInvalidRegStatus)

	updated, err := svc.UpdateStatus(r.ID, RegistrationStatusAttended)
	require.NoError(t, err)
	assert.Equal(t, RegistrationStatusAttended, updated.Status)
}

func TestRegistrationDetailsCarryEventFields(t *testing.T) {
	db := testDB(t)
	event := seedEvent(t, db, "Fun Run", time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))
	svc := NewRegistrationService(db)

	user := models.User{ID: uuid.New(), Email: "sari@example.com", Name: "Sari", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	_, err := svc.Register(event.ID, user.ID)
	require.NoError(t, err)

	details, err := svc.FindByEvent(event.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].EventTitle)
	assert.Equal(t, "Fun Run", *details[0].EventTitle)
	require.NotNil(t, details[0].UserName)
	assert.Equal(t, "Sari", *details[0].UserName)
}
