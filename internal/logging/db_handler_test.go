package logging

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.SystemLog{}))
	return db
}

func TestDBHandlerOnlyAcceptsErrorAndAbove(t *testing.T) {
	h := NewDBHandler(testDB(t))
	defer h.Stop()

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestDBHandlerPersistsRecords(t *testing.T) {
	db := testDB(t)
	h := NewDBHandler(db)
	defer h.Stop()

	record := slog.NewRecord(time.Now(), slog.LevelError, "payment proof rejected", 0)
	record.AddAttrs(
		slog.String("user_id", "u-1"),
		slog.String("method", "POST"),
		slog.String("path", "/api/orders/x/payment-proof"),
		slog.String("error", "order expired"),
		slog.String("order_id", "o-1"),
	)
	require.NoError(t, h.Handle(context.Background(), record))
	h.flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "payment proof rejected", logs[0].Message)
	assert.Equal(t, "ERROR", logs[0].Level)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "u-1", *logs[0].UserID)
	assert.Equal(t, "order expired", logs[0].Error)
	assert.Contains(t, string(logs[0].Extra), "order_id")
}

func TestMultiHandlerFansOut(t *testing.T) {
	db := testDB(t)
	dbHandler := NewDBHandler(db)
	defer dbHandler.Stop()

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbHandler,
	))

	logger.Info("routine message")
	logger.Error("something broke", "error", "boom")
	dbHandler.flush()

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
