package dashboard

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
	"github.com/sporthub-id/sporthub-backend/internal/modules/shop"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &shop.Product{}, &shop.Order{}))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, user models.User, amount float64, status string, createdAt time.Time) {
	t.Helper()
	order := shop.Order{
		ID:              uuid.New(),
		UserID:          user.ID,
		Items:           []shop.OrderItem{{Name: "Item", Price: amount, Quantity: 1}},
		TotalAmount:     amount,
		Status:          status,
		ShippingAddress: "Jl. Raya 1",
		ExpiresAt:       createdAt.Add(10 * time.Hour),
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestCollect(t *testing.T) {
	db := testDB(t)

	user := models.User{ID: uuid.New(), Email: "andi@example.com", Name: "Andi", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Create(&shop.Product{ID: uuid.New(), Name: "Racket", Price: 250, Stock: 20}).Error)
	require.NoError(t, db.Create(&shop.Product{ID: uuid.New(), Name: "Grip Tape", Price: 15, Stock: 3}).Error)

	now := time.Now()
	seedOrder(t, db, user, 100, shop.OrderStatusPaid, now)
	seedOrder(t, db, user, 50, shop.OrderStatusPending, now)
	seedOrder(t, db, user, 999, shop.OrderStatusCancelled, now)

	stats, err := NewStatsService(db).Collect()
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 3, stats.TotalOrders)
	assert.Equal(t, 150.0, stats.TotalRevenue)

	require.Len(t, stats.LowStock, 1)
	assert.Equal(t, "Grip Tape", stats.LowStock[0].Name)

	assert.EqualValues(t, 1, stats.OrdersByStatus[shop.OrderStatusPaid])
	assert.EqualValues(t, 1, stats.OrdersByStatus[shop.OrderStatusPending])
	assert.EqualValues(t, 1, stats.OrdersByStatus[shop.OrderStatusCancelled])

	require.Len(t, stats.RecentOrders, 3)
	require.NotNil(t, stats.RecentOrders[0].UserName)
	assert.Equal(t, "Andi", *stats.RecentOrders[0].UserName)

	require.Len(t, stats.MonthlyRevenue, 1)
	assert.Equal(t, now.Format("2006-01"), stats.MonthlyRevenue[0].Month)
	assert.Equal(t, 150.0, stats.MonthlyRevenue[0].Revenue)
}

func TestCollectOnEmptyDatabase(t *testing.T) {
	stats, err := NewStatsService(testDB(t)).Collect()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalRevenue)
	assert.NotNil(t, stats.RecentOrders)
	assert.NotNil(t, stats.LowStock)
	assert.Empty(t, stats.MonthlyRevenue)
}

func TestMonthlyRevenueBuckets(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	orders := []shop.Order{
		{TotalAmount: 100, Status: shop.OrderStatusPaid, CreatedAt: now},
		{TotalAmount: 40, Status: shop.OrderStatusCompleted, CreatedAt: now.AddDate(0, -1, 0)},
		{TotalAmount: 60, Status: shop.OrderStatusPaid, CreatedAt: now.AddDate(0, -1, 0)},
		{TotalAmount: 999, Status: shop.OrderStatusCancelled, CreatedAt: now},
		{TotalAmount: 500, Status: shop.OrderStatusPaid, CreatedAt: now.AddDate(0, -8, 0)},
	}

	buckets := monthlyRevenue(orders, now)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-09", buckets[0].Month)
	assert.Equal(t, 100.0, buckets[0].Revenue)
	assert.Equal(t, "2026-08", buckets[1].Month)
	assert.Equal(t, 100.0, buckets[1].Revenue)
}
