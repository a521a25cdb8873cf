package dashboard

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sporthub-id/sporthub-backend/internal/models"
	"github.com/sporthub-id/sporthub-backend/internal/modules/shop"
)

// Stats is the admin dashboard rollup. Every field is computed fresh on
// request; nothing here is cached or denormalized.
type Stats struct {
	TotalUsers     int64            `json:"total_users"`
	TotalProducts  int64            `json:"total_products"`
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
	RecentOrders   []RecentOrder    `json:"recent_orders"`
	LowStock       []shop.Product   `json:"low_stock_products"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue"`
}

// RecentOrder is an order row enriched with the buyer's name and email.
type RecentOrder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UserName    *string   `json:"user_name,omitempty"`
	UserEmail   *string   `json:"user_email,omitempty"`
}

// MonthlyRevenue is one month's bucket, keyed YYYY-MM.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

const (
	lowStockThreshold = 10
	recentOrderLimit  = 5
	revenueMonths     = 6
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Collect gathers every dashboard figure. The independent queries run
// concurrently; any single failure fails the whole rollup.
func (s *StatsService) Collect() (*Stats, error) {
	stats := &Stats{}
	var orders []shop.Order

	var g errgroup.Group

	g.Go(func() error {
		return s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error
	})
	g.Go(func() error {
		return s.db.Model(&shop.Product{}).Count(&stats.TotalProducts).Error
	})
	g.Go(func() error {
		return s.db.Order("created_at DESC").Find(&orders).Error
	})
	g.Go(func() error {
		return s.db.Model(&shop.Product{}).
			Where("stock < ?", lowStockThreshold).
			Order("stock ASC").
			Limit(recentOrderLimit).
			Find(&stats.LowStock).Error
	})
	g.Go(func() error {
		var recent []RecentOrder
		err := s.db.Model(&shop.Order{}).
			Select("orders.id, orders.user_id, orders.total_amount, orders.status, orders.created_at, " +
				"users.name AS user_name, users.email AS user_email").
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Order("orders.created_at DESC").
			Limit(recentOrderLimit).
			Scan(&recent).Error
		if err != nil {
			return err
		}
		stats.RecentOrders = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}

	stats.TotalOrders = int64(len(orders))
	stats.OrdersByStatus = map[string]int64{}
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if o.Status != shop.OrderStatusCancelled {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	stats.MonthlyRevenue = monthlyRevenue(orders, time.Now())

	if stats.RecentOrders == nil {
		stats.RecentOrders = []RecentOrder{}
	}
	if stats.LowStock == nil {
		stats.LowStock = []shop.Product{}
	}
	return stats, nil
}

// monthlyRevenue buckets non-cancelled orders of the last six calendar
// months by YYYY-MM, newest first. Months without orders are omitted.
func monthlyRevenue(orders []shop.Order, now time.Time) []MonthlyRevenue {
	cutoff := now.AddDate(0, -revenueMonths, 0)
	buckets := map[string]float64{}
	for _, o := range orders {
		if o.Status == shop.OrderStatusCancelled || o.CreatedAt.Before(cutoff) {
			continue
		}
		buckets[o.CreatedAt.Format("2006-01")] += o.TotalAmount
	}

	result := make([]MonthlyRevenue, 0, len(buckets))
	for month, revenue := range buckets {
		result = append(result, MonthlyRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month > result[j].Month })
	return result
}
