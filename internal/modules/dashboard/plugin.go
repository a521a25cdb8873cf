package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/middleware"
	"gorm.io/gorm"
)

// DashboardModule exposes the admin rollup. It owns no tables of its own;
// every figure is read from the other modules' models.
type DashboardModule struct {
	db  *gorm.DB
	cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *DashboardModule {
	return &DashboardModule{db: db, cfg: cfg}
}

func (m *DashboardModule) ID() string {
	return "dashboard"
}

func (m *DashboardModule) Models() []interface{} {
	return nil
}

func (m *DashboardModule) RegisterRoutes(router fiber.Router) {
	handler := NewStatsHandler(NewStatsService(m.db))

	protected := middleware.JWTProtected(m.cfg)
	admin := middleware.AdminRequired(m.db, m.cfg)

	router.Get("/dashboard/stats", protected, admin, handler.GetStats)
}
