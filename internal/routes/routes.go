package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/handlers"
	"github.com/sporthub-id/sporthub-backend/internal/middleware"
	"github.com/sporthub-id/sporthub-backend/internal/modules"
	"github.com/sporthub-id/sporthub-backend/internal/services"
)

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, mods []modules.Module) {
	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg))
	userHandler := handlers.NewUserHandler(services.NewUserService(db))
	healthHandler := handlers.NewHealthHandler(db)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Health)

	// Public auth endpoints get a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes hang off /api directly so the JWT middleware
	// never shadows the public ones above.
	protected := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", protected, authHandler.Logout)
	api.Get("/auth/profile", protected, authHandler.Profile)
	api.Put("/auth/profile", protected, authHandler.UpdateProfile)
	api.Put("/auth/password", protected, authHandler.ChangePassword)
	api.Delete("/auth/account", protected, authHandler.DeleteAccount)

	// User management (admin only)
	admin := middleware.AdminRequired(db, cfg)
	users := api.Group("/users", protected, admin)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:userId", userHandler.GetUser)
	users.Patch("/:userId/role", userHandler.UpdateUserRole)
	users.Delete("/:userId", userHandler.DeleteUser)

	// Domain modules register their own routes (and apply their own
	// JWT/admin middleware per route).
	for _, m := range mods {
		m.RegisterRoutes(api)
	}
}
