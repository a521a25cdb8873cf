package modules

import (
	"github.com/gofiber/fiber/v2"
)

// Module defines the interface every domain module implements.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given Fiber group.
	// The group is already prefixed with /api; the module applies its own
	// auth and admin middleware per route.
	RegisterRoutes(router fiber.Router)
}
