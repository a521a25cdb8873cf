package dashboard

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService *StatsService
}

func NewStatsHandler(statsService *StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.statsService.Collect()
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to collect dashboard stats",
		})
	}
	return c.JSON(fiber.Map{"stats": stats})
}
