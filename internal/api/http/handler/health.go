package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/logger"
)

// HealthPath is the liveness endpoint.
const HealthPath = "/health"

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

// Check answers {"ok": true} when the database answers a ping and 503 otherwise.
func (h *Health) Check(c *fiber.Ctx) error {
	if err := h.pinger.Ping(c.UserContext()); err != nil {
		h.logger.Error("Health handler: database ping failed",
			"error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}
