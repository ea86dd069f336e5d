package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/logger"
)

// Logging logs every HTTP request with its outcome.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status, duration and request id. Errors from
// the rest of the chain are rendered by the app error handler first so the
// logged status is the one the client receives.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	attrs := []any{
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	}

	switch {
	case status >= fiber.StatusInternalServerError:
		l.logger.Error("HTTP request failed", attrs...)
	default:
		l.logger.Info("HTTP request completed", attrs...)
	}

	return nil
}
