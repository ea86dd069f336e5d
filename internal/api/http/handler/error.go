package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/dtroode/taskkeeper/internal/api/http/middleware"
	"github.com/dtroode/taskkeeper/internal/api/http/view"
	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

const (
	msgServerError        = "Something went wrong. Please try again later."
	msgUnauthenticated    = "Unauthenticated."
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
	msgInvalidInput       = "Invalid input."
	msgMalformedBody      = "Malformed request body."
)

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Message string            `json:"message"`
	Errors  model.FieldErrors `json:"errors,omitempty"`
}

// handleError maps an error to the JSON API status and body. Missing and
// foreign tasks share one answer so callers cannot probe for ids.
func handleError(err error) (int, errorResponse) {
	var (
		verr     *model.ValidationError
		fiberErr *fiber.Error
	)

	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity, errorResponse{Message: verr.Error(), Errors: verr.Fields}
	case errors.Is(err, errMalformedBody):
		return fiber.StatusBadRequest, errorResponse{Message: msgMalformedBody}
	case errors.Is(err, model.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, errorResponse{Message: msgInvalidCredentials}
	case errors.Is(err, model.ErrUnauthenticated):
		return fiber.StatusUnauthorized, errorResponse{Message: msgUnauthenticated}
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrForbidden):
		return fiber.StatusForbidden, errorResponse{Message: msgUnauthorized}
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		return fiberErr.Code, errorResponse{Message: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, errorResponse{Message: msgServerError}
	}
}

// handlePageError maps an error to the status of a rendered page.
func handlePageError(err error) int {
	var fiberErr *fiber.Error

	switch {
	case errors.Is(err, errMalformedBody):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrForbidden):
		return fiber.StatusForbidden
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors returned by handlers: JSON for API paths and
// an error page for everything else. Unexpected errors are logged in full
// and answered generically.
func ErrorHandler(logger *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if isAPIRequest(c) {
			status, body := handleError(err)
			if status >= fiber.StatusInternalServerError {
				logger.Error("HTTP handler: unexpected error",
					"method", c.Method(),
					"path", c.Path(),
					"error", err.Error())
			}
			return c.Status(status).JSON(body)
		}

		if errors.Is(err, model.ErrUnauthenticated) {
			return c.Redirect(middleware.LoginPath, middleware.RedirectStatus(c))
		}

		status := handlePageError(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("HTTP handler: unexpected page error",
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error())
		}

		message := utils.StatusMessage(status)
		if status >= fiber.StatusInternalServerError {
			message = msgServerError
		}

		c.Status(status)
		if renderErr := c.Render(view.Error, view.ErrorPage{Status: status, Message: message}); renderErr != nil {
			logger.Error("HTTP handler: failed to render error page",
				"error", renderErr.Error())
			return c.SendString(message)
		}
		return nil
	}
}

func isAPIRequest(c *fiber.Ctx) bool {
	path := c.Path()
	return path == "/api" || strings.HasPrefix(path, "/api/") || path == HealthPath
}
