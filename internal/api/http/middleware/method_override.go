package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverrideField is the form field HTML forms use to tunnel PUT, PATCH and DELETE.
const MethodOverrideField = "_method"

// MethodOverride rewrites POST requests carrying a _method form field.
// It must be the first handler registered on the app so that the route
// index it resumes from exists in every method's stack.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		switch method := strings.ToUpper(strings.TrimSpace(c.FormValue(MethodOverrideField))); method {
		case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			c.Method(method)
		}

		return c.Next()
	}
}
