package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// Authenticator resolves a presented token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string, kind model.TokenKind) (model.User, error)
}

// Authenticate validates credentials and injects the identity into the request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Bearer authenticates API requests by their Authorization header.
// Failures are answered with 401 JSON.
func (m *Authenticate) Bearer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))

		user, err := m.authenticator.Authenticate(c.UserContext(), token, model.TokenKindAPI)
		if errors.Is(err, model.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthenticated."})
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to resolve bearer token",
				"path", c.Path(),
				"error", err.Error())
			return err
		}

		m.setIdentity(c, user, token)
		return c.Next()
	}
}

// Session authenticates page requests by the session cookie. Failures
// redirect to the login page and drop a stale cookie.
func (m *Authenticate) Session(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)

		user, err := m.authenticator.Authenticate(c.UserContext(), token, model.TokenKindSession)
		if errors.Is(err, model.ErrUnauthenticated) {
			if token != "" {
				ExpireCookie(c, cookieName)
			}
			return c.Redirect(LoginPath, RedirectStatus(c))
		}
		if err != nil {
			m.logger.Error("Authenticate middleware: failed to resolve session",
				"path", c.Path(),
				"error", err.Error())
			return err
		}

		m.setIdentity(c, user, token)
		return c.Next()
	}
}

func (m *Authenticate) setIdentity(c *fiber.Ctx, user model.User, token string) {
	ctx := m.contextManager.SetIdentityToContext(c.UserContext(), model.Identity{User: user, Token: token})
	c.SetUserContext(ctx)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RedirectStatus is 302 for GET and HEAD and 303 otherwise, so browsers
// follow form submissions with a GET.
func RedirectStatus(c *fiber.Ctx) int {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead:
		return fiber.StatusFound
	default:
		return fiber.StatusSeeOther
	}
}

// ExpireCookie tells the browser to drop the site-wide cookie called name.
func ExpireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
