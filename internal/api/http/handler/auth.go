package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

// AuthService defines user registration, login and token operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams, kind model.TokenKind) (model.AuthResult, error)
	Login(ctx context.Context, params model.LoginParams, kind model.TokenKind) (model.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string, kind model.TokenKind) (model.User, error)
}

// Auth handles the JSON authentication endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and answers 201 with the user and an API token.
func (h *Auth) Register(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Register(c.UserContext(), model.RegisterParams{
		Name:     in.str("name"),
		Email:    in.str("email"),
		Password: in.str("password"),
	}, model.TokenKindAPI)
	if err != nil {
		return h.handleError(c, err)
	}

	h.logger.Info("Auth handler: user registered",
		"user_id", res.User.ID)

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		User:  newUserResponse(res.User),
		Token: res.Token,
	})
}

// Login checks credentials and answers with the user and a new API token.
func (h *Auth) Login(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Login(c.UserContext(), model.LoginParams{
		Email:    in.str("email"),
		Password: in.str("password"),
	}, model.TokenKindAPI)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(authResponse{
		User:  newUserResponse(res.User),
		Token: res.Token,
	})
}

// Logout revokes the token that authenticated the request.
func (h *Auth) Logout(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), identity.Token); err != nil {
		return err
	}

	h.logger.Debug("Auth handler: user logged out",
		"user_id", identity.User.ID)

	return c.JSON(messageResponse{Message: "Logged out"})
}

// CurrentUser answers with the authenticated user.
func (h *Auth) CurrentUser(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}
	return c.JSON(newUserResponse(identity.User))
}

// handleError answers validation failures with the generic auth message;
// everything else goes to the app error handler.
func (h *Auth) handleError(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{
			Message: msgInvalidInput,
			Errors:  verr.Fields,
		})
	}
	return err
}

func identityFrom(cm model.ContextManager, c *fiber.Ctx) (model.Identity, error) {
	identity, ok := cm.GetIdentityFromContext(c.UserContext())
	if !ok {
		return model.Identity{}, model.ErrUnauthenticated
	}
	return identity, nil
}
