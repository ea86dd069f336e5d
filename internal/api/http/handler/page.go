package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/api/http/middleware"
	"github.com/dtroode/taskkeeper/internal/api/http/view"
	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

// DashboardPath is the landing page of a signed-in user.
const DashboardPath = "/dashboard"

const msgCredentialsMismatch = "These credentials do not match our records."

// SessionConfig describes the page-flow session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Page handles the server-rendered pages and their form posts.
type Page struct {
	authService    AuthService
	taskService    TaskService
	contextManager model.ContextManager
	session        SessionConfig
	logger         *logger.Logger
}

// NewPage creates a new Page handler.
func NewPage(
	authService AuthService,
	taskService TaskService,
	contextManager model.ContextManager,
	session SessionConfig,
	logger *logger.Logger,
) *Page {
	return &Page{
		authService:    authService,
		taskService:    taskService,
		contextManager: contextManager,
		session:        session,
		logger:         logger,
	}
}

// Home sends signed-in users to the dashboard and everyone else to the login page.
func (h *Page) Home(c *fiber.Ctx) error {
	signedIn, err := h.signedIn(c)
	if err != nil {
		return err
	}
	if signedIn {
		return c.Redirect(DashboardPath, fiber.StatusFound)
	}
	return c.Redirect(middleware.LoginPath, fiber.StatusFound)
}

func (h *Page) LoginForm(c *fiber.Ctx) error {
	signedIn, err := h.signedIn(c)
	if err != nil {
		return err
	}
	if signedIn {
		return c.Redirect(DashboardPath, fiber.StatusFound)
	}
	return c.Render(view.Login, view.LoginPage{})
}

// Login signs the user in and starts a session. Bad input and bad
// credentials re-render the form with 422.
func (h *Page) Login(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}

	email := strings.TrimSpace(in.str("email"))
	res, err := h.authService.Login(c.UserContext(), model.LoginParams{
		Email:    email,
		Password: in.str("password"),
	}, model.TokenKindSession)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).Render(view.Login, view.LoginPage{Email: email, Errors: verr.Fields})
	case errors.Is(err, model.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnprocessableEntity).Render(view.Login, view.LoginPage{
			Email:  email,
			Errors: model.FieldErrors{"email": {msgCredentialsMismatch}},
		})
	case err != nil:
		return err
	}

	h.startSession(c, res.Token)
	return c.Redirect(DashboardPath, fiber.StatusSeeOther)
}

func (h *Page) RegisterForm(c *fiber.Ctx) error {
	signedIn, err := h.signedIn(c)
	if err != nil {
		return err
	}
	if signedIn {
		return c.Redirect(DashboardPath, fiber.StatusFound)
	}
	return c.Render(view.Register, view.RegisterPage{})
}

// Register creates an account and signs it in.
func (h *Page) Register(c *fiber.Ctx) error {
	in, err := readInput(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(in.str("name"))
	email := strings.TrimSpace(in.str("email"))
	res, err := h.authService.Register(c.UserContext(), model.RegisterParams{
		Name:     name,
		Email:    email,
		Password: in.str("password"),
	}, model.TokenKindSession)

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).Render(view.Register, view.RegisterPage{
			Name:   name,
			Email:  email,
			Errors: verr.Fields,
		})
	}
	if err != nil {
		return err
	}

	h.logger.Info("Page handler: user registered",
		"user_id", res.User.ID)

	h.startSession(c, res.Token)
	return c.Redirect(DashboardPath, fiber.StatusSeeOther)
}

// Logout ends the current session.
func (h *Page) Logout(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), identity.Token); err != nil {
		return err
	}

	middleware.ExpireCookie(c, h.session.CookieName)
	return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
}

// Dashboard lists the user's tasks, newest first.
func (h *Page) Dashboard(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}
	return h.renderDashboard(c, identity, fiber.StatusOK, "", nil)
}

func (h *Page) CreateTask(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}

	_, err = h.taskService.CreateTask(c.UserContext(), identity.User.ID, in.taskFields())
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return h.renderDashboard(c, identity, fiber.StatusUnprocessableEntity, in.str("title"), verr.Fields)
	}
	if err != nil {
		return err
	}

	return h.redirectBack(c)
}

func (h *Page) UpdateTask(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	id, ok := taskID(c)
	if !ok {
		return model.ErrNotFound
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}

	_, err = h.taskService.UpdateTask(c.UserContext(), identity.User.ID, id, in.taskFields())
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return h.renderDashboard(c, identity, fiber.StatusUnprocessableEntity, "", verr.Fields)
	}
	if err != nil {
		return err
	}

	return h.redirectBack(c)
}

func (h *Page) DeleteTask(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	id, ok := taskID(c)
	if !ok {
		return model.ErrNotFound
	}

	if err := h.taskService.DeleteTask(c.UserContext(), identity.User.ID, id); err != nil {
		return err
	}

	return h.redirectBack(c)
}

func (h *Page) renderDashboard(c *fiber.Ctx, identity model.Identity, status int, title string, errs model.FieldErrors) error {
	tasks, err := h.taskService.ListTasks(c.UserContext(), identity.User.ID, model.NewestFirst)
	if err != nil {
		return err
	}

	return c.Status(status).Render(view.Dashboard, view.DashboardPage{
		User:   identity.User,
		Tasks:  tasks,
		Title:  title,
		Errors: errs,
	})
}

// signedIn reports whether the request carries a valid session cookie.
func (h *Page) signedIn(c *fiber.Ctx) (bool, error) {
	token := c.Cookies(h.session.CookieName)
	if token == "" {
		return false, nil
	}

	_, err := h.authService.Authenticate(c.UserContext(), token, model.TokenKindSession)
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		middleware.ExpireCookie(c, h.session.CookieName)
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (h *Page) startSession(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.session.TTL),
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// redirectBack returns the browser to the page the form was posted from.
func (h *Page) redirectBack(c *fiber.Ctx) error {
	return c.RedirectBack(DashboardPath, fiber.StatusSeeOther)
}
