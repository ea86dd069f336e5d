// Package view renders the server-side pages of the task manager.
package view

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by Render.
const (
	Login     = "login"
	Register  = "register"
	Dashboard = "dashboard"
	Error     = "error"
)

// LoginPage is the data of the login form.
type LoginPage struct {
	Email  string
	Errors model.FieldErrors
}

// RegisterPage is the data of the registration form.
type RegisterPage struct {
	Name   string
	Email  string
	Errors model.FieldErrors
}

// DashboardPage lists the user's tasks. Title is the previously submitted
// title when a create failed validation.
type DashboardPage struct {
	User   model.User
	Tasks  []model.Task
	Title  string
	Errors model.FieldErrors
}

// ErrorPage is shown for page requests that fail.
type ErrorPage struct {
	Status  int
	Message string
}

var errNotLoaded = errors.New("templates are not loaded")

// Engine implements fiber.Views over the embedded templates.
type Engine struct {
	templates *template.Template
}

var _ fiber.Views = (*Engine)(nil)

func New() *Engine {
	return &Engine{}
}

// Load parses the embedded templates. fiber calls it when the app is created.
func (e *Engine) Load() error {
	t, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	e.templates = t
	return nil
}

// Render executes the page called name with binding as its data. Layouts are
// defined inside the page templates, so extra layout names are ignored.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	if e.templates == nil {
		return errNotLoaded
	}
	if err := e.templates.ExecuteTemplate(w, name, binding); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
