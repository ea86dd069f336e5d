package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/dtroode/taskkeeper/internal/api/http/handler"
	"github.com/dtroode/taskkeeper/internal/api/http/middleware"
	"github.com/dtroode/taskkeeper/internal/api/http/view"
	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

// Config holds the HTTP surface settings the router needs.
type Config struct {
	CORSOrigins string
	Session     handler.SessionConfig
}

// Router builds the fiber app serving the JSON API and the pages.
type Router struct {
	authService    handler.AuthService
	taskService    handler.TaskService
	pinger         handler.Pinger
	contextManager model.ContextManager
	config         Config
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	taskService handler.TaskService,
	pinger handler.Pinger,
	contextManager model.ContextManager,
	config Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		taskService:    taskService,
		pinger:         pinger,
		contextManager: contextManager,
		config:         config,
		logger:         logger,
	}
}

// Register creates the app with its middleware chain and routes.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "taskkeeper",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler(r.logger),
		Views:                 view.New(),
	})

	// Method override must stay the first handler.
	app.Use(middleware.MethodOverride())
	app.Use(requestid.New())
	app.Use(middleware.NewLogging(r.logger).Handle)
	app.Use(recover.New())

	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	app.Get(handler.HealthPath, handler.NewHealth(r.pinger, r.logger).Check)
	r.registerAPIRoutes(app, authenticate)
	r.registerPageRoutes(app, authenticate)

	return app
}

func (r *Router) registerAPIRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)

	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: r.config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	bearer := authenticate.Bearer()
	api.Post("/logout", bearer, authHandler.Logout)
	api.Get("/user", bearer, authHandler.CurrentUser)

	tasks := api.Group("/tasks", bearer)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}

func (r *Router) registerPageRoutes(app *fiber.App, authenticate *middleware.Authenticate) {
	pageHandler := handler.NewPage(r.authService, r.taskService, r.contextManager, r.config.Session, r.logger)

	app.Get("/", pageHandler.Home)
	app.Get(middleware.LoginPath, pageHandler.LoginForm)
	app.Post(middleware.LoginPath, pageHandler.Login)
	app.Get("/register", pageHandler.RegisterForm)
	app.Post("/register", pageHandler.Register)

	session := authenticate.Session(r.config.Session.CookieName)
	app.Post("/logout", session, pageHandler.Logout)
	app.Get(handler.DashboardPath, session, pageHandler.Dashboard)
	app.Post("/tasks", session, pageHandler.CreateTask)
	app.Put("/tasks/:id", session, pageHandler.UpdateTask)
	app.Patch("/tasks/:id", session, pageHandler.UpdateTask)
	app.Delete("/tasks/:id", session, pageHandler.DeleteTask)
}
