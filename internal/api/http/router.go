package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	AdminGate      *auth.AdminGate
	Metrics        *observability.Metrics
}

// NewApp builds the fiber app. Routing is case sensitive so a path only reaches the
// handler registered under exactly that spelling.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{AppName: name, CaseSensitive: true})
}

// RegisterRoutes wires HTTP routes. Both gates are installed ahead of every route;
// the route table decides which of them actually inspects a request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)
	app.Use(cfg.AdminGate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/signin", cfg.Auth.Signin)

	users := app.Group("/users")
	users.Get("/:userId", cfg.Users.Get)
	users.Put("", cfg.Users.ChangePassword)

	admin := app.Group("/admin")
	admin.Patch("/users/:userId", cfg.Admin.ChangeUserRole)
	admin.Delete("/comments/:commentId", cfg.Admin.DeleteComment)
	admin.Get("/audit", cfg.Admin.AuditTrail)
}
