package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.Middleware
	Authorizer     *auth.Authorizer
}

// RegisterRoutes wires HTTP routes. Everything under /api passes through the
// authentication and authorization stages; the user CRUD lives under
// /api/admin/ so the /admin/ path segment gates it to admins.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, cfg.Authorizer.Middleware())

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/password/change", cfg.Auth.ChangePassword)
	api.Get("/me", cfg.Auth.Me)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Products.Create)
	products.Put("/:id", auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Products.Update)
	products.Delete("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Products.Delete)

	adminUsers := api.Group("/admin/users")
	adminUsers.Get("/", cfg.Users.List)
	adminUsers.Get("/:id", cfg.Users.Get)
	adminUsers.Put("/:id", cfg.Users.Update)
	adminUsers.Delete("/:id", cfg.Users.Deactivate)
}
