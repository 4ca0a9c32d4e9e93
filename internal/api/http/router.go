package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/estate-marketplace/internal/auth"
	"github.com/spec-kit/estate-marketplace/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Admin    *handlers.AdminHandler
	Listings *handlers.ListingsHandler
	Gate     *auth.RoleGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/seller/login", cfg.Auth.SellerLogin)
	authGroup.Get("/me", cfg.Gate.Authenticated(), cfg.Auth.Me)

	adminGroup := app.Group("/admin", cfg.Gate.Require(domain.RoleAdmin))
	adminGroup.Get("/accounts", cfg.Admin.ListAccounts)
	adminGroup.Post("/accounts/:id/suspend", cfg.Admin.SuspendAccount)
	adminGroup.Post("/accounts/:id/reinstate", cfg.Admin.ReinstateAccount)

	app.Get("/listings/:id", cfg.Listings.Get)

	sellerGroup := app.Group("/listings", cfg.Gate.Require(domain.RoleSeller))
	sellerGroup.Post("/", cfg.Listings.Create)
	sellerGroup.Get("/", cfg.Listings.ListOwn)
	sellerGroup.Post("/:id/archive", cfg.Listings.Archive)
}
