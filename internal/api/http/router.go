package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brainswarm/booking-api/internal/api/http/handlers"
	"github.com/brainswarm/booking-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Bookings       *handlers.BookingHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	// Gatherer serves /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/signin", cfg.Auth.SignIn)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	bookings := app.Group("/bookings", cfg.AuthMiddleware.Handle)
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Get("/", cfg.Bookings.List)
	bookings.Get("/:id", cfg.Bookings.Get)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdminRole())
	admin.Get("/stats", cfg.Admin.Stats)
}
