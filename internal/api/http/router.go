package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-hub/internal/api/http/handlers"
	"github.com/spec-kit/music-hub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Media          *handlers.MediaHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	app.Get("/files/:identifier", cfg.Media.Stream)

	app.Post("/upload", cfg.AuthMiddleware.Handle, cfg.Media.Upload)

	app.Get("/songs", cfg.AuthMiddleware.Handle, cfg.Media.List)
	app.Post("/songs/:id/like", cfg.AuthMiddleware.Handle, cfg.Media.Like)

	// Comment auth is decided by configuration, so the token is only
	// validated here when supplied; the service enforces the flag.
	app.Post("/songs/:id/comments", cfg.AuthMiddleware.HandleOptional, cfg.Media.AddComment)
	app.Get("/songs/:id/comments", cfg.Media.ListComments)
}
