package routes

import (
	v1 "skill-swap/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Register wires the public surface: /health at the root and the versioned
// API under /api/v1.
func Register(app *fiber.App, deps v1.Deps) {
	if app == nil {
		return
	}

	deps.Health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), deps)
}
