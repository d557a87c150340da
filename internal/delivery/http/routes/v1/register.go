package v1

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Match   *handler.MatchHandler
	Pairing *handler.PairingHandler
	Session *handler.SessionHandler
	WS      *ws.Handler

	AuthMw *middleware.AuthMiddleware
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	deps.Auth.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", deps.AuthMw.Middleware())
	deps.User.RegisterRoutes(protected.Group("/users"))
	deps.Match.RegisterRoutes(protected)
	deps.Pairing.RegisterRoutes(protected)
	deps.Session.RegisterRoutes(protected)

	// The websocket route authenticates inside the handler; browser clients
	// cannot set an Authorization header on the upgrade request.
	if deps.WS != nil {
		r.Get("/ws/events", deps.WS.HandleEventsWS)
	}
}
