package ws

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"skill-swap/internal/pkg/jwt"
)

type Handler struct {
	hub    *Hub
	tokens jwt.Service
	logger *zap.Logger
}

func NewHandler(hub *Hub, tokens jwt.Service, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, tokens: tokens, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleEventsWS upgrades GET /ws/events. The access token travels either in
// the Authorization header or, for browser clients, a ?token= query param.
func (h *Handler) HandleEventsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	userID, err := h.authenticate(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Warn("ws upgrade failed", zap.Error(err))
			}
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func (h *Handler) authenticate(c fiber.Ctx) (uuid.UUID, error) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		auth := c.Get(fiber.HeaderAuthorization)
		token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if token == "" {
		return uuid.Nil, jwt.ErrTokenInvalid
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || claims.UserID == uuid.Nil {
		return uuid.Nil, jwt.ErrTokenInvalid
	}
	return claims.UserID, nil
}
