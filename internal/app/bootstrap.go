package app

import (
	"fmt"
	"strings"

	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/delivery/http/routes"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/pkg/validator"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:         c.Config.App.AppName,
		StructValidator: validator.New(),
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Hub: c.Hub}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	userRepo := repository.NewPostgresUserRepository(c.DB)
	pairingRepo := repository.NewPostgresPairingRepository(c.DB)
	sessionRepo := repository.NewPostgresSessionRepository(c.DB)

	authUC := usecase.NewAuthUsecase(userRepo, c.JWT)
	userUC := usecase.NewUserUsecase(userRepo, c.Cache)
	matchUC := usecase.NewMatchingUsecase(userRepo, c.Cache)
	pairingUC := usecase.NewPairingUsecase(pairingRepo, userRepo, c.Hub)
	sessionUC := usecase.NewSessionUsecase(sessionRepo, pairingRepo, userRepo, c.Hub)

	routes.Register(app, v1.Deps{
		Health:  handler.NewHealthHandler(),
		Auth:    handler.NewAuthHandler(authUC),
		User:    handler.NewUserHandler(userUC),
		Match:   handler.NewMatchHandler(matchUC),
		Pairing: handler.NewPairingHandler(pairingUC),
		Session: handler.NewSessionHandler(sessionUC),
		WS:      ws.NewHandler(c.Hub, c.JWT, c.Logger),
		AuthMw:  middleware.NewAuthMiddleware(c.JWT),
	})
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
