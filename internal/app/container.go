package app

import (
	"context"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/ws"

	"go.uber.org/zap"
)

// Container holds the process-wide dependencies in construction order:
// everything the HTTP layer needs, built once at startup.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Hub: ws.NewHub(logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
