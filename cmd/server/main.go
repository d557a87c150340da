package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-swap/internal/app"
	"skill-swap/internal/config"
	"skill-swap/internal/database/migration"
	"skill-swap/internal/pkg/logger"
	"skill-swap/migrations"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	container, err := app.NewContainer(cfg, zl)
	if err != nil {
		zl.Fatal("failed to build container", zap.Error(err))
	}
	defer func() {
		if err := container.Close(); err != nil {
			zl.Warn("cleanup error", zap.Error(err))
		}
	}()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migration.Run(migrateCtx, container.DB.SQLDB(), migrations.FS); err != nil {
		cancelMigrate()
		zl.Fatal("failed to run migrations", zap.Error(err))
	}
	cancelMigrate()

	application := app.New(container)
	go application.Hub.Run()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		zl.Fatal("invalid HTTP port", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Fiber.Listen(addr)
	}()
	zl.Info("server started", zap.String("addr", addr), zap.String("env", cfg.App.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	case sig := <-sigCh:
		zl.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := application.Fiber.ShutdownWithContext(ctx); err != nil {
			zl.Warn("shutdown error", zap.Error(err))
		}
	}
}
