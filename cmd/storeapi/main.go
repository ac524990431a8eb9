package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/app"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/config"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/logger"
)

func main() {
	cfg, err := config.LoadStoreAPI()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("storeapi", cfg.LogLevel)
	log.Info("starting store API service",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	application, err := app.NewStoreAPI(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("store API service stopped")
}
