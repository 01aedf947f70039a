package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starbank/internal/config"
	"starbank/internal/database"
	"starbank/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; configuration falls back to real env vars
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("database initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := server.New(cfg, db, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server stopped", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
}
