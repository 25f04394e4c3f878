// Package main is the entry point for the taskflow server.
//
// main stays minimal: load the environment, build a logger, hand everything
// to internal/server. All actual logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sakif/taskflow/internal/config"
	"github.com/sakif/taskflow/internal/server"
)

func main() {
	// A missing .env is fine — production sets real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	// The SQLite file lives in a subdirectory by default; create it up front
	// so the driver doesn't fail on first open.
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		DBPath:             cfg.DBPath,
		JWTSecret:          cfg.JWTSecret,
		GitHubClientID:     cfg.GitHubClientID,
		GitHubClientSecret: cfg.GitHubClientSecret,
		GitHubCallbackURL:  cfg.GitHubCallbackURL,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
