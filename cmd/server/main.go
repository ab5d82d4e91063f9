// Package main is the entry point for the devconnector API server.
//
// main stays minimal: read configuration, create the logger, ensure the
// data directory exists, and hand off to internal/server. All actual logic
// lives in the internal packages so it stays testable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/devconnector/internal/config"
	"github.com/sakif/devconnector/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger doesn't exist yet; plain stderr is all we have.
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	// Ensure the directory for the SQLite file exists (like `mkdir -p`).
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
