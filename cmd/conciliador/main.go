package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"conciliador/internal/commands"
	"conciliador/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Log to stderr so command output on stdout stays machine-readable.
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	})
	log.SetDefault(logger)

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
