package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"conciliador/internal/amqp"
	"conciliador/internal/config"
	"conciliador/internal/dialect"
	"conciliador/internal/log"
	"conciliador/internal/services"
	"conciliador/internal/statement"
	"conciliador/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting conciliador-worker")

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Initialize the movement store
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Initialize AMQP client for consuming ingest requests
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	svc := services.NewIngestService(repo,
		statement.DefaultRegistry(),
		dialect.DefaultRegistry(),
		cfg.Currency, cfg.Account, logger)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	handler := func(msg *amqp.IngestRequestMessage) error {
		summary, err := svc.IngestFile(ctx, msg.Path, msg.Bank)
		if err != nil {
			return err
		}

		result := &amqp.IngestResultMessage{
			RunID:    summary.RunID,
			File:     summary.File,
			Bank:     summary.Bank,
			Rows:     summary.Rows,
			Inserted: summary.Inserted,
			Skipped:  summary.Skipped,
			Dropped:  summary.Dropped,
		}
		if err := amqpClient.PublishIngestResult(ctx, result); err != nil {
			// The movements are stored; a lost result event is not worth a requeue.
			logger.Error("Failed to publish ingest result", "error", err, "run_id", summary.RunID)
		}
		return nil
	}

	if err := amqpClient.ConsumeIngestRequests(ctx, handler); err != nil && err != context.Canceled {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
