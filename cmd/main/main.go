package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hashimkp/pricewatch/internal/adapter"
	"github.com/hashimkp/pricewatch/internal/bot"
	"github.com/hashimkp/pricewatch/internal/config"
	"github.com/hashimkp/pricewatch/internal/metrics"
	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/notifier"
	"github.com/hashimkp/pricewatch/internal/repository/sqlite"
	"github.com/hashimkp/pricewatch/internal/services/tracker"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init repository: %v", err)
	}
	defer repo.Close()

	registry := adapter.NewRegistry(map[models.Retailer]adapter.Adapter{
		models.RetailerAmazon:   adapter.NewAmazon(logger),
		models.RetailerFlipkart: adapter.NewFlipkart(logger),
	})

	// The telegram sink resolves its sender lazily: the bot is constructed
	// after the tracker, once the status surface it serves exists.
	var watchBot *bot.Bot
	sinks := []notifier.Sink{
		notifier.NewTelegram(logger, func() notifier.Sender { return watchBot.Sender() }, repo),
	}
	if cfg.SMTP.Host != "" {
		sinks = append(sinks, notifier.NewEmail(
			logger, cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.To))
	}

	priceTracker := tracker.New(logger, repo, registry, notifier.NewFanout(sinks...), tracker.Options{
		IntervalMin:     cfg.Tracker.IntervalMin,
		IntervalMax:     cfg.Tracker.IntervalMax,
		MaxAttempts:     cfg.Tracker.MaxAttempts,
		BackoffBase:     cfg.Tracker.Backoff,
		ProductDelayMin: cfg.Tracker.ProductDelayMin,
		ProductDelayMax: cfg.Tracker.ProductDelayMax,
		ReentryMode:     tracker.ReentryMode(cfg.Tracker.ReentryMode),
	})

	watchBot, err = bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, cfg.Tg.AdminID, repo, priceTracker)
	if err != nil {
		log.Fatalf("Failed to init bot: %v", err)
	}

	if cfg.MetricsAddr != "" {
		go metrics.Serve(ctx, logger, cfg.MetricsAddr)
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the bot and the tracker loop in goroutines to allow main to
	// listen for signals.
	go watchBot.Start()

	trackerDone := make(chan error, 1)
	go func() {
		trackerDone <- priceTracker.Run(ctx)
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C) or for the
	// tracker to fail fatally.
	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	case err = <-trackerDone:
		if err != nil {
			logger.ErrorContext(ctx, "Tracker stopped with fatal error", "error", err)
		}
	}

	// Stop the tracker and the bot gracefully.
	priceTracker.Stop()
	watchBot.Stop()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
