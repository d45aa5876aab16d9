package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	internalworker "github.com/healthdesk/clinic-api/internal/worker"

	"github.com/healthdesk/clinic-api/internal/repository/postgres"
	"github.com/healthdesk/clinic-api/pkg/logger"
	redisbroker "github.com/healthdesk/clinic-api/pkg/messaging/redis"
	"github.com/healthdesk/clinic-api/pkg/metrics"
	"github.com/healthdesk/clinic-api/pkg/worker"
)

// workerConfig comes entirely from the environment; the worker ships as
// a standalone container without a config file.
type workerConfig struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL        string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	BatchSize       int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval    time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts   int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay      time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1s"`
	RetentionDays   int           `envconfig:"OUTBOX_RETENTION_DAYS" default:"7"`
	CleanupInterval time.Duration `envconfig:"OUTBOX_CLEANUP_INTERVAL" default:"6h"`
	HealthPort      int           `envconfig:"HEALTH_PORT" default:"8081"`
}

func setupHealthCheck(port int, logger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			logger.ZL.Error().Err(err).Msg("Health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger := &logger.Logger{ZL: log.Logger}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.ZL.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:        cfg.RedisURL,
		MaxRetries: cfg.RetryAttempts,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis broker")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.BatchSize,
			PollInterval:  cfg.PollInterval,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
		},
		logger,
		metrics.NewMetrics("clinic", "worker"),
	)

	cleanup := internalworker.NewOutboxCleanupWorker(outboxRepo, cfg.RetentionDays, cfg.CleanupInterval, logger)

	setupHealthCheck(cfg.HealthPort, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.ZL.Info().Msg("Shutting down...")
		cancel()
	}()

	go cleanup.Start(ctx)
	processor.Start(ctx)
}
