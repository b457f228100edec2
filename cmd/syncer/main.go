package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"video_syncer/internal/config"
	"video_syncer/internal/publisher"
	"video_syncer/internal/retry"
	"video_syncer/internal/runner"
	"video_syncer/internal/service"
	"video_syncer/internal/source/youtube"
	"video_syncer/internal/storage"
	"video_syncer/internal/storage/firestore"
	"video_syncer/internal/storage/memory"
	"video_syncer/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	jobName := flag.String("job", jobAll, "job to run: all, or the name of an ingest or pointer job")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, *jobName, logger); err != nil {
		logger.Error("syncer finished with errors", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, jobName string, logger *slog.Logger) error {
	docs, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metadata, err := youtube.NewMetadataClient(ctx, cfg.Secrets.YouTubeAPIKey, youtube.MetadataConfig{
		Endpoint:        cfg.Metadata.Endpoint,
		Timeout:         cfg.Metadata.Timeout,
		LiveChunkSize:   cfg.Metadata.LiveChunkSize,
		DetailChunkSize: cfg.Metadata.DetailChunkSize,
		Retry:           retryConfig(cfg.Metadata.Retry),
	}, logger)
	if err != nil {
		return fmt.Errorf("create metadata client: %w", err)
	}

	feed := youtube.NewFeedSource(youtube.FeedConfig{
		BaseURL: cfg.Feed.BaseURL,
		Timeout: cfg.Feed.Timeout,
		Retry:   retryConfig(cfg.Feed.Retry),
	}, logger)

	// A nil interface, not a nil *RabbitMQ, disables publishing.
	var events service.Publisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	jobs, err := buildJobs(cfg, jobName, dependencies{
		docs:      docs,
		feed:      feed,
		metadata:  metadata,
		publisher: events,
		logger:    logger,
		out:       os.Stdout,
	})
	if err != nil {
		return err
	}

	logger.Info("starting video syncer",
		"job", jobName,
		"jobs", len(jobs),
		"store", cfg.Store.Backend,
		"events", cfg.RabbitMQ.Enabled(),
	)

	return runner.New(jobs, cfg.JobTimeout, logger).Run(ctx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.DocumentStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := sqlx.Connect("postgres", cfg.Store.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		logger.Info("connected to database", "host", cfg.Store.Postgres.Host, "dbname", cfg.Store.Postgres.DBName)
		return postgres.NewStore(db), func() { db.Close() }, nil

	case config.BackendMemory:
		logger.Warn("using in-memory store, nothing will be persisted")
		return memory.New(), func() {}, nil

	default:
		store, err := firestore.Open(ctx, []byte(cfg.Secrets.FirebaseServiceAccount))
		if err != nil {
			return nil, nil, fmt.Errorf("open firestore: %w", err)
		}
		logger.Info("connected to firestore")
		return store, func() { store.Close() }, nil
	}
}

func retryConfig(rc config.RetryConfig) retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = rc.MaxAttempts
	cfg.InitialBackoff = rc.InitialBackoff
	cfg.MaxBackoff = rc.MaxBackoff
	return cfg
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
