package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/config"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/logger"
	"github.com/coverage-analytics/internal/repository/cache"
	"github.com/coverage-analytics/internal/repository/file"
	"github.com/coverage-analytics/internal/repository/postgres"
	redisRepo "github.com/coverage-analytics/internal/repository/redis"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/worker"
	"github.com/coverage-analytics/internal/worker/forecast"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.NewNamed("coverage-analytics-worker", cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting forecast worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("read_timeout", cfg.Worker.StreamReadTimeout),
	)

	// 3. Coverage history
	var seriesRepo repository.TimeSeriesRepository
	switch cfg.Dataset.Source {
	case config.DatasetSourcePostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		seriesRepo = postgres.NewTimeSeriesRepository(db)
	default:
		seriesRepo, err = file.NewTimeSeriesRepository(cfg.Dataset.SeriesPath, log)
		if err != nil {
			log.Fatal("Failed to load coverage history", zap.String("path", cfg.Dataset.SeriesPath), zap.Error(err))
		}
	}

	// 4. Redis: a blocking client for the stream, a regular one for job results
	streamClient, err := cache.NewRedisStreams(&cfg.Redis, cfg.Worker.StreamReadTimeout, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer func() {
		if err := streamClient.Close(); err != nil {
			log.Error("Failed to close Redis Streams connection", zap.Error(err))
		}
	}()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamRepo := redisRepo.NewStreamRepository(streamClient, redisRepo.StreamOptions{
		BatchSize: cfg.Worker.BatchSize,
		Block:     cfg.Worker.StreamReadTimeout,
	}, log)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 5. Use case and worker
	engine := analytics.NewEngine(cfg.Analytics.Params)
	temporalUC := usecase.NewTemporalUseCase(seriesRepo, nil, cacheRepo, engine.Temporal, cfg.Cache.AnalyticsTTL, log)

	forecastWorker := forecast.NewWorker(
		streamRepo,
		temporalUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.ConsumerName,
		cfg.Worker.MaxRetries,
		log,
	)

	manager := worker.NewManager(worker.DefaultShutdownTimeout, log)
	manager.Register(forecastWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop first so an in-flight job can finish before ctx is cancelled.
	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
