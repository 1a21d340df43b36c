package main

// @title Coverage Analytics API
// @version 1.0.0
// @description Analytics over municipal vaccination coverage: low-coverage geographic clusters, resource efficiency and peer benchmarks, trend analysis and forecasting, descriptive statistics, custom queries and intervention simulation.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/coverage-analytics/docs"
	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/config"
	httpDelivery "github.com/coverage-analytics/internal/delivery/http"
	"github.com/coverage-analytics/internal/delivery/http/handler"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/logger"
	"github.com/coverage-analytics/internal/repository/cache"
	"github.com/coverage-analytics/internal/repository/file"
	"github.com/coverage-analytics/internal/repository/postgres"
	redisRepo "github.com/coverage-analytics/internal/repository/redis"
	"github.com/coverage-analytics/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Coverage Analytics API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	health := make(map[string]handler.HealthChecker)

	// 3. Dataset repositories
	var (
		municipalityRepo repository.MunicipalityRepository
		seriesRepo       repository.TimeSeriesRepository
	)
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
		health["postgres"] = db

		municipalityRepo = postgres.NewMunicipalityRepository(db)
		seriesRepo = postgres.NewTimeSeriesRepository(db)
	default:
		municipalityRepo, err = file.NewMunicipalityRepository(cfg.Dataset.Path, log)
		if err != nil {
			log.Fatal("Failed to load dataset", zap.String("path", cfg.Dataset.Path), zap.Error(err))
		}
		seriesRepo, err = file.NewTimeSeriesRepository(cfg.Dataset.SeriesPath, log)
		if err != nil {
			log.Fatal("Failed to load coverage history", zap.String("path", cfg.Dataset.SeriesPath), zap.Error(err))
		}
	}

	// 4. Redis: result cache and forecast job queue. Optional.
	var (
		cacheRepo  repository.CacheRepository
		streamRepo repository.StreamRepository
	)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, running without cache and forecast jobs", zap.Error(err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}()
			health["redis"] = redisClient

			cacheRepo = cache.NewCacheRepository(redisClient)
			streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), redisRepo.StreamOptions{}, log)
		}
	}

	log.Info("Repositories initialized")

	// 5. Analytics engine and use cases
	engine := analytics.NewEngine(cfg.Analytics.Params)
	ttl := cfg.Cache.AnalyticsTTL

	datasetUC := usecase.NewDatasetUseCase(municipalityRepo, cacheRepo, cfg.Cache.DatasetTTL, log)
	clusterUC := usecase.NewClusterUseCase(datasetUC, engine.Clusterer, cacheRepo, ttl, log)
	efficiencyUC := usecase.NewEfficiencyUseCase(datasetUC, engine.Scorer, engine.Matcher, cacheRepo, ttl, log)
	temporalUC := usecase.NewTemporalUseCase(seriesRepo, streamRepo, cacheRepo, engine.Temporal, ttl, log)
	statsUC := usecase.NewStatsUseCase(datasetUC, engine.Statistics, cacheRepo, ttl, log)
	queryUC := usecase.NewQueryUseCase(datasetUC, engine.Query, cacheRepo, ttl, log)
	simulationUC := usecase.NewSimulationUseCase(datasetUC, engine.Simulator, log)

	log.Info("Use cases initialized")

	// 6. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Health:     handler.NewHealthHandler(health, log),
		Dataset:    handler.NewDatasetHandler(datasetUC, log),
		Cluster:    handler.NewClusterHandler(clusterUC, log),
		Efficiency: handler.NewEfficiencyHandler(efficiencyUC, log),
		Temporal:   handler.NewTemporalHandler(temporalUC, log),
		Stats:      handler.NewStatsHandler(statsUC, log),
		Query:      handler.NewQueryHandler(queryUC, log),
		Simulation: handler.NewSimulationHandler(simulationUC, log),
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
