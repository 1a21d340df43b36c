package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/config"
	"github.com/coverage-analytics/internal/delivery/http/handler"
	"github.com/coverage-analytics/internal/delivery/http/middleware"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/utils"
)

// Handlers groups every HTTP handler the server routes to.
type Handlers struct {
	Health     *handler.HealthHandler
	Dataset    *handler.DatasetHandler
	Cluster    *handler.ClusterHandler
	Efficiency *handler.EfficiencyHandler
	Temporal   *handler.TemporalHandler
	Stats      *handler.StatsHandler
	Query      *handler.QueryHandler
	Simulation *handler.SimulationHandler
}

// Server - HTTP server built on Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - builds the server and registers middleware and routes
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Coverage Analytics",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	h := s.handlers

	api.Get("/health", h.Health.Health)

	// Dataset
	api.Get("/dataset/regions", h.Dataset.GetRegions)
	api.Get("/dataset/types", h.Dataset.GetTypes)

	// Clusters
	api.Get("/clusters", h.Cluster.GetClusters)
	api.Get("/clusters/geojson", h.Cluster.GetClustersGeoJSON)

	// Efficiency
	api.Get("/efficiency", h.Efficiency.GetEfficiency)
	api.Get("/efficiency/:municipio/similar", h.Efficiency.GetSimilar)

	// Temporal
	api.Post("/temporal/trend", h.Temporal.AnalyzeTrend)
	api.Post("/temporal/forecast", h.Temporal.Forecast)
	api.Post("/temporal/forecast/jobs", h.Temporal.EnqueueForecast)
	api.Get("/temporal/forecast/jobs/:id", h.Temporal.GetForecastJob)

	api.Get("/statistics", h.Stats.GetStatistics)
	api.Get("/statistics/matrix", h.Stats.GetTypologyMatrix)

	// Query
	api.Post("/query", h.Query.Execute)
	api.Get("/query/values/:field", h.Query.GetFieldValues)

	api.Post("/simulation", h.Simulation.Simulate)
}

// App exposes the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - starts listening on the configured address
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escape the handlers (unknown
// routes, body limits) in the same envelope as utils.SendError.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		appErr := errors.ErrInternalServer
		switch {
		case code == fiber.StatusNotFound:
			appErr = errors.NotFound("route %s %s not found", c.Method(), c.Path())
		case code < fiber.StatusInternalServerError:
			appErr = errors.InvalidInput("%s", err.Error())
		}

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}
