package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/usecase/dto"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker is a backing service the API depends on.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports the status of the API and its backing services.
type HealthHandler struct {
	checks map[string]HealthChecker
	logger *zap.Logger
}

func NewHealthHandler(checks map[string]HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Description Reports "healthy" when every configured backing service answers, "degraded" otherwise
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string, len(h.checks)),
	}
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("service", name), zap.Error(err))
			resp.Services[name] = "unavailable"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "ok"
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
