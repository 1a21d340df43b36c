package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/pkg/validator"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/usecase/dto"
)

// EfficiencyHandler exposes efficiency scores and peer benchmarks.
type EfficiencyHandler struct {
	efficiencyUC *usecase.EfficiencyUseCase
	logger       *zap.Logger
}

func NewEfficiencyHandler(efficiencyUC *usecase.EfficiencyUseCase, logger *zap.Logger) *EfficiencyHandler {
	return &EfficiencyHandler{
		efficiencyUC: efficiencyUC,
		logger:       logger,
	}
}

// GetEfficiency godoc
// @Summary Efficiency ranking
// @Description Coverage relative to healthcare resources per municipality, sorted by score descending. Region and type filters match exactly.
// @Tags Efficiency
// @Produce json
// @Param region query string false "Region (Norte, Nordeste, ...)"
// @Param type query string false "Municipality type (Urbano, Rural, ...)"
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {object} utils.SuccessResponse{data=dto.EfficiencyListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/efficiency [get]
func (h *EfficiencyHandler) GetEfficiency(c *fiber.Ctx) error {
	var req dto.EfficiencyRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.InvalidInput("invalid query parameters"))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.efficiencyUC.List(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to list efficiency scores", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// GetSimilar godoc
// @Summary Similar municipalities
// @Description Peers of the same type and comparable size, with their coverage gap and what makes them perform better
// @Tags Efficiency
// @Produce json
// @Param municipio path string true "Municipality name (case-insensitive)"
// @Success 200 {object} utils.SuccessResponse{data=domain.Benchmark}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/efficiency/{municipio}/similar [get]
func (h *EfficiencyHandler) GetSimilar(c *fiber.Ctx) error {
	municipio, err := pathParam(c, "municipio")
	if err != nil {
		return utils.SendError(c, err)
	}

	benchmark, err := h.efficiencyUC.Benchmark(c.Context(), municipio)
	if err != nil {
		if !errors.HasCode(err, errors.CodeNotFound) {
			h.logger.Error("Failed to benchmark municipality", zap.String("municipio", municipio), zap.Error(err))
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, benchmark, &utils.Meta{Total: len(benchmark.Similar)})
}
