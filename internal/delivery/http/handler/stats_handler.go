package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/pkg/validator"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/usecase/dto"
)

// StatsHandler serves descriptive coverage statistics.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Coverage statistics
// @Description Mean, median, std and 95% CI overall and per type and region, correlations with UBS density and population, IQR outliers
// @Tags Statistics
// @Produce json
// @Param vaccine query string true "Vaccine"
// @Success 200 {object} utils.SuccessResponse{data=domain.CoverageStatistics}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/statistics [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	vaccine, err := vaccineParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Debug("Handling get statistics request", zap.String("vaccine", vaccine.String()))

	stats, err := h.statsUC.GetStatistics(c.Context(), vaccine)
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}

// GetTypologyMatrix godoc
// @Summary Typology coverage matrix
// @Description Mean coverage per category and vaccine, grouped by municipality type or region, with per-category totals and correlations of coverage, population and UBS density
// @Tags Statistics
// @Produce json
// @Param vaccine query string false "Vaccine or all" default(bcg)
// @Param view query string false "typology or region" default(typology)
// @Success 200 {object} utils.SuccessResponse{data=domain.TypologyMatrix}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/statistics/matrix [get]
func (h *StatsHandler) GetTypologyMatrix(c *fiber.Ctx) error {
	req := dto.MatrixRequest{
		Vaccine: c.Query("vaccine", string(domain.VaccineBCG)),
		View:    strings.ToLower(c.Query("view", string(domain.MatrixViewTypology))),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	vaccine, err := domain.ParseVaccineSelector(req.Vaccine)
	if err != nil {
		return utils.SendError(c, errors.InvalidInput("%s", err.Error()))
	}
	view, err := domain.ParseMatrixView(req.View)
	if err != nil {
		return utils.SendError(c, errors.InvalidInput("%s", err.Error()))
	}

	matrix, err := h.statsUC.GetTypologyMatrix(c.Context(), vaccine, view)
	if err != nil {
		h.logger.Error("Failed to build typology matrix", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, matrix, &utils.Meta{Total: len(matrix.Cells)})
}
