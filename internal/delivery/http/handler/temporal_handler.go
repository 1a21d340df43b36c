package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/usecase/dto"
)

// TemporalHandler exposes trend analysis and forecasting of coverage series.
type TemporalHandler struct {
	temporalUC *usecase.TemporalUseCase
	logger     *zap.Logger
}

func NewTemporalHandler(temporalUC *usecase.TemporalUseCase, logger *zap.Logger) *TemporalHandler {
	return &TemporalHandler{
		temporalUC: temporalUC,
		logger:     logger,
	}
}

// AnalyzeTrend godoc
// @Summary Trend analysis
// @Description Linear trend, seasonality and moving average of a coverage series. Send the series inline or a municipio and vaccine to load its stored history.
// @Tags Temporal
// @Accept json
// @Produce json
// @Param request body dto.TemporalRequest true "Series or municipio+vaccine"
// @Success 200 {object} utils.SuccessResponse{data=domain.TrendAnalysis}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/temporal/trend [post]
func (h *TemporalHandler) AnalyzeTrend(c *fiber.Ctx) error {
	var req dto.TemporalRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.temporalUC.Trend(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Forecast godoc
// @Summary Coverage forecast
// @Description Linear-trend forecast with a confidence band; the lower bound is floored at 0
// @Tags Temporal
// @Accept json
// @Produce json
// @Param request body dto.TemporalRequest true "Series or municipio+vaccine"
// @Success 200 {object} utils.SuccessResponse{data=domain.Forecast}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/temporal/forecast [post]
func (h *TemporalHandler) Forecast(c *fiber.Ctx) error {
	var req dto.TemporalRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.temporalUC.Forecast(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// EnqueueForecast godoc
// @Summary Enqueue a forecast job
// @Description Publishes a forecast job for the stored series of a municipality. Poll the job endpoint for the result.
// @Tags Temporal
// @Accept json
// @Produce json
// @Param request body dto.ForecastJobRequest true "Municipio and vaccine"
// @Success 202 {object} utils.SuccessResponse{data=dto.ForecastJobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/temporal/forecast/jobs [post]
func (h *TemporalHandler) EnqueueForecast(c *fiber.Ctx) error {
	var req dto.ForecastJobRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	job, err := h.temporalUC.EnqueueForecast(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to enqueue forecast job", zap.String("municipio", req.Municipio), zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendAccepted(c, job)
}

// GetForecastJob godoc
// @Summary Forecast job status
// @Description pending until a worker has processed the job, then done or failed with the result attached
// @Tags Temporal
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ForecastJobStatusResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/temporal/forecast/jobs/{id} [get]
func (h *TemporalHandler) GetForecastJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.InvalidInput("invalid job id %q", c.Params("id")))
	}

	status, err := h.temporalUC.ForecastJob(c.Context(), jobID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}
