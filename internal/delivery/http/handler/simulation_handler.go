package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/usecase/dto"
)

type SimulationHandler struct {
	simulationUC *usecase.SimulationUseCase
	logger       *zap.Logger
}

func NewSimulationHandler(simulationUC *usecase.SimulationUseCase, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{
		simulationUC: simulationUC,
		logger:       logger,
	}
}

// Simulate godoc
// @Summary Intervention simulation
// @Description Month-by-month coverage projection for a municipality with and without the selected interventions
// @Tags Simulation
// @Accept json
// @Produce json
// @Param request body dto.SimulationRequest true "Municipio, vaccine and interventions"
// @Success 200 {object} utils.SuccessResponse{data=domain.SimulationResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/simulation [post]
func (h *SimulationHandler) Simulate(c *fiber.Ctx) error {
	var req dto.SimulationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.simulationUC.Run(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
