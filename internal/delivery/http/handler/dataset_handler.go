package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/usecase"
)

// DatasetHandler serves the filter options of the loaded dataset.
type DatasetHandler struct {
	datasetUC *usecase.DatasetUseCase
	logger    *zap.Logger
}

func NewDatasetHandler(datasetUC *usecase.DatasetUseCase, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		datasetUC: datasetUC,
		logger:    logger,
	}
}

// GetRegions godoc
// @Summary List regions
// @Description Distinct regions present in the dataset, sorted
// @Tags Dataset
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/dataset/regions [get]
func (h *DatasetHandler) GetRegions(c *fiber.Ctx) error {
	meta, err := h.datasetUC.Meta(c.Context())
	if err != nil {
		h.logger.Error("Failed to load dataset meta", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, meta.Regions, &utils.Meta{Total: len(meta.Regions)})
}

// GetTypes godoc
// @Summary List municipality types
// @Description Distinct municipality types (Urbano, Rural, ...) present in the dataset, sorted
// @Tags Dataset
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/dataset/types [get]
func (h *DatasetHandler) GetTypes(c *fiber.Ctx) error {
	meta, err := h.datasetUC.Meta(c.Context())
	if err != nil {
		h.logger.Error("Failed to load dataset meta", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, meta.MunicipalityTypes, &utils.Meta{Total: len(meta.MunicipalityTypes)})
}
