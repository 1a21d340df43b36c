package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/usecase"
)

// ClusterHandler exposes the low-coverage geographic clustering.
type ClusterHandler struct {
	clusterUC *usecase.ClusterUseCase
	logger    *zap.Logger
}

func NewClusterHandler(clusterUC *usecase.ClusterUseCase, logger *zap.Logger) *ClusterHandler {
	return &ClusterHandler{
		clusterUC: clusterUC,
		logger:    logger,
	}
}

// GetClusters godoc
// @Summary Low-coverage clusters
// @Description Runs DBSCAN over municipalities below the coverage threshold and returns the clusters ordered by average coverage
// @Tags Clusters
// @Produce json
// @Param vaccine query string true "Vaccine (bcg, dtp, penta, polio, rotavirus, triplice_viral_1, triplice_viral_2, varicela)"
// @Success 200 {object} utils.SuccessResponse{data=domain.ClusterResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/clusters [get]
func (h *ClusterHandler) GetClusters(c *fiber.Ctx) error {
	vaccine, err := vaccineParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.clusterUC.LowCoverageClusters(c.Context(), vaccine)
	if err != nil {
		h.logger.Error("Failed to compute clusters", zap.String("vaccine", vaccine.String()), zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Clusters)})
}

// GetClustersGeoJSON godoc
// @Summary Low-coverage clusters as GeoJSON
// @Description Low-coverage municipalities as GeoJSON points carrying their cluster id (-1 for noise)
// @Tags Clusters
// @Produce json
// @Param vaccine query string true "Vaccine"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/clusters/geojson [get]
func (h *ClusterHandler) GetClustersGeoJSON(c *fiber.Ctx) error {
	vaccine, err := vaccineParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.clusterUC.LowCoverageGeoJSON(c.Context(), vaccine)
	if err != nil {
		h.logger.Error("Failed to build cluster GeoJSON", zap.String("vaccine", vaccine.String()), zap.Error(err))
		return utils.SendError(c, err)
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}
