package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/pkg/utils"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/usecase/dto"
)

// QueryHandler runs custom filter/sort/project queries over the dataset.
type QueryHandler struct {
	queryUC *usecase.QueryUseCase
	logger  *zap.Logger
}

func NewQueryHandler(queryUC *usecase.QueryUseCase, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		queryUC: queryUC,
		logger:  logger,
	}
}

// Execute godoc
// @Summary Custom query
// @Description Applies the filters in order, sorts, limits and projects the requested fields. Numeric operators: = > < >= <= !=. Text: contains, starts_with, ends_with, equals, not_equals. Categorical: equals, not_equals.
// @Tags Query
// @Accept json
// @Produce json
// @Param request body dto.QueryRequest true "Query"
// @Success 200 {object} utils.SuccessResponse{data=domain.QueryResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/query [post]
func (h *QueryHandler) Execute(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.queryUC.Execute(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.TotalResults,
		Limit: req.Limit,
	})
}

// GetFieldValues godoc
// @Summary Distinct values of a field
// @Description Sorted distinct non-empty values, for building filter pickers
// @Tags Query
// @Produce json
// @Param field path string true "Field name (municipio, uf, regiao, tipo, populacao, ubs_count or a vaccine)"
// @Success 200 {object} utils.SuccessResponse{data=dto.FieldValuesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/query/values/{field} [get]
func (h *QueryHandler) GetFieldValues(c *fiber.Ctx) error {
	field, err := pathParam(c, "field")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.queryUC.FieldValues(c.Context(), field)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Values)})
}
