package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/repository/cache"
	"github.com/coverage-analytics/internal/usecase/dto"
)

type QueryUseCase struct {
	dataset *DatasetUseCase
	builder *analytics.QueryBuilder
	cache   resultCache
	logger  *zap.Logger
}

func NewQueryUseCase(
	dataset *DatasetUseCase,
	builder *analytics.QueryBuilder,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *QueryUseCase {
	return &QueryUseCase{
		dataset: dataset,
		builder: builder,
		cache:   newResultCache(cacheRepo, ttl, logger),
		logger:  logger,
	}
}

// Execute runs a custom query over the dataset.
func (uc *QueryUseCase) Execute(ctx context.Context, req dto.QueryRequest) (*domain.QueryResult, error) {
	q := req.ToQuery()
	key := cache.Key("query", q)

	var cached domain.QueryResult
	if uc.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := uc.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	result, err := uc.builder.Execute(records, q)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Custom query executed",
		zap.Int("filters", len(q.Filters)),
		zap.Int("total_results", result.TotalResults),
	)

	uc.cache.store(ctx, key, result)
	return result, nil
}

// FieldValues lists the distinct values of a field for filter pickers.
func (uc *QueryUseCase) FieldValues(ctx context.Context, field string) (*dto.FieldValuesResponse, error) {
	kind, ok := analytics.FieldKindOf(field)
	if !ok {
		return nil, errors.InvalidInput("unknown field %q", field)
	}

	records, err := uc.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	values, err := analytics.UniqueFieldValues(records, field)
	if err != nil {
		return nil, err
	}

	return &dto.FieldValuesResponse{
		Field:  field,
		Kind:   string(kind),
		Values: values,
	}, nil
}
