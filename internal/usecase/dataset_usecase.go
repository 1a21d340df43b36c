package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/repository/cache"
)

// DatasetUseCase loads municipality records for the analysis use cases.
type DatasetUseCase struct {
	municipalityRepo repository.MunicipalityRepository
	cache            resultCache
	logger           *zap.Logger
}

func NewDatasetUseCase(
	municipalityRepo repository.MunicipalityRepository,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *DatasetUseCase {
	return &DatasetUseCase{
		municipalityRepo: municipalityRepo,
		cache:            newResultCache(cacheRepo, ttl, logger),
		logger:           logger,
	}
}

// Records returns the full dataset.
func (uc *DatasetUseCase) Records(ctx context.Context) ([]domain.MunicipalityRecord, error) {
	key := cache.Key("dataset", "records")

	var records []domain.MunicipalityRecord
	if uc.cache.load(ctx, key, &records) {
		return records, nil
	}

	records, err := uc.municipalityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list municipalities: %w", err)
	}

	uc.cache.store(ctx, key, records)
	return records, nil
}

// Municipality looks up a single record by name.
func (uc *DatasetUseCase) Municipality(ctx context.Context, municipio string) (*domain.MunicipalityRecord, error) {
	return uc.municipalityRepo.GetByName(ctx, municipio)
}

func (uc *DatasetUseCase) Meta(ctx context.Context) (*domain.DatasetMeta, error) {
	key := cache.Key("dataset", "meta")

	var meta domain.DatasetMeta
	if uc.cache.load(ctx, key, &meta) {
		return &meta, nil
	}

	m, err := uc.municipalityRepo.Meta(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset meta: %w", err)
	}

	uc.cache.store(ctx, key, m)
	return m, nil
}
