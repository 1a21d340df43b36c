package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/repository/cache"
)

// StatsUseCase produces descriptive coverage statistics for a vaccine.
type StatsUseCase struct {
	dataset  *DatasetUseCase
	analyzer *analytics.StatisticsAnalyzer
	cache    resultCache
	logger   *zap.Logger
}

func NewStatsUseCase(
	dataset *DatasetUseCase,
	analyzer *analytics.StatisticsAnalyzer,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		dataset:  dataset,
		analyzer: analyzer,
		cache:    newResultCache(cacheRepo, ttl, logger),
		logger:   logger,
	}
}

// GetStatistics profiles the coverage distribution of one vaccine.
func (uc *StatsUseCase) GetStatistics(ctx context.Context, vaccine domain.Vaccine) (*domain.CoverageStatistics, error) {
	key := cache.Key("statistics", vaccine)

	var cached domain.CoverageStatistics
	if uc.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := uc.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := uc.analyzer.Analyze(records, vaccine)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Coverage statistics computed",
		zap.String("vaccine", vaccine.String()),
		zap.Int("sample_size", stats.SampleSize),
		zap.Int("outliers", len(stats.Outliers)),
	)

	uc.cache.store(ctx, key, stats)
	return stats, nil
}

// GetTypologyMatrix builds the category × vaccine coverage matrix.
func (uc *StatsUseCase) GetTypologyMatrix(ctx context.Context, vaccine domain.Vaccine, view domain.MatrixView) (*domain.TypologyMatrix, error) {
	key := cache.Key("statistics-matrix", string(view), vaccine)

	var cached domain.TypologyMatrix
	if uc.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := uc.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	matrix, err := uc.analyzer.TypologyMatrix(records, vaccine, view)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Typology matrix computed",
		zap.String("vaccine", vaccine.String()),
		zap.String("view", string(view)),
		zap.Int("categories", len(matrix.Categories)),
	)

	uc.cache.store(ctx, key, matrix)
	return matrix, nil
}
