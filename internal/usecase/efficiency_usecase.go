package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/repository/cache"
	"github.com/coverage-analytics/internal/usecase/dto"
)

// DefaultEfficiencyLimit caps the efficiency listing when no limit is given.
const DefaultEfficiencyLimit = 50

type EfficiencyUseCase struct {
	dataset *DatasetUseCase
	scorer  *analytics.EfficiencyScorer
	matcher *analytics.SimilarityMatcher
	cache   resultCache
	logger  *zap.Logger
}

func NewEfficiencyUseCase(
	dataset *DatasetUseCase,
	scorer *analytics.EfficiencyScorer,
	matcher *analytics.SimilarityMatcher,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *EfficiencyUseCase {
	return &EfficiencyUseCase{
		dataset: dataset,
		scorer:  scorer,
		matcher: matcher,
		cache:   newResultCache(cacheRepo, ttl, logger),
		logger:  logger,
	}
}

// scores returns the efficiency of every municipality, cached as a whole.
func (uc *EfficiencyUseCase) scores(ctx context.Context) ([]domain.EfficiencyRecord, error) {
	key := cache.Key("efficiency", "all")

	var scored []domain.EfficiencyRecord
	if uc.cache.load(ctx, key, &scored) {
		return scored, nil
	}

	records, err := uc.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	scored, err = uc.scorer.Score(records)
	if err != nil {
		return nil, err
	}

	uc.cache.store(ctx, key, scored)
	return scored, nil
}

// List returns scored municipalities filtered by region and type.
func (uc *EfficiencyUseCase) List(ctx context.Context, req dto.EfficiencyRequest) (*dto.EfficiencyListResponse, error) {
	scored, err := uc.scores(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultEfficiencyLimit
	}

	filtered := analytics.FilterEfficiency(scored, analytics.EfficiencyFilter{
		Region: req.Region,
		Type:   req.Type,
	})
	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return &dto.EfficiencyListResponse{
		Results: filtered,
		Total:   total,
	}, nil
}

// Benchmark finds the peers most similar to a municipality.
func (uc *EfficiencyUseCase) Benchmark(ctx context.Context, municipio string) (*domain.Benchmark, error) {
	key := cache.Key("benchmark", municipio)

	var cached domain.Benchmark
	if uc.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	scored, err := uc.scores(ctx)
	if err != nil {
		return nil, err
	}

	bench, err := uc.matcher.Benchmark(municipio, scored)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Benchmark computed",
		zap.String("municipio", municipio),
		zap.Int("similar", len(bench.Similar)),
	)

	uc.cache.store(ctx, key, bench)
	return bench, nil
}
