package usecase

import (
	"context"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/repository/cache"
)

type ClusterUseCase struct {
	dataset   *DatasetUseCase
	clusterer *analytics.GeoClusterer
	cache     resultCache
	logger    *zap.Logger
}

func NewClusterUseCase(
	dataset *DatasetUseCase,
	clusterer *analytics.GeoClusterer,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *ClusterUseCase {
	return &ClusterUseCase{
		dataset:   dataset,
		clusterer: clusterer,
		cache:     newResultCache(cacheRepo, ttl, logger),
		logger:    logger,
	}
}

// LowCoverageClusters groups municipalities below the coverage threshold.
func (uc *ClusterUseCase) LowCoverageClusters(ctx context.Context, vaccine domain.Vaccine) (*domain.ClusterResult, error) {
	key := cache.Key("clusters", vaccine)

	var cached domain.ClusterResult
	if uc.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := uc.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := uc.clusterer.IdentifyLowCoverageClusters(records, vaccine)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Low coverage clusters identified",
		zap.String("vaccine", vaccine.String()),
		zap.Int("low_coverage_points", result.TotalLowCoveragePoints),
		zap.Int("clusters", len(result.Clusters)),
		zap.Int("noise", len(result.Noise)),
		zap.Duration("took", time.Since(start)),
	)

	uc.cache.store(ctx, key, result)
	return result, nil
}

// LowCoverageGeoJSON renders the clusters of LowCoverageClusters as GeoJSON.
func (uc *ClusterUseCase) LowCoverageGeoJSON(ctx context.Context, vaccine domain.Vaccine) (*geojson.FeatureCollection, error) {
	result, err := uc.LowCoverageClusters(ctx, vaccine)
	if err != nil {
		return nil, err
	}
	return analytics.ClustersGeoJSON(result), nil
}
