package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/usecase"
)

func TestStatsUseCase_GetStatistics(t *testing.T) {
	ctx := context.Background()
	repo := &MockMunicipalityRepository{}
	repo.On("List", ctx).Return(testRecords(), nil)
	cacheRepo := &MockCacheRepository{}
	cacheRepo.On("GetJSON", ctx, "analytics:dataset:records", mock.Anything).Return(false, nil)
	cacheRepo.On("GetJSON", ctx, "analytics:statistics:bcg", mock.Anything).Return(false, nil)
	cacheRepo.On("SetJSON", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dataset := usecase.NewDatasetUseCase(repo, cacheRepo, time.Hour, zap.NewNop())
	analyzer := analytics.NewStatisticsAnalyzer(analytics.DefaultEfficiencyParams().PopulationFactor)
	uc := usecase.NewStatsUseCase(dataset, analyzer, cacheRepo, time.Minute, zap.NewNop())

	stats, err := uc.GetStatistics(ctx, domain.VaccineBCG)

	require.NoError(t, err)
	assert.Equal(t, 7, stats.SampleSize)
	assert.Equal(t, 7, stats.Overall.Count)
	assert.InDelta(t, 75.0, stats.Overall.Mean, 1e-9)
	assert.Contains(t, stats.ByRegion, "Norte")
	assert.Equal(t, 5, stats.ByRegion["Sudeste"].Count)
	cacheRepo.AssertCalled(t, "SetJSON", ctx, "analytics:statistics:bcg", stats, time.Minute)
}

func TestStatsUseCase_CacheHit(t *testing.T) {
	ctx := context.Background()
	repo := &MockMunicipalityRepository{}
	cacheRepo := &MockCacheRepository{}
	cached := domain.CoverageStatistics{Vaccine: domain.VaccinePolio, SampleSize: 3}
	cacheRepo.On("GetJSON", ctx, "analytics:statistics:polio", mock.Anything).
		Run(fillJSON(cached)).
		Return(true, nil)

	dataset := usecase.NewDatasetUseCase(repo, nil, 0, zap.NewNop())
	uc := usecase.NewStatsUseCase(dataset, analytics.NewStatisticsAnalyzer(10000), cacheRepo, time.Minute, zap.NewNop())

	stats, err := uc.GetStatistics(ctx, domain.VaccinePolio)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.SampleSize)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestStatsUseCase_GetTypologyMatrix(t *testing.T) {
	ctx := context.Background()
	repo := &MockMunicipalityRepository{}
	repo.On("List", ctx).Return(testRecords(), nil)
	cacheRepo := &MockCacheRepository{}
	cacheRepo.On("GetJSON", ctx, "analytics:dataset:records", mock.Anything).Return(false, nil)
	cacheRepo.On("GetJSON", ctx, "analytics:statistics-matrix:typology:bcg", mock.Anything).Return(false, nil)
	cacheRepo.On("SetJSON", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dataset := usecase.NewDatasetUseCase(repo, cacheRepo, time.Hour, zap.NewNop())
	analyzer := analytics.NewStatisticsAnalyzer(analytics.DefaultEfficiencyParams().PopulationFactor)
	uc := usecase.NewStatsUseCase(dataset, analyzer, cacheRepo, time.Minute, zap.NewNop())

	matrix, err := uc.GetTypologyMatrix(ctx, domain.VaccineBCG, domain.MatrixViewTypology)

	require.NoError(t, err)
	assert.Equal(t, []string{"Metropolitano", "Urbano", "Rural"}, matrix.Categories)
	assert.Len(t, matrix.Cells, 3*len(domain.AllVaccines))
	assert.InDelta(t, 74.0, matrix.Summaries["Urbano"].AverageCoverage[domain.VaccineBCG], 1e-9)
	assert.InDelta(t, 0.821, matrix.Correlations.CoverageVsPopulation, 1e-6)
	cacheRepo.AssertCalled(t, "SetJSON", ctx, "analytics:statistics-matrix:typology:bcg", matrix, time.Minute)
}

func TestStatsUseCase_GetTypologyMatrix_InvalidView(t *testing.T) {
	ctx := context.Background()
	repo := &MockMunicipalityRepository{}
	repo.On("List", ctx).Return(testRecords(), nil)

	dataset := usecase.NewDatasetUseCase(repo, nil, 0, zap.NewNop())
	uc := usecase.NewStatsUseCase(dataset, analytics.NewStatisticsAnalyzer(10000), nil, 0, zap.NewNop())

	_, err := uc.GetTypologyMatrix(ctx, domain.VaccineBCG, domain.MatrixView("state"))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}
