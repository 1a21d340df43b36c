package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/usecase/dto"
)

func newSimulationUseCase(repo *MockMunicipalityRepository) *usecase.SimulationUseCase {
	dataset := usecase.NewDatasetUseCase(repo, nil, 0, zap.NewNop())
	return usecase.NewSimulationUseCase(dataset, analytics.NewSimulator(analytics.DefaultSimulationParams()), zap.NewNop())
}

func TestSimulationUseCase_Run(t *testing.T) {
	ctx := context.Background()
	records := testRecords()

	t.Run("interventions never do worse than baseline", func(t *testing.T) {
		repo := &MockMunicipalityRepository{}
		repo.On("GetByName", ctx, "Diadema").Return(&records[1], nil)
		uc := newSimulationUseCase(repo)

		result, err := uc.Run(ctx, dto.SimulationRequest{
			Municipio:            "Diadema",
			Vaccine:              "penta",
			AwarenessCampaign:    true,
			IncreaseCapacity:     true,
			ImproveAccessibility: true,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.VaccinePenta, result.Vaccine)
		assert.Len(t, result.Scenario, 24)
		assert.Len(t, result.Baseline, 24)
		assert.GreaterOrEqual(t, result.FinalCoverage, result.BaselineFinal)
		assert.GreaterOrEqual(t, result.Improvement, 0.0)
	})

	t.Run("unknown municipality", func(t *testing.T) {
		repo := &MockMunicipalityRepository{}
		repo.On("GetByName", ctx, "Atlantis").Return(nil, errors.NotFound("municipality %q not found", "Atlantis"))
		uc := newSimulationUseCase(repo)

		_, err := uc.Run(ctx, dto.SimulationRequest{Municipio: "Atlantis", Vaccine: "bcg"})

		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	})

	t.Run("unknown vaccine", func(t *testing.T) {
		uc := newSimulationUseCase(&MockMunicipalityRepository{})

		_, err := uc.Run(ctx, dto.SimulationRequest{Municipio: "Diadema", Vaccine: "flu"})

		assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
	})
}
