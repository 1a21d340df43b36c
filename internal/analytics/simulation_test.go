package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

func simRecord(pop, ubs int, bcg float64) domain.MunicipalityRecord {
	return domain.MunicipalityRecord{
		Municipio: "Vila Nova",
		Populacao: pop,
		UBSCount:  ubs,
		BCG:       bcg,
	}
}

func TestSimulator_Run_AllInterventions(t *testing.T) {
	s := NewSimulator(DefaultSimulationParams())
	iv := domain.Interventions{AwarenessCampaign: true, IncreaseCapacity: true, ImproveAccessibility: true}

	result, err := s.Run(simRecord(10000, 2, 80), domain.VaccineBCG, iv)
	require.NoError(t, err)

	require.Len(t, result.Scenario, 24)
	require.Len(t, result.Baseline, 24)
	assert.Equal(t, 80.0, result.InitialCoverage)
	assert.Equal(t, iv, result.Interventions)

	first := result.Scenario[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 10050, first.Population)
	assert.Equal(t, 120, first.Vaccinated)
	assert.Equal(t, 81.19, first.Coverage)
	assert.Equal(t, 81.0, result.Baseline[0].Coverage)

	// both runs saturate within two years
	assert.Equal(t, 100.0, result.FinalCoverage)
	assert.Equal(t, 100.0, result.BaselineFinal)
	assert.Equal(t, 11272, result.Scenario[23].Population)

	for _, step := range result.Scenario {
		assert.LessOrEqual(t, step.Coverage, 100.0)
	}
}

func TestSimulator_Run_CapacityBound(t *testing.T) {
	s := NewSimulator(DefaultSimulationParams())

	result, err := s.Run(simRecord(100000, 1, 50), domain.VaccineBCG, domain.Interventions{IncreaseCapacity: true})
	require.NoError(t, err)

	assert.Equal(t, 50.06, result.Scenario[0].Coverage)
	assert.Equal(t, 50.05, result.Baseline[0].Coverage)
	assert.Equal(t, 60, result.Scenario[0].Vaccinated)
	assert.Equal(t, 51.35, result.FinalCoverage)
	assert.Equal(t, 51.13, result.BaselineFinal)
	assert.Equal(t, 0.22, result.Improvement)
}

func TestSimulator_Run_NoInterventionsMatchesBaseline(t *testing.T) {
	s := NewSimulator(DefaultSimulationParams())

	result, err := s.Run(simRecord(25000, 3, 72.5), domain.VaccineBCG, domain.Interventions{})
	require.NoError(t, err)

	assert.Equal(t, result.Baseline, result.Scenario)
	assert.Equal(t, 0.0, result.Improvement)
}

func TestSimulator_Run_InvalidInput(t *testing.T) {
	s := NewSimulator(DefaultSimulationParams())

	tests := []struct {
		name    string
		record  domain.MunicipalityRecord
		vaccine domain.Vaccine
	}{
		{name: "zero population", record: simRecord(0, 2, 80), vaccine: domain.VaccineBCG},
		{name: "zero ubs", record: simRecord(1000, 0, 80), vaccine: domain.VaccineBCG},
		{name: "zero coverage", record: simRecord(1000, 2, 0), vaccine: domain.VaccineBCG},
		{name: "unknown vaccine", record: simRecord(1000, 2, 80), vaccine: domain.Vaccine("hpv")},
		{name: "missing name", record: domain.MunicipalityRecord{Populacao: 1000, UBSCount: 2, BCG: 80}, vaccine: domain.VaccineBCG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(tt.record, tt.vaccine, domain.Interventions{AwarenessCampaign: true})
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
		})
	}
}
