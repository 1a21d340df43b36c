package analytics

import (
	"math"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

// Simulator projects monthly coverage under a set of interventions and
// compares it with a no-intervention baseline.
type Simulator struct {
	params SimulationParams
}

func NewSimulator(params SimulationParams) *Simulator {
	return &Simulator{params: params}
}

// Run simulates params.Steps months for one municipality and vaccine.
func (s *Simulator) Run(r domain.MunicipalityRecord, vaccine domain.Vaccine, iv domain.Interventions) (*domain.SimulationResult, error) {
	if !vaccine.Valid() {
		return nil, apperrors.InvalidInput("unknown vaccine %q", vaccine)
	}
	coverage, _ := r.Coverage(vaccine)
	if r.Municipio == "" || r.Populacao <= 0 || r.UBSCount <= 0 || coverage <= 0 {
		return nil, apperrors.InvalidInput("insufficient initial data for simulation")
	}
	if s.params.Steps < 1 {
		return nil, apperrors.InvalidInput("simulation steps must be positive, got %d", s.params.Steps)
	}

	scenario := s.project(r, coverage, iv)
	baseline := s.project(r, coverage, domain.Interventions{})

	final := scenario[len(scenario)-1].Coverage
	baselineFinal := baseline[len(baseline)-1].Coverage

	return &domain.SimulationResult{
		Municipio:       r.Municipio,
		Vaccine:         vaccine,
		InitialCoverage: coverage,
		Interventions:   iv,
		Scenario:        scenario,
		Baseline:        baseline,
		FinalCoverage:   final,
		BaselineFinal:   baselineFinal,
		Improvement:     round(final-baselineFinal, 2),
	}, nil
}

func (s *Simulator) project(r domain.MunicipalityRecord, coverage float64, iv domain.Interventions) []domain.SimulationStep {
	p := s.params

	hesitancy := p.HesitancyRate
	if iv.AwarenessCampaign {
		hesitancy *= 1 - p.CampaignHesitancyCut
	}
	capacity := float64(r.UBSCount) * p.CapacityPerUBS
	if iv.IncreaseCapacity {
		capacity *= 1 + p.CapacityBoost
	}
	access := 1.0
	if iv.ImproveAccessibility {
		access += p.AccessibilityImpact
	}

	population := float64(r.Populacao)
	steps := make([]domain.SimulationStep, 0, p.Steps)
	for month := 1; month <= p.Steps; month++ {
		population *= 1 + p.PopulationGrowthRate

		target := population * coverage / 100
		needs := population*p.PopulationGrowthRate + (population - target)
		vaccinated := math.Min(needs*(1-hesitancy)*access, capacity)
		coverage = math.Min(100, (target+vaccinated)/population*100)

		steps = append(steps, domain.SimulationStep{
			Month:      month,
			Coverage:   round(coverage, 2),
			Population: int(math.Round(population)),
			Vaccinated: int(math.Round(vaccinated)),
		})
	}
	return steps
}
