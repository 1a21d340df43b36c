package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

// EfficiencyScorer rates how much coverage a municipality achieves per unit of
// primary-care infrastructure. The score is relative: it rewards high coverage
// reached with fewer UBS per capita.
type EfficiencyScorer struct {
	params EfficiencyParams
}

func NewEfficiencyScorer(params EfficiencyParams) *EfficiencyScorer {
	return &EfficiencyScorer{params: params}
}

// Score computes an EfficiencyRecord per eligible record, sorted by efficiency
// descending. Records with fewer than MinUBS units or a non-positive population
// are skipped.
func (s *EfficiencyScorer) Score(records []domain.MunicipalityRecord) ([]domain.EfficiencyRecord, error) {
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("dataset is empty")
	}
	if err := s.params.validate(); err != nil {
		return nil, err
	}

	out := make([]domain.EfficiencyRecord, 0, len(records))
	for _, r := range records {
		if r.UBSCount < s.params.MinUBS || r.Populacao <= 0 {
			continue
		}
		out = append(out, s.scoreOne(r))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Efficiency > out[j].Efficiency
	})
	return out, nil
}

func (s *EfficiencyScorer) scoreOne(r domain.MunicipalityRecord) domain.EfficiencyRecord {
	ubsPer10k := float64(r.UBSCount) / float64(r.Populacao) * s.params.PopulationFactor
	avgCoverage := mean(r.Coverages())

	normalizedUBS := math.Min(1, ubsPer10k/s.params.UBSCeiling)
	normalizedCoverage := avgCoverage / 100
	raw := normalizedCoverage / math.Max(normalizedUBS, s.params.ResourceFloor)
	efficiency := math.Max(0, math.Min(1, raw/s.params.Rescale))

	return domain.EfficiencyRecord{
		Municipio:          r.Municipio,
		UF:                 r.UF,
		Regiao:             r.Regiao,
		Tipo:               r.Tipo,
		Populacao:          r.Populacao,
		UBSCount:           r.UBSCount,
		UBSPer10k:          ubsPer10k,
		AvgCoverage:        avgCoverage,
		Efficiency:         efficiency,
		EfficiencyCategory: s.Categorize(efficiency),
	}
}

// Categorize maps an efficiency score to its bucket. Thresholds are inclusive.
func (s *EfficiencyScorer) Categorize(efficiency float64) domain.EfficiencyCategory {
	switch {
	case efficiency >= s.params.HighThreshold:
		return domain.EfficiencyHigh
	case efficiency >= s.params.MediumThreshold:
		return domain.EfficiencyMedium
	case efficiency >= s.params.LowThreshold:
		return domain.EfficiencyLow
	default:
		return domain.EfficiencyVeryLow
	}
}

// EfficiencyFilter narrows a scored listing. Empty fields match everything.
type EfficiencyFilter struct {
	Region string
	Type   string
	Limit  int
}

// FilterEfficiency applies region/type filters and a limit, preserving order.
func FilterEfficiency(records []domain.EfficiencyRecord, f EfficiencyFilter) []domain.EfficiencyRecord {
	out := make([]domain.EfficiencyRecord, 0, len(records))
	for _, r := range records {
		if f.Region != "" && !strings.EqualFold(r.Regiao, f.Region) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(r.Tipo, f.Type) {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
