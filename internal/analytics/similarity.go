package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

const (
	typeWeight       = 0.4
	populationWeight = 0.3
	regionWeight     = 0.2
	ubsWeight        = 0.1

	typeMismatchScore   = 0.5
	regionMismatchScore = 0.7
)

// SimilarityMatcher finds benchmarking peers for a municipality.
type SimilarityMatcher struct {
	params SimilarityParams
}

func NewSimilarityMatcher(params SimilarityParams) *SimilarityMatcher {
	return &SimilarityMatcher{params: params}
}

// FindSimilar returns the peers of target whose similarity reaches Threshold,
// most similar first, capped at MaxResults. A name shared by several states
// resolves to the most populous record. Only that record is excluded, so a
// homonym in another state can still be a peer.
func (m *SimilarityMatcher) FindSimilar(target string, all []domain.EfficiencyRecord) ([]domain.SimilarityScore, error) {
	_, out, err := m.match(target, all)
	return out, err
}

// Benchmark bundles the target record with its peers.
func (m *SimilarityMatcher) Benchmark(target string, all []domain.EfficiencyRecord) (*domain.Benchmark, error) {
	t, similar, err := m.match(target, all)
	if err != nil {
		return nil, err
	}
	return &domain.Benchmark{Target: t, Similar: similar}, nil
}

func (m *SimilarityMatcher) match(target string, all []domain.EfficiencyRecord) (domain.EfficiencyRecord, []domain.SimilarityScore, error) {
	t, ok := findRecord(target, all)
	if !ok {
		return t, nil, apperrors.NotFound("municipality %q not found", target)
	}

	out := make([]domain.SimilarityScore, 0)
	for _, c := range all {
		if sameMunicipality(c, t) {
			continue
		}
		sim := Similarity(t, c)
		if sim < m.params.Threshold {
			continue
		}
		out = append(out, domain.SimilarityScore{EfficiencyRecord: c, Similarity: sim})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if m.params.MaxResults > 0 && len(out) > m.params.MaxResults {
		out = out[:m.params.MaxResults]
	}
	return t, out, nil
}

// Similarity scores candidate c against target t in [0, 1].
func Similarity(t, c domain.EfficiencyRecord) float64 {
	typeScore := typeMismatchScore
	if c.Tipo == t.Tipo {
		typeScore = 1
	}
	regionScore := regionMismatchScore
	if c.Regiao == t.Regiao {
		regionScore = 1
	}

	sim := typeWeight*typeScore +
		populationWeight*ratio(float64(c.Populacao), float64(t.Populacao)) +
		regionWeight*regionScore +
		ubsWeight*ratio(float64(c.UBSCount), float64(t.UBSCount))

	// rounding absorbs float error so identical peers score exactly 1
	return math.Min(1, math.Round(sim*1e9)/1e9)
}

// ratio is min/max of two non-negative values; two zeros are identical.
func ratio(a, b float64) float64 {
	hi := math.Max(a, b)
	if hi == 0 {
		return 1
	}
	return math.Min(a, b) / hi
}

// findRecord matches name case-insensitively; among homonyms the most
// populous wins, the first listed on a tie.
func findRecord(name string, all []domain.EfficiencyRecord) (domain.EfficiencyRecord, bool) {
	best := -1
	for i, r := range all {
		if !strings.EqualFold(r.Municipio, name) {
			continue
		}
		if best < 0 || r.Populacao > all[best].Populacao {
			best = i
		}
	}
	if best < 0 {
		return domain.EfficiencyRecord{}, false
	}
	return all[best], true
}

func sameMunicipality(a, b domain.EfficiencyRecord) bool {
	return strings.EqualFold(a.Municipio, b.Municipio) && strings.EqualFold(a.UF, b.UF)
}
