package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

const (
	ciLevel       = 0.95
	iqrMultiplier = 1.5
)

// StatisticsAnalyzer profiles the coverage distribution of one vaccine.
type StatisticsAnalyzer struct {
	populationFactor float64
}

func NewStatisticsAnalyzer(populationFactor float64) *StatisticsAnalyzer {
	if populationFactor <= 0 {
		populationFactor = DefaultEfficiencyParams().PopulationFactor
	}
	return &StatisticsAnalyzer{populationFactor: populationFactor}
}

// Analyze computes summary statistics overall and per type/region, Pearson
// correlations of coverage with UBS density and population, and IQR outliers.
// Values are rounded to 2 decimals, correlations to 3.
func (s *StatisticsAnalyzer) Analyze(records []domain.MunicipalityRecord, vaccine domain.Vaccine) (*domain.CoverageStatistics, error) {
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("dataset is empty")
	}
	if !vaccine.Valid() {
		return nil, apperrors.InvalidInput("unknown vaccine %q", vaccine)
	}

	n := len(records)
	coverage := make([]float64, n)
	density := make([]float64, n)
	population := make([]float64, n)
	byType := make(map[string][]float64)
	byRegion := make(map[string][]float64)

	for i, r := range records {
		c, _ := r.Coverage(vaccine)
		coverage[i] = c
		population[i] = float64(r.Populacao)
		if r.Populacao > 0 {
			density[i] = float64(r.UBSCount) / float64(r.Populacao) * s.populationFactor
		}
		byType[r.Tipo] = append(byType[r.Tipo], c)
		byRegion[r.Regiao] = append(byRegion[r.Regiao], c)
	}

	result := &domain.CoverageStatistics{
		Vaccine:    vaccine,
		Overall:    Summarize(coverage),
		ByType:     make(map[string]domain.SummaryStats, len(byType)),
		ByRegion:   make(map[string]domain.SummaryStats, len(byRegion)),
		SampleSize: n,
		Correlations: domain.Correlations{
			UBSDensity: round(correlation(coverage, density), 3),
			Population: round(correlation(coverage, population), 3),
		},
		Outliers: make([]domain.CoverageOutlier, 0),
	}
	for k, v := range byType {
		result.ByType[k] = Summarize(v)
	}
	for k, v := range byRegion {
		result.ByRegion[k] = Summarize(v)
	}

	low, high := iqrFences(coverage)
	for i, r := range records {
		if coverage[i] < low || coverage[i] > high {
			result.Outliers = append(result.Outliers, domain.CoverageOutlier{
				Municipio: r.Municipio,
				UF:        r.UF,
				Regiao:    r.Regiao,
				Tipo:      r.Tipo,
				Coverage:  coverage[i],
			})
		}
	}

	return result, nil
}

// Summarize returns mean, median, population std and the Student-t 95% CI of
// the mean. With fewer than two values, or no spread, the CI collapses to the mean.
func Summarize(values []float64) domain.SummaryStats {
	n := len(values)
	if n == 0 {
		return domain.SummaryStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	m := stat.Mean(values, nil)
	ciLow, ciHigh := m, m
	if n > 1 {
		sem := stat.StdDev(values, nil) / math.Sqrt(float64(n))
		if sem > 0 {
			t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.5 + ciLevel/2)
			ciLow, ciHigh = m-t*sem, m+t*sem
		}
	}

	return domain.SummaryStats{
		Mean:   round(m, 2),
		Median: round(quantile(sorted, 0.5), 2),
		Std:    round(math.Sqrt(stat.PopVariance(values, nil)), 2),
		CILow:  round(ciLow, 2),
		CIHigh: round(ciHigh, 2),
		Count:  n,
	}
}

// correlation is Pearson's r, or 0 when either side has no variance.
func correlation(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func iqrFences(values []float64) (float64, float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - iqrMultiplier*iqr, q3 + iqrMultiplier*iqr
}

// quantile linearly interpolates between closest ranks, h = (n-1)p, over
// sorted input. gonum's stat.Quantile offers no estimator of this kind.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func round(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}

const unclassifiedTypology = "Não classificado"

var (
	typologyOrder = []string{
		"Metropolitano", "Urbano",
		"IntermediarioAdjacente", "RuralAdjacente",
		"IntermediarioRemoto", "RuralRemoto", "Rural",
	}
	regionOrder = []string{"Norte", "Nordeste", "Centro-Oeste", "Sudeste", "Sul"}
)

type categoryGroup struct {
	population int
	ubs        int
	coverage   map[domain.Vaccine][]float64
}

// TypologyMatrix averages coverage per category and vaccine, where the
// category is the municipality type or the region. With domain.VaccineAll
// each category gets one cell averaging every vaccine. Correlations use all
// records and the selected vaccine (the per-record mean for VaccineAll).
// Unclassified or blank categories are left out; unknown ones follow the
// known order alphabetically.
func (s *StatisticsAnalyzer) TypologyMatrix(records []domain.MunicipalityRecord, vaccine domain.Vaccine, view domain.MatrixView) (*domain.TypologyMatrix, error) {
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("dataset is empty")
	}
	if vaccine != domain.VaccineAll && !vaccine.Valid() {
		return nil, apperrors.InvalidInput("unknown vaccine %q", vaccine)
	}
	order := typologyOrder
	switch view {
	case domain.MatrixViewTypology:
	case domain.MatrixViewRegion:
		order = regionOrder
	default:
		return nil, apperrors.InvalidInput("unknown matrix view %q", view)
	}

	groups := make(map[string]*categoryGroup)
	for _, r := range records {
		category := r.Tipo
		if view == domain.MatrixViewRegion {
			category = r.Regiao
		}
		if category == "" || (view == domain.MatrixViewTypology && category == unclassifiedTypology) {
			continue
		}

		g, ok := groups[category]
		if !ok {
			g = &categoryGroup{coverage: make(map[domain.Vaccine][]float64, len(domain.AllVaccines))}
			groups[category] = g
		}
		g.population += r.Populacao
		g.ubs += r.UBSCount
		for _, v := range domain.AllVaccines {
			c, _ := r.Coverage(v)
			g.coverage[v] = append(g.coverage[v], c)
		}
	}

	matrix := &domain.TypologyMatrix{
		View:         view,
		Vaccine:      vaccine,
		Categories:   orderCategories(groups, order),
		VaccineTypes: domain.AllVaccines,
		Cells:        make([]domain.MatrixCell, 0),
		Summaries:    make(map[string]domain.CategorySummary, len(groups)),
		Correlations: s.matrixCorrelations(records, vaccine),
	}
	if vaccine == domain.VaccineAll {
		matrix.VaccineTypes = []domain.Vaccine{domain.VaccineAll}
	}

	for _, category := range matrix.Categories {
		g := groups[category]
		cell := domain.MatrixCell{Category: category, Population: g.population, UBSCount: g.ubs}

		summary := domain.CategorySummary{
			TotalPopulation: g.population,
			TotalUBS:        g.ubs,
			AverageCoverage: make(map[domain.Vaccine]float64, len(domain.AllVaccines)),
		}
		if g.population > 0 {
			summary.UBSPer10k = round(float64(g.ubs)/float64(g.population)*s.populationFactor, 2)
		}

		var all []float64
		for _, v := range domain.AllVaccines {
			values := g.coverage[v]
			all = append(all, values...)
			mean := round(stat.Mean(values, nil), 2)
			summary.AverageCoverage[v] = mean

			if vaccine != domain.VaccineAll {
				cell.VaccineType = v
				cell.CoverageRate = mean
				matrix.Cells = append(matrix.Cells, cell)
			}
		}
		if vaccine == domain.VaccineAll {
			cell.VaccineType = domain.VaccineAll
			cell.CoverageRate = round(stat.Mean(all, nil), 2)
			matrix.Cells = append(matrix.Cells, cell)
		}

		matrix.Summaries[category] = summary
	}

	return matrix, nil
}

func (s *StatisticsAnalyzer) matrixCorrelations(records []domain.MunicipalityRecord, vaccine domain.Vaccine) domain.MatrixCorrelations {
	n := len(records)
	coverage := make([]float64, n)
	population := make([]float64, n)
	density := make([]float64, n)
	for i, r := range records {
		if vaccine == domain.VaccineAll {
			coverage[i] = stat.Mean(r.Coverages(), nil)
		} else {
			coverage[i], _ = r.Coverage(vaccine)
		}
		population[i] = float64(r.Populacao)
		if r.Populacao > 0 {
			density[i] = float64(r.UBSCount) / float64(r.Populacao) * s.populationFactor
		}
	}

	return domain.MatrixCorrelations{
		CoverageVsPopulation: round(correlation(coverage, population), 3),
		CoverageVsUBS:        round(correlation(coverage, density), 3),
		UBSVsPopulation:      round(correlation(population, density), 3),
	}
}

// orderCategories lists the present categories, known ones first in order.
func orderCategories(groups map[string]*categoryGroup, known []string) []string {
	out := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(known))
	for _, c := range known {
		seen[c] = true
		if _, ok := groups[c]; ok {
			out = append(out, c)
		}
	}

	var rest []string
	for c := range groups {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
