package domain

import (
	"fmt"
	"strings"
)

// SummaryStats describes one group of coverage values.
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	CILow  float64 `json:"ci_low"`
	CIHigh float64 `json:"ci_high"`
	Count  int     `json:"count"`
}

// CoverageOutlier is a municipality outside the IQR fences.
type CoverageOutlier struct {
	Municipio string  `json:"municipio"`
	UF        string  `json:"uf"`
	Regiao    string  `json:"regiao"`
	Tipo      string  `json:"tipo"`
	Coverage  float64 `json:"coverage"`
}

// Correlations holds Pearson coefficients against coverage.
type Correlations struct {
	UBSDensity float64 `json:"ubs_density"`
	Population float64 `json:"population"`
}

// CoverageStatistics is the statistical profile of one vaccine across a dataset.
type CoverageStatistics struct {
	Vaccine      Vaccine                 `json:"vaccine"`
	Overall      SummaryStats            `json:"overall"`
	ByType       map[string]SummaryStats `json:"by_type"`
	ByRegion     map[string]SummaryStats `json:"by_region"`
	Correlations Correlations            `json:"correlations"`
	Outliers     []CoverageOutlier       `json:"outliers"`
	SampleSize   int                     `json:"sample_size"`
}

// VaccineAll selects the mean over every vaccine in the typology matrix.
const VaccineAll Vaccine = "all"

// ParseVaccineSelector accepts a vaccine key or "all".
func ParseVaccineSelector(s string) (Vaccine, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(VaccineAll)) {
		return VaccineAll, nil
	}
	return ParseVaccine(s)
}

// MatrixView is the dimension municipalities are grouped by in the matrix.
type MatrixView string

const (
	MatrixViewTypology MatrixView = "typology"
	MatrixViewRegion   MatrixView = "region"
)

func ParseMatrixView(s string) (MatrixView, error) {
	switch v := MatrixView(strings.ToLower(strings.TrimSpace(s))); v {
	case MatrixViewTypology, MatrixViewRegion:
		return v, nil
	}
	return "", fmt.Errorf("unknown matrix view %q", s)
}

// MatrixCell is the mean coverage of one vaccine (or "all") in one category.
type MatrixCell struct {
	Category     string  `json:"category"`
	VaccineType  Vaccine `json:"vaccine_type"`
	CoverageRate float64 `json:"coverage_rate"`
	Population   int     `json:"population"`
	UBSCount     int     `json:"ubs_count"`
}

// CategorySummary aggregates the municipalities of one category.
type CategorySummary struct {
	TotalPopulation int                 `json:"total_population"`
	TotalUBS        int                 `json:"total_ubs"`
	UBSPer10k       float64             `json:"ubs_per_10k"`
	AverageCoverage map[Vaccine]float64 `json:"average_coverage"`
}

// MatrixCorrelations are Pearson coefficients over all municipalities.
type MatrixCorrelations struct {
	CoverageVsPopulation float64 `json:"coverage_vs_population"`
	CoverageVsUBS        float64 `json:"coverage_vs_ubs"`
	UBSVsPopulation      float64 `json:"ubs_vs_population"`
}

// TypologyMatrix is the category × vaccine coverage matrix.
type TypologyMatrix struct {
	View         MatrixView                 `json:"view"`
	Vaccine      Vaccine                    `json:"vaccine"`
	Categories   []string                   `json:"categories"`
	VaccineTypes []Vaccine                  `json:"vaccine_types"`
	Cells        []MatrixCell               `json:"matrix_data"`
	Summaries    map[string]CategorySummary `json:"summaries"`
	Correlations MatrixCorrelations         `json:"correlations"`
}
