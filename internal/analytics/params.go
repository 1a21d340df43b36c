package analytics

import (
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

// ClusterParams configures GeoClusterer.
type ClusterParams struct {
	EpsilonKm         float64
	MinPoints         int
	MaxClusters       int
	CoverageThreshold float64
}

func DefaultClusterParams() ClusterParams {
	return ClusterParams{
		EpsilonKm:         50,
		MinPoints:         3,
		MaxClusters:       10,
		CoverageThreshold: 85,
	}
}

func (p ClusterParams) validate() error {
	if p.EpsilonKm <= 0 {
		return apperrors.InvalidInput("epsilon must be positive, got %v", p.EpsilonKm)
	}
	if p.MinPoints < 1 {
		return apperrors.InvalidInput("minPoints must be at least 1, got %d", p.MinPoints)
	}
	if p.MaxClusters < 1 {
		return apperrors.InvalidInput("maxClusters must be at least 1, got %d", p.MaxClusters)
	}
	return nil
}

// EfficiencyParams holds the calibration knobs of EfficiencyScorer.
// UBSCeiling is the UBS-per-10k density treated as ideal; ResourceFloor
// bounds the normalized UBS density from below so zero density never divides.
type EfficiencyParams struct {
	MinUBS           int
	PopulationFactor float64
	UBSCeiling       float64
	Rescale          float64
	ResourceFloor    float64
	HighThreshold    float64
	MediumThreshold  float64
	LowThreshold     float64
}

func DefaultEfficiencyParams() EfficiencyParams {
	return EfficiencyParams{
		MinUBS:           1,
		PopulationFactor: 10000,
		UBSCeiling:       5,
		Rescale:          2,
		ResourceFloor:    0.01,
		HighThreshold:    0.8,
		MediumThreshold:  0.6,
		LowThreshold:     0.4,
	}
}

func (p EfficiencyParams) validate() error {
	if p.PopulationFactor <= 0 || p.UBSCeiling <= 0 || p.Rescale <= 0 || p.ResourceFloor <= 0 {
		return apperrors.InvalidInput("efficiency calibration values must be positive")
	}
	return nil
}

// SimilarityParams configures SimilarityMatcher.
type SimilarityParams struct {
	Threshold  float64
	MaxResults int
}

func DefaultSimilarityParams() SimilarityParams {
	return SimilarityParams{
		Threshold:  0.8,
		MaxResults: 10,
	}
}

// TemporalParams configures TemporalAnalyzer.
type TemporalParams struct {
	MinDataPoints        int
	SeasonalityPeriod    int
	SeasonalityThreshold float64
	MovingAverageWindow  int
	ForecastHorizon      int
	ConfidenceLevel      float64
}

func DefaultTemporalParams() TemporalParams {
	return TemporalParams{
		MinDataPoints:        24,
		SeasonalityPeriod:    12,
		SeasonalityThreshold: 0.3,
		MovingAverageWindow:  3,
		ForecastHorizon:      12,
		ConfidenceLevel:      0.95,
	}
}

func (p TemporalParams) validate() error {
	if p.MinDataPoints < 2 {
		return apperrors.InvalidInput("minDataPoints must be at least 2, got %d", p.MinDataPoints)
	}
	if p.SeasonalityPeriod < 1 || p.MovingAverageWindow < 1 || p.ForecastHorizon < 1 {
		return apperrors.InvalidInput("period, window and horizon must be positive")
	}
	if p.ConfidenceLevel <= 0 || p.ConfidenceLevel >= 1 {
		return apperrors.InvalidInput("confidence level must be in (0, 1), got %v", p.ConfidenceLevel)
	}
	return nil
}

// SimulationParams holds the intervention simulator model constants.
type SimulationParams struct {
	Steps                int
	PopulationGrowthRate float64
	CapacityPerUBS       float64
	CapacityBoost        float64
	HesitancyRate        float64
	CampaignHesitancyCut float64
	AccessibilityImpact  float64
}

func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		Steps:                24,
		PopulationGrowthRate: 0.005,
		CapacityPerUBS:       50,
		CapacityBoost:        0.2,
		HesitancyRate:        0.1,
		CampaignHesitancyCut: 0.5,
		AccessibilityImpact:  0.05,
	}
}

// QueryParams bounds the custom query builder.
type QueryParams struct {
	MaxFilters       int
	MaxDisplayFields int
	DefaultLimit     int
}

func DefaultQueryParams() QueryParams {
	return QueryParams{
		MaxFilters:       5,
		MaxDisplayFields: 10,
		DefaultLimit:     100,
	}
}
