package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

const flatSlopeTolerance = 1e-9

// TemporalAnalyzer fits linear trends, detects seasonality and extrapolates a
// single municipality/vaccine coverage series.
type TemporalAnalyzer struct {
	params TemporalParams
}

func NewTemporalAnalyzer(params TemporalParams) *TemporalAnalyzer {
	return &TemporalAnalyzer{params: params}
}

// AnalyzeTrend fits an OLS trend of value on index. The series is ordered by
// date before fitting; the input slice is not modified.
func (a *TemporalAnalyzer) AnalyzeTrend(series []domain.TimeSeriesPoint) (*domain.TrendAnalysis, error) {
	if err := a.params.validate(); err != nil {
		return nil, err
	}
	if len(series) < a.params.MinDataPoints {
		return nil, apperrors.InsufficientData(a.params.MinDataPoints, len(series))
	}

	sorted := make([]domain.TimeSeriesPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	values := make([]float64, len(sorted))
	for i, p := range sorted {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, apperrors.InvalidInput("series value at index %d is not a finite number", i)
		}
		values[i] = p.Value
	}

	model, line := fitLinear(values)

	return &domain.TrendAnalysis{
		Trend:         model,
		TrendLine:     line,
		MovingAverage: movingAverage(values, a.params.MovingAverageWindow),
		Seasonality:   a.detectSeasonality(values),
		Series:        sorted,
	}, nil
}

// Forecast extrapolates the trend ForecastHorizon steps past the last
// observation, one calendar month apart. When seasonality is detected the
// residual of the matching historical position is added back. The band is
// z·stdError·sqrt(1+i/n) around each value, with the lower bound floored at 0.
func (a *TemporalAnalyzer) Forecast(series []domain.TimeSeriesPoint) (*domain.Forecast, error) {
	analysis, err := a.AnalyzeTrend(series)
	if err != nil {
		return nil, err
	}

	n := len(analysis.Series)
	residuals := make([]float64, n)
	var sq float64
	for i, p := range analysis.Series {
		residuals[i] = p.Value - analysis.TrendLine[i]
		sq += residuals[i] * residuals[i]
	}
	stdError := math.Sqrt(sq / float64(n))
	z := zFactor(a.params.ConfidenceLevel)

	last := analysis.Series[n-1].Date
	period := a.params.SeasonalityPeriod
	points := make([]domain.ForecastPoint, 0, a.params.ForecastHorizon)
	for i := 1; i <= a.params.ForecastHorizon; i++ {
		x := float64(n - 1 + i)
		value := analysis.Trend.Slope*x + analysis.Trend.Intercept

		if analysis.Seasonality.Detected {
			value += residuals[seasonalIndex(n, period, i)]
		}

		margin := z * stdError * math.Sqrt(1+float64(i)/float64(n))
		points = append(points, domain.ForecastPoint{
			Date:       last.AddDate(0, i, 0),
			Value:      value,
			UpperBound: value + margin,
			LowerBound: math.Max(0, value-margin),
		})
	}

	return &domain.Forecast{
		Points:             points,
		ConfidenceInterval: a.params.ConfidenceLevel,
		StdError:           stdError,
		Analysis:           *analysis,
	}, nil
}

// seasonalIndex maps forecast step i to a historical position, normalized to [0, n).
func seasonalIndex(n, period, i int) int {
	return ((n-period+i)%n + n) % n
}

// zFactor is the two-sided normal quantile for level, rounded to two decimals
// (1.96 at 0.95).
func zFactor(level float64) float64 {
	q := distuv.UnitNormal.Quantile(0.5 + level/2)
	return math.Round(q*100) / 100
}

func fitLinear(values []float64) (domain.TrendModel, []float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	var slope float64
	if den := n*sumXX - sumX*sumX; den != 0 {
		slope = (n*sumXY - sumX*sumY) / den
	}
	intercept := (sumY - slope*sumX) / n

	line := make([]float64, len(values))
	meanY := sumY / n
	var sst, ssr float64
	for i, y := range values {
		line[i] = slope*float64(i) + intercept
		sst += (y - meanY) * (y - meanY)
		ssr += (y - line[i]) * (y - line[i])
	}

	rSquared := 1.0
	if sst > 0 {
		rSquared = 1 - ssr/sst
	} else if ssr > 0 {
		rSquared = 0
	}

	direction := domain.TrendFlat
	switch {
	case slope > flatSlopeTolerance:
		direction = domain.TrendIncreasing
	case slope < -flatSlopeTolerance:
		direction = domain.TrendDecreasing
	}

	return domain.TrendModel{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared,
		Direction: direction,
	}, line
}

// movingAverage is a trailing mean; entries before the window fills are nil.
func movingAverage(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			avg := sum / float64(window)
			out[i] = &avg
		}
	}
	return out
}

func (a *TemporalAnalyzer) detectSeasonality(values []float64) domain.Seasonality {
	period := a.params.SeasonalityPeriod
	n := len(values)
	if n <= 2*period {
		return domain.Seasonality{
			Detected: false,
			Period:   period,
			Reason:   "series too short for seasonality analysis",
		}
	}

	rho := autocorrelation(values, period)
	return domain.Seasonality{
		Detected:        math.Abs(rho) > a.params.SeasonalityThreshold,
		Autocorrelation: rho,
		Period:          period,
		Strength:        math.Abs(rho),
	}
}

// autocorrelation at lag; a constant series has zero autocorrelation.
func autocorrelation(values []float64, lag int) float64 {
	m := mean(values)
	var num, den float64
	for i := 0; i < len(values)-lag; i++ {
		num += (values[i] - m) * (values[i+lag] - m)
	}
	for _, v := range values {
		den += (v - m) * (v - m)
	}
	if den == 0 {
		return 0
	}
	return num / den
}
