package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

var seriesStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func seriesOf(values ...float64) []domain.TimeSeriesPoint {
	out := make([]domain.TimeSeriesPoint, len(values))
	for i, v := range values {
		out[i] = domain.TimeSeriesPoint{Date: seriesStart.AddDate(0, i, 0), Value: v}
	}
	return out
}

func generate(n int, f func(i int) float64) []domain.TimeSeriesPoint {
	values := make([]float64, n)
	for i := range values {
		values[i] = f(i)
	}
	return seriesOf(values...)
}

func linear(i int) float64 { return 70 + 2*float64(i) }

// noisyLinear alternates ±1 around a rising line.
func noisyLinear(i int) float64 {
	v := 70 + 0.5*float64(i)
	if i%2 == 0 {
		return v + 1
	}
	return v - 1
}

func seasonal(i int) float64 {
	return 80 + 0.1*float64(i) + 10*math.Sin(2*math.Pi*float64(i)/12)
}

func TestTemporalAnalyzer_AnalyzeTrend_InsufficientData(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	_, err := a.AnalyzeTrend(generate(23, linear))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInsufficientData, appErr.Code)
	assert.Equal(t, 24, appErr.Details["required"])
	assert.Equal(t, 23, appErr.Details["actual"])
	assert.Contains(t, appErr.Message, "24")
}

func TestTemporalAnalyzer_AnalyzeTrend_PerfectLine(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	result, err := a.AnalyzeTrend(generate(24, linear))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, result.Trend.Slope, 1e-9)
	assert.InDelta(t, 70.0, result.Trend.Intercept, 1e-9)
	assert.InDelta(t, 1.0, result.Trend.RSquared, 1e-9)
	assert.Equal(t, domain.TrendIncreasing, result.Trend.Direction)

	require.Len(t, result.TrendLine, 24)
	assert.InDelta(t, 116.0, result.TrendLine[23], 1e-9)

	// 24 points is not enough to test a 12-month cycle
	assert.False(t, result.Seasonality.Detected)
	assert.NotEmpty(t, result.Seasonality.Reason)
	assert.Equal(t, 12, result.Seasonality.Period)
}

func TestTemporalAnalyzer_AnalyzeTrend_Directions(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	tests := []struct {
		name      string
		f         func(i int) float64
		direction domain.TrendDirection
	}{
		{name: "rising", f: linear, direction: domain.TrendIncreasing},
		{name: "falling", f: func(i int) float64 { return 95 - 0.5*float64(i) }, direction: domain.TrendDecreasing},
		{name: "constant", f: func(int) float64 { return 88 }, direction: domain.TrendFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.AnalyzeTrend(generate(30, tt.f))
			require.NoError(t, err)
			assert.Equal(t, tt.direction, result.Trend.Direction)
			assert.False(t, math.IsNaN(result.Trend.RSquared))
		})
	}
}

func TestTemporalAnalyzer_AnalyzeTrend_ConstantSeries(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	result, err := a.AnalyzeTrend(generate(30, func(int) float64 { return 88 }))
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Trend.Slope)
	assert.Equal(t, 88.0, result.Trend.Intercept)
	assert.Equal(t, 1.0, result.Trend.RSquared)
	assert.Equal(t, 0.0, result.Seasonality.Autocorrelation)
	assert.False(t, result.Seasonality.Detected)
}

func TestTemporalAnalyzer_MovingAverage(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	result, err := a.AnalyzeTrend(generate(24, linear))
	require.NoError(t, err)

	ma := result.MovingAverage
	require.Len(t, ma, 24)
	assert.Nil(t, ma[0])
	assert.Nil(t, ma[1])
	require.NotNil(t, ma[2])
	assert.InDelta(t, 72.0, *ma[2], 1e-9)
	require.NotNil(t, ma[23])
	assert.InDelta(t, 114.0, *ma[23], 1e-9)
}

func TestMovingAverage_Window(t *testing.T) {
	ma := movingAverage([]float64{1, 2, 3, 4, 5}, 2)

	assert.Nil(t, ma[0])
	assert.Equal(t, 1.5, *ma[1])
	assert.Equal(t, 4.5, *ma[4])
}

func TestTemporalAnalyzer_Seasonality(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	result, err := a.AnalyzeTrend(generate(36, seasonal))
	require.NoError(t, err)

	s := result.Seasonality
	assert.True(t, s.Detected)
	assert.Greater(t, s.Autocorrelation, 0.3)
	assert.Equal(t, math.Abs(s.Autocorrelation), s.Strength)
	assert.Empty(t, s.Reason)
}

func TestTemporalAnalyzer_SortsByDate(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	series := generate(24, linear)
	reversed := make([]domain.TimeSeriesPoint, len(series))
	for i, p := range series {
		reversed[len(series)-1-i] = p
	}
	original := append([]domain.TimeSeriesPoint(nil), reversed...)

	result, err := a.AnalyzeTrend(reversed)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, result.Trend.Slope, 1e-9)
	assert.Equal(t, series, result.Series)
	assert.Equal(t, original, reversed, "input must not be reordered")
}

func TestTemporalAnalyzer_RejectsNaN(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	series := generate(24, linear)
	series[5].Value = math.NaN()

	_, err := a.AnalyzeTrend(series)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestTemporalAnalyzer_Forecast(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())
	series := generate(24, noisyLinear)

	f, err := a.Forecast(series)
	require.NoError(t, err)

	require.Len(t, f.Points, 12)
	assert.Equal(t, 0.95, f.ConfidenceInterval)
	assert.Greater(t, f.StdError, 0.0)

	last := series[len(series)-1].Date
	for i, p := range f.Points {
		assert.Equal(t, last.AddDate(0, i+1, 0), p.Date)

		x := float64(len(series) + i)
		assert.InDelta(t, f.Analysis.Trend.Slope*x+f.Analysis.Trend.Intercept, p.Value, 1e-9)

		margin := 1.96 * f.StdError * math.Sqrt(1+float64(i+1)/24)
		assert.InDelta(t, p.Value+margin, p.UpperBound, 1e-9)
		assert.InDelta(t, p.Value-margin, p.LowerBound, 1e-9)
	}
}

func TestTemporalAnalyzer_Forecast_BandGrows(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	f, err := a.Forecast(generate(24, noisyLinear))
	require.NoError(t, err)

	for i := 1; i < len(f.Points); i++ {
		prev := f.Points[i-1].UpperBound - f.Points[i-1].LowerBound
		cur := f.Points[i].UpperBound - f.Points[i].LowerBound
		assert.GreaterOrEqual(t, cur, prev)
	}
}

func TestTemporalAnalyzer_Forecast_LowerBoundFloor(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	falling := generate(24, func(i int) float64 {
		v := 30 - 1.5*float64(i)
		if i%2 == 0 {
			return v + 3
		}
		return v - 3
	})

	f, err := a.Forecast(falling)
	require.NoError(t, err)

	last := f.Points[len(f.Points)-1]
	assert.Less(t, last.Value, 0.0)
	for _, p := range f.Points {
		assert.GreaterOrEqual(t, p.LowerBound, 0.0)
		assert.Greater(t, p.UpperBound, p.Value)
	}
	assert.Equal(t, 0.0, last.LowerBound)
}

func TestTemporalAnalyzer_Forecast_UpperBoundNotCapped(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	f, err := a.Forecast(generate(24, linear))
	require.NoError(t, err)

	last := f.Points[len(f.Points)-1]
	assert.InDelta(t, 140.0, last.Value, 1e-9)
	assert.Greater(t, last.UpperBound, 100.0)
}

func TestTemporalAnalyzer_Forecast_SeasonalAdjustment(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())
	series := generate(36, seasonal)

	f, err := a.Forecast(series)
	require.NoError(t, err)
	require.True(t, f.Analysis.Seasonality.Detected)

	n := len(series)
	for i, p := range f.Points {
		step := i + 1
		idx := seasonalIndex(n, 12, step)
		residual := series[idx].Value - f.Analysis.TrendLine[idx]
		x := float64(n - 1 + step)
		expected := f.Analysis.Trend.Slope*x + f.Analysis.Trend.Intercept + residual
		assert.InDelta(t, expected, p.Value, 1e-9)
	}
}

func TestTemporalAnalyzer_Forecast_InsufficientData(t *testing.T) {
	a := NewTemporalAnalyzer(DefaultTemporalParams())

	_, err := a.Forecast(generate(10, linear))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInsufficientData))
}

func TestSeasonalIndex(t *testing.T) {
	tests := []struct {
		n, period, step int
		expected        int
	}{
		{n: 36, period: 12, step: 1, expected: 25},
		{n: 36, period: 12, step: 12, expected: 0},
		{n: 5, period: 12, step: 1, expected: 4},
		{n: 5, period: 12, step: 3, expected: 1},
	}

	for _, tt := range tests {
		got := seasonalIndex(tt.n, tt.period, tt.step)
		assert.Equal(t, tt.expected, got)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, tt.n)
	}
}

func TestZFactor(t *testing.T) {
	assert.Equal(t, 1.96, zFactor(0.95))
	assert.Equal(t, 2.58, zFactor(0.99))
	assert.Equal(t, 1.64, zFactor(0.90))
}

func TestTemporalParams_Validate(t *testing.T) {
	params := DefaultTemporalParams()
	params.ConfidenceLevel = 1

	_, err := NewTemporalAnalyzer(params).AnalyzeTrend(generate(24, linear))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}
