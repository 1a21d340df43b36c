package domain

import (
	"fmt"
	"time"
)

// SeriesDateLayout is the calendar-date form observations are exchanged in.
const SeriesDateLayout = "2006-01-02"

// ParseSeriesDate accepts a YYYY-MM-DD date or an RFC3339 timestamp.
func ParseSeriesDate(s string) (time.Time, error) {
	if t, err := time.Parse(SeriesDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// TimeSeriesPoint is one observation of a coverage series.
type TimeSeriesPoint struct {
	Date  time.Time `json:"date" db:"observed_at"`
	Value float64   `json:"value" db:"value"`
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendFlat       TrendDirection = "flat"
)

// TrendModel is an ordinary least squares fit of value on index.
type TrendModel struct {
	Slope     float64        `json:"slope"`
	Intercept float64        `json:"intercept"`
	RSquared  float64        `json:"r_squared"`
	Direction TrendDirection `json:"direction"`
}

// Seasonality reports the lag-period autocorrelation test.
type Seasonality struct {
	Detected        bool    `json:"detected"`
	Autocorrelation float64 `json:"autocorrelation"`
	Period          int     `json:"period"`
	Strength        float64 `json:"strength"`
	Reason          string  `json:"reason,omitempty"`
}

// TrendAnalysis is the full output of a trend analysis.
// MovingAverage entries are nil until the window is filled.
type TrendAnalysis struct {
	Trend         TrendModel        `json:"trend"`
	TrendLine     []float64         `json:"trend_line"`
	MovingAverage []*float64        `json:"moving_average"`
	Seasonality   Seasonality       `json:"seasonality"`
	Series        []TimeSeriesPoint `json:"series"`
}

// ForecastPoint is one extrapolated step with its confidence band.
type ForecastPoint struct {
	Date       time.Time `json:"date"`
	Value      float64   `json:"value"`
	UpperBound float64   `json:"upper_bound"`
	LowerBound float64   `json:"lower_bound"`
}

// Forecast is the output of a forecast run.
type Forecast struct {
	Points             []ForecastPoint `json:"points"`
	ConfidenceInterval float64         `json:"confidence_interval"`
	StdError           float64         `json:"std_error"`
	Analysis           TrendAnalysis   `json:"analysis"`
}
