package dto

import (
	"fmt"

	"github.com/coverage-analytics/internal/domain"
)

// Points parses the inline series. The error names the offending index.
func (r TemporalRequest) Points() ([]domain.TimeSeriesPoint, error) {
	points := make([]domain.TimeSeriesPoint, len(r.Series))
	for i, p := range r.Series {
		date, err := domain.ParseSeriesDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("series[%d]: %w", i, err)
		}
		points[i] = domain.TimeSeriesPoint{Date: date, Value: p.Value}
	}
	return points, nil
}

func (r QueryRequest) ToQuery() domain.Query {
	filters := make([]domain.QueryFilter, len(r.Filters))
	for i, f := range r.Filters {
		filters[i] = domain.QueryFilter{Field: f.Field, Operator: f.Operator, Value: f.Value}
	}
	return domain.Query{
		Filters:       filters,
		SortField:     r.SortField,
		SortOrder:     domain.SortOrder(r.SortOrder),
		Limit:         r.Limit,
		DisplayFields: r.DisplayFields,
	}
}

func (r SimulationRequest) Interventions() domain.Interventions {
	return domain.Interventions{
		AwarenessCampaign:    r.AwarenessCampaign,
		IncreaseCapacity:     r.IncreaseCapacity,
		ImproveAccessibility: r.ImproveAccessibility,
	}
}
