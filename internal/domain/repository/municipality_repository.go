package repository

import (
	"context"

	"github.com/coverage-analytics/internal/domain"
)

// MunicipalityRepository provides the municipal vaccination dataset.
type MunicipalityRepository interface {
	// List returns every record of the dataset in source order.
	List(ctx context.Context) ([]domain.MunicipalityRecord, error)

	// GetByName returns a single municipality (case-insensitive match).
	GetByName(ctx context.Context, municipio string) (*domain.MunicipalityRecord, error)

	// Meta returns the distinct regions and municipality types, sorted.
	Meta(ctx context.Context) (*domain.DatasetMeta, error)
}

// TimeSeriesRepository provides historical coverage observations.
type TimeSeriesRepository interface {
	// GetSeries returns the series of one municipality/vaccine ordered by date.
	GetSeries(ctx context.Context, municipio string, vaccine domain.Vaccine) ([]domain.TimeSeriesPoint, error)

	// GetSeriesBatch returns series for several municipalities keyed by municipio.
	GetSeriesBatch(ctx context.Context, municipios []string, vaccine domain.Vaccine) (map[string][]domain.TimeSeriesPoint, error)
}
