package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
)

// seriesRow is one observation in the history file.
type seriesRow struct {
	Municipio string  `json:"municipio"`
	Vaccine   string  `json:"vaccine"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
}

type seriesKey struct {
	municipio string
	vaccine   domain.Vaccine
}

type timeSeriesRepository struct {
	series map[seriesKey][]domain.TimeSeriesPoint
	names  map[string]string
	logger *zap.Logger
}

// NewTimeSeriesRepository loads a JSON array of {municipio, vaccine, date, value}.
// A missing file yields an empty repository.
func NewTimeSeriesRepository(path string, logger *zap.Logger) (repository.TimeSeriesRepository, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn("Coverage history file not found, series will be empty", zap.String("path", path))
		return newTimeSeriesRepository(nil, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("read coverage history %s: %w", path, err)
	}

	var rows []seriesRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode coverage history %s: %w", path, err)
	}

	repo, err := newTimeSeriesRepository(rows, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Coverage history loaded",
		zap.String("path", path),
		zap.Int("observations", len(rows)),
	)
	return repo, nil
}

func newTimeSeriesRepository(rows []seriesRow, logger *zap.Logger) (*timeSeriesRepository, error) {
	repo := &timeSeriesRepository{
		series: make(map[seriesKey][]domain.TimeSeriesPoint),
		names:  make(map[string]string),
		logger: logger,
	}

	for i, row := range rows {
		vaccine, err := domain.ParseVaccine(row.Vaccine)
		if err != nil {
			return nil, fmt.Errorf("coverage history row %d: %w", i, err)
		}
		date, err := domain.ParseSeriesDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("coverage history row %d: %w", i, err)
		}

		name := strings.ToLower(row.Municipio)
		if _, ok := repo.names[name]; !ok {
			repo.names[name] = row.Municipio
		}
		key := seriesKey{municipio: name, vaccine: vaccine}
		repo.series[key] = append(repo.series[key], domain.TimeSeriesPoint{Date: date, Value: row.Value})
	}

	for _, points := range repo.series {
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
	}

	return repo, nil
}

func (r *timeSeriesRepository) GetSeries(ctx context.Context, municipio string, vaccine domain.Vaccine) ([]domain.TimeSeriesPoint, error) {
	points := r.series[seriesKey{municipio: strings.ToLower(municipio), vaccine: vaccine}]
	out := make([]domain.TimeSeriesPoint, len(points))
	copy(out, points)
	return out, nil
}

func (r *timeSeriesRepository) GetSeriesBatch(ctx context.Context, municipios []string, vaccine domain.Vaccine) (map[string][]domain.TimeSeriesPoint, error) {
	result := make(map[string][]domain.TimeSeriesPoint, len(municipios))
	for _, m := range municipios {
		name := strings.ToLower(m)
		points, err := r.GetSeries(ctx, m, vaccine)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			continue
		}
		result[r.names[name]] = points
	}
	return result, nil
}
