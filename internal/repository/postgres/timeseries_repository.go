package postgres

import (
	"context"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/errors"
)

type timeSeriesRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewTimeSeriesRepository(db *DB) repository.TimeSeriesRepository {
	return &timeSeriesRepository{
		db:     db,
		logger: db.logger,
	}
}

// GetSeries returns the coverage history of one municipality ordered by date.
// An unknown municipality yields an empty series, not an error.
func (r *timeSeriesRepository) GetSeries(ctx context.Context, municipio string, vaccine domain.Vaccine) ([]domain.TimeSeriesPoint, error) {
	query := `
		SELECT observed_at, value
		FROM coverage_history
		WHERE LOWER(municipio) = LOWER($1) AND vaccine = $2
		ORDER BY observed_at`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var points []domain.TimeSeriesPoint
	if err := r.db.SelectContext(ctx, &points, query, municipio, vaccine.String()); err != nil {
		r.logger.Error("Failed to get coverage series",
			zap.String("municipio", municipio),
			zap.String("vaccine", vaccine.String()),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return points, nil
}

type seriesRow struct {
	Municipio string `db:"municipio"`
	domain.TimeSeriesPoint
}

// GetSeriesBatch loads several series in one round trip. Keys of the result
// are the names as stored in the database.
func (r *timeSeriesRepository) GetSeriesBatch(ctx context.Context, municipios []string, vaccine domain.Vaccine) (map[string][]domain.TimeSeriesPoint, error) {
	result := make(map[string][]domain.TimeSeriesPoint, len(municipios))
	if len(municipios) == 0 {
		return result, nil
	}

	query := `
		SELECT municipio, observed_at, value
		FROM coverage_history
		WHERE municipio = ANY($1) AND vaccine = $2
		ORDER BY municipio, observed_at`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rows []seriesRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(municipios), vaccine.String()); err != nil {
		r.logger.Error("Failed to get coverage series batch",
			zap.Int("municipios", len(municipios)),
			zap.String("vaccine", vaccine.String()),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	for _, row := range rows {
		result[row.Municipio] = append(result[row.Municipio], row.TimeSeriesPoint)
	}

	return result, nil
}
