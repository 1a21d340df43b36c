package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/errors"
)

const municipalityColumns = `
	municipio, uf, regiao, tipo, populacao, ubs_count,
	latitude, longitude,
	bcg, dtp, penta, polio, rotavirus,
	triplice_viral_1, triplice_viral_2, varicela`

type municipalityRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewMunicipalityRepository(db *DB) repository.MunicipalityRepository {
	return &municipalityRepository{
		db:     db,
		logger: db.logger,
	}
}

// List returns every municipality ordered by name and state.
func (r *municipalityRepository) List(ctx context.Context) ([]domain.MunicipalityRecord, error) {
	query := `SELECT` + municipalityColumns + `
		FROM municipalities
		ORDER BY municipio, uf`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var records []domain.MunicipalityRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		r.logger.Error("Failed to list municipalities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return records, nil
}

// GetByName looks a municipality up case-insensitively. When the name exists
// in more than one state the most populous row wins.
func (r *municipalityRepository) GetByName(ctx context.Context, municipio string) (*domain.MunicipalityRecord, error) {
	query := `SELECT` + municipalityColumns + `
		FROM municipalities
		WHERE LOWER(municipio) = LOWER($1)
		ORDER BY populacao DESC
		LIMIT 1`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var record domain.MunicipalityRecord
	err := r.db.GetContext(ctx, &record, query, municipio)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("municipality %q not found", municipio)
	}
	if err != nil {
		r.logger.Error("Failed to get municipality",
			zap.String("municipio", municipio),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return &record, nil
}

func (r *municipalityRepository) Meta(ctx context.Context) (*domain.DatasetMeta, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	meta := &domain.DatasetMeta{}

	if err := r.db.SelectContext(ctx, &meta.Regions,
		`SELECT DISTINCT regiao FROM municipalities WHERE regiao <> '' ORDER BY regiao`); err != nil {
		r.logger.Error("Failed to list regions", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.db.SelectContext(ctx, &meta.MunicipalityTypes,
		`SELECT DISTINCT tipo FROM municipalities WHERE tipo <> '' ORDER BY tipo`); err != nil {
		r.logger.Error("Failed to list municipality types", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := r.db.GetContext(ctx, &meta.Municipalities,
		`SELECT COUNT(*) FROM municipalities`); err != nil {
		r.logger.Error("Failed to count municipalities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return meta, nil
}
