package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/repository/postgres"
)

func NewMunicipalityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.MunicipalityRepository {
	return postgres.NewMunicipalityRepository(postgres.NewDBForTest(db, logger))
}

func NewTimeSeriesRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TimeSeriesRepository {
	return postgres.NewTimeSeriesRepository(postgres.NewDBForTest(db, logger))
}
