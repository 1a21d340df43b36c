package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/repository/postgres/testhelpers"
)

type TimeSeriesRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.TimeSeriesRepository
	ctx    context.Context
}

func (s *TimeSeriesRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	s.Require().NoError(testhelpers.ApplyMigrations(s.testDB.DB, migrationsPath))
	s.Require().NoError(s.testDB.Cleanup(context.Background()))
	s.Require().NoError(testhelpers.LoadFixtures(
		s.testDB.DB.DB,
		fixturesPath,
		[]string{"municipalities.sql", "coverage_history.sql"},
	))

	s.repo = testhelpers.NewTimeSeriesRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *TimeSeriesRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

func (s *TimeSeriesRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *TimeSeriesRepositoryTestSuite) TestGetSeries_OrderedByDate() {
	points, err := s.repo.GetSeries(s.ctx, "campinas", domain.VaccineBCG)

	s.NoError(err)
	s.Require().Len(points, 30)
	s.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), points[0].Date.UTC())
	s.InDelta(80.0, points[0].Value, 1e-9)
	s.InDelta(94.5, points[29].Value, 1e-9)
	for i := 1; i < len(points); i++ {
		s.True(points[i].Date.After(points[i-1].Date))
	}
}

func (s *TimeSeriesRepositoryTestSuite) TestGetSeries_FiltersByVaccine() {
	points, err := s.repo.GetSeries(s.ctx, "Campinas", domain.VaccineDTP)

	s.NoError(err)
	s.Len(points, 6)
}

func (s *TimeSeriesRepositoryTestSuite) TestGetSeries_UnknownMunicipality() {
	points, err := s.repo.GetSeries(s.ctx, "Atlantis", domain.VaccineBCG)

	s.NoError(err)
	s.Empty(points)
}

func (s *TimeSeriesRepositoryTestSuite) TestGetSeriesBatch() {
	series, err := s.repo.GetSeriesBatch(s.ctx, []string{"Campinas", "Santos", "Atlantis"}, domain.VaccineBCG)

	s.NoError(err)
	s.Len(series, 2)
	s.Len(series["Campinas"], 30)
	s.Len(series["Santos"], 12)
	s.InDelta(72.25, series["Santos"][11].Value, 1e-9)
}

func (s *TimeSeriesRepositoryTestSuite) TestGetSeriesBatch_Empty() {
	series, err := s.repo.GetSeriesBatch(s.ctx, nil, domain.VaccineBCG)

	s.NoError(err)
	s.Empty(series)
}

func TestTimeSeriesRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(TimeSeriesRepositoryTestSuite))
}
