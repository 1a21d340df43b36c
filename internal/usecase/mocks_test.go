package usecase_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/coverage-analytics/internal/domain"
)

type MockMunicipalityRepository struct {
	mock.Mock
}

func (m *MockMunicipalityRepository) List(ctx context.Context) ([]domain.MunicipalityRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MunicipalityRecord), args.Error(1)
}

func (m *MockMunicipalityRepository) GetByName(ctx context.Context, municipio string) (*domain.MunicipalityRecord, error) {
	args := m.Called(ctx, municipio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MunicipalityRecord), args.Error(1)
}

func (m *MockMunicipalityRepository) Meta(ctx context.Context) (*domain.DatasetMeta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DatasetMeta), args.Error(1)
}

type MockTimeSeriesRepository struct {
	mock.Mock
}

func (m *MockTimeSeriesRepository) GetSeries(ctx context.Context, municipio string, vaccine domain.Vaccine) ([]domain.TimeSeriesPoint, error) {
	args := m.Called(ctx, municipio, vaccine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSeriesPoint), args.Error(1)
}

func (m *MockTimeSeriesRepository) GetSeriesBatch(ctx context.Context, municipios []string, vaccine domain.Vaccine) (map[string][]domain.TimeSeriesPoint, error) {
	args := m.Called(ctx, municipios, vaccine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.TimeSeriesPoint), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// fillJSON makes a GetJSON expectation decode v into the destination.
func fillJSON(v interface{}) func(mock.Arguments) {
	return func(args mock.Arguments) {
		raw, _ := json.Marshal(v)
		_ = json.Unmarshal(raw, args.Get(2))
	}
}

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

func f64(v float64) *float64 {
	return &v
}

// testRecords is a small dataset: five low-coverage neighbours around São
// Paulo, a distant low-coverage municipality and a well-covered capital
// without coordinates.
func testRecords() []domain.MunicipalityRecord {
	rec := func(name, uf, regiao, tipo string, pop, ubs int, lat, lon *float64, cov float64) domain.MunicipalityRecord {
		return domain.MunicipalityRecord{
			Municipio: name, UF: uf, Regiao: regiao, Tipo: tipo,
			Populacao: pop, UBSCount: ubs, Latitude: lat, Longitude: lon,
			BCG: cov, DTP: cov, Penta: cov, Polio: cov, Rotavirus: cov,
			TripleViral1: cov, TripleViral2: cov, Varicela: cov,
		}
	}
	return []domain.MunicipalityRecord{
		rec("Osasco", "SP", "Sudeste", "Urbano", 700000, 40, f64(-23.55), f64(-46.63), 70),
		rec("Diadema", "SP", "Sudeste", "Urbano", 420000, 25, f64(-23.60), f64(-46.60), 72),
		rec("Barueri", "SP", "Sudeste", "Urbano", 270000, 15, f64(-23.50), f64(-46.70), 74),
		rec("Maua", "SP", "Sudeste", "Urbano", 470000, 22, f64(-23.65), f64(-46.55), 76),
		rec("Caieiras", "SP", "Sudeste", "Urbano", 100000, 8, f64(-23.45), f64(-46.65), 78),
		rec("Parintins", "AM", "Norte", "Rural", 115000, 14, f64(-2.63), f64(-56.74), 60),
		rec("Manaus", "AM", "Norte", "Metropolitano", 2255903, 120, nil, nil, 95),
	}
}

// linearSeries is n monthly points starting at 2020-01 rising 0.5 per month.
func linearSeries(n int) []domain.TimeSeriesPoint {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.TimeSeriesPoint, n)
	for i := range points {
		points[i] = domain.TimeSeriesPoint{Date: start.AddDate(0, i, 0), Value: 70 + 0.5*float64(i)}
	}
	return points
}
