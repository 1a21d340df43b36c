package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/coverage-analytics/internal/analytics"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Dataset   DatasetConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled      bool
	AnalyticsTTL time.Duration
	DatasetTTL   time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	ConsumerName      string
	StreamReadTimeout time.Duration
	MaxRetries        int
	BatchSize         int
}

// Dataset sources
const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

type DatasetConfig struct {
	Source     string
	Path       string
	SeriesPath string
}

// AnalyticsConfig carries the calibration knobs of the analytics engine.
type AnalyticsConfig struct {
	Params analytics.Params
}

// Load reads .env from the working directory (if present) and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads configuration from an optional env file plus environment
// variables. Every key has a default, so a missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			QueryTimeout:    time.Duration(v.GetInt("DB_QUERY_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:      v.GetBool("CACHE_ENABLED"),
			AnalyticsTTL: time.Duration(v.GetInt("ANALYTICS_CACHE_TTL")) * time.Second,
			DatasetTTL:   time.Duration(v.GetInt("DATASET_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			ConsumerName:      v.GetString("WORKER_CONSUMER_NAME"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
		},
		Dataset: DatasetConfig{
			Source:     strings.ToLower(v.GetString("DATASET_SOURCE")),
			Path:       v.GetString("DATASET_PATH"),
			SeriesPath: v.GetString("DATASET_SERIES_PATH"),
		},
		Analytics: AnalyticsConfig{
			Params: analyticsParams(v),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "coverage")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_QUERY_TIMEOUT", 10)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("ANALYTICS_CACHE_TTL", 600)
	v.SetDefault("DATASET_CACHE_TTL", 3600)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "analytics-forecast-workers")
	v.SetDefault("WORKER_CONSUMER_NAME", "")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_BATCH_SIZE", 10)

	v.SetDefault("DATASET_SOURCE", DatasetSourceFile)
	v.SetDefault("DATASET_PATH", "data/municipalities.json")
	v.SetDefault("DATASET_SERIES_PATH", "data/coverage_history.json")

	d := analytics.DefaultParams()
	v.SetDefault("CLUSTER_EPSILON_KM", d.Cluster.EpsilonKm)
	v.SetDefault("CLUSTER_MIN_POINTS", d.Cluster.MinPoints)
	v.SetDefault("CLUSTER_MAX_CLUSTERS", d.Cluster.MaxClusters)
	v.SetDefault("CLUSTER_COVERAGE_THRESHOLD", d.Cluster.CoverageThreshold)

	v.SetDefault("EFFICIENCY_MIN_UBS", d.Efficiency.MinUBS)
	v.SetDefault("EFFICIENCY_POPULATION_FACTOR", d.Efficiency.PopulationFactor)
	v.SetDefault("EFFICIENCY_UBS_CEILING", d.Efficiency.UBSCeiling)
	v.SetDefault("EFFICIENCY_RESCALE", d.Efficiency.Rescale)
	v.SetDefault("EFFICIENCY_RESOURCE_FLOOR", d.Efficiency.ResourceFloor)
	v.SetDefault("EFFICIENCY_HIGH_THRESHOLD", d.Efficiency.HighThreshold)
	v.SetDefault("EFFICIENCY_MEDIUM_THRESHOLD", d.Efficiency.MediumThreshold)
	v.SetDefault("EFFICIENCY_LOW_THRESHOLD", d.Efficiency.LowThreshold)

	v.SetDefault("SIMILARITY_THRESHOLD", d.Similarity.Threshold)
	v.SetDefault("SIMILARITY_MAX_RESULTS", d.Similarity.MaxResults)

	v.SetDefault("TEMPORAL_MIN_DATA_POINTS", d.Temporal.MinDataPoints)
	v.SetDefault("TEMPORAL_SEASONALITY_PERIOD", d.Temporal.SeasonalityPeriod)
	v.SetDefault("TEMPORAL_SEASONALITY_THRESHOLD", d.Temporal.SeasonalityThreshold)
	v.SetDefault("TEMPORAL_MOVING_AVERAGE_WINDOW", d.Temporal.MovingAverageWindow)
	v.SetDefault("TEMPORAL_FORECAST_HORIZON", d.Temporal.ForecastHorizon)
	v.SetDefault("TEMPORAL_CONFIDENCE_LEVEL", d.Temporal.ConfidenceLevel)

	v.SetDefault("SIMULATION_STEPS", d.Simulation.Steps)
	v.SetDefault("QUERY_MAX_FILTERS", d.Query.MaxFilters)
	v.SetDefault("QUERY_MAX_DISPLAY_FIELDS", d.Query.MaxDisplayFields)
	v.SetDefault("QUERY_DEFAULT_LIMIT", d.Query.DefaultLimit)
}

func analyticsParams(v *viper.Viper) analytics.Params {
	p := analytics.DefaultParams()

	p.Cluster.EpsilonKm = v.GetFloat64("CLUSTER_EPSILON_KM")
	p.Cluster.MinPoints = v.GetInt("CLUSTER_MIN_POINTS")
	p.Cluster.MaxClusters = v.GetInt("CLUSTER_MAX_CLUSTERS")
	p.Cluster.CoverageThreshold = v.GetFloat64("CLUSTER_COVERAGE_THRESHOLD")

	p.Efficiency.MinUBS = v.GetInt("EFFICIENCY_MIN_UBS")
	p.Efficiency.PopulationFactor = v.GetFloat64("EFFICIENCY_POPULATION_FACTOR")
	p.Efficiency.UBSCeiling = v.GetFloat64("EFFICIENCY_UBS_CEILING")
	p.Efficiency.Rescale = v.GetFloat64("EFFICIENCY_RESCALE")
	p.Efficiency.ResourceFloor = v.GetFloat64("EFFICIENCY_RESOURCE_FLOOR")
	p.Efficiency.HighThreshold = v.GetFloat64("EFFICIENCY_HIGH_THRESHOLD")
	p.Efficiency.MediumThreshold = v.GetFloat64("EFFICIENCY_MEDIUM_THRESHOLD")
	p.Efficiency.LowThreshold = v.GetFloat64("EFFICIENCY_LOW_THRESHOLD")

	p.Similarity.Threshold = v.GetFloat64("SIMILARITY_THRESHOLD")
	p.Similarity.MaxResults = v.GetInt("SIMILARITY_MAX_RESULTS")

	p.Temporal.MinDataPoints = v.GetInt("TEMPORAL_MIN_DATA_POINTS")
	p.Temporal.SeasonalityPeriod = v.GetInt("TEMPORAL_SEASONALITY_PERIOD")
	p.Temporal.SeasonalityThreshold = v.GetFloat64("TEMPORAL_SEASONALITY_THRESHOLD")
	p.Temporal.MovingAverageWindow = v.GetInt("TEMPORAL_MOVING_AVERAGE_WINDOW")
	p.Temporal.ForecastHorizon = v.GetInt("TEMPORAL_FORECAST_HORIZON")
	p.Temporal.ConfidenceLevel = v.GetFloat64("TEMPORAL_CONFIDENCE_LEVEL")

	p.Simulation.Steps = v.GetInt("SIMULATION_STEPS")

	p.Query.MaxFilters = v.GetInt("QUERY_MAX_FILTERS")
	p.Query.MaxDisplayFields = v.GetInt("QUERY_MAX_DISPLAY_FIELDS")
	p.Query.DefaultLimit = v.GetInt("QUERY_DEFAULT_LIMIT")

	return p
}

func (c *Config) validate() error {
	switch c.Dataset.Source {
	case DatasetSourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=%s", DatasetSourceFile)
		}
	case DatasetSourcePostgres:
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.Dataset.Source)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
