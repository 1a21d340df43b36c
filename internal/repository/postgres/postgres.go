package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/config"
)

const (
	pingTimeout         = 5 * time.Second
	defaultQueryTimeout = 10 * time.Second
	applicationName     = "coverage-analytics"
)

// DB is the connection pool of the coverage database. Every repository query
// runs under queryTimeout.
type DB struct {
	*sqlx.DB
	logger       *zap.Logger
	queryTimeout time.Duration
}

func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, applicationName,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to coverage database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping coverage database: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
		zap.Duration("query_timeout", cfg.QueryTimeout),
	)

	return wrap(db, logger, cfg.QueryTimeout), nil
}

func wrap(db *sqlx.DB, logger *zap.Logger, queryTimeout time.Duration) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &DB{DB: db, logger: logger, queryTimeout: queryTimeout}
}

// withTimeout bounds a repository query.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.queryTimeout)
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest wraps a connection opened by the test helpers.
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	return wrap(sqlxDB, logger, defaultQueryTimeout)
}
