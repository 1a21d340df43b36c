package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const migrationsTable = "schema_migrations"

// ApplyMigrations brings the dataset schema up to date. Each *.up.sql file
// runs in its own transaction and is recorded in schema_migrations, so
// suites sharing one database apply it only once.
func ApplyMigrations(db *sqlx.DB, migrationsPath string) error {
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (version TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create %s: %w", migrationsTable, err)
	}

	files, err := migrationFiles(migrationsPath, ".up.sql")
	if err != nil {
		return err
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, `SELECT version FROM `+migrationsTable); err != nil {
		return fmt.Errorf("read %s: %w", migrationsTable, err)
	}
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, file := range files {
		version := strings.TrimSuffix(file, ".up.sql")
		if done[version] {
			continue
		}
		if err := applyFile(ctx, db, filepath.Join(migrationsPath, file), version); err != nil {
			return err
		}
	}

	return nil
}

func applyFile(ctx context.Context, db *sqlx.DB, path, version string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", version, err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("apply migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO `+migrationsTable+` (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}

	return tx.Commit()
}

func migrationFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}
