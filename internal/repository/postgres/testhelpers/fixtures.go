package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures executes SQL fixture files in the given order.
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(fixturesPath, file))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// CountRows returns the number of rows in a dataset table.
func CountRows(db *sql.DB, table string) (int, error) {
	var n int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
