// internal/common/database/sqlite.go
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"consultation-workers/internal/common/config"

	_ "modernc.org/sqlite"
)

// NewSQLite opens a local catalog database. The parent directory is created if needed.
func NewSQLite(cfg config.SQLiteConfig) (*SQLClient, error) {
	dsn := cfg.Path
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// modernc sqlite serializes writers; one connection keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	return &SQLClient{DB: db, Driver: DriverSQLite}, nil
}
