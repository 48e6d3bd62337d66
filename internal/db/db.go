package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"fauna-warden/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func dbPath(dir string) string {
	if dir != "" {
		return filepath.Join(dir, "warden.db")
	}
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "warden.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "warden.db")
}

// Open opens (or creates) the SQLite database in dir and runs migrations.
// An empty dir means the working directory.
func Open(dir string) (*DB, error) {
	path := dbPath(dir)
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS runs (
				id          TEXT PRIMARY KEY,
				created_at  TEXT NOT NULL,
				territory   TEXT NOT NULL,
				source      TEXT NOT NULL,
				total       INTEGER NOT NULL,
				relocated   INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS placements (
				id      INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id  TEXT NOT NULL REFERENCES runs(id),
				name    TEXT NOT NULL,
				habitat TEXT,
				threat  TEXT,
				state   TEXT NOT NULL,
				moved   INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_placements_run ON placements(run_id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("DB", "Applied migration v2 (placements)")
	}

	return nil
}
