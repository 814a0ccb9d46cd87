package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sales_records (
		id             TEXT PRIMARY KEY,
		delivery_no    TEXT NOT NULL DEFAULT '',
		article        TEXT NOT NULL DEFAULT '',
		project        TEXT NOT NULL DEFAULT '',
		customer       TEXT NOT NULL DEFAULT '',
		quantity       REAL NOT NULL DEFAULT 0,
		requested_date TEXT,
		confirmed_date TEXT,
		delivery_date  TEXT,
		status         TEXT NOT NULL DEFAULT '',
		imported_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sales_project ON sales_records(project)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_article ON sales_records(article)`,

	`CREATE TABLE IF NOT EXISTS production_records (
		id                TEXT PRIMARY KEY,
		article           TEXT NOT NULL DEFAULT '',
		project           TEXT NOT NULL DEFAULT '',
		work_order        TEXT NOT NULL DEFAULT '',
		parent_work_order TEXT NOT NULL DEFAULT '',
		operation         TEXT NOT NULL DEFAULT '',
		operation_name    TEXT NOT NULL DEFAULT '',
		planned_min       INTEGER NOT NULL DEFAULT 0,
		actual_min        INTEGER NOT NULL DEFAULT 0,
		planned_cost      REAL NOT NULL DEFAULT 0,
		actual_cost       REAL NOT NULL DEFAULT 0,
		completion_pct    REAL NOT NULL DEFAULT 0,
		status            TEXT NOT NULL DEFAULT '',
		active            INTEGER NOT NULL DEFAULT 1,
		planned_start     TEXT,
		planned_end       TEXT,
		actual_start      TEXT,
		actual_end        TEXT,
		imported_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_production_project ON production_records(project)`,
	`CREATE INDEX IF NOT EXISTS idx_production_article ON production_records(article)`,
	`CREATE INDEX IF NOT EXISTS idx_production_parent ON production_records(parent_work_order)`,

	`CREATE TABLE IF NOT EXISTS import_batches (
		id          TEXT PRIMARY KEY,
		dataset     TEXT NOT NULL CHECK(dataset IN ('sales','production','project')),
		source_file TEXT NOT NULL DEFAULT '',
		row_count   INTEGER NOT NULL DEFAULT 0,
		issue_count INTEGER NOT NULL DEFAULT 0,
		imported_at TEXT NOT NULL
	)`,
}
