package testutil

import (
	"database/sql"
	"testing"

	"github.com/avollmer/leitstand/internal/db"
)

// NewTestDB creates an in-memory ledger database with the full schema
// applied, closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork over the test database, for exercising
// transactional import paths.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
