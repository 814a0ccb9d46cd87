package repository

import (
	"context"
	"fmt"

	"github.com/avollmer/leitstand/internal/db"
	"github.com/avollmer/leitstand/internal/domain"
)

// SQLiteBatchRepo implements BatchRepo on a SQLite database.
type SQLiteBatchRepo struct {
	db db.DBTX
}

// NewSQLiteBatchRepo creates a new SQLiteBatchRepo.
func NewSQLiteBatchRepo(dbtx db.DBTX) *SQLiteBatchRepo {
	return &SQLiteBatchRepo{db: dbtx}
}

func (r *SQLiteBatchRepo) Create(ctx context.Context, b *ImportBatch) error {
	if b.ImportedAt == "" {
		b.ImportedAt = nowUTC()
	}
	query := `INSERT INTO import_batches (id, dataset, source_file, row_count, issue_count, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, string(b.Dataset), b.SourceFile, b.RowCount, b.IssueCount, b.ImportedAt)
	if err != nil {
		return fmt.Errorf("inserting import batch: %w", err)
	}
	return nil
}

func (r *SQLiteBatchRepo) ListRecent(ctx context.Context, limit int) ([]*ImportBatch, error) {
	query := `SELECT id, dataset, source_file, row_count, issue_count, imported_at
		FROM import_batches ORDER BY imported_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing import batches: %w", err)
	}
	defer rows.Close()

	var out []*ImportBatch
	for rows.Next() {
		var b ImportBatch
		var dataset string
		if err := rows.Scan(&b.ID, &dataset, &b.SourceFile, &b.RowCount, &b.IssueCount, &b.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning import batch: %w", err)
		}
		b.Dataset = domain.Dataset(dataset)
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import batches: %w", err)
	}
	return out, nil
}
