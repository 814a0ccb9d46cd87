package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avollmer/leitstand/internal/db"
	"github.com/avollmer/leitstand/internal/domain"
)

// salesColumns is the canonical SELECT column list for sales_records.
const salesColumns = `id, delivery_no, article, project, customer, quantity,
		requested_date, confirmed_date, delivery_date, status, imported_at`

// SQLiteSalesRepo implements SalesRepo on a SQLite database.
type SQLiteSalesRepo struct {
	db db.DBTX
}

// NewSQLiteSalesRepo creates a new SQLiteSalesRepo.
func NewSQLiteSalesRepo(dbtx db.DBTX) *SQLiteSalesRepo {
	return &SQLiteSalesRepo{db: dbtx}
}

func (r *SQLiteSalesRepo) Upsert(ctx context.Context, s *domain.SalesRecord) error {
	query := `INSERT INTO sales_records (` + salesColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			delivery_no = excluded.delivery_no,
			article = excluded.article,
			project = excluded.project,
			customer = excluded.customer,
			quantity = excluded.quantity,
			requested_date = excluded.requested_date,
			confirmed_date = excluded.confirmed_date,
			delivery_date = excluded.delivery_date,
			status = excluded.status,
			imported_at = excluded.imported_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.DeliveryNo,
		s.Article,
		s.Project,
		s.Customer,
		s.Quantity,
		nullableTimeToString(s.RequestedDate, dateLayout),
		nullableTimeToString(s.ConfirmedDate, dateLayout),
		nullableTimeToString(s.DeliveryDate, dateLayout),
		s.Status,
		s.ImportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting sales record: %w", err)
	}
	return nil
}

func (r *SQLiteSalesRepo) GetByID(ctx context.Context, id string) (*domain.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records WHERE id = ?`
	return r.scanSalesRecord(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSalesRepo) List(ctx context.Context) ([]*domain.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records ORDER BY project, article, delivery_no`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sales records: %w", err)
	}
	defer rows.Close()
	return r.scanSalesRecords(rows)
}

func (r *SQLiteSalesRepo) ListByProject(ctx context.Context, project string) ([]*domain.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales_records WHERE project = ? COLLATE NOCASE
		ORDER BY article, delivery_no`
	rows, err := r.db.QueryContext(ctx, query, project)
	if err != nil {
		return nil, fmt.Errorf("listing sales records by project: %w", err)
	}
	defer rows.Close()
	return r.scanSalesRecords(rows)
}

func (r *SQLiteSalesRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sales records: %w", err)
	}
	return n, nil
}

func (r *SQLiteSalesRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sales_records`); err != nil {
		return fmt.Errorf("deleting sales records: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSalesRepo) scanSalesRecord(row rowScanner) (*domain.SalesRecord, error) {
	var s domain.SalesRecord
	var requested, confirmed, delivery sql.NullString
	var importedAt string

	err := row.Scan(
		&s.ID,
		&s.DeliveryNo,
		&s.Article,
		&s.Project,
		&s.Customer,
		&s.Quantity,
		&requested,
		&confirmed,
		&delivery,
		&s.Status,
		&importedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sales record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning sales record: %w", err)
	}

	s.RequestedDate = parseNullableTime(requested, dateLayout)
	s.ConfirmedDate = parseNullableTime(confirmed, dateLayout)
	s.DeliveryDate = parseNullableTime(delivery, dateLayout)
	if t, err := time.Parse(time.RFC3339, importedAt); err == nil {
		s.ImportedAt = t
	}
	return &s, nil
}

func (r *SQLiteSalesRepo) scanSalesRecords(rows *sql.Rows) ([]*domain.SalesRecord, error) {
	var out []*domain.SalesRecord
	for rows.Next() {
		s, err := r.scanSalesRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales records: %w", err)
	}
	return out, nil
}
