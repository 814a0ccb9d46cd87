package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avollmer/leitstand/internal/db"
	"github.com/avollmer/leitstand/internal/domain"
)

// productionColumns is the canonical SELECT column list for production_records.
const productionColumns = `id, article, project, work_order, parent_work_order,
		operation, operation_name, planned_min, actual_min, planned_cost, actual_cost,
		completion_pct, status, active, planned_start, planned_end, actual_start,
		actual_end, imported_at`

// SQLiteProductionRepo implements ProductionRepo on a SQLite database.
type SQLiteProductionRepo struct {
	db db.DBTX
}

// NewSQLiteProductionRepo creates a new SQLiteProductionRepo.
func NewSQLiteProductionRepo(dbtx db.DBTX) *SQLiteProductionRepo {
	return &SQLiteProductionRepo{db: dbtx}
}

func (r *SQLiteProductionRepo) Upsert(ctx context.Context, p *domain.ProductionRecord) error {
	query := `INSERT INTO production_records (` + productionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			article = excluded.article,
			project = excluded.project,
			work_order = excluded.work_order,
			parent_work_order = excluded.parent_work_order,
			operation = excluded.operation,
			operation_name = excluded.operation_name,
			planned_min = excluded.planned_min,
			actual_min = excluded.actual_min,
			planned_cost = excluded.planned_cost,
			actual_cost = excluded.actual_cost,
			completion_pct = excluded.completion_pct,
			status = excluded.status,
			active = excluded.active,
			planned_start = excluded.planned_start,
			planned_end = excluded.planned_end,
			actual_start = excluded.actual_start,
			actual_end = excluded.actual_end,
			imported_at = excluded.imported_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Article,
		p.Project,
		p.WorkOrder,
		p.ParentWorkOrder,
		p.Operation,
		p.OperationName,
		p.PlannedMin,
		p.ActualMin,
		p.PlannedCost,
		p.ActualCost,
		p.CompletionPct,
		p.Status,
		boolToInt(p.Active),
		nullableTimeToString(p.PlannedStart, dateLayout),
		nullableTimeToString(p.PlannedEnd, dateLayout),
		nullableTimeToString(p.ActualStart, dateLayout),
		nullableTimeToString(p.ActualEnd, dateLayout),
		p.ImportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting production record: %w", err)
	}
	return nil
}

func (r *SQLiteProductionRepo) GetByID(ctx context.Context, id string) (*domain.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records WHERE id = ?`
	return r.scanProductionRecord(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProductionRepo) List(ctx context.Context) ([]*domain.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records
		ORDER BY project, article, work_order, operation`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing production records: %w", err)
	}
	defer rows.Close()
	return r.scanProductionRecords(rows)
}

func (r *SQLiteProductionRepo) ListByProject(ctx context.Context, project string) ([]*domain.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records
		WHERE project = ? COLLATE NOCASE
		ORDER BY article, work_order, operation`
	rows, err := r.db.QueryContext(ctx, query, project)
	if err != nil {
		return nil, fmt.Errorf("listing production records by project: %w", err)
	}
	defer rows.Close()
	return r.scanProductionRecords(rows)
}

func (r *SQLiteProductionRepo) ListByArticle(ctx context.Context, article string) ([]*domain.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records
		WHERE article = ? COLLATE NOCASE
		ORDER BY work_order, operation`
	rows, err := r.db.QueryContext(ctx, query, article)
	if err != nil {
		return nil, fmt.Errorf("listing production records by article: %w", err)
	}
	defer rows.Close()
	return r.scanProductionRecords(rows)
}

func (r *SQLiteProductionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM production_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting production records: %w", err)
	}
	return n, nil
}

func (r *SQLiteProductionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM production_records`); err != nil {
		return fmt.Errorf("deleting production records: %w", err)
	}
	return nil
}

func (r *SQLiteProductionRepo) scanProductionRecord(row rowScanner) (*domain.ProductionRecord, error) {
	var p domain.ProductionRecord
	var active int
	var plannedStart, plannedEnd, actualStart, actualEnd sql.NullString
	var importedAt string

	err := row.Scan(
		&p.ID,
		&p.Article,
		&p.Project,
		&p.WorkOrder,
		&p.ParentWorkOrder,
		&p.Operation,
		&p.OperationName,
		&p.PlannedMin,
		&p.ActualMin,
		&p.PlannedCost,
		&p.ActualCost,
		&p.CompletionPct,
		&p.Status,
		&active,
		&plannedStart,
		&plannedEnd,
		&actualStart,
		&actualEnd,
		&importedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("production record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning production record: %w", err)
	}

	p.Active = intToBool(active)
	p.PlannedStart = parseNullableTime(plannedStart, dateLayout)
	p.PlannedEnd = parseNullableTime(plannedEnd, dateLayout)
	p.ActualStart = parseNullableTime(actualStart, dateLayout)
	p.ActualEnd = parseNullableTime(actualEnd, dateLayout)
	if t, err := time.Parse(time.RFC3339, importedAt); err == nil {
		p.ImportedAt = t
	}
	return &p, nil
}

func (r *SQLiteProductionRepo) scanProductionRecords(rows *sql.Rows) ([]*domain.ProductionRecord, error) {
	var out []*domain.ProductionRecord
	for rows.Next() {
		p, err := r.scanProductionRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating production records: %w", err)
	}
	return out, nil
}
