package repository

import (
	"context"

	"github.com/avollmer/leitstand/internal/domain"
)

// ImportBatch records one completed import run for audit and statistics.
type ImportBatch struct {
	ID         string
	Dataset    domain.Dataset
	SourceFile string
	RowCount   int
	IssueCount int
	ImportedAt string
}

type SalesRepo interface {
	// Upsert inserts the record or fully replaces the row with the same
	// stable identifier. Re-importing a source file is therefore
	// idempotent.
	Upsert(ctx context.Context, r *domain.SalesRecord) error
	GetByID(ctx context.Context, id string) (*domain.SalesRecord, error)
	List(ctx context.Context) ([]*domain.SalesRecord, error)
	ListByProject(ctx context.Context, project string) ([]*domain.SalesRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ProductionRepo interface {
	Upsert(ctx context.Context, r *domain.ProductionRecord) error
	GetByID(ctx context.Context, id string) (*domain.ProductionRecord, error)
	List(ctx context.Context) ([]*domain.ProductionRecord, error)
	ListByProject(ctx context.Context, project string) ([]*domain.ProductionRecord, error)
	ListByArticle(ctx context.Context, article string) ([]*domain.ProductionRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type BatchRepo interface {
	Create(ctx context.Context, b *ImportBatch) error
	ListRecent(ctx context.Context, limit int) ([]*ImportBatch, error)
}
