package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avollmer/leitstand/internal/db"
	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/importer"
	"github.com/avollmer/leitstand/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow db.UnitOfWork
	obs UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, obs: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportLedger(ctx context.Context, req ImportRequest) (sum *ImportSummary, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.obs, "import_ledger", started, err, map[string]any{
			"dataset": string(req.Dataset),
			"source":  req.SourceFile,
		})
	}()

	if req.Dataset != domain.DatasetSales && req.Dataset != domain.DatasetProduction {
		return nil, fmt.Errorf("dataset %q is not importable", req.Dataset)
	}

	rows, unknown, err := importer.ReadRows(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", req.SourceFile, err)
	}
	issues := importer.ValidateRows(req.Dataset, rows)

	now := time.Now().UTC()
	summary := &ImportSummary{
		BatchID:        uuid.New().String(),
		Dataset:        req.Dataset,
		RowCount:       len(rows),
		UnknownHeaders: unknown,
		Issues:         issues,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		switch req.Dataset {
		case domain.DatasetSales:
			repo := repository.NewSQLiteSalesRepo(tx)
			if req.Replace {
				if err := repo.DeleteAll(ctx); err != nil {
					return fmt.Errorf("clearing sales records: %w", err)
				}
			}
			for _, r := range importer.ConvertSales(rows, now) {
				if err := repo.Upsert(ctx, r); err != nil {
					return fmt.Errorf("storing sales record %s: %w", r.ID, err)
				}
				summary.Imported++
			}
		case domain.DatasetProduction:
			repo := repository.NewSQLiteProductionRepo(tx)
			if req.Replace {
				if err := repo.DeleteAll(ctx); err != nil {
					return fmt.Errorf("clearing production records: %w", err)
				}
			}
			for _, r := range importer.ConvertProduction(rows, now) {
				if err := repo.Upsert(ctx, r); err != nil {
					return fmt.Errorf("storing production record %s: %w", r.ID, err)
				}
				summary.Imported++
			}
		}

		return repository.NewSQLiteBatchRepo(tx).Create(ctx, &repository.ImportBatch{
			ID:         summary.BatchID,
			Dataset:    req.Dataset,
			SourceFile: req.SourceFile,
			RowCount:   summary.RowCount,
			IssueCount: len(issues),
		})
	})
	if err != nil {
		summary.Imported = 0
		return nil, err
	}

	return summary, nil
}
