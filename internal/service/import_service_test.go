package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avollmer/leitstand/internal/db"
	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/repository"
	"github.com/avollmer/leitstand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productionCSV = "Artikel;Projekt;PA;AG;Sollzeit;Istzeit\n" +
	"A1;P1;W1;10;120;60\n" +
	"A1;P1;W1;20;60;0\n" +
	"A2;P1;W2;10;30;30\n"

const salesCSV = "Lieferschein;Artikel;Projekt;Kunde;Menge\n" +
	"L100;A1;P1;Müller GmbH;2\n" +
	"L101;A2;;Schmidt AG;1\n"

func newImportFixture(t *testing.T) (ImportService, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	return NewImportService(uow), uow
}

func TestImportLedger_Production(t *testing.T) {
	svc, uow := newImportFixture(t)
	ctx := context.Background()

	sum, err := svc.ImportLedger(ctx, ImportRequest{
		Dataset:    domain.DatasetProduction,
		SourceFile: "produktion.csv",
		Reader:     strings.NewReader(productionCSV),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, sum.RowCount)
	assert.Equal(t, 3, sum.Imported)
	assert.Empty(t, sum.Issues)
	assert.Empty(t, sum.UnknownHeaders)
	assert.NotEmpty(t, sum.BatchID)

	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		count, err := repository.NewSQLiteProductionRepo(tx).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		batches, err := repository.NewSQLiteBatchRepo(tx).ListRecent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, sum.BatchID, batches[0].ID)
		assert.Equal(t, "produktion.csv", batches[0].SourceFile)
		assert.Equal(t, 3, batches[0].RowCount)
		return nil
	})
	require.NoError(t, err)
}

func TestImportLedger_Sales(t *testing.T) {
	svc, uow := newImportFixture(t)
	ctx := context.Background()

	sum, err := svc.ImportLedger(ctx, ImportRequest{
		Dataset:    domain.DatasetSales,
		SourceFile: "vertrieb.csv",
		Reader:     strings.NewReader(salesCSV),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, sum.Imported)

	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records, err := repository.NewSQLiteSalesRepo(tx).List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		return nil
	})
	require.NoError(t, err)
}

func TestImportLedger_ReimportIsIdempotent(t *testing.T) {
	svc, uow := newImportFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.ImportLedger(ctx, ImportRequest{
			Dataset: domain.DatasetProduction,
			Reader:  strings.NewReader(productionCSV),
		})
		require.NoError(t, err)
	}

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		count, err := repository.NewSQLiteProductionRepo(tx).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count, "same stable identities must replace, not duplicate")
		return nil
	})
	require.NoError(t, err)
}

func TestImportLedger_ReplaceClearsDataset(t *testing.T) {
	svc, uow := newImportFixture(t)
	ctx := context.Background()

	_, err := svc.ImportLedger(ctx, ImportRequest{
		Dataset: domain.DatasetProduction,
		Reader:  strings.NewReader(productionCSV),
	})
	require.NoError(t, err)

	_, err = svc.ImportLedger(ctx, ImportRequest{
		Dataset: domain.DatasetProduction,
		Reader:  strings.NewReader("Artikel;PA;AG\nA9;W9;10\n"),
		Replace: true,
	})
	require.NoError(t, err)

	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		count, err := repository.NewSQLiteProductionRepo(tx).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		return nil
	})
	require.NoError(t, err)
}

func TestImportLedger_CollectsIssuesButImports(t *testing.T) {
	svc, _ := newImportFixture(t)

	sum, err := svc.ImportLedger(context.Background(), ImportRequest{
		Dataset: domain.DatasetProduction,
		Reader:  strings.NewReader("Artikel;PA\n;W1\nA2;\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, sum.Imported)
	require.Len(t, sum.Issues, 2)
}

func TestImportLedger_RejectsUnknownDataset(t *testing.T) {
	svc, _ := newImportFixture(t)

	_, err := svc.ImportLedger(context.Background(), ImportRequest{
		Dataset: domain.DatasetProject,
		Reader:  strings.NewReader(productionCSV),
	})

	assert.ErrorContains(t, err, "not importable")
}

func TestImportLedger_RollsBackOnStorageFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	svc := NewImportService(&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")})

	_, err := svc.ImportLedger(context.Background(), ImportRequest{
		Dataset: domain.DatasetProduction,
		Reader:  strings.NewReader(productionCSV),
	})
	require.Error(t, err)

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		count, err := repository.NewSQLiteProductionRepo(tx).Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count, "partial import must not persist")
		return nil
	})
	require.NoError(t, err)
}
