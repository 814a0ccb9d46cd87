package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/repository"
	"github.com/avollmer/leitstand/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesRepo_UpsertAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSalesRepo(database)
	ctx := context.Background()

	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	rec := testutil.NewSalesRecord("A1", "P1", "L100", 5,
		testutil.WithCustomer("Müller GmbH"),
		testutil.WithDeliveryDate(due),
	)

	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Müller GmbH", got.Customer)
	assert.Equal(t, 5.0, got.Quantity)
	require.NotNil(t, got.DeliveryDate)
	assert.Equal(t, "2026-04-15", got.DeliveryDate.Format("2006-01-02"))
}

func TestSalesRepo_UpsertReplacesSameIdentity(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSalesRepo(database)
	ctx := context.Background()

	first := testutil.NewSalesRecord("A1", "P1", "L100", 5)
	require.NoError(t, repo.Upsert(ctx, first))

	second := testutil.NewSalesRecord("A1", "P1", "L100", 5, testutil.WithCustomer("Neuer Kunde"))
	require.Equal(t, first.ID, second.ID)
	require.NoError(t, repo.Upsert(ctx, second))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neuer Kunde", got.Customer)
}

func TestSalesRepo_List_OrderedByProjectArticle(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSalesRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewSalesRecord("A2", "P2", "L3", 1)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewSalesRecord("A1", "P1", "L1", 1)))
	require.NoError(t, repo.Upsert(ctx, testutil.NewSalesRecord("A2", "P1", "L2", 1)))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "L1", got[0].DeliveryNo)
	assert.Equal(t, "L2", got[1].DeliveryNo)
	assert.Equal(t, "L3", got[2].DeliveryNo)
}

func TestBatchRepo_CreateAndListRecent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteBatchRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &repository.ImportBatch{
		ID: "b1", Dataset: domain.DatasetSales, SourceFile: "sales.csv", RowCount: 10,
		ImportedAt: "2026-01-01T10:00:00Z",
	}))
	require.NoError(t, repo.Create(ctx, &repository.ImportBatch{
		ID: "b2", Dataset: domain.DatasetProduction, SourceFile: "prod.csv", RowCount: 20, IssueCount: 2,
		ImportedAt: "2026-01-02T10:00:00Z",
	}))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[0].ID, "most recent first")
	assert.Equal(t, domain.DatasetProduction, got[0].Dataset)
	assert.Equal(t, 2, got[0].IssueCount)
}
