package service

import (
	"context"
	"io"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/importer"
	"github.com/avollmer/leitstand/internal/repository"
)

// OverviewRequest selects which hierarchy to assemble and how to trim it.
type OverviewRequest struct {
	View          domain.ViewMode
	Project       string // restrict to one project; empty means all
	HideCompleted bool
	Now           *time.Time // defaults to time.Now().UTC()
}

// Statistics summarizes one assembled overview.
type Statistics struct {
	SalesPositions    int
	ProductionRecords int
	WithProduction    int // sales articles backed by production subtrees
	WithoutProduction int // sales articles that only got a placeholder
	HiddenCompleted   int // roots removed by the completed filter
	PlannedHours      float64
	ActualHours       float64
	RiskCounts        map[domain.RiskLevel]int
}

// Overview is an assembled hierarchy plus its statistics.
type Overview struct {
	View  domain.ViewMode
	Roots []*hierarchy.Node
	Stats Statistics
}

// StatusReport describes the current database contents.
type StatusReport struct {
	SalesCount      int
	ProductionCount int
	RecentBatches   []*repository.ImportBatch
}

type OverviewService interface {
	BuildOverview(ctx context.Context, req OverviewRequest) (*Overview, error)
	GetStatus(ctx context.Context) (*StatusReport, error)
}

// ImportRequest describes one ledger file to ingest.
type ImportRequest struct {
	Dataset    domain.Dataset
	SourceFile string // display name recorded with the batch
	Reader     io.Reader
	Replace    bool // wipe the dataset before loading
}

// ImportSummary is the outcome of one import run.
type ImportSummary struct {
	BatchID        string
	Dataset        domain.Dataset
	RowCount       int
	Imported       int
	UnknownHeaders []string
	Issues         []importer.Issue
}

type ImportService interface {
	ImportLedger(ctx context.Context, req ImportRequest) (*ImportSummary, error)
}
