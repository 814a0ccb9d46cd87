package domain

// Dataset identifies which source ledger a record was imported from.
type Dataset string

const (
	DatasetSales      Dataset = "sales"
	DatasetProduction Dataset = "production"
	DatasetProject    Dataset = "project"
)

// ValidDatasets is the canonical set of accepted dataset strings.
var ValidDatasets = map[string]bool{
	"sales": true, "production": true, "project": true,
}

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

// ViewMode selects which assembler builds the hierarchy.
type ViewMode string

const (
	ViewProduction ViewMode = "production"
	ViewSales      ViewMode = "sales"
	// ViewStandalone shows only sales records that carry no project number.
	ViewStandalone ViewMode = "standalone"
)

var ValidViewModes = map[string]bool{
	"production": true, "sales": true, "standalone": true,
}
