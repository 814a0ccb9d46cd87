package domain

import "time"

// SalesRecord is one row of the sales/delivery ledger. Records are immutable
// once stored; re-importing the same logical row replaces it wholesale via
// its stable ID.
type SalesRecord struct {
	ID         string // stable identity, see internal/identity
	DeliveryNo string
	Article    string
	Project    string
	Customer   string
	Quantity   float64

	RequestedDate *time.Time
	ConfirmedDate *time.Time
	DeliveryDate  *time.Time

	Status string

	ImportedAt time.Time
}

// ProductionRecord is one row of the production/work-order ledger.
type ProductionRecord struct {
	ID              string // stable identity
	Article         string
	Project         string
	WorkOrder       string
	ParentWorkOrder string
	Operation       string
	OperationName   string

	PlannedMin int
	ActualMin  int

	PlannedCost float64
	ActualCost  float64

	// CompletionPct is 0..100 as reported by the ledger.
	CompletionPct float64

	Status string
	Active bool

	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	ImportedAt time.Time
}
