package testutil

import (
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/identity"
)

// ProductionOption mutates a fixture production record.
type ProductionOption func(*domain.ProductionRecord)

func WithEffort(planned, actual int) ProductionOption {
	return func(r *domain.ProductionRecord) {
		r.PlannedMin = planned
		r.ActualMin = actual
	}
}

func WithCost(planned, actual float64) ProductionOption {
	return func(r *domain.ProductionRecord) {
		r.PlannedCost = planned
		r.ActualCost = actual
	}
}

func WithProductionStatus(status string, active bool, completionPct float64) ProductionOption {
	return func(r *domain.ProductionRecord) {
		r.Status = status
		r.Active = active
		r.CompletionPct = completionPct
	}
}

func WithParentWorkOrder(parent string) ProductionOption {
	return func(r *domain.ProductionRecord) {
		r.ParentWorkOrder = parent
	}
}

func WithPlannedDates(start, end time.Time) ProductionOption {
	return func(r *domain.ProductionRecord) {
		r.PlannedStart = &start
		r.PlannedEnd = &end
	}
}

// NewProductionRecord builds a production row with its stable identifier
// derived the same way the importer does it.
func NewProductionRecord(article, project, workOrder, operation string, opts ...ProductionOption) *domain.ProductionRecord {
	r := &domain.ProductionRecord{
		ID:         identity.StableID(domain.DatasetProduction, identity.ProductionKey(workOrder, article, operation)),
		Article:    article,
		Project:    project,
		WorkOrder:  workOrder,
		Operation:  operation,
		Active:     true,
		ImportedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SalesOption mutates a fixture sales record.
type SalesOption func(*domain.SalesRecord)

func WithCustomer(name string) SalesOption {
	return func(r *domain.SalesRecord) {
		r.Customer = name
	}
}

func WithDeliveryDate(d time.Time) SalesOption {
	return func(r *domain.SalesRecord) {
		r.DeliveryDate = &d
	}
}

// NewSalesRecord builds a sales row with its stable identifier.
func NewSalesRecord(article, project, deliveryNo string, quantity float64, opts ...SalesOption) *domain.SalesRecord {
	r := &domain.SalesRecord{
		ID:         identity.StableID(domain.DatasetSales, identity.SalesKey(deliveryNo, article, project, quantity)),
		DeliveryNo: deliveryNo,
		Article:    article,
		Project:    project,
		Quantity:   quantity,
		ImportedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
