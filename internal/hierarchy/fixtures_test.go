package hierarchy

import (
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/identity"
)

// prod builds a production row with a deterministic stable id, the way the
// importer would emit it.
func prod(article, project, workOrder, parent, operation string, mutate ...func(*domain.ProductionRecord)) *domain.ProductionRecord {
	r := &domain.ProductionRecord{
		ID:              identity.StableID(domain.DatasetProduction, identity.ProductionKey(workOrder, article, operation)),
		Article:         article,
		Project:         project,
		WorkOrder:       workOrder,
		ParentWorkOrder: parent,
		Operation:       operation,
		Active:          true,
	}
	for _, m := range mutate {
		m(r)
	}
	return r
}

func sale(article, project, deliveryNo string, qty float64) *domain.SalesRecord {
	return &domain.SalesRecord{
		ID:         identity.StableID(domain.DatasetSales, identity.SalesKey(deliveryNo, article, project, qty)),
		DeliveryNo: deliveryNo,
		Article:    article,
		Project:    project,
		Quantity:   qty,
	}
}

func withEffort(planned, actual int) func(*domain.ProductionRecord) {
	return func(r *domain.ProductionRecord) {
		r.PlannedMin = planned
		r.ActualMin = actual
	}
}

func withCost(planned, actual float64) func(*domain.ProductionRecord) {
	return func(r *domain.ProductionRecord) {
		r.PlannedCost = planned
		r.ActualCost = actual
	}
}

func withStatus(status string, active bool, completion float64) func(*domain.ProductionRecord) {
	return func(r *domain.ProductionRecord) {
		r.Status = status
		r.Active = active
		r.CompletionPct = completion
	}
}

func withDates(plannedStart, plannedEnd string) func(*domain.ProductionRecord) {
	return func(r *domain.ProductionRecord) {
		r.PlannedStart = datePtr(plannedStart)
		r.PlannedEnd = datePtr(plannedEnd)
	}
}

func datePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// countLeaves returns the number of operation leaves in the forest.
func countLeaves(roots []*Node) int {
	n := 0
	for _, root := range roots {
		root.Walk(func(node *Node) {
			if node.Kind == KindOperation {
				n++
			}
		})
	}
	return n
}

// findByKind collects all nodes of one kind in depth-first order.
func findByKind(roots []*Node, kind Kind) []*Node {
	var out []*Node
	for _, root := range roots {
		root.Walk(func(n *Node) {
			if n.Kind == kind {
				out = append(out, n)
			}
		})
	}
	return out
}
