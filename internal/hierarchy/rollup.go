package hierarchy

import (
	"time"

	"github.com/avollmer/leitstand/internal/domain"
)

// Aggregates are the rolled-up numeric fields of a node. For non-leaf nodes
// they are always computed from the immediate children's aggregates, never
// re-derived from raw records, so recomputing bottom-up reproduces the stored
// values exactly.
type Aggregates struct {
	PlannedMin  int
	ActualMin   int
	PlannedCost float64
	ActualCost  float64

	// CompletionPct is the leaf-count-weighted average completion of the
	// subtree; Leaves is its weight.
	CompletionPct float64
	Leaves        int

	Active bool

	EarliestStart *time.Time
	LatestEnd     *time.Time
}

// VarianceMin returns actual minus planned effort in minutes.
func (a Aggregates) VarianceMin() int { return a.ActualMin - a.PlannedMin }

// VarianceCost returns actual minus planned cost.
func (a Aggregates) VarianceCost() float64 { return a.ActualCost - a.PlannedCost }

// PlannedHours returns planned effort in hours.
func (a Aggregates) PlannedHours() float64 { return float64(a.PlannedMin) / 60 }

// ActualHours returns actual effort in hours.
func (a Aggregates) ActualHours() float64 { return float64(a.ActualMin) / 60 }

// leafAggregates seeds the rollup from one production row.
func leafAggregates(r *domain.ProductionRecord) Aggregates {
	a := Aggregates{
		PlannedMin:    r.PlannedMin,
		ActualMin:     r.ActualMin,
		PlannedCost:   r.PlannedCost,
		ActualCost:    r.ActualCost,
		CompletionPct: r.CompletionPct,
		Leaves:        1,
		Active:        r.Active,
	}
	a.EarliestStart = earlierOf(r.PlannedStart, r.ActualStart)
	a.LatestEnd = laterOf(r.PlannedEnd, r.ActualEnd)
	return a
}

// rollup combines immediate children's aggregates: sums for effort and cost,
// leaf-count-weighted average for completion, min/max for the date range.
// Children without dates simply don't contribute to the range.
func rollup(children []*Node) Aggregates {
	var a Aggregates
	var weighted float64
	for _, c := range children {
		a.PlannedMin += c.Agg.PlannedMin
		a.ActualMin += c.Agg.ActualMin
		a.PlannedCost += c.Agg.PlannedCost
		a.ActualCost += c.Agg.ActualCost
		weighted += c.Agg.CompletionPct * float64(c.Agg.Leaves)
		a.Leaves += c.Agg.Leaves
		a.Active = a.Active || c.Agg.Active
		a.EarliestStart = earlierOf(a.EarliestStart, c.Agg.EarliestStart)
		a.LatestEnd = laterOf(a.LatestEnd, c.Agg.LatestEnd)
	}
	if a.Leaves > 0 {
		a.CompletionPct = weighted / float64(a.Leaves)
	}
	return a
}

func earlierOf(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Before(*a):
		return b
	default:
		return a
	}
}

func laterOf(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	default:
		return a
	}
}
