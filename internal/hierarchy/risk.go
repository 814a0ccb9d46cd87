package hierarchy

import (
	"time"

	"github.com/avollmer/leitstand/internal/domain"
)

// ClassifyRisk places a node on the on-track / at-risk / critical scale from
// its rolled-up date range. An open subtree whose latest end date is past or
// inside the configured threshold window is critical; inside twice the window
// it is at risk. Completed subtrees and subtrees without dates are on track,
// since there is no deadline left to miss.
func (b *Builder) ClassifyRisk(n *Node, now time.Time) domain.RiskLevel {
	if n.Agg.LatestEnd == nil || b.SubtreeCompleted(n) {
		return domain.RiskOnTrack
	}
	daysLeft := int(n.Agg.LatestEnd.Sub(now).Hours() / 24)
	switch {
	case daysLeft <= b.cfg.RiskThresholdDays:
		return domain.RiskCritical
	case daysLeft <= 2*b.cfg.RiskThresholdDays:
		return domain.RiskAtRisk
	default:
		return domain.RiskOnTrack
	}
}

// AnnotateRisk stamps every node in the forest with its risk level.
func (b *Builder) AnnotateRisk(roots []*Node, now time.Time) {
	for _, root := range roots {
		root.Walk(func(n *Node) {
			n.Risk = b.ClassifyRisk(n, now)
		})
	}
}
