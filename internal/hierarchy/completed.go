package hierarchy

import (
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
)

// FilterCompleted returns the root nodes whose subtree is not fully
// completed. Retained trees are returned as-is: the filter never rewrites
// children or aggregates of a surviving root.
func (b *Builder) FilterCompleted(roots []*Node) []*Node {
	out := make([]*Node, 0, len(roots))
	for _, n := range roots {
		if !b.SubtreeCompleted(n) {
			out = append(out, n)
		}
	}
	return out
}

// SubtreeCompleted reports whether every row under the node is closed.
//
// A leaf is completed when its status text contains a completion marker or
// the row is inactive at 100%. A non-leaf is completed only if it has at
// least one child and all children are recursively completed: a childless
// container is never completed, because absence of data is not evidence of
// completion. The all-children rule keeps a project with one open article
// visible no matter how many finished siblings it has.
func (b *Builder) SubtreeCompleted(n *Node) bool {
	if n.Kind == KindNoProduction {
		return false
	}
	if n.Record != nil {
		return b.recordCompleted(n.Record)
	}
	if len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if !b.SubtreeCompleted(c) {
			return false
		}
	}
	return true
}

func (b *Builder) recordCompleted(r *domain.ProductionRecord) bool {
	status := strings.ToLower(r.Status)
	for _, marker := range b.cfg.CompletionMarkers {
		if strings.Contains(status, strings.ToLower(marker)) {
			return true
		}
	}
	return !r.Active && r.CompletionPct >= 100
}
