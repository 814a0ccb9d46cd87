package hierarchy

import (
	"sort"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
)

// Kind tags the level of a hierarchy node.
type Kind string

const (
	KindProject   Kind = "project"
	KindArticle   Kind = "article"
	KindMainOrder Kind = "main_order"
	KindOrder     Kind = "order"
	KindOperation Kind = "operation"
	// KindNoProduction is the explicit placeholder attached to a sales
	// article that matched no production rows. Its presence makes the
	// absence of production data visible instead of silently empty.
	KindNoProduction Kind = "no_production"
)

// Node is one level of an assembled hierarchy. Nodes are built fresh on every
// aggregation run and never mutated afterwards; children are owned exclusively
// by their parent.
type Node struct {
	ID   string
	Kind Kind
	// Name is the display form of the natural key (original casing).
	Name string
	// Key is the canonical natural key the node was grouped under, used for
	// child ordering.
	Key string

	Children []*Node

	Agg  Aggregates
	Risk domain.RiskLevel

	// Sales carries the sales-origin fields on sales-led project/article
	// nodes. It is never blended into Agg: sales data and production
	// aggregates stay independently readable.
	Sales *SalesInfo
	// SalesRecords are the origin rows represented by a sales-led article
	// node. Each sales record appears in exactly one node's SalesRecords.
	SalesRecords []*domain.SalesRecord

	// Record is set on operation leaves only.
	Record *domain.ProductionRecord
}

// SalesInfo is the sales-side view of a project/article node.
type SalesInfo struct {
	Customer      string
	DeliveryNo    string
	Quantity      float64
	RequestedDate *time.Time
	ConfirmedDate *time.Time
	DeliveryDate  *time.Time
}

// IsLeaf reports whether the node represents a single source row (operation
// leaf or no-production placeholder).
func (n *Node) IsLeaf() bool {
	return n.Kind == KindOperation || n.Kind == KindNoProduction
}

// Walk visits the node and all descendants depth-first in child order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// sortChildren orders siblings by natural key using numeric-aware lexical
// comparison, so "2" sorts before "10". Ties break on ID to keep runs
// deterministic.
func sortChildren(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if c := compareNatural(nodes[i].Key, nodes[j].Key); c != 0 {
			return c < 0
		}
		return nodes[i].ID < nodes[j].ID
	})
}

// compareNatural compares two strings treating digit runs as numbers.
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// Compare the full digit runs numerically: skip leading
			// zeros, then longer run wins, then byte compare.
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na, nb := trimZeros(a[si:i]), trimZeros(b[sj:j])
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func trimZeros(s string) string {
	k := 0
	for k < len(s)-1 && s[k] == '0' {
		k++
	}
	return s[k:]
}
