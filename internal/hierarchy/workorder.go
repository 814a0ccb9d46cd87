package hierarchy

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
)

// Builder assembles hierarchy trees from flat record snapshots. A Builder is
// stateless between runs; every call allocates fresh nodes.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder using the given matching heuristics.
func NewBuilder(cfg Config) *Builder { return &Builder{cfg: cfg} }

// Config returns the heuristics the builder was created with.
func (b *Builder) Config() Config { return b.cfg }

// claimSet tracks which origin records have already been placed in the tree
// during one run. A record reachable through both the local grouping and the
// global parent-order lookup must contribute exactly one leaf.
type claimSet map[string]bool

func (s claimSet) claim(id string) bool {
	if s[id] {
		return false
	}
	s[id] = true
	return true
}

// opSortLast orders operations with a missing or unparseable number after
// every valid operation number.
const opSortLast = math.MaxInt32

// buildMainOrder turns the records of one main work order into a subtree.
// local are the rows grouped under mainKey by the caller; extra are rows
// discovered through the parent-order lookup. Both paths are merged with
// de-duplication by record identity via claimed.
//
// If the main order contains exactly one work order and its id equals the
// main id, the extra container level is collapsed: a main order that is its
// own only work order renders as a single node, not a wrapper around an
// identical child. This flattening rule is load-bearing for tree shape.
func (b *Builder) buildMainOrder(idPrefix, mainKey, mainName string, local, extra []*domain.ProductionRecord, claimed claimSet) *Node {
	if claimed == nil {
		claimed = make(claimSet)
	}

	var records []*domain.ProductionRecord
	for _, r := range local {
		if claimed.claim(r.ID) {
			records = append(records, r)
		}
	}
	for _, r := range extra {
		if claimed.claim(r.ID) {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return nil
	}

	// Partition by work-order id. Rows without a usable id become direct
	// operation leaves of the main order rather than being dropped.
	groups := make(map[string][]*domain.ProductionRecord)
	names := make(map[string]string)
	var direct []*Node
	for _, r := range records {
		key, ok := b.cfg.NormalizeKey(r.WorkOrder)
		if !ok {
			direct = append(direct, b.operationLeaf(r))
			continue
		}
		groups[key] = append(groups[key], r)
		if names[key] == "" {
			names[key] = strings.TrimSpace(r.WorkOrder)
		}
	}

	orders := make([]*Node, 0, len(groups))
	for key, rows := range groups {
		orders = append(orders, b.orderNode(idPrefix, key, names[key], rows))
	}
	sortChildren(orders)

	// Collapse rule: one work order, same id as the main order, nothing
	// else attached.
	if len(orders) == 1 && len(direct) == 0 && orders[0].Key == mainKey {
		return orders[0]
	}

	children := append(orders, direct...)
	sortChildren(children)

	return &Node{
		ID:       idPrefix + "/pa:" + mainKey,
		Kind:     KindMainOrder,
		Name:     mainName,
		Key:      mainKey,
		Children: children,
		Agg:      rollup(children),
	}
}

// orderNode builds one work-order node with its operation leaves, ordered by
// numeric operation number.
func (b *Builder) orderNode(idPrefix, key, name string, rows []*domain.ProductionRecord) *Node {
	leaves := make([]*Node, 0, len(rows))
	for _, r := range rows {
		leaves = append(leaves, b.operationLeaf(r))
	}
	sortOperations(leaves)

	return &Node{
		ID:       idPrefix + "/wo:" + key,
		Kind:     KindOrder,
		Name:     name,
		Key:      key,
		Children: leaves,
		Agg:      rollup(leaves),
	}
}

func (b *Builder) operationLeaf(r *domain.ProductionRecord) *Node {
	key, _ := b.cfg.NormalizeKey(r.Operation)
	name := domain.CoalesceStr(
		strings.TrimSpace(r.OperationName),
		strings.TrimSpace(r.Operation),
		strings.TrimSpace(r.WorkOrder),
		r.ID,
	)
	return &Node{
		ID:     r.ID,
		Kind:   KindOperation,
		Name:   name,
		Key:    key,
		Agg:    leafAggregates(r),
		Record: r,
	}
}

// sortOperations orders operation leaves by the numeric value of their
// operation number; rows with no parseable number sort last, tie-broken by
// record id so runs stay deterministic.
func sortOperations(leaves []*Node) {
	sort.SliceStable(leaves, func(i, j int) bool {
		a, b := operationSortValue(leaves[i].Record), operationSortValue(leaves[j].Record)
		if a != b {
			return a < b
		}
		return leaves[i].ID < leaves[j].ID
	})
}

func operationSortValue(r *domain.ProductionRecord) int {
	if r == nil {
		return opSortLast
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.Operation))
	if err != nil {
		return opSortLast
	}
	return n
}
