package hierarchy

import (
	"testing"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMainOrder_CollapsesSingleIdenticalOrder(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	rows := []*domain.ProductionRecord{
		prod("A1", "P1", "W1", "", "10", withEffort(60, 30)),
		prod("A1", "P1", "W1", "", "20", withEffort(30, 0)),
	}

	n := b.buildMainOrder("t", "w1", "W1", rows, nil, nil)
	require.NotNil(t, n)

	// One work order with the main's own id: no wrapper container.
	assert.Equal(t, KindOrder, n.Kind)
	assert.Equal(t, "w1", n.Key)
	assert.Len(t, n.Children, 2)
	assert.Equal(t, 90, n.Agg.PlannedMin)
	assert.Equal(t, 30, n.Agg.ActualMin)
}

func TestBuildMainOrder_WrapsMultipleOrders(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	rows := []*domain.ProductionRecord{
		prod("A1", "P1", "W1", "", "10", withEffort(60, 60)),
		prod("A1", "P1", "W2", "W1", "10", withEffort(30, 15)),
	}

	n := b.buildMainOrder("t", "w1", "W1", rows, nil, nil)
	require.NotNil(t, n)

	assert.Equal(t, KindMainOrder, n.Kind)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "w1", n.Children[0].Key)
	assert.Equal(t, "w2", n.Children[1].Key)
	assert.Equal(t, 90, n.Agg.PlannedMin)
	assert.Equal(t, 75, n.Agg.ActualMin)
}

func TestBuildMainOrder_MergeDeduplicatesByRecordIdentity(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	shared := prod("A2", "P1", "W2", "W1", "10", withEffort(30, 30))
	local := []*domain.ProductionRecord{
		prod("A1", "P1", "W1", "", "10", withEffort(60, 0)),
		shared,
	}
	// The same row arrives again through the parent-order lookup.
	extra := []*domain.ProductionRecord{shared}

	n := b.buildMainOrder("t", "w1", "W1", local, extra, nil)
	require.NotNil(t, n)

	assert.Equal(t, 2, countLeaves([]*Node{n}), "shared row contributes exactly one leaf")
	assert.Equal(t, 90, n.Agg.PlannedMin, "aggregates count the shared row once")
}

func TestBuildMainOrder_RowsWithoutOrderBecomeDirectLeaves(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	rows := []*domain.ProductionRecord{
		prod("A1", "P1", "W1", "", "10"),
		prod("A1", "P1", "-", "", "99"),
	}

	n := b.buildMainOrder("t", "w1", "W1", rows, nil, nil)
	require.NotNil(t, n)

	// The placeholder work order forces the wrapper even though only one
	// real order exists.
	assert.Equal(t, KindMainOrder, n.Kind)
	require.Len(t, n.Children, 2)
	assert.Equal(t, 2, countLeaves([]*Node{n}))
}

func TestOrderNode_OperationOrdering(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	rows := []*domain.ProductionRecord{
		prod("A1", "P1", "W1", "", "100"),
		prod("A1", "P1", "W1", "", "20"),
		prod("A1", "P1", "W1", "", "kontrolle"), // unparseable sorts last
		prod("A1", "P1", "W1", "", "5"),
	}

	n := b.orderNode("t", "w1", "W1", rows)

	require.Len(t, n.Children, 4)
	assert.Equal(t, "5", n.Children[0].Record.Operation)
	assert.Equal(t, "20", n.Children[1].Record.Operation)
	assert.Equal(t, "100", n.Children[2].Record.Operation)
	assert.Equal(t, "kontrolle", n.Children[3].Record.Operation)
}

func TestOperationLeaf_NameFallsBackThroughFields(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	named := b.operationLeaf(prod("A1", "P1", "W1", "", "10", func(r *domain.ProductionRecord) {
		r.OperationName = "Fräsen"
	}))
	assert.Equal(t, "Fräsen", named.Name)

	bare := b.operationLeaf(prod("A1", "P1", "W1", "", "10"))
	assert.Equal(t, "10", bare.Name)
}

func TestBuildMainOrder_EmptyInput(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	assert.Nil(t, b.buildMainOrder("t", "w1", "W1", nil, nil, nil))
}
