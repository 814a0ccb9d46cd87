package hierarchy

import (
	"testing"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRisk_ThresholdWindows(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  string
		want domain.RiskLevel
	}{
		{"past due", "2026-02-20", domain.RiskCritical},
		{"inside threshold", "2026-03-03", domain.RiskCritical},
		{"inside double window", "2026-03-06", domain.RiskAtRisk},
		{"far out", "2026-04-01", domain.RiskOnTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := b.operationLeaf(prod("A1", "P1", "W1", "", "10",
				withStatus("offen", true, 0), withDates("2026-02-01", tt.end)))
			assert.Equal(t, tt.want, b.ClassifyRisk(leaf, now))
		})
	}
}

func TestClassifyRisk_CompletedOrUndatedIsOnTrack(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	done := b.operationLeaf(prod("A1", "P1", "W1", "", "10",
		withStatus("erledigt", false, 100), withDates("2026-02-01", "2026-02-10")))
	assert.Equal(t, domain.RiskOnTrack, b.ClassifyRisk(done, now), "no deadline left to miss")

	undated := b.operationLeaf(prod("A1", "P1", "W1", "", "20", withStatus("offen", true, 0)))
	assert.Equal(t, domain.RiskOnTrack, b.ClassifyRisk(undated, now))
}

func TestAnnotateRisk_StampsWholeForest(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := []*domain.ProductionRecord{
		prod("A1", "P1", "W1", "", "10", withStatus("offen", true, 0), withDates("2026-02-01", "2026-03-02")),
	}

	roots := b.ProductionTree(BuildIndex(b.cfg, recs))
	b.AnnotateRisk(roots, now)

	require.Len(t, roots, 1)
	roots[0].Walk(func(n *Node) {
		assert.Equal(t, domain.RiskCritical, n.Risk, "node %s", n.ID)
	})
}

func TestClassifyRisk_ConfigurableThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RiskThresholdDays = 10
	b := NewBuilder(cfg)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	leaf := b.operationLeaf(prod("A1", "P1", "W1", "", "10",
		withStatus("offen", true, 0), withDates("2026-02-01", "2026-03-08")))
	assert.Equal(t, domain.RiskCritical, b.ClassifyRisk(leaf, now))
}
