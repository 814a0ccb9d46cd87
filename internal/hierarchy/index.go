package hierarchy

import (
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
)

// noProjectKey stands in for a missing project number in the composite
// article-project key, so project-less production rows are still matchable.
const noProjectKey = "__NONE__"

// Index holds the lookup maps built once per aggregation run over the full
// production record set. All three maps are read-only after BuildIndex and
// shared by both assemblers.
type Index struct {
	cfg Config

	// byArticleProject maps lower(article)+"-"+lower(project|__NONE__) to
	// the rows matching that pair: the direct sales-to-production match.
	// The project half goes through NormalizeBusinessKey on both the build
	// and lookup side, so placeholder project numbers land in the
	// no-project bucket consistently.
	byArticleProject map[string][]*domain.ProductionRecord

	// byProject maps lower(project) to every row in that project. Used to
	// recover sub-work-orders that escaped the composite key because their
	// article differs from the sales article.
	byProject map[string][]*domain.ProductionRecord

	// byParentOrder maps a parent work-order id to rows filed under it
	// whose own work order differs, regardless of article.
	byParentOrder map[string][]*domain.ProductionRecord

	records []*domain.ProductionRecord
}

// BuildIndex constructs the three lookup maps in one O(n) pass.
func BuildIndex(cfg Config, records []*domain.ProductionRecord) *Index {
	ix := &Index{
		cfg:              cfg,
		byArticleProject: make(map[string][]*domain.ProductionRecord),
		byProject:        make(map[string][]*domain.ProductionRecord),
		byParentOrder:    make(map[string][]*domain.ProductionRecord),
		records:          records,
	}

	for _, r := range records {
		key := ix.articleProjectKey(r.Article, r.Project)
		ix.byArticleProject[key] = append(ix.byArticleProject[key], r)

		if project, ok := cfg.NormalizeKey(r.Project); ok {
			ix.byProject[project] = append(ix.byProject[project], r)
		}

		parent, ok := cfg.NormalizeKey(r.ParentWorkOrder)
		if !ok {
			continue
		}
		own, _ := cfg.NormalizeKey(r.WorkOrder)
		if own != parent {
			ix.byParentOrder[parent] = append(ix.byParentOrder[parent], r)
		}
	}

	return ix
}

// Records returns the full production snapshot the index was built from.
func (ix *Index) Records() []*domain.ProductionRecord { return ix.records }

// Match returns the production rows filed under the given article/project
// pair. A missing or placeholder project matches the no-project bucket.
func (ix *Index) Match(article, project string) []*domain.ProductionRecord {
	return ix.byArticleProject[ix.articleProjectKey(article, project)]
}

// ProjectRecords returns every production row in the given project.
func (ix *Index) ProjectRecords(project string) []*domain.ProductionRecord {
	key, ok := ix.cfg.NormalizeKey(project)
	if !ok {
		return nil
	}
	return ix.byProject[key]
}

// SubOrders returns rows whose parent work order is the given id but whose
// own work order differs.
func (ix *Index) SubOrders(parent string) []*domain.ProductionRecord {
	key, ok := ix.cfg.NormalizeKey(parent)
	if !ok {
		return nil
	}
	return ix.byParentOrder[key]
}

func (ix *Index) articleProjectKey(article, project string) string {
	a := strings.ToLower(strings.TrimSpace(article))
	p, ok := ix.cfg.NormalizeBusinessKey(project)
	if !ok {
		p = noProjectKey
	}
	return a + "-" + p
}
