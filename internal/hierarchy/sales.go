package hierarchy

import (
	"sort"
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
)

// noProductionName labels the placeholder leaf attached when a sales article
// matched no production rows.
const noProductionName = "no production data"

// salesRun is the shared per-run state of one sales-led assembly.
type salesRun struct {
	ix *Index
	// claimed de-duplicates rows reachable through both lookup paths.
	claimed claimSet
	// directMatched marks rows owned by a sales article's direct match;
	// the cross-article recovery never steals them.
	directMatched map[string]bool
}

// SalesTree assembles the sales-led hierarchy: sales records grouped into
// project → article, with matched production sub-trees attached below the
// article. Every sales record is represented exactly once even when no
// production match exists; in that case the article gets a single
// no-production placeholder child. In standalone mode only sales records
// without a project number are included.
//
// A single claim set spans the whole run, so a production row reachable from
// two articles (its own and, via the parent-order lookup, its parent's)
// contributes exactly one operation leaf.
func (b *Builder) SalesTree(sales []*domain.SalesRecord, ix *Index, standalone bool) []*Node {
	run := &salesRun{
		ix:            ix,
		claimed:       make(claimSet),
		directMatched: make(map[string]bool),
	}

	type articleGroup struct {
		key  string
		name string
		rows []*domain.SalesRecord
	}
	type projectGroup struct {
		key      string
		name     string
		articles map[string]*articleGroup
	}

	projects := make(map[string]*projectGroup)
	for _, s := range sales {
		projectKey, hasProject := b.cfg.NormalizeBusinessKey(s.Project)
		if standalone {
			if hasProject {
				continue
			}
			projectKey = ""
		} else if !hasProject {
			projectKey = ""
		}

		pg := projects[projectKey]
		if pg == nil {
			pg = &projectGroup{key: projectKey, name: strings.TrimSpace(s.Project), articles: make(map[string]*articleGroup)}
			projects[projectKey] = pg
		}

		articleKey, ok := b.cfg.NormalizeKey(s.Article)
		if !ok {
			// A sales row must stay visible even with an unusable
			// article number; it gets its own bucket keyed by record.
			articleKey = "~" + s.ID
		}
		ag := pg.articles[articleKey]
		if ag == nil {
			ag = &articleGroup{key: articleKey, name: strings.TrimSpace(s.Article)}
			pg.articles[articleKey] = ag
		}
		ag.rows = append(ag.rows, s)
	}

	// Rows matched directly by some sales article always render under that
	// article; the parent-order recovery may only pull in rows no sales
	// article claims for itself.
	for _, pg := range projects {
		for _, ag := range pg.articles {
			for _, r := range ix.Match(ag.rows[0].Article, ag.rows[0].Project) {
				run.directMatched[r.ID] = true
			}
		}
	}

	// Assemble in sorted key order: the claim set makes placement of rows
	// reachable from two articles first-wins, so iteration order must be
	// deterministic for re-runs to produce identical trees.
	projectKeys := make([]string, 0, len(projects))
	for key := range projects {
		projectKeys = append(projectKeys, key)
	}
	sort.Slice(projectKeys, func(i, j int) bool { return compareNatural(projectKeys[i], projectKeys[j]) < 0 })

	var roots []*Node
	for _, projectKey := range projectKeys {
		pg := projects[projectKey]
		scope := "p:" + pg.key
		if pg.key == "" {
			scope = "~"
		}

		articleKeys := make([]string, 0, len(pg.articles))
		for key := range pg.articles {
			articleKeys = append(articleKeys, key)
		}
		sort.Slice(articleKeys, func(i, j int) bool { return compareNatural(articleKeys[i], articleKeys[j]) < 0 })

		var articles []*Node
		for _, articleKey := range articleKeys {
			ag := pg.articles[articleKey]
			articles = append(articles, b.salesArticleNode(run, scope, pg.key, ag.key, ag.name, ag.rows))
		}
		sortChildren(articles)

		if pg.key == "" {
			// Project-less sales rows promote their articles to roots.
			roots = append(roots, articles...)
			continue
		}
		roots = append(roots, &Node{
			ID:       scope,
			Kind:     KindProject,
			Name:     pg.name,
			Key:      pg.key,
			Children: articles,
			Agg:      rollup(articles),
		})
	}
	sortChildren(roots)
	return roots
}

// salesArticleNode builds one article node: sales-origin fields on the node
// itself, matched production sub-trees (or the placeholder) as children.
func (b *Builder) salesArticleNode(run *salesRun, idPrefix, projectKey, articleKey, articleName string, rows []*domain.SalesRecord) *Node {
	scope := idPrefix + "/a:" + articleKey

	matches := run.ix.Match(rows[0].Article, rows[0].Project)

	groups := make(map[string][]*domain.ProductionRecord)
	names := make(map[string]string)
	var direct []*Node
	for _, r := range matches {
		key, raw, ok := b.mainOrderKey(r)
		if !ok {
			if run.claimed.claim(r.ID) {
				direct = append(direct, b.operationLeaf(r))
			}
			continue
		}
		groups[key] = append(groups[key], r)
		if names[key] == "" {
			names[key] = raw
		}
	}

	mainKeys := make([]string, 0, len(groups))
	for key := range groups {
		mainKeys = append(mainKeys, key)
	}
	sort.Slice(mainKeys, func(i, j int) bool { return compareNatural(mainKeys[i], mainKeys[j]) < 0 })

	var children []*Node
	for _, key := range mainKeys {
		// Sub-work-orders can be filed under a different article; the
		// parent-order lookup recovers them, restricted to the same
		// project so an id collision elsewhere cannot leak rows in.
		extra := b.recoverSubOrders(run, key, projectKey)
		if n := b.buildMainOrder(scope, key, names[key], groups[key], extra, run.claimed); n != nil {
			children = append(children, n)
		}
	}
	children = append(children, direct...)

	if len(children) == 0 {
		children = []*Node{{
			ID:   scope + "/none",
			Kind: KindNoProduction,
			Name: noProductionName,
			Key:  articleKey,
		}}
	}
	sortChildren(children)

	name := articleName
	if name == "" {
		name = "(no article)"
	}
	return &Node{
		ID:           scope,
		Kind:         KindArticle,
		Name:         name,
		Key:          articleKey,
		Children:     children,
		Agg:          rollup(children),
		Sales:        mergeSalesInfo(rows),
		SalesRecords: rows,
	}
}

// recoverSubOrders returns parent-lookup hits for a main order, restricted
// to the sales row's project and to rows no sales article matches directly.
// Project membership comes from the index's per-project bucket, so both
// lookups resolve against the same normalization. With no usable project key
// the cross-article recovery is skipped entirely: matching on parent id
// alone would be guesswork.
func (b *Builder) recoverSubOrders(run *salesRun, mainKey, projectKey string) []*domain.ProductionRecord {
	if projectKey == "" {
		return nil
	}
	inProject := make(map[string]bool)
	for _, r := range run.ix.ProjectRecords(projectKey) {
		inProject[r.ID] = true
	}
	var out []*domain.ProductionRecord
	for _, r := range run.ix.SubOrders(mainKey) {
		if run.directMatched[r.ID] || !inProject[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// mergeSalesInfo folds multiple sales rows of the same article into the
// node-level view: first customer and delivery number, summed quantity,
// earliest dates.
func mergeSalesInfo(rows []*domain.SalesRecord) *SalesInfo {
	info := &SalesInfo{}
	for _, s := range rows {
		if info.Customer == "" {
			info.Customer = s.Customer
		}
		if info.DeliveryNo == "" {
			info.DeliveryNo = s.DeliveryNo
		}
		info.Quantity += s.Quantity
		info.RequestedDate = earlierOf(info.RequestedDate, s.RequestedDate)
		info.ConfirmedDate = earlierOf(info.ConfirmedDate, s.ConfirmedDate)
		info.DeliveryDate = earlierOf(info.DeliveryDate, s.DeliveryDate)
	}
	return info
}
