package hierarchy

import (
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
)

// ProductionTree assembles the production-led hierarchy: project → article →
// main work order → work order → operation, from the production ledger alone.
// Levels whose key is missing or a placeholder are skipped and their children
// promoted, so "no project" never produces an empty project node.
func (b *Builder) ProductionTree(ix *Index) []*Node {
	byProject, projectNames := b.groupRecords(ix.Records(), func(r *domain.ProductionRecord) string { return r.Project })

	var roots []*Node
	for key, rows := range byProject {
		if key == "" {
			// No valid project: articles become roots.
			roots = append(roots, b.articleNodes("~", rows)...)
			continue
		}
		children := b.articleNodes("p:"+key, rows)
		roots = append(roots, &Node{
			ID:       "p:" + key,
			Kind:     KindProject,
			Name:     projectNames[key],
			Key:      key,
			Children: children,
			Agg:      rollup(children),
		})
	}
	sortChildren(roots)
	return roots
}

// articleNodes groups rows by article under one project scope. Rows without
// a valid article key promote their work-order nodes to the caller's level.
func (b *Builder) articleNodes(idPrefix string, records []*domain.ProductionRecord) []*Node {
	byArticle, articleNames := b.groupRecords(records, func(r *domain.ProductionRecord) string { return r.Article })

	var nodes []*Node
	for key, rows := range byArticle {
		if key == "" {
			nodes = append(nodes, b.mainOrderNodes(idPrefix+"/~", rows)...)
			continue
		}
		scope := idPrefix + "/a:" + key
		children := b.mainOrderNodes(scope, rows)
		nodes = append(nodes, &Node{
			ID:       scope,
			Kind:     KindArticle,
			Name:     articleNames[key],
			Key:      key,
			Children: children,
			Agg:      rollup(children),
		})
	}
	sortChildren(nodes)
	return nodes
}

// mainOrderNodes groups rows into main work orders. The main order of a row
// is its parent work order when present, otherwise its own work order. Rows
// with neither become operation leaves at the caller's level.
func (b *Builder) mainOrderNodes(idPrefix string, records []*domain.ProductionRecord) []*Node {
	groups := make(map[string][]*domain.ProductionRecord)
	names := make(map[string]string)
	var direct []*Node

	for _, r := range records {
		key, raw, ok := b.mainOrderKey(r)
		if !ok {
			direct = append(direct, b.operationLeaf(r))
			continue
		}
		groups[key] = append(groups[key], r)
		if names[key] == "" {
			names[key] = raw
		}
	}

	nodes := make([]*Node, 0, len(groups)+len(direct))
	for key, rows := range groups {
		// Production-led grouping already covers every row exactly once,
		// so no parent-lookup merge is needed here.
		if n := b.buildMainOrder(idPrefix, key, names[key], rows, nil, nil); n != nil {
			nodes = append(nodes, n)
		}
	}
	nodes = append(nodes, direct...)
	sortChildren(nodes)
	return nodes
}

// mainOrderKey resolves which main work order a row belongs to: the parent
// work order wins over the row's own work order.
func (b *Builder) mainOrderKey(r *domain.ProductionRecord) (key, raw string, ok bool) {
	if k, valid := b.cfg.NormalizeKey(r.ParentWorkOrder); valid {
		return k, strings.TrimSpace(r.ParentWorkOrder), true
	}
	if k, valid := b.cfg.NormalizeKey(r.WorkOrder); valid {
		return k, strings.TrimSpace(r.WorkOrder), true
	}
	return "", "", false
}

// groupRecords partitions rows by a normalized key field. Rows whose key is
// invalid land under the empty key for the caller to promote.
func (b *Builder) groupRecords(records []*domain.ProductionRecord, field func(*domain.ProductionRecord) string) (map[string][]*domain.ProductionRecord, map[string]string) {
	groups := make(map[string][]*domain.ProductionRecord)
	names := make(map[string]string)
	for _, r := range records {
		raw := field(r)
		key, ok := b.cfg.NormalizeKey(raw)
		if !ok {
			key = ""
		}
		groups[key] = append(groups[key], r)
		if key != "" && names[key] == "" {
			names[key] = strings.TrimSpace(raw)
		}
	}
	return groups, names
}
