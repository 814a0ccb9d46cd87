package formatter

import (
	"fmt"
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title     string
	Level     int
	IsLast    bool
	Risk      domain.RiskLevel
	Completed bool
	Detail    string // right-aligned badge, e.g. effort figures
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Completed subtrees get a green ✔ prefix and dim title, open
// ones are colored by risk; detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		statusPrefix := ""
		switch {
		case item.Completed:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case item.Risk == domain.RiskCritical:
			statusPrefix = StyleRed.Render("! ")
			title = StyleRed.Render(title)
		case item.Risk == domain.RiskAtRisk:
			title = StyleYellowBold.Render(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

// TreeItems flattens a hierarchy forest into renderable rows. completed
// reports whether a node's whole subtree is done, so the renderer can dim it.
func TreeItems(roots []*hierarchy.Node, completed func(*hierarchy.Node) bool) []TreeItem {
	var items []TreeItem
	var flatten func(n *hierarchy.Node, level int, isLast bool)
	flatten = func(n *hierarchy.Node, level int, isLast bool) {
		items = append(items, TreeItem{
			Title:     nodeTitle(n),
			Level:     level,
			IsLast:    isLast,
			Risk:      n.Risk,
			Completed: completed(n),
			Detail:    nodeDetail(n),
		})
		for i, c := range n.Children {
			flatten(c, level+1, i == len(n.Children)-1)
		}
	}
	for i, root := range roots {
		flatten(root, 0, i == len(roots)-1)
	}
	return items
}

func nodeTitle(n *hierarchy.Node) string {
	name := n.Name
	if name == "" {
		name = n.Key
	}
	switch n.Kind {
	case hierarchy.KindProject:
		return "Projekt " + name
	case hierarchy.KindMainOrder, hierarchy.KindOrder:
		return "PA " + name
	default:
		return name
	}
}

func nodeDetail(n *hierarchy.Node) string {
	if n.Kind == hierarchy.KindNoProduction {
		return ""
	}
	if n.Sales != nil && n.Sales.Customer != "" {
		return fmt.Sprintf("%s · %s", n.Sales.Customer, effortBadge(n))
	}
	return effortBadge(n)
}

func effortBadge(n *hierarchy.Node) string {
	return fmt.Sprintf("%s / %s · %3.0f%%",
		FormatHours(n.Agg.ActualHours()),
		FormatHours(n.Agg.PlannedHours()),
		n.Agg.CompletionPct)
}
