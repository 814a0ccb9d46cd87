package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avollmer/leitstand/internal/cli/formatter"
	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// browseRow is one visible line of the flattened hierarchy.
type browseRow struct {
	node       *hierarchy.Node
	depth      int
	isLast     bool
	collapsed  bool
	childCount int
}

// overviewLoadedMsg signals that hierarchy data has been assembled.
type overviewLoadedMsg struct {
	ov  *service.Overview
	err error
}

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	View     key.Binding
	Complete key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var browseKeys = browseKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "fold")),
	View:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "switch view")),
	Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle completed")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// browseModel is the interactive hierarchy browser.
type browseModel struct {
	app           *App
	view          domain.ViewMode
	project       string
	hideCompleted bool

	overview  *service.Overview
	rows      []browseRow
	collapsed map[string]bool
	cursor    int
	offset    int

	width   int
	height  int
	loading bool
	err     error
}

func newBrowseModel(app *App, view domain.ViewMode, project string) *browseModel {
	return &browseModel{
		app:       app,
		view:      view,
		project:   project,
		collapsed: make(map[string]bool),
		loading:   true,
		width:     80,
		height:    24,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadOverview()
}

func (m *browseModel) loadOverview() tea.Cmd {
	app := m.app
	req := service.OverviewRequest{
		View:          m.view,
		Project:       m.project,
		HideCompleted: m.hideCompleted,
	}
	return func() tea.Msg {
		ov, err := app.Overview.BuildOverview(context.Background(), req)
		return overviewLoadedMsg{ov: ov, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.overview = msg.ov
			m.rebuildRows()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, browseKeys.Down):
			m.moveCursor(1)
		case key.Matches(msg, browseKeys.Toggle):
			m.toggleFold()
		case key.Matches(msg, browseKeys.View):
			m.view = nextViewMode(m.view)
			m.loading = true
			return m, m.loadOverview()
		case key.Matches(msg, browseKeys.Complete):
			m.hideCompleted = !m.hideCompleted
			m.loading = true
			return m, m.loadOverview()
		case key.Matches(msg, browseKeys.Refresh):
			m.loading = true
			return m, m.loadOverview()
		}
	}
	return m, nil
}

func nextViewMode(v domain.ViewMode) domain.ViewMode {
	switch v {
	case domain.ViewSales:
		return domain.ViewProduction
	case domain.ViewProduction:
		return domain.ViewStandalone
	default:
		return domain.ViewSales
	}
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	m.clampOffset()
}

func (m *browseModel) toggleFold() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if row.childCount == 0 {
		return
	}
	m.collapsed[row.node.ID] = !m.collapsed[row.node.ID]
	m.rebuildRows()
}

// rebuildRows flattens the forest, skipping children of collapsed nodes.
func (m *browseModel) rebuildRows() {
	m.rows = m.rows[:0]
	if m.overview == nil {
		return
	}
	var flatten func(n *hierarchy.Node, depth int, isLast bool)
	flatten = func(n *hierarchy.Node, depth int, isLast bool) {
		collapsed := m.collapsed[n.ID]
		m.rows = append(m.rows, browseRow{
			node:       n,
			depth:      depth,
			isLast:     isLast,
			collapsed:  collapsed,
			childCount: len(n.Children),
		})
		if collapsed {
			return
		}
		for i, c := range n.Children {
			flatten(c, depth+1, i == len(n.Children)-1)
		}
	}
	for i, root := range m.overview.Roots {
		flatten(root, 0, i == len(m.overview.Roots)-1)
	}
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

func (m *browseModel) visibleLines() int {
	// Header, statistics line, and help line surround the list.
	lines := m.height - 4
	if lines < 3 {
		lines = 3
	}
	return lines
}

func (m *browseModel) clampOffset() {
	visible := m.visibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *browseModel) View() string {
	var b strings.Builder

	title := browseTitle(m.view)
	if m.project != "" {
		title += "  " + formatter.Dim("("+m.project+")")
	}
	if m.hideCompleted {
		title += "  " + formatter.Dim("[open only]")
	}
	b.WriteString(formatter.StyleHeader.Render(title) + "\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading…") + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case len(m.rows) == 0:
		b.WriteString(formatter.Dim("No records.") + "\n")
	default:
		m.renderRows(&b)
		b.WriteString(formatStatsLine(m.overview.Stats) + "\n")
	}

	b.WriteString(renderHelp())
	return b.String()
}

func (m *browseModel) renderRows(b *strings.Builder) {
	visible := m.visibleLines()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}
}

func (m *browseModel) renderRow(idx int) string {
	row := m.rows[idx]
	n := row.node

	indent := strings.Repeat("  ", row.depth)
	fold := "  "
	if row.childCount > 0 {
		if row.collapsed {
			fold = "▸ "
		} else {
			fold = "▾ "
		}
	}

	title := n.Name
	if title == "" {
		title = n.Key
	}
	if row.collapsed {
		title += formatter.Dim(fmt.Sprintf(" (%d)", row.childCount))
	}

	detail := ""
	if n.Kind != hierarchy.KindNoProduction {
		detail = "  " + formatter.Dim(fmt.Sprintf("%s/%s",
			formatter.FormatHours(n.Agg.ActualHours()),
			formatter.FormatHours(n.Agg.PlannedHours())))
		detail += "  " + formatter.RenderProgress(n.Agg.CompletionPct/100, 10)
	}

	line := indent + fold + formatter.RiskColor(n.Risk).Render(title) + detail
	if idx == m.cursor {
		return lipgloss.NewStyle().Bold(true).Render("> ") + line
	}
	return "  " + line
}

func browseTitle(view domain.ViewMode) string {
	switch view {
	case domain.ViewProduction:
		return "LEITSTAND · PRODUCTION"
	case domain.ViewStandalone:
		return "LEITSTAND · STANDALONE"
	default:
		return "LEITSTAND · SALES"
	}
}

func formatStatsLine(stats service.Statistics) string {
	return formatter.Dim(fmt.Sprintf("%d positions · %d production records · %s planned · %s logged",
		stats.SalesPositions, stats.ProductionRecords,
		formatter.FormatHours(stats.PlannedHours), formatter.FormatHours(stats.ActualHours)))
}

func renderHelp() string {
	bindings := []key.Binding{
		browseKeys.Up, browseKeys.Down, browseKeys.Toggle,
		browseKeys.View, browseKeys.Complete, browseKeys.Refresh, browseKeys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, kb.Help().Key+" "+formatter.Dim(kb.Help().Desc))
	}
	return strings.Join(parts, "  ")
}
