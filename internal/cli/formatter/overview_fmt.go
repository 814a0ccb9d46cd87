package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/service"
)

// FormatOverview renders an assembled hierarchy with a statistics footer.
func FormatOverview(ov *service.Overview, completed func(*hierarchy.Node) bool) string {
	var b strings.Builder

	b.WriteString(Header(viewTitle(ov.View)))
	b.WriteString("\n\n")

	if len(ov.Roots) == 0 {
		b.WriteString(Dim("No records. Run \"leitstand import\" first.") + "\n")
		return b.String()
	}

	b.WriteString(RenderTree(TreeItems(ov.Roots, completed)))
	b.WriteString("\n")
	b.WriteString(formatStatistics(ov.Stats))
	return b.String()
}

func viewTitle(view domain.ViewMode) string {
	switch view {
	case domain.ViewProduction:
		return "Production overview"
	case domain.ViewStandalone:
		return "Standalone positions"
	default:
		return "Sales overview"
	}
}

func formatStatistics(stats service.Statistics) string {
	var parts []string
	parts = append(parts,
		fmt.Sprintf("%s sales positions", Bold(strconv.Itoa(stats.SalesPositions))),
		fmt.Sprintf("%s production records", Bold(strconv.Itoa(stats.ProductionRecords))),
	)
	if stats.WithoutProduction > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d without production", stats.WithoutProduction)))
	}
	if stats.HiddenCompleted > 0 {
		parts = append(parts, Dim(fmt.Sprintf("%d completed hidden", stats.HiddenCompleted)))
	}

	line1 := strings.Join(parts, Dim("  ·  "))

	line2 := fmt.Sprintf("%s planned, %s logged",
		FormatHours(stats.PlannedHours), FormatHours(stats.ActualHours))
	if n := stats.RiskCounts[domain.RiskCritical]; n > 0 {
		line2 += "  " + StyleRed.Render(fmt.Sprintf("● %d critical", n))
	}
	if n := stats.RiskCounts[domain.RiskAtRisk]; n > 0 {
		line2 += "  " + StyleYellow.Render(fmt.Sprintf("● %d at risk", n))
	}

	return line1 + "\n" + line2 + "\n"
}

// FormatStatus renders the database status report in a box.
func FormatStatus(report *service.StatusReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Sales records:      %s\n", Bold(strconv.Itoa(report.SalesCount))))
	b.WriteString(fmt.Sprintf("Production records: %s", Bold(strconv.Itoa(report.ProductionCount))))

	if len(report.RecentBatches) == 0 {
		b.WriteString("\n\n" + Dim("No imports yet."))
		return RenderBox("Leitstand status", b.String()) + "\n"
	}

	rows := make([][]string, 0, len(report.RecentBatches))
	for _, batch := range report.RecentBatches {
		issues := Dim("–")
		if batch.IssueCount > 0 {
			issues = StyleYellow.Render(strconv.Itoa(batch.IssueCount))
		}
		rows = append(rows, []string{
			batch.ImportedAt,
			string(batch.Dataset),
			batch.SourceFile,
			strconv.Itoa(batch.RowCount),
			issues,
		})
	}
	b.WriteString("\n\n")
	b.WriteString(strings.TrimRight(
		RenderTable([]string{"Imported", "Dataset", "File", "Rows", "Issues"}, rows), "\n"))
	return RenderBox("Leitstand status", b.String()) + "\n"
}

// FormatImportSummary renders the outcome of one import run.
func FormatImportSummary(sum *service.ImportSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s rows imported into the %s ledger\n",
		StyleGreen.Render("✔"), Bold(strconv.Itoa(sum.Imported)), sum.Dataset))

	if len(sum.UnknownHeaders) > 0 {
		b.WriteString(StyleYellow.Render(
			fmt.Sprintf("  ignored unknown columns: %s\n", strings.Join(sum.UnknownHeaders, ", "))))
	}
	for _, issue := range sum.Issues {
		b.WriteString("  " + StyleYellow.Render("⚠ "+issue.String()) + "\n")
	}
	return b.String()
}
