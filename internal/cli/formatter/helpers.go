package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatHours renders decimal hours compactly: "2h", "1.5h", "0.3h".
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.1f", h)
	s = strings.TrimSuffix(s, ".0")
	return s + "h"
}

// FormatDate renders a nullable date as DD.MM.YYYY or a dim dash.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("–")
	}
	return t.Format("02.01.2006")
}

// FormatDateRange renders "02.01. – 15.03.2026" style ranges.
func FormatDateRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return Dim("no dates")
	}
	if start == nil {
		return "… – " + end.Format("02.01.2006")
	}
	if end == nil {
		return start.Format("02.01.2006") + " – …"
	}
	return start.Format("02.01.") + " – " + end.Format("02.01.2006")
}
