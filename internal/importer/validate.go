package importer

import (
	"fmt"
	"strings"

	"github.com/avollmer/leitstand/internal/domain"
)

// Issue is a non-fatal problem found in one import row. Issues never stop an
// import; they are collected for the batch report.
type Issue struct {
	Row     int // 1-based data row number
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d: %s", i.Row, i.Message)
}

// ValidateRows checks ledger rows for structural problems before conversion.
// The checks are per-dataset: sales rows need an article, production rows an
// article and ideally a work order.
func ValidateRows(kind domain.Dataset, rows []Row) []Issue {
	var issues []Issue
	for i, row := range rows {
		n := i + 1
		switch kind {
		case domain.DatasetSales:
			if row[FieldArticle] == "" {
				issues = append(issues, Issue{Row: n, Message: "missing article number"})
			}
			if row[FieldDeliveryNo] == "" {
				issues = append(issues, Issue{Row: n, Message: "missing delivery number; row cannot be de-duplicated reliably"})
			}
		case domain.DatasetProduction:
			if row[FieldArticle] == "" {
				issues = append(issues, Issue{Row: n, Message: "missing article number"})
			}
			if row[FieldWorkOrder] == "" {
				issues = append(issues, Issue{Row: n, Message: "missing work order; row will surface as a direct operation"})
			}
			if v := row[FieldCompletionPct]; v != "" && !percentParseable(v) {
				issues = append(issues, Issue{Row: n, Message: fmt.Sprintf("unparseable completion %q; defaulting to 0", v)})
			}
		}
	}
	return issues
}

// percentParseable reports whether a completion cell will survive coercion,
// so validation can flag rows that conversion silently defaults to zero.
func percentParseable(s string) bool {
	_, err := parseDecimalErr(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return err == nil
}
