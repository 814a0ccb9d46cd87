package importer

import "strings"

// Field names the typed columns the converter understands. The two ledgers
// share the article/project vocabulary; everything else is per-dataset.
type Field string

const (
	FieldDeliveryNo    Field = "delivery_no"
	FieldArticle       Field = "article"
	FieldProject       Field = "project"
	FieldCustomer      Field = "customer"
	FieldQuantity      Field = "quantity"
	FieldRequestedDate Field = "requested_date"
	FieldConfirmedDate Field = "confirmed_date"
	FieldDeliveryDate  Field = "delivery_date"

	FieldWorkOrder       Field = "work_order"
	FieldParentWorkOrder Field = "parent_work_order"
	FieldOperation       Field = "operation"
	FieldOperationName   Field = "operation_name"
	FieldPlannedMin      Field = "planned_min"
	FieldActualMin       Field = "actual_min"
	FieldPlannedCost     Field = "planned_cost"
	FieldActualCost      Field = "actual_cost"
	FieldCompletionPct   Field = "completion_pct"
	FieldActive          Field = "active"
	FieldPlannedStart    Field = "planned_start"
	FieldPlannedEnd      Field = "planned_end"
	FieldActualStart     Field = "actual_start"
	FieldActualEnd       Field = "actual_end"

	FieldStatus Field = "status"
)

// headerSynonyms maps normalized column headers to fields. The ledger
// exports come out of a German ERP, so German headers dominate; English
// fallbacks cover hand-edited files.
var headerSynonyms = map[string]Field{
	// shared
	"artikel":       FieldArticle,
	"artikelnummer": FieldArticle,
	"artikel-nr":    FieldArticle,
	"material":      FieldArticle,
	"article":       FieldArticle,
	"item":          FieldArticle,
	"projekt":       FieldProject,
	"projektnummer": FieldProject,
	"projekt-nr":    FieldProject,
	"project":       FieldProject,
	"status":        FieldStatus,

	// sales ledger
	"lieferschein":    FieldDeliveryNo,
	"lieferung":       FieldDeliveryNo,
	"liefernr":        FieldDeliveryNo,
	"delivery":        FieldDeliveryNo,
	"delivery no":     FieldDeliveryNo,
	"kunde":           FieldCustomer,
	"kundenname":      FieldCustomer,
	"customer":        FieldCustomer,
	"menge":           FieldQuantity,
	"quantity":        FieldQuantity,
	"qty":             FieldQuantity,
	"wunschtermin":    FieldRequestedDate,
	"requested date":  FieldRequestedDate,
	"bestaetigt":      FieldConfirmedDate,
	"bestätigt":       FieldConfirmedDate,
	"confirmed date":  FieldConfirmedDate,
	"liefertermin":    FieldDeliveryDate,
	"lieferdatum":     FieldDeliveryDate,
	"delivery date":   FieldDeliveryDate,

	// production ledger
	"pa":               FieldWorkOrder,
	"pa-nr":            FieldWorkOrder,
	"fertigungsauftrag": FieldWorkOrder,
	"work order":       FieldWorkOrder,
	"haupt-pa":         FieldParentWorkOrder,
	"hauptauftrag":     FieldParentWorkOrder,
	"parent pa":        FieldParentWorkOrder,
	"parent work order": FieldParentWorkOrder,
	"ag":               FieldOperation,
	"ag-nr":            FieldOperation,
	"arbeitsgang":      FieldOperation,
	"operation":        FieldOperation,
	"ag-bezeichnung":   FieldOperationName,
	"bezeichnung":      FieldOperationName,
	"operation name":   FieldOperationName,
	"sollzeit":         FieldPlannedMin,
	"soll-min":         FieldPlannedMin,
	"planned min":      FieldPlannedMin,
	"istzeit":          FieldActualMin,
	"ist-min":          FieldActualMin,
	"actual min":       FieldActualMin,
	"sollkosten":       FieldPlannedCost,
	"planned cost":     FieldPlannedCost,
	"istkosten":        FieldActualCost,
	"actual cost":      FieldActualCost,
	"fortschritt":      FieldCompletionPct,
	"fertigstellung":   FieldCompletionPct,
	"completion":       FieldCompletionPct,
	"aktiv":            FieldActive,
	"active":           FieldActive,
	"starttermin-soll": FieldPlannedStart,
	"planned start":    FieldPlannedStart,
	"endtermin-soll":   FieldPlannedEnd,
	"planned end":      FieldPlannedEnd,
	"starttermin-ist":  FieldActualStart,
	"actual start":     FieldActualStart,
	"endtermin-ist":    FieldActualEnd,
	"actual end":       FieldActualEnd,
}

// MapHeaders resolves raw CSV headers to fields. Unrecognized headers map to
// "", which the converter ignores; the caller can surface them as issues.
func MapHeaders(headers []string) []Field {
	out := make([]Field, len(headers))
	for i, h := range headers {
		out[i] = headerSynonyms[normalizeHeader(h)]
	}
	return out
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Trim(h, ".:")
	return strings.Join(strings.Fields(h), " ")
}
