package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/identity"
)

// dateLayouts are tried in order when coercing date cells. The ERP exports
// German day-first dates; ISO covers re-exported files.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"02.01.06",
}

// ConvertSales transforms field-keyed rows into typed sales records with
// stable identifiers. Call ValidateRows first; Convert never fails on a row,
// it coerces what it can and leaves the rest zero.
func ConvertSales(rows []Row, now time.Time) []*domain.SalesRecord {
	out := make([]*domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		r := &domain.SalesRecord{
			DeliveryNo:    row[FieldDeliveryNo],
			Article:       row[FieldArticle],
			Project:       row[FieldProject],
			Customer:      row[FieldCustomer],
			Quantity:      parseDecimal(row[FieldQuantity]),
			RequestedDate: parseDate(row[FieldRequestedDate]),
			ConfirmedDate: parseDate(row[FieldConfirmedDate]),
			DeliveryDate:  parseDate(row[FieldDeliveryDate]),
			Status:        row[FieldStatus],
			ImportedAt:    now,
		}
		r.ID = identity.StableID(domain.DatasetSales,
			identity.SalesKey(r.DeliveryNo, r.Article, r.Project, r.Quantity))
		out = append(out, r)
	}
	return out
}

// ConvertProduction transforms field-keyed rows into typed production records
// with stable identifiers.
func ConvertProduction(rows []Row, now time.Time) []*domain.ProductionRecord {
	out := make([]*domain.ProductionRecord, 0, len(rows))
	for _, row := range rows {
		r := &domain.ProductionRecord{
			Article:         row[FieldArticle],
			Project:         row[FieldProject],
			WorkOrder:       row[FieldWorkOrder],
			ParentWorkOrder: row[FieldParentWorkOrder],
			Operation:       row[FieldOperation],
			OperationName:   row[FieldOperationName],
			PlannedMin:      parseMinutes(row[FieldPlannedMin]),
			ActualMin:       parseMinutes(row[FieldActualMin]),
			PlannedCost:     parseDecimal(row[FieldPlannedCost]),
			ActualCost:      parseDecimal(row[FieldActualCost]),
			CompletionPct:   parsePercent(row[FieldCompletionPct]),
			Status:          row[FieldStatus],
			Active:          parseActive(row[FieldActive]),
			PlannedStart:    parseDate(row[FieldPlannedStart]),
			PlannedEnd:      parseDate(row[FieldPlannedEnd]),
			ActualStart:     parseDate(row[FieldActualStart]),
			ActualEnd:       parseDate(row[FieldActualEnd]),
			ImportedAt:      now,
		}
		r.ID = identity.StableID(domain.DatasetProduction,
			identity.ProductionKey(r.WorkOrder, r.Article, r.Operation))
		out = append(out, r)
	}
	return out
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseDecimal coerces a numeric cell, accepting the German decimal comma
// ("1.234,50") as well as plain dot notation. Unparseable cells become zero.
func parseDecimal(s string) float64 {
	v, err := parseDecimalErr(s)
	if err != nil {
		return 0
	}
	return v
}

func parseDecimalErr(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

// parseMinutes rounds a decimal minute cell to whole minutes.
func parseMinutes(s string) int {
	v := parseDecimal(s)
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}

// parsePercent clamps completion to 0..100 and strips a trailing "%".
func parsePercent(s string) float64 {
	v := parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// parseActive reads the activity flag; an absent cell means active.
func parseActive(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "x", "ja", "yes", "true", "aktiv":
		return true
	default:
		return false
	}
}
