// Package identity derives deterministic record identifiers from natural-key
// fields so that re-importing the same source file overwrites rows instead of
// duplicating them. The repository's upsert-by-ID semantics depend on these
// identifiers being stable across imports.
package identity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/google/uuid"
)

const fieldSeparator = "|"

// SalesKey lists the natural-key fields of a sales row in hashing order.
func SalesKey(deliveryNo, article, project string, quantity float64) []string {
	qty := ""
	if quantity != 0 {
		qty = strconv.FormatFloat(quantity, 'f', -1, 64)
	}
	return []string{deliveryNo, article, project, qty}
}

// ProductionKey lists the natural-key fields of a production row in hashing order.
func ProductionKey(workOrder, article, operation string) []string {
	return []string{workOrder, article, operation}
}

// ProjectKey lists the natural-key fields of a project-management row.
func ProjectKey(project, article string) []string {
	return []string{project, article}
}

// StableID hashes the given natural-key fields into a short deterministic
// identifier prefixed with the dataset kind. Absent fields participate as
// empty strings, so two rows differing only in a missing field still hash
// differently. If every field is empty the row has no usable natural key and
// a non-deterministic FallbackID is returned instead.
func StableID(kind domain.Dataset, fields []string) string {
	allEmpty := true
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return FallbackID(kind)
	}

	joined := strings.Join(fields, fieldSeparator)
	return fmt.Sprintf("%s-%s", kind, strconv.FormatUint(uint64(hash32(joined)), 36))
}

// FallbackID returns a time+random identifier for rows with no natural key.
// It is intentionally non-deterministic; such rows cannot be de-duplicated
// across imports.
func FallbackID(kind domain.Dataset) string {
	return fmt.Sprintf("%s-%d-%s", kind, time.Now().UnixMilli(), uuid.New().String()[:8])
}

// hash32 is a 32-bit rolling multiply-add hash (h = h*31 + b). It matches the
// identifier scheme of previously imported data, so it must not change.
func hash32(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
