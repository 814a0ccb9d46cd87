package hierarchy

import "strings"

// NormalizeKey canonicalizes an identifier for grouping: trim, case-fold,
// reject empties and placeholder tokens. A bare "0" is a VALID key here:
// work-order ledgers legitimately use it as an identifier, so the work-order
// grouping call sites must not lose those rows.
func (c Config) NormalizeKey(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || c.isPlaceholder(v) {
		return "", false
	}
	return v, true
}

// NormalizeBusinessKey is the stricter variant used for cross-ledger
// matching (project-number comparison between sales and production rows).
// Unlike NormalizeKey it also rejects "0" and other zero-only or
// single-character values: in that context they are export artifacts, not
// identifiers, and matching on them would glue unrelated rows together.
// The asymmetry with NormalizeKey is deliberate; keep both call sites on
// their respective variants.
func (c Config) NormalizeBusinessKey(raw string) (string, bool) {
	v, ok := c.NormalizeKey(raw)
	if !ok {
		return "", false
	}
	if isZeroOnly(v) || len(v) < 2 {
		return "", false
	}
	return v, true
}

func isZeroOnly(v string) bool {
	for _, r := range v {
		if r != '0' {
			return false
		}
	}
	return len(v) > 0
}
