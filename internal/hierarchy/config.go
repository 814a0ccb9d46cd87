package hierarchy

// Config carries the locale-specific matching heuristics. The defaults mirror
// the ledger exports this system was built against; they are configuration
// rather than constants so a different site can swap the keyword sets without
// touching the engine.
type Config struct {
	// PlaceholderTokens are values that count as "no key" after trimming
	// and case-folding, e.g. "-" or "n/a".
	PlaceholderTokens []string

	// CompletionMarkers are status-text fragments that mark a production
	// row as closed. Matched case-insensitively as substrings.
	CompletionMarkers []string

	// RiskThresholdDays is the window before a planned end date in which an
	// open subtree is flagged critical; twice the window flags at-risk.
	RiskThresholdDays int
}

// DefaultConfig returns the heuristics used by the production deployment.
// The completion markers are German because the source ledgers are.
func DefaultConfig() Config {
	return Config{
		PlaceholderTokens: []string{"-", "--", "n/a", "na", "none", "null", "nil"},
		CompletionMarkers: []string{"erledigt", "fertig", "abgeschlossen", "geliefert", "beendet"},
		RiskThresholdDays: 3,
	}
}

func (c Config) isPlaceholder(v string) bool {
	for _, tok := range c.PlaceholderTokens {
		if v == tok {
			return true
		}
	}
	return false
}
