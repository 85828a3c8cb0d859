package pipeline

import (
	"strings"
	"time"

	"enroll340b/pkg/contracts/domain"
)

// Filter applies the prefix and active-contract predicates. RunDate is
// captured once per run and passed in explicitly so every row in a run is
// judged against the same cutoff.
type Filter struct {
	Prefixes       []string
	RunDate        time.Time
	IncludeExpired bool
}

// FilterResult carries the surviving rows and per-predicate drop counts
type FilterResult struct {
	Rows            []domain.Row
	DroppedByPrefix int
	DroppedExpired  int
}

// Apply runs both predicates over the rows. A row failing the prefix
// predicate is never also counted against the active predicate.
func (f Filter) Apply(rows []domain.Row) FilterResult {
	res := FilterResult{Rows: make([]domain.Row, 0, len(rows))}
	cutoff := f.RunDate.Truncate(24 * time.Hour)

	for _, r := range rows {
		if !f.matchesPrefix(r.RootID) {
			res.DroppedByPrefix++
			continue
		}
		if !f.IncludeExpired && r.TermDate != nil && r.TermDate.Before(cutoff) {
			res.DroppedExpired++
			continue
		}
		res.Rows = append(res.Rows, r)
	}
	return res
}

// matchesPrefix reports whether the RootID starts with a configured prefix.
// Rows whose RawID failed RootID derivation carry an empty RootID and never
// match.
func (f Filter) matchesPrefix(rootID string) bool {
	if rootID == "" {
		return false
	}
	for _, p := range f.Prefixes {
		if strings.HasPrefix(rootID, p) {
			return true
		}
	}
	return false
}
