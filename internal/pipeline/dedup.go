package pipeline

import (
	"enroll340b/pkg/contracts/domain"
)

// DedupResult carries the deduplicated rows plus group accounting
type DedupResult struct {
	Rows            []domain.Row
	DuplicateGroups int
	DroppedRows     int
}

// Deduplicate collapses rows sharing a RootID into one survivor per group.
// Output order is each group's earliest-encountered position, so identical
// inputs always produce identical output ordering.
//
// Under latest-begin the survivor is the row with the maximum BeginDate;
// rows with no BeginDate lose to any dated row, and ties go to the first
// encountered. Under keep-first the first row in load order survives.
func Deduplicate(rows []domain.Row, policy domain.DedupPolicy) DedupResult {
	survivor := make(map[string]int)
	var order []string
	groupSize := make(map[string]int)

	for i, r := range rows {
		cur, seen := survivor[r.RootID]
		if !seen {
			survivor[r.RootID] = i
			order = append(order, r.RootID)
			groupSize[r.RootID] = 1
			continue
		}
		groupSize[r.RootID]++

		if policy == domain.DedupLatestBegin && beginsAfter(r, rows[cur]) {
			survivor[r.RootID] = i
		}
	}

	res := DedupResult{Rows: make([]domain.Row, 0, len(order))}
	for _, rootID := range order {
		res.Rows = append(res.Rows, rows[survivor[rootID]])
		if groupSize[rootID] > 1 {
			res.DuplicateGroups++
			res.DroppedRows += groupSize[rootID] - 1
		}
	}
	return res
}

// beginsAfter reports whether candidate strictly beats incumbent on
// BeginDate. Nil dates lose to dated rows; equal dates keep the incumbent.
func beginsAfter(candidate, incumbent domain.Row) bool {
	if candidate.BeginDate == nil {
		return false
	}
	if incumbent.BeginDate == nil {
		return true
	}
	return candidate.BeginDate.After(*incumbent.BeginDate)
}
