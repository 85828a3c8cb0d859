package pipeline

import (
	"time"

	"enroll340b/internal/loader"
	"enroll340b/pkg/contracts/domain"
)

// curatedHeaders is the fixed leading column set of the default projection
var curatedHeaders = []string{"RootID", "ID", "EntityName", "PharmacyName", "BeginDate", "TermDate"}

// Projection is the final tabular form handed to the writer
type Projection struct {
	Headers []string
	Records [][]string
}

// Project selects the output column set and renders every row against it.
//
// Curated mode emits the fixed core fields followed by pass-through columns
// (original columns that did not resolve to a core field), first-seen order.
// All-columns mode emits RootID and ID first, then every original column
// observed across the inputs, deduplicated by name.
func Project(rows []domain.Row, columns []string, mode domain.ProjectionMode) Projection {
	var headers []string
	var passthrough []string

	switch mode {
	case domain.ProjectionAllColumns:
		headers = []string{"RootID", "ID"}
		seen := map[string]bool{"RootID": true, "ID": true}
		for _, c := range columns {
			if seen[c] {
				continue
			}
			seen[c] = true
			passthrough = append(passthrough, c)
		}
	default:
		headers = append(headers, curatedHeaders...)
		seen := make(map[string]bool, len(columns))
		for _, c := range columns {
			if seen[c] || loader.CanonicalField(c) != "" {
				continue
			}
			seen[c] = true
			passthrough = append(passthrough, c)
		}
	}
	headers = append(headers, passthrough...)

	p := Projection{Headers: headers, Records: make([][]string, 0, len(rows))}
	for _, r := range rows {
		record := make([]string, 0, len(headers))
		record = append(record, r.RootID, r.RawID)
		if mode != domain.ProjectionAllColumns {
			record = append(record,
				r.EntityName,
				r.PharmacyName,
				formatDate(r.BeginDate),
				formatDate(r.TermDate),
			)
		}
		for _, c := range passthrough {
			record = append(record, r.Extra[c])
		}
		p.Records = append(p.Records, record)
	}
	return p
}

// formatDate renders a nullable date as ISO or empty
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
