package domain

import (
	"time"
)

// Row represents a single 340B contract-enrollment record as loaded from a
// source spreadsheet. Begin/Term dates are nil when the source cell was blank
// or unparsable.
type Row struct {
	RawID        string            `json:"id"`
	RootID       string            `json:"root_id"`
	EntityName   string            `json:"entity_name,omitempty"`
	PharmacyName string            `json:"pharmacy_name,omitempty"`
	BeginDate    *time.Time        `json:"begin_date,omitempty"`
	TermDate     *time.Time        `json:"term_date,omitempty"`
	SourceFile   string            `json:"source_file"`
	Extra        map[string]string `json:"extra,omitempty"`

	// Raw date text as loaded; the normalizer coerces these into
	// BeginDate/TermDate and unparsable text becomes nil.
	RawBegin string `json:"-"`
	RawTerm  string `json:"-"`
}

// Dataset is an ordered collection of rows plus the union of original column
// names observed across all source files, in first-seen order.
type Dataset struct {
	Rows    []Row    `json:"rows"`
	Columns []string `json:"columns"`
}

// AddColumns merges newly observed column names into the dataset, preserving
// first-seen order and dropping exact duplicates.
func (d *Dataset) AddColumns(names []string) {
	seen := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		seen[c] = true
	}
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		d.Columns = append(d.Columns, n)
	}
}

// DedupPolicy selects the survivor of a duplicate-RootID group
type DedupPolicy string

const (
	DedupLatestBegin DedupPolicy = "latest-begin"
	DedupKeepFirst   DedupPolicy = "keep-first"
)

// ProjectionMode controls the final output column set
type ProjectionMode string

const (
	ProjectionCurated    ProjectionMode = "curated"
	ProjectionAllColumns ProjectionMode = "all-columns"
)

// SkippedFile records a source file that was excluded from the run
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// RunSummary accounts for every row seen during a run. Every dropped row is
// attributable to exactly one of the drop counters.
type RunSummary struct {
	RunDate          time.Time     `json:"run_date"`
	FilesDiscovered  int           `json:"files_discovered"`
	FilesLoaded      int           `json:"files_loaded"`
	FilesSkipped     []SkippedFile `json:"files_skipped,omitempty"`
	RowsLoaded       int           `json:"rows_loaded"`
	DroppedByPrefix  int           `json:"dropped_by_prefix"`
	DroppedExpired   int           `json:"dropped_expired"`
	DuplicateGroups  int           `json:"duplicate_groups"`
	DroppedDedup     int           `json:"dropped_dedup"`
	FinalRows        int           `json:"final_rows"`
}

// DiffReport lists RootIDs present on only one side of a reference comparison
type DiffReport struct {
	OnlyInReference []string `json:"only_in_reference"`
	OnlyInOutput    []string `json:"only_in_output"`
}
