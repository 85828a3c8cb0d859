package exporter

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"enroll340b/internal/config"
	"enroll340b/internal/errors"
	"enroll340b/internal/loader"
	"enroll340b/internal/pipeline"
	"enroll340b/pkg/contracts/domain"
)

// LoadReferenceRootIDs reads the RootID set from a reference workbook, for
// validating a computed output against a previously blessed list. The
// reference may carry either a RootID column or a raw ID column; raw IDs go
// through the same derivation as pipeline input.
func LoadReferenceRootIDs(path string, cfg config.PipelineConfig) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.HeaderNotFound(path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read reference sheet: %w", err)
	}

	chain := []loader.HeaderDetector{
		loader.LabelScanDetector{Labels: append([]string{"RootID"}, loader.IDHeaderLabels...), MaxRows: cfg.HeaderScanRows},
		loader.FixedRowDetector{Index: 0},
	}
	headerIdx, ok := loader.DetectHeader(rows, chain)
	if !ok {
		return nil, errors.HeaderNotFound(path)
	}

	idCol := -1
	for j, h := range rows[headerIdx] {
		if h == "RootID" {
			idCol = j
			break
		}
	}
	deriveNeeded := idCol < 0
	if deriveNeeded {
		for j, h := range rows[headerIdx] {
			if loader.CanonicalField(h) == loader.FieldID {
				idCol = j
				break
			}
		}
	}
	if idCol < 0 {
		return nil, errors.MissingColumns(path, []string{loader.FieldID})
	}

	var ids []string
	seen := make(map[string]bool)
	for i := headerIdx + 1; i < len(rows); i++ {
		if idCol >= len(rows[i]) {
			continue
		}
		id := rows[i][idCol]
		if deriveNeeded {
			id = pipeline.DeriveRootID(id)
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// BuildDiff compares the reference RootID set against the computed output's
func BuildDiff(referenceIDs, outputIDs []string) domain.DiffReport {
	ref := make(map[string]bool, len(referenceIDs))
	for _, id := range referenceIDs {
		ref[id] = true
	}
	out := make(map[string]bool, len(outputIDs))
	for _, id := range outputIDs {
		out[id] = true
	}

	var report domain.DiffReport
	for id := range ref {
		if !out[id] {
			report.OnlyInReference = append(report.OnlyInReference, id)
		}
	}
	for id := range out {
		if !ref[id] {
			report.OnlyInOutput = append(report.OnlyInOutput, id)
		}
	}
	sort.Strings(report.OnlyInReference)
	sort.Strings(report.OnlyInOutput)
	return report
}

// WriteDiff writes the diff report as a CSV alongside the cleaned dataset
func (w *CSVWriter) WriteDiff(path string, report domain.DiffReport) error {
	records := make([][]string, 0, len(report.OnlyInReference)+len(report.OnlyInOutput))
	for _, id := range report.OnlyInReference {
		records = append(records, []string{"only_in_reference", id})
	}
	for _, id := range report.OnlyInOutput {
		records = append(records, []string{"only_in_output", id})
	}

	if err := w.WriteSimpleCSV(path, []string{"side", "root_id"}, records); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}
