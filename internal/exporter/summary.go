package exporter

import (
	"fmt"
	"strconv"

	"enroll340b/internal/errors"
	"enroll340b/pkg/contracts/domain"
)

// WriteSummary writes the run accounting as a simple two-column CSV next to
// the cleaned dataset. Skipped files appear as extra rows so no input goes
// unexplained.
func (w *CSVWriter) WriteSummary(path string, s domain.RunSummary) error {
	records := [][]string{
		{"run_date", s.RunDate.Format("2006-01-02")},
		{"files_discovered", strconv.Itoa(s.FilesDiscovered)},
		{"files_loaded", strconv.Itoa(s.FilesLoaded)},
		{"files_skipped", strconv.Itoa(len(s.FilesSkipped))},
		{"rows_loaded", strconv.Itoa(s.RowsLoaded)},
		{"rows_dropped_prefix_filter", strconv.Itoa(s.DroppedByPrefix)},
		{"rows_dropped_expired", strconv.Itoa(s.DroppedExpired)},
		{"duplicate_groups_collapsed", strconv.Itoa(s.DuplicateGroups)},
		{"rows_dropped_dedup", strconv.Itoa(s.DroppedDedup)},
		{"final_rows", strconv.Itoa(s.FinalRows)},
	}
	for _, skipped := range s.FilesSkipped {
		records = append(records, []string{
			fmt.Sprintf("skipped_file:%s", skipped.Name),
			skipped.Reason,
		})
	}

	if err := w.WriteSimpleCSV(path, []string{"metric", "value"}, records); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}
