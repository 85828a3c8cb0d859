package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enroll340b/pkg/contracts/domain"
)

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned_summary.csv")

	s := domain.RunSummary{
		RunDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FilesDiscovered: 3,
		FilesLoaded:     2,
		FilesSkipped: []domain.SkippedFile{
			{Name: "bad.xlsx", Reason: "header row not found: file bad.xlsx"},
		},
		RowsLoaded:      40,
		DroppedByPrefix: 5,
		DroppedExpired:  10,
		DuplicateGroups: 4,
		DroppedDedup:    6,
		FinalRows:       19,
	}

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteSummary(path, s))

	records := readCSV(t, path)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"metric", "value"}, records[0])

	byMetric := make(map[string]string)
	for _, rec := range records[1:] {
		byMetric[rec[0]] = rec[1]
	}
	assert.Equal(t, "2025-01-01", byMetric["run_date"])
	assert.Equal(t, "3", byMetric["files_discovered"])
	assert.Equal(t, "1", byMetric["files_skipped"])
	assert.Equal(t, "40", byMetric["rows_loaded"])
	assert.Equal(t, "5", byMetric["rows_dropped_prefix_filter"])
	assert.Equal(t, "10", byMetric["rows_dropped_expired"])
	assert.Equal(t, "4", byMetric["duplicate_groups_collapsed"])
	assert.Equal(t, "6", byMetric["rows_dropped_dedup"])
	assert.Equal(t, "19", byMetric["final_rows"])
	assert.Contains(t, byMetric, "skipped_file:bad.xlsx")
}
