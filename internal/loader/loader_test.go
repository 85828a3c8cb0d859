package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"enroll340b/internal/config"
	"enroll340b/internal/errors"
)

func testPipelineConfig() config.PipelineConfig {
	return config.Default().Pipeline
}

// writeWorkbook creates an xlsx fixture whose first sheet holds the given rows
func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "export.xlsx"), [][]interface{}{
		{"HRSA OPA Contract Pharmacy Export"},
		{},
		{"340B ID", "Entity Name", "Pharmacy Name", "Contract Begin Date", "Contract Term Date", "City"},
		{"DSH30062-01", "General Hospital", "Corner Pharmacy", "2023-06-01", "", "Springfield"},
		{"PED453310-00", "Children's Clinic", "Main St Rx", "2019-02-11", "2020-11-13", "Riverton"},
		{},
	})

	l := New(testPipelineConfig(), nil)
	ds, skipped, err := l.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, ds.Rows, 2)

	first := ds.Rows[0]
	assert.Equal(t, "DSH30062-01", first.RawID)
	assert.Equal(t, "General Hospital", first.EntityName)
	assert.Equal(t, "Corner Pharmacy", first.PharmacyName)
	assert.Equal(t, "2023-06-01", first.RawBegin)
	assert.Equal(t, "", first.RawTerm)
	assert.Equal(t, "export.xlsx", first.SourceFile)
	assert.Equal(t, "Springfield", first.Extra["City"])

	assert.Equal(t, []string{"340B ID", "Entity Name", "Pharmacy Name", "Contract Begin Date", "Contract Term Date", "City"}, ds.Columns)
}

func TestLoad_HeaderAtFallbackRow(t *testing.T) {
	dir := t.TempDir()
	// header labels don't include a recognized ID label variant the scanner
	// looks for, but the fallback index (row 3, 0-based) still lands on a row
	// where column resolution succeeds via substring matching
	writeWorkbook(t, filepath.Join(dir, "export.xlsx"), [][]interface{}{
		{"preamble"},
		{},
		{},
		{"340B ID Number", "Begin Date", "Term Date"},
		{"DSH111-00", "2022-01-01", ""},
	})

	l := New(testPipelineConfig(), nil)
	ds, skipped, err := l.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "DSH111-00", ds.Rows[0].RawID)
}

func TestLoad_SkipsFileMissingMandatoryColumns(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "good.xlsx"), [][]interface{}{
		{"340B ID", "Begin Date", "Term Date"},
		{"PED9-00", "2021-05-05", ""},
	})
	writeWorkbook(t, filepath.Join(dir, "bad.xlsx"), [][]interface{}{
		{"340B ID", "Entity Name"}, // no date columns
		{"DSH1-00", "Hospital"},
	})

	l := New(testPipelineConfig(), nil)
	ds, skipped, err := l.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, skipped, 1)
	assert.Equal(t, "bad.xlsx", skipped[0].Name)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "PED9-00", ds.Rows[0].RawID)
}

func TestLoad_NoInputFiles(t *testing.T) {
	l := New(testPipelineConfig(), nil)
	_, _, err := l.Load(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, errors.ErrNoInputFiles)
}

func TestLoad_ColumnUnionAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "a.xlsx"), [][]interface{}{
		{"340B ID", "Begin Date", "Term Date", "City"},
		{"DSH1-00", "2021-01-01", "", "Springfield"},
	})
	writeWorkbook(t, filepath.Join(dir, "b.xlsx"), [][]interface{}{
		{"340B ID", "Begin Date", "Term Date", "State"},
		{"PED2-00", "2022-02-02", "", "IL"},
	})

	l := New(testPipelineConfig(), nil)
	ds, skipped, err := l.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, []string{"340B ID", "Begin Date", "Term Date", "City", "State"}, ds.Columns,
		"union in first-seen order, duplicates collapsed")
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "a.xlsx", ds.Rows[0].SourceFile)
	assert.Equal(t, "b.xlsx", ds.Rows[1].SourceFile)
}

func TestLoad_ManyRows(t *testing.T) {
	dir := t.TempDir()
	rows := [][]interface{}{{"340B ID", "Begin Date", "Term Date"}}
	for i := 0; i < 50; i++ {
		rows = append(rows, []interface{}{fmt.Sprintf("DSH%05d-00", i), "2021-01-01", ""})
	}
	writeWorkbook(t, filepath.Join(dir, "bulk.xlsx"), rows)

	l := New(testPipelineConfig(), nil)
	ds, _, err := l.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 50)
}
