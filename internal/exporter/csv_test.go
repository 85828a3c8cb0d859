package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteSimpleCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "report.csv")

	w := NewCSVWriter(nil)
	err := w.WriteSimpleCSV(path, []string{"metric", "value"}, [][]string{
		{"rows_loaded", "10"},
		{"final_rows", "7"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "UTF-8 BOM for Excel")

	records := readCSV(t, path)
	assert.Equal(t, [][]string{
		{"metric", "value"},
		{"rows_loaded", "10"},
		{"final_rows", "7"},
	}, records)
}

func TestWriteCSV_NoHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.csv")

	w := NewCSVWriter(nil)
	err := w.WriteCSV(path, WriteOptions{Records: [][]string{{"a", "b"}}})
	require.NoError(t, err)

	records := readCSV(t, path)
	assert.Equal(t, [][]string{{"a", "b"}}, records)
}

func TestWriteCSV_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	// a file where a parent directory is expected
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	w := NewCSVWriter(nil)
	err := w.WriteCSV(filepath.Join(blocker, "sub", "report.csv"), WriteOptions{})
	assert.Error(t, err)
}
