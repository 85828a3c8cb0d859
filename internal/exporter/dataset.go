package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"enroll340b/internal/errors"
)

// datasetSheet is the sheet name of the cleaned output workbook
const datasetSheet = "Cleaned"

// DatasetWriter writes the final projected dataset as an Excel workbook
type DatasetWriter struct {
	logger *slog.Logger
}

// NewDatasetWriter creates a new dataset writer instance
func NewDatasetWriter(logger *slog.Logger) *DatasetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetWriter{logger: logger}
}

// Write emits the headers and records to an xlsx file at path, creating
// intermediate directories. Any failure here is the fatal WRITE_ERROR.
func (w *DatasetWriter) Write(path string, headers []string, records [][]string) error {
	w.logger.Info("Writing cleaned dataset",
		slog.String("path", path),
		slog.Int("rows", len(records)),
		slog.Int("columns", len(headers)))

	if err := ensureDir(path); err != nil {
		return errors.WriteFailed(path, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(datasetSheet)
	if err != nil {
		return errors.WriteFailed(path, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.WriteFailed(path, err)
	}

	if err := setRow(f, 1, headers); err != nil {
		return errors.WriteFailed(path, err)
	}
	for i, record := range records {
		if err := setRow(f, i+2, record); err != nil {
			return errors.WriteFailed(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}

// setRow writes one string row at the given 1-based row number
func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(datasetSheet, cell, &cells)
}

// ensureDir creates the directory containing path
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
