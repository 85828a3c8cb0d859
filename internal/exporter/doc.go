// Package exporter writes the pipeline's outputs: the cleaned dataset
// workbook, the companion summary report, and the optional reference diff.
//
// DatasetWriter: renders the projected dataset as a single-sheet xlsx file,
// creating intermediate directories. A destination that cannot be written is
// the run's fatal WRITE_ERROR.
//
// CSVWriter: core CSV writing with UTF-8 BOM for Excel compatibility, used
// by the summary and diff reports.
//
// Example usage:
//
//	dw := exporter.NewDatasetWriter(logger)
//	err := dw.Write("out/2025-03/cleaned.xlsx", projection.Headers, projection.Records)
//
//	cw := exporter.NewCSVWriter(logger)
//	err = cw.WriteSummary("out/2025-03/cleaned_summary.csv", result.Summary)
package exporter
