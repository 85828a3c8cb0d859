// Package loader reads 340B contract-enrollment spreadsheet exports into the
// pipeline's tabular Dataset.
//
// Each export arrives with its header row at a slightly different position
// and with slightly different column labels, so loading happens in three
// steps per file:
//
// 1. Header detection: a detector chain scans the first rows for a cell
// matching a known ID-column label, falling back to a fixed row index when
// the scan misses.
//
// 2. Column resolution: header labels are matched against a synonym
// vocabulary (exact normalized match first, substring contains last) to find
// the ID, entity, pharmacy and contract date columns.
//
// 3. Row extraction: data rows below the header become domain Rows tagged
// with their source file; every original column rides along as a
// pass-through field.
//
// Files whose header or mandatory columns cannot be located are skipped and
// recorded, never fatal; an input directory with no workbooks at all is.
package loader
