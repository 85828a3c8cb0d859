// Package files provides file system discovery utilities for the 340B
// contract-enrollment cleaner.
//
// Discovery locates Excel workbooks in an input directory, excluding Excel
// lock files ("~$" prefix) left behind by open workbooks, and returns them
// in a stable name order so repeated runs load files deterministically.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	exports, err := discovery.FindSpreadsheetFiles("/path/to/exports")
package files
