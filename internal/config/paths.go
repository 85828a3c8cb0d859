package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MonthStampedOutput inserts a YYYY-MM directory between the output path's
// parent and base name, so each monthly run lands in its own folder
// (e.g. out/cleaned.xlsx on 2025-03-10 becomes out/2025-03/cleaned.xlsx).
func MonthStampedOutput(outputPath string, runDate time.Time) string {
	dir := filepath.Dir(outputPath)
	return filepath.Join(dir, runDate.Format("2006-01"), filepath.Base(outputPath))
}

// EnsureDir creates the directory containing path, including parents
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// SummaryPath derives the companion summary report path from the dataset path
// (cleaned.xlsx -> cleaned_summary.csv).
func SummaryPath(outputPath string) string {
	return siblingPath(outputPath, "_summary.csv")
}

// DiffPath derives the companion diff report path from the dataset path
func DiffPath(outputPath string) string {
	return siblingPath(outputPath, "_diff.csv")
}

func siblingPath(outputPath, suffix string) string {
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	return filepath.Join(filepath.Dir(outputPath), stem+suffix)
}
