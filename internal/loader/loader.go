package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"enroll340b/internal/config"
	"enroll340b/internal/errors"
	"enroll340b/internal/files"
	"enroll340b/pkg/contracts/domain"
)

// Loader reads every spreadsheet in an input directory into one Dataset.
// Per-file structural problems (no header, missing mandatory columns) skip
// the file and are recorded; they never abort the run.
type Loader struct {
	cfg       config.PipelineConfig
	logger    *slog.Logger
	discovery *files.Discovery
}

// New creates a Loader with the given pipeline settings
func New(cfg config.PipelineConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		cfg:       cfg,
		logger:    logger,
		discovery: files.NewDiscovery(""),
	}
}

// Load reads all spreadsheet files in dir and concatenates their rows.
// Returns the fatal NoInputFiles error when the directory holds no workbooks.
func (l *Loader) Load(ctx context.Context, dir string) (*domain.Dataset, []domain.SkippedFile, error) {
	found, err := l.discovery.FindSpreadsheetFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("discovering input files: %w", err)
	}
	if len(found) == 0 {
		return nil, nil, errors.NoInputFiles(dir)
	}

	dataset := &domain.Dataset{}
	var skipped []domain.SkippedFile

	for _, file := range found {
		rows, columns, err := l.parseFile(file.Path, file.Name)
		if err != nil {
			l.logger.WarnContext(ctx, "skipping input file",
				slog.String("file", file.Name),
				slog.String("error", err.Error()))
			skipped = append(skipped, domain.SkippedFile{Name: file.Name, Reason: err.Error()})
			continue
		}

		dataset.AddColumns(columns)
		dataset.Rows = append(dataset.Rows, rows...)

		l.logger.InfoContext(ctx, "loaded input file",
			slog.String("file", file.Name),
			slog.Int("rows", len(rows)),
			slog.Int("columns", len(columns)))
	}

	return dataset, skipped, nil
}

// Discovered returns how many workbooks the directory holds, for the summary
func (l *Loader) Discovered(dir string) (int, error) {
	found, err := l.discovery.FindSpreadsheetFiles(dir)
	if err != nil {
		return 0, err
	}
	return len(found), nil
}

// parseFile reads the first sheet of one workbook into rows plus the original
// column names in sheet order.
func (l *Loader) parseFile(path, name string) ([]domain.Row, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.HeaderNotFound(name)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	chain := []HeaderDetector{
		LabelScanDetector{Labels: IDHeaderLabels, MaxRows: l.cfg.HeaderScanRows},
		FixedRowDetector{Index: l.cfg.FallbackHeaderRow},
	}
	headerIdx, ok := DetectHeader(rows, chain)
	if !ok {
		return nil, nil, errors.HeaderNotFound(name)
	}

	header := rows[headerIdx]
	resolved := resolveColumns(header)

	var missing []string
	for _, field := range []string{FieldID, FieldBegin, FieldTerm} {
		if _, found := resolved[field]; !found {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, nil, errors.MissingColumns(name, missing)
	}

	columns := make([]string, 0, len(header))
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			columns = append(columns, strings.TrimSpace(h))
		}
	}

	var out []domain.Row
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		r := domain.Row{
			RawID:      strings.TrimSpace(cellAt(row, resolved[FieldID])),
			RawBegin:   strings.TrimSpace(cellAt(row, resolved[FieldBegin])),
			RawTerm:    strings.TrimSpace(cellAt(row, resolved[FieldTerm])),
			SourceFile: name,
			Extra:      make(map[string]string, len(header)),
		}
		if idx, found := resolved[FieldEntity]; found {
			r.EntityName = strings.TrimSpace(cellAt(row, idx))
		}
		if idx, found := resolved[FieldPharmacy]; found {
			r.PharmacyName = strings.TrimSpace(cellAt(row, idx))
		}

		// Every original column rides along for the projector
		for j, h := range header {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if _, dup := r.Extra[h]; dup {
				continue
			}
			r.Extra[h] = strings.TrimSpace(cellAt(row, j))
		}

		out = append(out, r)
	}

	return out, columns, nil
}

// cellAt returns the cell at idx, tolerating short rows
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// isEmptyRow reports whether every cell is blank
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
