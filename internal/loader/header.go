package loader

// HeaderDetector locates the header row within the raw rows of a sheet.
// Detectors are tried in order; the first success wins.
type HeaderDetector interface {
	Detect(rows [][]string) (int, bool)
}

// LabelScanDetector finds the first row within MaxRows whose cells contain a
// cell equal (whitespace-normalized, case-insensitive) to one of Labels.
type LabelScanDetector struct {
	Labels  []string
	MaxRows int
}

// Detect implements HeaderDetector
func (d LabelScanDetector) Detect(rows [][]string) (int, bool) {
	limit := len(rows)
	if d.MaxRows > 0 && d.MaxRows < limit {
		limit = d.MaxRows
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			for _, label := range d.Labels {
				if normalizeLabel(cell) == normalizeLabel(label) {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// FixedRowDetector unconditionally reports a fixed row index, provided the
// sheet actually has that many rows. Used as the final fallback in a chain.
type FixedRowDetector struct {
	Index int
}

// Detect implements HeaderDetector
func (d FixedRowDetector) Detect(rows [][]string) (int, bool) {
	if d.Index < 0 || d.Index >= len(rows) {
		return 0, false
	}
	return d.Index, true
}

// DetectHeader runs a detector chain over the sheet rows
func DetectHeader(rows [][]string, chain []HeaderDetector) (int, bool) {
	for _, det := range chain {
		if idx, ok := det.Detect(rows); ok {
			return idx, true
		}
	}
	return 0, false
}
