package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelScanDetector(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		labels   []string
		maxRows  int
		wantIdx  int
		wantOK   bool
	}{
		{
			name: "label in first row",
			rows: [][]string{
				{"340B ID", "Entity Name"},
			},
			labels:  []string{"340B ID"},
			maxRows: 15,
			wantIdx: 0,
			wantOK:  true,
		},
		{
			name: "label after preamble rows",
			rows: [][]string{
				{"HRSA OPA Export"},
				{"Generated 2025-01-05"},
				{},
				{"340B ID", "Entity Name", "Contract Term Date"},
			},
			labels:  []string{"340B ID"},
			maxRows: 15,
			wantIdx: 3,
			wantOK:  true,
		},
		{
			name: "case and whitespace insensitive",
			rows: [][]string{
				{"  340b   id  ", "entity"},
			},
			labels:  []string{"340B ID"},
			maxRows: 15,
			wantIdx: 0,
			wantOK:  true,
		},
		{
			name: "label beyond scan limit",
			rows: [][]string{
				{"x"}, {"x"}, {"x"},
				{"340B ID"},
			},
			labels:  []string{"340B ID"},
			maxRows: 2,
			wantOK:  false,
		},
		{
			name:    "no label anywhere",
			rows:    [][]string{{"foo", "bar"}},
			labels:  []string{"340B ID"},
			maxRows: 15,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := LabelScanDetector{Labels: tt.labels, MaxRows: tt.maxRows}.Detect(tt.rows)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestFixedRowDetector(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}

	idx, ok := FixedRowDetector{Index: 2}.Detect(rows)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = FixedRowDetector{Index: 3}.Detect(rows)
	assert.False(t, ok, "fallback index past the sheet end is unusable")

	_, ok = FixedRowDetector{Index: -1}.Detect(rows)
	assert.False(t, ok)
}

func TestDetectHeader_ChainOrder(t *testing.T) {
	rows := [][]string{
		{"preamble"},
		{"340B ID"},
		{"data"},
	}
	chain := []HeaderDetector{
		LabelScanDetector{Labels: []string{"340B ID"}, MaxRows: 15},
		FixedRowDetector{Index: 0},
	}

	idx, ok := DetectHeader(rows, chain)
	assert.True(t, ok)
	assert.Equal(t, 1, idx, "scan wins over fallback")

	// remove the label: fallback row applies
	rows[1] = []string{"not a header"}
	idx, ok = DetectHeader(rows, chain)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// empty sheet: nothing usable
	_, ok = DetectHeader(nil, chain)
	assert.False(t, ok)
}
