package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "340b id", normalizeLabel("  340B   ID "))
	assert.Equal(t, "contract term date", normalizeLabel("Contract Term Date"))
	assert.Equal(t, "", normalizeLabel("   "))
}

func TestBestMatchColumn(t *testing.T) {
	header := []string{"Entity Name", "340B ID", "Contract Begin Date", "Term Date"}

	tests := []struct {
		name       string
		candidates []string
		want       int
	}{
		{"exact id match", []string{"340B ID", "340BID", "ID"}, 1},
		{"exact begin match", []string{"Contract Begin Date", "Begin Date"}, 2},
		{"synonym order respected", []string{"Contract Term Date", "Term Date"}, 3},
		{"no match", []string{"Medicaid Number"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestMatchColumn(header, tt.candidates))
		})
	}
}

func TestBestMatchColumn_SubstringFallback(t *testing.T) {
	header := []string{"Covered Entity Name (full)", "340B ID Number"}

	// no exact normalized match, substring contains kicks in
	assert.Equal(t, 1, bestMatchColumn(header, []string{"340B ID"}))
	assert.Equal(t, 0, bestMatchColumn(header, []string{"Covered Entity Name"}))
}

func TestBestMatchColumn_ExactWinsOverSubstring(t *testing.T) {
	header := []string{"Old ID (deprecated)", "ID"}
	assert.Equal(t, 1, bestMatchColumn(header, []string{"ID"}))
}

func TestResolveColumns(t *testing.T) {
	header := []string{"340B ID", "Entity Name", "Pharmacy Name", "Contract Begin Date", "Contract Term Date", "City", "State"}

	resolved := resolveColumns(header)

	assert.Equal(t, 0, resolved[FieldID])
	assert.Equal(t, 1, resolved[FieldEntity])
	assert.Equal(t, 2, resolved[FieldPharmacy])
	assert.Equal(t, 3, resolved[FieldBegin])
	assert.Equal(t, 4, resolved[FieldTerm])
	assert.Equal(t, 5, resolved["city"])

	_, hasZip := resolved["zip"]
	assert.False(t, hasZip)
}
