package loader

import (
	"regexp"
	"strings"
)

// Canonical field keys used by the pipeline
const (
	FieldID       = "id"
	FieldEntity   = "entity"
	FieldPharmacy = "pharmacy"
	FieldBegin    = "begin"
	FieldTerm     = "term"
)

// columnSynonyms maps each canonical field to the header labels seen across
// the different export sources. Matching is whitespace-normalized and
// case-insensitive; exact match is tried first, substring contains last.
var columnSynonyms = map[string][]string{
	FieldID:       {"340B ID", "340BID", "ID"},
	FieldEntity:   {"Entity Name", "Covered Entity Name", "Covered Entity", "Entity"},
	FieldPharmacy: {"Pharmacy Name", "Pharmacy", "Doing Business As", "DBA"},
	FieldBegin:    {"Contract Begin Date", "Begin Date", "Contract Start Date", "Start Date"},
	FieldTerm:     {"Contract Term Date", "Termination Date", "Contract End Date", "End Date", "Term Date"},
	"city":        {"City"},
	"state":       {"State"},
	"zip":         {"Zip", "ZIP", "Zip Code", "Postal Code"},
}

// IDHeaderLabels are the labels the header detector scans for
var IDHeaderLabels = columnSynonyms[FieldID]

var spaceRe = regexp.MustCompile(`\s+`)

// normalizeLabel collapses whitespace and lower-cases a header label
func normalizeLabel(s string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// bestMatchColumn returns the index in header of the first column matching any
// candidate label, or -1. Exact normalized match wins over substring contains.
func bestMatchColumn(header []string, candidates []string) int {
	normHeader := make([]string, len(header))
	for i, h := range header {
		normHeader[i] = normalizeLabel(h)
	}
	for _, cand := range candidates {
		key := normalizeLabel(cand)
		for i, h := range normHeader {
			if h == key {
				return i
			}
		}
	}
	for i, h := range normHeader {
		for _, cand := range candidates {
			if h != "" && strings.Contains(h, normalizeLabel(cand)) {
				return i
			}
		}
	}
	return -1
}

// CanonicalField returns the canonical field key a header label maps to, or
// "" for a pass-through column. The projector uses this to avoid emitting a
// source column twice when its content already appears as a curated field.
func CanonicalField(label string) string {
	for _, field := range []string{FieldID, FieldEntity, FieldPharmacy, FieldBegin, FieldTerm} {
		for _, cand := range columnSynonyms[field] {
			if normalizeLabel(label) == normalizeLabel(cand) {
				return field
			}
		}
	}
	return ""
}

// resolveColumns maps canonical field keys to column indexes for one header
// row. Fields whose labels are absent are simply missing from the map.
func resolveColumns(header []string) map[string]int {
	resolved := make(map[string]int, len(columnSynonyms))
	for field, candidates := range columnSynonyms {
		if idx := bestMatchColumn(header, candidates); idx >= 0 {
			resolved[field] = idx
		}
	}
	return resolved
}
