package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"enroll340b/pkg/contracts/domain"
)

// rootIDRe captures the leading <PREFIX><DIGITS> part of a 340B ID, stopping
// before the optional -<suffix> that distinguishes pharmacy locations
// (e.g. "PED453310-00" -> "PED453310").
var rootIDRe = regexp.MustCompile(`^[A-Z]+[0-9]+`)

// DeriveRootID derives the dedup key from a raw 340B ID. The result is
// upper-cased; IDs that do not match the <PREFIX><DIGITS> grammar yield "".
func DeriveRootID(rawID string) string {
	return rootIDRe.FindString(strings.ToUpper(strings.TrimSpace(rawID)))
}

// dateLayouts are the textual date formats seen across export sources
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"01/02/06",
	"1/2/06",
	"2-Jan-06",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// excelEpoch is day zero of Excel's 1900 date system
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate coerces a cell's text into a date. Empty or unparsable text
// yields nil, never an error. Numeric text is interpreted as an Excel date
// serial, which excelize surfaces for unformatted date cells.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.Truncate(24 * time.Hour)
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 300000 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t
	}

	return nil
}

// Normalize annotates each row with its RootID and coerced dates, producing a
// new slice; input rows are never mutated in place.
func Normalize(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, len(rows))
	for i, r := range rows {
		r.RootID = DeriveRootID(r.RawID)
		r.BeginDate = ParseDate(r.RawBegin)
		r.TermDate = ParseDate(r.RawTerm)
		out[i] = r
	}
	return out
}
