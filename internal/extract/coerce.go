// Package extract turns raw spreadsheet grids into typed records. The sheets
// it reads are hand-maintained, so every coercion here is lenient: junk cells
// yield "no value" (or a caller default) rather than an error, and a bad row
// is skipped rather than failing the whole sheet.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// dateLayouts are tried in order. Slash-first matches how the summary sheets
// are actually typed; ISO and day-first forms cover the older tabs.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
	"2/1/2006",
	"1-2-2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// dateRejectWords are header fragments that show up in date columns of the
// summary sheets. A cell containing any of them is a label, not a date.
var dateRejectWords = []string{"MONTH", "DATE", "GOOGLE", "CHANNEL", "REPORT"}

// looseRejectWords play the same role for the agent-maintained sheets, whose
// date columns share a band with type and content labels.
var looseRejectWords = []string{"TYPE", "PRIMARY", "CONTENT", "DATE", "CONDITION"}

// ParseDate parses a cell from a summary-sheet date column. It returns false
// for blank cells, header labels, and anything no layout accepts.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	upper := strings.ToUpper(s)
	for _, w := range dateRejectWords {
		if strings.Contains(upper, w) {
			return time.Time{}, false
		}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Two-digit years always mean the 2000s, but Go maps 69-99 to 19xx.
		if layout == "1/2/06" && t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

var repeatedSlashes = regexp.MustCompile(`/+`)

// ParseLooseDate parses a date from the agent sheets, which mix in typos
// ("9//21", trailing slashes), month/day values without a year, and raw Excel
// serial numbers. now supplies the year for year-less values.
func ParseLooseDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) > 20 {
		return time.Time{}, false
	}
	upper := strings.ToUpper(s)
	for _, w := range looseRejectWords {
		if strings.Contains(upper, w) {
			return time.Time{}, false
		}
	}
	s = repeatedSlashes.ReplaceAllString(s, "/")
	s = strings.Trim(s, "/")
	if s == "" {
		return time.Time{}, false
	}

	layouts := []string{
		"1/2/2006",
		"1/2/06",
		"1/2",
		"2006-01-02",
		"2/1/2006",
		"1-2-2006",
		"January 2, 2006",
		"Jan 2, 2006",
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		switch {
		case t.Year() == 0:
			// Month/day only. Pin to the current year.
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		case t.Year() > now.Year()+10:
			// A misread two-digit year landed a century ahead.
			t = t.AddDate(-100, 0, 0)
		}
		return t, true
	}

	return parseSerialDate(s)
}

// excelEpoch is the day-zero of spreadsheet serial dates (1899-12-30, which
// absorbs the historical leap-year bug).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseSerialDate interprets a numeric cell as an Excel date serial. Values
// outside (1, 100000) are considered plain numbers, not dates.
func parseSerialDate(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 1 || f >= 100000 {
		return time.Time{}, false
	}
	return excelEpoch.Add(time.Duration(f * 24 * float64(time.Hour))), true
}

var numericStripper = strings.NewReplacer(",", "", "$", "", "₱", "", "%", "", " ", "")

// ParseNumeric parses a currency or percentage cell from the summary sheets,
// stripping thousands separators and unit symbols. Unparseable cells yield
// def.
func ParseNumeric(raw string, def float64) float64 {
	s := numericStripper.Replace(strings.TrimSpace(raw))
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// ParseLooseNumeric parses a numeric cell from the agent sheets by keeping
// only digits, the decimal point, and a minus sign. This survives free-form
// annotations like "1,234.50 php".
func ParseLooseNumeric(raw string, def float64) float64 {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

var digitRuns = regexp.MustCompile(`\d+`)

// ParseCreativeTotal sums every digit run in a creative total cell, so
// "7 Banners & 2 Videos" counts as 9. Cells with no digits yield def.
func ParseCreativeTotal(raw string, def int) int {
	runs := digitRuns.FindAllString(raw, -1)
	if len(runs) == 0 {
		return def
	}
	total := 0
	for _, r := range runs {
		n, err := strconv.Atoi(r)
		if err != nil {
			return def
		}
		total += n
	}
	return total
}
