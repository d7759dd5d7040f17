package extract

import (
	"regexp"
	"strings"
	"time"

	"adsboard/internal/core"
	"adsboard/internal/sheets"
)

// The counterpart and team sheets stack an overall block and one block per
// day in a single worksheet, separated by banner rows. Extraction walks the
// rows as a small state machine keyed on those banners.
const overallBanner = "OVERALL PERFORMANCE"

var monthDayBanner = regexp.MustCompile(`^[A-Za-z]+ \d{1,2}$`)

// blockDate recognizes a day banner such as "January 27" and pins it to the
// current year.
func blockDate(cell string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if !monthDayBanner.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse("January 2", s)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// bannerCell scans the leading cells of a row for a block banner.
func bannerCell(r []string) string {
	for i := 0; i < 4 && i < len(r); i++ {
		if c := strings.TrimSpace(r[i]); c != "" {
			return c
		}
	}
	return ""
}

// skipRow drops label and summary rows inside any block. The keywords must
// not match real source names, which routinely contain the word "channel",
// so the header row "CHANNEL SOURCE" is caught by "SOURCE" alone.
func skipRow(source string) bool {
	if source == "" {
		return true
	}
	upper := strings.ToUpper(source)
	for _, w := range []string{"TOTAL", "SOURCE", "DATE"} {
		if strings.Contains(upper, w) {
			return true
		}
	}
	return false
}

// Counterpart column bands: Facebook on the left, Google on the right, same
// field order in both.
const (
	counterpartDataStart = 3
	counterpartFBStart   = 1
	counterpartGGStart   = 9

	cpSourceOff        = 0
	cpFirstRechargeOff = 1
	cpTotalAmountOff   = 2
	cpARPPUOff         = 3
	cpSpendingOff      = 4
	cpCostPerRechOff   = 5
	cpROASOff          = 6
)

// Counterpart extracts the counterpart performance worksheet. Rows above the
// first day banner belong to the overall block and carry a zero date.
func Counterpart(grid sheets.Grid, now time.Time) []core.CounterpartRecord {
	var out []core.CounterpartRecord
	var cur time.Time
	for i := counterpartDataStart; i < len(grid); i++ {
		r := grid[i]
		banner := bannerCell(r)
		if strings.Contains(strings.ToUpper(banner), overallBanner) {
			cur = time.Time{}
			continue
		}
		if d, ok := blockDate(banner, now); ok {
			cur = d
			continue
		}
		for _, band := range []struct {
			channel string
			start   int
		}{
			{core.ChannelFacebook, counterpartFBStart},
			{core.ChannelGoogle, counterpartGGStart},
		} {
			source := cellAt(r, band.start+cpSourceOff)
			if skipRow(source) {
				continue
			}
			out = append(out, core.CounterpartRecord{
				Date:            cur,
				Channel:         band.channel,
				ChannelSource:   source,
				FirstRecharge:   int(ParseNumeric(cellAt(r, band.start+cpFirstRechargeOff), 0)),
				TotalAmount:     ParseNumeric(cellAt(r, band.start+cpTotalAmountOff), 0),
				ARPPU:           ParseNumeric(cellAt(r, band.start+cpARPPUOff), 0),
				Spending:        ParseNumeric(cellAt(r, band.start+cpSpendingOff), 0),
				CostPerRecharge: ParseNumeric(cellAt(r, band.start+cpCostPerRechOff), 0),
				ROAS:            ParseNumeric(cellAt(r, band.start+cpROASOff), 0),
			})
		}
	}
	return out
}

// Team channel sheet columns.
const (
	teamDataStart = 4

	teamNameCol          = 1
	teamSourceCol        = 2
	teamCostCol          = 3
	teamRegistrationsCol = 4
	teamFirstRechargeCol = 5
	teamTotalAmountCol   = 6
	teamARPPUCol         = 7
)

// TeamChannel extracts the team channel worksheet, which uses the same
// overall/day block structure as the counterpart sheet.
func TeamChannel(grid sheets.Grid, now time.Time) []core.TeamChannelRecord {
	var out []core.TeamChannelRecord
	var cur time.Time
	for i := teamDataStart; i < len(grid); i++ {
		r := grid[i]
		banner := bannerCell(r)
		if strings.Contains(strings.ToUpper(banner), overallBanner) {
			cur = time.Time{}
			continue
		}
		if d, ok := blockDate(banner, now); ok {
			cur = d
			continue
		}
		source := cellAt(r, teamSourceCol)
		if skipRow(source) {
			continue
		}
		out = append(out, core.TeamChannelRecord{
			Date:          cur,
			TeamName:      cellAt(r, teamNameCol),
			ChannelSource: source,
			Cost:          ParseNumeric(cellAt(r, teamCostCol), 0),
			Registrations: int(ParseNumeric(cellAt(r, teamRegistrationsCol), 0)),
			FirstRecharge: int(ParseNumeric(cellAt(r, teamFirstRechargeCol), 0)),
			TotalAmount:   ParseNumeric(cellAt(r, teamTotalAmountCol), 0),
			ARPPU:         ParseNumeric(cellAt(r, teamARPPUCol), 0),
		})
	}
	return out
}
