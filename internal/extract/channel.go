package extract

import (
	"adsboard/internal/core"
	"adsboard/internal/sheets"
)

// row wraps one grid row with bounds-checked access. A row shorter than the
// layout's highest column never becomes a record.
type row struct {
	cells []string
}

func rowAt(grid sheets.Grid, idx, maxCol int) (row, bool) {
	if idx >= len(grid) || len(grid[idx]) <= maxCol {
		return row{}, false
	}
	return row{cells: grid[idx]}, true
}

func (r row) get(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// cell returns the field's cell, or "" when the layout does not map it. For
// channel sections the unmapped fields are exactly the ones the sheet does
// not track, so "" coerces to the right zero value.
func (r row) cell(l *Layout, field string) string {
	c, ok := l.Col(field)
	if !ok {
		return ""
	}
	return r.get(c)
}

// Channel extracts one section of a channel summary worksheet. Rows whose
// date cell is blank, a label, or unparseable are skipped, as are rows too
// short to reach the section's last column.
func Channel(grid sheets.Grid, l *Layout) []core.ChannelRecord {
	var out []core.ChannelRecord
	maxCol := l.MaxCol()
	for i := l.StartRow; i < len(grid); i++ {
		r, ok := rowAt(grid, i, maxCol)
		if !ok {
			continue
		}
		d, ok := ParseDate(r.cell(l, FieldDate))
		if !ok {
			continue
		}
		rec := core.ChannelRecord{
			Date:            d,
			Channel:         l.Channel,
			Section:         l.Section,
			Register:        int(ParseNumeric(r.cell(l, FieldRegister), 0)),
			FTD:             int(ParseNumeric(r.cell(l, FieldFTD), 0)),
			FTDRecharge:     ParseNumeric(r.cell(l, FieldFTDRecharge), 0),
			AvgRecharge:     ParseNumeric(r.cell(l, FieldAvgRecharge), 0),
			ConversionRatio: ParseNumeric(r.cell(l, FieldConversionRatio), 0),
			Cost:            ParseNumeric(r.cell(l, FieldCost), 0),
			CPR:             ParseNumeric(r.cell(l, FieldCPR), 0),
			CPFTD:           ParseNumeric(r.cell(l, FieldCPFTD), 0),
			ROAS:            ParseNumeric(r.cell(l, FieldROAS), 0),
			CPM:             ParseNumeric(r.cell(l, FieldCPM), 0),
		}
		rec.DepositAmount = rec.FTDRecharge
		out = append(out, rec)
	}
	return out
}

// ChannelAll extracts every registered section from the Facebook and Google
// summary grids.
func ChannelAll(fb, google sheets.Grid) []core.ChannelRecord {
	var out []core.ChannelRecord
	for _, l := range ChannelLayouts() {
		grid := fb
		if l.Channel == core.ChannelGoogle {
			grid = google
		}
		out = append(out, Channel(grid, &l)...)
	}
	return out
}
