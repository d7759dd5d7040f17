package extract

import (
	"fmt"

	"adsboard/internal/core"
)

// Field names used in channel section layouts.
const (
	FieldDate            = "date"
	FieldCost            = "cost"
	FieldRegister        = "register"
	FieldFTD             = "ftd"
	FieldFTDRecharge     = "ftd_recharge"
	FieldAvgRecharge     = "avg_recharge"
	FieldConversionRatio = "conversion_ratio"
	FieldCPR             = "cpr"
	FieldCPFTD           = "cpftd"
	FieldROAS            = "roas"
	FieldCPM             = "cpm"
)

// channelRequired are the fields every channel section must map. The
// remaining fields are section-dependent and default to zero when unmapped.
var channelRequired = []string{
	FieldDate, FieldCost, FieldFTD, FieldFTDRecharge,
	FieldAvgRecharge, FieldCPR, FieldROAS,
}

// Layout maps the named fields of one sheet section to 0-based column
// indexes. Sections of the same worksheet occupy disjoint column bands, so a
// worksheet is read once and extracted once per layout.
type Layout struct {
	Name     string
	Channel  string
	Section  string
	StartRow int
	Columns  map[string]int
}

// Validate checks that every required field is mapped and no two fields share
// a column. Misconfigured layouts fail at startup instead of silently reading
// the wrong columns.
func (l *Layout) Validate() error {
	for _, f := range channelRequired {
		if _, ok := l.Columns[f]; !ok {
			return fmt.Errorf("layout %s: required field %q is not mapped", l.Name, f)
		}
	}
	seen := make(map[int]string, len(l.Columns))
	for f, col := range l.Columns {
		if col < 0 {
			return fmt.Errorf("layout %s: field %q has negative column %d", l.Name, f, col)
		}
		if other, dup := seen[col]; dup {
			return fmt.Errorf("layout %s: fields %q and %q both map to column %d", l.Name, f, other, col)
		}
		seen[col] = f
	}
	return nil
}

// MaxCol is the highest mapped column index. Rows that do not reach it are
// skipped whole rather than read partially.
func (l *Layout) MaxCol() int {
	m := 0
	for _, c := range l.Columns {
		if c > m {
			m = c
		}
	}
	return m
}

// Col returns the column index for field, and whether the layout maps it.
func (l *Layout) Col(field string) (int, bool) {
	c, ok := l.Columns[field]
	return c, ok
}

// ChannelLayouts returns the section layouts of the two channel summary
// worksheets. Column positions mirror the live sheets; changing a sheet means
// changing exactly one entry here.
func ChannelLayouts() []Layout {
	return []Layout{
		{
			Name:     "fb_daily_roi",
			Channel:  core.ChannelFacebook,
			Section:  core.SectionDailyROI,
			StartRow: 4,
			Columns: map[string]int{
				FieldDate: 1, FieldCost: 2, FieldRegister: 3, FieldFTD: 4,
				FieldFTDRecharge: 5, FieldAvgRecharge: 6, FieldConversionRatio: 7,
				FieldCPR: 8, FieldCPFTD: 9, FieldROAS: 10, FieldCPM: 11,
			},
		},
		{
			Name:     "fb_roll_back",
			Channel:  core.ChannelFacebook,
			Section:  core.SectionRollBack,
			StartRow: 4,
			Columns: map[string]int{
				FieldDate: 13, FieldCost: 14, FieldRegister: 15, FieldFTD: 16,
				FieldFTDRecharge: 17, FieldAvgRecharge: 18, FieldConversionRatio: 19,
				FieldCPR: 20, FieldCPFTD: 21, FieldROAS: 22, FieldCPM: 23,
			},
		},
		{
			Name:     "fb_violet",
			Channel:  core.ChannelFacebook,
			Section:  core.SectionViolet,
			StartRow: 4,
			Columns: map[string]int{
				FieldDate: 25, FieldFTD: 26, FieldFTDRecharge: 27,
				FieldAvgRecharge: 28, FieldCost: 29, FieldCPR: 30, FieldROAS: 31,
			},
		},
		{
			Name:     "google_daily_roi",
			Channel:  core.ChannelGoogle,
			Section:  core.SectionDailyROI,
			StartRow: 3,
			Columns: map[string]int{
				FieldDate: 1, FieldCost: 2, FieldRegister: 3, FieldFTD: 4,
				FieldFTDRecharge: 5, FieldAvgRecharge: 6, FieldConversionRatio: 7,
				FieldCPR: 8, FieldCPFTD: 9, FieldROAS: 10, FieldCPM: 11,
			},
		},
		{
			Name:     "google_roll_back",
			Channel:  core.ChannelGoogle,
			Section:  core.SectionRollBack,
			StartRow: 3,
			Columns: map[string]int{
				FieldDate: 13, FieldCost: 14, FieldRegister: 15, FieldFTD: 16,
				FieldFTDRecharge: 17, FieldAvgRecharge: 18,
				FieldCPR: 19, FieldCPFTD: 20, FieldROAS: 21, FieldCPM: 22,
			},
		},
		{
			Name:     "google_violet",
			Channel:  core.ChannelGoogle,
			Section:  core.SectionViolet,
			StartRow: 3,
			Columns: map[string]int{
				FieldDate: 24, FieldFTD: 25, FieldFTDRecharge: 26,
				FieldAvgRecharge: 27, FieldCost: 28, FieldCPR: 29, FieldROAS: 30,
			},
		},
	}
}

// ValidateLayouts validates the full channel registry. Called from config
// validation so a bad layout stops the process at startup.
func ValidateLayouts() error {
	layouts := ChannelLayouts()
	for i := range layouts {
		if err := layouts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
