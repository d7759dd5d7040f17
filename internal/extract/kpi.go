package extract

import (
	"strings"
	"time"

	"adsboard/internal/core"
	"adsboard/internal/sheets"
)

// The KPI worksheet lays one column band per person, names on the second row.
var kpiBandStarts = []int{17, 27, 37, 47, 57, 67, 77, 87}

const (
	kpiNamesRow  = 1
	kpiDataStart = 4

	kpiDateOff        = 0
	kpiTypeOff        = 1
	kpiSpendOff       = 2
	kpiCostPHPOff     = 3
	kpiFTDOff         = 4
	kpiRegisterOff    = 5
	kpiReachOff       = 6
	kpiImpressionsOff = 7
	kpiClicksOff      = 8
)

// KPI extracts per-person daily rows from the individual KPI worksheet. A row
// counts when its date parses and its spend is non-zero. Ratio metrics are
// derived here, with zero denominators clamped to zero. Persons named in
// excluded are dropped entirely.
func KPI(grid sheets.Grid, now time.Time, excluded []string) []core.KPIRecord {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[strings.ToUpper(strings.TrimSpace(name))] = true
	}

	var names []string
	if kpiNamesRow < len(grid) {
		names = grid[kpiNamesRow]
	}

	var out []core.KPIRecord
	for _, start := range kpiBandStarts {
		name := strings.ToUpper(strings.TrimSpace(cellAt(names, start)))
		if name == "" || skip[name] {
			continue
		}
		for i := kpiDataStart; i < len(grid); i++ {
			r := grid[i]
			d, ok := ParseLooseDate(cellAt(r, start+kpiDateOff), now)
			if !ok {
				continue
			}
			spend := ParseLooseNumeric(cellAt(r, start+kpiSpendOff), 0)
			if spend == 0 {
				continue
			}
			register := int(ParseLooseNumeric(cellAt(r, start+kpiRegisterOff), 0))
			ftd := int(ParseLooseNumeric(cellAt(r, start+kpiFTDOff), 0))
			impressions := int(ParseLooseNumeric(cellAt(r, start+kpiImpressionsOff), 0))
			clicks := int(ParseLooseNumeric(cellAt(r, start+kpiClicksOff), 0))
			out = append(out, core.KPIRecord{
				Date:            d,
				Agent:           name,
				Spend:           spend,
				CostPHP:         ParseLooseNumeric(cellAt(r, start+kpiCostPHPOff), 0),
				FTD:             ftd,
				Register:        register,
				Reach:           int(ParseLooseNumeric(cellAt(r, start+kpiReachOff), 0)),
				Impressions:     impressions,
				Clicks:          clicks,
				CTR:             core.Round2(core.SafeDiv(float64(clicks), float64(impressions)) * 100),
				CPC:             core.Round2(core.SafeDiv(spend, float64(clicks))),
				CPM:             core.Round2(core.SafeDiv(spend, float64(impressions)) * 1000),
				CostPerRegister: core.Round2(core.SafeDiv(spend, float64(register))),
				CostPerFTD:      core.Round2(core.SafeDiv(spend, float64(ftd))),
			})
		}
	}
	return out
}
