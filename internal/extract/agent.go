package extract

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"adsboard/internal/core"
	"adsboard/internal/sheets"
)

// titleCase normalizes free-form labels like folder and SMS type names.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// Column bands of an agent performance worksheet. One worksheet carries three
// independent tables side by side; each band is extracted on its own pass.
const (
	adsDateCol        = 0
	adsSpentCol       = 1
	adsTotalAdCol     = 2
	adsCampaignCol    = 3
	adsImpressionsCol = 4
	adsClicksCol      = 5
	adsCTRCol         = 6
	adsCPCCol         = 7
	adsCPRCol         = 8
	adsConversionCol  = 9
	adsRejectedCol    = 10
	adsDeletedCol     = 11
	adsActiveCol      = 12
	adsRemarksCol     = 13

	creativeFolderCol  = 14
	creativeTypeCol    = 15
	creativeTotalCol   = 16
	creativeContentCol = 17
	creativeCaptionCol = 18
	creativeRemarksCol = 19

	smsTypeCol    = 20
	smsTotalCol   = 21
	smsRemarksCol = 22
)

// agentDataStart skips the single header row of the performance sheets.
const agentDataStart = 1

func cellAt(r []string, i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// RunningAds extracts the ads band. Only rows with a parseable date count;
// every metric cell is coerced leniently.
func RunningAds(grid sheets.Grid, agent string, now time.Time) []core.RunningAdsRecord {
	var out []core.RunningAdsRecord
	for i := agentDataStart; i < len(grid); i++ {
		r := grid[i]
		d, ok := ParseLooseDate(cellAt(r, adsDateCol), now)
		if !ok {
			continue
		}
		out = append(out, core.RunningAdsRecord{
			Date:           d,
			Agent:          agent,
			AmountSpent:    ParseLooseNumeric(cellAt(r, adsSpentCol), 0),
			TotalAd:        int(ParseLooseNumeric(cellAt(r, adsTotalAdCol), 0)),
			Campaign:       cellAt(r, adsCampaignCol),
			Impressions:    int(ParseLooseNumeric(cellAt(r, adsImpressionsCol), 0)),
			Clicks:         int(ParseLooseNumeric(cellAt(r, adsClicksCol), 0)),
			CTRPercent:     ParseLooseNumeric(cellAt(r, adsCTRCol), 0),
			CPC:            ParseLooseNumeric(cellAt(r, adsCPCCol), 0),
			CPR:            ParseLooseNumeric(cellAt(r, adsCPRCol), 0),
			ConversionRate: ParseLooseNumeric(cellAt(r, adsConversionCol), 0),
			RejectedCount:  int(ParseLooseNumeric(cellAt(r, adsRejectedCol), 0)),
			DeletedCount:   int(ParseLooseNumeric(cellAt(r, adsDeletedCol), 0)),
			ActiveCount:    int(ParseLooseNumeric(cellAt(r, adsActiveCol), 0)),
			Remarks:        cellAt(r, adsRemarksCol),
		})
	}
	return out
}

// Creatives extracts the creative band. The sheet only fills date, folder,
// type, and total on the first row of a batch, so those forward-fill; the
// total may also be corrected inline on a later row. A row's own folder and
// type cells always win over the carried ones, but only dated rows update
// the cursor. Rows with no date at all default to today. A row counts only
// when its content cell is non-blank.
func Creatives(grid sheets.Grid, agent string, now time.Time) []core.CreativeRecord {
	var out []core.CreativeRecord
	cur := core.CreativeRecord{Date: now}
	for i := agentDataStart; i < len(grid); i++ {
		r := grid[i]
		if d, ok := ParseLooseDate(cellAt(r, adsDateCol), now); ok {
			cur.Date = d
			if v := cellAt(r, creativeFolderCol); v != "" {
				cur.Folder = titleCase(v)
			}
			if v := cellAt(r, creativeTypeCol); v != "" {
				cur.Type = strings.ToUpper(v)
			}
			if v := cellAt(r, creativeTotalCol); v != "" {
				cur.Total = ParseCreativeTotal(v, cur.Total)
			}
		} else if v := cellAt(r, creativeTotalCol); v != "" {
			cur.Total = ParseCreativeTotal(v, cur.Total)
		}

		content := cellAt(r, creativeContentCol)
		if content == "" {
			continue
		}
		rec := cur
		rec.Agent = agent
		rec.Content = content
		rec.Caption = cellAt(r, creativeCaptionCol)
		rec.Remarks = cellAt(r, creativeRemarksCol)
		if v := cellAt(r, creativeFolderCol); v != "" {
			rec.Folder = titleCase(v)
		}
		if v := cellAt(r, creativeTypeCol); v != "" {
			rec.Type = strings.ToUpper(v)
		}
		out = append(out, rec)
	}
	return out
}

// SMS extracts the SMS band. Date and total forward-fill; a row counts only
// when its type cell is non-blank and the carried total is positive. Rows
// before the first dated row have no date to inherit and are dropped.
func SMS(grid sheets.Grid, agent string, now time.Time) []core.SMSRecord {
	var out []core.SMSRecord
	var curDate time.Time
	curTotal := 0
	for i := agentDataStart; i < len(grid); i++ {
		r := grid[i]
		if d, ok := ParseLooseDate(cellAt(r, adsDateCol), now); ok {
			curDate = d
		}
		if v := cellAt(r, smsTotalCol); v != "" {
			curTotal = int(ParseLooseNumeric(v, float64(curTotal)))
		}
		typ := cellAt(r, smsTypeCol)
		if typ == "" || curTotal <= 0 || curDate.IsZero() {
			continue
		}
		out = append(out, core.SMSRecord{
			Date:    curDate,
			Agent:   agent,
			Type:    titleCase(typ),
			Total:   curTotal,
			Remarks: cellAt(r, smsRemarksCol),
		})
	}
	return out
}
