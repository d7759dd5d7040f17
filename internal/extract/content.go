package extract

import (
	"sort"
	"strings"
	"time"

	"adsboard/internal/core"
	"adsboard/internal/sheets"
)

// Content sheet column positions. The date and type columns forward-fill.
const (
	contentDateCol      = 0
	contentTypeCol      = 1
	contentPrimaryCol   = 2
	contentConditionCol = 3
	contentStatusCol    = 4
	contentAdjustCol    = 5
	contentRemarksCol   = 6
)

// mergedHeaderKeywords identify rows that are merged header banners rather
// than data. Two or more hits in the leading columns mark the row as header.
var mergedHeaderKeywords = []string{
	"Primary Text", "Headline", "Approved", "TYPE", "PRIMARY CONTENT", "CONDITION",
}

func isMergedHeader(r []string) bool {
	hits := 0
	for i := 0; i < 4 && i < len(r); i++ {
		cell := r[i]
		if len(cell) > 500 {
			return true
		}
		for _, kw := range mergedHeaderKeywords {
			if strings.Contains(cell, kw) {
				hits++
				break
			}
		}
	}
	return hits >= 2
}

// normalizeContentType folds the free-form type labels to the two canonical
// names the board groups by, title-casing everything else.
func normalizeContentType(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "primary"):
		return "Primary Text"
	case strings.Contains(lower, "headline"):
		return "Headline"
	default:
		return titleCase(s)
	}
}

// Content extracts an agent content sheet. The sheets have no fixed header
// row; banner rows near the top are detected and skipped, and date and type
// forward-fill down the column. A row counts only when its primary content
// cell is non-blank and is not itself a column label; rows before the first
// dated row have no date to inherit and are dropped.
func Content(grid sheets.Grid, agent string, now time.Time) []core.ContentRecord {
	var out []core.ContentRecord
	var curDate time.Time
	curType := ""
	for i, r := range grid {
		if i < 3 && isMergedHeader(r) {
			continue
		}
		first := cellAt(r, contentDateCol)
		if i < 2 && strings.Contains(strings.ToUpper(first), "DATE") {
			continue
		}
		if d, ok := ParseLooseDate(first, now); ok {
			curDate = d
		}
		if v := cellAt(r, contentTypeCol); v != "" {
			curType = normalizeContentType(v)
		}
		primary := cellAt(r, contentPrimaryCol)
		if primary == "" || strings.Contains(strings.ToUpper(primary), "PRIMARY CONTENT") || len(primary) > 1000 {
			continue
		}
		if curDate.IsZero() {
			continue
		}
		out = append(out, core.ContentRecord{
			Date:       curDate,
			Agent:      agent,
			Type:       curType,
			Primary:    primary,
			Condition:  cellAt(r, contentConditionCol),
			Status:     cellAt(r, contentStatusCol),
			Adjustment: cellAt(r, contentAdjustCol),
			Remarks:    cellAt(r, contentRemarksCol),
		})
	}
	return out
}

// promotionBands maps each agent to the starting column of their band on the
// shared promotion worksheet. Every band has the same five-column shape.
var promotionBands = map[string]int{
	"ADRIAN": 0,
	"JOMAR":  6,
	"SHILA":  12,
	"KRISSA": 18,
	"MIKA":   30,
}

const (
	promoDateOff      = 0
	promoTypeOff      = 1
	promoContentOff   = 2
	promoConditionOff = 3
	promoStatusOff    = 4
)

// PromotionSource tags records extracted from the shared promotion sheet.
const PromotionSource = "Indian Promotion"

// Promotion extracts the shared promotion worksheet, where each agent owns a
// column band. Dates forward-fill per band, and only Primary Text rows with
// content count; rows before a band's first dated row are dropped.
func Promotion(grid sheets.Grid, now time.Time) []core.ContentRecord {
	agents := make([]string, 0, len(promotionBands))
	for a := range promotionBands {
		agents = append(agents, a)
	}
	sort.Strings(agents)

	var out []core.ContentRecord
	for _, agent := range agents {
		start := promotionBands[agent]
		var curDate time.Time
		for i := 1; i < len(grid); i++ {
			r := grid[i]
			if d, ok := ParseLooseDate(cellAt(r, start+promoDateOff), now); ok {
				curDate = d
			}
			typ := cellAt(r, start+promoTypeOff)
			content := cellAt(r, start+promoContentOff)
			if !strings.Contains(typ, "Primary Text") || content == "" || curDate.IsZero() {
				continue
			}
			out = append(out, core.ContentRecord{
				Date:      curDate,
				Agent:     agent,
				Type:      "Primary Text",
				Primary:   content,
				Condition: cellAt(r, start+promoConditionOff),
				Status:    cellAt(r, start+promoStatusOff),
				Source:    PromotionSource,
			})
		}
	}
	return out
}
