package extract

import (
	"strings"
	"testing"
	"time"

	"adsboard/internal/sheets"
)

func TestContent(t *testing.T) {
	now := date(2025, time.September, 25)
	grid := sheets.Grid{
		{"", "TYPE", "PRIMARY CONTENT", "CONDITION"}, // merged header banner
		{"DATE", "", "", ""},
		{"9/21/2025", "primary text", "Play now and win big!", "new players", "Approved"},
		{"", "", "Second ad copy", "", "Pending"},
		{"", "headline copy", "Big Win Bonus", "", ""},
		{"", "", "", "", ""},
		{"9/22/2025", "", "Next day copy", "", ""},
	}

	got := Content(grid, "JOMAR", now)
	if len(got) != 4 {
		t.Fatalf("got %d records, want 4", len(got))
	}

	d1 := date(2025, time.September, 21)
	if !got[0].Date.Equal(d1) || got[0].Type != "Primary Text" || got[0].Status != "Approved" {
		t.Errorf("first record = %+v", got[0])
	}
	if got[1].Type != "Primary Text" || !got[1].Date.Equal(d1) {
		t.Errorf("forward fill failed: %+v", got[1])
	}
	if got[2].Type != "Headline" {
		t.Errorf("type normalization failed: %+v", got[2])
	}
	if !got[3].Date.Equal(date(2025, time.September, 22)) {
		t.Errorf("date advance failed: %+v", got[3])
	}
}

func TestContentSkipsOversizedCells(t *testing.T) {
	now := date(2025, time.September, 25)
	grid := sheets.Grid{
		{"", "primary", strings.Repeat("x", 1001)},
		{"9/21/2025", "", "PRIMARY CONTENT"},
		{"", "", "Real copy"},
	}

	got := Content(grid, "ADRIAN", now)
	if len(got) != 1 || got[0].Primary != "Real copy" {
		t.Fatalf("got %+v, want only the real row", got)
	}
}

func TestContentDropsRowsBeforeFirstDate(t *testing.T) {
	now := date(2025, time.September, 25)
	grid := sheets.Grid{
		{"", "primary text", "Stray copy above the dates"},
		{"9/21/2025", "", "Dated copy"},
	}

	got := Content(grid, "SHILA", now)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Primary != "Dated copy" || !got[0].Date.Equal(date(2025, time.September, 21)) {
		t.Errorf("record = %+v", got[0])
	}
}

func TestPromotion(t *testing.T) {
	now := date(2025, time.September, 25)
	row := func(cells map[int]string) []string {
		r := make([]string, 36)
		for i, v := range cells {
			r[i] = v
		}
		return r
	}
	grid := sheets.Grid{
		row(map[int]string{0: "DATE", 1: "TYPE"}),
		row(map[int]string{
			0: "9/21/2025", 1: "Primary Text", 2: "Adrian copy one", 4: "Approved",
			12: "9/20/2025", 13: "Primary Text", 14: "Shila copy", 15: "vip",
		}),
		row(map[int]string{1: "Primary Text", 2: "Adrian copy two"}),
		row(map[int]string{1: "Headline", 2: "not primary"}),
		row(map[int]string{30: "9/23/2025", 31: "Primary Text", 32: "Mika copy"}),
	}

	got := Promotion(grid, now)
	if len(got) != 4 {
		t.Fatalf("got %d records, want 4", len(got))
	}

	byAgent := map[string][]string{}
	for _, r := range got {
		if r.Source != PromotionSource {
			t.Errorf("source = %q", r.Source)
		}
		byAgent[r.Agent] = append(byAgent[r.Agent], r.Primary)
	}
	if len(byAgent["ADRIAN"]) != 2 {
		t.Errorf("adrian records = %v", byAgent["ADRIAN"])
	}
	if len(byAgent["SHILA"]) != 1 || byAgent["SHILA"][0] != "Shila copy" {
		t.Errorf("shila records = %v", byAgent["SHILA"])
	}
	if len(byAgent["MIKA"]) != 1 {
		t.Errorf("mika records = %v", byAgent["MIKA"])
	}

	// Forward-filled date on the second Adrian row.
	for _, r := range got {
		if r.Primary == "Adrian copy two" && !r.Date.Equal(date(2025, time.September, 21)) {
			t.Errorf("date forward fill failed: %+v", r)
		}
	}
}

func TestPromotionDropsRowsBeforeFirstDate(t *testing.T) {
	now := date(2025, time.September, 25)
	row := func(cells map[int]string) []string {
		r := make([]string, 36)
		for i, v := range cells {
			r[i] = v
		}
		return r
	}
	grid := sheets.Grid{
		row(map[int]string{0: "DATE", 1: "TYPE"}),
		row(map[int]string{1: "Primary Text", 2: "Stray Adrian copy"}),
		row(map[int]string{0: "9/21/2025", 1: "Primary Text", 2: "Dated Adrian copy"}),
	}

	got := Promotion(grid, now)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Primary != "Dated Adrian copy" || !got[0].Date.Equal(date(2025, time.September, 21)) {
		t.Errorf("record = %+v", got[0])
	}
}
