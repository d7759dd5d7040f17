package report

import (
	"path/filepath"
	"testing"
	"time"

	"adsboard/internal/core"
)

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSnapshot(t *testing.T) {
	records := []core.KPIRecord{
		{Agent: "ADRIAN", Spend: 100, Register: 20, FTD: 2},
		{Agent: "ADRIAN", Spend: 50, Register: 10, FTD: 1},
		{Agent: "MIKA", Spend: 80, Register: 5, FTD: 0},
	}

	snap := BuildSnapshot(day(21), records)
	if snap.Date != "2025-09-21" {
		t.Errorf("date = %q", snap.Date)
	}
	if snap.TeamTotals.Spend != 230 || snap.TeamTotals.Register != 35 || snap.TeamTotals.FTD != 3 {
		t.Errorf("team totals = %+v", snap.TeamTotals)
	}
	if a := snap.Agents["ADRIAN"]; a.Spend != 150 || a.Register != 30 || a.FTD != 3 {
		t.Errorf("adrian = %+v", a)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewStore(path)

	// No file yet means no previous report.
	prev, err := store.Load()
	if err != nil || prev != nil {
		t.Fatalf("Load on empty = %v, %v", prev, err)
	}

	snap := BuildSnapshot(day(21), []core.KPIRecord{{Agent: "ADRIAN", Spend: 100}})
	if err := store.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || loaded.Date != "2025-09-21" || loaded.Agents["ADRIAN"].Spend != 100 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestCompare(t *testing.T) {
	prev := BuildSnapshot(day(21), []core.KPIRecord{
		{Agent: "ADRIAN", Spend: 100, Register: 20, FTD: 2},
		{Agent: "MIKA", Spend: 80, Register: 5, FTD: 1},
	})
	cur := BuildSnapshot(day(21), []core.KPIRecord{
		{Agent: "ADRIAN", Spend: 130, Register: 25, FTD: 2},
		{Agent: "MIKA", Spend: 80, Register: 5, FTD: 1},
	})

	deltas := Compare(&prev, cur)
	if len(deltas) != 2 {
		t.Fatalf("deltas = %+v", deltas)
	}
	adrian := deltas["ADRIAN"]
	if adrian.SpendDiff != 30 || adrian.RegisterDiff != 5 || adrian.FTDDiff != 0 || !adrian.HasChange {
		t.Errorf("adrian delta = %+v", adrian)
	}
	if mika := deltas["MIKA"]; mika.HasChange {
		t.Errorf("mika delta = %+v", mika)
	}

	if got := Compare(nil, cur); got != nil {
		t.Errorf("Compare(nil) = %+v", got)
	}

	other := BuildSnapshot(day(20), nil)
	if got := Compare(&other, cur); got != nil {
		t.Errorf("Compare across days = %+v", got)
	}
}
