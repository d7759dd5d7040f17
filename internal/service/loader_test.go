package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"adsboard/internal/config"
	"adsboard/internal/core"
	"adsboard/internal/log"
	"adsboard/internal/sheets"
	"adsboard/internal/sheets/memory"
)

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.ChannelSheetID = "channel"
	cfg.KPISheetID = "kpi"
	cfg.AgentSheetID = "agents"
	cfg.Agents = []config.AgentSheet{
		{Name: "ADRIAN", PerformanceTab: "ADRIAN PERFORMANCE", ContentTab: "ADRIAN CONTENT"},
	}
	cfg.PromotionSheetID = ""
	return cfg
}

func testLoader(cfg *config.Config, src sheets.GridSource) *Loader {
	l := New(cfg, src, src, log.New(log.DefaultConfig()))
	l.now = func() time.Time {
		return time.Date(2025, time.September, 25, 12, 0, 0, 0, time.UTC)
	}
	return l
}

func fbSummary() sheets.Grid {
	g := make(sheets.Grid, 4)
	row := make([]string, 12)
	row[1], row[2], row[3], row[4], row[5] = "9/21/2025", "100", "10", "1", "50"
	row[6], row[7], row[8], row[9], row[10], row[11] = "50", "1%", "10", "100", "0.5", "2"
	return append(g, row)
}

func TestLoaderChannel(t *testing.T) {
	cfg := testConfig()
	src := memory.New()
	src.Put("channel", cfg.FBWorksheet, fbSummary())
	src.Put("channel", cfg.GoogleWorksheet, nil)

	l := testLoader(cfg, src)
	got := l.Channel(context.Background())
	if len(got) != 1 || got[0].Channel != core.ChannelFacebook {
		t.Fatalf("records = %+v", got)
	}
}

func TestLoaderServesEmptyOnFetchFailure(t *testing.T) {
	cfg := testConfig()
	src := memory.New()
	src.Fail("channel", cfg.FBWorksheet, errors.New("quota exceeded"))
	src.Fail("channel", cfg.GoogleWorksheet, errors.New("quota exceeded"))

	l := testLoader(cfg, src)
	if got := l.Channel(context.Background()); len(got) != 0 {
		t.Errorf("records = %+v, want none", got)
	}
}

func TestLoaderCachesGrids(t *testing.T) {
	cfg := testConfig()
	src := memory.New()
	src.Put("channel", cfg.FBWorksheet, fbSummary())
	src.Put("channel", cfg.GoogleWorksheet, nil)

	l := testLoader(cfg, src)
	if got := l.Channel(context.Background()); len(got) != 1 {
		t.Fatalf("prime load failed: %+v", got)
	}

	// The source goes away, but the cached grids still serve.
	src.Fail("channel", cfg.FBWorksheet, errors.New("gone"))
	if got := l.Channel(context.Background()); len(got) != 1 {
		t.Errorf("cached load failed: %+v", got)
	}

	// After a refresh the failure becomes visible.
	l.Refresh()
	if got := l.Channel(context.Background()); len(got) != 0 {
		t.Errorf("refresh did not drop cache: %+v", got)
	}
}

func TestLoaderAgents(t *testing.T) {
	cfg := testConfig()
	src := memory.New()

	row := make([]string, 23)
	row[0], row[1] = "9/21/2025", "80"
	row[17] = "Creative copy"
	row[20], row[21] = "bulk", "100"
	src.Put("agents", "ADRIAN PERFORMANCE", sheets.Grid{make([]string, 23), row})

	l := testLoader(cfg, src)
	got := l.Agents(context.Background())
	if len(got) != 1 {
		t.Fatalf("agents = %d", len(got))
	}
	a := got[0]
	if a.Agent != "ADRIAN" || len(a.RunningAds) != 1 || len(a.Creatives) != 1 || len(a.SMS) != 1 {
		t.Errorf("agent data = %+v", a)
	}
}

func TestLoaderLatestKPIDay(t *testing.T) {
	cfg := testConfig()
	src := memory.New()

	g := make(sheets.Grid, 4)
	names := make([]string, 100)
	names[17], names[27] = "ADRIAN", "MIKA"
	g[1] = names
	day1 := make([]string, 100)
	day1[17], day1[19] = "9/21/2025", "50"
	day2 := make([]string, 100)
	day2[17], day2[19] = "9/22/2025", "70"
	day2[27], day2[29] = "9/22/2025", "90"
	g = append(g, day1, day2)
	src.Put("kpi", cfg.KPIWorksheet, g)

	l := testLoader(cfg, src)
	records, latest, ok := l.LatestKPIDay(context.Background())
	if !ok {
		t.Fatal("no latest day found")
	}
	if latest.Day() != 22 || len(records) != 2 {
		t.Errorf("latest = %v, records = %+v", latest, records)
	}
}
