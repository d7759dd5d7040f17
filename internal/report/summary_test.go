package report

import (
	"strings"
	"testing"
	"time"

	"adsboard/internal/core"
)

func sampleRecords() []core.KPIRecord {
	return []core.KPIRecord{
		{Agent: "ADRIAN", Spend: 1200, Register: 100, FTD: 10, Clicks: 500, Impressions: 40000},
		{Agent: "MIKA", Spend: 50, Register: 8, FTD: 0, Clicks: 30, Impressions: 2000},
	}
}

func TestFormatReport(t *testing.T) {
	now := time.Date(2025, time.September, 21, 14, 0, 0, 0, time.UTC)
	deltas := map[string]AgentDelta{
		"ADRIAN": {SpendDiff: 30, HasChange: true},
		"MIKA":   {SpendDiff: 0, HasChange: false},
	}
	mentions := map[string]string{"ADRIAN": "@adrian_ads"}

	got := FormatReport(day(21), now, sampleRecords(), deltas, 100, mentions)

	for _, want := range []string{
		"📊 <b>ADVERTISER KPI REPORT</b>",
		"🗓 September 21, 2025 | 14:00",
		"├ Spend: $1,250.00",
		"├ Register: 108",
		"├ FTD: 10",
		"<pre>",
		"ADRIAN",
		"↑", // adrian spent more since last report
		"• <b>MIKA</b>: Low spend ($50.00) - Focus and work hard!",
		"• <b>MIKA</b>: No change since last report",
		"@adrian_ads",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}

	// Agents are ordered by descending spend in the table.
	if strings.Index(got, "ADRIAN") > strings.Index(got, "MIKA") {
		t.Error("agent table not sorted by spend")
	}
}

func TestFormatReportNoDeltas(t *testing.T) {
	now := time.Date(2025, time.September, 21, 9, 0, 0, 0, time.UTC)
	got := FormatReport(day(21), now, sampleRecords(), nil, 100, nil)

	if strings.Contains(got, "No change since last report") {
		t.Error("first report should not flag unchanged agents")
	}
	if !strings.Contains(got, "─") {
		t.Error("expected neutral trend indicator without deltas")
	}
}

func TestFormatReportZeroDenominators(t *testing.T) {
	records := []core.KPIRecord{{Agent: "ADRIAN", Spend: 10}}
	got := FormatReport(day(21), time.Now(), records, nil, 0, nil)

	if !strings.Contains(got, "├ Conv Rate: 0.0%") {
		t.Errorf("conv rate not clamped:\n%s", got)
	}
	if !strings.Contains(got, "├ CPR: $0.00") {
		t.Errorf("cpr not clamped:\n%s", got)
	}
}

func TestChunk(t *testing.T) {
	short := "one line"
	if got := Chunk(short); len(got) != 1 || got[0] != short {
		t.Errorf("Chunk(short) = %v", got)
	}

	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString(strings.Repeat("x", 20))
		b.WriteString("\n")
	}
	chunks := Chunk(b.String())
	if len(chunks) < 2 {
		t.Fatalf("long message not split: %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > chunkSize {
			t.Errorf("chunk %d has %d bytes", i, len(c))
		}
	}
}

func TestFormatReminder(t *testing.T) {
	got := FormatReminder(30, map[string]string{"ADRIAN": "@adrian_ads"})
	if !strings.Contains(got, "30 minutes") || !strings.Contains(got, "@adrian_ads") {
		t.Errorf("reminder = %q", got)
	}
}
