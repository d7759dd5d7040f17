package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := Load()
	cfg.ChannelSheetID = "channel-sheet"
	cfg.KPISheetID = "kpi-sheet"
	cfg.ListenerDBPath = "chatlog.db"
	cfg.SnapshotPath = "snapshot.json"
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Timezone != "Asia/Manila" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if len(cfg.Agents) != 5 {
		t.Fatalf("Agents = %d, want 5", len(cfg.Agents))
	}
	if cfg.Agents[0].Name != "ADRIAN" || cfg.Agents[0].PerformanceTab != "ADRIAN PERFORMANCE" {
		t.Errorf("first agent = %+v", cfg.Agents[0])
	}
	if len(cfg.RealtimeSendTimes) != 7 {
		t.Errorf("RealtimeSendTimes = %v", cfg.RealtimeSendTimes)
	}
	if cfg.DailySendTime != (SendTime{Hour: 14}) {
		t.Errorf("DailySendTime = %v", cfg.DailySendTime)
	}
	if cfg.CacheTTLChannel != 5*time.Minute {
		t.Errorf("CacheTTLChannel = %v", cfg.CacheTTLChannel)
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"missing channel sheet", func(c *Config) { c.ChannelSheetID = "" }, "CHANNEL_SHEET_ID"},
		{"missing kpi sheet", func(c *Config) { c.KPISheetID = "" }, "KPI_SHEET_ID"},
		{"no agents", func(c *Config) { c.Agents = nil }, "AGENT_TABS"},
		{"no send times", func(c *Config) { c.RealtimeSendTimes = nil }, "REALTIME_SEND_TIMES"},
		{"negative threshold", func(c *Config) { c.LowSpendThreshold = -1 }, "low spend threshold"},
		{"short poll interval", func(c *Config) { c.ListenerPollInterval = time.Millisecond }, "poll interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseSendTimes(t *testing.T) {
	got := parseSendTimes("6:00, 20:30,bad,25:00,3:99")
	want := []SendTime{{Hour: 6}, {Hour: 20, Minute: 30}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseMentions(t *testing.T) {
	got := parseMentions("adrian=@adrian_ads, MIKA=@mika ,broken")
	if got["ADRIAN"] != "@adrian_ads" || got["MIKA"] != "@mika" {
		t.Errorf("mentions = %v", got)
	}
	if len(got) != 2 {
		t.Errorf("len = %d", len(got))
	}
}
