package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"adsboard/internal/extract"
)

// AgentSheet names the two worksheets one agent maintains on the shared
// performance spreadsheet.
type AgentSheet struct {
	Name           string
	PerformanceTab string
	ContentTab     string
}

// SendTime is a wall-clock minute in the reporting timezone.
type SendTime struct {
	Hour   int
	Minute int
}

func (t SendTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type Config struct {
	// HTTP Server
	Port string

	// Timezone the team works and reports in
	Timezone string

	// Channel summary spreadsheet
	ChannelSheetID  string
	FBWorksheet     string
	GoogleWorksheet string

	// Counterpart and team worksheets, on the channel spreadsheet
	CounterpartWorksheet string
	TeamWorksheet        string

	// Individual KPI worksheet
	KPISheetID   string
	KPIWorksheet string

	// Agent performance spreadsheet, shared by all agents
	AgentSheetID string
	Agents       []AgentSheet

	// Shared promotion worksheet
	PromotionSheetID  string
	PromotionWorksheet string

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// Chat listener
	ListenerDBPath       string
	ListenerPollInterval time.Duration

	// Reporting
	SnapshotPath      string
	LowSpendThreshold float64
	RealtimeSendTimes []SendTime
	DailySendTime     SendTime
	ReminderOffsets   []int // minutes before the daily send
	ExcludedPersons   []string
	Mentions          map[string]string // agent name -> telegram username

	// Caching
	CacheTTLChannel time.Duration
	CacheTTLKPI     time.Duration
	CacheMaxEntries int
}

func Load() *Config {
	cfg := &Config{
		Port:     getEnv("PORT", "8081"),
		Timezone: getEnv("REPORT_TIMEZONE", "Asia/Manila"),

		ChannelSheetID:  getEnv("CHANNEL_SHEET_ID", ""),
		FBWorksheet:     getEnv("CHANNEL_FB_WORKSHEET", "FB Summary"),
		GoogleWorksheet: getEnv("CHANNEL_GOOGLE_WORKSHEET", "Google Summary"),

		CounterpartWorksheet: getEnv("COUNTERPART_WORKSHEET", "Counterpart Performance"),
		TeamWorksheet:        getEnv("TEAM_WORKSHEET", "Team Channel"),

		KPISheetID:   getEnv("KPI_SHEET_ID", ""),
		KPIWorksheet: getEnv("KPI_WORKSHEET", "Individual KPI"),

		AgentSheetID: getEnv("AGENT_SHEET_ID", ""),
		Agents:       parseAgents(getEnv("AGENT_TABS", defaultAgentTabs)),

		PromotionSheetID:   getEnv("PROMOTION_SHEET_ID", ""),
		PromotionWorksheet: getEnv("PROMOTION_WORKSHEET", "Indian Promotion"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),

		ListenerDBPath:       getEnv("LISTENER_DB_PATH", "./data/chatlog.db"),
		ListenerPollInterval: getEnvDuration("LISTENER_POLL_INTERVAL", 5*time.Second),

		SnapshotPath:      getEnv("SNAPSHOT_PATH", "./data/kpi_snapshot.json"),
		LowSpendThreshold: getEnvFloat("LOW_SPEND_THRESHOLD", 100),
		RealtimeSendTimes: parseSendTimes(getEnv("REALTIME_SEND_TIMES", "6:00,9:00,13:00,17:00,20:30,23:00,3:00")),
		DailySendTime:     firstSendTime(getEnv("DAILY_SEND_TIME", "14:00")),
		ReminderOffsets:   parseInts(getEnv("DAILY_REMINDER_OFFSETS", "60,30,15")),
		ExcludedPersons:   splitTrimmed(getEnv("EXCLUDED_PERSONS", "DER,JD")),
		Mentions:          parseMentions(getEnv("TELEGRAM_MENTIONS", "")),

		CacheTTLChannel: getEnvDuration("CACHE_TTL_CHANNEL", 5*time.Minute),
		CacheTTLKPI:     getEnvDuration("CACHE_TTL_KPI", 10*time.Minute),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 64),
	}

	return cfg
}

const defaultAgentTabs = "ADRIAN:ADRIAN PERFORMANCE:ADRIAN CONTENT," +
	"JOMAR:JOMAR PERFORMANCE:JOMAR CONTENT," +
	"SHILA:SHILA PERFORMANCE:SHILA CONTENT," +
	"KRISSA:KRISSA PERFORMANCE:KRISSA CONTENT," +
	"MIKA:MIKA PERFORMANCE:MIKA CONTENT"

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.ChannelSheetID == "" {
		errors = append(errors, "CHANNEL_SHEET_ID is required")
	}
	if c.KPISheetID == "" {
		errors = append(errors, "KPI_SHEET_ID is required")
	}
	if len(c.Agents) == 0 {
		errors = append(errors, "AGENT_TABS must name at least one agent")
	}
	for _, a := range c.Agents {
		if a.Name == "" || a.PerformanceTab == "" || a.ContentTab == "" {
			errors = append(errors, fmt.Sprintf("malformed agent tab entry %+v: want NAME:PERFORMANCE:CONTENT", a))
		}
	}

	if err := extract.ValidateLayouts(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.LowSpendThreshold < 0 {
		errors = append(errors, fmt.Sprintf("invalid low spend threshold %v: must not be negative", c.LowSpendThreshold))
	}
	if len(c.RealtimeSendTimes) == 0 {
		errors = append(errors, "REALTIME_SEND_TIMES must name at least one send time")
	}
	for _, o := range c.ReminderOffsets {
		if o <= 0 {
			errors = append(errors, fmt.Sprintf("invalid reminder offset %d: must be positive minutes", o))
		}
	}

	if c.ListenerPollInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid listener poll interval %v: must be at least 1 second", c.ListenerPollInterval))
	}
	if c.CacheMaxEntries < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheMaxEntries))
	}

	for _, path := range []string{c.ListenerDBPath, c.SnapshotPath} {
		dir := filepath.Dir(path)
		if dir == "." || dir == "" {
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", dir, err))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves the reporting timezone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseAgents parses "NAME:PERFORMANCE TAB:CONTENT TAB" entries separated by
// commas.
func parseAgents(raw string) []AgentSheet {
	var out []AgentSheet
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		a := AgentSheet{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			a.PerformanceTab = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			a.ContentTab = strings.TrimSpace(parts[2])
		}
		out = append(out, a)
	}
	return out
}

// parseSendTimes parses "H:MM" entries separated by commas, dropping
// malformed ones.
func parseSendTimes(raw string) []SendTime {
	var out []SendTime
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
			continue
		}
		out = append(out, SendTime{Hour: h, Minute: m})
	}
	return out
}

func firstSendTime(raw string) SendTime {
	times := parseSendTimes(raw)
	if len(times) == 0 {
		return SendTime{Hour: 14}
	}
	return times[0]
}

// parseMentions parses "AGENT=@username" entries separated by commas.
func parseMentions(raw string) map[string]string {
	out := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}
	return out
}

func parseInts(raw string) []int {
	var out []int
	for _, entry := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(entry)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func splitTrimmed(raw string) []string {
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(entry); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
