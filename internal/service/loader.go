// Package service orchestrates sheet fetching and extraction behind the
// caches. The board treats an unreachable worksheet like the spreadsheet UI
// does: log a warning and render what is left, never fail the whole page.
package service

import (
	"context"
	"time"

	"adsboard/internal/aggregate"
	"adsboard/internal/cache"
	"adsboard/internal/config"
	"adsboard/internal/core"
	"adsboard/internal/extract"
	"adsboard/internal/log"
	"adsboard/internal/sheets"
)

// AgentData bundles the three bands of one agent's performance worksheet.
type AgentData struct {
	Agent      string                  `json:"agent"`
	RunningAds []core.RunningAdsRecord `json:"running_ads"`
	Creatives  []core.CreativeRecord   `json:"creatives"`
	SMS        []core.SMSRecord        `json:"sms"`
}

// Loader fetches and extracts every sheet the board serves. Channel and
// agent grids sit in a short-TTL cache, the slower-moving KPI and
// counterpart grids in a longer one.
type Loader struct {
	private sheets.GridSource
	public  sheets.GridSource
	fast    *cache.LRUCache[sheets.Grid]
	slow    *cache.LRUCache[sheets.Grid]
	cfg     *config.Config
	logger  *log.Logger
	now     func() time.Time
}

// New builds a Loader. private serves the credentialed spreadsheets, public
// the link-shared agent sheets; pass the same source twice when everything
// goes through one client.
func New(cfg *config.Config, private, public sheets.GridSource, logger *log.Logger) *Loader {
	return &Loader{
		private: private,
		public:  public,
		fast:    cache.NewLRUCache[sheets.Grid](cfg.CacheMaxEntries, cfg.CacheTTLChannel),
		slow:    cache.NewLRUCache[sheets.Grid](cfg.CacheMaxEntries, cfg.CacheTTLKPI),
		cfg:     cfg,
		logger:  logger.WithComponent(log.ComponentSheets),
		now:     time.Now,
	}
}

// Caches exposes the two grid caches for cleanup registration.
func (l *Loader) Caches() []cache.Cleaner {
	return []cache.Cleaner{l.fast, l.slow}
}

// Refresh drops every cached grid so the next load refetches.
func (l *Loader) Refresh() {
	l.fast.Purge()
	l.slow.Purge()
}

// grid fetches one worksheet through the given cache, returning nil on
// failure after logging a warning.
func (l *Loader) grid(ctx context.Context, c *cache.LRUCache[sheets.Grid], src sheets.GridSource, sheetID, worksheet string) sheets.Grid {
	key := sheetID + "!" + worksheet
	if g, ok := c.Get(key); ok {
		return g
	}
	g, err := src.Fetch(ctx, sheetID, worksheet)
	if err != nil {
		l.logger.WarnContext(ctx, "worksheet fetch failed, serving empty",
			log.FieldSheetID, sheetID, log.FieldWorksheet, worksheet, log.FieldError, err.Error())
		return nil
	}
	c.Set(key, g)
	return g
}

// Channel loads both summary worksheets and extracts every section.
func (l *Loader) Channel(ctx context.Context) []core.ChannelRecord {
	fb := l.grid(ctx, l.fast, l.private, l.cfg.ChannelSheetID, l.cfg.FBWorksheet)
	google := l.grid(ctx, l.fast, l.private, l.cfg.ChannelSheetID, l.cfg.GoogleWorksheet)
	return extract.ChannelAll(fb, google)
}

// Agents loads every agent's performance worksheet.
func (l *Loader) Agents(ctx context.Context) []AgentData {
	now := l.now()
	out := make([]AgentData, 0, len(l.cfg.Agents))
	for _, a := range l.cfg.Agents {
		g := l.grid(ctx, l.fast, l.public, l.cfg.AgentSheetID, a.PerformanceTab)
		out = append(out, AgentData{
			Agent:      a.Name,
			RunningAds: extract.RunningAds(g, a.Name, now),
			Creatives:  extract.Creatives(g, a.Name, now),
			SMS:        extract.SMS(g, a.Name, now),
		})
	}
	return out
}

// Contents loads every agent's content worksheet plus the shared promotion
// worksheet.
func (l *Loader) Contents(ctx context.Context) []core.ContentRecord {
	now := l.now()
	var out []core.ContentRecord
	for _, a := range l.cfg.Agents {
		g := l.grid(ctx, l.fast, l.public, l.cfg.AgentSheetID, a.ContentTab)
		out = append(out, extract.Content(g, a.Name, now)...)
	}
	if l.cfg.PromotionSheetID != "" {
		g := l.grid(ctx, l.fast, l.public, l.cfg.PromotionSheetID, l.cfg.PromotionWorksheet)
		out = append(out, extract.Promotion(g, now)...)
	}
	return out
}

// KPI loads the individual KPI worksheet.
func (l *Loader) KPI(ctx context.Context) []core.KPIRecord {
	g := l.grid(ctx, l.slow, l.private, l.cfg.KPISheetID, l.cfg.KPIWorksheet)
	return extract.KPI(g, l.now(), l.cfg.ExcludedPersons)
}

// Counterpart loads the counterpart performance worksheet.
func (l *Loader) Counterpart(ctx context.Context) []core.CounterpartRecord {
	g := l.grid(ctx, l.slow, l.private, l.cfg.ChannelSheetID, l.cfg.CounterpartWorksheet)
	return extract.Counterpart(g, l.now())
}

// TeamChannel loads the team channel worksheet.
func (l *Loader) TeamChannel(ctx context.Context) []core.TeamChannelRecord {
	g := l.grid(ctx, l.slow, l.private, l.cfg.ChannelSheetID, l.cfg.TeamWorksheet)
	return extract.TeamChannel(g, l.now())
}

// LatestKPIDay returns the KPI records of the most recent reported day.
func (l *Loader) LatestKPIDay(ctx context.Context) ([]core.KPIRecord, time.Time, bool) {
	records := l.KPI(ctx)
	latest, ok := aggregate.LatestDate(records)
	if !ok {
		return nil, time.Time{}, false
	}
	return aggregate.OnDate(records, latest), latest, true
}
