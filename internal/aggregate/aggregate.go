// Package aggregate reduces extracted records to the summaries the board
// serves: channel totals by day, ISO week, and month, agent totals, and
// counterpart rollups. All derived ratios clamp zero denominators to zero.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"adsboard/internal/core"
)

// PHPPerUSD converts peso amounts to dollars where counterpart ROAS needs a
// common currency.
const PHPPerUSD = 57.7

// ChannelSummary is the rollup of channel records for one bucket key.
type ChannelSummary struct {
	Key           string  `json:"key"`
	Channel       string  `json:"channel"`
	Register      int     `json:"register"`
	FTD           int     `json:"ftd"`
	DepositAmount float64 `json:"deposit_amount"`
	Cost          float64 `json:"cost"`
	CPR           float64 `json:"cpr"`
	ROAS          float64 `json:"roas"`
}

// Bucket labels records into grouping keys.
type Bucket func(core.ChannelRecord) string

// ByDay buckets by calendar date.
func ByDay(r core.ChannelRecord) string { return r.Date.Format("2006-01-02") }

// ByWeek buckets by ISO week, keyed like "2025-W38".
func ByWeek(r core.ChannelRecord) string {
	year, week := r.Date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ByMonth buckets by calendar month, keyed like "2025-09".
func ByMonth(r core.ChannelRecord) string { return r.Date.Format("2006-01") }

// Channel groups records by bucket key and channel, sums the counters, and
// derives CPR and ROAS from the summed values. Output is sorted by key then
// channel.
func Channel(records []core.ChannelRecord, bucket Bucket) []ChannelSummary {
	type groupKey struct {
		key     string
		channel string
	}
	groups := make(map[groupKey]*ChannelSummary)
	for _, r := range records {
		k := groupKey{bucket(r), r.Channel}
		g, ok := groups[k]
		if !ok {
			g = &ChannelSummary{Key: k.key, Channel: k.channel}
			groups[k] = g
		}
		g.Register += r.Register
		g.FTD += r.FTD
		g.DepositAmount += r.DepositAmount
		g.Cost += r.Cost
	}

	out := make([]ChannelSummary, 0, len(groups))
	for _, g := range groups {
		g.CPR = core.Round2(core.SafeDiv(g.Cost, float64(g.Register)))
		g.ROAS = core.Round2(core.SafeDiv(g.DepositAmount, g.Cost))
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// AgentTotals is the per-agent rollup of KPI records.
type AgentTotals struct {
	Agent    string  `json:"agent"`
	Spend    float64 `json:"spend"`
	Register int     `json:"register"`
	FTD      int     `json:"ftd"`
	ConvRate float64 `json:"conv_rate"`
	CPR      float64 `json:"cpr"`
}

// Agents sums KPI records per agent. Output is sorted by descending spend.
func Agents(records []core.KPIRecord) []AgentTotals {
	groups := make(map[string]*AgentTotals)
	for _, r := range records {
		g, ok := groups[r.Agent]
		if !ok {
			g = &AgentTotals{Agent: r.Agent}
			groups[r.Agent] = g
		}
		g.Spend += r.Spend
		g.Register += r.Register
		g.FTD += r.FTD
	}
	out := make([]AgentTotals, 0, len(groups))
	for _, g := range groups {
		g.ConvRate = core.Round2(core.SafeDiv(float64(g.FTD), float64(g.Register)) * 100)
		g.CPR = core.Round2(core.SafeDiv(g.Spend, float64(g.Register)))
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}

// LatestDate returns the most recent date among KPI records, and false for an
// empty slice.
func LatestDate(records []core.KPIRecord) (time.Time, bool) {
	var latest time.Time
	for _, r := range records {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest, !latest.IsZero()
}

// OnDate filters KPI records to one calendar date.
func OnDate(records []core.KPIRecord, day time.Time) []core.KPIRecord {
	var out []core.KPIRecord
	y, m, d := day.Date()
	for _, r := range records {
		ry, rm, rd := r.Date.Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}

// TypeTotal is the rollup of daily creative or SMS totals for one agent and
// type.
type TypeTotal struct {
	Agent string `json:"agent"`
	Type  string `json:"type"`
	Total int    `json:"total"`
}

type typeDayKey struct {
	agent string
	date  string
	typ   string
}

// CreativeTotals sums daily creative totals per agent and type. The sheet
// repeats the running daily total on every row of a date, so only the first
// value per agent, date, and type counts.
func CreativeTotals(records []core.CreativeRecord) []TypeTotal {
	daily := make(map[typeDayKey]int)
	for _, r := range records {
		k := typeDayKey{r.Agent, r.Date.Format("2006-01-02"), r.Type}
		if _, ok := daily[k]; !ok {
			daily[k] = r.Total
		}
	}
	return sumTypeTotals(daily)
}

// SMSTotals sums daily SMS totals per agent and type, with the same
// first-value-per-date rule as CreativeTotals.
func SMSTotals(records []core.SMSRecord) []TypeTotal {
	daily := make(map[typeDayKey]int)
	for _, r := range records {
		k := typeDayKey{r.Agent, r.Date.Format("2006-01-02"), r.Type}
		if _, ok := daily[k]; !ok {
			daily[k] = r.Total
		}
	}
	return sumTypeTotals(daily)
}

func sumTypeTotals(daily map[typeDayKey]int) []TypeTotal {
	type groupKey struct {
		agent string
		typ   string
	}
	groups := make(map[groupKey]int)
	for k, total := range daily {
		groups[groupKey{k.agent, k.typ}] += total
	}
	out := make([]TypeTotal, 0, len(groups))
	for k, total := range groups {
		out = append(out, TypeTotal{Agent: k.agent, Type: k.typ, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Agent != out[j].Agent {
			return out[i].Agent < out[j].Agent
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// CounterpartSummary is the per-source rollup of counterpart records, with
// cost efficiency and ROAS derived from the sums.
type CounterpartSummary struct {
	Channel         string  `json:"channel"`
	ChannelSource   string  `json:"channel_source"`
	FirstRecharge   int     `json:"first_recharge"`
	TotalAmount     float64 `json:"total_amount"`
	Spending        float64 `json:"spending"`
	ARPPU           float64 `json:"arppu"`
	CostPerRecharge float64 `json:"cost_per_recharge"`
	ROAS            float64 `json:"roas"`
}

// Counterpart sums daily counterpart records per channel and source. Overall
// rows (zero date) are ignored so the sheet's own totals do not double count.
func Counterpart(records []core.CounterpartRecord) []CounterpartSummary {
	type groupKey struct {
		channel string
		source  string
	}
	groups := make(map[groupKey]*CounterpartSummary)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		k := groupKey{r.Channel, r.ChannelSource}
		g, ok := groups[k]
		if !ok {
			g = &CounterpartSummary{Channel: k.channel, ChannelSource: k.source}
			groups[k] = g
		}
		g.FirstRecharge += r.FirstRecharge
		g.TotalAmount += r.TotalAmount
		g.Spending += r.Spending
	}
	out := make([]CounterpartSummary, 0, len(groups))
	for _, g := range groups {
		g.ARPPU = core.Round2(core.SafeDiv(g.TotalAmount, float64(g.FirstRecharge)))
		g.CostPerRecharge = core.Round2(core.SafeDiv(g.Spending, float64(g.FirstRecharge)))
		g.ROAS = core.Round2(core.SafeDiv(g.ARPPU/PHPPerUSD, g.CostPerRecharge))
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Channel != out[j].Channel {
			return out[i].Channel < out[j].Channel
		}
		return out[i].ChannelSource < out[j].ChannelSource
	})
	return out
}
