package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"adsboard/internal/core"
)

// TelegramMessageLimit is the hard cap on one Telegram message. Reports are
// chunked just under it.
const TelegramMessageLimit = 4096

const chunkSize = 4000

// money renders dollar amounts with thousands separators.
var money = message.NewPrinter(language.English)

// FormatReport renders the KPI report as Telegram HTML. deltas may be nil on
// the first report of a day; threshold is the low-spend alert level in
// dollars; mentions maps agent names to the Telegram usernames appended at
// the bottom.
func FormatReport(day, now time.Time, records []core.KPIRecord, deltas map[string]AgentDelta, threshold float64, mentions map[string]string) string {
	var spend float64
	var register, ftd, clicks, impressions int
	perAgent := make(map[string]Totals)
	for _, r := range records {
		spend += r.Spend
		register += r.Register
		ftd += r.FTD
		clicks += r.Clicks
		impressions += r.Impressions

		a := perAgent[r.Agent]
		a.Spend += r.Spend
		a.Register += r.Register
		a.FTD += r.FTD
		perAgent[r.Agent] = a
	}

	var b strings.Builder
	b.WriteString("📊 <b>ADVERTISER KPI REPORT</b>\n")
	fmt.Fprintf(&b, "🗓 %s | %s\n\n", day.Format("January 2, 2006"), now.Format("15:04"))

	b.WriteString("<b>TEAM TOTALS</b>\n")
	money.Fprintf(&b, "├ Spend: $%.2f\n", spend)
	fmt.Fprintf(&b, "├ Register: %d\n", register)
	fmt.Fprintf(&b, "├ FTD: %d\n", ftd)
	fmt.Fprintf(&b, "├ Conv Rate: %.1f%%\n", core.SafeDiv(float64(ftd), float64(register))*100)
	fmt.Fprintf(&b, "├ CPR: $%.2f\n", core.SafeDiv(spend, float64(register)))
	fmt.Fprintf(&b, "├ Cost/FTD: $%.2f\n", core.SafeDiv(spend, float64(ftd)))
	fmt.Fprintf(&b, "└ CTR: %.2f%%\n\n", core.SafeDiv(float64(clicks), float64(impressions))*100)

	names := make([]string, 0, len(perAgent))
	for name := range perAgent {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if perAgent[names[i]].Spend != perAgent[names[j]].Spend {
			return perAgent[names[i]].Spend > perAgent[names[j]].Spend
		}
		return names[i] < names[j]
	})

	b.WriteString("<pre>")
	fmt.Fprintf(&b, "%-8s%9s%5s%5s%6s\n", "Agent", "Spend", "Reg", "FTD", "Conv")
	b.WriteString(strings.Repeat("-", 33))
	b.WriteString("\n")
	for _, name := range names {
		a := perAgent[name]
		fmt.Fprintf(&b, "%-8s$%7.0f%s%5d%5d%5.1f%%\n",
			truncate(name, 8), a.Spend, trendIndicator(deltas, name),
			a.Register, a.FTD, core.SafeDiv(float64(a.FTD), float64(a.Register))*100)
	}
	b.WriteString("</pre>\n")

	if alerts := buildAlerts(names, perAgent, deltas, threshold); len(alerts) > 0 {
		b.WriteString("\n⚠️ <b>ALERTS</b>\n")
		for _, a := range alerts {
			b.WriteString(a)
			b.WriteString("\n")
		}
	}

	if tags := mentionTags(names, mentions); tags != "" {
		b.WriteString("\n")
		b.WriteString(tags)
		b.WriteString("\n")
	}

	return b.String()
}

func trendIndicator(deltas map[string]AgentDelta, name string) string {
	d, ok := deltas[name]
	if !ok {
		return "─"
	}
	switch {
	case d.SpendDiff > 0:
		return "↑"
	case d.SpendDiff < 0:
		return "↓"
	default:
		return "─"
	}
}

func buildAlerts(names []string, perAgent map[string]Totals, deltas map[string]AgentDelta, threshold float64) []string {
	var out []string
	for _, name := range names {
		if a := perAgent[name]; a.Spend < threshold {
			out = append(out, fmt.Sprintf("• <b>%s</b>: Low spend ($%.2f) - Focus and work hard!", name, a.Spend))
		}
	}
	for _, name := range names {
		if d, ok := deltas[name]; ok && !d.HasChange {
			out = append(out, fmt.Sprintf("• <b>%s</b>: No change since last report", name))
		}
	}
	return out
}

func mentionTags(names []string, mentions map[string]string) string {
	var tags []string
	for _, name := range names {
		if tag, ok := mentions[name]; ok {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Chunk splits a message on line boundaries so each piece fits a Telegram
// message. A single overlong line is split hard.
func Chunk(msg string) []string {
	if len(msg) <= chunkSize {
		return []string{msg}
	}
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.Split(msg, "\n") {
		for len(line) > chunkSize {
			if cur.Len() > 0 {
				chunks = append(chunks, cur.String())
				cur.Reset()
			}
			chunks = append(chunks, line[:chunkSize])
			line = line[chunkSize:]
		}
		if cur.Len()+len(line)+1 > chunkSize {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// FormatReminder renders the countdown message sent before the daily report.
func FormatReminder(minutes int, mentions map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ <b>REMINDER</b>: Daily KPI report in %d minutes.\n", minutes)
	b.WriteString("Update your sheets now so the numbers are complete.\n")

	names := make([]string, 0, len(mentions))
	for name := range mentions {
		names = append(names, name)
	}
	sort.Strings(names)
	if tags := mentionTags(names, mentions); tags != "" {
		b.WriteString("\n")
		b.WriteString(tags)
		b.WriteString("\n")
	}
	return b.String()
}
