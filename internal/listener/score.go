package listener

import (
	"sort"
	"strings"

	"adsboard/internal/storage"
)

// reportKeywords mark a message as a report submission.
var reportKeywords = []string{"report", "kpi", "update", "spend", "summary"}

// punctualityBands award points by the average minute-of-hour an agent's
// report messages land on. Reports are due at the top of the hour; the later
// into the hour they average, the fewer points.
var punctualityBands = []struct {
	Score     int
	FromMin   int
	ThroughMin int
}{
	{4, 0, 14},
	{3, 15, 24},
	{2, 25, 34},
	{1, 35, 999},
}

// AgentScore is one agent's chat activity for a day.
type AgentScore struct {
	Agent          string  `json:"agent"`
	Messages       int     `json:"messages"`
	ReportMessages int     `json:"report_messages"`
	AvgMinute      float64 `json:"avg_minute"`
	Score          int     `json:"score"`
}

func isReport(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range reportKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func punctualityScore(avgMinute float64) int {
	m := int(avgMinute)
	for _, band := range punctualityBands {
		if m >= band.FromMin && m <= band.ThroughMin {
			return band.Score
		}
	}
	return 0
}

// ScoreDay scores one day of messages. mentions maps agent names to their
// Telegram usernames; messages from usernames not in the map, and agents in
// excluded, are ignored. minuteOf extracts the minute-of-hour from a unix
// timestamp and is injectable for tests.
func ScoreDay(msgs []storage.Message, mentions map[string]string, excluded []string, minuteOf func(int64) int) []AgentScore {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[strings.ToUpper(strings.TrimSpace(name))] = true
	}

	// Reverse the mentions map: lowercase username -> agent name.
	byUsername := make(map[string]string, len(mentions))
	for agent, username := range mentions {
		agent = strings.ToUpper(agent)
		if skip[agent] {
			continue
		}
		byUsername[strings.ToLower(strings.TrimPrefix(username, "@"))] = agent
	}

	type acc struct {
		messages    int
		reports     int
		minuteTotal int
	}
	byAgent := make(map[string]*acc)
	for _, m := range msgs {
		agent, ok := byUsername[strings.ToLower(m.Username)]
		if !ok {
			continue
		}
		a := byAgent[agent]
		if a == nil {
			a = &acc{}
			byAgent[agent] = a
		}
		a.messages++
		if isReport(m.Text) {
			a.reports++
			a.minuteTotal += minuteOf(m.Date)
		}
	}

	out := make([]AgentScore, 0, len(byAgent))
	for agent, a := range byAgent {
		s := AgentScore{
			Agent:          agent,
			Messages:       a.messages,
			ReportMessages: a.reports,
		}
		if a.reports > 0 {
			s.AvgMinute = float64(a.minuteTotal) / float64(a.reports)
			s.Score = punctualityScore(s.AvgMinute)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}
