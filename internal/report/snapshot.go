// Package report builds the Telegram KPI reports: snapshotting the last sent
// state, diffing against it, and rendering the HTML summary and the workbook
// attachment.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"adsboard/internal/core"
)

// Totals is the spend/register/FTD triple tracked per agent and for the
// whole team.
type Totals struct {
	Spend    float64 `json:"spend"`
	Register int     `json:"register"`
	FTD      int     `json:"ftd"`
}

// Snapshot is the state persisted after each report so the next run can show
// what moved since.
type Snapshot struct {
	Date       string            `json:"date"`
	TeamTotals Totals            `json:"team_totals"`
	Agents     map[string]Totals `json:"agents"`
	Timestamp  time.Time         `json:"timestamp"`
}

// BuildSnapshot rolls one day's KPI records into a snapshot.
func BuildSnapshot(day time.Time, records []core.KPIRecord) Snapshot {
	snap := Snapshot{
		Date:      day.Format("2006-01-02"),
		Agents:    make(map[string]Totals),
		Timestamp: time.Now(),
	}
	for _, r := range records {
		a := snap.Agents[r.Agent]
		a.Spend += r.Spend
		a.Register += r.Register
		a.FTD += r.FTD
		snap.Agents[r.Agent] = a

		snap.TeamTotals.Spend += r.Spend
		snap.TeamTotals.Register += r.Register
		snap.TeamTotals.FTD += r.FTD
	}
	return snap
}

// Store persists snapshots as a JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the last snapshot. A missing file is not an error: it returns
// nil, meaning no previous report exists.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot, replacing any previous one.
func (s *Store) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// AgentDelta is the movement of one agent between two snapshots.
type AgentDelta struct {
	SpendDiff    float64 `json:"spend_diff"`
	RegisterDiff int     `json:"reg_diff"`
	FTDDiff      int     `json:"ftd_diff"`
	HasChange    bool    `json:"has_change"`
}

// Compare diffs the current snapshot against the previous one. With no
// previous snapshot, or one from a different day, it returns nil: every
// agent is treated as fresh.
func Compare(prev *Snapshot, cur Snapshot) map[string]AgentDelta {
	if prev == nil || prev.Date != cur.Date {
		return nil
	}
	out := make(map[string]AgentDelta, len(cur.Agents))
	for name, now := range cur.Agents {
		before := prev.Agents[name]
		d := AgentDelta{
			SpendDiff:    now.Spend - before.Spend,
			RegisterDiff: now.Register - before.Register,
			FTDDiff:      now.FTD - before.FTD,
		}
		d.HasChange = d.SpendDiff != 0 || d.RegisterDiff != 0 || d.FTDDiff != 0
		out[name] = d
	}
	return out
}
