package http

import (
	"encoding/json"
	"net/http"

	"adsboard/internal/aggregate"
	"adsboard/internal/core"
	applog "adsboard/internal/log"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Response encoding failed",
			applog.FieldError, err.Error(), applog.FieldPath, r.URL.Path)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, map[string]string{"error": msg})
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// handleChannel serves the aggregated channel summaries. The bucket query
// parameter picks the grouping: day (default), week, or month.
func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	var bucket aggregate.Bucket
	switch r.URL.Query().Get("bucket") {
	case "", "day":
		bucket = aggregate.ByDay
	case "week":
		bucket = aggregate.ByWeek
	case "month":
		bucket = aggregate.ByMonth
	default:
		respondError(w, r, http.StatusBadRequest, "bucket must be day, week, or month")
		return
	}
	records := s.board.Channel(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]any{
		"records":   records,
		"summaries": aggregate.Channel(records, bucket),
	})
}

// handleAgents serves every agent's performance bands plus the creative and
// SMS volume rollups across agents.
func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	agents := s.board.Agents(r.Context())
	var creatives []core.CreativeRecord
	var sms []core.SMSRecord
	for _, a := range agents {
		creatives = append(creatives, a.Creatives...)
		sms = append(sms, a.SMS...)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"agents":          agents,
		"creative_totals": aggregate.CreativeTotals(creatives),
		"sms_totals":      aggregate.SMSTotals(sms),
	})
}

func (s *Server) handleContents(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"contents": s.board.Contents(r.Context()),
	})
}

// handleKPI serves the per-person KPI records plus their per-agent totals.
func (s *Server) handleKPI(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	records := s.board.KPI(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]any{
		"records": records,
		"totals":  aggregate.Agents(records),
	})
}

func (s *Server) handleCounterpart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	records := s.board.Counterpart(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]any{
		"records":   records,
		"summaries": aggregate.Counterpart(records),
	})
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"records": s.board.TeamChannel(r.Context()),
	})
}

// handleRefresh drops every cached grid so the next read refetches.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.board.Refresh()
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "refreshed"})
}
