package server

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/analytics"
	"github.com/ameya-wealth/wealth-api/internal/model"
)

type ingestRequest struct {
	Events []model.FunnelEvent `json:"events"`
}

// handleIngestEvents accepts either a single funnel event or a batch under
// an "events" key. Invalid events are dropped; ingestion always succeeds so
// the client never retries analytics.
func (s *Server) handleIngestEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var batch ingestRequest
	if err := json.Unmarshal(body, &batch); err != nil || batch.Events == nil {
		var single model.FunnelEvent
		if err := json.Unmarshal(body, &single); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		batch.Events = []model.FunnelEvent{single}
	}

	accepted := 0
	for _, ev := range batch.Events {
		if ev.SessionID == "" || !slices.Contains(model.EventTypes, ev.Type) {
			continue
		}
		s.deps.Emitter.Emit(ev)
		accepted++
	}
	respondJSON(w, http.StatusAccepted, map[string]int{"accepted": accepted})
}

// handleFunnelReport aggregates funnel events since a cutoff. The window is
// either ?since=RFC3339 or ?days=N, defaulting to the last 30 days.
func (s *Server) handleFunnelReport(w http.ResponseWriter, r *http.Request) {
	since, err := reportWindow(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := analytics.BuildReport(r.Context(), s.deps.Store, since)
	if err != nil {
		zap.L().Error("funnel report failed", zap.Time("since", since), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "could not build funnel report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func reportWindow(r *http.Request) (time.Time, error) {
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, errBadQuery("since must be an RFC3339 timestamp")
		}
		return t, nil
	}
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return time.Time{}, errBadQuery("days must be a positive integer")
		}
		days = n
	}
	return time.Now().UTC().AddDate(0, 0, -days), nil
}

type errBadQuery string

func (e errBadQuery) Error() string { return string(e) }
