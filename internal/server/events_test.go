package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameya-wealth/wealth-api/internal/analytics"
	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/store"
)

func TestIngestSingleEvent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/events", model.FunnelEvent{
		SessionID:  "s-1",
		Type:       model.EventCTAClick,
		StepName:   "hero",
		DeviceType: "mobile",
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	body := decodeBody[map[string]int](t, w)
	assert.Equal(t, 1, body["accepted"])

	events := env.emitter.byType(model.EventCTAClick)
	require.Len(t, events, 1)
	assert.Equal(t, "s-1", events[0].SessionID)
}

func TestIngestBatch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/events", map[string]any{
		"events": []model.FunnelEvent{
			{SessionID: "s-1", Type: model.EventStepView, StepNumber: 1},
			{SessionID: "s-1", Type: model.EventStepComplete, StepNumber: 1},
			{SessionID: "", Type: model.EventStepView},            // no session
			{SessionID: "s-2", Type: model.EventType("made-up")},  // unknown type
		},
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	body := decodeBody[map[string]int](t, w)
	assert.Equal(t, 2, body["accepted"])
}

func TestIngestRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/events", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFunnelReport(t *testing.T) {
	env := newTestEnv(t)
	env.store.stats = &store.FunnelStats{
		TotalSessions:     100,
		CompletedSessions: 40,
		EventCounts:       map[model.EventType]int{model.EventStepView: 600},
		Steps: []store.StepStat{
			{StepNumber: 1, StepName: "age", Views: 100, Completions: 80},
		},
		DeviceBreakdown:   map[string]int{"mobile": 70, "desktop": 30},
		DropOffByLastStep: map[string]int{"riskTolerance": 25},
	}

	w := env.do(t, http.MethodGet, "/v1/admin/funnel?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	report := decodeBody[analytics.Report](t, w)
	assert.Equal(t, 100, report.TotalSessions)
	assert.Equal(t, 40, report.CompletedSessions)
}

func TestFunnelReportWindow(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default window", "", http.StatusOK},
		{"explicit days", "?days=90", http.StatusOK},
		{"rfc3339 since", "?since=" + time.Now().UTC().Add(-time.Hour).Format(time.RFC3339), http.StatusOK},
		{"bad days", "?days=zero", http.StatusBadRequest},
		{"negative days", "?days=-3", http.StatusBadRequest},
		{"bad since", "?since=yesterday", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/v1/admin/funnel"+tt.query, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestFunnelReportStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.statsErr = assert.AnError

	w := env.do(t, http.MethodGet, "/v1/admin/funnel", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
