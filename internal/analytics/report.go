package analytics

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/store"
)

// StatsSource provides the raw funnel aggregates. Satisfied by store.Store.
type StatsSource interface {
	FunnelStats(ctx context.Context, since time.Time) (*store.FunnelStats, error)
}

// StepReport is one questionnaire step with its completion rate.
type StepReport struct {
	StepNumber    int     `json:"step_number"`
	StepName      string  `json:"step_name"`
	Views         int     `json:"views"`
	Completions   int     `json:"completions"`
	CompletionPct float64 `json:"completion_pct"`
}

// Report is the funnel report served to admins and exported to xlsx.
type Report struct {
	Since             time.Time               `json:"since"`
	GeneratedAt       time.Time               `json:"generated_at"`
	TotalSessions     int                     `json:"total_sessions"`
	CompletedSessions int                     `json:"completed_sessions"`
	ConversionPct     float64                 `json:"conversion_pct"`
	Steps             []StepReport            `json:"steps"`
	EventCounts       map[model.EventType]int `json:"event_counts"`
	DeviceBreakdown   map[string]int          `json:"device_breakdown"`
	DropOffByLastStep map[string]int          `json:"drop_off_by_last_step"`
}

// BuildReport aggregates funnel stats since the given time into a report.
func BuildReport(ctx context.Context, src StatsSource, since time.Time) (*Report, error) {
	stats, err := src.FunnelStats(ctx, since)
	if err != nil {
		return nil, eris.Wrap(err, "analytics: funnel stats")
	}

	report := &Report{
		Since:             since,
		GeneratedAt:       time.Now().UTC(),
		TotalSessions:     stats.TotalSessions,
		CompletedSessions: stats.CompletedSessions,
		EventCounts:       stats.EventCounts,
		DeviceBreakdown:   stats.DeviceBreakdown,
		DropOffByLastStep: stats.DropOffByLastStep,
	}
	if stats.TotalSessions > 0 {
		report.ConversionPct = float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100
	}

	for _, st := range stats.Steps {
		sr := StepReport{
			StepNumber:  st.StepNumber,
			StepName:    st.StepName,
			Views:       st.Views,
			Completions: st.Completions,
		}
		if st.Views > 0 {
			sr.CompletionPct = float64(st.Completions) / float64(st.Views) * 100
		}
		report.Steps = append(report.Steps, sr)
	}
	return report, nil
}
