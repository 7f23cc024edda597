// Package store persists accounts, goals, KYC state and funnel events behind
// a Store interface with Postgres and SQLite drivers.
package store

import (
	"context"
	"time"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

// EventFilter narrows funnel queries to a window and session.
type EventFilter struct {
	SessionID string    `json:"session_id,omitempty"`
	Since     time.Time `json:"since,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

// StepStat is one questionnaire step's view/completion counts.
type StepStat struct {
	StepNumber  int    `json:"step_number"`
	StepName    string `json:"step_name"`
	Views       int    `json:"views"`
	Completions int    `json:"completions"`
}

// FunnelStats is the raw aggregate behind the funnel report: per-type event
// counts, per-step views and completions, device breakdown, and drop-off
// counts keyed by each abandoned session's last seen step.
type FunnelStats struct {
	TotalSessions     int                     `json:"total_sessions"`
	CompletedSessions int                     `json:"completed_sessions"`
	EventCounts       map[model.EventType]int `json:"event_counts"`
	Steps             []StepStat              `json:"steps"`
	DeviceBreakdown   map[string]int          `json:"device_breakdown"`
	DropOffByLastStep map[string]int          `json:"drop_off_by_last_step"`
}

// Store defines the persistence interface for the onboarding platform.
type Store interface {
	// Accounts
	UpsertUserProfile(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error)
	GetUserProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	InsertInvestorProfile(ctx context.Context, p *model.InvestorProfile) (*model.InvestorProfile, error)
	GetInvestorProfile(ctx context.Context, userID string) (*model.InvestorProfile, error)
	AppendAnswers(ctx context.Context, userID string, answers []model.Answer) error

	// Goals and holdings
	InsertGoal(ctx context.Context, g *model.GoalRecord) (*model.GoalRecord, error)
	ListGoals(ctx context.Context, userID string) ([]model.GoalRecord, error)
	InsertHolding(ctx context.Context, h *model.Holding) (*model.Holding, error)
	ListHoldings(ctx context.Context, userID string) ([]model.Holding, error)
	GetDashboard(ctx context.Context, userID string) (*model.Dashboard, error)

	// KYC (satisfies kyc.Store)
	GetKYCRecord(ctx context.Context, userID string) (*model.KYCRecord, error)
	UpsertKYCRecord(ctx context.Context, rec *model.KYCRecord) (*model.KYCRecord, error)
	AppendAuditEntry(ctx context.Context, entry *model.AuditEntry) error
	ListAuditEntries(ctx context.Context, userID string, limit int) ([]model.AuditEntry, error)
	ListDocuments(ctx context.Context, userID string) ([]model.UserDocument, error)
	InsertDocument(ctx context.Context, doc *model.UserDocument) (*model.UserDocument, error)
	UpdateDocumentStatus(ctx context.Context, docID string, status model.DocStatus, notes string) (*model.UserDocument, error)

	// Funnel events
	InsertFunnelEvents(ctx context.Context, events []model.FunnelEvent) (int64, error)
	ListFunnelEvents(ctx context.Context, filter EventFilter) ([]model.FunnelEvent, error)
	FunnelStats(ctx context.Context, since time.Time) (*FunnelStats, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
