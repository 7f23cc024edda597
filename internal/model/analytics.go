package model

import (
	"encoding/json"
	"time"
)

// EventType is the funnel event taxonomy. It matches the events the web
// client emits during onboarding and must stay stable for reporting.
type EventType string

const (
	EventStepView     EventType = "step_view"
	EventStepComplete EventType = "step_complete"
	EventCTAClick     EventType = "cta_click"
	EventFormStart    EventType = "form_start"
	EventFormComplete EventType = "form_complete"
	EventProfileView  EventType = "profile_view"
	EventDropOff      EventType = "drop_off"
)

// EventTypes lists all known funnel event types.
var EventTypes = []EventType{
	EventStepView,
	EventStepComplete,
	EventCTAClick,
	EventFormStart,
	EventFormComplete,
	EventProfileView,
	EventDropOff,
}

// FunnelEvent is one fire-and-forget analytics event keyed by a per-browser
// session identifier. Best effort only; losing one is acceptable.
type FunnelEvent struct {
	ID         string          `json:"id,omitempty"`
	SessionID  string          `json:"session_id"`
	Type       EventType       `json:"event_type"`
	StepNumber int             `json:"step_number,omitempty"`
	StepName   string          `json:"step_name,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	DeviceType string          `json:"device_type,omitempty"`
	Referrer   string          `json:"referrer,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}
