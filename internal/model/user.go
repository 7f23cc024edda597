package model

import "time"

// UserProfile is the persisted account profile created when the user
// registers after completing the questionnaire.
type UserProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	PAN       string    `json:"pan,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvestorProfile is the persisted scoring outcome for a registered user.
// Scores is the full six-archetype vector kept as structured data.
type InvestorProfile struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	ProfileType Archetype   `json:"profile_type"`
	Confidence  float64     `json:"confidence"`
	Scores      ScoreVector `json:"scores"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Holding is one instrument position backing the dashboard.
type Holding struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	AssetClass     string    `json:"asset_class"`
	Name           string    `json:"name"`
	Category       string    `json:"category,omitempty"`
	InvestedAmount int64     `json:"invested_amount"`
	CurrentValue   int64     `json:"current_value"`
	Units          float64   `json:"units,omitempty"`
	NAV            float64   `json:"nav,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Returns is the absolute gain on the holding.
func (h Holding) Returns() int64 { return h.CurrentValue - h.InvestedAmount }

// ReturnsPct is the percentage gain on invested amount, 0 when nothing is
// invested.
func (h Holding) ReturnsPct() float64 {
	if h.InvestedAmount == 0 {
		return 0
	}
	return float64(h.Returns()) / float64(h.InvestedAmount) * 100
}

// Dashboard bundles everything the client dashboard renders in one read.
type Dashboard struct {
	Profile         *UserProfile     `json:"profile"`
	InvestorProfile *InvestorProfile `json:"investor_profile"`
	Goals           []GoalRecord     `json:"goals"`
	Holdings        []Holding        `json:"holdings"`
}
