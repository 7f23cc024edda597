package model

import "time"

// GoalType identifies a financial goal in the goal catalog.
type GoalType string

const (
	GoalRetirement     GoalType = "retirement"
	GoalChildEducation GoalType = "child-education"
	GoalChildMarriage  GoalType = "child-marriage"
	GoalHomePurchase   GoalType = "home-purchase"
	GoalWealthCreation GoalType = "wealth-creation"
	GoalEmergencyFund  GoalType = "emergency-fund"
	GoalSabbatical     GoalType = "sabbatical"
	GoalDreamVacation  GoalType = "dream-vacation"
	GoalCarPurchase    GoalType = "car-purchase"
)

// GoalPriority ranks how essential a goal is.
type GoalPriority string

const (
	PriorityEssential    GoalPriority = "essential"
	PriorityImportant    GoalPriority = "important"
	PriorityAspirational GoalPriority = "aspirational"
)

// Goal is a static catalog entry describing a financial goal.
type Goal struct {
	ID              GoalType     `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Description     string       `json:"description" yaml:"description"`
	TypicalTimeline string       `json:"typical_timeline" yaml:"typical_timeline"`
	Priority        GoalPriority `json:"priority" yaml:"priority"`
}

// GoalRecord is a user's persisted goal with its recommended plan.
type GoalRecord struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"user_id"`
	GoalName             string          `json:"goal_name"`
	GoalType             GoalType        `json:"goal_type"`
	TargetAmount         int64           `json:"target_amount"`
	TimelineYears        int             `json:"timeline_years"`
	MonthlySIP           int64           `json:"monthly_sip"`
	IsPrimary            bool            `json:"is_primary"`
	Status               string          `json:"status"`
	RecommendedPortfolio *ModelPortfolio `json:"recommended_portfolio,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}
