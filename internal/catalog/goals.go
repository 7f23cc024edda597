package catalog

import "github.com/ameya-wealth/wealth-api/internal/model"

// Goals is the catalog of financial goals users can plan toward.
var Goals = map[model.GoalType]model.Goal{
	model.GoalRetirement: {
		ID:              model.GoalRetirement,
		Name:            "Retirement Corpus",
		Description:     "Build a corpus for a worry-free retirement",
		TypicalTimeline: "15-30 years",
		Priority:        model.PriorityEssential,
	},
	model.GoalChildEducation: {
		ID:              model.GoalChildEducation,
		Name:            "Child's Education",
		Description:     "Fund higher education (India/abroad)",
		TypicalTimeline: "10-18 years",
		Priority:        model.PriorityEssential,
	},
	model.GoalChildMarriage: {
		ID:              model.GoalChildMarriage,
		Name:            "Child's Marriage",
		Description:     "Create a fund for wedding expenses",
		TypicalTimeline: "15-25 years",
		Priority:        model.PriorityImportant,
	},
	model.GoalHomePurchase: {
		ID:              model.GoalHomePurchase,
		Name:            "Dream Home",
		Description:     "Save for down payment or full purchase",
		TypicalTimeline: "3-10 years",
		Priority:        model.PriorityEssential,
	},
	model.GoalWealthCreation: {
		ID:              model.GoalWealthCreation,
		Name:            "Wealth Creation",
		Description:     "Grow your wealth through smart investing",
		TypicalTimeline: "5-15 years",
		Priority:        model.PriorityImportant,
	},
	model.GoalEmergencyFund: {
		ID:              model.GoalEmergencyFund,
		Name:            "Emergency Fund",
		Description:     "6-12 months of expenses as safety net",
		TypicalTimeline: "1-2 years",
		Priority:        model.PriorityEssential,
	},
	model.GoalSabbatical: {
		ID:              model.GoalSabbatical,
		Name:            "Career Break / Sabbatical",
		Description:     "Fund a planned career break or travel",
		TypicalTimeline: "2-5 years",
		Priority:        model.PriorityAspirational,
	},
	model.GoalDreamVacation: {
		ID:              model.GoalDreamVacation,
		Name:            "Dream Vacation",
		Description:     "Save for that bucket-list trip",
		TypicalTimeline: "1-3 years",
		Priority:        model.PriorityAspirational,
	},
	model.GoalCarPurchase: {
		ID:              model.GoalCarPurchase,
		Name:            "Vehicle Purchase",
		Description:     "Save for your next car or upgrade",
		TypicalTimeline: "1-5 years",
		Priority:        model.PriorityImportant,
	},
}

// GoalAmounts maps the goalAmount answer value to a planning target in
// rupees, using a representative figure for each band.
var GoalAmounts = map[string]int64{
	"below-10l": 1_000_000,
	"10l-25l":   2_500_000,
	"25l-50l":   5_000_000,
	"50l-1cr":   10_000_000,
	"1cr-3cr":   20_000_000,
	"above-3cr": 50_000_000,
}

// DefaultGoalAmount is used when the goalAmount answer is missing or
// unrecognized.
const DefaultGoalAmount int64 = 5_000_000

// TimelineYears maps the timeHorizon answer value to a planning horizon.
var TimelineYears = map[string]int{
	"less-1-year":   1,
	"1-3-years":     2,
	"3-5-years":     4,
	"5-10-years":    7,
	"more-10-years": 15,
}

// DefaultTimelineYears is used when the timeHorizon answer is missing or
// unrecognized.
const DefaultTimelineYears = 7

// GoalForAnswer maps a primaryGoal answer value to its catalog entry.
func GoalForAnswer(value string) (model.Goal, bool) {
	g, ok := Goals[model.GoalType(value)]
	return g, ok
}
