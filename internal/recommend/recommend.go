// Package recommend turns a scored questionnaire into an actionable plan:
// a model portfolio, a required monthly SIP and a growth projection.
package recommend

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/catalog"
	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/projection"
)

// SelectPortfolio matches a goal, timeline and archetype to a model
// portfolio. Rules apply in priority order: goal-specific portfolios first,
// then the short-timeline override, then archetype risk banding.
func SelectPortfolio(goal model.GoalType, timelineYears int, archetype model.Archetype) model.ModelPortfolio {
	switch {
	case goal == model.GoalRetirement:
		return catalog.Portfolios[model.PortfolioRetirementFocused]
	case goal == model.GoalChildEducation || goal == model.GoalChildMarriage:
		return catalog.Portfolios[model.PortfolioChildFuture]
	case timelineYears <= 3:
		return catalog.Portfolios[model.PortfolioShortTermGoal]
	case archetype == model.ArchetypeConservativeSaver || archetype == model.ArchetypeIncomeSeeker:
		return catalog.Portfolios[model.PortfolioConservativeStable]
	case archetype == model.ArchetypeGrowthSeeker:
		return catalog.Portfolios[model.PortfolioAggressiveGrowth]
	default:
		return catalog.Portfolios[model.PortfolioBalancedGrowth]
	}
}

// Recommend assembles the full plan for a completed questionnaire. Missing
// or unrecognized goal, amount and timeline answers fall back to planning
// defaults so a partially answered questionnaire still yields a plan.
func Recommend(answers []model.Answer, archetype model.Archetype) (model.Recommendation, error) {
	goalType := model.GoalWealthCreation
	if a, ok := model.FindAnswer(answers, "primaryGoal"); ok {
		if g, found := catalog.GoalForAnswer(a.Value.SingleValue()); found {
			goalType = g.ID
		}
	}
	goal := catalog.Goals[goalType]

	targetAmount := catalog.DefaultGoalAmount
	if a, ok := model.FindAnswer(answers, "goalAmount"); ok {
		if amt, found := catalog.GoalAmounts[a.Value.SingleValue()]; found {
			targetAmount = amt
		}
	}

	timelineYears := catalog.DefaultTimelineYears
	if a, ok := model.FindAnswer(answers, "timeHorizon"); ok {
		if years, found := catalog.TimelineYears[a.Value.SingleValue()]; found {
			timelineYears = years
		}
	}

	portfolio := SelectPortfolio(goalType, timelineYears, archetype)
	expectedReturn := portfolio.ExpectedReturns.Mid()

	sip, err := projection.RequiredMonthlySIP(targetAmount, timelineYears, expectedReturn)
	if err != nil {
		return model.Recommendation{}, eris.Wrap(err, "recommend: required sip")
	}

	points, err := projection.Project(sip, 0, timelineYears, expectedReturn)
	if err != nil {
		return model.Recommendation{}, eris.Wrap(err, "recommend: project")
	}
	final := points[len(points)-1]

	zap.L().Debug("recommend: built plan",
		zap.String("goal", string(goalType)),
		zap.String("portfolio", string(portfolio.ID)),
		zap.Int64("monthly_sip", sip),
		zap.Int("timeline_years", timelineYears),
	)

	return model.Recommendation{
		GoalType:        goalType,
		GoalName:        goal.Name,
		TargetAmount:    targetAmount,
		TimelineYears:   timelineYears,
		ExpectedReturn:  expectedReturn,
		MonthlySIP:      sip,
		Portfolio:       portfolio,
		Projection:      points,
		TotalInvested:   final.Invested,
		ProjectedCorpus: final.Corpus,
	}, nil
}
