package model

// PortfolioID identifies a model portfolio in the catalog.
type PortfolioID string

const (
	PortfolioAggressiveGrowth   PortfolioID = "aggressive-growth"
	PortfolioBalancedGrowth     PortfolioID = "balanced-growth"
	PortfolioConservativeStable PortfolioID = "conservative-stable"
	PortfolioRetirementFocused  PortfolioID = "retirement-focused"
	PortfolioChildFuture        PortfolioID = "child-future"
	PortfolioShortTermGoal      PortfolioID = "short-term-goal"
)

// RiskLevel classifies a portfolio's risk tier.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
)

// ReturnRange is an expected annual return band in percent.
type ReturnRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Mid returns the midpoint of the band, used for projections.
func (r ReturnRange) Mid() float64 { return (r.Min + r.Max) / 2 }

// Allocation is one asset-class slice of a model portfolio.
type Allocation struct {
	Asset       string   `json:"asset" yaml:"asset"`
	Percentage  float64  `json:"percentage" yaml:"percentage"`
	Instruments []string `json:"instruments" yaml:"instruments"`
}

// ModelPortfolio is a static catalog entry. Allocation percentages for one
// portfolio always sum to exactly 100.
type ModelPortfolio struct {
	ID              PortfolioID  `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Description     string       `json:"description" yaml:"description"`
	RiskLevel       RiskLevel    `json:"risk_level" yaml:"risk_level"`
	ExpectedReturns ReturnRange  `json:"expected_returns" yaml:"expected_returns"`
	Allocation      []Allocation `json:"allocation" yaml:"allocation"`
	Rebalancing     string       `json:"rebalancing_frequency" yaml:"rebalancing_frequency"`
	MinInvestment   int64        `json:"minimum_investment" yaml:"minimum_investment"`
}

// AllocationTotal returns the sum of allocation percentages.
func (p ModelPortfolio) AllocationTotal() float64 {
	var total float64
	for _, a := range p.Allocation {
		total += a.Percentage
	}
	return total
}
