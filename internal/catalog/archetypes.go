package catalog

import "github.com/ameya-wealth/wealth-api/internal/model"

// ArchetypeInfo is the presentation layer for an investor archetype: what
// the result screen shows alongside the recommendation.
type ArchetypeInfo struct {
	Archetype       model.Archetype `json:"archetype"`
	Name            string          `json:"name"`
	Tagline         string          `json:"tagline"`
	Description     string          `json:"description"`
	Characteristics []string        `json:"characteristics"`
	// AssetMix is the indicative percentage split shown on the result
	// screen, keyed by asset class.
	AssetMix map[string]int `json:"asset_mix"`
}

// ArchetypeInfos describes each investor archetype for result rendering.
var ArchetypeInfos = map[model.Archetype]ArchetypeInfo{
	model.ArchetypeConservativeSaver: {
		Archetype:   model.ArchetypeConservativeSaver,
		Name:        "The Calm Protector",
		Tagline:     "Steady foundations for lasting peace",
		Description: "You value stability and security above all, and prefer careful protection of what you have built.",
		Characteristics: []string{
			"Values capital preservation",
			"Seeks predictable, steady returns",
			"Prioritizes liquidity and accessibility",
			"Prefers time-tested instruments",
		},
		AssetMix: map[string]int{
			"mutual_funds": 20, "stocks": 5, "fixed_deposits": 40,
			"bonds": 20, "insurance": 10, "gold": 5,
		},
	},
	model.ArchetypeBalancedInvestor: {
		Archetype:   model.ArchetypeBalancedInvestor,
		Name:        "The Life Harmonizer",
		Tagline:     "Balance in all seasons of life",
		Description: "You seek harmony between growth and stability, growing when opportunity calls and protecting when prudence requires.",
		Characteristics: []string{
			"Embraces thoughtful diversification",
			"Maintains long-term perspective",
			"Values balanced risk-reward",
			"Practices systematic discipline",
		},
		AssetMix: map[string]int{
			"mutual_funds": 35, "stocks": 20, "fixed_deposits": 20,
			"bonds": 10, "insurance": 10, "gold": 5,
		},
	},
	model.ArchetypeGrowthSeeker: {
		Archetype:   model.ArchetypeGrowthSeeker,
		Name:        "The Purpose-Driven Builder",
		Tagline:     "Bold vision, patient execution",
		Description: "You pursue ambitious goals with conviction and are comfortable riding out volatility on the way.",
		Characteristics: []string{
			"Embraces market opportunities",
			"Focuses on long-term growth",
			"Comfortable with volatility",
			"Goal-oriented and purposeful",
		},
		AssetMix: map[string]int{
			"mutual_funds": 30, "stocks": 45, "fixed_deposits": 5,
			"bonds": 5, "insurance": 10, "gold": 5,
		},
	},
	model.ArchetypeTaxOptimizer: {
		Archetype:   model.ArchetypeTaxOptimizer,
		Name:        "The Strategic Guardian",
		Tagline:     "Wisdom in every decision",
		Description: "You approach wealth with strategic precision and make sure no opportunity for tax-efficient growth goes unnoticed.",
		Characteristics: []string{
			"Strategically tax-conscious",
			"Maximizes 80C, 80D benefits",
			"Values ELSS and PPF instruments",
			"Plans with precision and foresight",
		},
		AssetMix: map[string]int{
			"mutual_funds": 40, "stocks": 15, "fixed_deposits": 15,
			"bonds": 10, "insurance": 15, "gold": 5,
		},
	},
	model.ArchetypeWealthBuilder: {
		Archetype:   model.ArchetypeWealthBuilder,
		Name:        "The 100-Year Architect",
		Tagline:     "Building legacies that outlast lifetimes",
		Description: "You think in generations, not years, and trust the patience of systematic investing and compound growth.",
		Characteristics: []string{
			"Committed to systematic SIPs",
			"Goal-oriented and disciplined",
			"Patient, long-term mindset",
			"Believes in compounding power",
		},
		AssetMix: map[string]int{
			"mutual_funds": 45, "stocks": 25, "fixed_deposits": 10,
			"bonds": 5, "insurance": 10, "gold": 5,
		},
	},
	model.ArchetypeIncomeSeeker: {
		Archetype:   model.ArchetypeIncomeSeeker,
		Name:        "The Longevity Planner",
		Tagline:     "Abundance for every season",
		Description: "You plan for a long, fulfilling life sustained by reliable income streams and low volatility.",
		Characteristics: []string{
			"Focuses on regular income",
			"Values capital protection",
			"Prefers lower volatility",
			"Plans for longevity",
		},
		AssetMix: map[string]int{
			"mutual_funds": 25, "stocks": 10, "fixed_deposits": 30,
			"bonds": 20, "insurance": 10, "gold": 5,
		},
	},
}
