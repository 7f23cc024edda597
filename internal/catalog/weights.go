package catalog

import "github.com/ameya-wealth/wealth-api/internal/model"

// WeightTable maps questionID -> answer value -> archetype score increments.
// Only single-select answers contribute; multi-select answers carry no
// weights and only shape the recommendation downstream.
type WeightTable map[string]map[string]map[model.Archetype]float64

// ProfileWeights is the scoring table behind Score. Values were calibrated
// against the advisory team's segmentation of existing clients.
var ProfileWeights = WeightTable{
	"age": {
		"18-25": {model.ArchetypeGrowthSeeker: 3, model.ArchetypeWealthBuilder: 2},
		"26-35": {model.ArchetypeWealthBuilder: 3, model.ArchetypeBalancedInvestor: 2, model.ArchetypeTaxOptimizer: 1},
		"36-45": {model.ArchetypeBalancedInvestor: 3, model.ArchetypeTaxOptimizer: 2, model.ArchetypeWealthBuilder: 1},
		"46-55": {model.ArchetypeBalancedInvestor: 2, model.ArchetypeIncomeSeeker: 2, model.ArchetypeConservativeSaver: 1},
		"55+":   {model.ArchetypeIncomeSeeker: 3, model.ArchetypeConservativeSaver: 2},
	},
	"income": {
		"below-5l":  {model.ArchetypeConservativeSaver: 2, model.ArchetypeTaxOptimizer: 1},
		"5l-10l":    {model.ArchetypeBalancedInvestor: 2, model.ArchetypeTaxOptimizer: 2},
		"10l-25l":   {model.ArchetypeWealthBuilder: 2, model.ArchetypeTaxOptimizer: 2, model.ArchetypeBalancedInvestor: 1},
		"25l-50l":   {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 2, model.ArchetypeTaxOptimizer: 1},
		"above-50l": {model.ArchetypeGrowthSeeker: 3, model.ArchetypeWealthBuilder: 2},
	},
	"primaryGoal": {
		"retirement":      {model.ArchetypeIncomeSeeker: 2, model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 1},
		"wealth-creation": {model.ArchetypeGrowthSeeker: 3, model.ArchetypeWealthBuilder: 2},
		"child-education": {model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 2},
		"child-marriage":  {model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 1},
		"home-purchase":   {model.ArchetypeConservativeSaver: 2, model.ArchetypeBalancedInvestor: 1},
		"sabbatical":      {model.ArchetypeBalancedInvestor: 2, model.ArchetypeGrowthSeeker: 1},
	},
	"goalAmount": {
		"below-10l": {model.ArchetypeConservativeSaver: 1},
		"10l-25l":   {model.ArchetypeBalancedInvestor: 1},
		"25l-50l":   {model.ArchetypeBalancedInvestor: 1, model.ArchetypeWealthBuilder: 1},
		"50l-1cr":   {model.ArchetypeWealthBuilder: 2},
		"1cr-3cr":   {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 1},
		"above-3cr": {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 2},
	},
	"riskTolerance": {
		"very-low":  {model.ArchetypeConservativeSaver: 4},
		"low":       {model.ArchetypeConservativeSaver: 2, model.ArchetypeIncomeSeeker: 2},
		"moderate":  {model.ArchetypeBalancedInvestor: 3, model.ArchetypeWealthBuilder: 1},
		"high":      {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 2},
		"very-high": {model.ArchetypeGrowthSeeker: 4},
	},
	"experience": {
		"beginner":       {model.ArchetypeConservativeSaver: 2, model.ArchetypeBalancedInvestor: 1},
		"some-knowledge": {model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 1},
		"intermediate":   {model.ArchetypeWealthBuilder: 2, model.ArchetypeTaxOptimizer: 1},
		"experienced":    {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 1},
		"expert":         {model.ArchetypeGrowthSeeker: 3},
	},
	"timeHorizon": {
		"less-1-year":   {model.ArchetypeConservativeSaver: 3, model.ArchetypeIncomeSeeker: 1},
		"1-3-years":     {model.ArchetypeBalancedInvestor: 2, model.ArchetypeConservativeSaver: 1},
		"3-5-years":     {model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 2},
		"5-10-years":    {model.ArchetypeWealthBuilder: 3, model.ArchetypeGrowthSeeker: 1},
		"more-10-years": {model.ArchetypeGrowthSeeker: 3, model.ArchetypeWealthBuilder: 2},
	},
	"monthlyInvestment": {
		"below-5k": {model.ArchetypeConservativeSaver: 2},
		"5k-15k":   {model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 1},
		"15k-50k":  {model.ArchetypeWealthBuilder: 2, model.ArchetypeTaxOptimizer: 1},
		"50k-1l":   {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 2},
		"above-1l": {model.ArchetypeGrowthSeeker: 3, model.ArchetypeTaxOptimizer: 1},
	},
	"existingInvestments": {
		"fd-only":     {model.ArchetypeConservativeSaver: 3},
		"fd-mf":       {model.ArchetypeBalancedInvestor: 2},
		"stocks-mf":   {model.ArchetypeGrowthSeeker: 2, model.ArchetypeWealthBuilder: 1},
		"diversified": {model.ArchetypeBalancedInvestor: 2, model.ArchetypeWealthBuilder: 2},
		"none":        {model.ArchetypeConservativeSaver: 1},
	},
}
