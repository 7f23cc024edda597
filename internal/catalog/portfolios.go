package catalog

import "github.com/ameya-wealth/wealth-api/internal/model"

// Portfolios is the catalog of model portfolios the selector draws from.
var Portfolios = map[model.PortfolioID]model.ModelPortfolio{
	model.PortfolioAggressiveGrowth: {
		ID:          model.PortfolioAggressiveGrowth,
		Name:        "Aggressive Growth Portfolio",
		Description: "High equity exposure for long-term wealth creation. Best for investors with 10+ years horizon and high risk tolerance.",
		RiskLevel:   model.RiskAggressive,
		ExpectedReturns: model.ReturnRange{Min: 12, Max: 15},
		Allocation: []model.Allocation{
			{Asset: "Large Cap Equity", Percentage: 35, Instruments: []string{"Nifty 50 Index Fund", "Large Cap MF"}},
			{Asset: "Mid & Small Cap", Percentage: 30, Instruments: []string{"Mid Cap MF", "Small Cap MF"}},
			{Asset: "International Equity", Percentage: 10, Instruments: []string{"US Equity Fund", "NASDAQ Fund"}},
			{Asset: "Debt Funds", Percentage: 15, Instruments: []string{"Corporate Bond Fund", "Gilt Fund"}},
			{Asset: "Gold", Percentage: 5, Instruments: []string{"Gold ETF", "Sovereign Gold Bond"}},
			{Asset: "REITs", Percentage: 5, Instruments: []string{"Embassy REIT", "Mindspace REIT"}},
		},
		Rebalancing:   "Quarterly",
		MinInvestment: 10000,
	},
	model.PortfolioBalancedGrowth: {
		ID:          model.PortfolioBalancedGrowth,
		Name:        "Balanced Growth Portfolio",
		Description: "Optimal mix of growth and stability. Ideal for medium-term goals with moderate risk appetite.",
		RiskLevel:   model.RiskModerate,
		ExpectedReturns: model.ReturnRange{Min: 10, Max: 12},
		Allocation: []model.Allocation{
			{Asset: "Large Cap Equity", Percentage: 30, Instruments: []string{"Nifty 50 Index Fund", "Large Cap MF"}},
			{Asset: "Mid Cap Equity", Percentage: 15, Instruments: []string{"Mid Cap MF", "Flexi Cap MF"}},
			{Asset: "Hybrid Funds", Percentage: 15, Instruments: []string{"Balanced Advantage Fund", "Equity Savings Fund"}},
			{Asset: "Debt Funds", Percentage: 25, Instruments: []string{"Corporate Bond Fund", "Short Duration Fund"}},
			{Asset: "Fixed Deposits", Percentage: 10, Instruments: []string{"Bank FD", "Corporate FD"}},
			{Asset: "Gold", Percentage: 5, Instruments: []string{"Gold ETF", "Sovereign Gold Bond"}},
		},
		Rebalancing:   "Semi-annually",
		MinInvestment: 5000,
	},
	model.PortfolioConservativeStable: {
		ID:          model.PortfolioConservativeStable,
		Name:        "Conservative Stability Portfolio",
		Description: "Capital preservation with steady returns. Perfect for short-term goals or low risk tolerance.",
		RiskLevel:   model.RiskConservative,
		ExpectedReturns: model.ReturnRange{Min: 7, Max: 9},
		Allocation: []model.Allocation{
			{Asset: "Large Cap Equity", Percentage: 15, Instruments: []string{"Large Cap Index Fund"}},
			{Asset: "Debt Funds", Percentage: 35, Instruments: []string{"Corporate Bond Fund", "Banking & PSU Fund"}},
			{Asset: "Fixed Deposits", Percentage: 25, Instruments: []string{"Bank FD", "Post Office TD"}},
			{Asset: "Government Bonds", Percentage: 15, Instruments: []string{"Gilt Fund", "RBI Bonds"}},
			{Asset: "Liquid Funds", Percentage: 5, Instruments: []string{"Liquid Fund", "Money Market Fund"}},
			{Asset: "Gold", Percentage: 5, Instruments: []string{"Sovereign Gold Bond"}},
		},
		Rebalancing:   "Annually",
		MinInvestment: 5000,
	},
	model.PortfolioRetirementFocused: {
		ID:          model.PortfolioRetirementFocused,
		Name:        "Retirement Builder Portfolio",
		Description: "Long-term wealth accumulation with NPS integration. Tax-efficient retirement planning.",
		RiskLevel:   model.RiskModerate,
		ExpectedReturns: model.ReturnRange{Min: 10, Max: 13},
		Allocation: []model.Allocation{
			{Asset: "NPS - Equity", Percentage: 25, Instruments: []string{"NPS Tier 1 - Equity"}},
			{Asset: "NPS - Corporate Bonds", Percentage: 15, Instruments: []string{"NPS Tier 1 - Corporate Bonds"}},
			{Asset: "ELSS Funds", Percentage: 20, Instruments: []string{"Tax Saving ELSS MF"}},
			{Asset: "PPF", Percentage: 10, Instruments: []string{"Public Provident Fund"}},
			{Asset: "Large Cap Equity", Percentage: 15, Instruments: []string{"Large Cap MF", "Index Fund"}},
			{Asset: "Debt Funds", Percentage: 10, Instruments: []string{"Corporate Bond Fund"}},
			{Asset: "Gold", Percentage: 5, Instruments: []string{"Sovereign Gold Bond"}},
		},
		Rebalancing:   "Annually",
		MinInvestment: 10000,
	},
	model.PortfolioChildFuture: {
		ID:          model.PortfolioChildFuture,
		Name:        "Child's Future Portfolio",
		Description: "Systematic wealth building for your child's education and life milestones.",
		RiskLevel:   model.RiskModerate,
		ExpectedReturns: model.ReturnRange{Min: 11, Max: 14},
		Allocation: []model.Allocation{
			{Asset: "Large Cap Equity", Percentage: 30, Instruments: []string{"Large Cap MF", "Index Fund"}},
			{Asset: "Mid Cap Equity", Percentage: 20, Instruments: []string{"Mid Cap MF"}},
			{Asset: "International Equity", Percentage: 10, Instruments: []string{"US Equity Fund"}},
			{Asset: "Debt Funds", Percentage: 20, Instruments: []string{"Corporate Bond Fund", "Gilt Fund"}},
			{Asset: "Sukanya/PPF", Percentage: 10, Instruments: []string{"Sukanya Samriddhi", "PPF"}},
			{Asset: "Gold", Percentage: 10, Instruments: []string{"Sovereign Gold Bond", "Gold ETF"}},
		},
		Rebalancing:   "Semi-annually",
		MinInvestment: 5000,
	},
	model.PortfolioShortTermGoal: {
		ID:          model.PortfolioShortTermGoal,
		Name:        "Short-Term Goal Portfolio",
		Description: "Capital protection with liquidity for goals within 1-3 years.",
		RiskLevel:   model.RiskConservative,
		ExpectedReturns: model.ReturnRange{Min: 6, Max: 8},
		Allocation: []model.Allocation{
			{Asset: "Liquid Funds", Percentage: 25, Instruments: []string{"Liquid Fund", "Overnight Fund"}},
			{Asset: "Ultra Short Duration", Percentage: 25, Instruments: []string{"Ultra Short Duration Fund"}},
			{Asset: "Short Duration Debt", Percentage: 20, Instruments: []string{"Short Duration Fund"}},
			{Asset: "Fixed Deposits", Percentage: 20, Instruments: []string{"Bank FD", "Corporate FD"}},
			{Asset: "Arbitrage Funds", Percentage: 10, Instruments: []string{"Arbitrage Fund"}},
		},
		Rebalancing:   "Quarterly",
		MinInvestment: 5000,
	},
}
