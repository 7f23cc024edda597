package catalog

import "github.com/ameya-wealth/wealth-api/internal/model"

// QuestionServiceModel is the id of the branching question that decides
// whether the advisory question block is part of the questionnaire.
const QuestionServiceModel = "serviceModel"

// ServiceModelAdvisory and ServiceModelDistribution are the two engagement
// paths. Advisory appends the extended suitability block.
const (
	ServiceModelAdvisory     = "advisory"
	ServiceModelDistribution = "distribution"
)

// baseQuestions are asked of every user, in order.
var baseQuestions = []model.Question{
	{
		ID:       "age",
		Prompt:   "Which stage of life best describes you?",
		Subtitle: "This helps us understand your investment timeline",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "18-25", Label: "Just Starting Out", Description: "18-25 years"},
			{Value: "26-35", Label: "Building Career", Description: "26-35 years"},
			{Value: "36-45", Label: "Peak Earning", Description: "36-45 years"},
			{Value: "46-55", Label: "Planning Ahead", Description: "46-55 years"},
			{Value: "55+", Label: "Enjoying Rewards", Description: "55+ years"},
		},
	},
	{
		ID:       "income",
		Prompt:   "What is your annual household income?",
		Subtitle: "This helps us suggest appropriate investment amounts",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "below-5l", Label: "Below ₹5 Lakhs"},
			{Value: "5l-10l", Label: "₹5 - 10 Lakhs"},
			{Value: "10l-25l", Label: "₹10 - 25 Lakhs"},
			{Value: "25l-50l", Label: "₹25 - 50 Lakhs"},
			{Value: "above-50l", Label: "Above ₹50 Lakhs"},
		},
	},
	{
		ID:       "primaryGoal",
		Prompt:   "What is your most important financial goal?",
		Subtitle: "This helps us show you relevant investment options",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "retirement", Label: "Retirement Corpus", Description: "Secure your golden years"},
			{Value: "child-education", Label: "Child's Education", Description: "Higher studies fund"},
			{Value: "child-marriage", Label: "Child's Marriage", Description: "Wedding expenses fund"},
			{Value: "home-purchase", Label: "Dream Home", Description: "Down payment or full purchase"},
			{Value: "wealth-creation", Label: "Wealth Creation", Description: "Grow your money"},
			{Value: "sabbatical", Label: "Career Break", Description: "Fund a planned break"},
		},
	},
	{
		ID:       "goalAmount",
		Prompt:   "How much do you need for this goal?",
		Subtitle: "An approximate target helps us plan better",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "below-10l", Label: "Below ₹10 Lakhs"},
			{Value: "10l-25l", Label: "₹10 - 25 Lakhs"},
			{Value: "25l-50l", Label: "₹25 - 50 Lakhs"},
			{Value: "50l-1cr", Label: "₹50 Lakhs - 1 Crore"},
			{Value: "1cr-3cr", Label: "₹1 - 3 Crores"},
			{Value: "above-3cr", Label: "Above ₹3 Crores"},
		},
	},
	{
		ID:       "riskTolerance",
		Prompt:   "How would you react if your investments dropped 20% in a month?",
		Subtitle: "Your honest answer helps us protect your peace of mind",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "very-low", Label: "Sell Everything", Description: "I can't handle losses"},
			{Value: "low", Label: "Quite Worried", Description: "Would lose sleep over it"},
			{Value: "moderate", Label: "Stay Calm", Description: "Ups and downs happen"},
			{Value: "high", Label: "Buy More", Description: "Great opportunity!"},
			{Value: "very-high", Label: "Double Down", Description: "I'd invest heavily"},
		},
	},
	{
		ID:       "experience",
		Prompt:   "How familiar are you with investing?",
		Subtitle: "No judgment - everyone starts somewhere",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "beginner", Label: "Complete Beginner", Description: "Never invested before"},
			{Value: "some-knowledge", Label: "Basic Knowledge", Description: "Know about FDs, MFs"},
			{Value: "intermediate", Label: "Comfortable", Description: "Have some investments"},
			{Value: "experienced", Label: "Experienced", Description: "Regular investor"},
			{Value: "expert", Label: "Expert", Description: "Deep market knowledge"},
		},
	},
	{
		ID:       "timeHorizon",
		Prompt:   "When will you need this money?",
		Subtitle: "Your timeline helps us show suitable investment options",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "less-1-year", Label: "Within a Year", Description: "Short-term needs"},
			{Value: "1-3-years", Label: "1-3 Years", Description: "Near-term goals"},
			{Value: "3-5-years", Label: "3-5 Years", Description: "Medium-term plans"},
			{Value: "5-10-years", Label: "5-10 Years", Description: "Long-term vision"},
			{Value: "more-10-years", Label: "10+ Years", Description: "Building legacy"},
		},
	},
	{
		ID:       "monthlyInvestment",
		Prompt:   "How much can you invest monthly?",
		Subtitle: "A realistic number helps us plan better",
		Mode:     model.SingleSelect,
		Options: []model.Option{
			{Value: "below-5k", Label: "Below ₹5,000"},
			{Value: "5k-15k", Label: "₹5,000 - 15,000"},
			{Value: "15k-50k", Label: "₹15,000 - 50,000"},
			{Value: "50k-1l", Label: "₹50,000 - 1 Lakh"},
			{Value: "above-1l", Label: "Above ₹1 Lakh"},
		},
	},
	{
		ID:       "existingInvestments",
		Prompt:   "Where do you currently have investments?",
		Subtitle: "Select all that apply",
		Mode:     model.MultiSelect,
		Options: []model.Option{
			{Value: "none", Label: "No Investments Yet", Description: "Starting fresh"},
			{Value: "fd-only", Label: "FDs/Savings", Description: "Bank deposits"},
			{Value: "mutual-funds", Label: "Mutual Funds", Description: "MF investments"},
			{Value: "stocks", Label: "Stocks", Description: "Direct equity"},
			{Value: "gold", Label: "Gold/SGBs", Description: "Precious metals"},
			{Value: "real-estate", Label: "Real Estate", Description: "Property investments"},
		},
	},
}

// serviceModelQuestion selects the engagement path and controls the
// questionnaire branch.
var serviceModelQuestion = model.Question{
	ID:       QuestionServiceModel,
	Prompt:   "How would you like to engage with us?",
	Subtitle: "Both are SEBI-regulated models with different fee structures",
	Mode:     model.SingleSelect,
	Options: []model.Option{
		{Value: ServiceModelAdvisory, Label: "Investment Advisory", Description: "Fee-based engagement under SEBI IA Regulations. Advisory fee applies; no product commissions."},
		{Value: ServiceModelDistribution, Label: "Mutual Fund Distribution", Description: "No separate fee. Distributor receives commission from product manufacturers as per AMFI norms."},
	},
}

// advisoryQuestions are the extended suitability block asked only on the
// advisory path.
var advisoryQuestions = []model.Question{
	{
		ID:           "netWorth",
		Prompt:       "What is your approximate net worth?",
		Subtitle:     "Assets minus liabilities — helps assess your financial capacity",
		Mode:         model.SingleSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "below-25l", Label: "Below ₹25 Lakhs"},
			{Value: "25l-50l", Label: "₹25 - 50 Lakhs"},
			{Value: "50l-1cr", Label: "₹50 Lakhs - 1 Crore"},
			{Value: "1cr-5cr", Label: "₹1 - 5 Crores"},
			{Value: "5cr-10cr", Label: "₹5 - 10 Crores"},
			{Value: "above-10cr", Label: "Above ₹10 Crores"},
		},
	},
	{
		ID:           "liquidAssets",
		Prompt:       "What portion of your wealth is in liquid assets?",
		Subtitle:     "Cash, FDs, liquid mutual funds — available within 7 days",
		Mode:         model.SingleSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "below-10", Label: "Less than 10%", Description: "Most assets are locked"},
			{Value: "10-25", Label: "10-25%", Description: "Limited liquidity"},
			{Value: "25-50", Label: "25-50%", Description: "Moderate liquidity"},
			{Value: "above-50", Label: "More than 50%", Description: "Highly liquid"},
		},
	},
	{
		ID:           "emergencyFund",
		Prompt:       "Do you have an emergency fund?",
		Subtitle:     "Savings to cover 6+ months of expenses",
		Mode:         model.SingleSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "none", Label: "No Emergency Fund", Description: "Need to build one"},
			{Value: "partial", Label: "1-3 Months", Description: "Partially covered"},
			{Value: "adequate", Label: "3-6 Months", Description: "Reasonably secure"},
			{Value: "strong", Label: "6+ Months", Description: "Well protected"},
		},
	},
	{
		ID:           "liabilities",
		Prompt:       "What are your current liabilities?",
		Subtitle:     "Select all that apply",
		Mode:         model.MultiSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "none", Label: "No Major Liabilities", Description: "Debt-free"},
			{Value: "home-loan", Label: "Home Loan", Description: "Property EMI"},
			{Value: "car-loan", Label: "Car/Vehicle Loan", Description: "Auto EMI"},
			{Value: "personal-loan", Label: "Personal Loan", Description: "Unsecured debt"},
			{Value: "education-loan", Label: "Education Loan", Description: "Student debt"},
			{Value: "credit-card", Label: "Credit Card Dues", Description: "Revolving credit"},
		},
	},
	{
		ID:           "dependents",
		Prompt:       "How many financial dependents do you have?",
		Subtitle:     "Family members who rely on your income",
		Mode:         model.SingleSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "none", Label: "None", Description: "No dependents"},
			{Value: "1-2", Label: "1-2 Dependents", Description: "Small family"},
			{Value: "3-4", Label: "3-4 Dependents", Description: "Growing family"},
			{Value: "5-plus", Label: "5 or More", Description: "Large family"},
		},
	},
	{
		ID:           "insuranceCoverage",
		Prompt:       "What insurance coverage do you have?",
		Subtitle:     "Select all that apply",
		Mode:         model.MultiSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "term-life", Label: "Term Life Insurance", Description: "Income protection"},
			{Value: "health", Label: "Health Insurance", Description: "Medical cover"},
			{Value: "critical-illness", Label: "Critical Illness", Description: "Serious disease cover"},
			{Value: "accident", Label: "Accident Cover", Description: "Personal accident"},
			{Value: "none", Label: "No Insurance", Description: "Not covered"},
		},
	},
	{
		ID:           "incomeStability",
		Prompt:       "How stable is your income?",
		Subtitle:     "This affects how much risk you can realistically take",
		Mode:         model.SingleSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "very-stable", Label: "Very Stable", Description: "Government/PSU job, pension"},
			{Value: "stable", Label: "Stable", Description: "Salaried with established company"},
			{Value: "moderate", Label: "Moderate", Description: "Private sector/startup"},
			{Value: "variable", Label: "Variable", Description: "Business/freelance income"},
			{Value: "irregular", Label: "Irregular", Description: "Seasonal/project-based"},
		},
	},
	{
		ID:           "taxBracket",
		Prompt:       "What is your current income tax bracket?",
		Subtitle:     "Helps optimize tax-efficient investment strategies",
		Mode:         model.SingleSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "nil", Label: "No Tax", Description: "Below taxable limit"},
			{Value: "5-percent", Label: "5% Bracket", Description: "₹3-7 Lakhs"},
			{Value: "20-percent", Label: "20% Bracket", Description: "₹7-10 Lakhs"},
			{Value: "30-percent", Label: "30% Bracket", Description: "Above ₹10 Lakhs"},
			{Value: "surcharge", Label: "30% + Surcharge", Description: "Above ₹50 Lakhs"},
		},
	},
	{
		ID:           "advisoryScope",
		Prompt:       "What areas do you need advisory support for?",
		Subtitle:     "Select all that apply — helps us customize your plan",
		Mode:         model.MultiSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "investment", Label: "Investment Planning", Description: "Portfolio management"},
			{Value: "retirement", Label: "Retirement Planning", Description: "Post-work security"},
			{Value: "tax", Label: "Tax Planning", Description: "Optimize tax outgo"},
			{Value: "insurance", Label: "Insurance Review", Description: "Risk coverage"},
			{Value: "estate", Label: "Estate Planning", Description: "Wealth transfer"},
			{Value: "debt", Label: "Debt Management", Description: "Loan optimization"},
		},
	},
	{
		ID:           "investmentConstraints",
		Prompt:       "Do you have any investment preferences or constraints?",
		Subtitle:     "Select all that apply",
		Mode:         model.MultiSelect,
		AdvisoryOnly: true,
		Options: []model.Option{
			{Value: "no-constraints", Label: "No Specific Preferences", Description: "Open to all options"},
			{Value: "esg", Label: "ESG/Ethical Investing", Description: "Socially responsible"},
			{Value: "no-tobacco-alcohol", Label: "No Tobacco/Alcohol", Description: "Avoid sin stocks"},
			{Value: "shariah", Label: "Shariah Compliant", Description: "Islamic finance"},
			{Value: "domestic-only", Label: "Domestic Only", Description: "No international"},
			{Value: "no-direct-equity", Label: "No Direct Stocks", Description: "MFs/ETFs only"},
		},
	},
}
