package model

// ProjectionPoint is one year of a compounding projection. Invested and
// corpus are whole rupees; Returns is corpus minus invested.
type ProjectionPoint struct {
	Year     int   `json:"year"`
	Invested int64 `json:"invested"`
	Corpus   int64 `json:"corpus"`
	Returns  int64 `json:"returns"`
}

// Recommendation is the full plan produced when a questionnaire completes:
// the selected goal, the matched model portfolio, the required monthly SIP
// and the year-by-year projection toward the target.
type Recommendation struct {
	GoalType        GoalType          `json:"goal_type"`
	GoalName        string            `json:"goal_name"`
	TargetAmount    int64             `json:"target_amount"`
	TimelineYears   int               `json:"timeline_years"`
	ExpectedReturn  float64           `json:"expected_return_pct"`
	MonthlySIP      int64             `json:"monthly_sip"`
	Portfolio       ModelPortfolio    `json:"portfolio"`
	Projection      []ProjectionPoint `json:"projection"`
	TotalInvested   int64             `json:"total_invested"`
	ProjectedCorpus int64             `json:"projected_corpus"`
}
