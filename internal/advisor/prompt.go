package advisor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/money"
)

// basePrompt sets tone and the compliance boundaries. SEBI rules bar
// guaranteed-return language and specific buy/sell calls outside a
// registered advisory engagement.
const basePrompt = `You are a financial guidance assistant for an Indian wealth management platform.

Rules you must always follow:
- Never promise or guarantee returns. Frame projections as estimates based on assumed growth rates.
- Never recommend specific stocks or time the market. Stay at the level of asset classes and fund categories.
- Mutual fund investments are subject to market risks; remind the user of this when discussing products.
- Amounts are in Indian rupees. Use lakh and crore notation the way Indian investors do.
- If asked about tax, describe the general rules and suggest the user confirm with a tax professional.
- Keep answers short and conversational. Ask a clarifying question when the user's situation is unclear.`

// buildSystemPrompt appends the user's stored context to the base prompt.
// A nil dashboard produces the base prompt alone.
func buildSystemPrompt(dash *model.Dashboard) string {
	if dash == nil || (dash.Profile == nil && dash.InvestorProfile == nil && len(dash.Goals) == 0 && len(dash.Holdings) == 0) {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nWhat you know about this user:\n")

	if dash.Profile != nil && dash.Profile.FullName != "" {
		fmt.Fprintf(&b, "- Name: %s\n", dash.Profile.FullName)
	}
	if dash.InvestorProfile != nil {
		fmt.Fprintf(&b, "- Investor profile: %s (confidence %.0f%%)\n",
			dash.InvestorProfile.ProfileType, dash.InvestorProfile.Confidence*100)
	}

	for _, g := range dash.Goals {
		fmt.Fprintf(&b, "- Goal: %s, target %s in %d years, monthly SIP %s",
			g.GoalName,
			money.FormatCompact(decimal.NewFromInt(g.TargetAmount)),
			g.TimelineYears,
			money.FormatCompact(decimal.NewFromInt(g.MonthlySIP)))
		if g.IsPrimary {
			b.WriteString(" (primary)")
		}
		b.WriteString("\n")
	}

	if len(dash.Holdings) > 0 {
		var invested, current int64
		for _, h := range dash.Holdings {
			invested += h.InvestedAmount
			current += h.CurrentValue
		}
		fmt.Fprintf(&b, "- Portfolio: %d holdings, invested %s, current value %s\n",
			len(dash.Holdings),
			money.FormatCompact(decimal.NewFromInt(invested)),
			money.FormatCompact(decimal.NewFromInt(current)))
	}

	b.WriteString("\nUse this context when it is relevant; do not recite it back unprompted.")
	return b.String()
}
