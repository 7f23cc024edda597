// Package projection implements the SIP planning math: how much to invest
// each month for a target, and how a monthly contribution grows over time.
//
// All intermediate arithmetic runs on shopspring decimals so repeated
// monthly compounding over long horizons stays exact; results round to
// whole rupees only at the edges.
package projection

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// monthlyRate converts an annual percentage return to a monthly fraction.
func monthlyRate(annualReturnPct float64) decimal.Decimal {
	return decimal.NewFromFloat(annualReturnPct).Div(hundred).Div(twelve)
}

// RequiredMonthlySIP returns the monthly contribution needed to reach
// targetAmount in timelineYears at the given annual return, assuming
// contributions at the end of each month. The zero-rate case degrades to a
// straight division.
func RequiredMonthlySIP(targetAmount int64, timelineYears int, annualReturnPct float64) (int64, error) {
	if targetAmount <= 0 {
		return 0, eris.New("projection: target amount must be positive")
	}
	if timelineYears <= 0 {
		return 0, eris.New("projection: timeline must be positive")
	}
	if annualReturnPct < 0 {
		return 0, eris.New("projection: annual return cannot be negative")
	}

	target := decimal.NewFromInt(targetAmount)
	months := timelineYears * 12
	rate := monthlyRate(annualReturnPct)

	if rate.IsZero() {
		return target.Div(decimal.NewFromInt(int64(months))).Round(0).IntPart(), nil
	}

	// sip = target * r / ((1+r)^n - 1)
	growth := one.Add(rate).Pow(decimal.NewFromInt(int64(months))).Sub(one)
	sip := target.Mul(rate).Div(growth)
	return sip.Round(0).IntPart(), nil
}

// Project simulates monthly deposit-then-compound growth and returns one
// point per year, with year 0 reflecting the initial investment alone.
func Project(monthlySIP, initialInvestment int64, timelineYears int, annualReturnPct float64) ([]model.ProjectionPoint, error) {
	if monthlySIP < 0 {
		return nil, eris.New("projection: monthly sip cannot be negative")
	}
	if initialInvestment < 0 {
		return nil, eris.New("projection: initial investment cannot be negative")
	}
	if timelineYears <= 0 {
		return nil, eris.New("projection: timeline must be positive")
	}
	if annualReturnPct < 0 {
		return nil, eris.New("projection: annual return cannot be negative")
	}

	sip := decimal.NewFromInt(monthlySIP)
	rate := monthlyRate(annualReturnPct)
	growth := one.Add(rate)

	invested := decimal.NewFromInt(initialInvestment)
	corpus := decimal.NewFromInt(initialInvestment)

	points := make([]model.ProjectionPoint, 0, timelineYears+1)
	points = append(points, model.ProjectionPoint{
		Year:     0,
		Invested: initialInvestment,
		Corpus:   initialInvestment,
	})

	for year := 1; year <= timelineYears; year++ {
		for month := 0; month < 12; month++ {
			corpus = corpus.Add(sip).Mul(growth)
			invested = invested.Add(sip)
		}
		points = append(points, model.ProjectionPoint{
			Year:     year,
			Invested: invested.Round(0).IntPart(),
			Corpus:   corpus.Round(0).IntPart(),
			Returns:  corpus.Sub(invested).Round(0).IntPart(),
		})
	}

	return points, nil
}
