package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredMonthlySIPZeroRate(t *testing.T) {
	sip, err := RequiredMonthlySIP(1_200_000, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000), sip)
}

func TestRequiredMonthlySIPKnownValue(t *testing.T) {
	// 50L over 10 years at 12% p.a.: the standard annuity formula gives
	// roughly 21.7k per month.
	sip, err := RequiredMonthlySIP(5_000_000, 10, 12)
	require.NoError(t, err)

	r := 0.12 / 12
	n := 120.0
	want := 5_000_000 * r / (math.Pow(1+r, n) - 1)
	assert.InDelta(t, want, float64(sip), 1)
}

func TestRequiredMonthlySIPValidation(t *testing.T) {
	_, err := RequiredMonthlySIP(0, 10, 12)
	assert.Error(t, err)
	_, err = RequiredMonthlySIP(1_000_000, 0, 12)
	assert.Error(t, err)
	_, err = RequiredMonthlySIP(1_000_000, 10, -1)
	assert.Error(t, err)
}

func TestProjectShape(t *testing.T) {
	points, err := Project(10_000, 0, 5, 10)
	require.NoError(t, err)
	require.Len(t, points, 6)

	assert.Equal(t, 0, points[0].Year)
	assert.Zero(t, points[0].Invested)
	assert.Zero(t, points[0].Corpus)

	for i := 1; i < len(points); i++ {
		p := points[i]
		assert.Equal(t, i, p.Year)
		assert.Equal(t, int64(10_000*12*i), p.Invested)
		assert.Greater(t, p.Corpus, p.Invested, "year %d corpus should beat invested at positive rate", i)
		assert.Equal(t, p.Corpus-p.Invested, p.Returns)
	}
}

func TestProjectZeroRateEqualsDeposits(t *testing.T) {
	points, err := Project(5_000, 0, 3, 0)
	require.NoError(t, err)

	final := points[len(points)-1]
	assert.Equal(t, int64(5_000*36), final.Invested)
	assert.Equal(t, final.Invested, final.Corpus)
	assert.Zero(t, final.Returns)
}

func TestProjectInitialInvestmentCompounds(t *testing.T) {
	points, err := Project(0, 100_000, 1, 12)
	require.NoError(t, err)

	final := points[len(points)-1]
	assert.Equal(t, int64(100_000), final.Invested)
	// 100k at 1% monthly for 12 months.
	want := 100_000 * math.Pow(1.01, 12)
	assert.InDelta(t, want, float64(final.Corpus), 1)
}

// Planning with RequiredMonthlySIP and then projecting that SIP should land
// within rounding distance of the target. Deposit-first compounding grows
// slightly faster than the end-of-month annuity assumption, so the corpus
// may only overshoot, and only by about one month of growth.
func TestSIPProjectionRoundTrip(t *testing.T) {
	cases := []struct {
		target int64
		years  int
		retPct float64
	}{
		{1_000_000, 5, 8},
		{5_000_000, 7, 11},
		{20_000_000, 15, 12.5},
		{50_000_000, 15, 13.5},
		{2_500_000, 2, 7},
	}
	for _, tc := range cases {
		sip, err := RequiredMonthlySIP(tc.target, tc.years, tc.retPct)
		require.NoError(t, err)

		points, err := Project(sip, 0, tc.years, tc.retPct)
		require.NoError(t, err)
		final := points[len(points)-1]

		// Allow rounding of the SIP itself (up to 12*years rupees) plus
		// the deposit-first growth edge.
		slack := float64(tc.target) * 0.02
		assert.GreaterOrEqual(t, float64(final.Corpus), float64(tc.target)-slack,
			"target %d over %d years at %.1f%%", tc.target, tc.years, tc.retPct)
		assert.LessOrEqual(t, float64(final.Corpus), float64(tc.target)+slack,
			"target %d over %d years at %.1f%%", tc.target, tc.years, tc.retPct)
	}
}
