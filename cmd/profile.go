package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/internal/money"
	"github.com/ameya-wealth/wealth-api/internal/profile"
	"github.com/ameya-wealth/wealth-api/internal/recommend"
)

var profileAsJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile <answers.json>",
	Short: "Score an answers file and print the recommended plan",
	Long: `Scores a JSON array of questionnaire answers into an investor archetype
and prints the recommended portfolio and SIP plan. Support/ops tool; the API
computes the same result at /v1/onboarding/sessions/{id}/result.

The file holds the wire shape the web client sends:
  [{"question_id": "age", "value": "26-35"}, ...]

Examples:
  profile answers.json
  profile --json answers.json | jq .recommendation.monthly_sip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProfile(args[0], profileAsJSON, os.Stdout)
	},
}

type scoredPlan struct {
	Profile        model.ProfileResult  `json:"profile"`
	Recommendation model.Recommendation `json:"recommendation"`
}

func runProfile(path string, asJSON bool, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "profile: read answers file")
	}

	var answers []model.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return eris.Wrap(err, "profile: parse answers file")
	}
	if len(answers) == 0 {
		return eris.New("profile: answers file is empty")
	}

	result := profile.Score(answers)
	rec, err := recommend.Recommend(answers, result.Archetype)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(scoredPlan{Profile: result, Recommendation: rec})
	}

	printPlan(out, result, rec)
	return nil
}

func printPlan(out io.Writer, result model.ProfileResult, rec model.Recommendation) {
	fmt.Fprintf(out, "Archetype:  %s (%.0f%% confidence)\n\n", result.Archetype, result.Confidence)

	fmt.Fprintln(out, "Scores:")
	for _, a := range model.Archetypes {
		fmt.Fprintf(out, "  %-22s %5.1f\n", a, result.Scores[a])
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Goal:       %s (%s over %d years)\n",
		rec.GoalName, money.FormatCompact(decimal.NewFromInt(rec.TargetAmount)), rec.TimelineYears)
	fmt.Fprintf(out, "Monthly SIP: %s at %.1f%% expected return\n",
		money.FormatINR(decimal.NewFromInt(rec.MonthlySIP)), rec.ExpectedReturn)
	fmt.Fprintf(out, "Projected:  %s invested, %s corpus\n\n",
		money.FormatCompact(decimal.NewFromInt(rec.TotalInvested)),
		money.FormatCompact(decimal.NewFromInt(rec.ProjectedCorpus)))

	fmt.Fprintf(out, "Portfolio:  %s (%s risk)\n", rec.Portfolio.Name, rec.Portfolio.RiskLevel)
	for _, alloc := range rec.Portfolio.Allocation {
		fmt.Fprintf(out, "  %-22s %5.1f%%\n", alloc.Asset, alloc.Percentage)
	}
}

func init() {
	profileCmd.Flags().BoolVar(&profileAsJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(profileCmd)
}
