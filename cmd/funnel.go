package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/analytics"
)

var (
	funnelDays int
	funnelOut  string
	funnelJSON bool
)

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Generate the onboarding funnel report",
	Long: `Aggregates funnel events into a conversion report: sessions started vs
completed, per-step completion rates, device breakdown and drop-off points.

Examples:
  # Print the last 30 days
  funnel

  # Last quarter, exported for the growth team
  funnel --days 90 --out funnel-q2.xlsx

  # Raw JSON for scripting
  funnel --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("funnel"); err != nil {
			return err
		}

		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		since := time.Now().UTC().AddDate(0, 0, -funnelDays)
		report, err := analytics.BuildReport(ctx, st, since)
		if err != nil {
			return err
		}

		if funnelJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(report)

		if funnelOut != "" {
			if err := analytics.WriteXLSX(report, funnelOut); err != nil {
				return err
			}
			zap.L().Info("report exported", zap.String("path", funnelOut))
		}
		return nil
	},
}

func printReport(r *analytics.Report) {
	fmt.Printf("Funnel report since %s\n\n", r.Since.Format("2006-01-02"))
	fmt.Printf("Sessions:   %d started, %d completed (%.1f%%)\n\n",
		r.TotalSessions, r.CompletedSessions, r.ConversionPct)

	if len(r.Steps) > 0 {
		fmt.Println("Step completion:")
		for _, s := range r.Steps {
			fmt.Printf("  %2d. %-22s %6d views  %6d done  %5.1f%%\n",
				s.StepNumber, s.StepName, s.Views, s.Completions, s.CompletionPct)
		}
		fmt.Println()
	}

	if len(r.DropOffByLastStep) > 0 {
		fmt.Println("Drop-off by last step:")
		for step, n := range r.DropOffByLastStep {
			fmt.Printf("  %-26s %d\n", step, n)
		}
		fmt.Println()
	}

	if len(r.DeviceBreakdown) > 0 {
		fmt.Println("Devices:")
		for device, n := range r.DeviceBreakdown {
			fmt.Printf("  %-26s %d\n", device, n)
		}
	}
}

func init() {
	funnelCmd.Flags().IntVar(&funnelDays, "days", 30, "report window in days")
	funnelCmd.Flags().StringVar(&funnelOut, "out", "", "export the report to an xlsx file")
	funnelCmd.Flags().BoolVar(&funnelJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(funnelCmd)
}
