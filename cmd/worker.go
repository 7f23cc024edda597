package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/kyc"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the Temporal worker for KYC verification workflows",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("worker"); err != nil {
			return err
		}

		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		temporal, err := initTemporal()
		if err != nil {
			return err
		}
		if temporal == nil {
			return eris.New("temporal.host_port is required for the worker")
		}
		defer temporal.Close()

		ckyc, kra := initRegistries()
		orch := kyc.NewOrchestrator(st, ckyc, kra)

		w := worker.New(temporal, kyc.TaskQueue, worker.Options{})
		w.RegisterWorkflow(kyc.VerificationWorkflow)
		w.RegisterActivity(kyc.NewActivities(orch))

		zap.L().Info("starting kyc worker",
			zap.String("task_queue", kyc.TaskQueue),
			zap.String("temporal", cfg.Temporal.HostPort),
		)
		if err := w.Run(worker.InterruptCh()); err != nil {
			return eris.Wrap(err, "run worker")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
