package main

import (
	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/iwvelando/homeowner-forecast/internal/report"
	"github.com/iwvelando/homeowner-forecast/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type batchFlags struct {
	runs        int
	concurrency int
	includeRuns bool
}

func newBatchCmd(root *rootFlags) *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many seeded forecasts and summarise the outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, root, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.runs, "runs", "n", 0, "Number of runs; 0 uses simulation.runs")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Concurrent runs; 0 uses simulation.concurrency")
	cmd.Flags().BoolVar(&flags.includeRuns, "include-runs", false, "List every run's outcome")

	return cmd
}

func runBatch(cmd *cobra.Command, root *rootFlags, flags *batchFlags) error {
	s, err := loadSession(cmd, root)
	if err != nil {
		return err
	}
	defer s.close()

	sim := s.conf.Simulation
	if flags.runs > 0 {
		sim.Runs = flags.runs
	}
	if flags.concurrency > 0 {
		sim.Concurrency = flags.concurrency
	}

	batch, err := forecast.RunBatch(s.logger, s.conf.Parameters, sim.Options, forecast.BatchConfig{
		Runs:        sim.Runs,
		Seed:        sim.Seed,
		Concurrency: sim.Concurrency,
		Policy:      forecast.PolicyFromConfig(sim.Decisions),
	})
	if err != nil {
		return err
	}

	s.logger.Info("batch complete",
		zap.String("op", "main.runBatch"),
		zap.Int("runs", batch.Runs),
		zap.Int("bankruptcies", batch.Bankruptcies),
	)

	return output.RenderBatch(cmd.OutOrStdout(), s.outputFormat, report.GenerateBatch(batch, flags.includeRuns))
}
