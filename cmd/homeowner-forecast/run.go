package main

import (
	"errors"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/iwvelando/homeowner-forecast/internal/prompt"
	"github.com/iwvelando/homeowner-forecast/internal/report"
	"github.com/iwvelando/homeowner-forecast/pkg/events"
	"github.com/iwvelando/homeowner-forecast/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	interactive bool
	monthly     bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd, root, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for parameters and investment decisions")
	cmd.Flags().BoolVarP(&flags.monthly, "monthly", "m", false, "Include the month-by-month ledger")

	return cmd
}

func runForecast(cmd *cobra.Command, root *rootFlags, flags *runFlags) error {
	s, err := loadSession(cmd, root)
	if err != nil {
		return err
	}
	defer s.close()

	params := s.conf.Parameters
	var decisions forecast.DecisionProvider = forecast.PolicyFromConfig(s.conf.Simulation.Decisions)

	if flags.interactive {
		decisions = prompt.NewDecisions(s.logger)
		params, err = askParameters(s, params)
		if err != nil {
			return ignoreAbort(err)
		}
	}

	for {
		seed := s.conf.Simulation.Seed
		if seed == 0 {
			seed = events.NewSeed()
		}
		s.logger.Info("starting forecast",
			zap.String("op", "main.runForecast"),
			zap.Int64("seed", seed),
			zap.Bool("homeowner", params.Homeowner),
		)

		engine := forecast.NewEngine(s.logger, events.NewSeededSource(seed), decisions, s.conf.Simulation.Options)
		result := engine.Run(params)

		if err := output.Render(cmd.OutOrStdout(), s.outputFormat, report.Generate(result), flags.monthly); err != nil {
			return err
		}

		if !flags.interactive {
			return nil
		}
		again, err := prompt.Confirm("Run another forecast?")
		if err != nil || !again {
			return ignoreAbort(err)
		}
		params, err = askParameters(s, params)
		if err != nil {
			return ignoreAbort(err)
		}
	}
}

// askParameters prompts for parameters and logs any warnings they raise.
func askParameters(s *session, defaults config.Parameters) (config.Parameters, error) {
	params, err := prompt.Parameters(defaults)
	if err != nil {
		return defaults, err
	}
	checked := *s.conf
	checked.Parameters = params
	logWarnings(s.logger, &checked)
	return params, nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}
