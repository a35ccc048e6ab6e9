package main

import (
	"github.com/iwvelando/homeowner-forecast/pkg/loans"
	"github.com/iwvelando/homeowner-forecast/pkg/output"
	"github.com/spf13/cobra"
)

func newScheduleCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of the configured mortgage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSession(cmd, root)
			if err != nil {
				return err
			}
			defer s.close()

			schedule, err := loans.NewScheduleGenerator(s.logger).Generate(s.conf.Parameters.Mortgage())
			if err != nil {
				return err
			}
			return output.RenderSchedule(cmd.OutOrStdout(), s.outputFormat, schedule)
		},
	}
}
