package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	days := 30
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the progress trend and achievement distribution.",
		Example: `
okr report
okr report --days 7
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := report.Report{
				Days:    days,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "How many days of history to chart.")

	topLevel.AddCommand(cmd)
}
