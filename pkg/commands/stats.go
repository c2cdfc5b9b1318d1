package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard numbers.",
		Example: `
okr stats
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := stats.Stats{Service: svc}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
