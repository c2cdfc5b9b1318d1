package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	limit := 0
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity log.",
		Example: `
okr history
okr history --limit 20
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := history.History{
				Limit:   limit,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Only show the most recent n entries. 0 shows all.")

	topLevel.AddCommand(cmd)
}
