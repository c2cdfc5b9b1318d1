package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <objective-id>",
		Short:   "Delete an objective.",
		Aliases: []string{"rm", "delete"},
		Example: `
okr remove okr_1756000000000_a1b2c3d4e
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := remove.Remove{
				ObjectiveID: args[0],
				Service:     svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
