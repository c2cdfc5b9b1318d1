package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/share"
)

func addShare(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a code that lets a friend compare progress with you.",
		Example: `
okr share
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := share.Share{Service: svc}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	addCompare(cmd)

	topLevel.AddCommand(cmd)
}

func addCompare(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "compare <code>",
		Short: "Compare your progress against a friend's share code.",
		Example: `
okr share compare eyJ0b3RhbE9LUnMiOjMsIi4uLiI6In0=
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := share.Compare{
				Code:    args[0],
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
