package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/sync"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize with a remote server, when one is configured.",
		Example: `
okr sync
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := sync.Sync{Service: svc}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
