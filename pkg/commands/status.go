package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/okr"
	"tableflip.dev/okr/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status <objective-id> <status>",
		Short: "Change an objective's lifecycle status.",
		Example: `
okr status okr_1756000000000_a1b2c3d4e completed
okr status okr_1756000000000_a1b2c3d4e paused
`,
		ValidArgs: []string{"active", "completed", "paused", "cancelled"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an objective id and a status")
			}
			if !okr.Status(args[1]).Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := status.Status{
				ObjectiveID: args[0],
				To:          okr.Status(args[1]),
				Service:     svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
