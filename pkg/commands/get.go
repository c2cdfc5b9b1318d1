package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/okr"
	"tableflip.dev/okr/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	showID := false
	statusFilter := ""

	cmd := &cobra.Command{
		Use:     "get",
		Short:   "List objectives and their key results.",
		Aliases: []string{"list", "ls"},
		Example: `
okr get
okr get --status active
okr get --id
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if statusFilter != "" && !okr.Status(statusFilter).Valid() {
				return fmt.Errorf("unknown status %q", statusFilter)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := get.Get{
				ShowID:  showID,
				Status:  okr.Status(statusFilter),
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&showID, "id", false, "Show objective ids.")
	cmd.Flags().StringVar(&statusFilter, "status", "",
		"Only show objectives with this status. One of 'active', 'completed', 'paused', or 'cancelled'.")

	topLevel.AddCommand(cmd)
}
