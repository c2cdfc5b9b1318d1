package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/runner/update"
)

func addUpdate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "update <objective-id> <kr-index> <value>",
		Short: "Record a new current value for a key result.",
		Example: `
okr update okr_1756000000000_a1b2c3d4e 0 7
okr update okr_1756000000000_a1b2c3d4e 1 450
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("requires an objective id, a key result index, and a value")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("key result index %q is not a number", args[1])
			}
			if _, err := strconv.ParseFloat(args[2], 64); err != nil {
				return fmt.Errorf("value %q is not a number", args[2])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _ := strconv.Atoi(args[1])
			value, _ := strconv.ParseFloat(args[2], 64)

			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := update.Update{
				ObjectiveID: args[0],
				Index:       index,
				Value:       value,
				Service:     svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
