package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/commands/options"
	"tableflip.dev/okr/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	obo := &options.ObjectiveOptions{}
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an objective with its key results.",
		Example: `
okr add "Ship the beta" --kr "close launch blockers=12" --kr "beta signups=500:users"
okr add "Get faster" -d "quarterly fitness push" --kr "run a 5k=5:km" --end 2026-12-31
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			krs, err := options.ParseKeyResults(obo.KeyResults)
			if err != nil {
				return err
			}

			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := add.Add{
				Title:       strings.Join(args, " "),
				Description: obo.Description,
				StartDate:   obo.StartDate,
				EndDate:     obo.EndDate,
				KeyResults:  krs,
				Service:     svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddObjectiveArgs(cmd, obo)

	topLevel.AddCommand(cmd)
}
