package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/commands/options"
	"tableflip.dev/okr/pkg/export"
	"tableflip.dev/okr/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	eo := &options.ExchangeOptions{}
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Read an exported file and reconcile it with current state.",
		Example: `
okr import okr-export-2026-09-01.json
okr import progress.csv --strategy replace
okr import other.json --strategy backupAndReplace
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := export.ParseStrategy(eo.Strategy)
			if err != nil {
				return err
			}

			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := importer.Import{
				Path:     args[0],
				Strategy: strategy,
				Service:  svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddStrategyArg(cmd, eo)

	topLevel.AddCommand(cmd)
}
