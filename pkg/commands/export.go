package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/commands/options"
	"tableflip.dev/okr/pkg/export"
	"tableflip.dev/okr/pkg/runner/exporter"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExchangeOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all objectives, history, and settings to a file.",
		Example: `
okr export
okr export --format tabular -o progress.csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(eo.Format)
			if err != nil {
				return err
			}

			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := exporter.Export{
				Format:  format,
				Out:     eo.Out,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFormatArg(cmd, eo)
	options.AddOutArg(cmd, eo)

	topLevel.AddCommand(cmd)
}
