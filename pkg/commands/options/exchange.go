package options

import (
	"github.com/spf13/cobra"
)

// ExchangeOptions covers export/import format and strategy flags.
type ExchangeOptions struct {
	Format   string
	Strategy string
	Out      string
}

func AddFormatArg(cmd *cobra.Command, o *ExchangeOptions) {
	cmd.Flags().StringVarP(&o.Format, "format", "f", "structured",
		"Export format. One of 'structured' or 'tabular'.")
}

func AddStrategyArg(cmd *cobra.Command, o *ExchangeOptions) {
	cmd.Flags().StringVarP(&o.Strategy, "strategy", "s", "merge",
		"Reconciliation strategy. One of 'replace', 'merge', or 'backupAndReplace'.")
}

func AddOutArg(cmd *cobra.Command, o *ExchangeOptions) {
	cmd.Flags().StringVarP(&o.Out, "out", "o", "",
		"Output file path. Defaults to a dated name in the current directory.")
}
