package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/commands/options"
	"tableflip.dev/okr/pkg/store"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "okr",
		Short: base.Wrap80("Objectives and key results on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addUpdate(topLevel)
	addRemove(topLevel)
	addStatus(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addHistory(topLevel)
	addBackup(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addShare(topLevel)
	addSync(topLevel)
	addVersion(topLevel)
}

// newService opens persistence and initializes the state controller.
// Every command goes through here; a failed structured-store open has
// already degraded to fallback-only mode by the time this returns.
func newService(ctx context.Context) (*app.Service, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	svc := app.New(p)
	if err := svc.Initialize(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
