package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/commands/options"
	"tableflip.dev/okr/pkg/runner/backup"
)

func addBackup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage state snapshots.",
		Example: `
okr backup create "before reorg"
okr backup list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addBackupCreate(cmd)
	addBackupList(cmd)
	addBackupDelete(cmd)
	addBackupRestore(cmd)
	addBackupExport(cmd)

	topLevel.AddCommand(cmd)
}

func addBackupCreate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Snapshot the current state.",
		Example: `
okr backup create
okr backup create "before reorg"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := backup.Create{
				Name:    strings.Join(args, " "),
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addBackupList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List snapshots, newest first.",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := backup.List{Service: svc}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addBackupDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <backup-id>",
		Short:   "Delete a snapshot.",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := backup.Delete{
				ID:      args[0],
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addBackupRestore(topLevel *cobra.Command) {
	yes := false
	cmd := &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Replace current state with a snapshot.",
		Example: `
okr backup restore okr_1756000000000_a1b2c3d4e --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("restore overwrites current state; re-run with --yes to confirm")
			}

			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := backup.Restore{
				ID:      args[0],
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm overwriting current state.")

	topLevel.AddCommand(cmd)
}

func addBackupExport(topLevel *cobra.Command) {
	eo := &options.ExchangeOptions{}
	cmd := &cobra.Command{
		Use:   "export <backup-id>",
		Short: "Write a snapshot to a file.",
		Example: `
okr backup export okr_1756000000000_a1b2c3d4e -o snapshot.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Shutdown(cmd.Context())

			s := backup.Export{
				ID:      args[0],
				Out:     eo.Out,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutArg(cmd, eo)

	topLevel.AddCommand(cmd)
}
