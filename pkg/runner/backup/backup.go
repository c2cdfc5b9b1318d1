// Package backup provides runners over the snapshot collection:
// create, list, delete, restore, and export-to-file.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/printers"
)

// Create snapshots the current state under an optional name.
type Create struct {
	Name string

	Service *app.Service
}

func (n *Create) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not backup, no service")
	}
	b, err := n.Service.CreateBackup(ctx, n.Name)
	if err != nil {
		return err
	}
	fmt.Printf("created backup %q (%s)\n", b.Name, b.ID)
	return nil
}

// List prints all backups, newest first.
type List struct {
	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list backups, no service")
	}
	all, err := n.Service.Backups.List(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Backups")
	pp.Backups(all...)
	return nil
}

// Delete removes one backup.
type Delete struct {
	ID string

	Service *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete backup, no service")
	}
	if err := n.Service.Backups.Delete(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("deleted backup %s\n", n.ID)
	return nil
}

// Restore replaces current state with a backup's data. Confirmation is
// the command layer's job; by the time the runner executes, the user
// has agreed.
type Restore struct {
	ID string

	Service *app.Service
}

func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not restore, no service")
	}
	if err := n.Service.RestoreBackup(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("restored backup %s\n", n.ID)
	pp := printers.PrettyPrint{}
	pp.Summary(n.Service.Summary())
	return nil
}

// Export writes one backup to a file as a full export envelope.
type Export struct {
	ID  string
	Out string // target path; empty uses the suggested name in cwd

	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export backup, no service")
	}
	doc, name, err := n.Service.Backups.ExportFile(ctx, n.ID)
	if err != nil {
		return err
	}
	out := n.Out
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("wrote %s\n", filepath.Clean(out))
	return nil
}
