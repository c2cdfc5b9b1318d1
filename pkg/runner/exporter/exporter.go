package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/export"
)

// Export writes the full current state to a file in the requested
// format.
type Export struct {
	Format export.Format
	Out    string // empty picks a dated default name

	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}

	doc, err := n.Service.Export(n.Format)
	if err != nil {
		return err
	}

	out := n.Out
	if out == "" {
		ext := "json"
		if n.Format == export.FormatTabular {
			ext = "csv"
		}
		out = fmt.Sprintf("okr-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
