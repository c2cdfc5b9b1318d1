package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/export"
	"tableflip.dev/okr/pkg/printers"
)

// Import reads a file and reconciles it into current state under the
// chosen strategy. Tabular files are detected by extension.
type Import struct {
	Path     string
	Strategy export.Strategy

	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}

	doc, err := os.ReadFile(n.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", n.Path, err)
	}

	var res app.ImportResult
	if strings.HasSuffix(strings.ToLower(n.Path), ".csv") {
		res, err = n.Service.ImportTabular(ctx, bytes.NewReader(doc), n.Strategy)
	} else {
		res, err = n.Service.Import(ctx, doc, n.Strategy)
	}
	if err != nil {
		return err
	}

	fmt.Printf("imported (%s): %d objectives, %d history entries\n",
		res.Strategy, res.Objectives, res.History)
	if res.SkippedRows > 0 {
		fmt.Printf("skipped %d malformed rows\n", res.SkippedRows)
	}

	pp := printers.PrettyPrint{}
	pp.Summary(n.Service.Summary())
	return nil
}
