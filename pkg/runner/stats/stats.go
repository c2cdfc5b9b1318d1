package stats

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/printers"
)

// Stats prints the dashboard numbers.
type Stats struct {
	Service *app.Service
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get stats, no service")
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Dashboard")
	pp.Summary(n.Service.Summary())
	return nil
}
