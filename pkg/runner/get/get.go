package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/okr"
	"tableflip.dev/okr/pkg/printers"
)

// Get lists objectives, optionally filtered by status.
type Get struct {
	ShowID bool
	Status okr.Status // empty means all

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	all := n.filtered(n.Service.Objectives())
	pp.Title("Objectives")
	pp.Objectives(all...)
	return nil
}

func (n *Get) filtered(all []okr.Objective) []okr.Objective {
	if n.Status == "" {
		return all
	}
	c := make([]okr.Objective, 0, len(all))
	for _, o := range all {
		if o.Status == n.Status {
			c = append(c, o)
		}
	}
	return c
}
