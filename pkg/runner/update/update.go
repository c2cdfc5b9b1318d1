package update

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/printers"
)

// Update records a new current value for one key result.
type Update struct {
	ObjectiveID string
	Index       int
	Value       float64

	Service *app.Service
}

func (n *Update) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not update, no service")
	}

	o, err := n.Service.UpdateKeyResult(ctx, n.ObjectiveID, n.Index, n.Value)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Objective(o)
	pp.Summary(n.Service.Summary())
	return nil
}
