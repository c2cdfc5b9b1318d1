package status

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/okr"
)

// Status changes an objective's lifecycle status.
type Status struct {
	ObjectiveID string
	To          okr.Status

	Service *app.Service
}

func (n *Status) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set status, no service")
	}
	if err := n.Service.SetObjectiveStatus(ctx, n.ObjectiveID, n.To); err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", n.ObjectiveID, n.To.Label())
	return nil
}
