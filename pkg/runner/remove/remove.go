package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
)

// Remove deletes an objective.
type Remove struct {
	ObjectiveID string

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if err := n.Service.DeleteObjective(ctx, n.ObjectiveID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", n.ObjectiveID)
	return nil
}
