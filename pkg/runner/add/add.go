package add

import (
	"context"
	"errors"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/printers"
)

// Add creates a new objective with its key results.
type Add struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	KeyResults  []app.KeyResultSpec

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	o, err := n.Service.CreateObjective(ctx, app.ObjectiveSpec{
		Title:       n.Title,
		Description: n.Description,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
		KeyResults:  n.KeyResults,
	})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Objective(o)
	return nil
}
