package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/export"
	"tableflip.dev/okr/pkg/printers"
)

// Share prints the peer-comparison code for the current state.
type Share struct {
	Service *app.Service
}

func (n *Share) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not share, no service")
	}
	code, err := n.Service.ShareCode()
	if err != nil {
		return err
	}
	fmt.Println("")
	fmt.Println("Share this code with a friend:")
	fmt.Println("")
	c := color.New(color.FgHiCyan)
	_, _ = c.Println(code)
	return nil
}

// Compare decodes a friend's code and prints both summaries side by
// side.
type Compare struct {
	Code string

	Service *app.Service
}

func (n *Compare) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not compare, no service")
	}
	theirs, err := export.DecodeShareCode(n.Code)
	if err != nil {
		return err
	}

	mine := n.Service.Summary()
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Comparison")
	pp.Comparison(mine, theirs.Summary)
	fmt.Println("")

	switch export.Compare(mine, theirs.Summary) {
	case export.VerdictAhead:
		fmt.Println("You are ahead on points. Keep it up!")
	case export.VerdictBehind:
		fmt.Println("Your friend is ahead. Time to catch up!")
	default:
		fmt.Println("Dead even. You are both putting in the work.")
	}
	return nil
}
