package history

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/printers"
)

// History prints the audit log.
type History struct {
	Limit int // 0 means all

	Service *app.Service
}

func (n *History) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get history, no service")
	}

	entries := n.Service.History()
	if n.Limit > 0 && len(entries) > n.Limit {
		entries = entries[len(entries)-n.Limit:]
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("History")
	pp.HistoryList(entries...)
	return nil
}
