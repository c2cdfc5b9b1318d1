package sync

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/app"
)

// Sync invokes the server-synchronization hook. No backend is wired in
// this deployment, so today it only reports that.
type Sync struct {
	Service *app.Service
}

func (n *Sync) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not sync, no service")
	}
	if err := n.Service.Sync(ctx); err != nil {
		if errors.Is(err, app.ErrSyncNotConfigured) {
			fmt.Println("sync is not configured; data stays local")
			return nil
		}
		return err
	}
	return nil
}
