// Package backup manages named full snapshots of tracker state:
// creation, retention, restore support, and file export.
package backup

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/okr/pkg/export"
	"tableflip.dev/okr/pkg/okr"
	"tableflip.dev/okr/pkg/store"
)

const (
	// MaxBackups is the retention cap; older snapshots are pruned after
	// each creation.
	MaxBackups = 10
	// AutoInterval is the minimum spacing between automatic backups.
	AutoInterval = 7 * 24 * time.Hour

	layoutISO = "2006-01-02"
)

// Manager runs the backup collection on top of persistence. Unlike a
// routine load fallback, every operation here is user-visible, so
// storage failures surface as errors.
type Manager struct {
	Persistence store.Persistence
}

// Create snapshots the state under the given name (or a generated one)
// and prunes retention. The returned backup is what was written.
func (m *Manager) Create(ctx context.Context, name string, state okr.State) (okr.Backup, error) {
	if name == "" {
		name = "Backup " + time.Now().Format(layoutISO)
	}
	b := okr.Backup{
		ID:        okr.GenerateID(),
		Name:      name,
		Timestamp: okr.Now(),
		Data:      state.Clone(),
	}
	if err := m.Persistence.PutBackup(ctx, b); err != nil {
		return okr.Backup{}, fmt.Errorf("create backup: %w", err)
	}
	if err := m.prune(ctx); err != nil {
		return okr.Backup{}, fmt.Errorf("prune backups: %w", err)
	}
	return b, nil
}

// prune deletes the oldest backups beyond the retention cap. Safe to
// call repeatedly; once the collection is within the cap it does
// nothing.
func (m *Manager) prune(ctx context.Context) error {
	all, err := m.Persistence.ListBackups(ctx)
	if err != nil {
		return err
	}
	// ListBackups returns newest first; everything past the cap goes.
	for _, b := range all[min(MaxBackups, len(all)):] {
		if err := m.Persistence.DeleteBackup(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}

// MaybeAuto creates a dated backup when the last automatic one is
// absent or older than the interval. It is called on every save, so the
// meta-key gate keeps it to at most one backup per window.
func (m *Manager) MaybeAuto(ctx context.Context, state okr.State) (bool, error) {
	if !m.Persistence.SupportsBackups() {
		return false, nil
	}
	last, err := m.Persistence.Meta(ctx, store.MetaLastAutoBackup)
	if err != nil {
		return false, err
	}
	if last != "" {
		t, err := okr.ParseTime(last)
		if err == nil && time.Since(t) < AutoInterval {
			return false, nil
		}
	}
	if _, err := m.Create(ctx, "Auto "+time.Now().Format(layoutISO), state); err != nil {
		return false, err
	}
	if err := m.Persistence.SetMeta(ctx, store.MetaLastAutoBackup, okr.FormatTime(time.Now())); err != nil {
		return true, err
	}
	return true, nil
}

// List returns all backups, newest first.
func (m *Manager) List(ctx context.Context) ([]okr.Backup, error) {
	return m.Persistence.ListBackups(ctx)
}

// Get fetches one backup by id.
func (m *Manager) Get(ctx context.Context, id string) (okr.Backup, error) {
	return m.Persistence.GetBackup(ctx, id)
}

// Delete removes one backup by id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.Persistence.DeleteBackup(ctx, id)
}

// ExportFile renders a backup as a full export envelope plus a
// suggested file name.
func (m *Manager) ExportFile(ctx context.Context, id string) ([]byte, string, error) {
	b, err := m.Persistence.GetBackup(ctx, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := export.MarshalEnvelope(export.NewEnvelope(b.Data, b.Name))
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("okr-backup-%s.json", b.Timestamp.UTC().Format(layoutISO))
	return doc, name, nil
}
