package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"tableflip.dev/okr/pkg/okr"
)

// Dual fans out over the structured store and the fallback store.
//
// Loads prefer the structured store and fall back on any failure.
// Saves write the structured store when it is open and always mirror
// the full snapshot to the fallback, so a structured-store failure
// loses nothing as long as the fallback write lands. When the
// structured store cannot be opened at all, Dual degrades to
// fallback-only mode: still usable, no backup collection.
type Dual struct {
	primary Persistence // nil in fallback-only mode
	mirror  Persistence
}

var _ Persistence = (*Dual)(nil)

// Load opens persistence using the provided config (or the default
// config when nil).
func Load(cfg Config) (*Dual, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(cfg.BasePath(), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	d := &Dual{mirror: OpenDiskv(DiskvPath(cfg))}

	primary, err := OpenSQLite(context.Background(), SQLitePath(cfg))
	if err != nil {
		// Degraded but usable; the caller is not interrupted.
		log.Warn().Err(err).Msg("structured store unavailable, using fallback only")
		return d, nil
	}
	d.primary = primary
	return d, nil
}

// NewDual wires explicit backends. The primary may be nil.
func NewDual(primary, mirror Persistence) *Dual {
	return &Dual{primary: primary, mirror: mirror}
}

func (d *Dual) Close() error {
	var errs []error
	if d.primary != nil {
		errs = append(errs, d.primary.Close())
	}
	errs = append(errs, d.mirror.Close())
	return errors.Join(errs...)
}

func (d *Dual) SupportsBackups() bool {
	return d.primary != nil && d.primary.SupportsBackups()
}

func (d *Dual) Load(ctx context.Context) (okr.State, error) {
	if d.primary != nil {
		state, err := d.primary.Load(ctx)
		if err == nil {
			return state, nil
		}
		log.Warn().Err(err).Msg("structured load failed, falling back")
	}
	return d.mirror.Load(ctx)
}

func (d *Dual) Save(ctx context.Context, state okr.State) error {
	var primaryErr error
	if d.primary != nil {
		primaryErr = d.primary.Save(ctx, state)
	}
	mirrorErr := d.mirror.Save(ctx, state)

	switch {
	case primaryErr != nil && mirrorErr != nil:
		return fmt.Errorf("%w: primary: %v; mirror: %v", ErrStorageWriteFailed, primaryErr, mirrorErr)
	case primaryErr != nil:
		// Data is safe in the mirror; degrade quietly.
		log.Warn().Err(primaryErr).Msg("structured save failed, snapshot mirrored to fallback")
	case mirrorErr != nil:
		log.Warn().Err(mirrorErr).Msg("fallback mirror save failed")
	}
	return nil
}

func (d *Dual) PutBackup(ctx context.Context, b okr.Backup) error {
	if d.primary == nil {
		return ErrBackupsUnsupported
	}
	return d.primary.PutBackup(ctx, b)
}

func (d *Dual) GetBackup(ctx context.Context, id string) (okr.Backup, error) {
	if d.primary == nil {
		return okr.Backup{}, ErrBackupsUnsupported
	}
	return d.primary.GetBackup(ctx, id)
}

func (d *Dual) ListBackups(ctx context.Context) ([]okr.Backup, error) {
	if d.primary == nil {
		return nil, ErrBackupsUnsupported
	}
	return d.primary.ListBackups(ctx)
}

func (d *Dual) DeleteBackup(ctx context.Context, id string) error {
	if d.primary == nil {
		return ErrBackupsUnsupported
	}
	return d.primary.DeleteBackup(ctx, id)
}

// Meta reads prefer the primary; a miss there falls through to the
// mirror so values written in fallback-only mode survive recovery.
func (d *Dual) Meta(ctx context.Context, key string) (string, error) {
	if d.primary != nil {
		if v, err := d.primary.Meta(ctx, key); err == nil && v != "" {
			return v, nil
		}
	}
	return d.mirror.Meta(ctx, key)
}

func (d *Dual) SetMeta(ctx context.Context, key, value string) error {
	var primaryErr error
	if d.primary != nil {
		primaryErr = d.primary.SetMeta(ctx, key, value)
	}
	mirrorErr := d.mirror.SetMeta(ctx, key, value)
	if primaryErr != nil && mirrorErr != nil {
		return fmt.Errorf("%w: meta %s: %v", ErrStorageWriteFailed, key, primaryErr)
	}
	return nil
}
