package store

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/okr/pkg/okr"
)

// faultyStore fails every operation. It stands in for a structured
// store that opened but stopped working.
type faultyStore struct {
	err error
}

func (f *faultyStore) Load(context.Context) (okr.State, error)       { return okr.State{}, f.err }
func (f *faultyStore) Save(context.Context, okr.State) error         { return f.err }
func (f *faultyStore) PutBackup(context.Context, okr.Backup) error   { return f.err }
func (f *faultyStore) DeleteBackup(context.Context, string) error    { return f.err }
func (f *faultyStore) SetMeta(context.Context, string, string) error { return f.err }
func (f *faultyStore) SupportsBackups() bool                         { return true }
func (f *faultyStore) Close() error                                  { return nil }

func (f *faultyStore) GetBackup(context.Context, string) (okr.Backup, error) {
	return okr.Backup{}, f.err
}

func (f *faultyStore) ListBackups(context.Context) ([]okr.Backup, error) {
	return nil, f.err
}

func (f *faultyStore) Meta(context.Context, string) (string, error) {
	return "", f.err
}

func TestDualPrefersPrimaryLoad(t *testing.T) {
	ctx := context.Background()
	primary, err := OpenSQLite(ctx, t.TempDir()+"/okr.sqlite")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	d := NewDual(primary, OpenDiskv(t.TempDir()))
	defer d.Close()

	state := okr.State{Objectives: []okr.Objective{{ID: "okr_1_aaaaaaaaa", Title: "one"}}}
	if err := d.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := d.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Objectives) != 1 || got.Objectives[0].Title != "one" {
		t.Fatalf("objectives = %+v", got.Objectives)
	}
	if !d.SupportsBackups() {
		t.Fatalf("expected backup support with a primary")
	}
}

func TestDualLoadFallsBackOnPrimaryFailure(t *testing.T) {
	ctx := context.Background()
	mirror := OpenDiskv(t.TempDir())
	state := okr.State{Objectives: []okr.Objective{{ID: "okr_1_aaaaaaaaa", Title: "mirrored"}}}
	if err := mirror.Save(ctx, state); err != nil {
		t.Fatalf("seed mirror: %v", err)
	}

	d := NewDual(&faultyStore{err: errors.New("boom")}, mirror)
	got, err := d.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Objectives) != 1 || got.Objectives[0].Title != "mirrored" {
		t.Fatalf("objectives = %+v", got.Objectives)
	}
}

func TestDualSaveAbsorbsSingleBackendFailure(t *testing.T) {
	ctx := context.Background()
	mirror := OpenDiskv(t.TempDir())
	d := NewDual(&faultyStore{err: errors.New("boom")}, mirror)

	state := okr.State{Objectives: []okr.Objective{{ID: "okr_1_aaaaaaaaa", Title: "safe"}}}
	if err := d.Save(ctx, state); err != nil {
		t.Fatalf("save with healthy mirror should succeed: %v", err)
	}

	got, err := mirror.Load(ctx)
	if err != nil {
		t.Fatalf("load mirror: %v", err)
	}
	if len(got.Objectives) != 1 {
		t.Fatalf("snapshot not mirrored: %+v", got)
	}
}

func TestDualSaveFailsWhenBothFail(t *testing.T) {
	d := NewDual(&faultyStore{err: errors.New("boom")}, &faultyStore{err: errors.New("boom")})
	err := d.Save(context.Background(), okr.State{})
	if !errors.Is(err, ErrStorageWriteFailed) {
		t.Fatalf("got %v, want ErrStorageWriteFailed", err)
	}
}

func TestDualFallbackOnlyMode(t *testing.T) {
	ctx := context.Background()
	d := NewDual(nil, OpenDiskv(t.TempDir()))

	if d.SupportsBackups() {
		t.Fatalf("no backup support without a primary")
	}
	if err := d.PutBackup(ctx, okr.Backup{ID: "x"}); !errors.Is(err, ErrBackupsUnsupported) {
		t.Fatalf("put: %v", err)
	}
	if _, err := d.ListBackups(ctx); !errors.Is(err, ErrBackupsUnsupported) {
		t.Fatalf("list: %v", err)
	}

	if err := d.Save(ctx, okr.State{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := d.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestDualMetaFallsThrough(t *testing.T) {
	ctx := context.Background()
	mirror := OpenDiskv(t.TempDir())
	if err := mirror.SetMeta(ctx, MetaLastAutoBackup, "from-mirror"); err != nil {
		t.Fatalf("seed mirror meta: %v", err)
	}

	primary, err := OpenSQLite(ctx, t.TempDir()+"/okr.sqlite")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	d := NewDual(primary, mirror)
	defer d.Close()

	// Primary has no value yet; the mirror's survives.
	v, err := d.Meta(ctx, MetaLastAutoBackup)
	if err != nil || v != "from-mirror" {
		t.Fatalf("meta = %q err %v", v, err)
	}

	// Writes land on both; the primary now wins.
	if err := d.SetMeta(ctx, MetaLastAutoBackup, "both"); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	v, err = d.Meta(ctx, MetaLastAutoBackup)
	if err != nil || v != "both" {
		t.Fatalf("meta = %q err %v", v, err)
	}
}
