// Package store persists tracker state across two backends: a
// structured SQLite store and a simpler serialized diskv store used as
// a durability backstop and as a fallback when SQLite cannot open.
package store

import (
	"context"
	"errors"

	"tableflip.dev/okr/pkg/okr"
)

var (
	// ErrStorageUnavailable means the structured store failed to open.
	// It triggers fallback-only operation and is not fatal.
	ErrStorageUnavailable = errors.New("store: structured storage unavailable")
	// ErrStorageWriteFailed means a write could not be made durable on
	// any backend.
	ErrStorageWriteFailed = errors.New("store: write failed")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrBackupsUnsupported means the active backend has no backup
	// collection (fallback-only mode).
	ErrBackupsUnsupported = errors.New("store: backups unsupported by this backend")
)

// Meta keys stored outside the main collections.
const (
	MetaLastAutoBackup = "last-auto-backup"
)

// Persistence is the storage contract for tracker state, the backup
// collection, and meta keys.
type Persistence interface {
	Load(ctx context.Context) (okr.State, error)
	Save(ctx context.Context, state okr.State) error

	PutBackup(ctx context.Context, b okr.Backup) error
	GetBackup(ctx context.Context, id string) (okr.Backup, error)
	ListBackups(ctx context.Context) ([]okr.Backup, error)
	DeleteBackup(ctx context.Context, id string) error

	Meta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error

	// SupportsBackups reports whether the backup collection is
	// available. It is false in fallback-only mode.
	SupportsBackups() bool

	Close() error
}
