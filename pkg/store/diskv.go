package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/okr/pkg/okr"
)

const (
	// blobKey holds the whole serialized state in one record, the same
	// shape the browser original kept under its localStorage key.
	blobKey      = "okr-tracker-data"
	blobVersion  = 1
	metaKeySpace = "meta-"
)

// Diskv is the simple key-value store. The full state lives under a
// single key as one JSON blob; it has no backup collection and exists
// as the durability backstop and the fallback backend.
type Diskv struct {
	d *diskv.Diskv
}

// OpenDiskv opens the key-value store rooted at basePath.
func OpenDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(s string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// blob is the fallback wire format.
type blob struct {
	Objectives  []okr.Objective    `json:"objectives"`
	History     []okr.HistoryEntry `json:"history"`
	Streak      int                `json:"streak"`
	TotalPoints int                `json:"totalPoints"`
	LastUpdate  *okr.Timestamp     `json:"lastUpdate,omitempty"`
	Version     int                `json:"version"`
}

func (s *Diskv) Close() error { return nil }

func (s *Diskv) SupportsBackups() bool { return false }

// Load reads the serialized blob. A missing blob is an empty state.
func (s *Diskv) Load(ctx context.Context) (okr.State, error) {
	var state okr.State
	state.Normalize()
	if !s.d.Has(blobKey) {
		return state, nil
	}
	raw, err := s.d.Read(blobKey)
	if err != nil {
		return state, fmt.Errorf("read %s: %w", blobKey, err)
	}
	var b blob
	if err := json.Unmarshal(raw, &b); err != nil {
		return state, fmt.Errorf("decode %s: %w", blobKey, err)
	}
	state.Objectives = b.Objectives
	state.History = b.History
	state.Settings = okr.Settings{
		Streak:      b.Streak,
		TotalPoints: b.TotalPoints,
		LastUpdate:  b.LastUpdate,
	}
	state.Normalize()
	return state, nil
}

// Save rewrites the blob in full; the single key write keeps the
// snapshot internally consistent.
func (s *Diskv) Save(ctx context.Context, state okr.State) error {
	b := blob{
		Objectives:  state.Objectives,
		History:     state.History,
		Streak:      state.Settings.Streak,
		TotalPoints: state.Settings.TotalPoints,
		LastUpdate:  state.Settings.LastUpdate,
		Version:     blobVersion,
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	if err := s.d.Write(blobKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	return nil
}

func (s *Diskv) PutBackup(ctx context.Context, b okr.Backup) error {
	return ErrBackupsUnsupported
}

func (s *Diskv) GetBackup(ctx context.Context, id string) (okr.Backup, error) {
	return okr.Backup{}, ErrBackupsUnsupported
}

func (s *Diskv) ListBackups(ctx context.Context) ([]okr.Backup, error) {
	return nil, ErrBackupsUnsupported
}

func (s *Diskv) DeleteBackup(ctx context.Context, id string) error {
	return ErrBackupsUnsupported
}

func (s *Diskv) Meta(ctx context.Context, key string) (string, error) {
	k := metaKeySpace + key
	if !s.d.Has(k) {
		return "", nil
	}
	raw, err := s.d.Read(k)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Diskv) SetMeta(ctx context.Context, key, value string) error {
	if err := s.d.Write(metaKeySpace+key, []byte(value)); err != nil {
		return fmt.Errorf("%w: meta %s: %v", ErrStorageWriteFailed, key, err)
	}
	return nil
}
