package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/okr/pkg/okr"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "okr.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteLoadEmpty(t *testing.T) {
	s := openTestSQLite(t)
	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Objectives)
	assert.Empty(t, state.History)
	assert.Zero(t, state.Settings.Streak)
	assert.Nil(t, state.Settings.LastUpdate)
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	p := 50.0
	last := okr.Timestamp{Time: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	state := okr.State{
		Objectives: []okr.Objective{
			{
				ID:    "okr_1_aaaaaaaaa",
				Title: "first",
				KeyResults: []okr.KeyResult{
					{Description: "kr", Target: 10, Current: 5, Unit: "pts", BonusAwarded: true},
				},
				Status:    okr.StatusActive,
				CreatedAt: okr.Timestamp{Time: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
			},
			{
				ID:        "okr_2_bbbbbbbbb",
				Title:     "second",
				Status:    okr.StatusPaused,
				CreatedAt: okr.Timestamp{Time: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
			},
		},
		History: []okr.HistoryEntry{
			{ID: "okr_3_ccccccccc", Action: "KR updated", Progress: &p, Date: last},
		},
		Settings: okr.Settings{Streak: 3, TotalPoints: 60, LastUpdate: &last},
	}

	require.NoError(t, s.Save(ctx, state))

	got, err := s.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.Objectives, 2)
	assert.Equal(t, "okr_1_aaaaaaaaa", got.Objectives[0].ID)
	assert.Equal(t, "first", got.Objectives[0].Title)
	assert.True(t, got.Objectives[0].KeyResults[0].BonusAwarded)
	assert.Equal(t, okr.StatusPaused, got.Objectives[1].Status)

	require.Len(t, got.History, 1)
	require.NotNil(t, got.History[0].Progress)
	assert.Equal(t, 50.0, *got.History[0].Progress)

	assert.Equal(t, 3, got.Settings.Streak)
	assert.Equal(t, 60, got.Settings.TotalPoints)
	require.NotNil(t, got.Settings.LastUpdate)
	assert.True(t, got.Settings.LastUpdate.Equal(last.Time))
}

func TestSQLiteSaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	first := okr.State{Objectives: []okr.Objective{{ID: "okr_1_aaaaaaaaa", Title: "old"}}}
	require.NoError(t, s.Save(ctx, first))

	second := okr.State{Objectives: []okr.Objective{{ID: "okr_2_bbbbbbbbb", Title: "new"}}}
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Objectives, 1)
	assert.Equal(t, "okr_2_bbbbbbbbb", got.Objectives[0].ID)
}

func TestSQLiteLoadOrders(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	// Insertion order scrambled; load orders by creation time.
	state := okr.State{Objectives: []okr.Objective{
		{ID: "okr_2_bbbbbbbbb", CreatedAt: okr.Timestamp{Time: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)}},
		{ID: "okr_1_aaaaaaaaa", CreatedAt: okr.Timestamp{Time: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}},
	}}
	require.NoError(t, s.Save(ctx, state))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Objectives, 2)
	assert.Equal(t, "okr_1_aaaaaaaaa", got.Objectives[0].ID)
	assert.Equal(t, "okr_2_bbbbbbbbb", got.Objectives[1].ID)
}

func TestSQLiteBackupCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	assert.True(t, s.SupportsBackups())

	older := okr.Backup{
		ID:        "okr_1_aaaaaaaaa",
		Name:      "older",
		Timestamp: okr.Timestamp{Time: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		Data:      okr.State{Objectives: []okr.Objective{{ID: "okr_9_zzzzzzzzz"}}},
	}
	newer := okr.Backup{
		ID:        "okr_2_bbbbbbbbb",
		Name:      "newer",
		Timestamp: okr.Timestamp{Time: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, s.PutBackup(ctx, older))
	require.NoError(t, s.PutBackup(ctx, newer))

	got, err := s.GetBackup(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "older", got.Name)
	require.Len(t, got.Data.Objectives, 1)

	all, err := s.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Name)

	require.NoError(t, s.DeleteBackup(ctx, older.ID))
	_, err = s.GetBackup(ctx, older.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteBackup(ctx, older.ID), ErrNotFound)
}

func TestSQLiteMeta(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	v, err := s.Meta(ctx, MetaLastAutoBackup)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SetMeta(ctx, MetaLastAutoBackup, "2026-08-30T10:00:00Z"))
	v, err = s.Meta(ctx, MetaLastAutoBackup)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T10:00:00Z", v)

	require.NoError(t, s.SetMeta(ctx, MetaLastAutoBackup, "2026-08-31T10:00:00Z"))
	v, err = s.Meta(ctx, MetaLastAutoBackup)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31T10:00:00Z", v)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "okr.sqlite")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, okr.State{
		Objectives: []okr.Objective{{ID: "okr_1_aaaaaaaaa", Title: "durable"}},
	}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Objectives, 1)
	assert.Equal(t, "durable", got.Objectives[0].Title)
}
