package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	// modernc.org/sqlite registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"tableflip.dev/okr/pkg/okr"
)

// SQLite is the structured transactional store. Rows carry the record
// as a JSON blob plus a few scalar columns for ordering; saves replace
// whole collections inside one transaction rather than writing
// incrementally.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	// WAL keeps readers unblocked during the rewrite transaction;
	// busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	s := &SQLite{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS objectives (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			date_unixms INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_date ON history(date_unixms);`,
		`CREATE TABLE IF NOT EXISTS settings (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS backups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			timestamp_unixms INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_backups_ts ON backups(timestamp_unixms);`,
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) SupportsBackups() bool { return true }

// Load reads the full state. Missing collections and settings default
// to empty/zero rather than failing.
func (s *SQLite) Load(ctx context.Context) (okr.State, error) {
	var state okr.State

	objectives, err := readJSONRows[okr.Objective](ctx, s.db,
		`SELECT json FROM objectives ORDER BY created_at_unixms, id`)
	if err != nil {
		return state, fmt.Errorf("load objectives: %w", err)
	}
	history, err := readJSONRows[okr.HistoryEntry](ctx, s.db,
		`SELECT json FROM history ORDER BY date_unixms, id`)
	if err != nil {
		return state, fmt.Errorf("load history: %w", err)
	}
	state.Objectives = objectives
	state.History = history
	state.Settings, err = s.loadSettings(ctx)
	if err != nil {
		return state, fmt.Errorf("load settings: %w", err)
	}
	state.Normalize()
	return state, nil
}

func (s *SQLite) loadSettings(ctx context.Context) (okr.Settings, error) {
	var out okr.Settings
	rows, err := s.db.QueryContext(ctx, `SELECT k, v FROM settings`)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return out, err
		}
		// Settings is a fixed set of names; anything else is ignored
		// rather than round-tripped as a freeform map.
		switch k {
		case "streak":
			out.Streak, _ = strconv.Atoi(v)
		case "totalPoints":
			out.TotalPoints, _ = strconv.Atoi(v)
		case "lastUpdate":
			if v != "" {
				if t, err := okr.ParseTime(v); err == nil {
					out.LastUpdate = &okr.Timestamp{Time: t}
				}
			}
		}
	}
	return out, rows.Err()
}

// Save replaces each collection wholesale inside a single transaction.
func (s *SQLite) Save(ctx context.Context, state okr.State) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"objectives", "history", "settings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return fmt.Errorf("%w: clear %s: %v", ErrStorageWriteFailed, t, err)
		}
	}

	for i := range state.Objectives {
		o := &state.Objectives[i]
		raw, _ := json.Marshal(o)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO objectives(id, status, created_at_unixms, json) VALUES(?, ?, ?, ?)`,
			o.ID, string(o.Status), o.CreatedAt.UTC().UnixMilli(), string(raw)); err != nil {
			return fmt.Errorf("%w: objective %s: %v", ErrStorageWriteFailed, o.ID, err)
		}
	}
	for i := range state.History {
		h := &state.History[i]
		raw, _ := json.Marshal(h)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO history(id, date_unixms, json) VALUES(?, ?, ?)`,
			h.ID, h.Date.UTC().UnixMilli(), string(raw)); err != nil {
			return fmt.Errorf("%w: history %s: %v", ErrStorageWriteFailed, h.ID, err)
		}
	}

	last := ""
	if state.Settings.LastUpdate != nil && !state.Settings.LastUpdate.IsZero() {
		last = state.Settings.LastUpdate.String()
	}
	settings := [][2]string{
		{"streak", strconv.Itoa(state.Settings.Streak)},
		{"totalPoints", strconv.Itoa(state.Settings.TotalPoints)},
		{"lastUpdate", last},
	}
	for _, kv := range settings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings(k, v) VALUES(?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("%w: setting %s: %v", ErrStorageWriteFailed, kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	return nil
}

func (s *SQLite) PutBackup(ctx context.Context, b okr.Backup) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO backups(id, name, timestamp_unixms, json) VALUES(?, ?, ?, ?)`,
		b.ID, b.Name, b.Timestamp.UTC().UnixMilli(), string(raw)); err != nil {
		return fmt.Errorf("%w: backup %s: %v", ErrStorageWriteFailed, b.ID, err)
	}
	return nil
}

func (s *SQLite) GetBackup(ctx context.Context, id string) (okr.Backup, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT json FROM backups WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return okr.Backup{}, fmt.Errorf("%w: backup %s", ErrNotFound, id)
	}
	if err != nil {
		return okr.Backup{}, err
	}
	var b okr.Backup
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return okr.Backup{}, fmt.Errorf("decode backup %s: %w", id, err)
	}
	return b, nil
}

// ListBackups returns backups newest first.
func (s *SQLite) ListBackups(ctx context.Context) ([]okr.Backup, error) {
	out, err := readJSONRows[okr.Backup](ctx, s.db,
		`SELECT json FROM backups ORDER BY timestamp_unixms DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return out, nil
}

func (s *SQLite) DeleteBackup(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM backups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete backup %s: %v", ErrStorageWriteFailed, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: backup %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLite) Meta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func (s *SQLite) SetMeta(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, value); err != nil {
		return fmt.Errorf("%w: meta %s: %v", ErrStorageWriteFailed, key, err)
	}
	return nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
