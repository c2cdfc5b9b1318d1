// Package app owns the canonical in-memory collections and orchestrates
// loads, mutations, and saves. It is the only writer to persistent
// storage; CLI runners and other UI collaborators call into it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"tableflip.dev/okr/pkg/backup"
	"tableflip.dev/okr/pkg/export"
	"tableflip.dev/okr/pkg/metrics"
	"tableflip.dev/okr/pkg/okr"
	"tableflip.dev/okr/pkg/store"
)

var (
	// ErrNotFound means the objective or backup id does not exist.
	ErrNotFound = errors.New("app: not found")
	// ErrInvalidArgument means an out-of-range index or bad value.
	ErrInvalidArgument = errors.New("app: invalid argument")
	// ErrNotInitialized means Initialize has not run yet.
	ErrNotInitialized = errors.New("app: service not initialized")
	// ErrSyncNotConfigured is returned by the sync placeholder; no
	// server synchronization exists in this deployment.
	ErrSyncNotConfigured = errors.New("app: sync not configured")
)

const layoutISO = "2006-01-02"

// Service is the application state controller. It is built once at
// process start and passed to every collaborator.
//
// Operations are not serialized against each other: two overlapping
// mutations each read then overwrite the shared collections, and the
// last writer wins. There is only ever one logical user in the target
// deployment, so this is a documented limitation rather than a bug.
type Service struct {
	Persistence store.Persistence
	Backups     *backup.Manager

	state okr.State
	ready bool
}

// New wires a Service over the given persistence.
func New(p store.Persistence) *Service {
	return &Service{
		Persistence: p,
		Backups:     &backup.Manager{Persistence: p},
	}
}

// Initialize loads persisted state and expires a stale streak for the
// current day. It must run before any other operation.
func (s *Service) Initialize(ctx context.Context) error {
	state, err := s.Persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("app: load: %w", err)
	}
	state.Normalize()
	// Expire a stale streak on load. Only a key-result update may
	// extend it, so a zero from the recompute is applied and anything
	// else leaves the stored value alone.
	if metrics.NextStreak(state.Settings.Streak, lastUpdateTime(state.Settings), time.Now()) == 0 {
		state.Settings.Streak = 0
	}
	s.state = state
	s.ready = true
	return nil
}

// persist saves after a routine mutation. Failures are logged and
// absorbed: the in-memory mutation stands and durability is at risk,
// but the user is not interrupted. The auto-backup check rides along.
func (s *Service) persist(ctx context.Context) {
	if err := s.Persistence.Save(ctx, s.state); err != nil {
		log.Error().Err(err).Msg("autosave failed; changes applied in memory only")
	}
	if _, err := s.Backups.MaybeAuto(ctx, s.state); err != nil {
		log.Warn().Err(err).Msg("auto-backup failed")
	}
}

// persistOrFail saves after a user-initiated action whose failure must
// be surfaced (import, restore). In-memory state stays mutated either
// way.
func (s *Service) persistOrFail(ctx context.Context) error {
	if err := s.Persistence.Save(ctx, s.state); err != nil {
		return err
	}
	if _, err := s.Backups.MaybeAuto(ctx, s.state); err != nil {
		log.Warn().Err(err).Msg("auto-backup failed")
	}
	return nil
}

// KeyResultSpec describes one key result at objective creation.
type KeyResultSpec struct {
	Description string
	Target      float64
	Current     float64
	Unit        string
}

// ObjectiveSpec describes a new objective.
type ObjectiveSpec struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	KeyResults  []KeyResultSpec
}

// CreateObjective validates the spec, adds the objective, appends a
// history entry, and saves.
func (s *Service) CreateObjective(ctx context.Context, spec ObjectiveSpec) (*okr.Objective, error) {
	if !s.ready {
		return nil, ErrNotInitialized
	}
	if spec.Title == "" {
		return nil, fmt.Errorf("%w: objective title required", ErrInvalidArgument)
	}
	if len(spec.KeyResults) == 0 {
		return nil, fmt.Errorf("%w: at least one key result required", ErrInvalidArgument)
	}
	krs := make([]okr.KeyResult, 0, len(spec.KeyResults))
	for i, kr := range spec.KeyResults {
		if kr.Target <= 0 {
			return nil, fmt.Errorf("%w: key result %d target must be positive", ErrInvalidArgument, i)
		}
		krs = append(krs, okr.KeyResult{
			Description: kr.Description,
			Target:      kr.Target,
			Current:     kr.Current,
			Unit:        kr.Unit,
		})
	}

	o := okr.New(spec.Title, spec.Description, krs...)
	o.StartDate = spec.StartDate
	o.EndDate = spec.EndDate
	s.state.Objectives = append(s.state.Objectives, *o)

	s.addHistory("Objective created", fmt.Sprintf("Created %q", o.Title), nil)
	s.persist(ctx)
	return o, nil
}

// DeleteObjective removes the objective with the given id.
func (s *Service) DeleteObjective(ctx context.Context, id string) error {
	if !s.ready {
		return ErrNotInitialized
	}
	kept := s.state.Objectives[:0]
	found := false
	for _, o := range s.state.Objectives {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return fmt.Errorf("%w: objective %s", ErrNotFound, id)
	}
	s.state.Objectives = kept

	s.addHistory("Objective deleted", fmt.Sprintf("Deleted objective %s", id), nil)
	s.persist(ctx)
	return nil
}

// SetObjectiveStatus changes an objective's lifecycle status. Statuses
// never change automatically; this is the explicit user action.
func (s *Service) SetObjectiveStatus(ctx context.Context, id string, status okr.Status) error {
	if !s.ready {
		return ErrNotInitialized
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidArgument, string(status))
	}
	o := s.state.Find(id)
	if o == nil {
		return fmt.Errorf("%w: objective %s", ErrNotFound, id)
	}
	o.Status = status

	s.addHistory("Status changed", fmt.Sprintf("%q is now %s", o.Title, status.Label()), nil)
	s.persist(ctx)
	return nil
}

// UpdateKeyResult records a new current value for the key result at
// index within the objective. The sequence is fixed: validate, mutate,
// append history, apply points, recompute streak, save. A save failure
// does not roll the mutation back.
func (s *Service) UpdateKeyResult(ctx context.Context, objectiveID string, index int, newValue float64) (*okr.Objective, error) {
	if !s.ready {
		return nil, ErrNotInitialized
	}
	o := s.state.Find(objectiveID)
	if o == nil {
		return nil, fmt.Errorf("%w: objective %s", ErrNotFound, objectiveID)
	}
	if index < 0 || index >= len(o.KeyResults) {
		return nil, fmt.Errorf("%w: key result index %d out of range", ErrInvalidArgument, index)
	}
	if math.IsNaN(newValue) || math.IsInf(newValue, 0) || newValue < 0 {
		return nil, fmt.Errorf("%w: value %v", ErrInvalidArgument, newValue)
	}

	kr := &o.KeyResults[index]
	points, bonus := metrics.AwardPoints(*kr, newValue)
	kr.Current = newValue
	if bonus {
		kr.BonusAwarded = true
	}

	progress := metrics.KeyResultProgress(*kr)
	s.addHistory("KR updated",
		fmt.Sprintf("Updated %q to %v/%v", kr.Description, kr.Current, kr.Target),
		&progress)

	s.state.Settings.TotalPoints += points
	now := time.Now()
	s.state.Settings.Streak = metrics.NextStreak(
		s.state.Settings.Streak, lastUpdateTime(s.state.Settings), now)
	s.state.Settings.LastUpdate = &okr.Timestamp{Time: now}

	s.persist(ctx)
	return o, nil
}

// ImportResult reports what an import did.
type ImportResult struct {
	Strategy    export.Strategy
	Objectives  int
	History     int
	SkippedRows int
}

// Import validates and reconciles a structured document against the
// current state, then persists. Failure at any step leaves prior state
// untouched; a save failure is surfaced because an import is an
// explicit user action.
func (s *Service) Import(ctx context.Context, doc []byte, strategy export.Strategy) (ImportResult, error) {
	if !s.ready {
		return ImportResult{}, ErrNotInitialized
	}
	incoming, err := export.ParseCandidate(doc)
	if err != nil {
		return ImportResult{}, err
	}
	return s.applyImport(ctx, incoming, strategy, 0)
}

// ImportTabular is the tabular-text import path. Malformed rows are
// skipped; the count is reported in the result.
func (s *Service) ImportTabular(ctx context.Context, r io.Reader, strategy export.Strategy) (ImportResult, error) {
	if !s.ready {
		return ImportResult{}, ErrNotInitialized
	}
	incoming, skipped, err := export.ParseTabular(r)
	if err != nil {
		return ImportResult{}, err
	}
	return s.applyImport(ctx, incoming, strategy, skipped)
}

func (s *Service) applyImport(ctx context.Context, incoming okr.State, strategy export.Strategy, skipped int) (ImportResult, error) {
	if strategy == export.StrategyBackupAndReplace {
		if _, err := s.Backups.Create(ctx, "Pre-import "+time.Now().Format(layoutISO), s.state); err != nil {
			return ImportResult{}, fmt.Errorf("pre-import backup: %w", err)
		}
	}
	reconciled, err := export.Reconcile(s.state, incoming, strategy)
	if err != nil {
		return ImportResult{}, err
	}
	s.state = reconciled
	s.addHistory("Data imported",
		fmt.Sprintf("Imported %d objectives (%s)", len(incoming.Objectives), strategy), nil)
	if err := s.persistOrFail(ctx); err != nil {
		return ImportResult{}, err
	}
	return ImportResult{
		Strategy:    strategy,
		Objectives:  len(s.state.Objectives),
		History:     len(s.state.History),
		SkippedRows: skipped,
	}, nil
}

// Export renders the current state in the requested format.
func (s *Service) Export(format export.Format) ([]byte, error) {
	if !s.ready {
		return nil, ErrNotInitialized
	}
	return export.Export(s.state, format)
}

// CreateBackup snapshots the current state under the given name.
func (s *Service) CreateBackup(ctx context.Context, name string) (okr.Backup, error) {
	if !s.ready {
		return okr.Backup{}, ErrNotInitialized
	}
	return s.Backups.Create(ctx, name, s.state)
}

// RestoreBackup replaces the current state wholesale with a backup's
// data. A safety backup of the pre-restore state is attempted first;
// its failure is logged but does not block the restore.
func (s *Service) RestoreBackup(ctx context.Context, id string) error {
	if !s.ready {
		return ErrNotInitialized
	}
	b, err := s.Backups.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: backup %s", ErrNotFound, id)
		}
		return err
	}
	if _, err := s.Backups.Create(ctx, "Pre-restore "+time.Now().Format(layoutISO), s.state); err != nil {
		log.Warn().Err(err).Msg("pre-restore safety backup failed")
	}

	s.state = b.Data.Clone()
	s.state.Normalize()
	s.addHistory("Backup restored", fmt.Sprintf("Restored backup %q", b.Name), nil)
	return s.persistOrFail(ctx)
}

// ShareCode encodes the current aggregate stats as a peer-comparison
// code.
func (s *Service) ShareCode() (string, error) {
	if !s.ready {
		return "", ErrNotInitialized
	}
	return export.EncodeShareCode(s.state)
}

// Summary returns the aggregate dashboard stats.
func (s *Service) Summary() metrics.Summary {
	return metrics.Summarize(s.state)
}

// Objectives returns the live objective collection in insertion order.
// Callers must treat it as read-only.
func (s *Service) Objectives() []okr.Objective {
	return s.state.Objectives
}

// History returns the audit log, oldest first. Read-only for callers.
func (s *Service) History() []okr.HistoryEntry {
	return s.state.History
}

// Settings returns the current tracked scalars.
func (s *Service) Settings() okr.Settings {
	return s.state.Settings
}

// State returns a deep copy of the full current state.
func (s *Service) State() okr.State {
	return s.state.Clone()
}

// Sync is a placeholder hook for future server synchronization. It
// performs no network I/O.
func (s *Service) Sync(ctx context.Context) error {
	return ErrSyncNotConfigured
}

// Shutdown flushes a final save and closes storage handles.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.ready {
		if err := s.Persistence.Save(ctx, s.state); err != nil {
			log.Error().Err(err).Msg("final save failed")
		}
	}
	return s.Persistence.Close()
}

func (s *Service) addHistory(action, description string, progress *float64) {
	s.state.History = append(s.state.History, okr.HistoryEntry{
		ID:          okr.GenerateID(),
		Action:      action,
		Description: description,
		Progress:    progress,
		Date:        okr.Now(),
	})
}

func lastUpdateTime(settings okr.Settings) *time.Time {
	if settings.LastUpdate == nil || settings.LastUpdate.IsZero() {
		return nil
	}
	t := settings.LastUpdate.Time
	return &t
}
