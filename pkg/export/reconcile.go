package export

import (
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/okr"
)

// Strategy governs how an imported document combines with existing
// state.
type Strategy string

const (
	// StrategyReplace discards current state and adopts the import.
	StrategyReplace Strategy = "replace"
	// StrategyMerge unions collections by id; current wins on
	// collision. Settings merge additively: max streak, summed points.
	StrategyMerge Strategy = "merge"
	// StrategyBackupAndReplace is replace with a snapshot of the
	// pre-import state taken first (the snapshot is the caller's job).
	StrategyBackupAndReplace Strategy = "backupAndReplace"
)

// ErrUnknownStrategy means the requested reconciliation strategy does
// not exist.
var ErrUnknownStrategy = errors.New("export: unknown reconciliation strategy")

// ParseStrategy maps a user-supplied name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyReplace, StrategyMerge, StrategyBackupAndReplace:
		return Strategy(s), nil
	}
	if s == "backup-and-replace" {
		return StrategyBackupAndReplace, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Reconcile combines incoming state with current state under the given
// strategy. It is pure: the inputs are not mutated and the result is
// complete, never partially applied.
func Reconcile(current, incoming okr.State, strategy Strategy) (okr.State, error) {
	switch strategy {
	case StrategyReplace, StrategyBackupAndReplace:
		out := incoming.Clone()
		out.Normalize()
		return out, nil
	case StrategyMerge:
		return merge(current, incoming), nil
	}
	return okr.State{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
}

func merge(current, incoming okr.State) okr.State {
	out := current.Clone()
	out.Normalize()

	seen := make(map[string]bool, len(out.Objectives))
	for _, o := range out.Objectives {
		seen[o.ID] = true
	}
	for _, o := range incoming.Objectives {
		if seen[o.ID] {
			continue
		}
		o.KeyResults = append([]okr.KeyResult(nil), o.KeyResults...)
		out.Objectives = append(out.Objectives, o)
		seen[o.ID] = true
	}

	haveEntry := make(map[string]bool, len(out.History))
	for _, h := range out.History {
		haveEntry[h.ID] = true
	}
	for _, h := range incoming.History {
		if haveEntry[h.ID] {
			continue
		}
		out.History = append(out.History, h)
		haveEntry[h.ID] = true
	}

	if incoming.Settings.Streak > out.Settings.Streak {
		out.Settings.Streak = incoming.Settings.Streak
	}
	out.Settings.TotalPoints += incoming.Settings.TotalPoints
	if later(incoming.Settings.LastUpdate, out.Settings.LastUpdate) {
		t := *incoming.Settings.LastUpdate
		out.Settings.LastUpdate = &t
	}
	return out
}

func later(a, b *okr.Timestamp) bool {
	if a == nil || a.IsZero() {
		return false
	}
	if b == nil || b.IsZero() {
		return true
	}
	return a.After(b.Time)
}
