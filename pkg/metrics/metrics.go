// Package metrics computes derived progress numbers from in-memory state.
// Everything here is pure; nothing suspends or touches storage.
package metrics

import (
	"tableflip.dev/okr/pkg/okr"
)

// KeyResultProgress is current/target as a percentage. A missing or
// non-positive target yields 0 rather than an error, guarding the
// division. The result is not clamped; overshoot past 100 is visible
// per key result.
func KeyResultProgress(kr okr.KeyResult) float64 {
	if kr.Target <= 0 {
		return 0
	}
	return kr.Current / kr.Target * 100
}

// ObjectiveProgress is the mean of per-key-result progress, capped at
// 100. An objective with no key results has progress 0.
func ObjectiveProgress(o okr.Objective) float64 {
	if len(o.KeyResults) == 0 {
		return 0
	}
	total := 0.0
	for _, kr := range o.KeyResults {
		total += KeyResultProgress(kr)
	}
	avg := total / float64(len(o.KeyResults))
	if avg > 100 {
		return 100
	}
	return avg
}

// AverageProgress is the mean of objective progress across all
// objectives, 0 when there are none.
func AverageProgress(objectives []okr.Objective) float64 {
	if len(objectives) == 0 {
		return 0
	}
	total := 0.0
	for _, o := range objectives {
		total += ObjectiveProgress(o)
	}
	return total / float64(len(objectives))
}
