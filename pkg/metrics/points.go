package metrics

import "tableflip.dev/okr/pkg/okr"

const (
	// UpdatePoints is granted for any key-result update recording a
	// value above zero.
	UpdatePoints = 10
	// CompletionBonus is granted the first time a key result reaches
	// 100% progress. It is awarded at most once per key result.
	CompletionBonus = 50
)

// AwardPoints computes the points earned by setting kr's current value
// to newValue, and reports whether the one-time completion bonus fired.
// The caller owns applying the returned bonus flag back onto the key
// result so later updates past 100% do not re-award it.
func AwardPoints(kr okr.KeyResult, newValue float64) (points int, bonus bool) {
	if newValue > 0 {
		points += UpdatePoints
	}
	updated := kr
	updated.Current = newValue
	if !kr.BonusAwarded && KeyResultProgress(updated) >= 100 {
		points += CompletionBonus
		bonus = true
	}
	return points, bonus
}
