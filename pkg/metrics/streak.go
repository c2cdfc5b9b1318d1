package metrics

import "time"

// NextStreak recomputes the consecutive-day update counter.
//
// No prior update means no streak. An update earlier today leaves the
// streak unchanged, which makes the recompute idempotent within a day;
// callers should still invoke it only once per observed "now" so the
// increment branch cannot fire twice. Exactly one calendar day since the
// last update extends the streak. Anything else, a gap of two or more
// days or a last update in the future, resets it.
func NextStreak(streak int, lastUpdate *time.Time, today time.Time) int {
	if lastUpdate == nil || lastUpdate.IsZero() {
		return 0
	}

	days := calendarDaysBetween(*lastUpdate, today)
	switch days {
	case 0:
		return streak
	case 1:
		return streak + 1
	default:
		return 0
	}
}

// calendarDaysBetween counts whole calendar days from a to b in local
// time. Negative when a is after b.
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	at := time.Date(ay, am, ad, 0, 0, 0, 0, time.Local)
	bt := time.Date(by, bm, bd, 0, 0, 0, 0, time.Local)
	return int(bt.Sub(at).Hours() / 24)
}
