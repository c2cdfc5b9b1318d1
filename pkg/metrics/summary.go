package metrics

import (
	"math"
	"time"

	"tableflip.dev/okr/pkg/okr"
)

// Summary is the aggregate view shown on the dashboard and shared in
// peer-comparison codes.
type Summary struct {
	TotalObjectives  int `json:"totalOKRs"`
	ActiveObjectives int `json:"activeOKRs"`
	AvgProgress      int `json:"avgProgress"`
	Streak           int `json:"streak"`
	TotalPoints      int `json:"totalPoints"`
}

// Summarize computes the aggregate stats for a state. AvgProgress is
// rounded to a whole percentage.
func Summarize(s okr.State) Summary {
	active := 0
	for _, o := range s.Objectives {
		if o.Status == okr.StatusActive {
			active++
		}
	}
	return Summary{
		TotalObjectives:  len(s.Objectives),
		ActiveObjectives: active,
		AvgProgress:      int(math.Round(AverageProgress(s.Objectives))),
		Streak:           s.Settings.Streak,
		TotalPoints:      s.Settings.TotalPoints,
	}
}

// DailyAverage is one point of the progress trend series.
type DailyAverage struct {
	Day     time.Time
	Average float64
	Samples int
}

// DailyAverages derives a trend series from history progress snapshots:
// one point per calendar day over the trailing days window, ending
// today. Days without any recorded progress carry forward the previous
// day's average with zero samples.
func DailyAverages(history []okr.HistoryEntry, days int, today time.Time) []DailyAverage {
	if days <= 0 {
		return nil
	}
	out := make([]DailyAverage, 0, days)
	prev := 0.0
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		total := 0.0
		n := 0
		for _, h := range history {
			if h.Progress == nil || !h.Date.SameDay(day) {
				continue
			}
			total += *h.Progress
			n++
		}
		avg := prev
		if n > 0 {
			avg = total / float64(n)
		}
		out = append(out, DailyAverage{Day: day, Average: avg, Samples: n})
		prev = avg
	}
	return out
}

// DistributionBuckets labels the achievement distribution, lowest first.
var DistributionBuckets = []string{"0-25%", "25-50%", "50-75%", "75-100%", "100%"}

// AchievementDistribution buckets objectives by progress. The final
// bucket counts only fully achieved objectives.
func AchievementDistribution(objectives []okr.Objective) []int {
	counts := make([]int, len(DistributionBuckets))
	for _, o := range objectives {
		p := ObjectiveProgress(o)
		switch {
		case p >= 100:
			counts[4]++
		case p >= 75:
			counts[3]++
		case p >= 50:
			counts[2]++
		case p >= 25:
			counts[1]++
		default:
			counts[0]++
		}
	}
	return counts
}
