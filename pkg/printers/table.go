package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/okr/pkg/metrics"
	"tableflip.dev/okr/pkg/okr"
)

const layoutISO = "2006-01-02"

// Summary prints the dashboard numbers.
func (pp *PrettyPrint) Summary(sum metrics.Summary) {
	table := uitable.New()
	table.AddRow("OBJECTIVES", "ACTIVE", "AVG PROGRESS", "STREAK", "POINTS")
	table.AddRow(
		fmt.Sprintf("%d", sum.TotalObjectives),
		fmt.Sprintf("%d", sum.ActiveObjectives),
		fmt.Sprintf("%d%%", sum.AvgProgress),
		fmt.Sprintf("%d days", sum.Streak),
		fmt.Sprintf("%d", sum.TotalPoints),
	)
	fmt.Println(table)
}

// Backups lists backups newest first.
func (pp *PrettyPrint) Backups(backups ...okr.Backup) {
	if len(backups) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("ID", "NAME", "CREATED", "OBJECTIVES")
	for _, b := range backups {
		table.AddRow(b.ID, b.Name, b.Timestamp.Local().Format(layoutISO), len(b.Data.Objectives))
	}
	fmt.Println(table)
}

// HistoryList prints audit entries newest first.
func (pp *PrettyPrint) HistoryList(entries ...okr.HistoryEntry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("DATE", "ACTION", "DESCRIPTION", "PROGRESS")
	for i := len(entries) - 1; i >= 0; i-- {
		h := entries[i]
		progress := ""
		if h.Progress != nil {
			progress = fmt.Sprintf("%.0f%%", *h.Progress)
		}
		table.AddRow(h.Date.Local().Format("2006-01-02 15:04"), h.Action, h.Description, progress)
	}
	fmt.Println(table)
}

// TrendChart prints the daily average progress series as a bar chart.
func (pp *PrettyPrint) TrendChart(series []metrics.DailyAverage) {
	f := color.New(color.Faint)
	for _, p := range series {
		mark := ""
		if p.Samples > 0 {
			mark = fmt.Sprintf(" (%d updates)", p.Samples)
		}
		fmt.Printf("%s %s %3.0f%%", p.Day.Format("01-02"), Bar(p.Average, 20), p.Average)
		_, _ = f.Println(mark)
	}
}

// Distribution prints achievement buckets with counts.
func (pp *PrettyPrint) Distribution(counts []int) {
	total := 0
	for _, c := range counts {
		total += c
	}
	for i, label := range metrics.DistributionBuckets {
		if i >= len(counts) {
			break
		}
		bar := ""
		if total > 0 {
			bar = strings.Repeat("█", counts[i]*20/total)
		}
		fmt.Printf("%8s %-20s %d\n", label, bar, counts[i])
	}
}

// Comparison prints a side-by-side peer comparison in the manner of
// the compare view.
func (pp *PrettyPrint) Comparison(mine, theirs metrics.Summary) {
	table := uitable.New()
	table.AddRow("", "YOU", "FRIEND")
	table.AddRow("Active objectives", mine.ActiveObjectives, theirs.ActiveObjectives)
	table.AddRow("Avg progress", fmt.Sprintf("%d%%", mine.AvgProgress), fmt.Sprintf("%d%%", theirs.AvgProgress))
	table.AddRow("Streak", mine.Streak, theirs.Streak)
	table.AddRow("Points", mine.TotalPoints, theirs.TotalPoints)
	fmt.Println(table)
}
