package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/okr/pkg/app"
	"tableflip.dev/okr/pkg/metrics"
	"tableflip.dev/okr/pkg/printers"
)

// Report prints the progress trend and achievement distribution.
type Report struct {
	Days int

	Service *app.Service
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	days := n.Days
	if days <= 0 {
		days = 30
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(fmt.Sprintf("Progress (last %d days)", days))
	pp.TrendChart(metrics.DailyAverages(n.Service.History(), days, time.Now()))

	pp.NewLine()
	pp.Title("Achievement distribution")
	pp.Distribution(metrics.AchievementDistribution(n.Service.Objectives()))
	return nil
}
