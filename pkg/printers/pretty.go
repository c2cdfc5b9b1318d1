package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/okr/pkg/metrics"
	"tableflip.dev/okr/pkg/okr"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("okr_1756700000000_a1b2c3d4e  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// Objectives prints each objective with its progress and key results.
func (pp *PrettyPrint) Objectives(objectives ...okr.Objective) {
	if len(objectives) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	for i := range objectives {
		pp.Objective(&objectives[i])
	}
}

// Objective prints one objective card: title line, status, then one
// line per key result with a progress bar.
func (pp *PrettyPrint) Objective(o *okr.Objective) {
	t := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	if pp.ShowID {
		_, _ = y.Print(o.ID)
		_, _ = y.Print(strings.Repeat(" ", max(1, len(spacing)-len(o.ID))))
	}
	_, _ = t.Printf("%s", o.Title)
	_, _ = f.Printf("  [%s]  %.0f%%\n", o.Status.Label(), metrics.ObjectiveProgress(*o))

	for _, kr := range o.KeyResults {
		indent := "  "
		if pp.ShowID {
			indent = spacing + "  "
		}
		unit := kr.Unit
		if unit != "" {
			unit = " " + unit
		}
		fmt.Printf("%s%s %s %v/%v%s (%.0f%%)\n",
			indent, Bar(metrics.KeyResultProgress(kr), 10),
			kr.Description, kr.Current, kr.Target, unit,
			metrics.KeyResultProgress(kr))
	}
	fmt.Println("")
}

// Bar renders a fixed-width progress bar; values past 100 stay full.
func Bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}
