package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/okr/pkg/app"
)

// ObjectiveOptions captures the flags for creating an objective.
type ObjectiveOptions struct {
	Description string
	StartDate   string
	EndDate     string
	KeyResults  []string
}

// AddObjectiveArgs wires objective creation flags onto cmd.
func AddObjectiveArgs(cmd *cobra.Command, o *ObjectiveOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Describe the objective.")
	cmd.Flags().StringVar(&o.StartDate, "start", "",
		"Start date (YYYY-MM-DD).")
	cmd.Flags().StringVar(&o.EndDate, "end", "",
		"End date (YYYY-MM-DD).")
	cmd.Flags().StringArrayVarP(&o.KeyResults, "kr", "k", nil,
		`Key result as "description=target[:unit]". Repeatable; at least one required.`)
}

// ParseKeyResults turns the --kr flag values into key result specs.
func ParseKeyResults(raw []string) ([]app.KeyResultSpec, error) {
	if len(raw) == 0 {
		return nil, errors.New("at least one --kr is required")
	}
	out := make([]app.KeyResultSpec, 0, len(raw))
	for _, kr := range raw {
		desc, rest, found := strings.Cut(kr, "=")
		if !found || strings.TrimSpace(desc) == "" {
			return nil, fmt.Errorf("invalid key result %q, expected \"description=target[:unit]\"", kr)
		}
		targetPart, unit, _ := strings.Cut(rest, ":")
		target, err := strconv.ParseFloat(strings.TrimSpace(targetPart), 64)
		if err != nil || target <= 0 {
			return nil, fmt.Errorf("invalid target in %q, expected a positive number", kr)
		}
		out = append(out, app.KeyResultSpec{
			Description: strings.TrimSpace(desc),
			Target:      target,
			Unit:        strings.TrimSpace(unit),
		})
	}
	return out, nil
}
