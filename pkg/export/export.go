// Package export serializes tracker state to portable formats and
// reconciles imported documents against current state.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"tableflip.dev/okr/pkg/metrics"
	"tableflip.dev/okr/pkg/okr"
)

const (
	AppName       = "OKR Tracker"
	FormatVersion = "1.0"
)

var (
	// ErrUnsupportedFormat means an unknown export format was requested.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	// ErrInvalidFormat means an import document failed validation.
	ErrInvalidFormat = errors.New("export: invalid document format")
)

// Format selects an export representation.
type Format string

const (
	// FormatStructured is the JSON envelope with metadata and full data.
	FormatStructured Format = "structured"
	// FormatTabular is the flattened two-section CSV text form.
	FormatTabular Format = "tabular"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatStructured, FormatTabular:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Metadata describes an export envelope.
type Metadata struct {
	Version    string        `json:"version"`
	ExportDate okr.Timestamp `json:"exportDate"`
	AppName    string        `json:"appName"`
	BackupName string        `json:"backupName,omitempty"`
}

// Envelope is the structured export document.
type Envelope struct {
	Metadata Metadata  `json:"metadata"`
	Data     okr.State `json:"data"`
}

// NewEnvelope wraps a state snapshot for export. backupName is empty
// for ordinary exports and carries the snapshot name for backup files.
func NewEnvelope(state okr.State, backupName string) Envelope {
	return Envelope{
		Metadata: Metadata{
			Version:    FormatVersion,
			ExportDate: okr.Now(),
			AppName:    AppName,
			BackupName: backupName,
		},
		Data: state,
	}
}

// MarshalEnvelope renders an envelope as indented JSON.
func MarshalEnvelope(env Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}

// Export renders the state in the requested format.
func Export(state okr.State, format Format) ([]byte, error) {
	switch format {
	case FormatStructured:
		return MarshalEnvelope(NewEnvelope(state, ""))
	case FormatTabular:
		return exportTabular(state)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
}

var (
	objectiveHeader = []string{
		"id", "objective", "description", "status", "startDate", "endDate",
		"createdAt", "krIndex", "krDescription", "target", "current", "unit",
		"progress",
	}
	historyHeader = []string{"id", "action", "description", "progress", "date"}
)

// exportTabular writes two CSV sections separated by a blank line: one
// row per (objective, key result) pair, then one row per history entry.
func exportTabular(state okr.State) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(objectiveHeader); err != nil {
		return nil, err
	}
	for _, o := range state.Objectives {
		for i, kr := range o.KeyResults {
			row := []string{
				o.ID, o.Title, o.Description, string(o.Status),
				o.StartDate, o.EndDate, o.CreatedAt.String(),
				strconv.Itoa(i), kr.Description,
				formatFloat(kr.Target), formatFloat(kr.Current), kr.Unit,
				formatFloat(metrics.KeyResultProgress(kr)),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	buf.WriteString("\n")

	w = csv.NewWriter(&buf)
	if err := w.Write(historyHeader); err != nil {
		return nil, err
	}
	for _, h := range state.History {
		progress := ""
		if h.Progress != nil {
			progress = formatFloat(*h.Progress)
		}
		row := []string{h.ID, h.Action, h.Description, progress, h.Date.String()}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
