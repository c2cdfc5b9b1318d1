package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"tableflip.dev/okr/pkg/okr"
)

// ValidateCandidate checks that doc is an importable document: either a
// full export envelope ({metadata, data}) or a bare data object. The
// only structural requirement is an objectives array.
func ValidateCandidate(doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidFormat)
	}
	root := gjson.ParseBytes(doc)
	objectives := root.Get("data.objectives")
	if !objectives.Exists() {
		objectives = root.Get("objectives")
	}
	if !objectives.Exists() || !objectives.IsArray() {
		return fmt.Errorf("%w: missing objectives array", ErrInvalidFormat)
	}
	return nil
}

// ParseCandidate validates doc and decodes it into a state snapshot.
// Settings are zero when the document carries none.
func ParseCandidate(doc []byte) (okr.State, error) {
	var state okr.State
	if err := ValidateCandidate(doc); err != nil {
		return state, err
	}

	if gjson.GetBytes(doc, "data.objectives").Exists() {
		var env Envelope
		if err := json.Unmarshal(doc, &env); err != nil {
			return state, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		state = env.Data
	} else {
		if err := json.Unmarshal(doc, &state); err != nil {
			return state, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}
	state.Normalize()
	return state, nil
}

// ParseTabular is the best-effort inverse of the tabular export.
// Malformed rows are skipped rather than aborting the import; the
// skipped count is reported so the caller can tell the user.
func ParseTabular(r io.Reader) (okr.State, int, error) {
	var state okr.State
	state.Normalize()

	raw, err := io.ReadAll(r)
	if err != nil {
		return state, 0, err
	}

	sections := splitSections(raw)
	if len(sections) == 0 {
		return state, 0, fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}

	skipped := 0
	byID := map[string]int{} // objective id -> index in state.Objectives

	rows, bad := readRows(sections[0])
	skipped += bad
	for _, row := range rows {
		if isHeader(row, objectiveHeader) {
			continue
		}
		if len(row) != len(objectiveHeader) {
			skipped++
			continue
		}
		target, err1 := strconv.ParseFloat(row[9], 64)
		current, err2 := strconv.ParseFloat(row[10], 64)
		if row[0] == "" || err1 != nil || err2 != nil {
			skipped++
			continue
		}
		kr := okr.KeyResult{
			Description: row[8],
			Target:      target,
			Current:     current,
			Unit:        row[11],
		}
		idx, ok := byID[row[0]]
		if !ok {
			o := okr.Objective{
				ID:          row[0],
				Title:       row[1],
				Description: row[2],
				Status:      okr.Status(row[3]),
				StartDate:   row[4],
				EndDate:     row[5],
			}
			if t, err := okr.ParseTime(row[6]); err == nil {
				o.CreatedAt = okr.Timestamp{Time: t}
			}
			if !o.Status.Valid() {
				o.Status = okr.StatusActive
			}
			state.Objectives = append(state.Objectives, o)
			idx = len(state.Objectives) - 1
			byID[row[0]] = idx
		}
		state.Objectives[idx].KeyResults = append(state.Objectives[idx].KeyResults, kr)
	}

	if len(sections) > 1 {
		rows, bad := readRows(sections[1])
		skipped += bad
		for _, row := range rows {
			if isHeader(row, historyHeader) {
				continue
			}
			if len(row) != len(historyHeader) || row[0] == "" {
				skipped++
				continue
			}
			h := okr.HistoryEntry{ID: row[0], Action: row[1], Description: row[2]}
			if row[3] != "" {
				p, err := strconv.ParseFloat(row[3], 64)
				if err != nil {
					skipped++
					continue
				}
				h.Progress = &p
			}
			if t, err := okr.ParseTime(row[4]); err == nil {
				h.Date = okr.Timestamp{Time: t}
			}
			state.History = append(state.History, h)
		}
	}

	if len(state.Objectives) == 0 && len(state.History) == 0 && skipped > 0 {
		return state, skipped, fmt.Errorf("%w: no usable rows", ErrInvalidFormat)
	}
	return state, skipped, nil
}

// splitSections breaks the document on the first blank line separating
// the objective section from the history section.
func splitSections(raw []byte) [][]byte {
	normalized := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	parts := bytes.SplitN(normalized, []byte("\n\n"), 2)
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		if len(bytes.TrimSpace(p)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// readRows parses CSV rows one record at a time so a single malformed
// row is counted and skipped instead of failing the section.
func readRows(section []byte) ([][]string, int) {
	cr := csv.NewReader(bytes.NewReader(section))
	cr.FieldsPerRecord = -1
	var rows [][]string
	bad := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			bad++
			continue
		}
		rows = append(rows, row)
	}
	return rows, bad
}

func isHeader(row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i := range row {
		if !strings.EqualFold(row[i], header[i]) {
			return false
		}
	}
	return true
}
