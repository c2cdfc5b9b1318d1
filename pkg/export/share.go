package export

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/okr/pkg/metrics"
	"tableflip.dev/okr/pkg/okr"
)

// ErrInvalidShareCode means a peer-comparison code could not be
// decoded.
var ErrInvalidShareCode = errors.New("export: invalid share code")

// ShareData is the coarse summary exchanged with a peer. The encoding
// is reversible plain text, not cryptographic; it is meant to be pasted
// out of band and decoded by another instance of the application.
type ShareData struct {
	metrics.Summary
	Timestamp okr.Timestamp `json:"timestamp"`
}

// EncodeShareCode produces the peer-comparison code for a state.
func EncodeShareCode(state okr.State) (string, error) {
	data := ShareData{Summary: metrics.Summarize(state), Timestamp: okr.Now()}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeShareCode reverses EncodeShareCode.
func DecodeShareCode(code string) (ShareData, error) {
	var data ShareData
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return data, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	return data, nil
}

// Verdict is the outcome of a peer comparison on points.
type Verdict int

const (
	VerdictBehind Verdict = iota - 1
	VerdictTied
	VerdictAhead
)

// Compare ranks mine against theirs by total points.
func Compare(mine, theirs metrics.Summary) Verdict {
	switch {
	case mine.TotalPoints > theirs.TotalPoints:
		return VerdictAhead
	case mine.TotalPoints < theirs.TotalPoints:
		return VerdictBehind
	}
	return VerdictTied
}
