package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/okr/pkg/okr"
)

func sampleState() okr.State {
	p := 50.0
	created := okr.Timestamp{Time: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)}
	return okr.State{
		Objectives: []okr.Objective{
			{
				ID:    "okr_1_aaaaaaaaa",
				Title: "Ship the beta",
				KeyResults: []okr.KeyResult{
					{Description: "close blockers", Target: 12, Current: 6},
					{Description: "beta signups", Target: 500, Current: 120, Unit: "users"},
				},
				Status:    okr.StatusActive,
				CreatedAt: created,
			},
			{
				ID:         "okr_2_bbbbbbbbb",
				Title:      "Get faster",
				KeyResults: []okr.KeyResult{{Description: "run a 5k", Target: 5, Current: 5, Unit: "km"}},
				Status:     okr.StatusCompleted,
				CreatedAt:  created,
			},
		},
		History: []okr.HistoryEntry{
			{ID: "okr_3_ccccccccc", Action: "KR updated", Description: "Updated", Progress: &p, Date: created},
		},
		Settings: okr.Settings{Streak: 2, TotalPoints: 70},
	}
}

func TestExportStructuredEnvelope(t *testing.T) {
	doc, err := Export(sampleState(), FormatStructured)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Metadata.AppName != AppName || env.Metadata.Version != FormatVersion {
		t.Errorf("metadata = %+v", env.Metadata)
	}
	if env.Metadata.ExportDate.IsZero() {
		t.Errorf("expected export date")
	}
	if len(env.Data.Objectives) != 2 {
		t.Fatalf("got %d objectives, want 2", len(env.Data.Objectives))
	}
	// The original browser field name survives the round trip.
	if !bytes.Contains(doc, []byte(`"objective": "Ship the beta"`)) {
		t.Errorf("title should serialize under the objective key")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if _, err := Export(okr.State{}, Format("xml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestTabularRoundTrip(t *testing.T) {
	state := sampleState()
	doc, err := Export(state, FormatTabular)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	back, skipped, err := ParseTabular(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped %d rows of a clean document", skipped)
	}
	if len(back.Objectives) != 2 {
		t.Fatalf("got %d objectives, want 2", len(back.Objectives))
	}
	o := back.Objectives[0]
	if o.ID != "okr_1_aaaaaaaaa" || o.Title != "Ship the beta" || len(o.KeyResults) != 2 {
		t.Fatalf("objective mangled: %+v", o)
	}
	if o.KeyResults[1].Unit != "users" || o.KeyResults[1].Target != 500 {
		t.Fatalf("key result mangled: %+v", o.KeyResults[1])
	}
	if len(back.History) != 1 || back.History[0].Progress == nil || *back.History[0].Progress != 50 {
		t.Fatalf("history mangled: %+v", back.History)
	}
}

func TestParseTabularSkipsMalformedRows(t *testing.T) {
	doc := strings.Join([]string{
		"id,objective,description,status,startDate,endDate,createdAt,krIndex,krDescription,target,current,unit,progress",
		`okr_1_aaaaaaaaa,Good,,active,,,2026-08-01T09:00:00Z,0,kr one,10,5,,50`,
		`okr_2_bbbbbbbbb,Bad target,,active,,,2026-08-01T09:00:00Z,0,kr,not-a-number,5,,0`,
		"too,short",
		"",
		"id,action,description,progress,date",
		`okr_3_ccccccccc,KR updated,ok,75,2026-08-02T09:00:00Z`,
		`okr_4_ddddddddd,KR updated,bad progress,seventy,2026-08-02T09:00:00Z`,
	}, "\n")

	state, skipped, err := ParseTabular(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 3 {
		t.Fatalf("skipped = %d, want 3", skipped)
	}
	if len(state.Objectives) != 1 || state.Objectives[0].ID != "okr_1_aaaaaaaaa" {
		t.Fatalf("objectives = %+v", state.Objectives)
	}
	if len(state.History) != 1 || state.History[0].ID != "okr_3_ccccccccc" {
		t.Fatalf("history = %+v", state.History)
	}
}

func TestParseTabularAllRowsBad(t *testing.T) {
	doc := "id,objective,description,status,startDate,endDate,createdAt,krIndex,krDescription,target,current,unit,progress\n" +
		"nope,row\n"
	if _, _, err := ParseTabular(strings.NewReader(doc)); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("got %v, want ErrInvalidFormat", err)
	}
}

func TestValidateCandidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"envelope", `{"metadata":{},"data":{"objectives":[]}}`, false},
		{"bare state", `{"objectives":[],"history":[]}`, false},
		{"objectives not an array", `{"objectives":{"a":1}}`, true},
		{"unrelated object", `{"foo":1}`, true},
		{"not json", `{"objectives":`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCandidate([]byte(tc.doc))
			if tc.wantErr && !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("got %v, want ErrInvalidFormat", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseCandidateEnvelopeAndBare(t *testing.T) {
	doc, err := Export(sampleState(), FormatStructured)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	fromEnvelope, err := ParseCandidate(doc)
	if err != nil {
		t.Fatalf("parse envelope: %v", err)
	}
	if len(fromEnvelope.Objectives) != 2 || fromEnvelope.Settings.TotalPoints != 70 {
		t.Fatalf("envelope decode mangled: %+v", fromEnvelope.Settings)
	}

	bare, err := json.Marshal(sampleState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fromBare, err := ParseCandidate(bare)
	if err != nil {
		t.Fatalf("parse bare: %v", err)
	}
	if len(fromBare.Objectives) != 2 {
		t.Fatalf("bare decode mangled: %d objectives", len(fromBare.Objectives))
	}
}
