package okr

// Status is the lifecycle state of an objective. It only changes by
// explicit user action, never automatically.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused, StatusCancelled:
		return true
	}
	return false
}

// Label returns a display label for the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	case StatusPaused:
		return "Paused"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// KeyResult is a quantitative measure of progress toward an objective.
// Target must be positive; Current is conceptually within [0, Target] but
// not enforced on write. BonusAwarded records that the one-time completion
// bonus has been granted for this key result.
type KeyResult struct {
	Description  string  `json:"description"`
	Target       float64 `json:"target"`
	Current      float64 `json:"current"`
	Unit         string  `json:"unit,omitempty"`
	BonusAwarded bool    `json:"bonusAwarded,omitempty"`
}

// Objective is a goal the user is pursuing, decomposed into key results.
// KeyResults keeps insertion order; the order is display-significant.
type Objective struct {
	ID          string      `json:"id"`
	Title       string      `json:"objective"`
	Description string      `json:"description,omitempty"`
	StartDate   string      `json:"startDate,omitempty"`
	EndDate     string      `json:"endDate,omitempty"`
	KeyResults  []KeyResult `json:"keyResults"`
	Status      Status      `json:"status"`
	CreatedAt   Timestamp   `json:"createdAt"`
}

func New(title, description string, krs ...KeyResult) *Objective {
	return &Objective{
		ID:          GenerateID(),
		Title:       title,
		Description: description,
		KeyResults:  krs,
		Status:      StatusActive,
		CreatedAt:   Now(),
	}
}

// HistoryEntry is an immutable audit record appended on every mutating
// action. Entries are never edited or deleted individually, only
// bulk-replaced when an import runs in replace mode.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Progress    *float64  `json:"progress,omitempty"`
	Date        Timestamp `json:"date"`
}

// Settings is the fixed set of tracked scalars. It is a struct rather
// than a key/value bag so unknown names are rejected at the persistence
// boundary.
type Settings struct {
	Streak      int        `json:"streak"`
	TotalPoints int        `json:"totalPoints"`
	LastUpdate  *Timestamp `json:"lastUpdate,omitempty"`
}

// State is the full in-memory snapshot unit: everything that gets
// persisted, backed up, exported, and reconciled.
type State struct {
	Objectives []Objective    `json:"objectives"`
	History    []HistoryEntry `json:"history"`
	Settings   Settings       `json:"settings"`
}

// Backup is a named full snapshot of a State, distinct from the routine
// autosave mirror.
type Backup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp Timestamp `json:"timestamp"`
	Data      State     `json:"data"`
}

// Find returns the objective with the given id, or nil.
func (s *State) Find(id string) *Objective {
	for i := range s.Objectives {
		if s.Objectives[i].ID == id {
			return &s.Objectives[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state, safe to hold across later
// mutations of the original.
func (s State) Clone() State {
	out := State{Settings: s.Settings}
	out.Objectives = make([]Objective, len(s.Objectives))
	for i, o := range s.Objectives {
		o.KeyResults = append([]KeyResult(nil), o.KeyResults...)
		out.Objectives[i] = o
	}
	out.History = append([]HistoryEntry(nil), s.History...)
	if s.Settings.LastUpdate != nil {
		t := *s.Settings.LastUpdate
		out.Settings.LastUpdate = &t
	}
	return out
}

// Normalize fills nil collections so callers can range without checks.
func (s *State) Normalize() {
	if s.Objectives == nil {
		s.Objectives = []Objective{}
	}
	if s.History == nil {
		s.History = []HistoryEntry{}
	}
}
