package persist

import (
	"time"

	"github.com/javiermolinar/timetabler/internal/lesson"
)

// Timetable is everything the coordinator persists for one scheduling session.
type Timetable struct {
	ID                string
	Name              string
	Description       string
	Subject           *lesson.Subject
	SchemeID          string
	Slots             lesson.Store
	SelectedTopics    []int
	SelectedSubtopics []int
	SchemeMetadata    map[string]any
}

// Clone returns a copy that shares no mutable state with t.
func (t Timetable) Clone() Timetable {
	out := t
	if t.Subject != nil {
		s := *t.Subject
		out.Subject = &s
	}
	out.Slots = t.Slots.Clone()
	out.SelectedTopics = append([]int(nil), t.SelectedTopics...)
	out.SelectedSubtopics = append([]int(nil), t.SelectedSubtopics...)
	if t.SchemeMetadata != nil {
		out.SchemeMetadata = make(map[string]any, len(t.SchemeMetadata))
		for k, v := range t.SchemeMetadata {
			out.SchemeMetadata[k] = v
		}
	}
	return out
}

// Summary is one entry of a remote timetable listing.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SubjectID int       `json:"subject_id"`
	Slots     int       `json:"slot_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status is a point-in-time view of the coordinator.
type Status struct {
	State        State
	ID           string
	LastSaveTime time.Time
	LastErr      error
}

// Result reports the outcome of an explicit save, load or delete.
// Failures are carried in Err; they are never raised as panics.
type Result struct {
	State State
	ID    string
	// Fallback is true when the snapshot was written to the local cache after
	// a failed remote save.
	Fallback bool
	Message  string
	Err      error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
