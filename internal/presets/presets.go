// Package presets provides quick-start timetable templates.
package presets

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

// ErrUnknownTemplate is returned for an id that is not in the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

// Difficulty levels.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// Cell is one templated lesson.
type Cell struct {
	Day        grid.Day
	TimeSlotID string
	Position   lesson.DoublePosition
}

// Template is a named starting layout for a week.
type Template struct {
	ID          string
	Name        string
	Description string
	Pattern     string
	Difficulty  string
	BestFor     string
	Benefits    []string
	Cells       []Cell
}

func single(day grid.Day, id string) Cell { return Cell{Day: day, TimeSlotID: id} }

func pair(day grid.Day, top, bottom string) []Cell {
	return []Cell{
		{Day: day, TimeSlotID: top, Position: lesson.PositionTop},
		{Day: day, TimeSlotID: bottom, Position: lesson.PositionBottom},
	}
}

func cells(groups ...[]Cell) []Cell {
	var out []Cell
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var catalog = []Template{
	{
		ID:          "standard-mwf",
		Name:        "Standard Mon/Wed/Fri",
		Description: "Classic 3-day schedule with single lessons",
		Pattern:     "Even distribution",
		Difficulty:  Beginner,
		BestFor:     "New teachers, stable subjects",
		Benefits:    []string{"Consistent routine", "Easy to remember", "Good work-life balance"},
		Cells: []Cell{
			single(grid.Monday, "8:20"), single(grid.Monday, "9:00"),
			single(grid.Wednesday, "8:20"), single(grid.Wednesday, "9:00"),
			single(grid.Friday, "8:20"), single(grid.Friday, "9:00"),
		},
	},
	{
		ID:          "double-power",
		Name:        "Double Lesson Power",
		Description: "Intensive sessions for deep learning",
		Pattern:     "Double-heavy",
		Difficulty:  Intermediate,
		BestFor:     "Creative subjects, STEM projects",
		Benefits:    []string{"Extended learning time", "Perfect for projects", "Fewer transitions"},
		Cells: cells(
			pair(grid.Tuesday, "8:20", "9:00"),
			pair(grid.Thursday, "8:20", "9:00"),
		),
	},
	{
		ID:          "mixed-timing",
		Name:        "Mixed Day & Evening",
		Description: "Flexible schedule with evening sessions",
		Pattern:     "Flexible timing",
		Difficulty:  Advanced,
		BestFor:     "Adult education, part-time learners",
		Benefits:    []string{"Accommodates all students", "Flexible for working learners", "Diverse engagement times"},
		Cells: cells(
			[]Cell{
				single(grid.Monday, "9:00"),
				single(grid.Tuesday, "8:20"),
				single(grid.Wednesday, "16:20"),
			},
			pair(grid.Thursday, "8:20", "9:00"),
		),
	},
	{
		ID:          "front-loaded",
		Name:        "Front-loaded Week",
		Description: "Heavy start, lighter finish",
		Pattern:     "Early week focus",
		Difficulty:  Intermediate,
		BestFor:     "Intensive courses, exam preparation",
		Benefits:    []string{"High energy start", "Light weekend prep", "Review time later"},
		Cells: []Cell{
			single(grid.Monday, "7:40"), single(grid.Monday, "8:20"), single(grid.Monday, "9:00"),
			single(grid.Tuesday, "8:20"), single(grid.Tuesday, "9:00"),
			single(grid.Friday, "9:00"),
		},
	},
	{
		ID:          "balanced-spread",
		Name:        "Balanced Daily Spread",
		Description: "One lesson per day approach",
		Pattern:     "Daily consistency",
		Difficulty:  Beginner,
		BestFor:     "Language learning, daily practice subjects",
		Benefits:    []string{"Daily touchpoints", "Consistent rhythm", "Easy planning"},
		Cells: []Cell{
			single(grid.Monday, "9:00"), single(grid.Tuesday, "9:00"), single(grid.Wednesday, "9:00"),
			single(grid.Thursday, "9:00"), single(grid.Friday, "9:00"),
		},
	},
	{
		ID:          "intensive-burst",
		Name:        "Intensive Burst",
		Description: "Concentrated learning blocks",
		Pattern:     "Block intensive",
		Difficulty:  Advanced,
		BestFor:     "Workshop-style teaching, intensive courses",
		Benefits:    []string{"Deep focus time", "Immersive learning", "Fewer context switches"},
		Cells: cells(
			pair(grid.Tuesday, "8:20", "9:00"),
			pair(grid.Thursday, "8:20", "9:00"),
		),
	},
}

// All returns the templates in display order.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the template with id.
func Get(id string) (Template, error) {
	for _, t := range catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
}

// IDs returns the template ids in display order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, t := range catalog {
		ids[i] = t.ID
	}
	return ids
}

// Next returns the template after id, wrapping around. An unknown or empty id
// yields the first template.
func Next(id string) Template {
	for i, t := range catalog {
		if t.ID == id {
			return catalog[(i+1)%len(catalog)]
		}
	}
	return catalog[0]
}

// Build stamps subject onto every templated cell and returns the store.
// Each slot receives its own copy of the subject.
func (t Template) Build(subject *lesson.Subject) (lesson.Store, error) {
	slots := make([]lesson.Slot, 0, len(t.Cells))
	for _, c := range t.Cells {
		var subj *lesson.Subject
		if subject != nil {
			s := *subject
			subj = &s
		}
		sl, err := lesson.NewSlot(c.Day, c.TimeSlotID, subj)
		if err != nil {
			return lesson.Store{}, fmt.Errorf("template %s: %w", t.ID, err)
		}
		if c.Position != lesson.PositionNone {
			sl.IsDoubleLesson = true
			sl.DoublePosition = c.Position
		}
		slots = append(slots, sl)
	}
	return lesson.NewStore(slots...), nil
}

// Sessions returns how many sessions the template schedules.
func (t Template) Sessions() int {
	n := 0
	for _, c := range t.Cells {
		if c.Position != lesson.PositionBottom {
			n++
		}
	}
	return n
}
