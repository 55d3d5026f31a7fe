package presets

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/timetabler/internal/analytics"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

var english = &lesson.Subject{ID: 2, Name: "English", Code: "ENG", Color: "#ef4444"}

func TestTemplatesAreConsistent(t *testing.T) {
	for _, tmpl := range All() {
		t.Run(tmpl.ID, func(t *testing.T) {
			s, err := tmpl.Build(english)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if s.Len() != len(tmpl.Cells) {
				t.Errorf("slots = %d, want %d", s.Len(), len(tmpl.Cells))
			}
			if c := lesson.Conflicts(s); len(c) != 0 {
				t.Errorf("conflicts = %v", c)
			}
			if o := lesson.OrphanedDoubles(s); len(o) != 0 {
				t.Errorf("orphaned doubles = %v", o)
			}
			if got := analytics.Compute(s, time.Now()).TotalSessions; got != tmpl.Sessions() {
				t.Errorf("sessions = %d, want %d", got, tmpl.Sessions())
			}
		})
	}
}

func TestTemplatePatterns(t *testing.T) {
	tests := []struct {
		id      string
		pattern string
		hours   float64
	}{
		{"standard-mwf", analytics.PatternBalanced, 4},
		{"mixed-timing", analytics.PatternMixed, 3.3},
		{"front-loaded", analytics.PatternCustom, 4},
		{"balanced-spread", analytics.PatternBalanced, 3.3},
		{"intensive-burst", analytics.PatternConcentrated, 2.7},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tmpl, err := Get(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			s, _ := tmpl.Build(english)
			a := analytics.Compute(s, time.Now())
			if a.PatternType != tt.pattern {
				t.Errorf("pattern = %q, want %q", a.PatternType, tt.pattern)
			}
			if a.TotalHours != tt.hours {
				t.Errorf("hours = %v, want %v", a.TotalHours, tt.hours)
			}
		})
	}
}

func TestBuild_CopiesSubject(t *testing.T) {
	tmpl, _ := Get("standard-mwf")
	s, _ := tmpl.Build(english)
	slots := s.Slots()
	if slots[0].Subject == english {
		t.Error("slot shares the caller's subject pointer")
	}
	if slots[0].Subject.Code != "ENG" {
		t.Errorf("subject = %+v", slots[0].Subject)
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("weekend-warrior"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestNext_Wraps(t *testing.T) {
	ids := IDs()
	if Next("").ID != ids[0] {
		t.Error("empty id should start at the first template")
	}
	if Next(ids[len(ids)-1]).ID != ids[0] {
		t.Error("last template should wrap to the first")
	}
	if Next(ids[0]).ID != ids[1] {
		t.Error("expected the second template")
	}
}
