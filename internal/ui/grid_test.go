package ui

import (
	"strings"
	"testing"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

var chem = &lesson.Subject{ID: 7, Name: "Chemistry", Code: "CHE"}

func slot(t *testing.T, day grid.Day, id string, pos lesson.DoublePosition) lesson.Slot {
	t.Helper()
	s, err := lesson.NewSlot(day, id, chem)
	if err != nil {
		t.Fatalf("NewSlot(%s, %s): %v", day, id, err)
	}
	if pos != "" {
		s.IsDoubleLesson = true
		s.DoublePosition = pos
	}
	return s
}

func rowFor(t *testing.T, out, label string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " "), label) {
			return line
		}
	}
	t.Fatalf("no row for %s in:\n%s", label, out)
	return ""
}

func TestRenderGrid(t *testing.T) {
	s := lesson.NewStore(
		slot(t, grid.Monday, "8:20", lesson.PositionTop),
		slot(t, grid.Monday, "9:00", lesson.PositionBottom),
		slot(t, grid.Tuesday, "16:20", ""),
		slot(t, grid.Wednesday, "7:00", ""),
		slot(t, grid.Wednesday, "7:00", ""),
	)

	out := renderGrid(s, wideCellWidth, false)

	header := strings.Split(out, "\n")[0]
	if !strings.HasPrefix(header, strings.Repeat(" ", timeColumnWidth)+"MON") {
		t.Errorf("header = %q", header)
	}

	tests := []struct {
		label string
		want  []string
	}{
		{"8:20", []string{"CHE ┐"}},
		{"9:00", []string{"CHE ┘"}},
		{"16:20 *", []string{"·", "CHE"}},
		{"7:00", []string{"·", "!! x2"}},
	}
	for _, tt := range tests {
		row := rowFor(t, out, tt.label)
		for _, w := range tt.want {
			if !strings.Contains(row, w) {
				t.Errorf("row %s = %q, want it to contain %q", tt.label, row, w)
			}
		}
	}

	if got := len(strings.Split(strings.TrimRight(out, "\n"), "\n")); got != 1+len(grid.TimeSlots()) {
		t.Errorf("rows = %d, want %d", got, 1+len(grid.TimeSlots()))
	}
}

func TestFormatGrid_Legend(t *testing.T) {
	out := FormatGrid(lesson.NewStore())
	if !strings.HasSuffix(out, "* evening session   ┐┘ double lesson   !! conflict\n") {
		t.Errorf("missing legend:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("export output should not contain escape codes")
	}
}

func TestSubjectLabel(t *testing.T) {
	tests := []struct {
		name string
		subj *lesson.Subject
		want string
	}{
		{"nil", nil, "•"},
		{"code", &lesson.Subject{Code: "PHY", Name: "Physics"}, "PHY"},
		{"name", &lesson.Subject{Name: "biology"}, "BIO"},
		{"short name", &lesson.Subject{Name: "pe"}, "PE"},
		{"empty", &lesson.Subject{}, "•"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := subjectLabel(tt.subj); got != tt.want {
				t.Errorf("subjectLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 6, "much …"},
		{"abc", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[░░░░░░░░░░]"},
		{50, "[█████░░░░░]"},
		{100, "[██████████]"},
		{150, "[██████████]"},
		{-5, "[░░░░░░░░░░]"},
	}
	for _, tt := range tests {
		if got := Bar(tt.pct, 10); got != tt.want {
			t.Errorf("Bar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
