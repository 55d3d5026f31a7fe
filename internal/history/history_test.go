package history

import (
	"testing"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

var subject = &lesson.Subject{ID: 1, Name: "Physics", Code: "PHY", Color: "#10b981"}

// build returns a store with n lessons filling the grid day by day.
func build(t *testing.T, n int) lesson.Store {
	t.Helper()
	s := lesson.NewStore()
	for i := 0; i < n; i++ {
		ts, ok := grid.ByPeriod(i%len(grid.TimeSlots()) + 1)
		if !ok {
			t.Fatalf("no time slot for period %d", i)
		}
		day := grid.Days()[i/len(grid.TimeSlots())]
		sl, err := lesson.NewSlot(day, ts.ID, subject)
		if err != nil {
			t.Fatalf("NewSlot: %v", err)
		}
		s = s.Add(sl)
	}
	return s
}

func TestManager_Initial(t *testing.T) {
	m := New(lesson.NewStore())
	if m.State() != StateInitial {
		t.Errorf("state = %s, want initial", m.State())
	}
	if m.CanUndo() || m.CanRedo() {
		t.Error("fresh manager should not undo or redo")
	}
	if _, ok := m.Undo(); ok {
		t.Error("Undo on fresh manager should be a no-op")
	}
	if _, ok := m.Redo(); ok {
		t.Error("Redo on fresh manager should be a no-op")
	}
	if !m.Current().IsEmpty() {
		t.Error("baseline should be empty")
	}
}

func TestManager_UndoToEmpty(t *testing.T) {
	m := New(lesson.NewStore())
	for k := 1; k <= DefaultMaxUndo; k++ {
		m.Record(build(t, k))
	}
	if m.State() != StateAtHead {
		t.Fatalf("state = %s, want at-head", m.State())
	}

	for k := DefaultMaxUndo - 1; k >= 0; k-- {
		got, ok := m.Undo()
		if !ok {
			t.Fatalf("undo to %d lessons failed", k)
		}
		if got.Len() != k {
			t.Fatalf("after undo len = %d, want %d", got.Len(), k)
		}
	}
	if m.CanUndo() {
		t.Error("expected to be at the baseline")
	}
	if m.State() != StateRewound {
		t.Errorf("state = %s, want rewound", m.State())
	}
}

func TestManager_RedoRestores(t *testing.T) {
	m := New(lesson.NewStore())
	m.Record(build(t, 1))
	m.Record(build(t, 2))
	m.Record(build(t, 3))

	m.Undo()
	m.Undo()
	got, ok := m.Redo()
	if !ok || got.Len() != 2 {
		t.Fatalf("redo = %d lessons, %v; want 2", got.Len(), ok)
	}
	got, ok = m.Redo()
	if !ok || got.Len() != 3 {
		t.Fatalf("redo = %d lessons, %v; want 3", got.Len(), ok)
	}
	if _, ok := m.Redo(); ok {
		t.Error("redo past head should be a no-op")
	}
}

func TestManager_RecordDropsRedoBranch(t *testing.T) {
	m := New(lesson.NewStore())
	m.Record(build(t, 1))
	m.Record(build(t, 2))
	m.Undo()

	m.Record(build(t, 5))
	if m.CanRedo() {
		t.Error("recording after undo should discard redo entries")
	}
	if m.Len() != 3 {
		t.Errorf("len = %d, want 3", m.Len())
	}
	if got := m.Current(); got.Len() != 5 {
		t.Errorf("current len = %d, want 5", got.Len())
	}
}

func TestManager_EvictsOldest(t *testing.T) {
	m := New(lesson.NewStore())
	for k := 1; k <= DefaultMaxUndo+1; k++ {
		m.Record(build(t, k))
	}
	if m.Len() != DefaultMaxUndo+1 {
		t.Fatalf("len = %d, want %d", m.Len(), DefaultMaxUndo+1)
	}

	var last lesson.Store
	undos := 0
	for {
		s, ok := m.Undo()
		if !ok {
			break
		}
		last = s
		undos++
	}
	if undos != DefaultMaxUndo {
		t.Errorf("undos = %d, want %d", undos, DefaultMaxUndo)
	}
	if last.IsEmpty() {
		t.Error("empty baseline should have been evicted")
	}
	if last.Len() != 1 {
		t.Errorf("oldest reachable len = %d, want 1", last.Len())
	}
}

func TestManager_SnapshotsAreCopies(t *testing.T) {
	s := build(t, 1)
	m := New(lesson.NewStore())
	m.Record(s)

	cur := m.Current()
	slots := cur.Slots()
	slots[0].Subject.Name = "changed"

	again := m.Current()
	if got := again.Slots()[0].Subject.Name; got != "Physics" {
		t.Errorf("snapshot aliased caller data: subject = %q", got)
	}
}

func TestManager_Reset(t *testing.T) {
	m := New(lesson.NewStore())
	m.Record(build(t, 1))
	m.Record(build(t, 2))

	m.Reset(build(t, 4))
	if m.State() != StateInitial {
		t.Errorf("state = %s, want initial", m.State())
	}
	if m.CanUndo() {
		t.Error("reset should clear undo history")
	}
	if m.Current().Len() != 4 {
		t.Errorf("baseline len = %d, want 4", m.Current().Len())
	}
}

func TestWithMaxUndo(t *testing.T) {
	m := New(lesson.NewStore(), WithMaxUndo(2))
	m.Record(build(t, 1))
	m.Record(build(t, 2))
	m.Record(build(t, 3))

	if m.Len() != 3 {
		t.Fatalf("len = %d, want 3", m.Len())
	}
	m.Undo()
	got, _ := m.Undo()
	if got.Len() != 1 {
		t.Errorf("oldest len = %d, want 1", got.Len())
	}
}
