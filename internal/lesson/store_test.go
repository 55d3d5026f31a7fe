package lesson

import (
	"errors"
	"slices"
	"testing"

	"github.com/javiermolinar/timetabler/internal/grid"
)

var mathSubject = &Subject{ID: 1, Name: "Mathematics", Code: "MAT", Color: "#3b82f6"}

func mustSlot(t *testing.T, day grid.Day, id string) Slot {
	t.Helper()
	s, err := NewSlot(day, id, mathSubject)
	if err != nil {
		t.Fatalf("NewSlot(%s, %s): %v", day, id, err)
	}
	return s
}

func coord(day grid.Day, id string) grid.Coordinate {
	return grid.Coordinate{Day: day, TimeSlotID: id}
}

func TestNewSlot(t *testing.T) {
	s := mustSlot(t, grid.Friday, "16:20")
	if s.Period != 15 {
		t.Errorf("period = %d, want 15", s.Period)
	}
	if !s.IsEvening {
		t.Error("expected 16:20 to be an evening slot")
	}
	if s.Subject == nil || s.Subject.Code != "MAT" {
		t.Errorf("subject = %+v", s.Subject)
	}

	_, err := NewSlot(grid.Monday, "6:00", nil)
	if !errors.Is(err, ErrUnknownCoordinate) {
		t.Errorf("expected ErrUnknownCoordinate, got %v", err)
	}
}

func TestStore_AddKeepsPreviousValue(t *testing.T) {
	empty := NewStore()
	one := empty.Add(mustSlot(t, grid.Monday, "8:20"))

	if !empty.IsEmpty() {
		t.Fatal("Add mutated the original store")
	}
	if one.Len() != 1 {
		t.Fatalf("len = %d, want 1", one.Len())
	}
}

func TestStore_AddDuplicateCoexists(t *testing.T) {
	s := NewStore().
		Add(mustSlot(t, grid.Monday, "8:20")).
		Add(mustSlot(t, grid.Monday, "8:20"))
	if s.Len() != 2 {
		t.Fatalf("len = %d, want both slots kept", s.Len())
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore().
		Add(mustSlot(t, grid.Monday, "8:20")).
		Add(mustSlot(t, grid.Tuesday, "8:20"))

	next, removed := s.Remove(grid.Monday, "8:20")
	if !removed {
		t.Fatal("expected slot to be removed")
	}
	if next.Occupied(grid.Monday, "8:20") {
		t.Error("slot still present")
	}
	if !next.Occupied(grid.Tuesday, "8:20") {
		t.Error("unrelated slot removed")
	}
	if s.Len() != 2 {
		t.Error("Remove mutated the original store")
	}

	same, removed := next.Remove(grid.Friday, "7:00")
	if removed {
		t.Error("expected removing an empty cell to report false")
	}
	if !same.Equal(next) {
		t.Error("removing an empty cell changed the store")
	}
}

func TestStore_RemoveDoubleCascades(t *testing.T) {
	s := NewStore().
		Add(mustSlot(t, grid.Monday, "8:20")).
		Add(mustSlot(t, grid.Monday, "9:00")).
		Add(mustSlot(t, grid.Monday, "11:00"))
	s, err := s.CreateDoublePair(coord(grid.Monday, "8:20"), coord(grid.Monday, "9:00"))
	if err != nil {
		t.Fatalf("CreateDoublePair: %v", err)
	}

	for _, id := range []string{"8:20", "9:00"} {
		t.Run(id, func(t *testing.T) {
			next, removed := s.Remove(grid.Monday, id)
			if !removed {
				t.Fatal("expected removal")
			}
			if next.Occupied(grid.Monday, "8:20") || next.Occupied(grid.Monday, "9:00") {
				t.Error("double partner survived removal")
			}
			if !next.Occupied(grid.Monday, "11:00") {
				t.Error("unrelated slot removed")
			}
		})
	}
}

func TestStore_RemoveOrphanedDouble(t *testing.T) {
	orphan := mustSlot(t, grid.Monday, "8:20")
	orphan.IsDoubleLesson = true
	orphan.DoublePosition = PositionTop
	s := NewStore(orphan, mustSlot(t, grid.Monday, "9:00"))

	next, removed := s.Remove(grid.Monday, "8:20")
	if !removed {
		t.Fatal("expected removal")
	}
	if !next.Occupied(grid.Monday, "9:00") {
		t.Error("single neighbor must not be treated as a partner")
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Monday, "8:20"))
	if !s.Clear().IsEmpty() {
		t.Error("Clear left slots behind")
	}
	if s.IsEmpty() {
		t.Error("Clear mutated the original store")
	}
}

func TestStore_CloneDoesNotAlias(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Monday, "8:20"))
	c := s.Clone()

	slots := c.Slots()
	slots[0].Subject.Name = "changed"
	if sl, _ := s.Find(grid.Monday, "8:20"); sl.Subject.Name != "Mathematics" {
		t.Error("Slots() leaked a pointer into the store")
	}
	if !s.Equal(c) {
		t.Error("clone differs from original")
	}
}

func TestStore_Update(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Monday, "8:20"))
	next, ok := s.Update(grid.Monday, "8:20", func(sl *Slot) { sl.Notes = "bring calculators" })
	if !ok {
		t.Fatal("expected update")
	}
	got, _ := next.Find(grid.Monday, "8:20")
	if got.Notes != "bring calculators" {
		t.Errorf("notes = %q", got.Notes)
	}
	orig, _ := s.Find(grid.Monday, "8:20")
	if orig.Notes != "" {
		t.Error("Update mutated the original store")
	}
	if _, ok := s.Update(grid.Friday, "7:00", func(*Slot) {}); ok {
		t.Error("expected update of empty cell to report false")
	}
}

func TestConflicts(t *testing.T) {
	s := NewStore(
		mustSlot(t, grid.Tuesday, "9:00"),
		mustSlot(t, grid.Monday, "8:20"),
	)
	if c := Conflicts(s); len(c) != 0 {
		t.Fatalf("expected no conflicts, got %v", c)
	}

	s = s.Add(mustSlot(t, grid.Monday, "8:20"))
	if c := Conflicts(s); !slices.Equal(c, []string{"MON-8:20"}) {
		t.Fatalf("conflicts = %v, want [MON-8:20]", c)
	}

	s = s.Add(mustSlot(t, grid.Tuesday, "9:00")).Add(mustSlot(t, grid.Tuesday, "9:00"))
	if c := Conflicts(s); !slices.Equal(c, []string{"TUE-9:00", "MON-8:20"}) {
		t.Fatalf("conflicts = %v, want first-appearance order", c)
	}
}

func TestConflicts_ResolvedByRemove(t *testing.T) {
	s := NewStore().
		Add(mustSlot(t, grid.Wednesday, "10:20")).
		Add(mustSlot(t, grid.Wednesday, "10:20"))
	if c := Conflicts(s); len(c) != 1 {
		t.Fatalf("conflicts = %v", c)
	}
	s, _ = s.Remove(grid.Wednesday, "10:20")
	if c := Conflicts(s); len(c) != 0 {
		t.Fatalf("expected conflict resolved, got %v", c)
	}
}

func TestOrphanedDoubles(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Monday, "8:20"), mustSlot(t, grid.Monday, "9:00"))
	s, _ = s.CreateDoublePair(coord(grid.Monday, "8:20"), coord(grid.Monday, "9:00"))
	if o := OrphanedDoubles(s); len(o) != 0 {
		t.Fatalf("expected no orphans, got %v", o)
	}

	lone := mustSlot(t, grid.Friday, "7:00")
	lone.IsDoubleLesson = true
	lone.DoublePosition = PositionBottom
	s = s.Add(lone)
	if o := OrphanedDoubles(s); !slices.Equal(o, []string{"FRI-7:00"}) {
		t.Fatalf("orphans = %v, want [FRI-7:00]", o)
	}
}
