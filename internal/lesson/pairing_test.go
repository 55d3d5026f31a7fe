package lesson

import (
	"errors"
	"testing"

	"github.com/javiermolinar/timetabler/internal/grid"
)

func TestCreateDoublePair(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Monday, "8:20"), mustSlot(t, grid.Monday, "9:00"))

	paired, err := s.CreateDoublePair(coord(grid.Monday, "8:20"), coord(grid.Monday, "9:00"))
	if err != nil {
		t.Fatalf("CreateDoublePair: %v", err)
	}

	top, _ := paired.Find(grid.Monday, "8:20")
	bottom, _ := paired.Find(grid.Monday, "9:00")
	if !top.IsDoubleLesson || top.DoublePosition != PositionTop {
		t.Errorf("top = %+v", top)
	}
	if !bottom.IsDoubleLesson || bottom.DoublePosition != PositionBottom {
		t.Errorf("bottom = %+v", bottom)
	}
	if paired.Len() != 2 {
		t.Errorf("pairing changed slot count to %d", paired.Len())
	}
	if orig, _ := s.Find(grid.Monday, "8:20"); orig.IsDoubleLesson {
		t.Error("pairing mutated the original store")
	}
}

func TestCreateDoublePair_OrderIndependent(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Thursday, "13:00"), mustSlot(t, grid.Thursday, "13:40"))
	a := coord(grid.Thursday, "13:00")
	b := coord(grid.Thursday, "13:40")

	ab, err := s.CreateDoublePair(a, b)
	if err != nil {
		t.Fatalf("CreateDoublePair(a, b): %v", err)
	}
	ba, err := s.CreateDoublePair(b, a)
	if err != nil {
		t.Fatalf("CreateDoublePair(b, a): %v", err)
	}
	if !ab.Equal(ba) {
		t.Errorf("pairing depends on argument order:\n%+v\n%+v", ab.Slots(), ba.Slots())
	}
}

func TestCreateDoublePair_Invalid(t *testing.T) {
	base := NewStore(
		mustSlot(t, grid.Monday, "8:20"),
		mustSlot(t, grid.Monday, "9:00"),
		mustSlot(t, grid.Monday, "9:40"),
		mustSlot(t, grid.Monday, "11:00"),
		mustSlot(t, grid.Tuesday, "9:00"),
	)
	paired, err := base.CreateDoublePair(coord(grid.Monday, "8:20"), coord(grid.Monday, "9:00"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name string
		a, b grid.Coordinate
	}{
		{"different days", coord(grid.Monday, "9:40"), coord(grid.Tuesday, "9:00")},
		{"first missing", coord(grid.Monday, "7:00"), coord(grid.Monday, "7:40")},
		{"second missing", coord(grid.Monday, "11:00"), coord(grid.Monday, "11:40")},
		{"not adjacent", coord(grid.Monday, "9:40"), coord(grid.Monday, "11:00")},
		{"same cell", coord(grid.Monday, "9:40"), coord(grid.Monday, "9:40")},
		{"steals half of a pair", coord(grid.Monday, "9:00"), coord(grid.Monday, "9:40")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paired.CreateDoublePair(tt.a, tt.b)
			if !errors.Is(err, ErrInvalidPairing) {
				t.Fatalf("expected ErrInvalidPairing, got %v", err)
			}
			if !got.Equal(paired) {
				t.Error("rejected pairing mutated the store")
			}
		})
	}
}

func TestCreateDoublePair_RepairSamePair(t *testing.T) {
	s := NewStore(mustSlot(t, grid.Monday, "8:20"), mustSlot(t, grid.Monday, "9:00"))
	s, err := s.CreateDoublePair(coord(grid.Monday, "8:20"), coord(grid.Monday, "9:00"))
	if err != nil {
		t.Fatalf("first pairing: %v", err)
	}
	again, err := s.CreateDoublePair(coord(grid.Monday, "9:00"), coord(grid.Monday, "8:20"))
	if err != nil {
		t.Fatalf("re-pairing the same slots: %v", err)
	}
	if !again.Equal(s) {
		t.Error("re-pairing changed the store")
	}
}

func TestCanBecomeDouble(t *testing.T) {
	s := NewStore(
		mustSlot(t, grid.Monday, "7:40"),
		mustSlot(t, grid.Monday, "9:00"),
	)

	tests := []struct {
		name string
		day  grid.Day
		id   string
		want bool
	}{
		{"both neighbors taken", grid.Monday, "8:20", false},
		{"occupied cell", grid.Monday, "9:00", false},
		{"first period with free next", grid.Tuesday, "7:00", true},
		{"first period with taken next", grid.Monday, "7:00", false},
		{"free next only", grid.Monday, "9:40", true},
		{"unknown slot", grid.Monday, "6:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.CanBecomeDouble(tt.day, tt.id); got != tt.want {
				t.Errorf("CanBecomeDouble(%s, %s) = %v, want %v", tt.day, tt.id, got, tt.want)
			}
		})
	}
}

func TestPairCandidate(t *testing.T) {
	s := NewStore(
		mustSlot(t, grid.Monday, "8:20"),
		mustSlot(t, grid.Monday, "9:00"),
		mustSlot(t, grid.Monday, "7:40"),
		mustSlot(t, grid.Friday, "12:20"),
	)

	c, ok := s.PairCandidate(grid.Monday, "8:20")
	if !ok || c != coord(grid.Monday, "9:00") {
		t.Errorf("candidate = %v, %v; want next period", c, ok)
	}
	if _, ok := s.PairCandidate(grid.Friday, "12:20"); ok {
		t.Error("expected no candidate for an isolated slot")
	}
	if _, ok := s.PairCandidate(grid.Friday, "7:00"); ok {
		t.Error("expected no candidate for an empty cell")
	}

	s, _ = s.CreateDoublePair(coord(grid.Monday, "8:20"), coord(grid.Monday, "9:00"))
	c, ok = s.PairCandidate(grid.Monday, "7:40")
	if ok {
		t.Errorf("expected paired neighbors to be skipped, got %v", c)
	}
}
