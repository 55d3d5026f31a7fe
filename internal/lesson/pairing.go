package lesson

import (
	"fmt"

	"github.com/javiermolinar/timetabler/internal/grid"
)

// CreateDoublePair links two existing same-day slots at adjacent periods into a
// double lesson. The earlier period becomes the top half regardless of argument
// order. No slot is ever created here; on error the store is returned unchanged.
func (s Store) CreateDoublePair(a, b grid.Coordinate) (Store, error) {
	if a.Day != b.Day {
		return s, fmt.Errorf("%w: %s and %s are on different days", ErrInvalidPairing, a, b)
	}
	first, ok := s.Find(a.Day, a.TimeSlotID)
	if !ok {
		return s, fmt.Errorf("%w: no lesson at %s", ErrInvalidPairing, a)
	}
	second, ok := s.Find(b.Day, b.TimeSlotID)
	if !ok {
		return s, fmt.Errorf("%w: no lesson at %s", ErrInvalidPairing, b)
	}
	if abs(first.Period-second.Period) != 1 {
		return s, fmt.Errorf("%w: %s and %s are not adjacent periods", ErrInvalidPairing, a, b)
	}

	top, bottom := first, second
	if second.Period < first.Period {
		top, bottom = second, first
	}

	// Re-pairing the same two slots is allowed; stealing half of another pair is not.
	for _, sl := range []Slot{top, bottom} {
		if !sl.IsDoubleLesson {
			continue
		}
		p, found := s.partnerOf(sl)
		if found && !p.At(top.Day, top.TimeSlotID) && !p.At(bottom.Day, bottom.TimeSlotID) {
			return s, fmt.Errorf("%w: %s already belongs to a double lesson with %s",
				ErrInvalidPairing, sl.Coordinate(), p.Coordinate())
		}
	}

	out := cloneSlots(s.slots)
	for i := range out {
		switch {
		case out[i].At(top.Day, top.TimeSlotID):
			out[i].IsDoubleLesson = true
			out[i].DoublePosition = PositionTop
		case out[i].At(bottom.Day, bottom.TimeSlotID):
			out[i].IsDoubleLesson = true
			out[i].DoublePosition = PositionBottom
		}
	}
	return Store{slots: out}, nil
}

// CanBecomeDouble reports whether an empty cell could host a double lesson:
// at least one same-day neighbor period is also empty. Occupied or unknown
// cells are never eligible. This is advisory; pairing is a separate action.
func (s Store) CanBecomeDouble(day grid.Day, timeSlotID string) bool {
	if _, ok := grid.Resolve(day, timeSlotID); !ok {
		return false
	}
	if s.Occupied(day, timeSlotID) {
		return false
	}
	for _, dir := range []grid.Direction{grid.Prev, grid.Next} {
		n, ok := grid.Adjacent(day, timeSlotID, dir)
		if ok && !s.Occupied(n.Day, n.TimeSlotID) {
			return true
		}
	}
	return false
}

// PairCandidate returns the occupied neighbor an occupied single slot could be
// paired with, preferring the next period over the previous one.
func (s Store) PairCandidate(day grid.Day, timeSlotID string) (grid.Coordinate, bool) {
	sl, ok := s.Find(day, timeSlotID)
	if !ok || sl.IsDoubleLesson {
		return grid.Coordinate{}, false
	}
	for _, dir := range []grid.Direction{grid.Next, grid.Prev} {
		n, ok := grid.Adjacent(day, timeSlotID, dir)
		if !ok {
			continue
		}
		if other, found := s.Find(n.Day, n.TimeSlotID); found && !other.IsDoubleLesson {
			return n, true
		}
	}
	return grid.Coordinate{}, false
}
