package lesson

import (
	"github.com/javiermolinar/timetabler/internal/grid"
)

// Store is an immutable collection of scheduled slots.
// Every mutating method returns a new Store and leaves the receiver untouched,
// so earlier values can be kept as history snapshots.
type Store struct {
	slots []Slot
}

// NewStore creates a store holding copies of the given slots.
func NewStore(slots ...Slot) Store {
	return Store{slots: cloneSlots(slots)}
}

// Len returns the number of slots, counting both halves of a double lesson.
func (s Store) Len() int {
	return len(s.slots)
}

// IsEmpty reports whether no slots are scheduled.
func (s Store) IsEmpty() bool {
	return len(s.slots) == 0
}

// Slots returns a copy of the slots in insertion order.
func (s Store) Slots() []Slot {
	return cloneSlots(s.slots)
}

// Each calls fn for every slot in insertion order without copying.
func (s Store) Each(fn func(Slot)) {
	for _, sl := range s.slots {
		fn(sl)
	}
}

// Find returns the first slot at the given cell.
func (s Store) Find(day grid.Day, timeSlotID string) (Slot, bool) {
	for _, sl := range s.slots {
		if sl.At(day, timeSlotID) {
			return sl, true
		}
	}
	return Slot{}, false
}

// Occupied reports whether any slot sits at the given cell.
func (s Store) Occupied(day grid.Day, timeSlotID string) bool {
	_, ok := s.Find(day, timeSlotID)
	return ok
}

// Clone returns a deep copy.
func (s Store) Clone() Store {
	return Store{slots: cloneSlots(s.slots)}
}

// Equal reports whether both stores hold equal slots in the same order.
func (s Store) Equal(o Store) bool {
	if len(s.slots) != len(o.slots) {
		return false
	}
	for i := range s.slots {
		if !s.slots[i].Equal(o.slots[i]) {
			return false
		}
	}
	return true
}

// Add appends a slot. A slot already at the same cell is kept; the resulting
// duplicate is reported by Conflicts rather than rejected here.
func (s Store) Add(slot Slot) Store {
	out := make([]Slot, 0, len(s.slots)+1)
	out = append(out, s.slots...)
	out = append(out, slot.Clone())
	return Store{slots: out}
}

// Remove drops every slot at the given cell. When the removed slot is half of a
// double lesson its partner is removed too, since a lesson cannot be half double.
// removed is false when nothing occupied the cell.
func (s Store) Remove(day grid.Day, timeSlotID string) (next Store, removed bool) {
	target, ok := s.Find(day, timeSlotID)
	if !ok {
		return s, false
	}

	var partner *Slot
	if target.IsDoubleLesson {
		if p, found := s.partnerOf(target); found {
			partner = &p
		}
	}

	out := make([]Slot, 0, len(s.slots))
	for _, sl := range s.slots {
		if sl.At(day, timeSlotID) {
			continue
		}
		if partner != nil && sl.At(partner.Day, partner.TimeSlotID) {
			continue
		}
		out = append(out, sl)
	}
	return Store{slots: out}, true
}

// Clear returns an empty store.
func (s Store) Clear() Store {
	return Store{}
}

// Update applies fn to every slot at the given cell.
func (s Store) Update(day grid.Day, timeSlotID string, fn func(*Slot)) (Store, bool) {
	out := cloneSlots(s.slots)
	found := false
	for i := range out {
		if out[i].At(day, timeSlotID) {
			fn(&out[i])
			found = true
		}
	}
	if !found {
		return s, false
	}
	return Store{slots: out}, true
}

// partnerOf scans same-day slots for the other half of a double lesson.
func (s Store) partnerOf(slot Slot) (Slot, bool) {
	want := slot.DoublePosition.Opposite()
	for _, sl := range s.slots {
		if sl.Day != slot.Day || !sl.IsDoubleLesson || sl.DoublePosition != want {
			continue
		}
		if abs(sl.Period-slot.Period) == 1 {
			return sl, true
		}
	}
	return Slot{}, false
}

// Partner returns the other half of the double lesson at the given cell.
func (s Store) Partner(day grid.Day, timeSlotID string) (Slot, bool) {
	sl, ok := s.Find(day, timeSlotID)
	if !ok || !sl.IsDoubleLesson {
		return Slot{}, false
	}
	return s.partnerOf(sl)
}

func cloneSlots(in []Slot) []Slot {
	if len(in) == 0 {
		return nil
	}
	out := make([]Slot, len(in))
	for i, sl := range in {
		out[i] = sl.Clone()
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
