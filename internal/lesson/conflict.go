package lesson

// Conflicts returns the "DAY-timeSlotId" keys of cells holding more than one
// slot, in order of first appearance. It never fails; an empty result means the
// store is conflict-free.
func Conflicts(s Store) []string {
	counts := make(map[string]int, s.Len())
	var order []string
	s.Each(func(sl Slot) {
		key := sl.Coordinate().Key()
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	})

	var conflicts []string
	for _, key := range order {
		if counts[key] > 1 {
			conflicts = append(conflicts, key)
		}
	}
	return conflicts
}

// OrphanedDoubles returns the keys of double-lesson slots whose partner is
// missing or whose position is inconsistent with the partner's period.
func OrphanedDoubles(s Store) []string {
	var orphans []string
	s.Each(func(sl Slot) {
		if !sl.IsDoubleLesson {
			return
		}
		p, ok := s.partnerOf(sl)
		switch {
		case !ok, sl.DoublePosition == PositionNone:
			orphans = append(orphans, sl.Coordinate().Key())
		case sl.DoublePosition == PositionTop && p.Period < sl.Period,
			sl.DoublePosition == PositionBottom && p.Period > sl.Period:
			orphans = append(orphans, sl.Coordinate().Key())
		}
	})
	return orphans
}
