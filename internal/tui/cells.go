package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellSingle
	cellTop
	cellBottom
	cellConflict
)

// cellInfo is what the grid shows for one coordinate.
type cellInfo struct {
	label    string
	kind     cellKind
	count    int
	evening  bool
	orphan   bool
	alt      bool // Alternate shade for a double following another on the same day
	hasNotes bool
}

// buildCells indexes the store by cell key and marks conflicts, orphaned
// halves and alternating double shades.
func buildCells(s lesson.Store, orphans []string) map[string]cellInfo {
	cells := make(map[string]cellInfo, s.Len())
	s.Each(func(sl lesson.Slot) {
		key := sl.Coordinate().Key()
		c := cells[key]
		c.count++
		c.evening = sl.IsEvening
		if c.count > 1 {
			c.kind = cellConflict
			cells[key] = c
			return
		}
		c.label = subjectLabel(sl.Subject)
		c.hasNotes = sl.Notes != ""
		switch {
		case sl.IsTop():
			c.kind = cellTop
		case sl.IsDoubleLesson:
			c.kind = cellBottom
		default:
			c.kind = cellSingle
		}
		cells[key] = c
	})

	for _, key := range orphans {
		if c, ok := cells[key]; ok {
			c.orphan = true
			cells[key] = c
		}
	}

	for _, d := range grid.Days() {
		alt := false
		for _, ts := range grid.TimeSlots() {
			key := grid.Coordinate{Day: d, TimeSlotID: ts.ID}.Key()
			c, ok := cells[key]
			if !ok {
				continue
			}
			if c.kind == cellTop {
				alt = !alt
			}
			if c.kind == cellTop || c.kind == cellBottom {
				c.alt = !alt
				cells[key] = c
			}
		}
	}
	return cells
}

func subjectLabel(s *lesson.Subject) string {
	switch {
	case s == nil:
		return "•"
	case s.Code != "":
		return s.Code
	case s.Name != "":
		name := []rune(strings.ToUpper(s.Name))
		return string(name[:min(3, len(name))])
	default:
		return "•"
	}
}

func (c cellInfo) text() string {
	var s string
	switch c.kind {
	case cellTop:
		s = c.label + " ┐"
	case cellBottom:
		s = c.label + " ┘"
	case cellConflict:
		return fmt.Sprintf("!! x%d", c.count)
	case cellSingle:
		s = c.label
	default:
		return "·"
	}
	if c.hasNotes {
		s += " ✎"
	}
	return s
}
