package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

const (
	wideCellWidth   = 10
	narrowCellWidth = 6
	timeColumnWidth = 8
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellSingle
	cellTop
	cellBottom
	cellConflict
)

type gridCell struct {
	label   string
	kind    cellKind
	evening bool
	count   int
}

// buildCells indexes the store by cell key.
func buildCells(s lesson.Store) map[string]gridCell {
	cells := make(map[string]gridCell, s.Len())
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

func (c gridCell) text() string {
	switch c.kind {
	case cellTop:
		return c.label + " ┐"
	case cellBottom:
		return c.label + " ┘"
	case cellConflict:
		return fmt.Sprintf("!! x%d", c.count)
	case cellSingle:
		return c.label
	default:
		return "·"
	}
}

func (c gridCell) color() *color.Color {
	switch c.kind {
	case cellConflict:
		return colorWarning
	case cellTop, cellBottom:
		return colorDouble
	case cellSingle:
		if c.evening {
			return colorEvening
		}
		return colorSingle
	default:
		return colorMuted
	}
}

// renderGrid draws the week as periods by days. Padding is applied before
// coloring so escape codes never affect alignment.
func renderGrid(s lesson.Store, cellWidth int, colored bool) string {
	cells := buildCells(s)
	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", timeColumnWidth))
	for _, d := range grid.Days() {
		h := pad(string(d), cellWidth)
		if colored {
			h = formatHeader(h)
		}
		sb.WriteString(h)
	}
	sb.WriteString("\n")

	for _, ts := range grid.TimeSlots() {
		label := fmt.Sprintf("%5s", ts.ID)
		if ts.Evening {
			label += " *"
		}
		sb.WriteString(pad(label, timeColumnWidth))
		for _, d := range grid.Days() {
			c := cells[grid.Coordinate{Day: d, TimeSlotID: ts.ID}.Key()]
			text := pad(truncate(c.text(), cellWidth-1), cellWidth)
			if colored {
				text = c.color().Sprint(text)
			}
			sb.WriteString(text)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatGrid renders the week without color, for export.
func FormatGrid(s lesson.Store) string {
	return renderGrid(s, wideCellWidth, false) + "\n* evening session   ┐┘ double lesson   !! conflict\n"
}

func printGrid(w io.Writer, s lesson.Store) {
	width := wideCellWidth
	if termWidth() < timeColumnWidth+len(grid.Days())*wideCellWidth {
		width = narrowCellWidth
	}
	_, _ = fmt.Fprint(w, renderGrid(s, width, true))
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
