// Package grid defines the static weekly day/time-slot catalog lessons are placed on.
package grid

import (
	"fmt"
	"strings"
)

// Day is a teaching weekday.
type Day string

const (
	Monday    Day = "MON"
	Tuesday   Day = "TUE"
	Wednesday Day = "WED"
	Thursday  Day = "THU"
	Friday    Day = "FRI"
)

var days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// Days returns the teaching weekdays in calendar order.
func Days() []Day {
	out := make([]Day, len(days))
	copy(out, days)
	return out
}

// Index returns the position of the day in the week (0=Monday), or -1 if unknown.
func (d Day) Index() int {
	for i, day := range days {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the teaching weekdays.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

// Name returns the full weekday name (e.g., "Monday").
func (d Day) Name() string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	if i := d.Index(); i >= 0 {
		return names[i]
	}
	return ""
}

// ParseDay parses "mon", "Monday", "MON" and similar spellings.
func ParseDay(s string) (Day, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) >= 3 {
		d := Day(s[:3])
		if d.Valid() && (len(s) == 3 || strings.EqualFold(s, d.Name())) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day %q: must be one of MON, TUE, WED, THU, FRI", s)
}

// TimeSlot is one period row of the weekly grid.
type TimeSlot struct {
	ID      string // "8:20"
	Label   string // "8:20 AM"
	Period  int    // 1-based, ascending through the day
	Evening bool
}

// EveningCutoff is the first time slot treated as an evening lesson.
const EveningCutoff = "16:20"

// LessonMinutes is the length of one period.
const LessonMinutes = 40

var catalog = buildCatalog("7:00", 16)

func buildCatalog(first string, count int) []TimeSlot {
	start := TimeToMinutes(first)
	cutoff := TimeToMinutes(EveningCutoff)
	slots := make([]TimeSlot, 0, count)
	for i := range count {
		m := start + i*LessonMinutes
		slots = append(slots, TimeSlot{
			ID:      MinutesToID(m),
			Label:   MinutesToLabel(m),
			Period:  i + 1,
			Evening: m >= cutoff,
		})
	}
	return slots
}

// TimeSlots returns the catalog rows ordered by period.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the time slot with the given id.
func Lookup(timeSlotID string) (TimeSlot, bool) {
	for _, ts := range catalog {
		if ts.ID == timeSlotID {
			return ts, true
		}
	}
	return TimeSlot{}, false
}

// ByPeriod returns the time slot for a 1-based period number.
func ByPeriod(period int) (TimeSlot, bool) {
	if period < 1 || period > len(catalog) {
		return TimeSlot{}, false
	}
	return catalog[period-1], true
}

// Coordinate addresses one cell of the grid.
type Coordinate struct {
	Day        Day
	TimeSlotID string
}

// Key returns the "DAY-timeSlotId" form used for conflict reporting.
func (c Coordinate) Key() string {
	return string(c.Day) + "-" + c.TimeSlotID
}

func (c Coordinate) String() string {
	return c.Key()
}

// Placement holds the derived properties of a coordinate.
type Placement struct {
	Period  int
	Evening bool
}

// Resolve returns the period and evening flag of a coordinate.
// ok is false for an unknown day or time slot.
func Resolve(day Day, timeSlotID string) (p Placement, ok bool) {
	if !day.Valid() {
		return Placement{}, false
	}
	ts, found := Lookup(timeSlotID)
	if !found {
		return Placement{}, false
	}
	return Placement{Period: ts.Period, Evening: ts.Evening}, true
}

// Coordinates lists every cell ordered by period, then by weekday.
func Coordinates() []Coordinate {
	out := make([]Coordinate, 0, len(catalog)*len(days))
	for _, ts := range catalog {
		for _, d := range days {
			out = append(out, Coordinate{Day: d, TimeSlotID: ts.ID})
		}
	}
	return out
}

// Direction selects the neighbor returned by Adjacent.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Adjacent returns the same-day coordinate one period before or after.
func Adjacent(day Day, timeSlotID string, dir Direction) (Coordinate, bool) {
	p, ok := Resolve(day, timeSlotID)
	if !ok {
		return Coordinate{}, false
	}
	ts, ok := ByPeriod(p.Period + int(dir))
	if !ok {
		return Coordinate{}, false
	}
	return Coordinate{Day: day, TimeSlotID: ts.ID}, true
}
