// Package lesson defines the scheduled lesson slots and the operations that mutate a week's store.
package lesson

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/timetabler/internal/grid"
)

// Domain errors.
var (
	ErrInvalidPairing     = errors.New("invalid double lesson pairing")
	ErrUnknownCoordinate  = errors.New("unknown day or time slot")
	ErrSlotNotFound       = errors.New("slot not found")
	ErrInvalidDoubleState = errors.New("double position must be 'top' or 'bottom'")
)

// Subject is supplied by the curriculum admin and never mutated here.
type Subject struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Color string `json:"color"`
}

// Topic is an optional curriculum reference attached to a slot.
type Topic struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Subtopic is an optional curriculum reference attached to a slot.
type Subtopic struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// DoublePosition marks which half of a double lesson a slot is.
type DoublePosition string

const (
	PositionNone   DoublePosition = ""
	PositionTop    DoublePosition = "top"
	PositionBottom DoublePosition = "bottom"
)

// Opposite returns the partner position.
func (p DoublePosition) Opposite() DoublePosition {
	switch p {
	case PositionTop:
		return PositionBottom
	case PositionBottom:
		return PositionTop
	default:
		return PositionNone
	}
}

// ParseDoublePosition parses "top", "bottom" or "".
func ParseDoublePosition(s string) (DoublePosition, error) {
	switch DoublePosition(s) {
	case PositionNone, PositionTop, PositionBottom:
		return DoublePosition(s), nil
	default:
		return PositionNone, fmt.Errorf("%w: got %q", ErrInvalidDoubleState, s)
	}
}

// Slot is one scheduled lesson occupying a single day/time cell.
type Slot struct {
	Day            grid.Day       `json:"day"`
	TimeSlotID     string         `json:"timeSlot"`
	Period         int            `json:"period"` // denormalized from the grid catalog
	Subject        *Subject       `json:"subject,omitempty"`
	Topic          *Topic         `json:"topic,omitempty"`
	Subtopic       *Subtopic      `json:"subtopic,omitempty"`
	IsDoubleLesson bool           `json:"isDoubleLesson"`
	DoublePosition DoublePosition `json:"doublePosition,omitempty"`
	IsEvening      bool           `json:"isEvening"` // denormalized from the grid catalog
	Notes          string         `json:"notes,omitempty"`
}

// NewSlot builds a slot for a catalog coordinate.
func NewSlot(day grid.Day, timeSlotID string, subject *Subject) (Slot, error) {
	p, ok := grid.Resolve(day, timeSlotID)
	if !ok {
		return Slot{}, fmt.Errorf("%w: %s-%s", ErrUnknownCoordinate, day, timeSlotID)
	}
	return Slot{
		Day:        day,
		TimeSlotID: timeSlotID,
		Period:     p.Period,
		Subject:    subject,
		IsEvening:  p.Evening,
	}, nil
}

// Coordinate returns the grid cell the slot occupies.
func (s Slot) Coordinate() grid.Coordinate {
	return grid.Coordinate{Day: s.Day, TimeSlotID: s.TimeSlotID}
}

// At reports whether the slot occupies the given cell.
func (s Slot) At(day grid.Day, timeSlotID string) bool {
	return s.Day == day && s.TimeSlotID == timeSlotID
}

// IsTop reports whether the slot is the first half of a double lesson.
func (s Slot) IsTop() bool {
	return s.IsDoubleLesson && s.DoublePosition == PositionTop
}

// IsSession reports whether the slot starts a teaching session.
// The bottom half of a double lesson belongs to the session started by its top.
func (s Slot) IsSession() bool {
	return !s.IsDoubleLesson || s.DoublePosition == PositionTop
}

// Clone returns a copy that shares no pointers with s.
func (s Slot) Clone() Slot {
	c := s
	if s.Subject != nil {
		v := *s.Subject
		c.Subject = &v
	}
	if s.Topic != nil {
		v := *s.Topic
		c.Topic = &v
	}
	if s.Subtopic != nil {
		v := *s.Subtopic
		c.Subtopic = &v
	}
	return c
}

// Equal reports whether two slots hold the same values.
func (s Slot) Equal(o Slot) bool {
	if s.Day != o.Day || s.TimeSlotID != o.TimeSlotID || s.Period != o.Period ||
		s.IsDoubleLesson != o.IsDoubleLesson || s.DoublePosition != o.DoublePosition ||
		s.IsEvening != o.IsEvening || s.Notes != o.Notes {
		return false
	}
	return equalPtr(s.Subject, o.Subject) && equalPtr(s.Topic, o.Topic) && equalPtr(s.Subtopic, o.Subtopic)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
