// Package persist coordinates debounced remote saves of a timetable with a
// local cache fallback.
package persist

import (
	"errors"
	"fmt"
)

// Persistence errors.
var (
	ErrRemoteUnavailable = errors.New("remote timetable service unavailable")
	ErrIllegalTransition = errors.New("illegal persistence state transition")
	ErrCacheMiss         = errors.New("no local snapshot")
	ErrInvalidRecord     = errors.New("invalid timetable record")
	ErrDisposed          = errors.New("coordinator disposed")
)

// State is the persistence status of the in-memory timetable.
type State int

const (
	StateIdle State = iota
	StatePendingSave
	StateSaving
	StateSaved
	StateSaveFailed
)

var stateNames = map[State]string{
	StateIdle:        "idle",
	StatePendingSave: "pending",
	StateSaving:      "saving",
	StateSaved:       "saved",
	StateSaveFailed:  "offline",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// transitions lists the legal moves. Saving to saving covers two debounce
// timers whose requests overlap.
var transitions = map[State][]State{
	StateIdle:        {StatePendingSave, StateSaving, StateIdle},
	StatePendingSave: {StatePendingSave, StateSaving, StateIdle},
	StateSaving:      {StateSaving, StatePendingSave, StateSaved, StateSaveFailed, StateIdle},
	StateSaved:       {StatePendingSave, StateSaving, StateIdle},
	StateSaveFailed:  {StatePendingSave, StateSaving, StateIdle},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
