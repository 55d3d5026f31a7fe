// Package history provides the bounded undo/redo stack of lesson store snapshots.
package history

import (
	"github.com/javiermolinar/timetabler/internal/lesson"
)

// DefaultMaxUndo is the number of actions that can be undone.
const DefaultMaxUndo = 20

// State is the position of the cursor relative to the recorded snapshots.
type State int

const (
	// StateInitial holds only the baseline snapshot; nothing to undo or redo.
	StateInitial State = iota
	// StateAtHead has the cursor on the newest snapshot.
	StateAtHead
	// StateRewound has snapshots ahead of the cursor that redo can restore.
	StateRewound
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAtHead:
		return "at-head"
	case StateRewound:
		return "rewound"
	default:
		return "unknown"
	}
}

// Manager keeps snapshots of the lesson store with a cursor.
// The first entry is the baseline the session started from; up to maxUndo
// recorded snapshots are kept on top of it, oldest evicted first.
type Manager struct {
	entries []lesson.Store
	cursor  int
	maxUndo int
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxUndo overrides the undo depth.
func WithMaxUndo(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxUndo = n
		}
	}
}

// New creates a manager whose baseline is a copy of initial.
func New(initial lesson.Store, opts ...Option) *Manager {
	m := &Manager{maxUndo: DefaultMaxUndo}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset(initial)
	return m
}

// Reset discards all snapshots and starts over from a copy of base.
func (m *Manager) Reset(base lesson.Store) {
	m.entries = []lesson.Store{base.Clone()}
	m.cursor = 0
}

// Record drops any redo branch beyond the cursor, appends a copy of store and
// moves the cursor onto it. When the limit is exceeded the oldest snapshot is
// evicted regardless of where the cursor was.
func (m *Manager) Record(store lesson.Store) {
	m.entries = append(m.entries[:m.cursor+1], store.Clone())
	m.cursor = len(m.entries) - 1

	if len(m.entries) > m.maxUndo+1 {
		m.entries[0] = lesson.Store{}
		m.entries = m.entries[1:]
		m.cursor--
	}
}

// Undo moves the cursor back one snapshot and returns it.
// ok is false at the oldest snapshot; that is a boundary, not an error.
func (m *Manager) Undo() (store lesson.Store, ok bool) {
	if m.cursor == 0 {
		return lesson.Store{}, false
	}
	m.cursor--
	return m.entries[m.cursor].Clone(), true
}

// Redo moves the cursor forward one snapshot and returns it.
func (m *Manager) Redo() (store lesson.Store, ok bool) {
	if m.cursor >= len(m.entries)-1 {
		return lesson.Store{}, false
	}
	m.cursor++
	return m.entries[m.cursor].Clone(), true
}

// Current returns a copy of the snapshot under the cursor.
func (m *Manager) Current() lesson.Store {
	return m.entries[m.cursor].Clone()
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}

// Len returns the number of snapshots held, including the baseline.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Index returns the cursor position.
func (m *Manager) Index() int {
	return m.cursor
}

// State reports where the cursor sits.
func (m *Manager) State() State {
	switch {
	case len(m.entries) == 1:
		return StateInitial
	case m.cursor == len(m.entries)-1:
		return StateAtHead
	default:
		return StateRewound
	}
}
