// Package session owns one editable timetable: the slot store, its undo
// history and the persistence coordinator.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/javiermolinar/timetabler/internal/analytics"
	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/history"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/persist"
	"github.com/javiermolinar/timetabler/internal/presets"
)

// ErrNoSubject is returned when an action needs a current subject and none is set.
var ErrNoSubject = errors.New("no subject selected")

// Options configures a Session.
type Options struct {
	Name        string
	Description string
	Subject     *lesson.Subject

	Remote   persist.Remote
	Cache    persist.Cache
	CacheKey string
	Debounce time.Duration
	Clock    persist.Clock
	MaxUndo  int
	Logger   *slog.Logger
	// OnStatus is notified when the persistence state changes. It may be
	// called from a timer goroutine or while a session method is running, so
	// it must not call back into the Session.
	OnStatus func(persist.Status)
}

// Session is the explicitly owned scheduling state. All methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Session struct {
	mu sync.Mutex

	store          lesson.Store
	history        *history.Manager
	name           string
	description    string
	subject        *lesson.Subject
	schemeID       string
	topics         []int
	subtopics      []int
	schemeMetadata map[string]any

	coord  *persist.Coordinator
	clock  persist.Clock
	logger *slog.Logger
}

// New creates an empty session.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := opts.Clock
	if clock == nil {
		clock = persist.SystemClock{}
	}

	var histOpts []history.Option
	if opts.MaxUndo > 0 {
		histOpts = append(histOpts, history.WithMaxUndo(opts.MaxUndo))
	}

	s := &Session{
		store:       lesson.NewStore(),
		history:     history.New(lesson.NewStore(), histOpts...),
		name:        opts.Name,
		description: opts.Description,
		subject:     cloneSubject(opts.Subject),
		clock:       clock,
		logger:      logger,
	}
	s.coord = persist.New(persist.Options{
		Remote:   opts.Remote,
		Cache:    opts.Cache,
		CacheKey: opts.CacheKey,
		Debounce: opts.Debounce,
		Clock:    clock,
		Logger:   logger.With("component", "persist"),
		Snapshot: s.Snapshot,
		OnChange: opts.OnStatus,
	})
	return s
}

// Store returns a copy of the current slots.
func (s *Session) Store() lesson.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clone()
}

// Subject returns the current subject, or nil.
func (s *Session) Subject() *lesson.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSubject(s.subject)
}

// Name returns the timetable name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Snapshot returns the full persistable state.
func (s *Session) Snapshot() persist.Timetable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() persist.Timetable {
	t := persist.Timetable{
		ID:                s.coord.ID(),
		Name:              s.name,
		Description:       s.description,
		Subject:           s.subject,
		SchemeID:          s.schemeID,
		Slots:             s.store,
		SelectedTopics:    s.topics,
		SelectedSubtopics: s.subtopics,
		SchemeMetadata:    s.schemeMetadata,
	}
	return t.Clone()
}

// commitLocked installs next as the current store, records it once in the
// history and arms the auto-save.
func (s *Session) commitLocked(action string, next lesson.Store) {
	s.store = next
	s.history.Record(next)
	s.coord.ScheduleAutoSave()
	s.logger.Debug("store changed", "action", action, "slots", next.Len())
}

// touchLocked arms the auto-save for a context change that is not undoable.
func (s *Session) touchLocked(what string) {
	s.coord.ScheduleAutoSave()
	s.logger.Debug("context changed", "field", what)
}

// AddSlot appends a slot. A second slot at an occupied cell is kept and shows
// up as a conflict.
func (s *Session) AddSlot(slot lesson.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked("add", s.store.Add(slot.Clone()))
}

// RemoveSlot removes the slots at a cell together with any double partner.
// Removing from an empty cell changes nothing and records nothing.
func (s *Session) RemoveSlot(day grid.Day, timeSlotID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, removed := s.store.Remove(day, timeSlotID)
	if removed {
		s.commitLocked("remove", next)
	}
	return removed
}

// ClearAll empties the week.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.IsEmpty() {
		return
	}
	s.commitLocked("clear", s.store.Clear())
}

// CreateDoublePair links two adjacent same-day slots as one history entry.
func (s *Session) CreateDoublePair(a, b grid.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.store.CreateDoublePair(a, b)
	if err != nil {
		return err
	}
	if !next.Equal(s.store) {
		s.commitLocked("pair", next)
	}
	return nil
}

// Place adds a lesson of the current subject at a cell.
func (s *Session) Place(day grid.Day, timeSlotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placeLocked(day, timeSlotID)
}

func (s *Session) placeLocked(day grid.Day, timeSlotID string) error {
	if s.subject == nil {
		return ErrNoSubject
	}
	sl, err := lesson.NewSlot(day, timeSlotID, cloneSubject(s.subject))
	if err != nil {
		return err
	}
	s.commitLocked("add", s.store.Add(sl))
	return nil
}

// Toggle removes the lesson at an occupied cell or places one at an empty
// cell. It reports whether a lesson was added.
func (s *Session) Toggle(day grid.Day, timeSlotID string) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next, removed := s.store.Remove(day, timeSlotID); removed {
		s.commitLocked("remove", next)
		return false, nil
	}
	if err := s.placeLocked(day, timeSlotID); err != nil {
		return false, err
	}
	return true, nil
}

// PairWithNeighbor pairs an occupied single slot with an occupied adjacent
// single slot, preferring the next period.
func (s *Session) PairWithNeighbor(day grid.Day, timeSlotID string) (grid.Coordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	here := grid.Coordinate{Day: day, TimeSlotID: timeSlotID}
	other, ok := s.store.PairCandidate(day, timeSlotID)
	if !ok {
		return grid.Coordinate{}, fmt.Errorf("%w: no free neighbor to pair with %s", lesson.ErrInvalidPairing, here)
	}
	next, err := s.store.CreateDoublePair(here, other)
	if err != nil {
		return grid.Coordinate{}, err
	}
	s.commitLocked("pair", next)
	return other, nil
}

// SetNotes replaces the notes of the lesson at a cell.
func (s *Session) SetNotes(day grid.Day, timeSlotID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.store.Update(day, timeSlotID, func(sl *lesson.Slot) { sl.Notes = notes })
	if !ok {
		return fmt.Errorf("%w: %s-%s", lesson.ErrSlotNotFound, day, timeSlotID)
	}
	s.commitLocked("notes", next)
	return nil
}

// ApplyTemplate replaces the week with a preset stamped with the current subject.
func (s *Session) ApplyTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subject == nil {
		return ErrNoSubject
	}
	tmpl, err := presets.Get(id)
	if err != nil {
		return err
	}
	next, err := tmpl.Build(s.subject)
	if err != nil {
		return err
	}
	s.commitLocked("template:"+id, next)
	return nil
}

// SetSubject changes the subject used for new lessons.
func (s *Session) SetSubject(subject *lesson.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject = cloneSubject(subject)
	s.touchLocked("subject")
}

// SetName renames the timetable.
func (s *Session) SetName(name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.description = description
	s.touchLocked("name")
}

// SelectTopics replaces the selected topic ids.
func (s *Session) SelectTopics(ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = slices.Clone(ids)
	s.touchLocked("topics")
}

// SelectSubtopics replaces the selected subtopic ids.
func (s *Session) SelectSubtopics(ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subtopics = slices.Clone(ids)
	s.touchLocked("subtopics")
}

// Undo restores the previous snapshot. It reports false at the oldest one.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.store = prev
	s.coord.ScheduleAutoSave()
	return true
}

// Redo reapplies the next snapshot. It reports false at the newest one.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.store = next
	s.coord.ScheduleAutoSave()
	return true
}

// CanUndo reports whether Undo would change the store.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the store.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// HistoryState reports where the undo cursor sits.
func (s *Session) HistoryState() history.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.State()
}

// Analytics recomputes the metrics for the current store.
func (s *Session) Analytics() analytics.Analytics {
	return analytics.Compute(s.Store(), s.clock.Now())
}

// Tips returns the advisory tips for the current store.
func (s *Session) Tips() []analytics.Tip {
	st := s.Store()
	return analytics.Tips(st, analytics.Compute(st, s.clock.Now()))
}

// Conflicts returns the keys of cells holding more than one lesson.
func (s *Session) Conflicts() []string {
	return lesson.Conflicts(s.Store())
}

// OrphanedDoubles returns the keys of double halves without a valid partner.
func (s *Session) OrphanedDoubles() []string {
	return lesson.OrphanedDoubles(s.Store())
}

// CanBecomeDouble reports whether an empty cell could host a double lesson.
func (s *Session) CanBecomeDouble(day grid.Day, timeSlotID string) bool {
	return s.Store().CanBecomeDouble(day, timeSlotID)
}

func cloneSubject(subj *lesson.Subject) *lesson.Subject {
	if subj == nil {
		return nil
	}
	c := *subj
	return &c
}

// Status reports the persistence state.
func (s *Session) Status() persist.Status {
	return s.coord.Status()
}

// SaveNow saves immediately, bypassing the debounce.
func (s *Session) SaveNow(ctx context.Context) persist.Result {
	return s.coord.SaveNow(ctx)
}

// Load replaces the session with a remote timetable and starts a fresh history.
func (s *Session) Load(ctx context.Context, id string) persist.Result {
	t, res := s.coord.Load(ctx, id)
	if !res.OK() {
		return res
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installLocked(t)
	return res
}

// Delete removes a remote timetable. When it is the one being edited the
// session returns to an empty, unsaved state.
func (s *Session) Delete(ctx context.Context, id string) persist.Result {
	current := s.coord.ID()
	res := s.coord.Delete(ctx, id)
	isCurrent := current != "" && current == id
	if !res.OK() || !isCurrent {
		return res
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = lesson.NewStore()
	s.history.Reset(s.store)
	s.topics, s.subtopics = nil, nil
	s.schemeID, s.schemeMetadata = "", nil
	return res
}

// List returns remote timetables for a subject (0 for all).
func (s *Session) List(ctx context.Context, subjectID int) ([]persist.Summary, error) {
	return s.coord.List(ctx, subjectID)
}

// Checkpoint writes the full state to the local cache.
func (s *Session) Checkpoint(ctx context.Context) error {
	return s.coord.WriteLocal(ctx, s.Snapshot())
}

// RestoreLocal loads the local snapshot into the session and starts a fresh
// history. It returns persist.ErrCacheMiss when there is nothing to restore.
func (s *Session) RestoreLocal(ctx context.Context) error {
	t, err := s.coord.ReadLocal(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installLocked(t)
	if t.ID != "" {
		s.coord.SetID(t.ID)
	}
	return nil
}

func (s *Session) installLocked(t persist.Timetable) {
	s.store = t.Slots.Clone()
	s.history.Reset(s.store)
	if t.Name != "" {
		s.name = t.Name
	}
	if t.Description != "" {
		s.description = t.Description
	}
	if t.Subject != nil {
		s.subject = cloneSubject(t.Subject)
	}
	s.schemeID = t.SchemeID
	s.topics = slices.Clone(t.SelectedTopics)
	s.subtopics = slices.Clone(t.SelectedSubtopics)
	s.schemeMetadata = t.SchemeMetadata
}

// Dispose cancels any pending auto-save. The session stays readable.
func (s *Session) Dispose() {
	s.coord.Dispose()
}
