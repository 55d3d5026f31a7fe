package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Defaults for Options.
const (
	DefaultDebounce    = 2 * time.Second
	DefaultCacheKey    = "timetable-autosave"
	DefaultSaveTimeout = 15 * time.Second
)

// Options configures a Coordinator.
type Options struct {
	// Remote may be nil; every remote save then falls back to the cache.
	Remote Remote
	// Cache may be nil; failed saves are then only logged.
	Cache       Cache
	CacheKey    string
	Debounce    time.Duration
	SaveTimeout time.Duration
	Clock       Clock
	Logger      *slog.Logger
	// Snapshot is called when a save runs, never while the coordinator holds its lock.
	Snapshot func() Timetable
	// OnChange is notified after every state change.
	OnChange func(Status)
}

// Coordinator owns the debounce timer, the server-assigned id and the save state.
type Coordinator struct {
	remote      Remote
	cache       Cache
	cacheKey    string
	debounce    time.Duration
	saveTimeout time.Duration
	clock       Clock
	logger      *slog.Logger
	snapshot    func() Timetable
	onChange    func(Status)

	mu       sync.Mutex
	state    State
	timer    Timer
	gen      uint64
	inflight int
	id       string
	lastSave time.Time
	lastErr  error
	disposed bool
}

// New creates a coordinator. Snapshot is required.
func New(opts Options) *Coordinator {
	c := &Coordinator{
		remote:      opts.Remote,
		cache:       opts.Cache,
		cacheKey:    opts.CacheKey,
		debounce:    opts.Debounce,
		saveTimeout: opts.SaveTimeout,
		clock:       opts.Clock,
		logger:      opts.Logger,
		snapshot:    opts.Snapshot,
		onChange:    opts.OnChange,
	}
	if c.cacheKey == "" {
		c.cacheKey = DefaultCacheKey
	}
	if c.debounce <= 0 {
		c.debounce = DefaultDebounce
	}
	if c.saveTimeout <= 0 {
		c.saveTimeout = DefaultSaveTimeout
	}
	if c.clock == nil {
		c.clock = SystemClock{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.snapshot == nil {
		c.snapshot = func() Timetable { return Timetable{} }
	}
	return c
}

// ID returns the server-assigned id, empty until the first successful save.
func (c *Coordinator) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// SetID adopts an id, e.g. one restored from the local cache.
func (c *Coordinator) SetID(id string) {
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}

// State returns the current persistence state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns a snapshot of the coordinator state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Coordinator) statusLocked() Status {
	return Status{State: c.state, ID: c.id, LastSaveTime: c.lastSave, LastErr: c.lastErr}
}

// ScheduleAutoSave arms the debounce timer, cancelling any armed one.
// Only the last timer armed before a quiet period saves.
func (c *Coordinator) ScheduleAutoSave() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.cancelTimerLocked()
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.debounce, func() { c.fire(gen) })
	st := c.setStateLocked(StatePendingSave)
	c.mu.Unlock()
	c.notify(st)
}

// Pending reports whether a debounce timer is armed.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if c.disposed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.saveTimeout)
	defer cancel()
	res := c.save(ctx, true)
	if !res.OK() {
		c.logger.Warn("auto-save failed", "fallback", res.Fallback, "error", res.Err)
	}
}

// SaveNow cancels any pending debounce and saves immediately, returning once
// the save has finished.
func (c *Coordinator) SaveNow(ctx context.Context) Result {
	c.mu.Lock()
	st := c.state
	switch {
	case c.disposed:
		c.mu.Unlock()
		return Result{State: st, Err: ErrDisposed}
	case c.inflight > 0:
		c.mu.Unlock()
		return Result{State: st, Err: fmt.Errorf("%w: save already in progress", ErrIllegalTransition)}
	}
	c.cancelTimerLocked()
	c.mu.Unlock()
	return c.save(ctx, false)
}

func (c *Coordinator) save(ctx context.Context, auto bool) Result {
	t := c.snapshot()

	c.mu.Lock()
	if err := checkTransition(c.state, StateSaving); err != nil {
		st := c.state
		c.mu.Unlock()
		return Result{State: st, Err: err}
	}
	c.inflight++
	st := c.setStateLocked(StateSaving)
	if t.ID == "" {
		t.ID = c.id
	}
	c.mu.Unlock()
	c.notify(st)

	resp, err := c.callSave(ctx, t)

	if err != nil {
		fallback := c.writeFallback(ctx, t)
		c.mu.Lock()
		c.inflight--
		c.lastErr = err
		st := c.finishLocked(StateSaveFailed)
		c.mu.Unlock()
		c.notify(st)
		c.logger.Debug("save failed", "auto", auto, "fallback", fallback, "error", err)
		return Result{State: StateSaveFailed, ID: t.ID, Fallback: fallback, Message: resp.Message, Err: err}
	}

	c.mu.Lock()
	c.inflight--
	if c.id == "" && resp.Data != nil {
		c.id = resp.Data.ID
	}
	c.lastSave = c.clock.Now()
	c.lastErr = nil
	id := c.id
	st = c.finishLocked(StateSaved)
	c.mu.Unlock()
	c.notify(st)
	c.logger.Debug("timetable saved", "auto", auto, "id", id, "slots", t.Slots.Len())
	return Result{State: StateSaved, ID: id, Message: resp.Message}
}

func (c *Coordinator) callSave(ctx context.Context, t Timetable) (Response, error) {
	if c.remote == nil {
		return Response{}, ErrRemoteUnavailable
	}
	resp, err := c.remote.Save(ctx, NewSaveRequest(t))
	if err != nil {
		return resp, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "save rejected"
		}
		return resp, fmt.Errorf("%w: %s", ErrRemoteUnavailable, msg)
	}
	return resp, nil
}

// finishLocked records the outcome of a save unless a newer debounce timer
// has been armed meanwhile or another save is still running.
func (c *Coordinator) finishLocked(outcome State) Status {
	if c.timer != nil || c.inflight > 0 {
		return c.statusLocked()
	}
	return c.setStateLocked(outcome)
}

func (c *Coordinator) writeFallback(ctx context.Context, t Timetable) bool {
	if c.cache == nil {
		return false
	}
	if err := c.WriteLocal(ctx, t); err != nil {
		c.logger.Warn("local snapshot write failed", "key", c.cacheKey, "error", err)
		return false
	}
	return true
}

// Load fetches a timetable from the remote. On success the coordinator adopts
// its id and returns to idle; no debounce is involved.
func (c *Coordinator) Load(ctx context.Context, id string) (Timetable, Result) {
	if c.remote == nil {
		return Timetable{}, Result{State: c.State(), ID: id, Err: ErrRemoteUnavailable}
	}
	resp, err := c.remote.Load(ctx, id)
	if err == nil && (!resp.Success || resp.Data == nil) {
		err = fmt.Errorf("load %s: %s", id, orDefault(resp.Message, "no data"))
	}
	if err != nil {
		return Timetable{}, Result{State: c.State(), ID: id, Message: resp.Message, Err: err}
	}

	t, err := resp.Data.Timetable()
	if err != nil {
		return Timetable{}, Result{State: c.State(), ID: id, Err: err}
	}
	if t.ID == "" {
		t.ID = id
	}

	c.mu.Lock()
	c.cancelTimerLocked()
	c.id = t.ID
	c.lastErr = nil
	st := c.setStateLocked(StateIdle)
	c.mu.Unlock()
	c.notify(st)
	return t, Result{State: StateIdle, ID: t.ID, Message: resp.Message}
}

// Delete removes a timetable remotely. When id is the timetable being edited
// the pending save is cancelled, the id is forgotten and the local snapshot
// purged; deleting any other timetable leaves the coordinator as it was.
func (c *Coordinator) Delete(ctx context.Context, id string) Result {
	if c.remote == nil {
		return Result{State: c.State(), ID: id, Err: ErrRemoteUnavailable}
	}
	if err := c.remote.Delete(ctx, id); err != nil {
		return Result{State: c.State(), ID: id, Err: err}
	}

	c.mu.Lock()
	if c.id == "" || c.id != id {
		st := c.state
		c.mu.Unlock()
		return Result{State: st, ID: id, Message: "deleted"}
	}
	c.cancelTimerLocked()
	c.id = ""
	c.lastSave = time.Time{}
	c.lastErr = nil
	st := c.setStateLocked(StateIdle)
	c.mu.Unlock()
	c.notify(st)

	if c.cache != nil {
		if err := c.cache.Delete(ctx, c.cacheKey); err != nil && !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("purging local snapshot failed", "key", c.cacheKey, "error", err)
		}
	}
	return Result{State: StateIdle, ID: id, Message: "deleted"}
}

// List returns the remote timetables for a subject.
func (c *Coordinator) List(ctx context.Context, subjectID int) ([]Summary, error) {
	if c.remote == nil {
		return nil, ErrRemoteUnavailable
	}
	return c.remote.List(ctx, subjectID)
}

// WriteLocal overwrites the local snapshot with t.
func (c *Coordinator) WriteLocal(ctx context.Context, t Timetable) error {
	if c.cache == nil {
		return errors.New("no local cache configured")
	}
	data, err := encodeLocal(t, c.clock.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := c.cache.Put(ctx, c.cacheKey, data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// ReadLocal returns the local snapshot, or ErrCacheMiss.
func (c *Coordinator) ReadLocal(ctx context.Context) (Timetable, error) {
	if c.cache == nil {
		return Timetable{}, ErrCacheMiss
	}
	data, err := c.cache.Get(ctx, c.cacheKey)
	if err != nil {
		return Timetable{}, err
	}
	return decodeLocal(data)
}

// Dispose cancels any pending save. Later calls to ScheduleAutoSave are ignored
// and a timer that was already firing becomes a no-op.
func (c *Coordinator) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
	c.disposed = true
}

// cancelTimerLocked stops the armed timer and invalidates its callback even
// if the runtime already started it.
func (c *Coordinator) cancelTimerLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
		if c.state == StatePendingSave && c.inflight == 0 {
			c.state = StateIdle
		} else if c.state == StatePendingSave {
			c.state = StateSaving
		}
	}
}

func (c *Coordinator) setStateLocked(to State) Status {
	if err := checkTransition(c.state, to); err != nil {
		c.logger.Debug("ignoring transition", "error", err)
		return c.statusLocked()
	}
	c.state = to
	return c.statusLocked()
}

func (c *Coordinator) notify(st Status) {
	if c.onChange != nil {
		c.onChange(st)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
