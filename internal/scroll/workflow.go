package scroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/robinovitch61/uiscroll/internal/dev"
	"github.com/robinovitch61/uiscroll/internal/eventbus"
	"k8s.io/utils/ptr"
)

var (
	errStopped        = errors.New("workflow stopped")
	errAlreadyRunning = errors.New("workflow is already running")
)

type options struct {
	log logr.Logger
	pub eventbus.Publisher
	id  string
}

type Option func(*options)

func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithPublisher(pub eventbus.Publisher) Option {
	return func(o *options) { o.pub = pub }
}

// WithID replaces the generated workflow ID
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

type discardPublisher struct{}

func (discardPublisher) Publish(eventbus.Event) {}

// Workflow keeps a Viewport filled with items from a Datasource as the viewport scrolls. Exported methods are safe
// to call from any goroutine: they queue work for the goroutine executing Run, which is the only one that touches
// the viewport and the buffer
type Workflow[T any] struct {
	id     string
	log    logr.Logger
	pub    eventbus.Publisher
	ds     Datasource[T]
	engine *engine[T]
	sched  *scheduler

	running  atomic.Bool
	disposed atomic.Bool

	// owned by the Run goroutine
	ctx           context.Context
	state         State
	direction     Direction
	lastDirection Direction
	lastOffset    int
	retrigger     bool
	paused        bool
	pendingReload *int
	loading       bool
	cycle         int
	generation    int

	snapMu sync.RWMutex
	snap   Snapshot
}

// New validates settings and creates an idle workflow. Nothing is fetched until Run is called
func New[T any](ds Datasource[T], vp Viewport[T], settings Settings, opts ...Option) (*Workflow[T], error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, errors.New("datasource is required")
	}
	if vp == nil {
		return nil, errors.New("viewport is required")
	}
	o := options{log: logr.Discard(), pub: discardPublisher{}, id: uuid.NewString()}
	for _, opt := range opts {
		opt(&o)
	}
	w := &Workflow[T]{
		id:     o.id,
		log:    o.log.WithName("scroll").WithValues("workflowID", o.id),
		pub:    o.pub,
		ds:     ds,
		engine: newEngine(settings, vp),
		sched:  newScheduler(),
	}
	w.refresh()
	return w, nil
}

func (w *Workflow[T]) ID() string {
	return w.id
}

// Run loads the initial page and then processes work until ctx is done, Dispose is called or rendering fails. It
// may be called once. A render failure is returned as a *RenderAssociationError
func (w *Workflow[T]) Run(ctx context.Context) error {
	if w.disposed.Load() {
		return ErrDisposed
	}
	if !w.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.ctx = ctx
	w.lastOffset = w.engine.viewport.ScrollOffset()

	w.log.V(dev.DEFAULT).Info("Starting workflow", "settings", w.engine.settings)
	w.sched.post(func() error {
		if w.state == Cycling {
			return nil
		}
		return w.startCycle(None)
	})

	for {
		t, ok := w.sched.next(ctx)
		if !ok {
			if w.state != Disposed {
				w.shutdown()
				w.refresh()
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		}
		err := t()
		w.refresh()
		if errors.Is(err, errStopped) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Scroll resolves the direction of movement from the viewport's scroll offset and starts a cycle for it
func (w *Workflow[T]) Scroll() {
	w.sched.post(func() error {
		if w.state == Cycling {
			w.retrigger = true
			return nil
		}
		curr := w.engine.viewport.ScrollOffset()
		d := ResolveDirection(w.lastOffset, curr)
		w.lastOffset = curr
		return w.trigger(d)
	})
}

// Trigger starts a cycle in direction d. Triggering None does nothing
func (w *Workflow[T]) Trigger(d Direction) {
	w.sched.post(func() error {
		if w.state == Cycling {
			w.retrigger = true
			return nil
		}
		return w.trigger(d)
	})
}

// Reload discards everything and starts again from the configured start index
func (w *Workflow[T]) Reload() {
	w.sched.post(func() error { return w.reload(w.engine.settings.StartIndex) })
}

// ReloadAt discards everything and starts again from index
func (w *Workflow[T]) ReloadAt(index int) error {
	if !w.engine.settings.inBounds(index) {
		return fmt.Errorf("reload at index %d: %w", index, ErrOutOfBounds)
	}
	w.sched.post(func() error { return w.reload(index) })
	return nil
}

// Append adds items after the last buffered item and renders them right away
func (w *Workflow[T]) Append(data ...T) {
	w.mutate("append", func() error {
		w.engine.state(Forward).Pending = data
		return nil
	})
}

// Prepend adds items before the first buffered item and renders them right away
func (w *Workflow[T]) Prepend(data ...T) {
	w.mutate("prepend", func() error {
		w.engine.state(Backward).Pending = data
		return nil
	})
}

// Remove deletes every buffered item matching pred. The remaining items are renumbered to stay contiguous
func (w *Workflow[T]) Remove(pred func(Item[T]) bool) {
	w.mutate("remove", func() error {
		n, err := w.engine.remove(pred)
		w.log.V(dev.VERBOSE).Info("Removed items", "count", n)
		return err
	})
}

// Clip trims both sides down to the configured padding
func (w *Workflow[T]) Clip() {
	w.mutate("clip", func() error {
		w.engine.adjust()
		for _, d := range directions {
			if _, err := w.engine.clip(d); err != nil {
				return err
			}
		}
		return nil
	})
}

// Check re-measures the viewport and fetches whatever is missing, for example after a resize. While paused, the
// cycle started by Resume does the check
func (w *Workflow[T]) Check() {
	w.sched.post(func() error {
		switch {
		case w.paused:
			w.log.V(dev.VERBOSE).Info("Paused, deferring check")
			return nil
		case w.state == Cycling:
			w.retrigger = true
			return nil
		}
		return w.startCycle(None)
	})
}

// Pause lets the current cycle finish but starts no new ones until Resume
func (w *Workflow[T]) Pause() {
	w.sched.post(func() error {
		w.paused = true
		return nil
	})
}

// Resume runs a reload requested while paused, or else continues in the last direction of movement, Forward if
// there was none
func (w *Workflow[T]) Resume() {
	w.sched.post(func() error {
		if !w.paused {
			return nil
		}
		w.paused = false
		if index := w.pendingReload; index != nil {
			w.pendingReload = nil
			return w.reload(*index)
		}
		if w.state == Cycling {
			return nil
		}
		d := w.lastDirection
		if d == None {
			d = Forward
		}
		return w.startCycle(d)
	})
}

// Dispose stops the workflow and removes every element it rendered. It is safe to call more than once
func (w *Workflow[T]) Dispose() {
	if !w.disposed.CompareAndSwap(false, true) {
		return
	}
	if !w.sched.post(func() error {
		w.shutdown()
		return errStopped
	}) {
		return
	}
	if !w.running.Load() {
		w.sched.close()
		w.snapMu.Lock()
		w.snap.State = Disposed
		w.snapMu.Unlock()
	}
}

// Snapshot returns the state as of the last processed task
func (w *Workflow[T]) Snapshot() Snapshot {
	w.snapMu.RLock()
	defer w.snapMu.RUnlock()
	return w.snap
}

func (w *Workflow[T]) trigger(d Direction) error {
	if d == None {
		return nil
	}
	if w.paused {
		w.lastDirection = d
		return nil
	}
	return w.startCycle(d)
}

func (w *Workflow[T]) startCycle(d Direction) error {
	w.state = Cycling
	w.direction = d
	if d != None {
		w.lastDirection = d
	}
	w.cycle++
	w.engine.adjust()

	log := w.log.WithValues("cycle", w.cycle, "direction", d)
	log.V(dev.DEBUG).Info("Starting cycle")
	w.pub.Publish(CycleStartedEvent{WorkflowID: w.id, Cycle: w.cycle, Direction: d})

	gen := w.generation
	reqs := w.engine.plan()
	if len(reqs) == 0 {
		w.scheduleRender(gen)
		return nil
	}

	w.loading = true
	ctx, ds := w.ctx, w.ds
	go func() {
		for _, r := range reqs {
			log.V(dev.TRACE).Info("Fetching", "fetchDirection", r.direction, "index", r.index, "count", r.count)
		}
		responses, err := fetchAll(ctx, ds, reqs)
		w.sched.post(func() error { return w.onFetched(gen, responses, err) })
	}()
	return nil
}

func (w *Workflow[T]) onFetched(gen int, responses []response[T], err error) error {
	if gen != w.generation || w.state != Cycling {
		w.log.V(dev.TRACE).Info("Dropping stale fetch result", "generation", gen)
		return nil
	}
	w.loading = false
	if err != nil {
		if w.ctx.Err() != nil {
			return nil
		}
		w.log.Error(err, "Fetch failed, aborting cycle", "cycle", w.cycle)
		w.pub.Publish(FetchFailedEvent{WorkflowID: w.id, Cycle: w.cycle, Err: err})
		w.retrigger = false
		w.toIdle()
		return nil
	}
	w.engine.accept(responses)
	w.scheduleRender(gen)
	return nil
}

func (w *Workflow[T]) scheduleRender(gen int) {
	w.sched.postLatest(func() error {
		if gen != w.generation || w.state != Cycling {
			return nil
		}
		inserted, err := w.engine.render()
		w.lastOffset += w.engine.takeShift()
		if err != nil {
			return w.halt(err)
		}
		return w.finishCycle(inserted)
	})
}

// finishCycle trims the side we moved away from and decides whether another cycle is needed
func (w *Workflow[T]) finishCycle(inserted int) error {
	w.engine.adjust()
	clipped, err := w.engine.clip(w.direction.Opposite())
	w.lastOffset += w.engine.takeShift()
	if err != nil {
		return w.halt(err)
	}
	w.engine.adjust()

	w.log.V(dev.DEBUG).Info("Rendered", "cycle", w.cycle, "inserted", inserted, "clipped", clipped,
		"items", w.engine.buffer.Len())
	w.refresh()
	w.pub.Publish(RenderedEvent{
		WorkflowID: w.id,
		Cycle:      w.cycle,
		Direction:  w.direction,
		Inserted:   inserted,
		Clipped:    clipped,
		Snapshot:   w.Snapshot(),
	})

	// movement during the cycle decides the direction of the next one
	next := w.direction
	if w.retrigger {
		w.retrigger = false
		curr := w.engine.viewport.ScrollOffset()
		if d := ResolveDirection(w.lastOffset, curr); d != None {
			next = d
			w.lastDirection = d
		}
		w.lastOffset = curr
	}

	switch {
	case w.paused:
		w.toIdle()
	case next != w.direction || w.engine.shouldFetchAny():
		return w.startCycle(next)
	default:
		w.toIdle()
	}
	return nil
}

func (w *Workflow[T]) toIdle() {
	w.state = Idle
	w.loading = false
	w.refresh()
	w.pub.Publish(IdleEvent{WorkflowID: w.id, Snapshot: w.Snapshot()})
}

// abandon drops any in-flight fetch and render of the current cycle
func (w *Workflow[T]) abandon() {
	w.generation++
	for _, d := range directions {
		w.engine.state(d).Pending = nil
	}
	w.loading = false
}

func (w *Workflow[T]) reload(index int) error {
	if w.paused {
		w.log.V(dev.VERBOSE).Info("Paused, deferring reload", "index", index)
		w.pendingReload = ptr.To(index)
		return nil
	}
	w.log.V(dev.VERBOSE).Info("Reloading", "index", index)
	w.abandon()
	w.retrigger = false
	err := w.engine.reset(index)
	w.engine.takeShift()
	w.lastOffset = w.engine.viewport.ScrollOffset()
	if err != nil {
		return w.halt(&RenderAssociationError{Index: index, Err: err})
	}
	return w.startCycle(None)
}

// mutate applies an external change to the buffer and renders it immediately
func (w *Workflow[T]) mutate(name string, apply func() error) {
	w.sched.post(func() error {
		w.log.V(dev.VERBOSE).Info("Applying change", "change", name)
		w.abandon()
		w.state = Cycling
		w.direction = None
		if err := apply(); err != nil {
			return w.halt(err)
		}
		inserted, err := w.engine.render()
		w.lastOffset += w.engine.takeShift()
		if err != nil {
			return w.halt(err)
		}
		return w.finishCycle(inserted)
	})
}

func (w *Workflow[T]) halt(err error) error {
	w.log.Error(err, "Halting workflow")
	w.disposed.Store(true)
	w.state = Disposed
	w.loading = false
	w.sched.close()
	w.refresh()
	w.pub.Publish(HaltedEvent{WorkflowID: w.id, Err: err})
	return fmt.Errorf("workflow %s halted: %w", w.id, err)
}

// shutdown releases every element and leaves the workflow disposed
func (w *Workflow[T]) shutdown() {
	w.log.V(dev.DEFAULT).Info("Disposing workflow")
	w.disposed.Store(true)
	w.abandon()
	for _, item := range w.engine.buffer.Items() {
		if err := w.engine.drop(item); err != nil {
			w.log.Error(err, "Removing element on dispose")
		}
	}
	w.state = Disposed
	w.sched.close()
}

// refresh publishes a new snapshot. Only called from the Run goroutine, or before Run starts
func (w *Workflow[T]) refresh() {
	e := w.engine
	s := Snapshot{
		ID:        w.id,
		State:     w.state,
		Paused:    w.paused,
		Cycle:     w.cycle,
		Direction: w.direction,
		Loading:   w.loading,
		Items:     e.buffer.Len(),
		BOF:       e.state(Backward).Exhausted || e.state(Backward).BoundReached,
		EOF:       e.state(Forward).Exhausted || e.state(Forward).BoundReached,
	}
	s.MinIndex, _ = e.buffer.MinIndex()
	s.MaxIndex, _ = e.buffer.MaxIndex()
	s.FirstVisible, s.LastVisible, s.Visible = e.visibleIndexes()

	w.snapMu.Lock()
	w.snap = s
	w.snapMu.Unlock()
}
