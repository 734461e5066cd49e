package scroll

// DirectionState is the fetch bookkeeping for one side of the buffer
type DirectionState[T any] struct {
	// StartIndex is the first index the next request for this direction asks for
	StartIndex int

	// Count is the number of items the next request asks for
	Count int

	// ShouldFetch is true when the next cycle should request items for this direction
	ShouldFetch bool

	// Exhausted is true once the datasource returned fewer items than requested
	Exhausted bool

	// BoundReached is true when the configured index bound leaves nothing to request
	BoundReached bool

	// Pending holds fetched items waiting to be rendered
	Pending []T
}

// engine holds the state one cycle operates on. It is not safe for concurrent use: the Workflow confines it to the
// goroutine running its scheduler
type engine[T any] struct {
	settings Settings
	axis     axis
	viewport Viewport[T]
	buffer   *Buffer[T]

	// origin is the index the buffer grows from while it is empty
	origin int

	states [3]*DirectionState[T]

	// shift accumulates the scroll offset changes made by the engine itself
	shift int
}

func newEngine[T any](settings Settings, vp Viewport[T]) *engine[T] {
	e := &engine[T]{
		settings: settings,
		axis:     settings.axis(),
		viewport: vp,
		buffer:   NewBuffer[T](),
		origin:   settings.StartIndex,
	}
	for _, d := range directions {
		e.states[d] = &DirectionState[T]{}
	}
	e.adjust()
	return e
}

func (e *engine[T]) state(d Direction) *DirectionState[T] {
	return e.states[d]
}

// shouldFetchAny is true if either direction wants another fetch
func (e *engine[T]) shouldFetchAny() bool {
	for _, d := range directions {
		if e.states[d].ShouldFetch {
			return true
		}
	}
	return false
}

// reset discards every item, element and pending result, and makes index the new origin
func (e *engine[T]) reset(index int) error {
	var firstErr error
	for _, item := range e.buffer.Items() {
		if item.Element == nil {
			continue
		}
		if err := e.viewport.RemoveElement(item.Element); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.buffer.Clear()
	e.origin = index
	for _, d := range directions {
		e.states[d] = &DirectionState[T]{}
	}
	e.viewport.SetScrollOffset(0)
	e.adjust()
	return firstErr
}

// shiftOffset moves the scroll offset by delta, never below zero, and records what the viewport actually applied
func (e *engine[T]) shiftOffset(delta int) {
	before := e.viewport.ScrollOffset()
	e.viewport.SetScrollOffset(max(before+delta, 0))
	e.shift += e.viewport.ScrollOffset() - before
}

// takeShift returns and resets the accumulated offset changes
func (e *engine[T]) takeShift() int {
	s := e.shift
	e.shift = 0
	return s
}

// visibleIndexes returns the indexes of the first and last items intersecting the viewport
func (e *engine[T]) visibleIndexes() (first, last int, ok bool) {
	l := measure(e.viewport, e.axis)
	firstPos, lastPos, ok := l.visibleRange()
	if !ok {
		return 0, 0, false
	}
	items := e.buffer.Items()
	if lastPos >= len(items) {
		return 0, 0, false
	}
	return items[firstPos].Index, items[lastPos].Index, true
}
