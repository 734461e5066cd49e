package scroll

// adjust recomputes where the next request of each direction starts, how many items it asks for, the padding
// counters and whether each direction should fetch at all
func (e *engine[T]) adjust() {
	l := measure(e.viewport, e.axis)
	minIndex, hasItems := e.buffer.MinIndex()
	maxIndex, _ := e.buffer.MaxIndex()

	// forward
	fwd := e.states[Forward]
	fwd.StartIndex = e.origin
	if hasItems {
		fwd.StartIndex = maxIndex + 1
	}
	fwd.Count = e.settings.BufferSize
	if e.settings.MaxIndex != nil {
		fwd.Count = min(fwd.Count, *e.settings.MaxIndex-fwd.StartIndex+1)
	}

	// backward
	bwd := e.states[Backward]
	edge := e.origin
	if hasItems {
		edge = minIndex
	}
	bwd.Count = e.settings.BufferSize
	if e.settings.MinIndex != nil {
		bwd.Count = min(bwd.Count, edge-*e.settings.MinIndex)
	}
	bwd.StartIndex = edge - max(bwd.Count, 0)

	for _, d := range directions {
		s := e.states[d]
		s.BoundReached = s.Count < 1
		if s.BoundReached {
			s.Count = 0
		}
		padding := l.offscreen(d)
		e.buffer.setPadding(d, padding)
		s.ShouldFetch = !s.Exhausted && !s.BoundReached && (padding < e.settings.Padding || l.uncovered(d))
	}
}

// uncovered is true when the rendered content stops short of the visible window on the side of d. An empty layout
// is uncovered on both sides
func (l layout) uncovered(d Direction) bool {
	n := len(l.starts)
	if n == 0 {
		return true
	}
	switch d {
	case Backward:
		return l.starts[0] >= l.offset
	case Forward:
		return l.starts[n-1]+l.sizes[n-1] < l.offset+l.size
	}
	return false
}
