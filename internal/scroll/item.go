package scroll

// Element is a rendered node owned by a Viewport. Implementations must be comparable, e.g. pointers
type Element interface {
	Dimensions() (width, height int)
}

// Item is the engine's envelope around one entry of the collection. Data is opaque to the engine
type Item[T any] struct {
	Index   int
	Data    T
	Element Element
}

// Viewport is the scrollable container the engine renders into. All calls happen on the goroutine running the
// Workflow, but implementations shared with a UI must still guard their own state
type Viewport[T any] interface {
	// ScrollOffset returns the current scroll position along the configured axis
	ScrollOffset() int
	// SetScrollOffset moves the scroll position along the configured axis
	SetScrollOffset(offset int)
	// Size returns the visible width and height
	Size() (width, height int)
	// Elements returns the rendered children in display order
	Elements() []Element
	// InsertElement renders item and inserts it so that it becomes child number pos
	InsertElement(pos int, item Item[T]) (Element, error)
	// RemoveElement removes a previously inserted child
	RemoveElement(el Element) error
}

type axis bool

const (
	vertical   axis = false
	horizontal axis = true
)

func (a axis) elementSize(el Element) int {
	if el == nil {
		return 0
	}
	w, h := el.Dimensions()
	if a == horizontal {
		return w
	}
	return h
}

func (a axis) viewportSize(w, h int) int {
	if a == horizontal {
		return w
	}
	return h
}

// layout is the measured position of every rendered element along the axis
type layout struct {
	offset int
	size   int
	starts []int
	sizes  []int
}

func measure[T any](vp Viewport[T], a axis) layout {
	elements := vp.Elements()
	l := layout{
		offset: vp.ScrollOffset(),
		size:   a.viewportSize(vp.Size()),
		starts: make([]int, len(elements)),
		sizes:  make([]int, len(elements)),
	}
	pos := 0
	for i, el := range elements {
		l.starts[i] = pos
		l.sizes[i] = a.elementSize(el)
		pos += l.sizes[i]
	}
	return l
}

// offscreen returns the number of elements entirely outside the visible window on the side of d
func (l layout) offscreen(d Direction) int {
	n := 0
	switch d {
	case Backward:
		for i := range l.starts {
			if l.starts[i]+l.sizes[i] > l.offset {
				break
			}
			n++
		}
	case Forward:
		end := l.offset + l.size
		for i := len(l.starts) - 1; i >= 0; i-- {
			if l.starts[i] < end {
				break
			}
			n++
		}
	}
	return n
}

// visibleRange returns the positions of the first and last elements intersecting the visible window
func (l layout) visibleRange() (first, last int, ok bool) {
	first, last = -1, -1
	end := l.offset + l.size
	for i := range l.starts {
		if l.starts[i]+l.sizes[i] > l.offset && l.starts[i] < end {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last, first >= 0
}
