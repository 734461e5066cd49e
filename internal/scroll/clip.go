package scroll

import "fmt"

// clip removes the outermost items on the side of d that lie offscreen beyond the configured padding. Clipping the
// backward side shifts the scroll offset by the removed size so the visible content stays put
func (e *engine[T]) clip(d Direction) (int, error) {
	if d == None {
		return 0, nil
	}
	l := measure(e.viewport, e.axis)
	excess := l.offscreen(d) - e.settings.Padding
	if excess <= 0 {
		return 0, nil
	}

	items := e.buffer.Items()
	var victims []*Item[T]
	if d == Backward {
		victims = items[:excess]
	} else {
		victims = items[len(items)-excess:]
	}

	removedSize := 0
	for _, item := range victims {
		removedSize += e.axis.elementSize(item.Element)
		if err := e.drop(item); err != nil {
			return 0, err
		}
	}
	if d == Backward {
		e.shiftOffset(-removedSize)
	}
	e.states[d].Exhausted = false
	e.buffer.setPadding(d, e.settings.Padding)
	return excess, nil
}

// drop removes an item from the buffer and its element from the viewport
func (e *engine[T]) drop(item *Item[T]) error {
	e.buffer.Remove(item.Index)
	if item.Element == nil {
		return nil
	}
	if err := e.viewport.RemoveElement(item.Element); err != nil {
		return &RenderAssociationError{Index: item.Index, Err: fmt.Errorf("removing element: %w", err)}
	}
	return nil
}

// remove deletes every item matching pred and renumbers the survivors so indexes stay contiguous from the current
// minimum. Content before the scroll offset that disappears is compensated so the visible content stays put
func (e *engine[T]) remove(pred func(Item[T]) bool) (int, error) {
	items := e.buffer.Items()
	if len(items) == 0 {
		return 0, nil
	}
	l := measure(e.viewport, e.axis)
	first := items[0].Index

	removed, removedBefore := 0, 0
	var survivors []*Item[T]
	for i, item := range items {
		if !pred(*item) {
			survivors = append(survivors, item)
			continue
		}
		if i < len(l.starts) && l.starts[i]+l.sizes[i] <= l.offset {
			removedBefore += l.sizes[i]
		}
		if err := e.drop(item); err != nil {
			return removed, err
		}
		removed++
	}
	if removed == 0 {
		return 0, nil
	}

	e.buffer.Clear()
	for i, item := range survivors {
		item.Index = first + i
		if err := e.buffer.Put(item); err != nil {
			return removed, &RenderAssociationError{Index: item.Index, Err: err}
		}
	}
	if len(survivors) == 0 {
		e.origin = first
	}
	if removedBefore > 0 {
		e.shiftOffset(-removedBefore)
	}
	return removed, nil
}
