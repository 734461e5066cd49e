package scroll

import (
	"errors"
	"fmt"
)

var errNilElement = errors.New("viewport returned no element")

// render merges pending items into the buffer, gives every new item an element and keeps the visible content in
// place when items are inserted before it. On an empty buffer the start index ends up at the top. Any error leaves
// buffer and viewport out of sync and is fatal
func (e *engine[T]) render() (int, error) {
	prevMin, hadItems := e.buffer.MinIndex()
	prevMax, _ := e.buffer.MaxIndex()
	prevLen := e.buffer.Len()
	backwardEdge, forwardStart := e.origin, e.origin
	if hadItems {
		backwardEdge, forwardStart = prevMin, prevMax+1
	}

	var added []*Item[T]
	bwd := e.states[Backward]
	for i, data := range bwd.Pending {
		added = append(added, &Item[T]{Index: backwardEdge - len(bwd.Pending) + i, Data: data})
	}
	fwd := e.states[Forward]
	for i, data := range fwd.Pending {
		added = append(added, &Item[T]{Index: forwardStart + i, Data: data})
	}
	nBwd := len(bwd.Pending)
	bwd.Pending, fwd.Pending = nil, nil

	for _, item := range added {
		if err := e.buffer.Put(item); err != nil {
			return 0, &RenderAssociationError{Index: item.Index, Err: err}
		}
	}

	// backward items go in front of everything, forward items after everything
	delta := 0
	for i, item := range added {
		pos := i
		if i >= nBwd {
			pos = prevLen + i
		}
		if err := e.insert(item, pos); err != nil {
			return 0, err
		}
		if item.Index < backwardEdge {
			delta += e.axis.elementSize(item.Element)
		}
	}

	if err := e.verify(); err != nil {
		return 0, err
	}
	if delta != 0 {
		e.shiftOffset(delta)
	}
	return len(added), nil
}

func (e *engine[T]) insert(item *Item[T], pos int) error {
	el, err := e.viewport.InsertElement(pos, *item)
	if err != nil {
		return &RenderAssociationError{Index: item.Index, Err: err}
	}
	if el == nil {
		return &RenderAssociationError{Index: item.Index, Err: errNilElement}
	}
	item.Element = el
	return nil
}

// verify checks that the viewport children are exactly the buffered elements, in order
func (e *engine[T]) verify() error {
	elements := e.viewport.Elements()
	items := e.buffer.Items()
	for i, item := range items {
		if i >= len(elements) {
			return &RenderAssociationError{Index: item.Index, Err: fmt.Errorf("viewport has only %d elements", len(elements))}
		}
		if elements[i] != item.Element {
			return &RenderAssociationError{Index: item.Index, Err: fmt.Errorf("element at position %d belongs to another item", i)}
		}
	}
	if len(elements) > len(items) {
		return &RenderAssociationError{Index: -1, Err: fmt.Errorf("viewport has %d elements for %d items", len(elements), len(items))}
	}
	return nil
}
