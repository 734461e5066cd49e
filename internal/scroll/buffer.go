package scroll

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Buffer is the materialized window of Items, ordered by index
type Buffer[T any] struct {
	// items maps index -> *Item[T]
	items *redblacktree.Tree

	// padding is the number of offscreen items on each side, written by adjust and read by clip
	padding [3]int
}

func NewBuffer[T any]() *Buffer[T] {
	return &Buffer[T]{items: redblacktree.NewWithIntComparator()}
}

func (b *Buffer[T]) Len() int {
	return b.items.Size()
}

func (b *Buffer[T]) Empty() bool {
	return b.items.Empty()
}

// MinIndex returns the lowest materialized index
func (b *Buffer[T]) MinIndex() (int, bool) {
	n := b.items.Left()
	if n == nil {
		return 0, false
	}
	return n.Key.(int), true
}

// MaxIndex returns the highest materialized index
func (b *Buffer[T]) MaxIndex() (int, bool) {
	n := b.items.Right()
	if n == nil {
		return 0, false
	}
	return n.Key.(int), true
}

func (b *Buffer[T]) Get(index int) (*Item[T], bool) {
	v, found := b.items.Get(index)
	if !found {
		return nil, false
	}
	return v.(*Item[T]), true
}

// Put adds an item. An index may only be materialized once
func (b *Buffer[T]) Put(item *Item[T]) error {
	if _, found := b.items.Get(item.Index); found {
		return fmt.Errorf("index %d already buffered", item.Index)
	}
	b.items.Put(item.Index, item)
	return nil
}

func (b *Buffer[T]) Remove(index int) (*Item[T], bool) {
	item, found := b.Get(index)
	if !found {
		return nil, false
	}
	b.items.Remove(index)
	return item, true
}

// Items returns the buffered items in ascending index order
func (b *Buffer[T]) Items() []*Item[T] {
	res := make([]*Item[T], 0, b.items.Size())
	it := b.items.Iterator()
	for it.Next() {
		res = append(res, it.Value().(*Item[T]))
	}
	return res
}

// Padding returns the offscreen item count on the side of d as of the last adjust
func (b *Buffer[T]) Padding(d Direction) int {
	return b.padding[d]
}

func (b *Buffer[T]) setPadding(d Direction, n int) {
	b.padding[d] = n
}

func (b *Buffer[T]) Clear() {
	b.items.Clear()
	b.padding = [3]int{}
}

// Validate checks that indexes are strictly increasing without gaps
func (b *Buffer[T]) Validate() error {
	prev, first := 0, true
	it := b.items.Iterator()
	for it.Next() {
		idx := it.Key().(int)
		item := it.Value().(*Item[T])
		if item.Index != idx {
			return fmt.Errorf("item at key %d reports index %d", idx, item.Index)
		}
		if !first && idx != prev+1 {
			return fmt.Errorf("gap between index %d and %d", prev, idx)
		}
		prev, first = idx, false
	}
	return nil
}
