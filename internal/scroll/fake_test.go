package scroll

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/robinovitch61/uiscroll/internal/eventbus"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

type fakeElement struct {
	index  int
	width  int
	height int
}

func (e *fakeElement) Dimensions() (int, int) {
	return e.width, e.height
}

// fakeViewport lays elements out one after another, each sizeOf(index) long. Unless horizontal, elements and the
// viewport are square
type fakeViewport struct {
	mu         sync.Mutex
	offset     int
	size       int
	horizontal bool
	elements   []Element
	sizeOf     func(index int) int

	// positions records the position of every InsertElement call
	positions []int

	failInsert  func(index int) error
	nilElements bool
	forgetful   bool
}

func newFakeViewport(size int) *fakeViewport {
	return &fakeViewport{size: size, sizeOf: func(int) int { return 1 }}
}

func (v *fakeViewport) ScrollOffset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

func (v *fakeViewport) SetScrollOffset(offset int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = offset
}

func (v *fakeViewport) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.horizontal {
		return v.size, 1
	}
	return v.size, v.size
}

func (v *fakeViewport) Elements() []Element {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.elements)
}

func (v *fakeViewport) InsertElement(pos int, item Item[int]) (Element, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failInsert != nil {
		if err := v.failInsert(item.Index); err != nil {
			return nil, err
		}
	}
	v.positions = append(v.positions, pos)
	if v.nilElements {
		return nil, nil
	}
	size := v.sizeOf(item.Index)
	el := &fakeElement{index: item.Index, width: size, height: size}
	if v.horizontal {
		el.height = 1
	}
	if !v.forgetful {
		v.elements = slices.Insert(v.elements, pos, Element(el))
	}
	return el, nil
}

func (v *fakeViewport) RemoveElement(el Element) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := slices.Index(v.elements, el)
	if i < 0 {
		return errors.New("unknown element")
	}
	v.elements = slices.Delete(v.elements, i, i+1)
	return nil
}

func (v *fakeViewport) scrollTo(offset int) {
	v.SetScrollOffset(offset)
}

func (v *fakeViewport) resize(size int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.size = size
}

// indexes returns the item indexes of the rendered elements in display order
func (v *fakeViewport) indexes() []int {
	var res []int
	for _, el := range v.Elements() {
		res = append(res, el.(*fakeElement).index)
	}
	return res
}

// collection serves the items lo..hi, where an item's data is its index
func collection(lo, hi int) Datasource[int] {
	return DatasourceFunc[int](func(_ context.Context, index, count int) ([]int, error) {
		var res []int
		for i := max(index, lo); i < index+count && i <= hi; i++ {
			res = append(res, i)
		}
		return res, nil
	})
}

func testSettings(bufferSize, padding int) Settings {
	return Settings{BufferSize: bufferSize, Padding: padding, MinIndex: ptr.To(0)}
}

func indexesOf(b *Buffer[int]) []int {
	var res []int
	for _, item := range b.Items() {
		res = append(res, item.Index)
	}
	return res
}

func seq(lo, hi int) []int {
	var res []int
	for i := lo; i <= hi; i++ {
		res = append(res, i)
	}
	return res
}

// loaded returns an engine whose buffer holds lo..hi, rendered
func loaded(t *testing.T, settings Settings, vp *fakeViewport, lo, hi int) *engine[int] {
	t.Helper()
	settings.StartIndex = lo
	e := newEngine[int](settings, vp)
	e.state(Forward).Pending = seq(lo, hi)
	_, err := e.render()
	require.NoError(t, err)
	e.adjust()
	return e
}

// recorder is an eventbus.Publisher that keeps every event for inspection
type recorder struct {
	ch chan eventbus.Event
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan eventbus.Event, 10000)}
}

func (r *recorder) Publish(e eventbus.Event) {
	r.ch <- e
}

// waitFor returns the first event of type eventType matching pred, failing the test after a timeout
func (r *recorder) waitFor(t *testing.T, eventType string, pred func(eventbus.Event) bool) eventbus.Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-r.ch:
			if e.Type() == eventType && (pred == nil || pred(e)) {
				return e
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", eventType)
			return nil
		}
	}
}

// settledAt waits for the workflow to go idle with a snapshot satisfying pred
func (r *recorder) settledAt(t *testing.T, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	e := r.waitFor(t, EventIdle, func(e eventbus.Event) bool {
		return pred(e.(IdleEvent).Snapshot)
	})
	return e.(IdleEvent).Snapshot
}

func describe(s Snapshot) string {
	return fmt.Sprintf("%+v", s)
}
