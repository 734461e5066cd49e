package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"
)

func TestAdjust_EmptyBuffer(t *testing.T) {
	e := newEngine[int](testSettings(10, 5), newFakeViewport(5))

	fwd := e.state(Forward)
	assert.Equal(t, 0, fwd.StartIndex)
	assert.Equal(t, 10, fwd.Count)
	assert.True(t, fwd.ShouldFetch)
	assert.False(t, fwd.BoundReached)

	bwd := e.state(Backward)
	assert.True(t, bwd.BoundReached, "index 0 is the lower bound")
	assert.False(t, bwd.ShouldFetch)
	assert.Equal(t, 0, bwd.Count)
}

func TestAdjust_FirstPageLoaded(t *testing.T) {
	vp := newFakeViewport(5)
	e := loaded(t, testSettings(10, 5), vp, 0, 9)

	assert.Equal(t, seq(0, 9), indexesOf(e.buffer))
	fwd := e.state(Forward)
	assert.Equal(t, 10, fwd.StartIndex)
	assert.Equal(t, 5, e.buffer.Padding(Forward))
	assert.False(t, fwd.ShouldFetch, "five offscreen items satisfy a padding of five")
	assert.True(t, e.state(Backward).BoundReached)

	vp.scrollTo(1)
	e.adjust()
	assert.Equal(t, 4, e.buffer.Padding(Forward))
	assert.True(t, fwd.ShouldFetch)
	assert.Equal(t, 1, e.buffer.Padding(Backward))
}

func TestAdjust_BackwardStartsOnePageBeforeEdge(t *testing.T) {
	vp := newFakeViewport(5)
	settings := testSettings(10, 5)
	e := loaded(t, settings, vp, 25, 34)

	bwd := e.state(Backward)
	assert.Equal(t, 15, bwd.StartIndex)
	assert.Equal(t, 10, bwd.Count)
	assert.True(t, bwd.ShouldFetch)

	e = loaded(t, settings, newFakeViewport(5), 4, 13)
	bwd = e.state(Backward)
	assert.Equal(t, 0, bwd.StartIndex)
	assert.Equal(t, 4, bwd.Count, "count is clipped by the lower bound")
}

func TestAdjust_MaxIndexBound(t *testing.T) {
	settings := testSettings(10, 5)
	settings.MaxIndex = ptr.To(14)
	vp := newFakeViewport(5)
	e := loaded(t, settings, vp, 0, 9)
	vp.scrollTo(5)
	e.adjust()

	fwd := e.state(Forward)
	assert.Equal(t, 10, fwd.StartIndex)
	assert.Equal(t, 5, fwd.Count)
	assert.True(t, fwd.ShouldFetch)

	e.state(Forward).Pending = seq(10, 14)
	_, err := e.render()
	assert.NoError(t, err)
	e.adjust()
	assert.True(t, fwd.BoundReached)
	assert.False(t, fwd.ShouldFetch)
}

func TestAdjust_UnboundedNegativeIndexes(t *testing.T) {
	settings := Settings{BufferSize: 3, Padding: 1}
	e := newEngine[int](settings, newFakeViewport(2))
	bwd := e.state(Backward)
	assert.Equal(t, -3, bwd.StartIndex)
	assert.Equal(t, 3, bwd.Count)
	assert.False(t, bwd.BoundReached)
	assert.True(t, bwd.ShouldFetch, "nothing is offscreen yet")
}

func TestAdjust_ExhaustedNeverFetches(t *testing.T) {
	vp := newFakeViewport(5)
	e := newEngine[int](testSettings(10, 5), vp)
	e.accept([]response[int]{{request: request{direction: Forward, index: 0, count: 10}, items: seq(0, 2)}})
	_, err := e.render()
	assert.NoError(t, err)

	for _, offset := range []int{0, 1, 2, 5} {
		vp.scrollTo(offset)
		e.adjust()
		assert.True(t, e.state(Forward).Exhausted)
		assert.False(t, e.state(Forward).ShouldFetch, "offset %d", offset)
	}
}

func TestAdjust_ZeroPaddingFetchesUncoveredSides(t *testing.T) {
	settings := Settings{BufferSize: 10}
	e := newEngine[int](settings, newFakeViewport(5))
	assert.True(t, e.state(Forward).ShouldFetch)
	assert.True(t, e.state(Backward).ShouldFetch, "an empty viewport is uncovered on both sides")

	vp := newFakeViewport(5)
	e = loaded(t, settings, vp, 0, 9)
	bwd := e.state(Backward)
	assert.Equal(t, -10, bwd.StartIndex)
	assert.True(t, bwd.ShouldFetch, "nothing is buffered before the first visible item")
	assert.False(t, e.state(Forward).ShouldFetch)

	vp.scrollTo(1)
	e.adjust()
	assert.False(t, bwd.ShouldFetch)

	vp.scrollTo(0)
	bwd.Exhausted = true
	e.adjust()
	assert.False(t, bwd.ShouldFetch, "an exhausted side stays put")
}
