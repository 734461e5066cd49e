package scroll

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_BackwardShortPageAlignsToEdge(t *testing.T) {
	vp := newFakeViewport(5)
	e := loaded(t, testSettings(10, 5), vp, 3, 12)
	e.state(Backward).Pending = []int{100, 101, 102}

	inserted, err := e.render()
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)
	assert.Equal(t, seq(0, 12), indexesOf(e.buffer))
	assert.Equal(t, seq(0, 12), vp.indexes())
	item, ok := e.buffer.Get(0)
	require.True(t, ok)
	assert.Equal(t, 100, item.Data)
	assert.NoError(t, e.buffer.Validate())
}

func TestRender_AntiJump(t *testing.T) {
	vp := newFakeViewport(5)
	vp.sizeOf = func(index int) int {
		if index < 10 {
			return 2
		}
		return 1
	}
	e := loaded(t, testSettings(10, 5), vp, 10, 19)
	vp.scrollTo(3)
	first, _, ok := e.visibleIndexes()
	require.True(t, ok)
	assert.Equal(t, 13, first)

	e.state(Backward).Pending = []int{7, 8, 9}
	e.state(Forward).Pending = []int{20, 21}
	_, err := e.render()
	require.NoError(t, err)

	assert.Equal(t, 3+3*2, vp.ScrollOffset(), "only backward inserts move the offset")
	assert.Equal(t, 6, e.takeShift())
	first, _, ok = e.visibleIndexes()
	require.True(t, ok)
	assert.Equal(t, 13, first, "visible content did not move")
	assert.Equal(t, seq(7, 21), vp.indexes())
}

func TestRender_InsertPositionsFromEdges(t *testing.T) {
	vp := newFakeViewport(5)
	e := loaded(t, testSettings(10, 5), vp, 10, 19)
	vp.positions = nil

	e.state(Backward).Pending = []int{7, 8, 9}
	e.state(Forward).Pending = []int{20, 21}
	_, err := e.render()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 13, 14}, vp.positions)
	assert.Equal(t, seq(7, 21), vp.indexes())

	vp.positions = nil
	e.state(Forward).Pending = []int{22}
	_, err = e.render()
	require.NoError(t, err)
	assert.Equal(t, []int{15}, vp.positions)
}

func TestRender_FirstPageKeepsStartIndexAtTop(t *testing.T) {
	vp := newFakeViewport(5)
	settings := Settings{StartIndex: 5, BufferSize: 3, Padding: 1}
	e := newEngine[int](settings, vp)
	e.state(Backward).Pending = []int{2, 3, 4}
	e.state(Forward).Pending = []int{5, 6, 7}
	_, err := e.render()
	require.NoError(t, err)
	assert.Equal(t, 3, vp.ScrollOffset())
	assert.Equal(t, seq(2, 7), indexesOf(e.buffer))
	first, _, ok := e.visibleIndexes()
	require.True(t, ok)
	assert.Equal(t, 5, first)
}

func TestRender_AssociationErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(vp *fakeViewport)
	}{
		{
			name: "insert fails",
			setup: func(vp *fakeViewport) {
				vp.failInsert = func(index int) error {
					if index == 11 {
						return errors.New("cannot render")
					}
					return nil
				}
			},
		},
		{
			name:  "no element",
			setup: func(vp *fakeViewport) { vp.nilElements = true },
		},
		{
			name:  "element never shows up in the viewport",
			setup: func(vp *fakeViewport) { vp.forgetful = true },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := newFakeViewport(5)
			e := loaded(t, testSettings(10, 5), vp, 0, 9)
			tt.setup(vp)
			e.state(Forward).Pending = []int{10, 11}
			_, err := e.render()
			var assocErr *RenderAssociationError
			require.ErrorAs(t, err, &assocErr)
		})
	}
}
