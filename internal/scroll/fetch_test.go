package scroll

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	e := loaded(t, testSettings(10, 5), newFakeViewport(5), 20, 29)
	vp := e.viewport.(*fakeViewport)
	vp.scrollTo(3)
	e.adjust()

	reqs := e.plan()
	assert.Equal(t, []request{
		{direction: Backward, index: 10, count: 10},
		{direction: Forward, index: 30, count: 10},
	}, reqs)
}

func TestFetchAll_JoinIsIndependentOfSettlementOrder(t *testing.T) {
	reqs := []request{
		{direction: Backward, index: 0, count: 2},
		{direction: Forward, index: 10, count: 2},
	}
	forwardDone := make(chan struct{})
	ds := DatasourceFunc[int](func(ctx context.Context, index, count int) ([]int, error) {
		if index == 0 {
			// backward settles only after forward did
			select {
			case <-forwardDone:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		} else {
			defer close(forwardDone)
		}
		return intRange(index, count), nil
	})

	responses, err := fetchAll(context.Background(), ds, reqs)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, Backward, responses[0].direction)
	assert.Equal(t, []int{0, 1}, responses[0].items)
	assert.Equal(t, Forward, responses[1].direction)
	assert.Equal(t, []int{10, 11}, responses[1].items)
}

func TestFetchAll_Failure(t *testing.T) {
	boom := errors.New("boom")
	ds := DatasourceFunc[int](func(_ context.Context, index, count int) ([]int, error) {
		if index > 0 {
			return nil, boom
		}
		return intRange(index, count), nil
	})
	responses, err := fetchAll(context.Background(), ds, []request{
		{direction: Backward, index: -5, count: 5},
		{direction: Forward, index: 5, count: 5},
	})
	assert.Nil(t, responses)
	require.ErrorIs(t, err, boom)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, Forward, fetchErr.Direction)
	assert.Equal(t, 5, fetchErr.Index)
	assert.Equal(t, 5, fetchErr.Count)
}

func TestFetchAll_TruncatesOversizedPages(t *testing.T) {
	ds := DatasourceFunc[int](func(_ context.Context, index, count int) ([]int, error) {
		return intRange(index, count+3), nil
	})
	responses, err := fetchAll(context.Background(), ds, []request{{direction: Forward, index: 0, count: 2}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, responses[0].items)
}

func TestAccept_ShortPageExhausts(t *testing.T) {
	e := newEngine[int](testSettings(10, 5), newFakeViewport(5))
	e.accept([]response[int]{{request: request{direction: Forward, index: 0, count: 10}, items: seq(0, 2)}})
	fwd := e.state(Forward)
	assert.True(t, fwd.Exhausted)
	assert.Equal(t, seq(0, 2), fwd.Pending)

	e = newEngine[int](testSettings(10, 5), newFakeViewport(5))
	e.accept([]response[int]{{request: request{direction: Forward, index: 0, count: 10}}})
	assert.True(t, e.state(Forward).Exhausted, "an empty page exhausts too")
}

func TestFetch_FailureLeavesStateUntouched(t *testing.T) {
	vp := newFakeViewport(5)
	e := loaded(t, testSettings(10, 5), vp, 20, 29)
	vp.scrollTo(3)
	e.adjust()
	before := *e.state(Backward)
	beforeFwd := *e.state(Forward)

	boom := errors.New("forward rejected")
	ds := DatasourceFunc[int](func(_ context.Context, index, count int) ([]int, error) {
		if index >= 30 {
			return nil, boom
		}
		return intRange(index, count), nil
	})
	_, err := fetchAll(context.Background(), ds, e.plan())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, before, *e.state(Backward))
	assert.Equal(t, beforeFwd, *e.state(Forward))
	assert.Equal(t, seq(20, 29), indexesOf(e.buffer))
}
