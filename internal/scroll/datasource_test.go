package scroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callbackSource struct {
	fail  error
	panic bool
	async bool
}

func (s callbackSource) Get(index, count int, success func([]int), fail func(error)) {
	if s.panic {
		panic("boom")
	}
	respond := func() {
		if s.fail != nil {
			fail(s.fail)
			return
		}
		success(intRange(index, count))
		// later completions are ignored
		fail(errors.New("ignored"))
	}
	if s.async {
		go respond()
		return
	}
	respond()
}

type futureSource struct {
	fail error
}

func (s futureSource) Get(index, count int) *Future[int] {
	f := NewFuture[int]()
	go func() {
		if s.fail != nil {
			f.Reject(s.fail)
			return
		}
		f.Resolve(intRange(index, count))
	}()
	return f
}

type streamSource struct {
	fail       error
	closeEmpty bool
	never      bool
}

func (s streamSource) Get(_ context.Context, index, count int) <-chan Batch[int] {
	ch := make(chan Batch[int], 2)
	switch {
	case s.never:
	case s.closeEmpty:
		close(ch)
	case s.fail != nil:
		ch <- Batch[int]{Err: s.fail}
	default:
		ch <- Batch[int]{Items: intRange(index, count)}
		ch <- Batch[int]{Items: []int{999}}
	}
	return ch
}

func intRange(index, count int) []int {
	res := make([]int, count)
	for i := range res {
		res[i] = index + i
	}
	return res
}

func TestFromCallback(t *testing.T) {
	ctx := context.Background()

	for _, async := range []bool{false, true} {
		items, err := FromCallback[int](callbackSource{async: async}).Get(ctx, 5, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 6, 7}, items)
	}

	failErr := errors.New("nope")
	_, err := FromCallback[int](callbackSource{fail: failErr}).Get(ctx, 0, 3)
	assert.ErrorIs(t, err, failErr)

	_, err = FromCallback[int](callbackSource{panic: true}).Get(ctx, 0, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestFromFuture(t *testing.T) {
	ctx := context.Background()
	items, err := FromFuture[int](futureSource{}).Get(ctx, -2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{-2, -1}, items)

	failErr := errors.New("nope")
	_, err = FromFuture[int](futureSource{fail: failErr}).Get(ctx, 0, 1)
	assert.ErrorIs(t, err, failErr)
}

func TestFromStream(t *testing.T) {
	ctx := context.Background()
	items, err := FromStream[int](streamSource{}).Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items, "only the first emission counts")

	items, err = FromStream[int](streamSource{closeEmpty: true}).Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, items)

	failErr := errors.New("nope")
	_, err = FromStream[int](streamSource{fail: failErr}).Get(ctx, 0, 1)
	assert.ErrorIs(t, err, failErr)
}

func TestFromStream_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := FromStream[int](streamSource{never: true}).Get(ctx, 0, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFuture_FirstSettlementWins(t *testing.T) {
	f := NewFuture[int]()
	f.Resolve([]int{1})
	f.Reject(errors.New("late"))
	f.Resolve([]int{2})
	select {
	case <-f.Done():
	default:
		t.Fatal("expected future to be settled")
	}
	items, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, items)
}
