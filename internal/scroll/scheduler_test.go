package scroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s *scheduler) []string {
	t.Helper()
	var got []string
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	for {
		tk, ok := s.next(ctx)
		if !ok {
			return got
		}
		require.NoError(t, tk())
	}
}

func record(got *[]string, name string) task {
	return func() error {
		*got = append(*got, name)
		return nil
	}
}

func TestScheduler_FIFO(t *testing.T) {
	s := newScheduler()
	var got []string
	for _, name := range []string{"a", "b", "c"} {
		s.post(record(&got, name))
	}
	drain(t, s)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestScheduler_LatestRunsAfterQueuedTasksAndCoalesces(t *testing.T) {
	s := newScheduler()
	var got []string
	s.post(record(&got, "a"))
	s.postLatest(record(&got, "render-1"))
	s.post(record(&got, "b"))
	s.postLatest(record(&got, "render-2"))
	s.post(record(&got, "c"))
	drain(t, s)
	assert.Equal(t, []string{"a", "b", "render-2", "c"}, got)
}

func TestScheduler_TaskMayPostMore(t *testing.T) {
	s := newScheduler()
	var got []string
	s.post(func() error {
		got = append(got, "first")
		s.postLatest(record(&got, "deferred"))
		s.post(record(&got, "second"))
		return nil
	})
	drain(t, s)
	assert.Equal(t, []string{"first", "deferred", "second"}, got)
}

func TestScheduler_Close(t *testing.T) {
	s := newScheduler()
	var got []string
	s.post(record(&got, "a"))
	s.close()
	assert.False(t, s.post(record(&got, "b")))
	assert.False(t, s.postLatest(record(&got, "c")))
	_, ok := s.next(context.Background())
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestScheduler_WakesBlockedConsumer(t *testing.T) {
	s := newScheduler()
	done := make(chan string)
	go func() {
		tk, ok := s.next(context.Background())
		if ok {
			_ = tk()
		}
	}()
	time.Sleep(5 * time.Millisecond)
	s.post(func() error {
		done <- "ran"
		return nil
	})
	select {
	case v := <-done:
		assert.Equal(t, "ran", v)
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}
