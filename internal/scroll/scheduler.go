package scroll

import (
	"context"
	"sync"
)

// task runs on the goroutine that owns the engine. A non-nil error ends the run
type task func() error

// scheduler is an unbounded FIFO of tasks with one extra slot for a deferred task where only the latest posting
// survives. The deferred task runs once every task queued before it was posted has run
type scheduler struct {
	mu     sync.Mutex
	tasks  []task
	closed bool

	latest task
	// latestAfter is the number of queued tasks that still run before latest
	latestAfter int

	wake chan struct{}
}

func newScheduler() *scheduler {
	return &scheduler{wake: make(chan struct{}, 1)}
}

// post queues t and reports whether it was accepted. Posting never blocks
func (s *scheduler) post(t task) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	s.signal()
	return true
}

// postLatest fills the deferred slot, replacing whatever was waiting in it
func (s *scheduler) postLatest(t task) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.latest = t
	s.latestAfter = len(s.tasks)
	s.mu.Unlock()
	s.signal()
	return true
}

func (s *scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *scheduler) pop() (task, bool) {
	if s.latest != nil && s.latestAfter == 0 {
		t := s.latest
		s.latest = nil
		return t, true
	}
	if len(s.tasks) == 0 {
		return nil, false
	}
	t := s.tasks[0]
	s.tasks[0] = nil
	s.tasks = s.tasks[1:]
	if s.latestAfter > 0 {
		s.latestAfter--
	}
	return t, true
}

// next blocks until a task is available. It returns false once the scheduler is closed or ctx is done
func (s *scheduler) next(ctx context.Context) (task, bool) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, false
		}
		t, ok := s.pop()
		s.mu.Unlock()
		if ok {
			return t, true
		}
		select {
		case <-s.wake:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// close drops every queued task and rejects later posts
func (s *scheduler) close() {
	s.mu.Lock()
	s.closed = true
	s.tasks = nil
	s.latest = nil
	s.mu.Unlock()
	s.signal()
}
