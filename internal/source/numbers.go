package source

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrFlaky is returned by Numbers for requests it decided to fail
var ErrFlaky = errors.New("simulated datasource failure")

// Numbers is a callback datasource serving the synthetic items "#i". It completes each request from its own
// goroutine after Latency, failing a FailureRate share of them
type Numbers struct {
	Min         *int
	Max         *int
	Latency     time.Duration
	FailureRate float64

	// random is replaced in tests
	random func() float64
}

func (n *Numbers) Get(index, count int, success func([]string), fail func(error)) {
	random := n.random
	if random == nil {
		random = rand.Float64
	}
	time.AfterFunc(n.Latency, func() {
		if n.FailureRate > 0 && random() < n.FailureRate {
			fail(fmt.Errorf("get %d items from %d: %w", count, index, ErrFlaky))
			return
		}
		success(n.items(index, count))
	})
}

func (n *Numbers) items(index, count int) []string {
	var res []string
	for i := index; i < index+count; i++ {
		if n.Min != nil && i < *n.Min {
			continue
		}
		if n.Max != nil && i > *n.Max {
			break
		}
		res = append(res, fmt.Sprintf("#%d", i))
	}
	return res
}
