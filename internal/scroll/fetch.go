package scroll

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

type request struct {
	direction Direction
	index     int
	count     int
}

type response[T any] struct {
	request
	items []T
}

// plan returns one request per direction that should fetch, in Backward, Forward order
func (e *engine[T]) plan() []request {
	var reqs []request
	for _, d := range directions {
		s := e.states[d]
		if !s.ShouldFetch || s.Count < 1 {
			continue
		}
		reqs = append(reqs, request{direction: d, index: s.StartIndex, count: s.Count})
	}
	return reqs
}

// fetchAll runs every request concurrently and waits for all of them to settle. Responses keep the order of reqs
// no matter which request settles first. If any request fails, no responses are returned
func fetchAll[T any](ctx context.Context, ds Datasource[T], reqs []request) ([]response[T], error) {
	responses := make([]response[T], len(reqs))
	p := pool.New().WithErrors()
	for i, req := range reqs {
		p.Go(func() error {
			items, err := ds.Get(ctx, req.index, req.count)
			if err != nil {
				return &FetchError{Direction: req.direction, Index: req.index, Count: req.count, Err: err}
			}
			if len(items) > req.count {
				items = items[:req.count]
			}
			responses[i] = response[T]{request: req, items: items}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

// accept stores fetched items as pending and marks directions whose page came back short as exhausted
func (e *engine[T]) accept(responses []response[T]) {
	for _, r := range responses {
		s := e.states[r.direction]
		s.Pending = append(s.Pending, r.items...)
		if len(r.items) < r.count {
			s.Exhausted = true
			s.ShouldFetch = false
		}
	}
}
