package scroll

import (
	"context"
	"fmt"
	"sync"
)

// Datasource is the pull contract the engine consumes. Get returns the items at index..index+count-1 that exist.
// Returning fewer than count items signals that the collection ends in that direction
type Datasource[T any] interface {
	Get(ctx context.Context, index, count int) ([]T, error)
}

// DatasourceFunc adapts a function to a Datasource
type DatasourceFunc[T any] func(ctx context.Context, index, count int) ([]T, error)

func (f DatasourceFunc[T]) Get(ctx context.Context, index, count int) ([]T, error) {
	return f(ctx, index, count)
}

// CallbackDatasource completes a request by calling exactly one of success or fail, from any goroutine
type CallbackDatasource[T any] interface {
	Get(index, count int, success func([]T), fail func(error))
}

// FutureDatasource completes a request by settling the returned Future
type FutureDatasource[T any] interface {
	Get(index, count int) *Future[T]
}

// Batch is one emission of a StreamDatasource
type Batch[T any] struct {
	Items []T
	Err   error
}

// StreamDatasource completes a request by emitting on the returned channel. The first emission settles the request;
// a channel closed without emitting settles it with no items
type StreamDatasource[T any] interface {
	Get(ctx context.Context, index, count int) <-chan Batch[T]
}

// Future is a single-assignment result. Only the first Resolve or Reject has any effect
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	items []T
	err   error
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) Resolve(items []T) {
	f.once.Do(func() {
		f.items = items
		close(f.done)
	})
}

func (f *Future[T]) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future settles
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done
func (f *Future[T]) Wait(ctx context.Context) ([]T, error) {
	select {
	case <-f.done:
		return f.items, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// settle runs one request of any completion style and waits for its outcome. start receives the resolve and reject
// functions of a fresh Future; a panic inside start rejects the request
func settle[T any](ctx context.Context, start func(resolve func([]T), reject func(error))) ([]T, error) {
	f := NewFuture[T]()
	func() {
		defer func() {
			if r := recover(); r != nil {
				f.Reject(fmt.Errorf("datasource panicked: %v", r))
			}
		}()
		start(f.Resolve, f.Reject)
	}()
	return f.Wait(ctx)
}

// FromCallback normalizes a callback-style datasource
func FromCallback[T any](ds CallbackDatasource[T]) Datasource[T] {
	return DatasourceFunc[T](func(ctx context.Context, index, count int) ([]T, error) {
		return settle(ctx, func(resolve func([]T), reject func(error)) {
			ds.Get(index, count, resolve, reject)
		})
	})
}

// FromFuture normalizes a future-style datasource
func FromFuture[T any](ds FutureDatasource[T]) Datasource[T] {
	return DatasourceFunc[T](func(ctx context.Context, index, count int) ([]T, error) {
		return settle(ctx, func(resolve func([]T), reject func(error)) {
			f := ds.Get(index, count)
			if f == nil {
				reject(fmt.Errorf("datasource returned no future"))
				return
			}
			go func() {
				items, err := f.Wait(ctx)
				if err != nil {
					reject(err)
					return
				}
				resolve(items)
			}()
		})
	})
}

// FromStream normalizes a stream-style datasource
func FromStream[T any](ds StreamDatasource[T]) Datasource[T] {
	return DatasourceFunc[T](func(ctx context.Context, index, count int) ([]T, error) {
		return settle(ctx, func(resolve func([]T), reject func(error)) {
			ch := ds.Get(ctx, index, count)
			if ch == nil {
				reject(fmt.Errorf("datasource returned no stream"))
				return
			}
			go func() {
				select {
				case batch, ok := <-ch:
					switch {
					case !ok:
						resolve(nil)
					case batch.Err != nil:
						reject(batch.Err)
					default:
						resolve(batch.Items)
					}
				case <-ctx.Done():
					reject(ctx.Err())
				}
			}()
		})
	})
}
