package scroll

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings is returned when Settings fail validation
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrDisposed is returned by Run once the workflow reached its terminal state
	ErrDisposed = errors.New("workflow disposed")

	// ErrOutOfBounds is returned when an index lies outside the configured min and max index
	ErrOutOfBounds = errors.New("index out of bounds")
)

// FetchError is a datasource rejection for one direction. It aborts the current cycle only
type FetchError struct {
	Direction Direction
	Index     int
	Count     int
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from index %d (count %d): %v", e.Direction, e.Index, e.Count, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RenderAssociationError means an item could not be matched to a rendered element. The buffer and viewport have
// diverged, so the workflow halts
type RenderAssociationError struct {
	Index int
	Err   error
}

func (e *RenderAssociationError) Error() string {
	return fmt.Sprintf("item %d has no associated element: %v", e.Index, e.Err)
}

func (e *RenderAssociationError) Unwrap() error {
	return e.Err
}
