package scroll

import (
	"fmt"

	"go.uber.org/multierr"
	"k8s.io/utils/ptr"
)

// Settings configures one Workflow. They are validated once in New and never change afterwards
type Settings struct {
	// StartIndex is the index the first forward fetch starts at, and the index a plain Reload returns to
	StartIndex int `toml:"start_index"`

	// BufferSize is the page size: the number of items requested per direction per cycle
	BufferSize int `toml:"buffer_size"`

	// Padding is the number of offscreen items kept on each side of the viewport
	Padding int `toml:"padding"`

	// Horizontal measures elements and scroll offsets along the x axis instead of the y axis
	Horizontal bool `toml:"horizontal"`

	// MinIndex is the lowest index that will ever be requested. nil means unbounded
	MinIndex *int `toml:"min_index,omitempty"`

	// MaxIndex is the highest index that will ever be requested. nil means unbounded
	MaxIndex *int `toml:"max_index,omitempty"`
}

// DefaultSettings treats index 0 as the natural lower bound of the collection
func DefaultSettings() Settings {
	return Settings{
		StartIndex: 0,
		BufferSize: 10,
		Padding:    5,
		MinIndex:   ptr.To(0),
	}
}

func (s Settings) Validate() error {
	var err error
	if s.BufferSize < 1 {
		err = multierr.Append(err, fmt.Errorf("buffer size must be at least 1, got %d", s.BufferSize))
	}
	if s.Padding < 0 {
		err = multierr.Append(err, fmt.Errorf("padding must be non-negative, got %d", s.Padding))
	}
	if s.MinIndex != nil && s.MaxIndex != nil && *s.MinIndex > *s.MaxIndex {
		err = multierr.Append(err, fmt.Errorf("min index %d is greater than max index %d", *s.MinIndex, *s.MaxIndex))
	}
	if !s.inBounds(s.StartIndex) {
		err = multierr.Append(err, fmt.Errorf("start index %d is outside of the configured bounds", s.StartIndex))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

func (s Settings) inBounds(index int) bool {
	if s.MinIndex != nil && index < *s.MinIndex {
		return false
	}
	if s.MaxIndex != nil && index > *s.MaxIndex {
		return false
	}
	return true
}

func (s Settings) axis() axis {
	if s.Horizontal {
		return horizontal
	}
	return vertical
}
