package internal

import (
	"fmt"
	"time"

	"github.com/robinovitch61/uiscroll/internal/keymap"
	"github.com/robinovitch61/uiscroll/internal/scroll"
)

// data sources the app can scroll through
const (
	SourceNumbers = "numbers"
	SourceStream  = "stream"
	SourceFile    = "file"
)

type Config struct {
	KeyMap      keymap.KeyMap
	Source      string
	Path        string
	Settings    scroll.Settings
	Latency     time.Duration
	FailureRate float64
	// Last is the highest index the synthetic sources serve. nil means endless
	Last    *int
	Version string
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceNumbers, SourceStream:
	case SourceFile:
		if c.Path == "" {
			return fmt.Errorf("source %q needs a file path", SourceFile)
		}
	default:
		return fmt.Errorf("unknown source %q, expected one of %s, %s, %s", c.Source, SourceNumbers, SourceStream, SourceFile)
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %v", c.FailureRate)
	}
	if c.Latency < 0 {
		return fmt.Errorf("latency must be non-negative, got %v", c.Latency)
	}
	return c.Settings.Validate()
}
