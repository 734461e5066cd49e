package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/robinovitch61/uiscroll/internal/scroll"
)

var levels = []string{"DEBUG", "INFO", "INFO", "INFO", "WARN", "ERROR"}

// epoch is the timestamp of line 0
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Stream is a stream datasource serving deterministic pseudo log lines. Line i always has the same request ID,
// derived from Namespace
type Stream struct {
	Namespace uuid.UUID
	Max       *int
	Latency   time.Duration
}

func (s *Stream) Get(ctx context.Context, index, count int) <-chan scroll.Batch[string] {
	ch := make(chan scroll.Batch[string], 1)
	go func() {
		defer close(ch)
		if s.Latency > 0 {
			select {
			case <-time.After(s.Latency):
			case <-ctx.Done():
				return
			}
		}
		var lines []string
		for i := max(index, 0); i < index+count; i++ {
			if s.Max != nil && i > *s.Max {
				break
			}
			lines = append(lines, s.Line(i))
		}
		select {
		case ch <- scroll.Batch[string]{Items: lines}:
		case <-ctx.Done():
		}
	}()
	return ch
}

// Line returns log line i
func (s *Stream) Line(i int) string {
	id := uuid.NewSHA1(s.Namespace, []byte(strconv.Itoa(i)))
	level := levels[int(id[0])%len(levels)]
	ts := epoch.Add(time.Duration(i) * time.Second).Format(time.RFC3339)
	return fmt.Sprintf("%s %-5s request=%s handled line %d", ts, level, id.String()[:8], i)
}
