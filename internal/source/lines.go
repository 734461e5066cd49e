package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robinovitch61/uiscroll/internal/scroll"
)

// Lines is a future datasource serving the lines of a file, item i being line i. Line offsets are discovered
// lazily, only as far as requests reach
type Lines struct {
	mu      sync.Mutex
	f       *os.File
	offsets []int64
	next    int64
	eof     bool
}

func OpenLines(path string) (*Lines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Lines{f: f}, nil
}

func (l *Lines) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

func (l *Lines) Get(index, count int) *scroll.Future[string] {
	f := scroll.NewFuture[string]()
	go func() {
		lines, err := l.read(max(index, 0), index+count)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(lines)
	}()
	return f
}

// Indexed returns the number of lines discovered so far and whether that is all of them
func (l *Lines) Indexed() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.offsets), l.eof
}

// read returns lines lo up to but excluding hi that exist
func (l *Lines) read(lo, hi int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.indexTo(hi); err != nil {
		return nil, err
	}
	hi = min(hi, len(l.offsets))
	if lo >= hi {
		return nil, nil
	}
	if _, err := l.f.Seek(l.offsets[lo], io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to line %d: %w", lo, err)
	}
	r := bufio.NewReader(l.f)
	res := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading line %d: %w", i, err)
		}
		res = append(res, strings.TrimRight(line, "\r\n"))
	}
	return res, nil
}

// indexTo discovers line offsets until n lines are known or the file ends
func (l *Lines) indexTo(n int) error {
	if len(l.offsets) >= n || l.eof {
		return nil
	}
	if _, err := l.f.Seek(l.next, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to offset %d: %w", l.next, err)
	}
	r := bufio.NewReader(l.f)
	for len(l.offsets) < n {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			l.offsets = append(l.offsets, l.next)
			l.next += int64(len(line))
		}
		if errors.Is(err, io.EOF) {
			l.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("indexing line %d: %w", len(l.offsets), err)
		}
	}
	return nil
}
