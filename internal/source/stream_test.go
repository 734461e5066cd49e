package source

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/robinovitch61/uiscroll/internal/scroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestStream(t *testing.T) {
	s := &Stream{Namespace: uuid.NameSpaceURL, Max: ptr.To(9)}
	items, err := scroll.FromStream[string](s).Get(context.Background(), 8, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, s.Line(8), items[0])
	assert.True(t, strings.HasPrefix(items[1], "2024-01-01T00:00:09Z "))
	assert.Contains(t, items[1], "handled line 9")
}

func TestStream_Deterministic(t *testing.T) {
	a := &Stream{Namespace: uuid.NameSpaceURL}
	b := &Stream{Namespace: uuid.NameSpaceURL}
	other := &Stream{Namespace: uuid.NameSpaceDNS}
	assert.Equal(t, a.Line(42), b.Line(42))
	assert.NotEqual(t, a.Line(42), other.Line(42))
	assert.NotEqual(t, a.Line(42), a.Line(43))
}

func TestStream_Cancelled(t *testing.T) {
	s := &Stream{Namespace: uuid.NameSpaceURL, Latency: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Get(ctx, 0, 5)
	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "cancelled requests close without emitting")
	case <-time.After(time.Second):
		t.Fatal("stream did not close")
	}
}
