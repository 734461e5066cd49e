package scroll

import (
	"testing"
)

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name     string
		prev     int
		curr     int
		expected Direction
	}{
		{name: "offset increased", prev: 10, curr: 11, expected: Forward},
		{name: "offset decreased", prev: 10, curr: 3, expected: Backward},
		{name: "offset unchanged", prev: 7, curr: 7, expected: None},
		{name: "negative offsets", prev: -5, curr: -8, expected: Backward},
		{name: "from zero", prev: 0, curr: 1, expected: Forward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDirection(tt.prev, tt.curr); got != tt.expected {
				t.Errorf("ResolveDirection(%d, %d) = %v, want %v", tt.prev, tt.curr, got, tt.expected)
			}
		})
	}
}

func TestDirection_Opposite(t *testing.T) {
	if Forward.Opposite() != Backward {
		t.Errorf("expected opposite of forward to be backward")
	}
	if Backward.Opposite() != Forward {
		t.Errorf("expected opposite of backward to be forward")
	}
	if None.Opposite() != None {
		t.Errorf("expected opposite of none to be none")
	}
	for _, d := range directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("expected double opposite of %v to be itself", d)
		}
	}
}

func TestDirection_String(t *testing.T) {
	for d, expected := range map[Direction]string{Forward: "forward", Backward: "backward", None: "none"} {
		if d.String() != expected {
			t.Errorf("expected %q, got %q", expected, d.String())
		}
	}
}
