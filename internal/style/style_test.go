package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustColor(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		factor float64
		want   string
	}{
		{name: "unchanged gray", hex: "#808080", factor: 1, want: "#808080"},
		{name: "lighter gray", hex: "#000000", factor: 2, want: "#1a1a1a"},
		{name: "saturated unchanged", hex: "#ff0000", factor: 1, want: "#ff0000"},
		{name: "darker never below black", hex: "#000000", factor: 0.1, want: "#000000"},
		{name: "invalid falls back to black", hex: "nope", factor: 1, want: "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adjustColor(tt.hex, tt.factor))
		})
	}
}
