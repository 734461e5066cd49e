package scroll

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestSettings_DefaultIsValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	require.NotNil(t, s.MinIndex)
	assert.Equal(t, 0, *s.MinIndex)
	assert.Nil(t, s.MaxIndex)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(s *Settings)
		numErrors int
	}{
		{
			name:      "zero buffer size",
			modify:    func(s *Settings) { s.BufferSize = 0 },
			numErrors: 1,
		},
		{
			name:      "negative padding",
			modify:    func(s *Settings) { s.Padding = -1 },
			numErrors: 1,
		},
		{
			name: "min above max",
			modify: func(s *Settings) {
				s.MinIndex = ptr.To(10)
				s.MaxIndex = ptr.To(5)
				s.StartIndex = 7
			},
			numErrors: 2,
		},
		{
			name:      "start below min",
			modify:    func(s *Settings) { s.StartIndex = -1 },
			numErrors: 1,
		},
		{
			name: "everything wrong",
			modify: func(s *Settings) {
				s.BufferSize = -3
				s.Padding = -3
				s.MaxIndex = ptr.To(-5)
			},
			numErrors: 4,
		},
		{
			name: "unbounded negative start",
			modify: func(s *Settings) {
				s.MinIndex = nil
				s.StartIndex = -100
			},
			numErrors: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.numErrors == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
			assert.Equal(t, tt.numErrors, strings.Count(err.Error(), "; ")+1, err.Error())
		})
	}
}
