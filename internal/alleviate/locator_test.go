package alleviate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickPhoneFieldIndex(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected int
	}{
		{
			name:     "first row empty",
			values:   []string{"", "+15550001111"},
			expected: 0,
		},
		{
			name:     "later row empty",
			values:   []string{"+15550001111", "+15550002222", ""},
			expected: 2,
		},
		{
			name:     "whitespace counts as empty",
			values:   []string{"+15550001111", "   "},
			expected: 1,
		},
		{
			name:     "all rows filled falls back to first",
			values:   []string{"+15550001111", "+15550002222"},
			expected: 0,
		},
		{
			name:     "single row",
			values:   []string{""},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pickPhoneFieldIndex(tt.values))
		})
	}
}
