package cuid2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"zero", 0, "000000"},
		{"one", 1, "000001"},
		{"base", 62, "000010"},
		{"minute", 60, "00000y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, encodeTimestamp(tt.seconds))
		})
	}
}

func TestEncodeTimestampSortable(t *testing.T) {
	a := encodeTimestamp(1_700_000_000)
	b := encodeTimestamp(1_700_000_001)
	c := encodeTimestamp(1_800_000_000)

	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestNewFormat(t *testing.T) {
	id := New("alr")

	require.True(t, strings.HasPrefix(id, "alr_"))
	assert.Len(t, id, len("alr_")+6+defaultRandomLength)

	for _, ch := range id[len("alr_"):] {
		assert.Contains(t, base62Alphabet, string(ch))
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := New("ntf")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
