package lints

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/swlin/swlin/internal/types"
)

func TestDetectLineLength(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		src       string
		maxLength int
		offsets   []int
	}{
		{
			name:      "under the limit",
			src:       "let a = 1\n",
			maxLength: 10,
		},
		{
			name:      "exactly at the limit",
			src:       "let a = 1",
			maxLength: 9,
		},
		{
			name:      "over the limit",
			src:       "let number = 12345\n",
			maxLength: 10,
			offsets:   []int{0},
		},
		{
			name:      "second line over the limit",
			src:       "let a = 1\nlet number = 12345\n",
			maxLength: 12,
			offsets:   []int{10},
		},
		{
			name:      "default limit when zero",
			src:       "let short = 1\n" + "let long = \"" + strings.Repeat("x", 120) + "\"\n",
			maxLength: 0,
			offsets:   []int{14},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues, err := DetectLineLength(context.Background(), "test.swift", parse(t, tc.src), tt.SeverityWarning, tc.maxLength)
			require.NoError(t, err)
			require.Len(t, issues, len(tc.offsets))
			for i, issue := range issues {
				assert.Equal(t, "line_length", issue.Rule)
				assert.Equal(t, tc.offsets[i], issue.Start.Offset)
			}
		})
	}
}

func TestDetectLineLengthCountsRunes(t *testing.T) {
	t.Parallel()
	// five runes, more than five bytes
	src := "lé =é\n"
	issues, err := DetectLineLength(context.Background(), "test.swift", parse(t, src), tt.SeverityWarning, 5)
	require.NoError(t, err)
	assert.Empty(t, issues, "rune count is at the limit even though the byte count is over")
}
