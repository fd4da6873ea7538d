package lints

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/swlin/swlin/internal/types"
)

func TestDetectTodo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		offsets []int
	}{
		{
			name: "clean comment",
			src:  `let a = 1 // done`,
		},
		{
			name: "identifier does not count",
			src:  `let todo = 1`,
		},
		{
			name: "marker inside string literal does not count",
			src:  `let s = "TODO later"`,
		},
		{
			name:    "line comment marker",
			src:     `let a = 1 // TODO: fix`,
			offsets: []int{13},
		},
		{
			name:    "block comment marker",
			src:     "/* FIXME: broken */\nlet a = 1",
			offsets: []int{3},
		},
		{
			name:    "two markers in one comment",
			src:     "// TODO: one, TODO: two\nlet a = 1",
			offsets: []int{3, 14},
		},
		{
			name:    "marker in trailing trivia",
			src:     "let a = 1\n// TODO: last\n",
			offsets: []int{13},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues, err := DetectTodo(context.Background(), "test.swift", parse(t, tc.src), tt.SeverityWarning)
			require.NoError(t, err)
			require.Len(t, issues, len(tc.offsets))
			for i, issue := range issues {
				assert.Equal(t, "todo", issue.Rule)
				assert.Equal(t, tc.offsets[i], issue.Start.Offset)
			}
		})
	}
}

func TestDetectTodoCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DetectTodo(ctx, "test.swift", parse(t, "// TODO: x\nlet a = 1"), tt.SeverityWarning)
	assert.ErrorIs(t, err, context.Canceled)
}
