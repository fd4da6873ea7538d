package lints

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

const (
	lineLengthID = "line_length"

	// DefaultMaxLineLength is the built-in threshold for line_length.
	DefaultMaxLineLength = 120
)

// LineLengthDescriptor describes the line_length rule together with its
// self-validating example catalog. The rule recognizes the max_length
// parameter; the examples exercise per-example parameter overrides.
func LineLengthDescriptor() tt.Descriptor {
	return tt.Descriptor{
		ID:              lineLengthID,
		Name:            "Line Length",
		Description:     "lines should not span more than max_length characters",
		Kind:            tt.KindStyle,
		DefaultSeverity: tt.SeverityWarning,
		Params:          []string{"max_length"},
		NonTriggering: []tt.Example{
			tt.Ex(`let a = 1`),
			tt.ExParams(`let a = 1`, map[string]any{"max_length": 9}),
		},
		Triggering: []tt.TriggeringExample{
			{Example: tt.ExParams(`let number = 12345`, map[string]any{"max_length": 10}), Offsets: []int{0}},
			{Example: tt.ExParams("let a = 1\nlet number = 12345", map[string]any{"max_length": 12}), Offsets: []int{10}},
		},
	}
}

// DetectLineLength reports lines whose rune count exceeds maxLength.
// Character counting is rune-based; the converter keeps the reported
// positions in byte offsets like every other rule.
func DetectLineLength(ctx context.Context, filename string, tree *syntax.Tree, severity tt.Severity, maxLength int) ([]tt.Issue, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLineLength
	}
	var issues []tt.Issue
	conv := tree.Converter()

	for line := 1; line <= conv.NumLines(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := conv.LineText(line)
		length := utf8.RuneCountInString(text)
		if length <= maxLength {
			continue
		}
		start, _ := conv.LineRange(line)
		issues = append(issues, tt.Issue{
			Rule:     lineLengthID,
			Category: string(tt.KindStyle),
			Filename: filename,
			Severity: severity,
			Message:  fmt.Sprintf("line should be %d characters or less; currently it has %d", maxLength, length),
			Start:    conv.PositionFor(start),
			End:      conv.PositionFor(start + len(text)),
		})
	}
	return issues, nil
}
