package lints

import (
	"context"
	"strings"

	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

const (
	todoID  = "todo"
	msgTodo = "TODOs and FIXMEs should be resolved"
)

var todoMarkers = []string{"TODO", "FIXME"}

// TodoDescriptor describes the opt-in todo rule together with its
// self-validating example catalog.
func TodoDescriptor() tt.Descriptor {
	return tt.Descriptor{
		ID:              todoID,
		Name:            "Todo",
		Description:     "TODO and FIXME comment markers should be resolved before shipping",
		Kind:            tt.KindLint,
		DefaultSeverity: tt.SeverityWarning,
		OptIn:           true,
		NonTriggering: []tt.Example{
			tt.Ex(`let a = 1 // done`),
			tt.Ex(`let todo = 1`),
		},
		Triggering: []tt.TriggeringExample{
			{Example: tt.Ex(`let a = 1 // TODO: fix`), Offsets: []int{13}},
			{Example: tt.Ex("/* FIXME: broken */\nlet a = 1"), Offsets: []int{3}},
		},
	}
}

// DetectTodo reports TODO/FIXME markers found in comment trivia. Token
// trivia holds the raw bytes between tokens, so markers inside string
// literals never match.
func DetectTodo(ctx context.Context, filename string, tree *syntax.Tree, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	conv := tree.Converter()

	report := func(offset, length int) {
		issues = append(issues, tt.Issue{
			Rule:       todoID,
			Category:   string(tt.KindLint),
			Filename:   filename,
			Severity:   severity,
			Message:    msgTodo,
			Suggestion: "resolve the marker or track it in the issue tracker",
			Start:      conv.PositionFor(offset),
			End:        conv.PositionFor(offset + length),
		})
	}

	var walkErr error
	syntax.Inspect(tree.Root(), func(n *syntax.Node) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		if !n.IsLeaf() || n.Trivia() == "" {
			return true
		}
		base := n.Offset() - len(n.Trivia())
		for _, marker := range todoMarkers {
			trivia := n.Trivia()
			from := 0
			for {
				idx := strings.Index(trivia[from:], marker)
				if idx < 0 {
					break
				}
				report(base+from+idx, len(marker))
				from += idx + len(marker)
			}
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return issues, nil
}
