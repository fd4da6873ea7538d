package lints

import (
	"context"

	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

const (
	emptyEnumArgumentsID  = "empty_enum_arguments"
	msgEmptyEnumArguments = "arguments can be omitted when all of them are unused"
)

// EmptyEnumArgumentsDescriptor describes the empty_enum_arguments rule
// together with its self-validating example catalog.
func EmptyEnumArgumentsDescriptor() tt.Descriptor {
	return tt.Descriptor{
		ID:              emptyEnumArgumentsID,
		Name:            "Empty Enum Arguments",
		Description:     "enum case patterns whose arguments are all wildcards should drop the argument list",
		Kind:            tt.KindIdiomatic,
		DefaultSeverity: tt.SeverityWarning,
		NonTriggering: []tt.Example{
			tt.Ex(`switch foo { case .bar: break }`),
			tt.Ex(`switch foo { case .bar(x): break }`),
			tt.Ex(`switch foo { case .bar(_, x): break }`),
		},
		Triggering: []tt.TriggeringExample{
			{Example: tt.Ex(`switch foo { case .bar(_): break }`), Offsets: []int{22}},
			{Example: tt.Ex(`switch foo { case .bar(_, _): break }`), Offsets: []int{22}},
			{Example: tt.Ex(`switch foo { case .bar(_), .bar2(_): break }`), Offsets: []int{22, 32}},
			{Example: tt.Ex(`switch foo { case .outer(.inner(_)): break }`), Offsets: []int{31}},
		},
		Corrections: []tt.CorrectionExample{
			{Before: tt.Ex(`switch foo { case .bar(_): break }`), After: `switch foo { case .bar: break }`},
			{Before: tt.Ex(`switch foo { case .bar(_), .bar2(_): break }`), After: `switch foo { case .bar, .bar2: break }`},
			{Before: tt.Ex(`switch foo { case .outer(.inner(_)): break }`), After: `switch foo { case .outer(.inner): break }`},
		},
	}
}

// DetectEmptyEnumArguments reports enum-case patterns whose argument list
// consists entirely of wildcards. Nested patterns report independently: a
// violating inner pattern does not implicate its enclosing pattern, whose
// arguments are by definition not all wildcards.
func DetectEmptyEnumArguments(ctx context.Context, filename string, tree *syntax.Tree, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	conv := tree.Converter()

	table := map[syntax.Kind]syntax.VisitFunc{
		syntax.KindPattern: func(n *syntax.Node) error {
			args, _, ok := wildcardArgList(n)
			if !ok {
				return nil
			}
			issues = append(issues, tt.Issue{
				Rule:       emptyEnumArgumentsID,
				Category:   string(tt.KindIdiomatic),
				Filename:   filename,
				Severity:   severity,
				Message:    msgEmptyEnumArguments,
				Suggestion: "omit the argument list",
				Start:      conv.PositionFor(args.Offset()),
				End:        conv.PositionFor(args.End()),
			})
			return nil
		},
	}
	if err := syntax.Visit(ctx, tree.Root(), table); err != nil {
		return nil, err
	}
	return issues, nil
}

// FixEmptyEnumArguments drops all-wildcard argument lists. Rewrite visits
// children before parents, so nested instances are resolved innermost-first
// and each enclosing pattern is rewritten at most once.
func FixEmptyEnumArguments(tree *syntax.Tree, skip func(offset int) bool) (*syntax.Tree, []tt.Correction, error) {
	conv := tree.Converter()
	table := map[syntax.Kind]syntax.RewriteFunc{
		syntax.KindPattern: func(n *syntax.Node) (syntax.Proposal, bool) {
			args, i, ok := wildcardArgList(n)
			if !ok {
				return syntax.Proposal{}, false
			}
			return syntax.Proposal{Node: n.RemoveChild(i), At: args.Offset()}, true
		},
	}
	root, offsets := syntax.Rewrite(tree.Root(), table, skip)

	corrections := make([]tt.Correction, 0, len(offsets))
	for _, off := range offsets {
		corrections = append(corrections, tt.Correction{Rule: emptyEnumArgumentsID, Start: conv.PositionFor(off)})
	}
	return tree.WithRoot(root), corrections, nil
}

// wildcardArgList returns the argument-list child of an enum-case pattern
// when every argument is a wildcard, along with its child index.
func wildcardArgList(pattern *syntax.Node) (*syntax.Node, int, bool) {
	args, idx, ok := pattern.FindChild(syntax.KindArgList)
	if !ok {
		return nil, -1, false
	}
	wildcards := 0
	for i := 0; i < args.NumChildren(); i++ {
		c := args.Child(i)
		switch {
		case c.Kind() == syntax.KindWildcard:
			wildcards++
		case c.IsLeaf() && (c.Text() == "(" || c.Text() == ")" || c.Text() == ","):
			// punctuation
		default:
			return nil, -1, false
		}
	}
	if wildcards == 0 {
		return nil, -1, false
	}
	return args, idx, true
}
