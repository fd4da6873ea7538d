package lints

import (
	"context"

	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

const (
	strongIBOutletID  = "strong_iboutlet"
	msgStrongIBOutlet = "@IBOutlet property should not be declared weak or unowned"
)

// StrongIBOutletDescriptor describes the strong_iboutlet rule together
// with its self-validating example catalog.
func StrongIBOutletDescriptor() tt.Descriptor {
	return tt.Descriptor{
		ID:              strongIBOutletID,
		Name:            "Strong IBOutlet",
		Description:     "@IBOutlet properties should be strong references",
		Kind:            tt.KindLint,
		DefaultSeverity: tt.SeverityWarning,
		NonTriggering: []tt.Example{
			tt.Ex(`class C { @IBOutlet var label: UILabel? }`),
			tt.Ex(`class C { weak var delegate: Delegate? }`),
			tt.Ex(`class C { var label: UILabel? }`),
		},
		Triggering: []tt.TriggeringExample{
			{Example: tt.Ex(`class C { @IBOutlet weak var label: UILabel? }`), Offsets: []int{20}},
			{Example: tt.Ex(`class C { @IBOutlet unowned var button: UIButton! }`), Offsets: []int{20}},
			{Example: tt.Ex("class C {\n\t@IBOutlet weak var label: UILabel?\n\t@IBOutlet weak var button: UIButton?\n}"), Offsets: []int{21, 57}},
		},
		Corrections: []tt.CorrectionExample{
			{Before: tt.Ex(`class C { @IBOutlet weak var label: UILabel? }`), After: `class C { @IBOutlet var label: UILabel? }`},
			{Before: tt.Ex(`class C { @IBOutlet unowned var button: UIButton! }`), After: `class C { @IBOutlet var button: UIButton! }`},
		},
	}
}

// DetectStrongIBOutlet reports variable declarations that carry an
// @IBOutlet attribute together with a weak or unowned ownership modifier.
func DetectStrongIBOutlet(ctx context.Context, filename string, tree *syntax.Tree, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	conv := tree.Converter()

	table := map[syntax.Kind]syntax.VisitFunc{
		syntax.KindVarDecl: func(n *syntax.Node) error {
			mod, _, ok := ownershipModifier(n)
			if !ok {
				return nil
			}
			issues = append(issues, tt.Issue{
				Rule:       strongIBOutletID,
				Category:   string(tt.KindLint),
				Filename:   filename,
				Severity:   severity,
				Message:    msgStrongIBOutlet,
				Suggestion: "remove the " + mod.Text() + " modifier",
				Start:      conv.PositionFor(mod.Offset()),
				End:        conv.PositionFor(mod.End()),
			})
			return nil
		},
	}
	if err := syntax.Visit(ctx, tree.Root(), table); err != nil {
		return nil, err
	}
	return issues, nil
}

// FixStrongIBOutlet removes the ownership modifier from violating
// declarations. The rewrite touches only the declaration node; everything
// else is shared with the input tree.
func FixStrongIBOutlet(tree *syntax.Tree, skip func(offset int) bool) (*syntax.Tree, []tt.Correction, error) {
	conv := tree.Converter()
	table := map[syntax.Kind]syntax.RewriteFunc{
		syntax.KindVarDecl: func(n *syntax.Node) (syntax.Proposal, bool) {
			mod, i, ok := ownershipModifier(n)
			if !ok {
				return syntax.Proposal{}, false
			}
			return syntax.Proposal{Node: n.RemoveChild(i), At: mod.Offset()}, true
		},
	}
	root, offsets := syntax.Rewrite(tree.Root(), table, skip)

	corrections := make([]tt.Correction, 0, len(offsets))
	for _, off := range offsets {
		corrections = append(corrections, tt.Correction{Rule: strongIBOutletID, Start: conv.PositionFor(off)})
	}
	return tree.WithRoot(root), corrections, nil
}

// ownershipModifier returns the weak/unowned modifier of an @IBOutlet
// declaration and its child index, when present.
func ownershipModifier(decl *syntax.Node) (*syntax.Node, int, bool) {
	outlet := false
	for _, attr := range decl.ChildrenOfKind(syntax.KindAttribute) {
		if attr.Text() == "@IBOutlet" {
			outlet = true
			break
		}
	}
	if !outlet {
		return nil, -1, false
	}
	for i := 0; i < decl.NumChildren(); i++ {
		c := decl.Child(i)
		if c.Kind() == syntax.KindModifier && (c.Text() == "weak" || c.Text() == "unowned") {
			return c, i, true
		}
	}
	return nil, -1, false
}
