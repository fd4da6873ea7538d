package internal

import (
	"context"
	"fmt"

	"github.com/swlin/swlin/internal/lints"
	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Descriptor returns the rule's static metadata and example catalog.
	Descriptor() tt.Descriptor

	// Check runs the rule against the given tree and returns a slice of
	// Issues. The traversal is read-only; the tree is never mutated.
	Check(ctx context.Context, filename string, tree *syntax.Tree) ([]tt.Issue, error)

	Severity() tt.Severity
	SetSeverity(severity tt.Severity)

	// ApplyParams installs rule-specific parameters. An unrecognized
	// parameter name is a ConfigurationError.
	ApplyParams(params map[string]any) error
}

// FixableRule is a LintRule that can rewrite the tree to eliminate its
// violations. skip is the shared suppression predicate: a proposed fix
// whose violation offset is suppressed must leave the node untouched,
// exactly as detection drops the corresponding issue.
type FixableRule interface {
	LintRule
	Fix(tree *syntax.Tree, skip func(offset int) bool) (*syntax.Tree, []tt.Correction, error)
}

// baseRule carries the severity handling shared by every rule.
type baseRule struct {
	severity tt.Severity
}

func (b *baseRule) Severity() tt.Severity     { return b.severity }
func (b *baseRule) SetSeverity(s tt.Severity) { b.severity = s }

// rejectUnknownParams implements ApplyParams for rules without parameters
// and the unknown-key check for rules with them.
func rejectUnknownParams(d tt.Descriptor, params map[string]any) error {
	for key := range params {
		if !d.RecognizesParam(key) {
			return &tt.ConfigurationError{Rule: d.ID, Key: key, Reason: "unrecognized parameter"}
		}
	}
	return nil
}

type StrongIBOutletRule struct {
	baseRule
}

func NewStrongIBOutletRule() LintRule {
	return &StrongIBOutletRule{baseRule{severity: lints.StrongIBOutletDescriptor().DefaultSeverity}}
}

func (r *StrongIBOutletRule) Descriptor() tt.Descriptor {
	return lints.StrongIBOutletDescriptor()
}

func (r *StrongIBOutletRule) Check(ctx context.Context, filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	return lints.DetectStrongIBOutlet(ctx, filename, tree, r.severity)
}

func (r *StrongIBOutletRule) Fix(tree *syntax.Tree, skip func(offset int) bool) (*syntax.Tree, []tt.Correction, error) {
	return lints.FixStrongIBOutlet(tree, skip)
}

func (r *StrongIBOutletRule) ApplyParams(params map[string]any) error {
	return rejectUnknownParams(r.Descriptor(), params)
}

type EmptyEnumArgumentsRule struct {
	baseRule
}

func NewEmptyEnumArgumentsRule() LintRule {
	return &EmptyEnumArgumentsRule{baseRule{severity: lints.EmptyEnumArgumentsDescriptor().DefaultSeverity}}
}

func (r *EmptyEnumArgumentsRule) Descriptor() tt.Descriptor {
	return lints.EmptyEnumArgumentsDescriptor()
}

func (r *EmptyEnumArgumentsRule) Check(ctx context.Context, filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	return lints.DetectEmptyEnumArguments(ctx, filename, tree, r.severity)
}

func (r *EmptyEnumArgumentsRule) Fix(tree *syntax.Tree, skip func(offset int) bool) (*syntax.Tree, []tt.Correction, error) {
	return lints.FixEmptyEnumArguments(tree, skip)
}

func (r *EmptyEnumArgumentsRule) ApplyParams(params map[string]any) error {
	return rejectUnknownParams(r.Descriptor(), params)
}

type LineLengthRule struct {
	baseRule
	maxLength int
}

func NewLineLengthRule() LintRule {
	return &LineLengthRule{
		baseRule:  baseRule{severity: lints.LineLengthDescriptor().DefaultSeverity},
		maxLength: lints.DefaultMaxLineLength,
	}
}

func (r *LineLengthRule) Descriptor() tt.Descriptor {
	return lints.LineLengthDescriptor()
}

func (r *LineLengthRule) Check(ctx context.Context, filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	return lints.DetectLineLength(ctx, filename, tree, r.severity, r.maxLength)
}

func (r *LineLengthRule) ApplyParams(params map[string]any) error {
	d := r.Descriptor()
	if err := rejectUnknownParams(d, params); err != nil {
		return err
	}
	if raw, ok := params["max_length"]; ok {
		n, err := paramInt(raw)
		if err != nil {
			return &tt.ConfigurationError{Rule: d.ID, Key: "max_length", Reason: err.Error()}
		}
		r.maxLength = n
	}
	return nil
}

type TodoRule struct {
	baseRule
}

func NewTodoRule() LintRule {
	return &TodoRule{baseRule{severity: lints.TodoDescriptor().DefaultSeverity}}
}

func (r *TodoRule) Descriptor() tt.Descriptor {
	return lints.TodoDescriptor()
}

func (r *TodoRule) Check(ctx context.Context, filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	return lints.DetectTodo(ctx, filename, tree, r.severity)
}

func (r *TodoRule) ApplyParams(params map[string]any) error {
	return rejectUnknownParams(r.Descriptor(), params)
}

// paramInt coerces a configured parameter value into an int. YAML decodes
// integers as int, but per-example overrides may carry other numeric types.
func paramInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
