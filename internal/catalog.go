package internal

import (
	"context"
	"fmt"
	"sort"

	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

// The catalog harness replays every rule's examples through its own
// detector and corrector. It is the primary regression mechanism for the
// rule set: a rule whose examples disagree with its implementation is a
// broken rule definition, never a problem in analyzed code.

// ValidateAllRules validates the example catalog of every registered rule
// and returns the failures in rule-ID order.
func ValidateAllRules() []error {
	var errs []error
	for _, id := range RuleIDs() {
		if err := ValidateRule(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ValidateRule validates a single rule's example catalog.
func ValidateRule(id string) error {
	ctor, ok := allRuleConstructors[id]
	if !ok {
		return &tt.CatalogValidationError{Rule: id, Reason: "rule is not registered"}
	}

	d := ctor().Descriptor()
	if d.ID != id {
		return &tt.CatalogValidationError{Rule: id, Reason: fmt.Sprintf("descriptor ID %q does not match registry key", d.ID)}
	}
	if len(d.Triggering) == 0 || len(d.NonTriggering) == 0 {
		return &tt.CatalogValidationError{Rule: id, Reason: "a rule must ship at least one triggering and one non-triggering example"}
	}

	ctx := context.Background()
	for _, ex := range d.NonTriggering {
		issues, err := checkExample(ctx, ctor, ex)
		if err != nil {
			return exampleErr(id, ex, err.Error())
		}
		if len(issues) != 0 {
			return exampleErr(id, ex, fmt.Sprintf("expected no violations, got %d at %v", len(issues), issueOffsets(issues)))
		}
	}
	for _, tex := range d.Triggering {
		issues, err := checkExample(ctx, ctor, tex.Example)
		if err != nil {
			return exampleErr(id, tex.Example, err.Error())
		}
		if !sameOffsets(issueOffsets(issues), tex.Offsets) {
			return exampleErr(id, tex.Example, fmt.Sprintf("expected violations at %v, got %v", tex.Offsets, issueOffsets(issues)))
		}
	}
	for _, cex := range d.Corrections {
		if err := validateCorrection(id, ctor, cex); err != nil {
			return err
		}
	}
	return nil
}

func validateCorrection(id string, ctor ruleConstructor, cex tt.CorrectionExample) error {
	rule, err := exampleRule(ctor, cex.Before)
	if err != nil {
		return exampleErr(id, cex.Before, err.Error())
	}
	fixable, ok := rule.(FixableRule)
	if !ok {
		return exampleErr(id, cex.Before, "rule declares corrections but does not implement Fix")
	}

	fixed, n, err := fixOnce(fixable, cex.Before.Source)
	if err != nil {
		return exampleErr(id, cex.Before, err.Error())
	}
	if n == 0 {
		return exampleErr(id, cex.Before, "correction pass fixed nothing")
	}
	if fixed != cex.After {
		return exampleErr(id, cex.Before, fmt.Sprintf("correction produced %q, want %q", fixed, cex.After))
	}

	// the corrected form must be a fixed point
	again, n, err := fixOnce(fixable, cex.After)
	if err != nil {
		return exampleErr(id, cex.Before, err.Error())
	}
	if n != 0 || again != cex.After {
		return exampleErr(id, cex.Before, "corrected example is not a fixed point of the rule")
	}
	return nil
}

// exampleRule builds a rule instance with an example's parameter override
// applied.
func exampleRule(ctor ruleConstructor, ex tt.Example) (LintRule, error) {
	rule := ctor()
	if len(ex.Params) > 0 {
		if err := rule.ApplyParams(ex.Params); err != nil {
			return nil, err
		}
	}
	return rule, nil
}

func checkExample(ctx context.Context, ctor ruleConstructor, ex tt.Example) ([]tt.Issue, error) {
	rule, err := exampleRule(ctor, ex)
	if err != nil {
		return nil, err
	}
	tree, err := syntax.Parse("", []byte(ex.Source))
	if err != nil {
		return nil, err
	}
	return rule.Check(ctx, "", tree)
}

func fixOnce(rule FixableRule, source string) (string, int, error) {
	tree, err := syntax.Parse("", []byte(source))
	if err != nil {
		return "", 0, err
	}
	fixed, corrections, err := rule.Fix(tree, nil)
	if err != nil {
		return "", 0, err
	}
	return string(fixed.Print()), len(corrections), nil
}

func issueOffsets(issues []tt.Issue) []int {
	offsets := make([]int, 0, len(issues))
	for _, issue := range issues {
		offsets = append(offsets, issue.Start.Offset)
	}
	sort.Ints(offsets)
	return offsets
}

// sameOffsets compares violation offsets as sets.
func sameOffsets(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	g := append([]int{}, got...)
	w := append([]int{}, want...)
	sort.Ints(g)
	sort.Ints(w)
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}

func exampleErr(id string, ex tt.Example, reason string) error {
	return &tt.CatalogValidationError{Rule: id, File: ex.File, Line: ex.Line, Reason: reason}
}
