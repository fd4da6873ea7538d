package fixer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/swlin/swlin/internal"
	"github.com/swlin/swlin/internal/disable"
	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

// DefaultMaxIterations bounds how many correction passes run over a single
// file before giving up on reaching a fixed point.
const DefaultMaxIterations = 10

// Fixer applies the correcting rules of an engine to source files. Rules
// run one at a time in sorted-ID order; the source is reprinted and
// reparsed after every rule that changed it so later rules always see
// up-to-date offsets and disabled regions. Passes repeat until no rule
// changes anything.
type Fixer struct {
	DryRun        bool
	MaxIterations int
}

func New(dryRun bool, maxIterations int) *Fixer {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Fixer{
		DryRun:        dryRun,
		MaxIterations: maxIterations,
	}
}

// Fix corrects filename in place. In dry-run mode the corrections are
// printed and the file is left untouched.
func (f *Fixer) Fix(engine *internal.Engine, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fixed, corrections, err := f.FixSource(engine, filename, content)
	if err != nil {
		return err
	}
	if len(corrections) == 0 {
		return nil
	}

	if f.DryRun {
		fmt.Printf("Would apply %d corrections to %s:\n", len(corrections), filename)
		for _, c := range corrections {
			fmt.Printf("- %s at %d:%d\n", c.Rule, c.Start.Line, c.Start.Column)
		}
		return nil
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issues in %s\n", len(corrections), filename)
	return nil
}

// FixSource returns the corrected form of src together with the corrections
// that were applied. The input slice is never modified.
func (f *Fixer) FixSource(engine *internal.Engine, filename string, src []byte) ([]byte, []tt.Correction, error) {
	rules, err := engine.FixableRulesFor(filename)
	if err != nil {
		return nil, nil, err
	}
	if len(rules) == 0 {
		return src, nil, nil
	}

	var corrections []tt.Correction
	current := src

	for iter := 0; iter < f.MaxIterations; iter++ {
		next, applied, err := f.fixPass(rules, filename, current)
		if err != nil {
			return nil, nil, err
		}
		if len(applied) == 0 {
			return current, corrections, nil
		}
		corrections = append(corrections, applied...)
		current = next
	}

	// A pass kept producing changes. Either two rules undo each other or a
	// rule is not convergent; refuse to write a possibly oscillating result.
	return nil, nil, fmt.Errorf("%s: corrections did not converge after %d passes", filename, f.MaxIterations)
}

// fixPass runs every rule once over src, reparsing between rules that
// changed the source.
func (f *Fixer) fixPass(rules []internal.FixableRule, filename string, src []byte) ([]byte, []tt.Correction, error) {
	var corrections []tt.Correction
	current := src

	for _, rule := range rules {
		tree, err := syntax.Parse(filename, current)
		if err != nil {
			return nil, nil, err
		}
		regions := disable.Scan(current, tree.Converter())

		id := rule.Descriptor().ID
		fixed, applied, err := rule.Fix(tree, func(offset int) bool {
			return regions.Contains(offset, id)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("rule %s: %w", id, err)
		}
		if len(applied) == 0 {
			continue
		}

		corrections = append(corrections, applied...)
		current = []byte(fixed.Print())
	}

	if bytes.Equal(current, src) {
		return src, nil, nil
	}
	return current, corrections, nil
}
