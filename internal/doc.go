// Package internal provides the core functionality of the swlin linter.
//
// This package implements a rule engine for Swift sources: it parses each
// file once into an immutable syntax tree, resolves the active rule set and
// its configuration per file, and runs the rules concurrently against the
// tree. Rules that know how to correct what they detect rewrite the tree
// structurally, so corrected output is reprinted byte-exactly except for
// the removed content.
//
// Key components:
//
// Engine: coordinates the linting process. It validates configuration at
// construction time, instantiates rules per file and filters reported
// issues through swlin:disable regions.
//
// LintRule: the contract every rule implements. FixableRule extends it
// with a structural correction step.
//
// The example catalog carried by every rule descriptor is self-testing:
// ValidateAllRules checks each rule against its own triggering,
// non-triggering and correction examples.
//
// Usage:
//
//	engine, err := internal.NewEngine(".", config)
//	if err != nil {
//	    // handle error
//	}
//	issues, err := engine.Run(ctx, "Sources/Controller.swift")
package internal
