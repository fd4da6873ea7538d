package types

import (
	"fmt"
	"runtime"
	"sort"
)

// Severity indicates how a reported issue should be treated by the caller.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// ParseSeverity converts a configuration string into a Severity.
// Anything other than "warning" or "error" is rejected.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityWarning, fmt.Errorf("invalid severity %q (want \"warning\" or \"error\")", s)
	}
}

// Position is an absolute location in a source unit. Offset is a byte
// offset; Line and Column are 1-based and derived via syntax.Converter.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Issue represents a single rule violation found in a source unit.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Severity   Severity
	Message    string
	Suggestion string
	Note       string
	Start      Position
	End        Position
}

// Correction records a position where a rewrite eliminated a violation.
// Positions are valid against the tree generation they were computed on.
type Correction struct {
	Rule  string
	Start Position
}

// SortIssues orders issues ascending by offset, then rule identifier.
// Detection output must be deterministic regardless of per-rule scheduling.
func SortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Start.Offset != issues[j].Start.Offset {
			return issues[i].Start.Offset < issues[j].Start.Offset
		}
		return issues[i].Rule < issues[j].Rule
	})
}

// RuleKind categorizes a rule for reporting purposes.
type RuleKind string

const (
	KindLint        RuleKind = "lint"
	KindStyle       RuleKind = "style"
	KindIdiomatic   RuleKind = "idiomatic"
	KindPerformance RuleKind = "performance"
)

// Example is a literal source snippet used by the catalog self-test.
// File and Line point at the Go source that declared the example so a
// catalog failure can be attributed to its definition site.
type Example struct {
	Source string
	File   string
	Line   int
	Params map[string]any
}

// Ex captures an example together with its declaration site.
func Ex(source string) Example {
	_, file, line, _ := runtime.Caller(1)
	return Example{Source: source, File: file, Line: line}
}

// ExParams is Ex with a per-example parameter override.
func ExParams(source string, params map[string]any) Example {
	_, file, line, _ := runtime.Caller(1)
	return Example{Source: source, File: file, Line: line, Params: params}
}

// TriggeringExample pairs a snippet with the byte offsets at which the rule
// must report. Offsets are kept out-of-band rather than as inline markers.
type TriggeringExample struct {
	Example
	Offsets []int
}

// CorrectionExample pairs a violating snippet with its corrected form.
// The corrected form must itself be a fixed point of the rule.
type CorrectionExample struct {
	Before Example
	After  string
}

// Descriptor is the static metadata a rule registers with the catalog.
type Descriptor struct {
	ID              string
	Name            string
	Description     string
	Kind            RuleKind
	DefaultSeverity Severity
	OptIn           bool
	// Params lists the parameter names the rule recognizes. Any other
	// configured parameter is a ConfigurationError.
	Params []string

	NonTriggering []Example
	Triggering    []TriggeringExample
	Corrections   []CorrectionExample
}

// RecognizesParam reports whether name is a declared parameter of the rule.
func (d Descriptor) RecognizesParam(name string) bool {
	for _, p := range d.Params {
		if p == name {
			return true
		}
	}
	return false
}

// FileFailure records a source unit that could not be analyzed at all.
// One file's failure never aborts a multi-file run.
type FileFailure struct {
	Filename string
	Err      error
}

// HasBlocking reports whether a run should exit non-zero: any
// error-severity issue or any unrecovered per-file failure.
func HasBlocking(issues []Issue, failures []FileFailure) bool {
	if len(failures) > 0 {
		return true
	}
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
