package types

import "fmt"

// ConfigurationError reports an unrecognized or invalid configuration entry.
// It is raised at load time and aborts the run; configuration problems are
// never silently dropped.
type ConfigurationError struct {
	Rule   string
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error for rule %q: key %q: %s", e.Rule, e.Key, e.Reason)
	}
	return fmt.Sprintf("configuration error for rule %q: %s", e.Rule, e.Reason)
}

// CatalogValidationError reports a rule whose example catalog disagrees with
// its own detector or corrector. It is fatal at catalog self-test time only,
// never during analysis of user code.
type CatalogValidationError struct {
	Rule   string
	File   string
	Line   int
	Reason string
}

func (e *CatalogValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("catalog validation failed for rule %q (%s:%d): %s", e.Rule, e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("catalog validation failed for rule %q: %s", e.Rule, e.Reason)
}

// ParseFailure wraps a parser error for a single source unit.
type ParseFailure struct {
	Filename string
	Err      error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Filename, e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }
