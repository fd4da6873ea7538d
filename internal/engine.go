package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/swlin/swlin/internal/disable"
	"github.com/swlin/swlin/internal/syntax"
	tt "github.com/swlin/swlin/internal/types"
)

// Engine manages the linting process: it resolves the active rule set and
// its configuration per file, parses each source unit once, and runs the
// rules against the immutable tree.
type Engine struct {
	rootDir      string
	cfg          *tt.Config
	ignoredRules map[string]bool
	ignorePaths  []string
	cache        *Cache

	watchMu    sync.Mutex
	isWatching bool
	watchStop  chan struct{}
	watcher    *fsnotify.Watcher
}

// NewEngine creates a new lint engine. The configuration is validated
// eagerly: unknown rules, invalid severities and unrecognized parameters
// abort construction rather than being silently dropped.
func NewEngine(rootDir string, cfg *tt.Config) (*Engine, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Engine{
		rootDir:      rootDir,
		cfg:          cfg,
		ignoredRules: make(map[string]bool),
	}, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"strong_iboutlet":      NewStrongIBOutletRule,
	"empty_enum_arguments": NewEmptyEnumArgumentsRule,
	"line_length":          NewLineLengthRule,
	"todo":                 NewTodoRule,
}

// RuleIDs returns the identifiers of every registered rule, sorted.
func RuleIDs() []string {
	ids := make([]string, 0, len(allRuleConstructors))
	for id := range allRuleConstructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewRule instantiates a registered rule with its built-in defaults.
func NewRule(id string) (LintRule, bool) {
	ctor, ok := allRuleConstructors[id]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// validateConfig checks every configured rule id, severity and parameter
// against the registry at load time.
func validateConfig(cfg *tt.Config) error {
	if cfg == nil {
		return nil
	}
	if err := validateRuleConfigs(cfg.Rules); err != nil {
		return err
	}
	for _, ov := range cfg.Overrides {
		if err := validateRuleConfigs(ov.Rules); err != nil {
			return err
		}
	}
	return nil
}

func validateRuleConfigs(rules map[string]tt.ConfigRule) error {
	for id, rc := range rules {
		ctor, ok := allRuleConstructors[id]
		if !ok {
			return &tt.ConfigurationError{Rule: id, Reason: "unknown rule"}
		}
		if rc.Severity != "" {
			if _, err := tt.ParseSeverity(rc.Severity); err != nil {
				return &tt.ConfigurationError{Rule: id, Key: "severity", Reason: err.Error()}
			}
		}
		if len(rc.Params) > 0 {
			if err := ctor().ApplyParams(rc.Params); err != nil {
				return err
			}
		}
	}
	return nil
}

// rulesFor instantiates the rules active for one file, with severity and
// parameters resolved through the configuration layers. Fresh instances per
// call keep concurrent file analyses independent.
func (e *Engine) rulesFor(filename string) ([]LintRule, error) {
	var rules []LintRule
	for _, id := range RuleIDs() {
		if e.ignoredRules[id] {
			continue
		}
		rule, _ := NewRule(id)
		d := rule.Descriptor()
		rc := e.cfg.ResolveFor(id, filename)

		enabled := !d.OptIn
		if rc.Enabled != nil {
			enabled = *rc.Enabled
		}
		if !enabled {
			continue
		}
		if rc.Severity != "" {
			sev, err := tt.ParseSeverity(rc.Severity)
			if err != nil {
				return nil, &tt.ConfigurationError{Rule: id, Key: "severity", Reason: err.Error()}
			}
			rule.SetSeverity(sev)
		}
		if len(rc.Params) > 0 {
			if err := rule.ApplyParams(rc.Params); err != nil {
				return nil, err
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// FixableRulesFor returns the active rules that can correct, in sorted-ID
// order so cross-rule passes are deterministic.
func (e *Engine) FixableRulesFor(filename string) ([]FixableRule, error) {
	rules, err := e.rulesFor(filename)
	if err != nil {
		return nil, err
	}
	var fixable []FixableRule
	for _, rule := range rules {
		if fr, ok := rule.(FixableRule); ok {
			fixable = append(fixable, fr)
		}
	}
	return fixable, nil
}

// Run applies all active lint rules to the given file and returns a slice
// of Issues sorted by position.
func (e *Engine) Run(ctx context.Context, filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}
	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	issues, err := e.run(ctx, filename, src)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(filename, src, issues)
		if err := e.cache.Save(); err != nil {
			return issues, nil
		}
	}
	return issues, nil
}

// RunSource applies all active lint rules to the given source and returns
// a slice of Issues.
func (e *Engine) RunSource(ctx context.Context, source []byte) ([]tt.Issue, error) {
	return e.run(ctx, "", source)
}

func (e *Engine) run(ctx context.Context, filename string, src []byte) ([]tt.Issue, error) {
	tree, err := syntax.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	mgr := disable.Scan(src, tree.Converter())

	rules, err := e.rulesFor(filename)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			// a crashing rule degrades to a skipped rule for this
			// file, not a process crash
			defer func() { _ = recover() }()

			issues, err := r.Check(ctx, filename, tree)
			if err != nil {
				return
			}
			kept := filterDisabled(issues, mgr)

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tt.SortIssues(allIssues)
	return allIssues, nil
}

// filterDisabled drops issues whose position falls inside a disabled
// region naming their rule (or all rules). The same predicate guards the
// correction pass.
func filterDisabled(issues []tt.Issue, mgr *disable.Manager) []tt.Issue {
	if mgr == nil || mgr.NumRegions() == 0 {
		return issues
	}
	kept := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.Contains(issue.Start.Offset, issue.Rule) {
			kept = append(kept, issue)
		}
	}
	return kept
}

// IgnoreRule deactivates a rule for every subsequent run.
func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// IgnorePath excludes a path (and everything under it) from analysis.
func (e *Engine) IgnorePath(path string) {
	e.ignorePaths = append(e.ignorePaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(path string) bool {
	cleaned := filepath.Clean(path)
	for _, ignored := range e.ignorePaths {
		if cleaned == ignored || strings.HasPrefix(cleaned, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// EnableCache turns on the per-file result cache rooted at dir. Cached
// results from a different configuration are discarded.
func (e *Engine) EnableCache(dir string) error {
	cache, err := NewCache(dir)
	if err != nil {
		return err
	}
	cache.SetConfigHash(configFingerprint(e.cfg))
	e.cache = cache
	return nil
}

// configFingerprint derives a stable hash of the configuration. yaml.v3
// emits map keys in sorted order, so equal configs hash equally.
func configFingerprint(cfg *tt.Config) string {
	if cfg == nil {
		return contentHash(nil)
	}
	encoded, err := yaml.Marshal(cfg)
	if err != nil {
		return contentHash([]byte(fmt.Sprintf("%+v", cfg)))
	}
	return contentHash(encoded)
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
