package types

import (
	"path"
	"path/filepath"
)

// ConfigRule is the per-rule configuration schema. Recognized keys are
// severity, enabled and params; anything else is a ConfigurationError at
// load time.
type ConfigRule struct {
	Severity string         `yaml:"severity,omitempty"`
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Params   map[string]any `yaml:"params,omitempty"`
}

// Override applies rule configuration to files whose path matches one of
// the glob patterns. Patterns without a separator match the base name.
type Override struct {
	Paths []string              `yaml:"paths"`
	Rules map[string]ConfigRule `yaml:"rules"`
}

// Config is the resolved project configuration. It is built once at
// startup and read-only afterwards.
type Config struct {
	Name      string                `yaml:"name,omitempty"`
	Rules     map[string]ConfigRule `yaml:"rules,omitempty"`
	Overrides []Override            `yaml:"overrides,omitempty"`
}

// ResolveFor merges the configuration layers for one rule and one file:
// built-in default (the zero ConfigRule) -> project-wide -> file-scoped
// override, most specific wins per key.
func (c *Config) ResolveFor(ruleID, filename string) ConfigRule {
	var resolved ConfigRule
	if c == nil {
		return resolved
	}
	if rc, ok := c.Rules[ruleID]; ok {
		resolved = merge(resolved, rc)
	}
	for _, ov := range c.Overrides {
		if !ov.matches(filename) {
			continue
		}
		if rc, ok := ov.Rules[ruleID]; ok {
			resolved = merge(resolved, rc)
		}
	}
	return resolved
}

func (o Override) matches(filename string) bool {
	if filename == "" {
		return false
	}
	slashed := filepath.ToSlash(filename)
	base := path.Base(slashed)
	for _, pattern := range o.Paths {
		target := slashed
		if !containsSlash(pattern) {
			target = base
		}
		if ok, err := path.Match(pattern, target); err == nil && ok {
			return true
		}
	}
	return false
}

func containsSlash(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			return true
		}
	}
	return false
}

func merge(base, over ConfigRule) ConfigRule {
	if over.Severity != "" {
		base.Severity = over.Severity
	}
	if over.Enabled != nil {
		base.Enabled = over.Enabled
	}
	if len(over.Params) > 0 {
		if base.Params == nil {
			base.Params = make(map[string]any, len(over.Params))
		}
		for k, v := range over.Params {
			base.Params[k] = v
		}
	}
	return base
}
