// Package disable resolves swlin suppression directives into disabled
// source regions and answers containment queries against them. Detection
// and correction share one Manager per source unit, so a suppressed
// violation is invisible to both.
package disable

import (
	"strings"

	"github.com/swlin/swlin/internal/syntax"
)

const directivePrefix = "swlin:"

// Manager holds the disabled regions of a single source unit.
type Manager struct {
	regions []region
}

// region is a half-open byte range suppressing one rule, or every rule
// when all is set.
type region struct {
	start int
	end   int
	rule  string
	all   bool
}

func (r region) covers(offset int, ruleID string) bool {
	if offset < r.start || offset >= r.end {
		return false
	}
	return r.all || r.rule == ruleID
}

// Contains reports whether a violation at the given byte offset for the
// given rule falls inside a disabled region.
func (m *Manager) Contains(offset int, ruleID string) bool {
	if m == nil {
		return false
	}
	for _, r := range m.regions {
		if r.covers(offset, ruleID) {
			return true
		}
	}
	return false
}

// NumRegions reports how many regions were scanned, for diagnostics.
func (m *Manager) NumRegions() int {
	if m == nil {
		return 0
	}
	return len(m.regions)
}

// Scan extracts suppression directives from line comments:
//
//	// swlin:disable [rule ...]      until a matching enable or EOF
//	// swlin:enable [rule ...]
//	// swlin:disable:next [rule ...]
//	// swlin:disable:this [rule ...]
//	// swlin:disable:previous [rule ...]
//
// A directive without rule names applies to all rules. Invalid directives
// are ignored.
func Scan(src []byte, conv *syntax.Converter) *Manager {
	m := &Manager{}
	openRules := make(map[string]int) // rule -> region start
	openAll := -1

	numLines := conv.NumLines()
	for line := 1; line <= numLines; line++ {
		text := conv.LineText(line)
		cmd, rules, ok := parseDirective(text)
		if !ok {
			continue
		}
		start, end := conv.LineRange(line)
		switch cmd {
		case "disable":
			if len(rules) == 0 {
				if openAll < 0 {
					openAll = start
				}
				continue
			}
			for _, rule := range rules {
				if _, running := openRules[rule]; !running {
					openRules[rule] = start
				}
			}
		case "enable":
			if len(rules) == 0 {
				// bare enable closes everything that is running
				if openAll >= 0 {
					m.regions = append(m.regions, region{start: openAll, end: end, all: true})
					openAll = -1
				}
				for rule, s := range openRules {
					m.regions = append(m.regions, region{start: s, end: end, rule: rule})
				}
				openRules = make(map[string]int)
				continue
			}
			for _, rule := range rules {
				if s, running := openRules[rule]; running {
					m.regions = append(m.regions, region{start: s, end: end, rule: rule})
					delete(openRules, rule)
				}
			}
		case "disable:this":
			m.appendLine(start, end, rules)
		case "disable:next":
			if line < numLines {
				s, e := conv.LineRange(line + 1)
				m.appendLine(s, e, rules)
			}
		case "disable:previous":
			if line > 1 {
				s, e := conv.LineRange(line - 1)
				m.appendLine(s, e, rules)
			}
		}
	}

	// unclosed disables run to end of file
	if openAll >= 0 {
		m.regions = append(m.regions, region{start: openAll, end: len(src), all: true})
	}
	for rule, s := range openRules {
		m.regions = append(m.regions, region{start: s, end: len(src), rule: rule})
	}
	return m
}

func (m *Manager) appendLine(start, end int, rules []string) {
	if len(rules) == 0 {
		m.regions = append(m.regions, region{start: start, end: end, all: true})
		return
	}
	for _, rule := range rules {
		m.regions = append(m.regions, region{start: start, end: end, rule: rule})
	}
}

// parseDirective extracts a swlin directive from one source line. The
// directive must live in a line comment.
func parseDirective(line string) (cmd string, rules []string, ok bool) {
	comment := strings.Index(line, "//")
	if comment < 0 {
		return "", nil, false
	}
	rest := strings.TrimSpace(line[comment+2:])
	if !strings.HasPrefix(rest, directivePrefix) {
		return "", nil, false
	}

	fields := strings.Fields(rest[len(directivePrefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	cmd = fields[0]
	switch cmd {
	case "disable", "enable", "disable:this", "disable:next", "disable:previous":
	default:
		return "", nil, false
	}
	return cmd, fields[1:], true
}
