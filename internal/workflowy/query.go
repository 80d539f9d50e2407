package workflowy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/handlebauer/workflowy-scraper/internal/markup"
)

// MatchMode selects how a query pattern is compared to node names.
type MatchMode int

// Supported match modes. ModeContains is the zero value and the default.
const (
	ModeContains MatchMode = iota
	ModeExact
	ModeStartsWith
	ModeRegex
)

var modeNames = map[MatchMode]string{
	ModeContains:   "contains",
	ModeExact:      "exact",
	ModeStartsWith: "starts-with",
	ModeRegex:      "regex",
}

// String returns the CLI spelling of the mode.
func (m MatchMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MatchMode(%d)", int(m))
}

// ParseMatchMode parses a mode name. The empty string means ModeContains.
func ParseMatchMode(name string) (MatchMode, error) {
	if name == "" {
		return ModeContains, nil
	}
	for mode, modeName := range modeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return ModeContains, fmt.Errorf("unknown match mode %q (want contains, exact, starts-with or regex)", name)
}

// QueryOptions is a pattern together with the way it should match.
type QueryOptions struct {
	Mode    MatchMode
	Pattern string
}

// PatternError reports a regex pattern that does not compile.
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regex pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying regexp error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Matcher tests normalized node names against a pattern.
type Matcher struct {
	mode    MatchMode
	pattern string
	re      *regexp.Regexp
}

// NewMatcher builds a Matcher. Regex patterns are compiled here so a bad
// pattern fails before any traversal starts.
func NewMatcher(mode MatchMode, pattern string) (*Matcher, error) {
	matcher := &Matcher{mode: mode, pattern: pattern}
	switch mode {
	case ModeContains, ModeExact, ModeStartsWith:
	case ModeRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		matcher.re = re
	default:
		return nil, fmt.Errorf("unsupported match mode %s", mode)
	}
	return matcher, nil
}

// Mode returns the matcher's mode.
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// Pattern returns the raw pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether an already-normalized name matches.
func (m *Matcher) Match(name string) bool {
	switch m.mode {
	case ModeExact:
		return name == m.pattern
	case ModeStartsWith:
		return strings.HasPrefix(name, m.pattern)
	case ModeRegex:
		return m.re.MatchString(name)
	default:
		return strings.Contains(name, m.pattern)
	}
}

// Query searches the forest depth-first and returns the nodes whose
// normalized name matches. A matching node is returned with its subtree
// intact and its descendants are not searched further.
func Query(roots []*Node, matcher *Matcher) []*Node {
	var results []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			if matcher.Match(markup.Strip(node.Name)) {
				results = append(results, node)
				continue
			}
			walk(node.Children)
		}
	}
	walk(roots)
	return results
}

// QueryNodes builds a matcher from opts and runs Query.
func QueryNodes(roots []*Node, opts QueryOptions) ([]*Node, error) {
	matcher, err := NewMatcher(opts.Mode, opts.Pattern)
	if err != nil {
		return nil, err
	}
	return Query(roots, matcher), nil
}
