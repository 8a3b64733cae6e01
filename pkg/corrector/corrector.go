// Package corrector rewrites tool parameters that failed server-side
// validation. It works against any MCP server by parsing the validation
// error text, so the patterns here are heuristics, not a schema.
package corrector

import (
	"fmt"
	"regexp"
	"strings"
)

var pathRe = regexp.MustCompile(`"path":\s*\[\s*"([^"]+)"\s*\]`)

// Corrector analyzes validation errors and proposes corrected parameters.
type Corrector struct{}

// New creates a Corrector.
func New() *Corrector {
	return &Corrector{}
}

// Analyze inspects a validation error message and the parameters that
// produced it. It returns a Correction when a transformation applies,
// nil otherwise.
func (c *Corrector) Analyze(errMessage string, params map[string]any) *Correction {
	if len(params) == 0 {
		return nil
	}

	transforms := []func(string, map[string]any) *Correction{
		c.stringToArray,
		c.singularToPlural,
		c.caseRename,
		c.knownPatterns,
	}
	for _, transform := range transforms {
		if corr := transform(errMessage, params); corr != nil {
			return corr
		}
	}
	return nil
}

// stringToArray handles "expected array, received string" shapes by
// wrapping the matching parameter in a single-element array.
func (c *Corrector) stringToArray(errMessage string, params map[string]any) *Correction {
	lower := strings.ToLower(errMessage)
	if !strings.Contains(lower, "array") {
		return nil
	}
	if !strings.Contains(lower, "string") && !strings.Contains(lower, "undefined") {
		return nil
	}

	m := pathRe.FindStringSubmatch(errMessage)
	if m == nil {
		return nil
	}
	expected := m[1]

	for name, value := range params {
		if !looselyMatches(name, expected) {
			continue
		}
		corrected := clone(params)
		if value != nil {
			corrected[expected] = []any{value}
		} else {
			corrected[expected] = []any{}
		}
		if name != expected {
			delete(corrected, name)
		}
		return &Correction{
			Original:   params,
			Corrected:  corrected,
			Applied:    fmt.Sprintf("converted %q to %q array", name, expected),
			Confidence: 0.8,
		}
	}
	return nil
}

// singularToPlural renames a parameter when the error names its
// singular/plural counterpart.
func (c *Corrector) singularToPlural(errMessage string, params map[string]any) *Correction {
	quoted := regexp.MustCompile(`"([^"]+)"`).FindAllStringSubmatch(errMessage, -1)
	if len(quoted) == 0 {
		return nil
	}
	expected := quoted[0][1]

	for name, value := range params {
		if name == expected {
			continue
		}
		if strings.TrimRight(name, "s") != strings.TrimRight(expected, "s") {
			continue
		}
		corrected := clone(params)
		corrected[expected] = value
		delete(corrected, name)
		return &Correction{
			Original:   params,
			Corrected:  corrected,
			Applied:    fmt.Sprintf("renamed %q to %q", name, expected),
			Confidence: 0.7,
		}
	}
	return nil
}

// caseRename handles snake_case/camelCase mismatches.
func (c *Corrector) caseRename(errMessage string, params map[string]any) *Correction {
	underscored := regexp.MustCompile(`"([^"]*_[^"]*)"`).FindAllStringSubmatch(errMessage, -1)
	for _, m := range underscored {
		expected := m[1]
		for name, value := range params {
			if name == expected {
				continue
			}
			if !strings.EqualFold(strings.ReplaceAll(name, "_", ""), strings.ReplaceAll(expected, "_", "")) {
				continue
			}
			corrected := clone(params)
			corrected[expected] = value
			delete(corrected, name)
			return &Correction{
				Original:   params,
				Corrected:  corrected,
				Applied:    fmt.Sprintf("converted %q to %q", name, expected),
				Confidence: 0.6,
			}
		}
	}
	return nil
}

// knownPatterns covers error shapes seen in the wild that the generic
// transforms miss.
func (c *Corrector) knownPatterns(errMessage string, params map[string]any) *Correction {
	// index / index_name string → indices array
	if strings.Contains(errMessage, "indices") {
		for _, alias := range []string{"index", "index_name"} {
			if value, ok := params[alias]; ok {
				corrected := clone(params)
				corrected["indices"] = []any{value}
				delete(corrected, alias)
				return &Correction{
					Original:   params,
					Corrected:  corrected,
					Applied:    fmt.Sprintf("converted %q string to \"indices\" array", alias),
					Confidence: 0.9,
				}
			}
		}
	}

	// Missing required "query" parameter under a different name.
	if strings.Contains(errMessage, "query") && strings.Contains(errMessage, "Required") {
		for _, alias := range []string{"esql", "sql", "search", "statement", "command", "expression"} {
			if value, ok := params[alias]; ok {
				corrected := clone(params)
				corrected["query"] = value
				delete(corrected, alias)
				return &Correction{
					Original:   params,
					Corrected:  corrected,
					Applied:    fmt.Sprintf("renamed %q to required \"query\" parameter", alias),
					Confidence: 0.8,
				}
			}
		}
	}

	// Generic required-array field.
	if strings.Contains(errMessage, "Required") && strings.Contains(errMessage, "array") {
		if m := pathRe.FindStringSubmatch(errMessage); m != nil {
			required := m[1]
			for name, value := range params {
				if !looselyMatches(name, required) {
					continue
				}
				corrected := clone(params)
				switch v := value.(type) {
				case []any:
					corrected[required] = v
				case nil:
					corrected[required] = []any{}
				default:
					corrected[required] = []any{v}
				}
				if name != required {
					delete(corrected, name)
				}
				return &Correction{
					Original:   params,
					Corrected:  corrected,
					Applied:    fmt.Sprintf("converted %q to required %q array", name, required),
					Confidence: 0.7,
				}
			}
		}
	}

	// Generic required field under a fuzzy-matching name.
	if strings.Contains(errMessage, "Required") && strings.Contains(errMessage, "undefined") {
		if m := pathRe.FindStringSubmatch(errMessage); m != nil {
			required := m[1]
			for name, value := range params {
				if !looselyMatches(name, required) {
					continue
				}
				corrected := clone(params)
				corrected[required] = value
				if name != required {
					delete(corrected, name)
				}
				return &Correction{
					Original:   params,
					Corrected:  corrected,
					Applied:    fmt.Sprintf("renamed %q to required %q", name, required),
					Confidence: 0.6,
				}
			}
		}
	}

	return nil
}

// looselyMatches reports whether two parameter names plausibly refer to
// the same field, ignoring case and separators.
func looselyMatches(a, b string) bool {
	na := normalize(a)
	nb := normalize(b)
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

func clone(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
