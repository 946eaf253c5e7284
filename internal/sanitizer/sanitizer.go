// Package sanitizer rewrites words that trip provider content policies.
package sanitizer

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Sanitizer replaces banned words with safe substitutes. Matching is
// case-insensitive and whole-word only, so a banned word is never rewritten
// inside a longer word.
type Sanitizer struct {
	rules []rule
}

type rule struct {
	pattern    *regexp.Regexp
	substitute string
}

// New builds a Sanitizer from a banned-word → substitute map. It returns an
// error when a substitute is itself banned, which would break idempotence.
func New(replacements map[string]string) (*Sanitizer, error) {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, w)
	}
	// Stable rule order; map iteration is randomized.
	sort.Strings(words)

	rules := make([]rule, 0, len(words))
	for _, w := range words {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %q: %w", w, err)
		}
		rules = append(rules, rule{pattern: re, substitute: replacements[w]})
	}

	for _, r := range rules {
		for _, other := range rules {
			if other.pattern.MatchString(r.substitute) {
				return nil, fmt.Errorf("substitute %q matches a banned word", r.substitute)
			}
		}
	}
	return &Sanitizer{rules: rules}, nil
}

// Apply rewrites every banned word in text with its substitute. Idempotent.
func (s *Sanitizer) Apply(text string) string {
	for _, r := range s.rules {
		text = r.pattern.ReplaceAllString(text, r.substitute)
	}
	return text
}

// LoadDenylist reads extra replacements from a YAML file mapping banned
// words to substitutes and merges them over base. A missing file is not an
// error; base is returned unchanged.
func LoadDenylist(path string, base map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(base))
	for k, v := range base {
		merged[k] = v
	}
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return nil, fmt.Errorf("read denylist %q: %w", path, err)
	}

	var extra map[string]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse denylist %q: %w", path, err)
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged, nil
}
