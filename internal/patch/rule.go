// Package patch applies ordered text replacement rules to a single file.
// Content is treated as opaque text: nothing is parsed or validated.
package patch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotUTF8 is returned when the target file is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")

	// ErrNoMatch is returned in strict mode when a rule matched nothing.
	ErrNoMatch = errors.New("rule matched nothing")

	// ErrInvalidRule is returned for rules that have no usable matcher.
	ErrInvalidRule = errors.New("invalid rule")
)

// Rule is a single matcher/replacement pair. Exactly one of Literal or
// Pattern is set. Replacement is always inserted verbatim, so "$" sequences
// in it are never expanded.
type Rule struct {
	// Name is the progress label, e.g. "Fixing submit popup".
	Name string

	// Summary is the line printed in the completion summary.
	Summary string

	Literal     string
	Pattern     *regexp.Regexp
	Replacement string
}

// Kind reports "pattern" or "literal".
func (r Rule) Kind() string {
	if r.Pattern != nil {
		return "pattern"
	}
	return "literal"
}

// Validate checks that the rule has a name and exactly one matcher.
func (r Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRule)
	}
	if r.Pattern == nil && r.Literal == "" {
		return fmt.Errorf("%w: %q has neither literal nor pattern", ErrInvalidRule, r.Name)
	}
	if r.Pattern != nil && r.Literal != "" {
		return fmt.Errorf("%w: %q has both literal and pattern", ErrInvalidRule, r.Name)
	}
	return nil
}

// Apply runs the rule against text and returns the new text together with
// the number of replaced occurrences. A rule with zero matches returns text
// unchanged.
func (r Rule) Apply(text string) (string, int) {
	if r.Pattern != nil {
		n := len(r.Pattern.FindAllStringIndex(text, -1))
		if n == 0 {
			return text, 0
		}
		return r.Pattern.ReplaceAllLiteralString(text, r.Replacement), n
	}
	if r.Literal == "" {
		return text, 0
	}
	n := strings.Count(text, r.Literal)
	if n == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, r.Literal, r.Replacement), n
}

// Matcher returns the literal text or the pattern source, for display.
func (r Rule) Matcher() string {
	if r.Pattern != nil {
		return r.Pattern.String()
	}
	return r.Literal
}
