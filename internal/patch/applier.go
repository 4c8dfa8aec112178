package patch

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"
)

// Reporter receives progress from an Applier. The CLI implements it to
// print console lines; tests use it to record calls.
type Reporter interface {
	Begin(path string)
	RuleApplied(rule Rule, matches int)
	Finish(result *Result)
}

// RuleResult records what a single rule did.
type RuleResult struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Kind    string `json:"kind"`
	Matches int    `json:"matches"`
}

// Result is the outcome of one Apply call.
type Result struct {
	Path        string       `json:"path"`
	Rules       []RuleResult `json:"rules"`
	Changed     bool         `json:"changed"`
	Written     bool         `json:"written"`
	DryRun      bool         `json:"dry_run"`
	CRLF        bool         `json:"crlf"`
	BytesBefore int          `json:"bytes_before"`
	BytesAfter  int          `json:"bytes_after"`

	// Original and Patched hold the text before and after the rules ran,
	// in the file's own line endings.
	Original string `json:"-"`
	Patched  string `json:"-"`
}

// Applied returns the results of rules that matched at least once.
func (r *Result) Applied() []RuleResult {
	var out []RuleResult
	for _, rr := range r.Rules {
		if rr.Matches > 0 {
			out = append(out, rr)
		}
	}
	return out
}

// Missed returns the results of rules that matched nothing.
func (r *Result) Missed() []RuleResult {
	var out []RuleResult
	for _, rr := range r.Rules {
		if rr.Matches == 0 {
			out = append(out, rr)
		}
	}
	return out
}

// Applier performs read-modify-write patching of a single file.
type Applier struct {
	Rules []Rule

	// Strict turns a rule that matched nothing into ErrNoMatch. The file is
	// left untouched in that case.
	Strict bool

	// DryRun computes the result without writing the file.
	DryRun bool

	Reporter Reporter
	Logger   *slog.Logger
}

// NewApplier creates an Applier for the given rules.
func NewApplier(rules []Rule) *Applier {
	return &Applier{Rules: rules}
}

// Apply reads path, runs every rule in order against the in-memory text and
// writes the result back to path. Nothing is written if reading fails, if
// the content is not UTF-8, or if strict mode rejects a zero-match rule.
func (a *Applier) Apply(path string) (*Result, error) {
	log := a.logger().With("path", path)

	for i, rule := range a.Rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read %s: %w", path, ErrNotUTF8)
	}

	original := string(data)
	crlf := isCRLF(original)
	text := original
	if crlf {
		text = toLF(text)
	}
	log.Debug("Loaded file", "bytes", len(data), "crlf", crlf, "rule_count", len(a.Rules))

	if a.Reporter != nil {
		a.Reporter.Begin(path)
	}

	result := &Result{
		Path:        path,
		DryRun:      a.DryRun,
		CRLF:        crlf,
		BytesBefore: len(data),
		Original:    original,
	}

	for _, rule := range a.Rules {
		var n int
		text, n = rule.Apply(text)
		result.Rules = append(result.Rules, RuleResult{
			Name:    rule.Name,
			Summary: rule.Summary,
			Kind:    rule.Kind(),
			Matches: n,
		})
		if n == 0 {
			log.Warn("Rule matched nothing", "rule", rule.Name, "kind", rule.Kind())
		} else {
			log.Info("Rule applied", "rule", rule.Name, "matches", n)
		}
		if a.Reporter != nil {
			a.Reporter.RuleApplied(rule, n)
		}
	}

	if crlf {
		text = toCRLF(text)
	}
	result.Patched = text
	result.BytesAfter = len(text)
	result.Changed = text != original

	if a.Strict {
		if missed := result.Missed(); len(missed) > 0 {
			return result, fmt.Errorf("%s: %q: %w", path, missed[0].Name, ErrNoMatch)
		}
	}

	if result.Changed && !a.DryRun {
		if err := writeFileAtomic(path, []byte(text)); err != nil {
			return result, fmt.Errorf("write %s: %w", path, err)
		}
		result.Written = true
		log.Info("File written", "bytes", len(text))
	}

	if a.Reporter != nil {
		a.Reporter.Finish(result)
	}
	return result, nil
}

func (a *Applier) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
