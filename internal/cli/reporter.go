package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/voxelmap/hotfix/internal/patch"
)

// consoleReporter prints progress lines and the completion summary.
type consoleReporter struct {
	w     io.Writer
	label string // e.g. "EMERGENCY fixes"
}

func newConsoleReporter(w io.Writer, label string) *consoleReporter {
	return &consoleReporter{w: w, label: label}
}

func (r *consoleReporter) Begin(path string) {
	fmt.Fprintf(r.w, "%s %s\n", titleStyle.Render("Applying "+r.label+"..."), dimStyle.Render(path))
}

func (r *consoleReporter) RuleApplied(rule patch.Rule, matches int) {
	if matches == 0 {
		PrintWarning(r.w, fmt.Sprintf("%s... no match, rule skipped", rule.Name))
		return
	}
	suffix := "match"
	if matches > 1 {
		suffix = "matches"
	}
	PrintSuccess(r.w, fmt.Sprintf("%s... %s", rule.Name, dimStyle.Render(fmt.Sprintf("(%d %s)", matches, suffix))))
}

func (r *consoleReporter) Finish(res *patch.Result) {
	fmt.Fprintln(r.w)

	applied := res.Applied()
	switch {
	case res.DryRun && res.Changed:
		fmt.Fprintln(r.w, titleStyle.Render("DRY RUN: no changes written"))
	case !res.Changed:
		PrintWarning(r.w, "Nothing to change, file left untouched")
	default:
		fmt.Fprintln(r.w, titleStyle.Render("✅ "+strings.ToUpper(r.label)+" APPLIED!"))
	}

	if len(applied) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, "Fixed issues:")
		for i, rr := range applied {
			fmt.Fprintf(r.w, "  %d. %s\n", i+1, rr.Summary)
		}
	}

	if missed := res.Missed(); len(missed) > 0 {
		fmt.Fprintln(r.w)
		PrintWarning(r.w, fmt.Sprintf("%d of %d rules matched nothing; verify the file by hand:", len(missed), len(res.Rules)))
		for _, rr := range missed {
			fmt.Fprintf(r.w, "  - %s\n", rr.Name)
		}
	}
}
