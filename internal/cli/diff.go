package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

// renderDiff prints a line-oriented diff of before and after.
func renderDiff(w io.Writer, path, before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintln(w, delStyle.Render("--- "+path))
	fmt.Fprintln(w, addStyle.Render("+++ "+path+" (patched)"))

	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range text {
				fmt.Fprintln(w, delStyle.Render("- "+l))
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range text {
				fmt.Fprintln(w, addStyle.Render("+ "+l))
			}
		case diffmatchpatch.DiffEqual:
			first, last := i == 0, i == len(diffs)-1
			head, tail := diffContext, diffContext
			if first {
				head = 0
			}
			if last {
				tail = 0
			}
			if len(text) <= head+tail {
				for _, l := range text {
					fmt.Fprintln(w, dimStyle.Render("  "+l))
				}
				continue
			}
			for _, l := range text[:head] {
				fmt.Fprintln(w, dimStyle.Render("  "+l))
			}
			if !last {
				fmt.Fprintln(w, hunkStyle.Render(fmt.Sprintf("@@ %d unchanged lines @@", len(text)-head-tail)))
			}
			for _, l := range text[len(text)-tail:] {
				fmt.Fprintln(w, dimStyle.Render("  "+l))
			}
		}
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
