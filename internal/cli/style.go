package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles
var (
	// Colors
	highlight  = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special    = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning    = lipgloss.AdaptiveColor{Light: "#F29F05", Dark: "#F29F05"}
	errorColor = lipgloss.AdaptiveColor{Light: "#E05252", Dark: "#E05252"}

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Status dots
	okDot   = lipgloss.NewStyle().Foreground(special).SetString("✓")
	warnDot = lipgloss.NewStyle().Foreground(warning).SetString("●")
	errDot  = lipgloss.NewStyle().Foreground(errorColor).SetString("●")

	// Diff lines
	addStyle  = lipgloss.NewStyle().Foreground(special)
	delStyle  = lipgloss.NewStyle().Foreground(errorColor)
	hunkStyle = lipgloss.NewStyle().Foreground(highlight)

	kindBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#7F8C8D"))
)

// configureColor drops all styling when color is disabled or stdout is not
// a terminal.
func configureColor(noColor bool) {
	fd := os.Stdout.Fd()
	if noColor || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Helper functions for common output patterns

func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", okDot.String(), msg)
}

func PrintError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", errDot.String(), msg)
}

func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", warnDot.String(), msg)
}

func RenderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	for i, h := range headers {
		fmt.Fprint(w, headerStyle.Width(widths[i]+2).Render(h))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprint(w, lipgloss.NewStyle().Width(widths[i]+2).Padding(0, 1).Render(cell))
			}
		}
		fmt.Fprintln(w)
	}
}
