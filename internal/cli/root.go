package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/voxelmap/hotfix/internal/config"
	"github.com/voxelmap/hotfix/internal/logger"
	"github.com/voxelmap/hotfix/internal/patch"
)

// UsageError marks a command line that could not be understood. Callers print
// the usage text alongside it.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

// NewRootCmd creates the hotfix command. cfg supplies defaults that flags
// override.
func NewRootCmd(cfg config.Config, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hotfix [flags] <index_file.html>",
		Short: "Apply emergency text fixes to the voxel map page",
		Long: titleStyle.Render("hotfix") + " " + lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(version) + "\n" +
			"  Rewrites a deployed HTML/JavaScript file in place by applying an ordered\n" +
			"  list of literal and regex replacements, then prints the fixes applied.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			list, _ := cmd.Flags().GetBool("list-rules")
			if list {
				if len(args) > 0 {
					return &UsageError{msg: "--list-rules takes no file argument"}
				}
				return nil
			}
			if len(args) != 1 {
				return &UsageError{msg: fmt.Sprintf("expected exactly one file argument, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := readOptions(cmd)
			closeLog, err := initLogger(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			configureColor(opts.noColor)

			rules, label, err := loadRules(opts.rulesFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.listRules {
				return listRules(cmd, out, rules)
			}
			return runApply(out, args[0], rules, label, opts)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{msg: err.Error()}
	})

	f := rootCmd.Flags()
	f.Bool("dry-run", false, "Show the diff without writing the file")
	f.Bool("strict", cfg.Strict, "Fail without writing if any rule matches nothing")
	f.String("rules", cfg.RulesFile, "Load rules from a YAML file instead of the built-in fixes")
	f.Bool("list-rules", false, "Print the rules that would be applied and exit")
	f.Bool("json", false, "Output the result summary in JSON format")
	f.Bool("no-color", cfg.NoColor, "Disable colored output")
	f.Bool("debug", cfg.Debug, "Log diagnostics to stderr")
	f.String("log-dir", cfg.LogDir, "Write a rotating diagnostics log to this directory")
	f.Bool("log-json", cfg.LogJSON, "Write diagnostics as JSON lines")

	return rootCmd
}

type options struct {
	dryRun    bool
	strict    bool
	rulesFile string
	listRules bool
	json      bool
	noColor   bool
	debug     bool
	logDir    string
	logJSON   bool
}

func readOptions(cmd *cobra.Command) options {
	f := cmd.Flags()
	var o options
	o.dryRun, _ = f.GetBool("dry-run")
	o.strict, _ = f.GetBool("strict")
	o.rulesFile, _ = f.GetString("rules")
	o.listRules, _ = f.GetBool("list-rules")
	o.json, _ = f.GetBool("json")
	o.noColor, _ = f.GetBool("no-color")
	o.debug, _ = f.GetBool("debug")
	o.logDir, _ = f.GetString("log-dir")
	o.logJSON, _ = f.GetBool("log-json")
	return o
}

// initLogger sets up diagnostics for this run. The returned func closes the
// log file.
func initLogger(cmd *cobra.Command, o options) (func() error, error) {
	_, closeLog, err := logger.Init(logger.Config{
		LogDir:  o.logDir,
		Debug:   o.debug,
		JSON:    o.logJSON,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return closeLog, nil
}

// loadRules returns the rule list and the label used in progress output.
func loadRules(rulesFile string) ([]patch.Rule, string, error) {
	if rulesFile == "" {
		return patch.EmergencyRules(), "EMERGENCY fixes", nil
	}
	rules, err := patch.LoadRuleFile(rulesFile)
	if err != nil {
		return nil, "", err
	}
	logger.Info("Loaded rule file", "path", rulesFile, "rules", len(rules))
	return rules, "fixes from " + filepath.Base(rulesFile), nil
}

func runApply(out io.Writer, path string, rules []patch.Rule, label string, opts options) error {
	applier := patch.NewApplier(rules)
	applier.Strict = opts.strict
	applier.DryRun = opts.dryRun
	applier.Logger = logger.With("rules", label)
	if !opts.json {
		applier.Reporter = newConsoleReporter(out, label)
	}

	res, err := applier.Apply(path)
	if err != nil {
		logger.Error("Patch failed", "path", path, "error", err)
		return err
	}

	if opts.json {
		return writeJSON(out, res)
	}
	if opts.dryRun && res.Changed {
		fmt.Fprintln(out)
		renderDiff(out, path, res.Original, res.Patched)
	}
	return nil
}

func listRules(cmd *cobra.Command, out io.Writer, rules []patch.Rule) error {
	if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
		type ruleView struct {
			Name    string `json:"name"`
			Summary string `json:"summary"`
			Kind    string `json:"kind"`
			Matcher string `json:"matcher"`
		}
		views := make([]ruleView, 0, len(rules))
		for _, r := range rules {
			views = append(views, ruleView{Name: r.Name, Summary: r.Summary, Kind: r.Kind(), Matcher: r.Matcher()})
		}
		return writeJSON(out, views)
	}

	rows := make([][]string, 0, len(rules))
	for i, r := range rules {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Name,
			kindBadge.Render(r.Kind()),
			firstLine(r.Matcher(), 48),
		})
	}
	RenderTable(out, []string{"#", "NAME", "KIND", "MATCHER"}, rows)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// firstLine returns the first line of s, cut to limit runes.
func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}

// Execute runs the command line and returns the process exit code.
func Execute(cfg config.Config, version string, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(cfg, version)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		PrintError(stderr, fmt.Sprintf("Error: %v", err))
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr)
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}
