package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/fsxlint/internal/config"
	"github.com/harrison/fsxlint/internal/history"
)

// NewHistoryCommand creates the 'fsxlint history' command
func NewHistoryCommand() *cobra.Command {
	var limit int
	var runID string
	var all bool

	cmd := &cobra.Command{
		Use:   "history [root]",
		Short: "Show recorded lint runs",
		Long: `Display lint runs recorded with --record (or history.enabled in the config).

Without --run, lists the most recent runs for the project root, newest first.
With --run, prints the diagnostics recorded for that run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runHistory(cmd, root, runID, limit, all)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the diagnostics of one run")
	cmd.Flags().BoolVar(&all, "all", false, "Show runs for every project in the database")

	return cmd
}

func runHistory(cmd *cobra.Command, root, runID string, limit int, all bool) error {
	output := cmd.OutOrStdout()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root %s: %w", root, err)
	}

	cfg, err := config.LoadConfigFromDir(absRoot)
	if err != nil {
		return err
	}
	dbPath := cfg.HistoryDBPath(absRoot)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(output, "No history recorded")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	colorOutput := useColor(output)

	if runID != "" {
		diags, err := store.RunDiagnostics(cmd.Context(), runID)
		if err != nil {
			return err
		}
		printRunDiagnostics(output, runID, diags, colorOutput)
		return nil
	}

	filter := absRoot
	if all {
		filter = ""
	}
	runs, err := store.RecentRuns(cmd.Context(), filter, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(output, "No history recorded")
		return nil
	}
	printRuns(output, runs, colorOutput)
	return nil
}

// useColor reports whether w is a terminal that should receive colored output.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printRuns(w io.Writer, runs []history.Run, colorOutput bool) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	if !colorOutput {
		pass.DisableColor()
		fail.DisableColor()
	}

	fmt.Fprintf(w, "%-36s  %-19s  %-6s  %7s  %5s  %7s  %6s\n",
		"RUN", "STARTED", "STATUS", "SCRIPTS", "LOADS", "TARGETS", "ERRORS")
	for _, r := range runs {
		status := pass.Sprintf("%-6s", "PASS")
		if !r.Passed() {
			status = fail.Sprintf("%-6s", "FAIL")
		}
		fmt.Fprintf(w, "%-36s  %-19s  %s  %7d  %5d  %7d  %6d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), status,
			r.Scripts, r.Loads, r.Targets, r.Diagnostics)
	}
}

func printRunDiagnostics(w io.Writer, runID string, diags []history.Diagnostic, colorOutput bool) {
	if len(diags) == 0 {
		fmt.Fprintf(w, "Run %s: no errors recorded\n", runID)
		return
	}

	check := color.New(color.FgYellow)
	if !colorOutput {
		check.DisableColor()
	}

	fmt.Fprintf(w, "Run %s: %d error(s)\n", runID, len(diags))
	for _, d := range diags {
		fmt.Fprintf(w, "  %s %s\n", check.Sprintf("[%s]", d.Check), d.Message)
	}
}
