package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/gridlint/internal/cli/config"
	"github.com/leapstack-labs/gridlint/internal/cli/output"
	"github.com/leapstack-labs/gridlint/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded check runs",
		Long: `List the check runs recorded in the state database, or the file
results of one run.

Runs are recorded by 'gridlint check --record', or by every check when
state_path is configured.`,
		Example: `  # Recent runs
  gridlint history

  # The last 5 runs as JSON
  gridlint history --limit 5 --format json

  # Files of one run
  gridlint history 0b7e9c1e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Format); err != nil {
				return err
			}
			cmdCtx := NewCommandContext(cmd, opts.Format)

			path := historyPath(cmdCtx.Cfg)
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no run history at %s (record runs with 'gridlint check --record')", path)
			}
			store, err := openStateStore(path, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) == 1 {
				return showRun(cmd, cmdCtx.Renderer, store, args[0])
			}
			return listRuns(cmd, cmdCtx.Renderer, store, opts.Limit)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func historyPath(cfg *config.Config) string {
	if cfg.StatePath != "" {
		return cfg.StatePath
	}
	return filepath.Join(cfg.ConfigDir, config.DefaultStateFile)
}

func listRuns(cmd *cobra.Command, r *output.Renderer, store state.Store, limit int) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if runs == nil {
			runs = []*state.Run{}
		}
		return r.JSON(map[string]any{"runs": runs})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Check Runs"))
		if len(runs) == 0 {
			r.Println("No runs recorded.")
			return nil
		}
		r.Println("| Run | Started | Status | Files | Violations | Root |")
		r.Println("|---|---|---|---|---|---|")
		for _, run := range runs {
			r.Printf("| %s | %s | %s | %d | %d | %s |\n", run.ID, run.StartedAt.Format(time.DateTime),
				run.Status, run.Files, run.Violations, run.Root)
		}
		return nil
	}

	if len(runs) == 0 {
		r.Println(r.Styles().Muted.Render("No runs recorded."))
		return nil
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Started", "Duration", "Status", "Files", "Violations", "Root"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			formatDuration(run.Duration()),
			string(run.Status),
			run.Files,
			run.Violations,
			run.Root,
		})
	}
	t.Render()
	return nil
}

func showRun(cmd *cobra.Command, r *output.Renderer, store state.Store, id string) error {
	ctx := cmd.Context()
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	files, err := store.FileResults(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load file results: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if files == nil {
			files = []state.FileResult{}
		}
		return r.JSON(map[string]any{"run": run, "files": files})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Run "+run.ID))
		r.Println(output.FormatKeyValue("Root", run.Root))
		r.Println(output.FormatKeyValue("Started", run.StartedAt.Format(time.DateTime)))
		r.Println(output.FormatKeyValue("Status", string(run.Status)))
		if run.Error != "" {
			r.Println(output.FormatKeyValue("Error", run.Error))
		}
		r.Println("")
		r.Println("| File | Header | Violations | Error |")
		r.Println("|---|---|---|---|")
		for _, f := range files {
			r.Printf("| %s | %d | %d | %s |\n", f.Path, f.HeaderRow, f.Violations, f.Error)
		}
		return nil
	}

	styles := r.Styles()
	r.Println(styles.Header.Render("Run " + run.ID))
	r.Printf("  %s: %s\n", styles.Bold.Render("Root"), run.Root)
	r.Printf("  %s: %s (%s)\n", styles.Bold.Render("Started"), run.StartedAt.Local().Format(time.DateTime), formatDuration(run.Duration()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Status"), run.Status)
	if run.Error != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Error"), styles.Error.Render(run.Error))
	}
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Header", "Violations", "Error"})
	for _, f := range files {
		t.AppendRow(table.Row{f.Path, f.HeaderRow, f.Violations, f.Error})
	}
	t.AppendFooter(table.Row{"Total", "", run.Violations, fmt.Sprintf("%d files", run.Files)})
	t.Render()
	return nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
