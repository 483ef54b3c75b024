package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/leapstack-labs/gridlint/internal/cli/config"
	intconfig "github.com/leapstack-labs/gridlint/internal/config"
	"github.com/leapstack-labs/gridlint/internal/engine"
	"github.com/leapstack-labs/gridlint/internal/loader"
	"github.com/leapstack-labs/gridlint/internal/report"
	"github.com/leapstack-labs/gridlint/internal/state"
	"github.com/leapstack-labs/gridlint/internal/watch"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format     string   // Output format: text, markdown, json
	Report     string   // Report file, or "auto"
	Workers    int      // Parallel tables
	Watch      bool     // Re-check on change
	ExitZero   bool     // Exit 0 even with violations
	Rules      []string // Run only these rules
	Disable    []string // Rules to skip
	Severity   []string // ID=level overrides
	Record     bool     // Record the run in the state database
	NoRecord   bool     // Never record
	Driver     string
	DSN        string
	Query      string
	Extensions []string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check tables for invalid values",
		Long: `Check CSV/TSV files, folders of them, or a SQL query result.

The header row is found automatically, columns are matched to field types
by their header keywords, and every enabled rule runs over the data rows.

Output adapts to environment:
  - Terminal: Styled output with a summary table
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format

Without a path on a terminal, check asks for the folder to check.`,
		Example: `  # Check a folder
  gridlint check ./exports

  # Write the dated text report (YYYYMMDD检查结果.txt)
  gridlint check ./exports --report auto

  # Only run the identity-number and phone rules
  gridlint check data.csv --rule FT01,FT02

  # Downgrade a rule
  gridlint check data.csv --severity NL01=warning

  # Check a query result
  gridlint check --driver postgres --dsn "$DSN" --query "select * from customers"

  # Re-check on every save
  gridlint check ./exports --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Also write a report file (.txt, .md, .json, or auto)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Tables checked in parallel (default: CPU count)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-check files when they change")
	cmd.Flags().BoolVar(&opts.ExitZero, "exit-zero", false, "Exit with status 0 even when violations are found")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Only run these rules (ID or name)")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rules to disable (ID or name)")
	cmd.Flags().StringSliceVar(&opts.Severity, "severity", nil, "Severity override, e.g. NL01=warning")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record the run in the state database")
	cmd.Flags().BoolVar(&opts.NoRecord, "no-record", false, "Do not record the run")
	cmd.Flags().StringVar(&opts.Driver, "driver", "", "SQL driver for a query source: "+strings.Join(loader.ListDrivers(), ", "))
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Data source name for --driver")
	cmd.Flags().StringVar(&opts.Query, "query", "", "Query whose result is checked")
	cmd.Flags().StringSliceVar(&opts.Extensions, "extensions", nil, "File extensions to read from folders")

	cmd.MarkFlagsMutuallyExclusive("record", "no-record")
	cmd.MarkFlagsMutuallyExclusive("watch", "driver")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return loader.ListDrivers(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg := applyCheckFlags(cmd, cmdCtx.Cfg, opts)

	settings, err := checkSettings(cfg, opts)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(settings, cfg.ConfigDir, cmdCtx.Logger)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg, opts, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer closeStore()

	eng, err := engine.New(engine.Config{
		Analyzer: analyzer,
		Store:    store,
		Workers:  cfg.Workers,
		Walk:     loader.WalkOptions{Extensions: cfg.Extensions, TempPrefix: cfg.TempPrefix},
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var rep *report.Report
	if cfg.Source.Driver != "" {
		rep, err = eng.CheckSource(ctx, loader.SQLSource{
			Driver: cfg.Source.Driver,
			DSN:    cfg.Source.DSN,
			Query:  cfg.Source.Query,
			Logger: cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		if err := emitReport(cmdCtx, cfg, rep); err != nil {
			return err
		}
		return verdict(rep, opts)
	}

	paths := args
	if len(paths) == 0 {
		p, err := promptPath(cmd, cfg)
		if err != nil {
			return err
		}
		paths = []string{p}
	}

	rep, err = eng.CheckPaths(ctx, paths)
	if err != nil {
		return err
	}
	if err := emitReport(cmdCtx, cfg, rep); err != nil {
		return err
	}

	if opts.Watch {
		return watchAndCheck(ctx, cmdCtx, cfg, eng, paths)
	}
	return verdict(rep, opts)
}

// applyCheckFlags returns a copy of cfg with the command's changed flags
// applied. The root command already merges them through koanf; this keeps
// check usable on its own.
func applyCheckFlags(cmd *cobra.Command, base *config.Config, opts *CheckOptions) *config.Config {
	cfg := *base
	flags := cmd.Flags()
	if flags.Changed("report") {
		cfg.Report = opts.Report
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("extensions") {
		cfg.Extensions = opts.Extensions
	}
	if flags.Changed("driver") {
		cfg.Source.Driver = opts.Driver
	}
	if flags.Changed("dsn") {
		cfg.Source.DSN = opts.DSN
	}
	if flags.Changed("query") {
		cfg.Source.Query = opts.Query
	}
	return &cfg
}

// checkSettings applies --rule, --disable and --severity on top of the
// configured rule settings.
func checkSettings(cfg *config.Config, opts *CheckOptions) (intconfig.Settings, error) {
	s := cfg.Settings()

	if len(opts.Rules) > 0 {
		s.Rules.Enabled = append([]string(nil), opts.Rules...)
	}
	if len(opts.Disable) > 0 {
		s.Rules.Disabled = append(append([]string(nil), s.Rules.Disabled...), opts.Disable...)
	}
	if len(opts.Severity) > 0 {
		sev := make(map[string]string, len(s.Rules.Severity)+len(opts.Severity))
		for k, v := range s.Rules.Severity {
			sev[k] = v
		}
		for _, kv := range opts.Severity {
			ref, level, ok := strings.Cut(kv, "=")
			if !ok || strings.TrimSpace(ref) == "" {
				return s, fmt.Errorf("invalid --severity %q (want RULE=level)", kv)
			}
			sev[strings.TrimSpace(ref)] = strings.TrimSpace(level)
		}
		s.Rules.Severity = sev
	}
	return s, nil
}

// openStore opens the run history when recording is enabled: --record, or
// a configured state_path without --no-record.
func openStore(cfg *config.Config, opts *CheckOptions, logger *slog.Logger) (state.Store, func(), error) {
	noop := func() {}
	if opts.NoRecord {
		return nil, noop, nil
	}
	path := cfg.StatePath
	if path == "" {
		if !opts.Record {
			return nil, noop, nil
		}
		path = filepath.Join(cfg.ConfigDir, config.DefaultStateFile)
	}

	store, err := openStateStore(path, logger)
	if err != nil {
		return nil, noop, err
	}
	return store, func() { _ = store.Close() }, nil
}

func openStateStore(path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func watchAndCheck(ctx context.Context, cmdCtx *CommandContext, cfg *config.Config, eng *engine.Engine, paths []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cmdCtx.Renderer
	w := watch.New(watch.Options{
		Paths:      paths,
		Extensions: cfg.Extensions,
		TempPrefix: cfg.TempPrefix,
		Logger:     cmdCtx.Logger,
	})

	_, _ = fmt.Fprintln(r.ErrWriter(), r.Styles().Muted.Render("Watching for changes (Ctrl+C to stop)"))
	return w.Run(ctx, func(changed []string) {
		existing := changed[:0:0]
		for _, p := range changed {
			if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
				existing = append(existing, p)
			}
		}
		if len(existing) == 0 {
			return
		}
		rep, err := eng.CheckPaths(ctx, existing)
		if err != nil {
			cmdCtx.Logger.Warn("re-check failed", slog.Any("error", err))
			return
		}
		if err := emitReport(cmdCtx, cfg, rep); err != nil {
			r.Error(err.Error())
		}
	})
}

func verdict(rep *report.Report, opts *CheckOptions) error {
	if opts.ExitZero || !rep.HasViolations() {
		return nil
	}
	return &ViolationsFoundError{Violations: rep.Summary.Violations, Files: rep.Summary.WithIssues}
}
