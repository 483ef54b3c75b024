package commands

import (
	"log/slog"

	"github.com/leapstack-labs/gridlint/internal/cli/config"
	"github.com/leapstack-labs/gridlint/internal/cli/output"
	intconfig "github.com/leapstack-labs/gridlint/internal/config"
	"github.com/leapstack-labs/gridlint/pkg/automaton"
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd. A non-empty format
// overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or the defaults when the
// command runs outside the root command (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func validateFormat(format string) error {
	if format == "" {
		return nil
	}
	if !output.Mode(format).Valid() {
		return &InvalidFormatError{Format: format}
	}
	return nil
}

// newAnalyzer builds the analyzer for settings, loading the sensitive
// words relative to baseDir.
func newAnalyzer(settings intconfig.Settings, baseDir string, logger *slog.Logger) (*lint.Analyzer, error) {
	words, err := settings.Words(baseDir)
	if err != nil {
		return nil, err
	}
	var scanner *automaton.Automaton
	if len(words) > 0 {
		scanner = intconfig.LoadScanner(words, logger)
	}
	return settings.NewAnalyzer(scanner, logger)
}
