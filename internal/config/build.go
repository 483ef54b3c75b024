package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/leapstack-labs/gridlint/pkg/automaton"
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules"
)

// LintConfig converts the settings to an analyzer configuration.
func (s Settings) LintConfig() (*lint.Config, error) {
	cfg, err := lint.FromSettings(s.Engine, s.Rules, s.FieldTypes)
	if err != nil {
		return nil, fmt.Errorf("invalid rule settings: %w", err)
	}
	return cfg, nil
}

// Words returns the configured banned words: the inline list followed by
// the entries of word_file. A relative word_file is resolved against
// baseDir.
func (s Settings) Words(baseDir string) ([]string, error) {
	words := append([]string(nil), s.Sensitive.Words...)
	if s.Sensitive.WordFile == "" {
		return words, nil
	}
	path := s.Sensitive.WordFile
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	fromFile, err := automaton.LoadWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sensitive words: %w", err)
	}
	return append(words, fromFile...), nil
}

// LoadScanner initializes the process-wide automaton from the configured
// words. When it already exists, a private automaton is built so that a
// second configuration in the same process is still honored.
func LoadScanner(words []string, logger *slog.Logger) *automaton.Automaton {
	a, err := automaton.Init(words)
	if errors.Is(err, automaton.ErrInitialized) {
		if logger != nil {
			logger.Debug("automaton already initialized; building a private one", "words", len(words))
		}
		return automaton.Build(words)
	}
	return a
}

// NewAnalyzer builds an analyzer over the built-in rules. A nil scanner
// disables the sensitive-word rule's findings.
func (s Settings) NewAnalyzer(scanner *automaton.Automaton, logger *slog.Logger) (*lint.Analyzer, error) {
	cfg, err := s.LintConfig()
	if err != nil {
		return nil, err
	}
	opts := []lint.Option{lint.WithLogger(logger)}
	if scanner != nil {
		opts = append(opts, lint.WithScanner(scanner))
	}
	return lint.NewAnalyzer(rules.NewRegistry(), cfg, opts...), nil
}
