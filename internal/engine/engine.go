// Package engine validates files and SQL sources with a shared analyzer,
// one table per worker, and records the runs.
package engine

import (
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/leapstack-labs/gridlint/internal/loader"
	"github.com/leapstack-labs/gridlint/internal/report"
	"github.com/leapstack-labs/gridlint/internal/state"
	"github.com/leapstack-labs/gridlint/pkg/grid"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

// ErrNoAnalyzer is returned by New without an analyzer.
var ErrNoAnalyzer = errors.New("engine requires an analyzer")

// Engine runs an analyzer over many tables.
type Engine struct {
	analyzer *lint.Analyzer
	store    state.Store
	workers  int
	walk     loader.WalkOptions
	logger   *slog.Logger
	now      func() time.Time
}

// Config holds engine configuration.
type Config struct {
	// Analyzer validates each table. It is shared by all workers.
	Analyzer *lint.Analyzer
	// Store records runs when set.
	Store state.Store
	// Workers bounds parallel tables. Zero means GOMAXPROCS.
	Workers int
	// Walk selects files under folders.
	Walk loader.WalkOptions
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Now stamps reports; tests pin it.
	Now func() time.Time
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		analyzer: cfg.Analyzer,
		store:    cfg.Store,
		workers:  workers,
		walk:     cfg.Walk,
		logger:   logger,
		now:      now,
	}, nil
}

// Workers returns the worker limit.
func (e *Engine) Workers() int { return e.workers }

// CheckGrid validates one in-memory table.
func (e *Engine) CheckGrid(path string, g grid.Accessor) report.FileResult {
	if g == nil || isEmpty(g) {
		return report.FileResult{Path: path, Empty: true}
	}
	res := e.analyzer.Analyze(g)
	e.logger.Debug("table checked",
		slog.String("path", path),
		slog.Int("header_row", res.HeaderRow+1),
		slog.Int("violations", len(res.Violations)))
	return report.FileResult{
		Path:       path,
		HeaderRow:  res.HeaderRow + 1,
		Headers:    res.Headers,
		Violations: res.Violations,
	}
}

func isEmpty(g grid.Accessor) bool {
	for r := 0; r < g.Rows(); r++ {
		if !grid.RowBlank(g, r) {
			return false
		}
	}
	return true
}
