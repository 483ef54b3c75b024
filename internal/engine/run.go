package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/gridlint/internal/loader"
	"github.com/leapstack-labs/gridlint/internal/report"
	"github.com/leapstack-labs/gridlint/internal/state"
)

// Discover expands paths into readable files, removing duplicates while
// keeping the order in which paths were given.
func (e *Engine) Discover(paths []string) ([]string, []loader.Skipped, error) {
	var (
		files   []string
		skipped []loader.Skipped
		seen    = make(map[string]bool)
	)
	for _, p := range paths {
		res, err := loader.Walk(p, e.walk)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range res.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
		skipped = append(skipped, res.Skipped...)
	}
	return files, skipped, nil
}

// CheckPaths validates every readable file under paths. Files are read and
// analyzed in parallel; the report keeps discovery order. A file that
// cannot be read is reported, not returned as an error.
func (e *Engine) CheckPaths(ctx context.Context, paths []string) (*report.Report, error) {
	files, skipped, err := e.Discover(paths)
	if err != nil {
		return nil, err
	}

	rep := report.New(strings.Join(paths, ", "), e.now())
	rep.Skipped = skipped
	run := e.startRun(ctx, rep.Root)

	results := make([]report.FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.finishRun(ctx, run, nil, err)
		return nil, fmt.Errorf("check interrupted: %w", err)
	}

	for _, r := range results {
		rep.Add(r)
	}
	e.finishRun(ctx, run, rep, nil)
	return rep, nil
}

func (e *Engine) checkFile(path string) report.FileResult {
	g, err := loader.Load(path)
	if err != nil {
		e.logger.Warn("failed to read table", slog.String("path", path), slog.Any("error", err))
		return report.FileResult{Path: path, Error: err.Error()}
	}
	return e.CheckGrid(path, g)
}

// CheckSource validates the result set of a SQL query.
func (e *Engine) CheckSource(ctx context.Context, src loader.SQLSource) (*report.Report, error) {
	label := src.Driver + ":" + src.Query
	rep := report.New(label, e.now())
	run := e.startRun(ctx, label)

	g, err := src.Load(ctx)
	if err != nil {
		e.finishRun(ctx, run, nil, err)
		return nil, err
	}
	rep.Add(e.CheckGrid(label, g))
	e.finishRun(ctx, run, rep, nil)
	return rep, nil
}

// startRun records the start of a run. Recording failures are logged and
// never fail the check.
func (e *Engine) startRun(ctx context.Context, root string) *state.Run {
	if e.store == nil {
		return nil
	}
	run, err := e.store.CreateRun(context.WithoutCancel(ctx), root)
	if err != nil {
		e.logger.Warn("failed to record run", slog.Any("error", err))
		return nil
	}
	return run
}

func (e *Engine) finishRun(ctx context.Context, run *state.Run, rep *report.Report, runErr error) {
	if run == nil {
		return
	}
	// The check may have been cancelled; recording still completes.
	ctx = context.WithoutCancel(ctx)

	if runErr != nil {
		if err := e.store.CompleteRun(ctx, run.ID, state.RunStatusFailed, runErr.Error()); err != nil {
			e.logger.Warn("failed to complete run", slog.String("run", run.ID), slog.Any("error", err))
		}
		return
	}

	rep.RunID = run.ID
	files := make([]state.FileResult, len(rep.Files))
	for i, f := range rep.Files {
		files[i] = state.FileResult{
			Path:       f.Path,
			HeaderRow:  f.HeaderRow,
			Violations: len(f.Violations),
			Error:      f.Error,
		}
	}
	if err := e.store.AddFileResults(ctx, run.ID, files); err != nil {
		e.logger.Warn("failed to record file results", slog.String("run", run.ID), slog.Any("error", err))
	}
	if err := e.store.CompleteRun(ctx, run.ID, state.RunStatusCompleted, ""); err != nil {
		e.logger.Warn("failed to complete run", slog.String("run", run.ID), slog.Any("error", err))
	}
}
