// Package state records validation runs in SQLite so earlier results can
// be listed and compared.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrNotOpened is returned by store operations before Open.
var ErrNotOpened = errors.New("database not opened")

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunStatus represents the status of a validation run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one invocation of check over a root path or SQL source.
type Run struct {
	ID          string     `json:"id"`
	Root        string     `json:"root"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Files       int        `json:"files"`
	Violations  int        `json:"violations"`
	Error       string     `json:"error,omitempty"`
}

// Duration returns the run's wall time, or zero while it is still running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// FileResult is the per-file outcome stored with a run.
type FileResult struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id"`
	Path       string `json:"path"`
	HeaderRow  int    `json:"header_row"`
	Violations int    `json:"violations"`
	Error      string `json:"error,omitempty"`
}

// Store persists validation runs.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	CreateRun(ctx context.Context, root string) (*Run, error)
	CompleteRun(ctx context.Context, id string, status RunStatus, errMsg string) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	AddFileResults(ctx context.Context, runID string, results []FileResult) error
	FileResults(ctx context.Context, runID string) ([]FileResult, error)
}

var _ Store = (*SQLiteStore)(nil)
