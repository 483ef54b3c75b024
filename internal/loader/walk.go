package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// ErrUnsupportedFormat is returned for files gridlint recognizes but cannot read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Default walk settings.
const (
	DefaultTempPrefix = "~$"
)

// DefaultExtensions are the readable file extensions.
var DefaultExtensions = []string{".csv", ".tsv"}

// spreadsheetExtensions are recognized but not decoded.
var spreadsheetExtensions = map[string]bool{".xlsx": true, ".xls": true, ".xlsm": true}

// WalkOptions configures Walk.
type WalkOptions struct {
	// Extensions lists readable extensions, with the leading dot.
	// Empty means DefaultExtensions.
	Extensions []string

	// TempPrefix marks editor lock files to ignore. Empty means DefaultTempPrefix.
	TempPrefix string
}

// Skipped is a file Walk did not select.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// WalkResult lists the files found under a root.
type WalkResult struct {
	Files   []string  `json:"files"`
	Skipped []Skipped `json:"skipped,omitempty"`
}

// Walk finds readable files under root, sorted by path. A root that is a
// file is returned as-is when readable. Editor lock files are ignored
// silently; spreadsheets and other extensions are reported as skipped.
func Walk(root string, opts WalkOptions) (*WalkResult, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}
	prefix := opts.TempPrefix
	if prefix == "" {
		prefix = DefaultTempPrefix
	}

	res := &WalkResult{}
	classify := func(path string) {
		if strings.HasPrefix(filepath.Base(path), prefix) {
			return
		}
		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case allowed[ext]:
			res.Files = append(res.Files, path)
		case spreadsheetExtensions[ext]:
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: "spreadsheet files are not supported; export to CSV"})
		default:
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: "unsupported extension"})
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		classify(root)
		return res, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		classify(path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(res.Files)
	sort.Slice(res.Skipped, func(i, j int) bool { return res.Skipped[i].Path < res.Skipped[j].Path })
	return res, nil
}

// Load reads a file into a grid, choosing the reader by extension.
func Load(path string) (*grid.Grid, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".csv" || ext == ".tsv" || ext == ".txt":
		return LoadCSV(path)
	case spreadsheetExtensions[ext]:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
