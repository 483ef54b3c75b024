package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// utf8BOM is stripped from the start of the input if present.
const utf8BOM = "\uFEFF"

// CSVOptions configures ReadCSV.
type CSVOptions struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune
}

// LoadCSV reads a delimited file into a grid. Files ending in .tsv are
// tab-separated.
func LoadCSV(path string) (*grid.Grid, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line or a directory walk
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	opts := CSVOptions{}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Comma = '\t'
	}
	return ReadCSV(f, opts)
}

// ReadCSV reads delimited text into a grid. Rows may have different widths;
// the grid pads them to the widest row.
func ReadCSV(r io.Reader, opts CSVOptions) (*grid.Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return grid.New(rows), nil
}

// decodeText strips a UTF-8 BOM, or converts GBK input to UTF-8.
func decodeText(raw []byte) ([]byte, error) {
	if bytes.HasPrefix(raw, []byte(utf8BOM)) {
		return raw[len(utf8BOM):], nil
	}
	if utf8.Valid(raw) {
		return raw, nil
	}
	out, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("input is neither UTF-8 nor GBK: %w", err)
	}
	return out, nil
}
