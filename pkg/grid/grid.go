package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accessor is a read-only view over a rectangular table of cell texts.
type Accessor interface {
	Rows() int
	Cols() int
	// Cell returns the raw text of a cell, or "" when the position is out of range.
	Cell(row, col int) string
}

// Grid is an immutable in-memory table. Ragged input rows are padded so every
// row has Cols() cells.
type Grid struct {
	cells [][]string
	cols  int
}

// New builds a Grid from rows of text. The input slices are copied.
func New(rows [][]string) *Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, cols)
		copy(row, r)
		cells[i] = row
	}
	return &Grid{cells: cells, cols: cols}
}

// FromValues builds a Grid from untyped cell values (text, numbers, times, nil).
func FromValues(rows [][]any) *Grid {
	text := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = CellText(v)
		}
		text[i] = row
	}
	return New(text)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Cell returns the raw text at (row, col).
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.cols {
		return ""
	}
	return g.cells[row][col]
}

// Row returns a copy of one row.
func (g *Grid) Row(row int) []string {
	if row < 0 || row >= len(g.cells) {
		return nil
	}
	out := make([]string, g.cols)
	copy(out, g.cells[row])
	return out
}

// Text returns the trimmed text of a cell.
func Text(g Accessor, row, col int) string {
	return strings.TrimSpace(g.Cell(row, col))
}

// RowTexts returns the trimmed texts of one row.
func RowTexts(g Accessor, row int) []string {
	out := make([]string, g.Cols())
	for c := range out {
		out[c] = Text(g, row, c)
	}
	return out
}

// CellText renders an untyped cell value as text.
// Whole floats keep a ".0" suffix, so rules that care about it (length) see
// the same text a spreadsheet export would produce.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) {
		return ""
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
