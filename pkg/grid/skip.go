package grid

// ColumnEmpty reports whether every data row (after headerRow) is blank in col.
func ColumnEmpty(g Accessor, headerRow, col int) bool {
	for r := headerRow + 1; r < g.Rows(); r++ {
		if !IsBlank(g.Cell(r, col)) {
			return false
		}
	}
	return true
}

// RowBlank reports whether every cell of a row is blank.
func RowBlank(g Accessor, row int) bool {
	for c := 0; c < g.Cols(); c++ {
		if !IsBlank(g.Cell(row, c)) {
			return false
		}
	}
	return true
}

// SkippedColumns returns the columns excluded from cell checks: the first
// column when skipFirst is set, and columns without any data when skipEmpty is set.
func SkippedColumns(g Accessor, headerRow int, skipFirst, skipEmpty bool) map[int]bool {
	skipped := make(map[int]bool)
	if skipFirst && g.Cols() > 0 {
		skipped[0] = true
	}
	if skipEmpty {
		for c := 0; c < g.Cols(); c++ {
			if ColumnEmpty(g, headerRow, c) {
				skipped[c] = true
			}
		}
	}
	return skipped
}
