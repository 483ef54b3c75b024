package grid

// Header resolution defaults.
const (
	DefaultMinHeaderCols  = 3
	DefaultHeaderScanRows = 10
)

// ResolveHeader returns the index of the header row: the first of the leading
// DefaultHeaderScanRows rows with at least minCols non-blank cells, or 0.
func ResolveHeader(g Accessor, minCols int) int {
	return ResolveHeaderN(g, minCols, DefaultHeaderScanRows)
}

// ResolveHeaderN is ResolveHeader with an explicit scan limit.
func ResolveHeaderN(g Accessor, minCols, scanRows int) int {
	if minCols <= 0 {
		minCols = DefaultMinHeaderCols
	}
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}

	limit := min(scanRows, g.Rows())
	for r := 0; r < limit; r++ {
		if NonBlankCount(g, r) >= minCols {
			return r
		}
	}
	return 0
}

// NonBlankCount counts cells in a row whose trimmed text is non-empty.
func NonBlankCount(g Accessor, row int) int {
	n := 0
	for c := 0; c < g.Cols(); c++ {
		if !IsBlank(g.Cell(row, c)) {
			n++
		}
	}
	return n
}

// HeaderCells returns the trimmed header texts of the given row.
func HeaderCells(g Accessor, headerRow int) []string {
	return RowTexts(g, headerRow)
}
