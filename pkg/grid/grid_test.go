package grid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/pkg/grid"
)

func TestNew_PadsRaggedRows(t *testing.T) {
	g := grid.New([][]string{
		{"a", "b", "c"},
		{"1"},
	})

	require.Equal(t, 2, g.Rows())
	require.Equal(t, 3, g.Cols())
	assert.Equal(t, "1", g.Cell(1, 0))
	assert.Equal(t, "", g.Cell(1, 2))
	assert.Equal(t, "", g.Cell(5, 5), "out of range reads are empty")
	assert.Equal(t, []string{"1", "", ""}, g.Row(1))
}

func TestCellText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"bytes", []byte("xy"), "xy"},
		{"whole float", 104.0, "104.0"},
		{"fraction", 3.25, "3.25"},
		{"int", 42, "42"},
		{"int64", int64(7), "7"},
		{"bool", true, "true"},
		{"date", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01"},
		{"datetime", time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC), "2024-03-01 08:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grid.CellText(tt.in))
		})
	}
}

func TestFromValues(t *testing.T) {
	g := grid.FromValues([][]any{{"编号", "金额"}, {1, 12.5}, {nil, "x"}})
	assert.Equal(t, "1", g.Cell(1, 0))
	assert.Equal(t, "12.5", g.Cell(1, 1))
	assert.Equal(t, "", g.Cell(2, 0))
}

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		minCols int
		want    int
	}{
		{
			name:    "title rows above header",
			rows:    [][]string{{"2024年统计表"}, {"", " ", ""}, {"序号", "姓名", "手机号"}, {"1", "张三", "13800138000"}},
			minCols: 3,
			want:    2,
		},
		{
			name:    "first row qualifies",
			rows:    [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
			minCols: 3,
			want:    0,
		},
		{
			name:    "whitespace cells do not count",
			rows:    [][]string{{"a", "  ", "\t", ""}, {"a", "b", "c"}},
			minCols: 3,
			want:    1,
		},
		{
			name:    "no row qualifies defaults to zero",
			rows:    [][]string{{"a"}, {"b", "c"}},
			minCols: 3,
			want:    0,
		},
		{
			name:    "zero min uses default",
			rows:    [][]string{{"a", "b"}, {"a", "b", "c"}},
			minCols: 0,
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New(tt.rows)
			got := grid.ResolveHeader(g, tt.minCols)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHeader_OnlyScansLeadingRows(t *testing.T) {
	rows := make([][]string, 0, 12)
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"x"})
	}
	rows = append(rows, []string{"a", "b", "c"})
	g := grid.New(rows)

	assert.Equal(t, 0, grid.ResolveHeader(g, 3))
	assert.Equal(t, 10, grid.ResolveHeaderN(g, 3, 11))
}

func TestResolveHeader_Property(t *testing.T) {
	grids := [][][]string{
		{{"", "a"}, {"a", "b", "c", "d"}, {"1", "2"}},
		{{"a", "b", "c"}},
		{},
		{{" "}, {"x", "y"}},
	}
	for _, rows := range grids {
		g := grid.New(rows)
		idx := grid.ResolveHeader(g, 3)
		if idx == 0 && (g.Rows() == 0 || grid.NonBlankCount(g, 0) < 3) {
			for r := 0; r < min(g.Rows(), 10); r++ {
				assert.Less(t, grid.NonBlankCount(g, r), 3)
			}
			continue
		}
		assert.GreaterOrEqual(t, grid.NonBlankCount(g, idx), 3)
	}
}

func TestSkippedColumns(t *testing.T) {
	g := grid.New([][]string{
		{"序号", "姓名", "备注", "手机号"},
		{"1", "张三", "", "13800138000"},
		{"2", "李四", " ", ""},
	})

	assert.Equal(t, map[int]bool{0: true, 2: true}, grid.SkippedColumns(g, 0, true, true))
	assert.Equal(t, map[int]bool{2: true}, grid.SkippedColumns(g, 0, false, true))
	assert.Empty(t, grid.SkippedColumns(g, 0, false, false))
}

func TestRowBlank(t *testing.T) {
	g := grid.New([][]string{{"a", ""}, {" ", "\t"}})
	assert.False(t, grid.RowBlank(g, 0))
	assert.True(t, grid.RowBlank(g, 1))
}
