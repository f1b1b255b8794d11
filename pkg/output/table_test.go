package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTable tests column setup from headers.
func TestNewTable(t *testing.T) {
	table := NewTable("STATUS", "EXIT", "CASE")

	cols := table.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, Column{Header: "STATUS", Width: 6}, cols[0])
	assert.Equal(t, 4, cols[1].Width)
	assert.Equal(t, 4, cols[2].Width)

	assert.Empty(t, NewTable().Columns())
}

// TestTable_Fit tests column growth.
//
// It verifies:
//   - Columns widen for longer values and never shrink
//   - Wide characters count as two cells
//   - Values beyond the last column are ignored
//   - Limited columns stop at their cap
func TestTable_Fit(t *testing.T) {
	table := NewTable("CASE", "EXIT").Limit(0, 10)

	table.Fit("tests/a.lox", "70", "extra")
	table.Fit("x", "1")
	cols := table.Columns()
	assert.Equal(t, 10, cols[0].Width)
	assert.Equal(t, 4, cols[1].Width)

	wide := NewTable("CASE")
	wide.Fit("日本語")
	assert.Equal(t, 6, wide.Columns()[0].Width)
}

// TestTable_Limit tests out-of-range limits.
func TestTable_Limit(t *testing.T) {
	table := NewTable("CASE")
	assert.Same(t, table, table.Limit(5, 10))
	assert.Same(t, table, table.Limit(-1, 10))
	assert.Zero(t, table.Columns()[0].MaxWidth)
}

// TestTable_Row tests padding, trimming and shortening.
func TestTable_Row(t *testing.T) {
	table := NewTable("STATUS", "CASE", "EXIT").Limit(1, 8)
	table.Fit("PASS", "tests/error/x.lox", "0")

	assert.Equal(t, "PASS    …r/x.lox  0", table.Row("PASS", "tests/error/x.lox", "0"))
	assert.Equal(t, "FAIL", table.Row("FAIL"))
	assert.Equal(t, "STATUS  CASE      EXIT", table.Header())
	assert.Equal(t, "------  --------  ----", table.Rule())
}

// TestTable_Render tests the full rendering.
func TestTable_Render(t *testing.T) {
	rows := [][]string{
		{"PASS", "tests/a.lox", "0"},
		{"FAIL", "tests/error/b.lox", "0"},
	}

	out := NewTable("STATUS", "CASE", "EXIT").Render(rows)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "STATUS  CASE               EXIT", lines[0])
	assert.Equal(t, "------  -----------------  ----", lines[1])
	assert.Equal(t, "PASS    tests/a.lox        0", lines[2])
	assert.Equal(t, "FAIL    tests/error/b.lox  0", lines[3])
}

// TestTable_RenderEmpty tests a table without rows.
func TestTable_RenderEmpty(t *testing.T) {
	assert.Equal(t, "CASE\n----\n", NewTable("CASE").Render(nil))
}
