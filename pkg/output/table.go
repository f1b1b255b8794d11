// Package output renders the end-of-run verdict table.
package output

import (
	"strings"

	"github.com/ajxudir/loxtest/pkg/utils"
)

// Column is one table column.
//
// Fields:
//   - Header: Text shown in the header row
//   - Width: Current display width, grown by Fit
//   - MaxWidth: Upper bound for Width; 0 means unbounded. Longer cells are
//     shortened from the left so the end stays visible.
type Column struct {
	Header   string
	Width    int
	MaxWidth int
}

// Table aligns rows into columns by display width, so status icons and
// wide characters in case paths stay lined up.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a table with one column per header and a two-space
// separator.
//
// Parameters:
//   - headers: Column headers, left to right
//
// Returns:
//   - *Table: A table sized to its headers
func NewTable(headers ...string) *Table {
	t := &Table{separator: "  "}
	for _, h := range headers {
		t.columns = append(t.columns, Column{Header: h, Width: utils.DisplayWidth(h)})
	}
	return t
}

// Limit caps the width of the column at index and returns the table.
// Out-of-range indexes are ignored.
func (t *Table) Limit(index, maxWidth int) *Table {
	if index >= 0 && index < len(t.columns) {
		t.columns[index].MaxWidth = maxWidth
	}
	return t
}

// Columns returns a copy of the column definitions.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Fit widens columns to hold a row, never past a column's MaxWidth.
// Values beyond the last column are ignored.
func (t *Table) Fit(values ...string) {
	for i := range t.columns {
		if i >= len(values) {
			return
		}
		col := &t.columns[i]
		col.Width = max(col.Width, utils.DisplayWidth(col.cell(values[i])))
	}
}

// Row formats values padded to the column widths. Missing values are
// empty and trailing spaces are trimmed.
func (t *Table) Row(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = col.cell(values[i])
		}
		parts[i] = utils.PadRight(val, col.Width)
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// Header returns the header row.
func (t *Table) Header() string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return t.Row(headers...)
}

// Rule returns a dashed row under the header.
func (t *Table) Rule() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, t.separator)
}

// Render fits the columns to rows and returns the header, the rule and
// every row, each ending in a newline.
//
// It performs the following operations:
//   - Step 1: Widen every column to fit all rows
//   - Step 2: Write the header and rule
//   - Step 3: Write each row on its own line
func (t *Table) Render(rows [][]string) string {
	for _, row := range rows {
		t.Fit(row...)
	}

	var sb strings.Builder
	sb.WriteString(t.Header() + "\n")
	sb.WriteString(t.Rule() + "\n")
	for _, row := range rows {
		sb.WriteString(t.Row(row...) + "\n")
	}
	return sb.String()
}

// cell applies the column's width cap to val.
func (c Column) cell(val string) string {
	if c.MaxWidth > 0 {
		return utils.ShortenLeft(val, c.MaxWidth)
	}
	return val
}
