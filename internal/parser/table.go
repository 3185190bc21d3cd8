package parser

import "strings"

// Table is the untyped row/column matrix a file yields once its header is
// known. Cells are raw strings; typing happens downstream in cleaning.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a header name, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column index), tolerating ragged rows.
func (t Table) Cell(row int, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// pruneEmptyRows drops rows with no content at all, e.g. blank trailer
// rows spreadsheets love to carry.
func pruneEmptyRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		if !rowIsEmpty(row) {
			kept = append(kept, row)
		}
	}
	return kept
}

// pruneEmptyColumns drops columns carrying no data in any row. An
// all-empty alias column must never claim a canonical field ahead of a
// populated sibling during mapping.
func pruneEmptyColumns(t Table) Table {
	if t.Empty() {
		return t
	}

	width := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	keep := make([]bool, width)
	for c := 0; c < width; c++ {
		for r := range t.Rows {
			if strings.TrimSpace(t.Cell(r, c)) != "" {
				keep[c] = true
				break
			}
		}
	}

	var header []string
	for c, h := range t.Header {
		if keep[c] {
			header = append(header, h)
		}
	}

	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, 0, len(header))
		for c := 0; c < width; c++ {
			if keep[c] {
				row = append(row, t.Cell(r, c))
			}
		}
		rows[r] = row
	}

	return Table{Header: header, Rows: rows}
}

// mergeTables concatenates per-sheet tables, aligning columns by header
// name. The merged header is the union of sheet headers in first-seen
// order; cells absent from a sheet come back empty.
func mergeTables(tables []Table) Table {
	if len(tables) == 0 {
		return Table{}
	}
	if len(tables) == 1 {
		return tables[0]
	}

	var header []string
	seen := make(map[string]int)
	for _, t := range tables {
		for _, h := range t.Header {
			if _, ok := seen[h]; !ok {
				seen[h] = len(header)
				header = append(header, h)
			}
		}
	}

	var rows [][]string
	for _, t := range tables {
		for r := range t.Rows {
			row := make([]string, len(header))
			for c, h := range t.Header {
				row[seen[h]] = t.Cell(r, c)
			}
			rows = append(rows, row)
		}
	}

	return Table{Header: header, Rows: rows}
}
