package parser

import (
	"strings"

	"github.com/teatrade/auction-ingest/internal/config"
)

// MapColumns renames source columns to canonical field names using the
// alias table and projects the table down to exactly those fields, in
// declaration order. Guarantees:
//   - every canonical field appears in the output, empty when no source
//     column matched, so callers never test for missing columns;
//   - a canonical field is claimed by at most one source column (first
//     match wins, later lookalikes are ignored);
//   - unmapped source columns are dropped.
func MapColumns(t Table, fields []config.FieldAliases) Table {
	aliasToField := make(map[string]string)
	for _, f := range fields {
		for _, alias := range f.Aliases {
			key := strings.ToUpper(strings.TrimSpace(alias))
			if _, ok := aliasToField[key]; !ok {
				aliasToField[key] = f.Field
			}
		}
	}

	// source column index per claimed canonical field
	claimed := make(map[string]int, len(fields))
	for col, name := range t.Header {
		normalized := strings.ToUpper(strings.TrimSpace(name))
		field, ok := aliasToField[normalized]
		if !ok {
			continue
		}
		if _, taken := claimed[field]; !taken {
			claimed[field] = col
		}
	}

	header := config.FieldNames(fields)
	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(header))
		for i, field := range header {
			if col, ok := claimed[field]; ok {
				row[i] = t.Cell(r, col)
			}
		}
		rows[r] = row
	}

	return Table{Header: header, Rows: rows}
}
