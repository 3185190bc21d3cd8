package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// generalReportMarker names the one export family whose layout is known
// in advance: header on row 0 with a fixed banner row right below it that
// would otherwise confuse the detector. An explicit exception, not a
// heuristic.
const generalReportMarker = "GENERALREPORT"

// IsGeneralReport reports whether a filename belongs to the
// fixed-layout GeneralReport family.
func IsGeneralReport(filename string) bool {
	return strings.Contains(strings.ToUpper(filepath.Base(filename)), generalReportMarker)
}

// ReadFile loads a structured file into a Table. Keywords drive dynamic
// header detection; GeneralReport files bypass detection entirely.
// Spreadsheets with several sheets come back as one concatenated table.
func ReadFile(path string, keywords []string, params DetectorParams, logger *zap.Logger) (Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var table Table
	var err error

	switch ext {
	case ".csv":
		table, err = readCSV(path, keywords, params, logger)
	case ".xls", ".xlsx", ".xlsm":
		table, err = readExcel(path, keywords, params, logger)
	default:
		return Table{}, fmt.Errorf("unsupported file format: %s", ext)
	}

	if err != nil {
		return Table{}, err
	}

	table.Rows = pruneEmptyRows(table.Rows)
	table = pruneEmptyColumns(table)
	logger.Info("Finished reading file",
		zap.String("file", filepath.Base(path)),
		zap.Int("rows", len(table.Rows)))
	return table, nil
}

// tableFromMatrix applies header selection to a raw matrix. skipAfter
// marks rows immediately below the header that must be discarded (the
// GeneralReport banner row).
func tableFromMatrix(matrix [][]string, headerRow int, skipAfter int) Table {
	if headerRow >= len(matrix) {
		return Table{}
	}

	header := make([]string, len(matrix[headerRow]))
	for i, cell := range matrix[headerRow] {
		header[i] = strings.TrimSpace(cell)
	}

	dataStart := headerRow + 1 + skipAfter
	if dataStart > len(matrix) {
		dataStart = len(matrix)
	}

	return Table{Header: header, Rows: matrix[dataStart:]}
}
