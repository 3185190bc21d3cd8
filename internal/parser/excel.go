package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// readExcel loads every sheet of a workbook into one concatenated table.
// RawCellValue keeps serial dates numeric so the shared date parser can
// apply the spreadsheet epoch itself.
func readExcel(path string, keywords []string, params DetectorParams, logger *zap.Logger) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if IsGeneralReport(path) {
		logger.Info("Detected GeneralReport workbook, using fixed layout (header=0, skip row 1)",
			zap.String("file", path))
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, nil
		}
		matrix, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
		if err != nil {
			return Table{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
		}
		return tableFromMatrix(matrix, 0, 1), nil
	}

	var tables []Table
	for _, sheet := range f.GetSheetList() {
		matrix, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			logger.Warn("Failed to read sheet, skipping",
				zap.String("sheet", sheet), zap.Error(err))
			continue
		}
		if len(matrix) == 0 {
			continue
		}

		headerRow := DetectHeaderRow(matrix, keywords, params, logger)
		t := tableFromMatrix(matrix, headerRow, 0)
		if len(t.Header) > 0 {
			tables = append(tables, t)
		}
	}

	return mergeTables(tables), nil
}
