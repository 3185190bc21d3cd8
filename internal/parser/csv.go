package parser

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func readCSV(path string, keywords []string, params DetectorParams, logger *zap.Logger) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	matrix, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}
	if len(matrix) == 0 {
		return Table{}, nil
	}

	if IsGeneralReport(path) {
		logger.Info("Detected GeneralReport CSV, using fixed layout (header=0, skip row 1)",
			zap.String("file", path))
		return tableFromMatrix(matrix, 0, 1), nil
	}

	headerRow := DetectHeaderRow(matrix, keywords, params, logger)
	return tableFromMatrix(matrix, headerRow, 0), nil
}
