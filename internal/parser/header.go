package parser

import (
	"strings"

	"go.uber.org/zap"
)

// DetectorParams bounds the header search. MinMatches is the confidence
// threshold: a best score below min(MinMatches, len(keywords)) means
// detection failed and row 0 is used instead.
type DetectorParams struct {
	MaxScanRows int
	MinMatches  int
}

// DetectHeaderRow scores each of the first MaxScanRows rows by how many
// of the expected keyword tokens it contains (case- and
// whitespace-insensitive) and returns the index of the best one. Falling
// back to row 0 is a logged degradation, not an error: over-ingesting a
// misdetected sheet beats dropping it.
func DetectHeaderRow(rows [][]string, keywords []string, params DetectorParams, logger *zap.Logger) int {
	normalizedKeywords := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		normalizedKeywords[strings.ToUpper(strings.TrimSpace(k))] = struct{}{}
	}

	limit := len(rows)
	if params.MaxScanRows > 0 && params.MaxScanRows < limit {
		limit = params.MaxScanRows
	}

	bestScore := 0
	headerRow := 0

	for i := 0; i < limit; i++ {
		rowValues := make(map[string]struct{}, len(rows[i]))
		for _, cell := range rows[i] {
			v := strings.ToUpper(strings.TrimSpace(cell))
			if v != "" {
				rowValues[v] = struct{}{}
			}
		}

		score := 0
		for v := range rowValues {
			if _, ok := normalizedKeywords[v]; ok {
				score++
			}
		}

		if score > bestScore {
			bestScore = score
			headerRow = i
		}
	}

	threshold := params.MinMatches
	if len(keywords) < threshold {
		threshold = len(keywords)
	}

	if bestScore < threshold {
		logger.Warn("Header row not confidently detected, defaulting to row 0",
			zap.Int("best_score", bestScore),
			zap.Int("threshold", threshold))
		return 0
	}

	logger.Info("Header row detected",
		zap.Int("row", headerRow),
		zap.Int("matches", bestScore))
	return headerRow
}
