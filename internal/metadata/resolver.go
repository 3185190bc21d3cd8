package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/teatrade/auction-ingest/internal/cleaning"
	"github.com/teatrade/auction-ingest/internal/config"
	"github.com/teatrade/auction-ingest/internal/models"
	"github.com/teatrade/auction-ingest/internal/parser"
)

// Filename pattern families, tried in order. The first sale-number hit
// wins for that extractor.
var (
	// Sale_No_42_10th_October_2025.xlsx
	saleNoPattern = regexp.MustCompile(`(?i)Sale_No_(\d+)_`)
	// the date tail of the same family; day ranges (14th_15th) keep the
	// first day
	dateTailPattern = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?(?:[_ ]\d{1,2}(?:st|nd|rd|th)?)?[_ ]([A-Za-z]+)[_ ](\d{4})`)
	// Sale 42 (10/10/2025).csv
	saleParenPattern = regexp.MustCompile(`(?i)Sale\s*(\d+)\s*\((.*?)\)`)
	// GeneralReport(42).csv - the number may be a report id, captured
	// only when nothing better exists
	generalReportPattern = regexp.MustCompile(`(?i)GeneralReport\s*\((\d+)\)`)
	// embedded sale codes look like "Sale 35 - M2"
	saleCodePattern = regexp.MustCompile(`(?i)Sale\s*(\d+)`)
)

// Resolver determines the sale number and sale date for a file by
// combining filename hints with values embedded in the mapped data.
// Embedded values win; each field falls back to the other source
// independently.
type Resolver struct {
	dates  *cleaning.DateParser
	noise  map[string]struct{}
	logger *zap.Logger
}

func NewResolver(dates *cleaning.DateParser, noise map[string]struct{}, logger *zap.Logger) *Resolver {
	return &Resolver{dates: dates, noise: noise, logger: logger}
}

// Resolve merges both extractors for one file. Missing fields are logged
// and stay nil; rows proceed with null sale identifiers.
func (r *Resolver) Resolve(filename string, mapped parser.Table) models.SaleMetadata {
	fromName := r.FromFilename(filename)
	fromData := r.FromTable(mapped)

	final := models.SaleMetadata{
		SaleNumber: coalesce(fromData.SaleNumber, fromName.SaleNumber),
		SaleDate:   coalesce(fromData.SaleDate, fromName.SaleDate),
	}

	if final.SaleNumber == nil {
		r.logger.Warn("Sale number could not be determined", zap.String("file", filename))
	}
	if final.SaleDate == nil {
		r.logger.Warn("Sale date could not be determined", zap.String("file", filename))
	}

	return final
}

// FromFilename applies the ordered filename pattern rules.
func (r *Resolver) FromFilename(filename string) models.SaleMetadata {
	var meta models.SaleMetadata

	if loc := saleNoPattern.FindStringSubmatchIndex(filename); loc != nil {
		meta.SaleNumber = strPtr(filename[loc[2]:loc[3]])
		// scan only the tail so the sale number is never mistaken for a day
		if d := dateTailPattern.FindStringSubmatch(filename[loc[1]:]); d != nil {
			dateStr := fmt.Sprintf("%s %s %s", d[1], d[2], d[3])
			if iso, ok := r.dates.Parse(dateStr); ok {
				meta.SaleDate = strPtr(iso)
			}
		}
	}

	if m := saleParenPattern.FindStringSubmatch(filename); m != nil && meta.SaleNumber == nil {
		meta.SaleNumber = strPtr(m[1])
		if meta.SaleDate == nil {
			if iso, ok := r.dates.Parse(m[2]); ok {
				meta.SaleDate = strPtr(iso)
			}
		}
	}

	if m := generalReportPattern.FindStringSubmatch(filename); m != nil && meta.SaleNumber == nil {
		meta.SaleNumber = strPtr(m[1])
	}

	return meta
}

// FromTable pulls sale metadata out of the mapped internal columns. The
// statistical mode of each column is used as the representative value to
// guard against row-level noise and typos.
func (r *Resolver) FromTable(mapped parser.Table) models.SaleMetadata {
	var meta models.SaleMetadata

	if raw, ok := r.columnMode(mapped, config.FieldSaleNumberInternal); ok {
		if m := saleCodePattern.FindStringSubmatch(raw); m != nil {
			meta.SaleNumber = strPtr(m[1])
		}
	}

	if raw, ok := r.columnMode(mapped, config.FieldSaleDateInternal); ok {
		if iso, parsed := r.dates.Parse(raw); parsed {
			meta.SaleDate = strPtr(iso)
		}
	}

	return meta
}

// columnMode returns the most frequent non-noise value of a column,
// first-seen winning ties.
func (r *Resolver) columnMode(t parser.Table, field string) (string, bool) {
	col := t.ColumnIndex(field)
	if col < 0 {
		return "", false
	}

	counts := make(map[string]int)
	var order []string
	for row := range t.Rows {
		value := strings.TrimSpace(t.Cell(row, col))
		if _, isNoise := r.noise[strings.ToUpper(value)]; isNoise || value == "" {
			continue
		}
		if counts[value] == 0 {
			order = append(order, value)
		}
		counts[value]++
	}

	best := ""
	bestCount := 0
	for _, value := range order {
		if counts[value] > bestCount {
			best = value
			bestCount = counts[value]
		}
	}

	return best, bestCount > 0
}

func coalesce(primary, fallback *string) *string {
	if primary != nil {
		return primary
	}
	return fallback
}

func strPtr(s string) *string {
	return &s
}
