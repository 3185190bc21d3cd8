package cleaning

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Spreadsheet serial dates count days from this epoch. 1899-12-30 rather
// than 1899-12-31 absorbs the 1900 leap-year convention carried by the
// legacy exports.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Ordered layouts observed across the report families. Day-first variants
// sit before month-first on purpose: the exporters are day-first almost
// everywhere, and the first successful parse wins.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2-Jan-2006",
	"02/01/2006",
	"01/02/2006",
	"02.01.2006",
}

// Fallback layouts tried when the fixed list fails, mirroring a generic
// last-ditch parse.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2 January 2006",
	"January 2, 2006",
	"02-01-2006",
	time.RFC3339,
}

// GeneralReport timestamps carry milliseconds behind a colon
// (02/09/2025 12:49:12:300), which no time layout can express directly.
var colonMillisPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}):\d+$`)

// DateParser normalizes heterogeneous date representations to ISO-8601
// date strings. Unparseable input yields ok=false and a warning, never an
// error.
type DateParser struct {
	noise  map[string]struct{}
	logger *zap.Logger
}

func NewDateParser(noise map[string]struct{}, logger *zap.Logger) *DateParser {
	return &DateParser{noise: noise, logger: logger}
}

// Parse returns the input as YYYY-MM-DD. Numeric input is interpreted as
// a spreadsheet serial date; strings go through the fixed layout list and
// then the fallback layouts.
func (p *DateParser) Parse(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if _, isNoise := p.noise[strings.ToUpper(value)]; isNoise || value == "" {
		return "", false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(serial) && !math.IsInf(serial, 0) && serial > 0 {
		days := int(serial)
		frac := serial - float64(days)
		t := serialEpoch.AddDate(0, 0, days).Add(time.Duration(frac * float64(24*time.Hour)))
		return t.Format("2006-01-02"), true
	}

	if m := colonMillisPattern.FindStringSubmatch(value); m != nil {
		value = m[1]
		if t, err := time.Parse("02/01/2006 15:04:05", value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	p.logger.Warn("Could not parse date", zap.String("value", raw))
	return "", false
}
