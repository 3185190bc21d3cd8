package cleaning

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Currency markers and thousands separators stripped before conversion.
var numericArtifacts = regexp.MustCompile(`[$,]`)

func parseFinite(value string) (float64, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Numeric cleans a decimal column value. Anything that does not survive
// as a parseable finite number reports ok=false; callers store null.
func Numeric(raw string) (float64, bool) {
	value := strings.TrimSpace(numericArtifacts.ReplaceAllString(raw, ""))
	if value == "" {
		return 0, false
	}
	return parseFinite(value)
}

// Integral cleans a count-like column value. Fractional remainders are
// truncated, not rounded: the text before the decimal point is what gets
// parsed. The result stays float64 to match the store's schema.
func Integral(raw string) (float64, bool) {
	value := strings.TrimSpace(numericArtifacts.ReplaceAllString(raw, ""))
	if idx := strings.Index(value, "."); idx >= 0 {
		value = value[:idx]
	}
	if value == "" {
		return 0, false
	}
	return parseFinite(value)
}
