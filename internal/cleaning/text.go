package cleaning

import "strings"

// Text trims and uppercases a text column value, mapping the shared noise
// tokens to null (ok=false). The noise set is matched after
// normalization.
func Text(raw string, noise map[string]struct{}) (string, bool) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if _, isNoise := noise[value]; isNoise {
		return "", false
	}
	return value, true
}
