package agent

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`\b\w+\b`)

// TokenOverlapScore measures how much of the expected answer's vocabulary
// appears in the predicted answer, case-insensitive, as a fraction of the
// expected token count. 1.0 means full coverage.
func TokenOverlapScore(predicted, expected string) float64 {
	expTokens := wordRE.FindAllString(strings.ToLower(expected), -1)
	if len(expTokens) == 0 {
		return 0
	}
	predCounts := make(map[string]int)
	for _, tok := range wordRE.FindAllString(strings.ToLower(predicted), -1) {
		predCounts[tok]++
	}
	overlap := 0
	for _, tok := range expTokens {
		if predCounts[tok] > 0 {
			predCounts[tok]--
			overlap++
		}
	}
	return float64(overlap) / float64(len(expTokens))
}
