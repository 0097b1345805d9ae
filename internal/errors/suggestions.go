package errors

import (
	"errors"
	"fmt"
	"strings"
)

// FormatErrorWithSuggestions formats an error followed by any suggestions it
// carries.
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	var suggestions []string
	var se *StarterError
	var ve ValidationError
	switch {
	case errors.As(err, &se):
		suggestions = se.Suggestions
	case errors.As(err, &ve):
		suggestions = ve.Suggestions()
	}

	result := err.Error()
	if len(suggestions) > 0 {
		result += "\n\nSuggestions:"
		for _, suggestion := range suggestions {
			result += fmt.Sprintf("\n  • %s", suggestion)
		}
	}

	return result
}

// ClosestMatch returns the candidate nearest to input by edit distance, or ""
// when nothing is within maxDistance.
func ClosestMatch(input string, candidates []string, maxDistance int) string {
	best := ""
	bestDistance := maxDistance + 1
	for _, candidate := range candidates {
		d := levenshtein(strings.ToLower(input), strings.ToLower(candidate))
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
