package badger

import (
	"math"
	"strings"
)

// Stop words excluded from lexical matching
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}|"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// tokenSet builds the set of distinct filtered tokens in text.
func tokenSet(text string) map[string]bool {
	tokens := tokenizeAndFilter(text)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// ochiai computes the Ochiai coefficient between two token sets:
// |A∩B| / sqrt(|A|*|B|). The result is in [0, 1], which keeps lexical
// scores on the same scale as cosine similarity over unit vectors.
func ochiai(querySet, textSet map[string]bool) float64 {
	if len(querySet) == 0 || len(textSet) == 0 {
		return 0
	}

	smaller, larger := querySet, textSet
	if len(larger) < len(smaller) {
		smaller, larger = larger, smaller
	}

	overlap := 0
	for t := range smaller {
		if larger[t] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}

	return float64(overlap) / math.Sqrt(float64(len(querySet))*float64(len(textSet)))
}
