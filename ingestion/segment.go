package ingestion

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxChars is the default segment size limit in characters.
const DefaultMaxChars = 1800

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// splitSentences splits text at whitespace runs that follow a sentence
// terminator (. ! ?). The whitespace itself is dropped; terminators stay
// attached to their sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	i := 0
	for i < len(runes) {
		if !isTerminator(runes[i]) {
			i++
			continue
		}
		// Consume the full terminator run
		j := i + 1
		for j < len(runes) && isTerminator(runes[j]) {
			j++
		}
		if j < len(runes) && unicode.IsSpace(runes[j]) {
			sentences = append(sentences, string(runes[start:j]))
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			start = j
		}
		i = j
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// SegmentText splits text into segments of at most maxChars characters,
// packing whole sentences greedily. Text already within the limit is
// returned as a single segment. A single sentence longer than maxChars
// becomes its own oversize segment rather than being split mid-sentence.
func SegmentText(text string, maxChars int) []string {
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var parts []string
	var buf []string
	size := 0

	for _, sent := range splitSentences(text) {
		if size+utf8.RuneCountInString(sent)+1 > maxChars && len(buf) > 0 {
			parts = append(parts, strings.TrimSpace(strings.Join(buf, " ")))
			buf, size = nil, 0
		}
		buf = append(buf, sent)
		size += utf8.RuneCountInString(sent) + 1
	}
	if len(buf) > 0 {
		parts = append(parts, strings.TrimSpace(strings.Join(buf, " ")))
	}
	return parts
}
