package ingestion

import (
	"regexp"
	"strings"
)

var (
	lineBreakRe  = regexp.MustCompile(`\r\n?`)
	hSpaceRe     = regexp.MustCompile(`[ \t]+`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
	cellJoiner   = " | "
	rowSeparator = "\n"
)

// Normalize collapses whitespace while keeping paragraph breaks: line
// endings become \n, runs of spaces and tabs become a single space, runs of
// three or more newlines become a single blank line, and the result is
// trimmed.
func Normalize(text string) string {
	text = lineBreakRe.ReplaceAllString(text, "\n")
	text = hSpaceRe.ReplaceAllString(text, " ")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// FlattenTable linearizes a cell grid into searchable text: cells within a
// row are joined with " | " and rows are joined with newlines. Cell values
// are normalized individually so row structure survives.
func FlattenTable(cells [][]string) string {
	rows := make([]string, 0, len(cells))
	for _, row := range cells {
		normalized := make([]string, len(row))
		for i, cell := range row {
			normalized[i] = Normalize(cell)
		}
		rows = append(rows, strings.Join(normalized, cellJoiner))
	}
	return strings.Join(rows, rowSeparator)
}
