package assembler

import (
	"strings"
	"unicode"
)

// LineKind is the category of a source line.
type LineKind int

//go:generate go tool stringer -linecomment -type=LineKind
const (
	LINE_EMPTY       = LineKind(0) // empty
	LINE_LABEL       = LineKind(1) // label
	LINE_INSTRUCTION = LineKind(2) // instruction
	LINE_DIRECTIVE   = LineKind(3) // directive
)

// Classify categorizes a comment-free source line.
func Classify(line string) LineKind {
	line = strings.TrimSpace(line)

	switch {
	case len(line) == 0:
		return LINE_EMPTY
	case line[0] == '.':
		return LINE_DIRECTIVE
	case isUpper(line):
		return LINE_LABEL
	}

	return LINE_INSTRUCTION
}

// isUpper is true if the text has letters, and none are lower-case.
func isUpper(text string) (upper bool) {
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}

	return
}

// stripComment removes a trailing ';' comment and surrounding blanks.
func stripComment(text string) string {
	line, _, _ := strings.Cut(text, ";")
	return strings.TrimSpace(line)
}

// isSeparator splits operands.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
