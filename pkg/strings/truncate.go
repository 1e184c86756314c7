// Package strings holds small text helpers shared by the output code.
package strings

import (
	"strings"
)

// DefaultCellWidth is the widest value rendered in a table cell.
const DefaultCellWidth = 60

const ellipsis = "..."

// SingleLine collapses every run of whitespace, newlines included, into a
// single space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns s on a single line, cut to at most width runes with a
// trailing "..." when it was longer. Widths below 4 are raised to 4.
func Truncate(s string, width int) string {
	if width < len(ellipsis)+1 {
		width = len(ellipsis) + 1
	}

	runes := []rune(SingleLine(s))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-len(ellipsis)]) + ellipsis
}
