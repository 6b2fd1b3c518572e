package textutil

import "github.com/mattn/go-runewidth"

// DisplayWidth reports how many terminal columns text occupies. Grapheme
// clusters such as flags and ZWJ sequences count once.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width columns, ending with an ellipsis
// when anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
