// Package textutil makes untrusted text safe to draw on a terminal.
package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// Short names for invisible runes that can disguise a file name.
var invisibleNames = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x2028: "LSEP",
	0x2029: "PSEP",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// SanitizeTerminalText returns text with control characters replaced, so a
// file name or error message cannot emit escape sequences, and with invisible
// formatting runes (bidi overrides, zero-width joiners) shown as ⟪NAME⟫.
func SanitizeTerminalText(text string) string {
	i := strings.IndexFunc(text, func(r rune) bool {
		_, changed := replacement(r)
		return changed
	})
	if i < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	b.WriteString(text[:i])
	for _, r := range text[i:] {
		if repl, changed := replacement(r); changed {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func replacement(r rune) (string, bool) {
	if name, ok := invisibleNames[r]; ok {
		return "⟪" + name + "⟫", true
	}
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return " ", true
	case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
		return "?", true
	case unicode.Is(unicode.Cf, r):
		return fmt.Sprintf("⟪U+%04X⟫", r), true
	}
	return "", false
}
