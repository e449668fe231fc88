package common

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// EscapeNonASCII rewrites every non-ASCII rune of encoded JSON as a
// lowercase \uXXXX escape, with a surrogate pair above the BMP. Such runes
// only occur inside string literals, so the document keeps its meaning.
func EscapeNonASCII(content []byte) []byte {
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); {
		if content[i] < utf8.RuneSelf {
			out = append(out, content[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(content[i:])
		i += size
		if r > 0xffff {
			r1, r2 := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
