package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/cruxbyte/bo/internal/buffer"
)

// printStringGroup renders the string output type, which (unlike the fixed
// width integer/float families) consumes a variable number of source bytes
// per call: one byte per call ordinarily, or a full UTF-8 rune (2-4 bytes)
// when one is recognized. It returns the number of source bytes consumed.
func printStringGroup(dst *buffer.Buffer, src []byte) int {
	b := src[0]
	switch b {
	case '\a':
		dst.AppendString(`\a`)
		return 1
	case '\b':
		dst.AppendString(`\b`)
		return 1
	case '\t':
		dst.AppendString(`\t`)
		return 1
	case '\n':
		dst.AppendString(`\n`)
		return 1
	case '\v':
		dst.AppendString(`\v`)
		return 1
	case '\f':
		dst.AppendString(`\f`)
		return 1
	case '\r':
		dst.AppendString(`\r`)
		return 1
	case '\\':
		dst.AppendString(`\\`)
		return 1
	case '"':
		dst.AppendString(`\"`)
		return 1
	case '?':
		dst.AppendString(`\?`)
		return 1
	}
	if b >= 0x20 && b <= 0x7E {
		dst.UseSpace(1)[0] = b
		return 1
	}
	if r, size := utf8.DecodeRune(src); r != utf8.RuneError && size > 1 {
		dst.AppendBytes(src[:size])
		return size
	}
	dst.AppendString(fmt.Sprintf(`\x%02x`, b))
	return 1
}
