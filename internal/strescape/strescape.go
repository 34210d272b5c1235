// Package strescape decodes the backslash escapes recognized inside bo
// quoted string literals, one escape at a time, tolerating a chunk boundary
// landing in the middle of an escape sequence.
package strescape

import (
	"unicode/utf8"

	"github.com/cruxbyte/bo/internal/charclass"
)

// Outcome classifies the result of decoding one escape sequence.
type Outcome int

const (
	// OK means an escape was fully decoded.
	OK Outcome = iota
	// Incomplete means data ended before the escape could be fully read;
	// the caller should retry once more bytes are available (stream mode)
	// or report a string error (last mode).
	Incomplete
	// Invalid means the bytes do not form a recognized escape.
	Invalid
)

// DecodeOne decodes a single escape sequence starting at data[0], which must
// be a backslash. It returns how many input bytes the escape consumed, the
// decoded output bytes (1-3 bytes for \u escapes that re-encode as UTF-8),
// and the outcome.
func DecodeOne(data []byte) (consumed int, out []byte, outcome Outcome) {
	if len(data) == 0 || data[0] != '\\' {
		return 0, nil, Invalid
	}
	if len(data) < 2 {
		return 0, nil, Incomplete
	}
	switch data[1] {
	case 'r':
		return 2, []byte{'\r'}, OK
	case 'n':
		return 2, []byte{'\n'}, OK
	case 't':
		return 2, []byte{'\t'}, OK
	case '\\':
		return 2, []byte{'\\'}, OK
	case '"':
		return 2, []byte{'"'}, OK
	case 'x':
		return decodeHex(data)
	case 'u':
		return decodeUnicode(data)
	default:
		if charclass.Is(data[1], charclass.Base8) {
			return decodeOctal(data)
		}
		return 0, nil, Invalid
	}
}

// decodeOctal consumes 1-3 octal digits after the backslash (no 'o' marker),
// stopping greedily as soon as a non-base-8 digit is seen or 3 digits have
// been consumed. Value must fit in a byte. As with hex escapes, running out
// of data before either boundary is ambiguous and reported Incomplete.
func decodeOctal(data []byte) (int, []byte, Outcome) {
	n := 0
	value := 0
	ranOutOfData := true
	for i := 1; i < len(data) && n < 3; i++ {
		if !charclass.Is(data[i], charclass.Base8) {
			ranOutOfData = false
			break
		}
		value = value*8 + int(data[i]-'0')
		n++
	}
	if n == 3 {
		ranOutOfData = false
	}
	if n == 0 {
		if ranOutOfData {
			return 0, nil, Incomplete
		}
		return 0, nil, Invalid
	}
	if ranOutOfData {
		return 0, nil, Incomplete
	}
	if value > 0xFF {
		return 0, nil, Invalid
	}
	return 1 + n, []byte{byte(value)}, OK
}

// decodeHex consumes "\xHH" or "\xH", 1-2 hex digits. If the available data
// runs out before a non-hex byte is seen and before the 2-digit maximum is
// reached, the escape is ambiguous (a further hex digit could still arrive
// in the next chunk), so it is reported Incomplete rather than guessed.
func decodeHex(data []byte) (int, []byte, Outcome) {
	if len(data) < 3 {
		return 0, nil, Incomplete
	}
	n := 0
	value := 0
	ranOutOfData := true
	for i := 2; i < len(data) && n < 2; i++ {
		d, ok := hexDigit(data[i])
		if !ok {
			ranOutOfData = false
			break
		}
		value = value*16 + d
		n++
	}
	if n == 2 {
		ranOutOfData = false
	}
	if n == 0 {
		if ranOutOfData {
			return 0, nil, Incomplete
		}
		return 0, nil, Invalid
	}
	if ranOutOfData {
		return 0, nil, Incomplete
	}
	return 2 + n, []byte{byte(value)}, OK
}

// decodeUnicode consumes "\uHHHH", exactly 4 hex digits, re-encoded as UTF-8.
func decodeUnicode(data []byte) (int, []byte, Outcome) {
	if len(data) < 6 {
		// could still be valid with more data, unless we already have
		// enough bytes to know one of them is not hex.
		for i := 2; i < len(data); i++ {
			if _, ok := hexDigit(data[i]); !ok {
				return 0, nil, Invalid
			}
		}
		return 0, nil, Incomplete
	}
	value := 0
	for i := 2; i < 6; i++ {
		d, ok := hexDigit(data[i])
		if !ok {
			return 0, nil, Invalid
		}
		value = value*16 + d
	}
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, rune(value))
	return 6, buf[:n], OK
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
