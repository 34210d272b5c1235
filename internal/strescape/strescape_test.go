package strescape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOneSimpleEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want byte
	}{
		{"newline", `\n`, '\n'},
		{"tab", `\t`, '\t'},
		{"carriage return", `\r`, '\r'},
		{"backslash", `\\`, '\\'},
		{"quote", `\"`, '"'},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			consumed, out, outcome := DecodeOne([]byte(tt.in))
			require.Equal(t, OK, outcome)
			require.Equal(t, 2, consumed)
			assert.Equal(t, []byte{tt.want}, out)
		})
	}
}

func TestDecodeOneOctal(t *testing.T) {
	// from spec scenario S7: \101 -> 'A'
	consumed, out, outcome := DecodeOne([]byte(`\101B`))
	require.Equal(t, OK, outcome)
	assert.Equal(t, 4, consumed)
	assert.Equal(t, []byte{'A'}, out)
}

func TestDecodeOneHex(t *testing.T) {
	// from spec scenario S7: \x42 -> 'B'
	consumed, out, outcome := DecodeOne([]byte(`\x42`))
	require.Equal(t, OK, outcome)
	assert.Equal(t, 4, consumed)
	assert.Equal(t, []byte{'B'}, out)
}

func TestDecodeOneUnicode(t *testing.T) {
	// from spec scenario S7: the u263a escape -> ☺ (UTF-8)
	consumed, out, outcome := DecodeOne([]byte("\\u263a"))
	require.Equal(t, OK, outcome)
	assert.Equal(t, 6, consumed)
	assert.Equal(t, "☺", string(out))
}

func TestDecodeOneIncompleteAtChunkBoundary(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bare backslash", `\`},
		{"partial hex", `\x4`},
		{"partial unicode", `\u26`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, _, outcome := DecodeOne([]byte(tt.in))
			assert.Equal(t, Incomplete, outcome)
		})
	}
}

func TestDecodeOneInvalidEscape(t *testing.T) {
	_, _, outcome := DecodeOne([]byte(`\q`))
	assert.Equal(t, Invalid, outcome)
}
