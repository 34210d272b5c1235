package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeCommandInput(t *testing.T) {
	tests := []struct {
		name       string
		tok        string
		wantType   DataType
		wantWidth  int
		wantEndian Endianness
	}{
		{"hex width1 no endian needed", "h1", TypeHex, 1, EndianNone},
		{"hex width1 with explicit endian", "h1l", TypeHex, 1, EndianLittle},
		{"hex width4 little", "h4l", TypeHex, 4, EndianLittle},
		{"boolean width1 with required endian", "b1b", TypeBoolean, 1, EndianBig},
		{"int width16 big", "i16b", TypeInt, 16, EndianBig},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseTypeCommand([]byte(tt.tok), false)
			require.Nil(t, err)
			assert.Equal(t, tt.wantType, cmd.dataType)
			assert.Equal(t, tt.wantWidth, cmd.width)
			assert.Equal(t, tt.wantEndian, cmd.endianness)
		})
	}
}

func TestParseTypeCommandMissingRequiredEndian(t *testing.T) {
	_, err := parseTypeCommand([]byte("h4"), false)
	require.NotNil(t, err)
	assert.Equal(t, ErrCommandSyntax, err.Kind)
}

func TestParseTypeCommandWidthTooSmallForType(t *testing.T) {
	_, err := parseTypeCommand([]byte("f1"), false)
	require.NotNil(t, err)
	assert.Equal(t, ErrCommandSyntax, err.Kind)
}

func TestParseTypeCommandOutputWithPrintWidth(t *testing.T) {
	cmd, err := parseTypeCommand([]byte("h1l2"), true)
	require.Nil(t, err)
	assert.Equal(t, 2, cmd.printWidth)
}

func TestParseTypeCommandStringHasNoWidth(t *testing.T) {
	cmd, err := parseTypeCommand([]byte("s"), false)
	require.Nil(t, err)
	assert.Equal(t, TypeString, cmd.dataType)
	assert.Equal(t, 0, cmd.width)
}

func TestExtractWidth(t *testing.T) {
	tests := []struct {
		tok       string
		wantWidth int
		wantLen   int
	}{
		{"1", 1, 1},
		{"2l", 2, 1},
		{"16b", 16, 2},
		{"8", 8, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.tok, func(t *testing.T) {
			w, n, err := extractWidth([]byte(tt.tok))
			require.Nil(t, err)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantLen, n)
		})
	}
}

func TestPresetCSetsPrefixForHexAndOctal(t *testing.T) {
	ctx := &Context{output: OutputSpec{DataType: TypeHex}}
	ctx.onPreset('c')
	assert.Equal(t, "0x", ctx.output.Prefix)
	assert.Equal(t, ", ", ctx.output.Suffix)

	ctx2 := &Context{output: OutputSpec{DataType: TypeOctal}}
	ctx2.onPreset('c')
	assert.Equal(t, "0", ctx2.output.Prefix)
}

func TestPresetSSetsSuffixOnly(t *testing.T) {
	ctx := &Context{output: OutputSpec{DataType: TypeInt, Prefix: "keep"}}
	ctx.onPreset('s')
	assert.Equal(t, " ", ctx.output.Suffix)
	assert.Equal(t, "keep", ctx.output.Prefix)
}

func TestNegativeLiteralWrapsTwosComplement(t *testing.T) {
	// spec §9 Open Question 2: negative values under hex/octal/boolean
	// input wrap to the unsigned representation of the declared width.
	v, err := parseIntLiteral([]byte("-1"), 16, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFF), v)

	v2, err := parseIntLiteral([]byte("-1"), 16, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFF), v2)
}
