package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAll feeds the full input in one Last-kind chunk and returns the
// concatenated output.
func runAll(t *testing.T, input string) string {
	t.Helper()
	var out []byte
	ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil,
		func(_ any, data []byte) bool { out = append(out, data...); return true },
		func(_ any, err error) { t.Fatalf("unexpected error: %v", err) },
		nil,
	)
	unread, err := ctx.Process([]byte(input), Last)
	require.NoError(t, err)
	require.Empty(t, unread)
	ok := ctx.FlushAndDestroy()
	require.True(t, ok)
	return string(out)
}

func TestConcreteScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"S1", `oh1l1 ih1l 1 2 3 4 a b cd`, `1234abcd`},
		{"S2", `oh1l2 p"0x" s", " ih1l 1 2 3 4 a b cd`, `0x01, 0x02, 0x03, 0x04, 0x0a, 0x0b, 0xcd`},
		{"S3", `of4l6 s", " ih1l 00 00 60 40`, `3.500000`},
		{"S4", `oh2b4 s" " ih4l 12345678`, `7856 3412`},
		{"S5", `ob2b1 ib2b 1011`, `0000000000001011`},
		{"S6", `os ih1 "Testing" 01 02 "ß" 5`, "Testing\\x01\\x02ß\\x05"},
		{"S7", "os is \"\\101\\x42\\u263a\"", `AB☺`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runAll(t, tt.input))
		})
	}
}

func TestBoundaryFeedByteByByte(t *testing.T) {
	// (a) Feed S2 byte-by-byte in stream mode with a last empty terminator.
	input := `oh1l2 p"0x" s", " ih1l 1 2 3 4 a b cd`
	var out []byte
	ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil,
		func(_ any, data []byte) bool { out = append(out, data...); return true },
		func(_ any, err error) { t.Fatalf("unexpected error: %v", err) },
		nil,
	)
	pending := []byte{}
	for i := 0; i < len(input); i++ {
		pending = append(pending, input[i])
		unread, err := ctx.Process(pending, Stream)
		require.NoError(t, err)
		pending = append([]byte{}, unread...)
	}
	unread, err := ctx.Process(pending, Last)
	require.NoError(t, err)
	require.Empty(t, unread)
	require.True(t, ctx.FlushAndDestroy())
	assert.Equal(t, `0x01, 0x02, 0x03, 0x04, 0x0a, 0x0b, 0xcd`, string(out))
}

func TestBoundaryTrailingSpaceConsumed(t *testing.T) {
	// (b) "ih2l " consumes through the trailing space and returns at byte 5.
	ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil, func(any, []byte) bool { return true }, func(any, error) {}, nil)
	unread, err := ctx.Process([]byte("ih2l "), Stream)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestBoundaryTruncatedCommand(t *testing.T) {
	// (c) "ih2l" (no trailing space): stream -> needs more, returns at byte 0.
	ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil, func(any, []byte) bool { return true }, func(any, error) {}, nil)
	unread, err := ctx.Process([]byte("ih2l"), Stream)
	require.NoError(t, err)
	assert.Equal(t, "ih2l", string(unread))

	var gotErr error
	ctx2 := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil, func(any, []byte) bool { return true }, func(_ any, err error) { gotErr = err }, nil)
	_, err = ctx2.Process([]byte("ih2l"), Last)
	require.Error(t, err)
	assert.Error(t, gotErr)
}

func TestBoundarySpanningPrefixSixChunks(t *testing.T) {
	// (d) Feed p"abcd" in six successive 1-byte stream chunks followed by
	// the final byte: net effect = prefix becomes "abcd".
	ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil, func(any, []byte) bool { return true }, func(any, error) {}, nil)
	input := []byte(`p"abcd"`)
	pending := []byte{}
	for i := 0; i < len(input)-1; i++ {
		pending = append(pending, input[i])
		unread, err := ctx.Process(pending, Stream)
		require.NoError(t, err)
		pending = append([]byte{}, unread...)
	}
	pending = append(pending, input[len(input)-1])
	unread, err := ctx.Process(pending, Last)
	require.NoError(t, err)
	require.Empty(t, unread)
	assert.Equal(t, "abcd", ctx.output.Prefix)
}

func TestErrorStopsFurtherOutput(t *testing.T) {
	// Universal invariant 5: after an error, no further bytes reach on_output.
	var out []byte
	var errCount int
	ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
		nil,
		func(_ any, data []byte) bool { out = append(out, data...); return true },
		func(any, error) { errCount++ },
		nil,
	)
	_, err := ctx.Process([]byte(`oh1l1 ih1l !!!`), Last)
	require.Error(t, err)
	assert.Equal(t, 1, errCount)

	_, err = ctx.Process([]byte(`1 2 3`), Last)
	require.NoError(t, err) // no-op once errored
	assert.Equal(t, 1, errCount)
	assert.Empty(t, out)
}

func TestReformatFlushesPendingBytes(t *testing.T) {
	// Universal invariant 3: setting a new output spec mid-stream flushes
	// all prior bytes (as hex) before the first byte under the new (string)
	// spec is emitted.
	assert.Equal(t, "6162ab", runAll(t, `oh1l1 ih1l 61 62 os is "ab"`))
}

func TestChunkBoundaryIdempotence(t *testing.T) {
	// Universal invariant 1: splitting input at any byte boundary and
	// feeding as two stream chunks plus a last terminator yields the same
	// output as one last chunk.
	input := `oh1l2 ih1l 1 2 3 4 a b cd`
	whole := runAll(t, input)

	for split := 1; split < len(input); split++ {
		var out []byte
		ctx := New(DefaultWorkBufferSize, DefaultWorkBufferOverhead, DefaultOutputBufferSize, DefaultOutputBufferOverhead,
			nil,
			func(_ any, data []byte) bool { out = append(out, data...); return true },
			func(_ any, err error) { t.Fatalf("unexpected error at split %d: %v", split, err) },
			nil,
		)
		first := []byte(input[:split])
		second := []byte(input[split:])
		unread, err := ctx.Process(first, Stream)
		require.NoError(t, err)
		combined := append(append([]byte{}, unread...), second...)
		unread2, err := ctx.Process(combined, Last)
		require.NoError(t, err)
		require.Empty(t, unread2)
		require.True(t, ctx.FlushAndDestroy())
		require.Equal(t, whole, string(out), "split at %d produced different output", split)
	}
}

func TestPrefixSuffixGroupCounts(t *testing.T) {
	// Universal invariant 4: N groups emitted have exactly N prefixes and
	// N-1 suffixes under one (prefix, suffix) configuration.
	out := runAll(t, `oh1l1 p"<" s">" ih1l 1 2 3 4`)
	assert.Equal(t, "<1><2><3><4", out)
}
