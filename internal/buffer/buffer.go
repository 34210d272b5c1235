// Package buffer implements the fixed-capacity byte buffer with a high-water
// mark used by the bo engine's work and output pipelines.
package buffer

import "fmt"

// Buffer is a byte sink of fixed capacity plus a trailing overhead region.
// The overhead exists so that a final flush can zero-fill up to 16 bytes
// past the high water mark without a bounds check.
type Buffer struct {
	data      []byte
	pos       int
	highWater int
}

// New allocates a buffer with room for capacity bytes of real content plus
// overhead bytes that are never counted as "used" but are always available
// for zero-fill padding.
func New(capacity, overhead int) *Buffer {
	if capacity < 0 || overhead < 0 {
		panic(fmt.Sprintf("buffer: negative size (capacity=%d, overhead=%d)", capacity, overhead))
	}
	return &Buffer{
		data:      make([]byte, capacity+overhead),
		highWater: capacity,
	}
}

// Cap returns the usable capacity, excluding overhead.
func (b *Buffer) Cap() int { return b.highWater }

// Used returns the number of bytes written so far.
func (b *Buffer) Used() int { return b.pos }

// Remaining returns the usable space left before the high water mark.
func (b *Buffer) Remaining() int { return b.highWater - b.pos }

// IsHighWater reports whether the buffer has reached or passed its high
// water mark and should be flushed.
func (b *Buffer) IsHighWater() bool { return b.pos >= b.highWater }

// IsEmpty reports whether nothing has been written to the buffer.
func (b *Buffer) IsEmpty() bool { return b.pos == 0 }

// Bytes returns the written prefix of the buffer's storage.
func (b *Buffer) Bytes() []byte { return b.data[:b.pos] }

// Clear resets the buffer to empty without releasing storage.
func (b *Buffer) Clear() { b.pos = 0 }

// UseSpace reserves n bytes at the current position and returns a slice over
// them, advancing pos by n. n may reach into the overhead region; callers
// that do this are responsible for not counting those bytes as used output.
func (b *Buffer) UseSpace(n int) []byte {
	if b.pos+n > len(b.data) {
		panic(fmt.Sprintf("buffer: UseSpace(%d) exceeds total capacity %d at pos %d", n, len(b.data), b.pos))
	}
	s := b.data[b.pos : b.pos+n]
	b.pos += n
	return s
}

// AppendBytes copies src onto the end of the buffer, growing pos. Returns
// the number of bytes actually appended, which may be less than len(src) if
// the overhead region is also exhausted.
func (b *Buffer) AppendBytes(src []byte) int {
	n := copy(b.data[b.pos:], src)
	b.pos += n
	return n
}

// AppendString is a convenience wrapper around AppendBytes for string
// literals such as prefixes and suffixes.
func (b *Buffer) AppendString(s string) int {
	return b.AppendBytes([]byte(s))
}

// ZeroFill zeroes n bytes starting at the current position without
// advancing pos. It is used to pad a partial trailing group up to a full
// group width before it is read by a printer; the overhead region
// guarantees this never runs past the end of storage for n <= 16.
func (b *Buffer) ZeroFill(n int) {
	end := b.pos + n
	if end > len(b.data) {
		end = len(b.data)
	}
	for i := b.pos; i < end; i++ {
		b.data[i] = 0
	}
}

// RetainTail moves the trailing n bytes at the end of the used region down
// to the start of the buffer and resets pos to n. It implements the "tail
// is memmoved to the start before clearing" step of a non-final flush.
func (b *Buffer) RetainTail(n int) {
	if n <= 0 {
		b.Clear()
		return
	}
	copy(b.data[0:n], b.data[b.pos-n:b.pos])
	b.pos = n
}

// PeekUsed returns a read-only view of the first n used bytes.
func (b *Buffer) PeekUsed(n int) []byte {
	if n > b.pos {
		n = b.pos
	}
	return b.data[:n]
}

// Peek returns a view of the first n bytes of storage regardless of pos.
// It is used by the flush engine to read a final zero-filled tail, which
// lives past pos in the overhead region by construction.
func (b *Buffer) Peek(n int) []byte {
	return b.data[:n]
}
