package engine

import "encoding/binary"

// nativeOrder is resolved once via the standard library's runtime-detected
// native byte order, the same accessor the teacher's own internal/u32 and
// internal/u64 packages build on for packed little/big-endian access.
var nativeOrder = binary.NativeEndian

func endianToByteOrder(e Endianness) binary.ByteOrder {
	switch e {
	case EndianBig:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}

// isForeignEndian reports whether a (width, endianness) pair requires a
// byte swap relative to the work buffer's canonical little-endian storage.
// Width-1 values are never swapped; endianness is irrelevant to a single
// byte.
func isForeignEndian(width int, e Endianness) bool {
	if width <= 1 {
		return false
	}
	return e == EndianBig
}

// copySwapped reverses the bytes of src into dst. len(dst) must equal
// len(src). Every multi-byte load/store in this engine that crosses an
// endianness boundary goes through this function rather than casting a
// byte slice to a wider integer type.
func copySwapped(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}

// copyOrSwap writes src into dst, reversing the byte order first if swap is
// true. len(dst) must equal len(src).
func copyOrSwap(dst, src []byte, swap bool) {
	if swap {
		copySwapped(dst, src)
	} else {
		copy(dst, src)
	}
}
