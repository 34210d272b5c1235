package engine

// addUint appends a widthBytes-byte encoding of value to the work buffer,
// honoring the active input endianness. Width 16 zero-extends the value
// into the low 8 bytes in the selected order and the high 8 bytes as zero.
func (c *Context) addUint(value uint64, widthBytes int, e Endianness) {
	switch widthBytes {
	case 1:
		c.Work.UseSpace(1)[0] = byte(value)
	case 2:
		endianToByteOrder(e).PutUint16(c.Work.UseSpace(2), uint16(value))
	case 4:
		endianToByteOrder(e).PutUint32(c.Work.UseSpace(4), uint32(value))
	case 8:
		endianToByteOrder(e).PutUint64(c.Work.UseSpace(8), value)
	case 16:
		dst := c.Work.UseSpace(16)
		lo := make([]byte, 8)
		endianToByteOrder(e).PutUint64(lo, value)
		if e == EndianBig {
			// value occupies the low-order (last) 8 bytes when
			// printed big-endian.
			copy(dst[0:8], make([]byte, 8))
			copy(dst[8:16], lo)
		} else {
			copy(dst[0:8], lo)
			copy(dst[8:16], make([]byte, 8))
		}
	}
}

// addFloat appends an IEEE-754 float of widthBytes bytes (4 or 8) to the
// work buffer, honoring the active input endianness.
func (c *Context) addFloat(value float64, widthBytes int, e Endianness) {
	switch widthBytes {
	case 4:
		endianToByteOrder(e).PutUint32(c.Work.UseSpace(4), float32Bits(value))
	case 8:
		endianToByteOrder(e).PutUint64(c.Work.UseSpace(8), float64Bits(value))
	}
}

// addRawBytes copies src directly into the work buffer, swapping per
// widthBytes groups first if the caller's data arrives in non-native
// binary-input endianness (used by the binary input-type fast path, which
// bypasses the lexer/parser entirely per spec §4.4).
func (c *Context) addRawBytes(src []byte, widthBytes int, swap bool) {
	if !swap || widthBytes <= 1 {
		c.Work.AppendBytes(src)
		return
	}
	for off := 0; off+widthBytes <= len(src); off += widthBytes {
		dst := c.Work.UseSpace(widthBytes)
		copySwapped(dst, src[off:off+widthBytes])
	}
}
