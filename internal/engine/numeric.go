package engine

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// parseIntLiteral parses tok as a signed integer in the given base and
// returns the value wrapped to an unsigned integer of widthBytes bytes
// (two's complement), per spec: negative values under a non-decimal input
// type wrap to the unsigned representation of the declared width.
func parseIntLiteral(tok []byte, base int, widthBytes int) (uint64, error) {
	v, err := strconv.ParseInt(string(tok), base, 64)
	if err != nil {
		// Fall back to unsigned parse for values that only fit as
		// unsigned 64-bit (e.g. boolean/hex literals using the full
		// width of a uint64).
		if uv, uerr := strconv.ParseUint(string(tok), base, 64); uerr == nil {
			return maskToWidth(uv, widthBytes), nil
		}
		return 0, err
	}
	return maskToWidth(uint64(v), widthBytes), nil
}

// maskToWidth truncates value to the low widthBytes*8 bits. For
// widthBytes >= 8 the full 64 bits are kept (the engine's widest native
// integer path); width 16 is handled at the byte-adder level by
// sign/zero-extending into two 8-byte halves.
func maskToWidth(value uint64, widthBytes int) uint64 {
	if widthBytes >= 8 {
		return value
	}
	bits := uint(widthBytes * 8)
	mask := uint64(1)<<bits - 1
	return value & mask
}

// parseFloatLiteral parses tok as an IEEE-754 float of width 4 or 8 bytes.
func parseFloatLiteral(tok []byte, widthBytes int) (float64, error) {
	bitSize := 64
	if widthBytes == 4 {
		bitSize = 32
	}
	v, err := strconv.ParseFloat(string(tok), bitSize)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parseDecimalLiteral validates tok as a decimal literal using
// shopspring/decimal's parser, satisfying the grammar's requirement that a
// `d`-typed number token still parse even though byte-encoding is
// unsupported (spec §9 Open Question 3).
func parseDecimalLiteral(tok []byte) (decimal.Decimal, error) {
	return decimal.NewFromString(string(tok))
}

// float32Bits and float64Bits isolate the IEEE-754 bit-pattern conversion
// so the adder can hand fixed-width byte groups to the endianness layer.
func float32Bits(v float64) uint32 { return math.Float32bits(float32(v)) }
func float64Bits(v float64) uint64 { return math.Float64bits(v) }
