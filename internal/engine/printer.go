package engine

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cruxbyte/bo/internal/buffer"
)

// printerFunc renders one group of raw work-buffer bytes (exactly
// len(group) == the active output width, except the string printer which
// consumes a variable number of bytes) into the output buffer.
type printerFunc func(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error

type printerKey struct {
	dataType DataType
	width    int
}

var printerTable map[printerKey]printerFunc

func init() {
	printerTable = make(map[printerKey]printerFunc)
	for _, w := range []int{1, 2, 4, 8, 16} {
		printerTable[printerKey{TypeInt, w}] = printInt
		printerTable[printerKey{TypeHex, w}] = printHex
		printerTable[printerKey{TypeOctal, w}] = printOctal
		printerTable[printerKey{TypeBoolean, w}] = printBoolean
	}
	printerTable[printerKey{TypeFloat, 4}] = printFloat
	printerTable[printerKey{TypeFloat, 8}] = printFloat
	printerTable[printerKey{TypeDecimal, 4}] = printDecimalUnsupported
	printerTable[printerKey{TypeDecimal, 8}] = printDecimalUnsupported
	printerTable[printerKey{TypeDecimal, 16}] = printDecimalUnsupported
}

// getStringPrinter looks up the printer for (dataType, width). A missing
// tuple (e.g. a 2- or 16-byte float, which the grammar accepts) reports an
// unsupported error, per spec §4.8.
func getStringPrinter(dataType DataType, width int) (printerFunc, error) {
	p, ok := printerTable[printerKey{dataType, width}]
	if !ok {
		return nil, newError(ErrUnsupported, -1, "no printer for type %s width %d", dataType, width)
	}
	return p, nil
}

// groupToUint reinterprets a raw byte group as an unsigned integer under
// the given output endianness. Used by the integer-family printers
// (int/hex/octal up to width 8); width 16 is handled directly by
// callers via big.Int.
func groupToUint(group []byte, endian Endianness) uint64 {
	order := endianToByteOrder(endian)
	switch len(group) {
	case 1:
		return uint64(group[0])
	case 2:
		return uint64(order.Uint16(group))
	case 4:
		return uint64(order.Uint32(group))
	case 8:
		return order.Uint64(group)
	default:
		return 0
	}
}

func groupToBigInt(group []byte, endian Endianness) *big.Int {
	ordered := make([]byte, len(group))
	if endian == EndianBig {
		copy(ordered, group)
	} else {
		copySwapped(ordered, group)
	}
	return new(big.Int).SetBytes(ordered)
}

func printInt(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error {
	if len(group) == 16 {
		v := groupToBigInt(group, endian)
		dst.AppendString(fmt.Sprintf("%0*d", printWidth, v))
		return nil
	}
	u := groupToUint(group, endian)
	signed := signExtend(u, len(group)*8)
	dst.AppendString(fmt.Sprintf("%0*d", printWidth, signed))
	return nil
}

func printHex(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error {
	if len(group) == 16 {
		v := groupToBigInt(group, endian)
		dst.AppendString(fmt.Sprintf("%0*x", printWidth, v))
		return nil
	}
	dst.AppendString(fmt.Sprintf("%0*x", printWidth, groupToUint(group, endian)))
	return nil
}

func printOctal(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error {
	if len(group) == 16 {
		v := groupToBigInt(group, endian)
		dst.AppendString(fmt.Sprintf("%0*o", printWidth, v))
		return nil
	}
	dst.AppendString(fmt.Sprintf("%0*o", printWidth, groupToUint(group, endian)))
	return nil
}

// printBoolean emits width_in_bits binary digits. For big-endian output,
// bytes are walked in stored order and each byte's bits are emitted MSB
// first; for little-endian, bytes are walked in stored order and each
// byte's bits are emitted LSB first. print_width narrower than the bit
// width is ignored: every bit is always emitted (spec §9 Open Question 4).
func printBoolean(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error {
	buf := make([]byte, 0, len(group)*8)
	for _, b := range group {
		if endian == EndianBig {
			for bit := 7; bit >= 0; bit-- {
				buf = append(buf, bitChar(b, bit))
			}
		} else {
			for bit := 0; bit <= 7; bit++ {
				buf = append(buf, bitChar(b, bit))
			}
		}
	}
	dst.AppendBytes(buf)
	return nil
}

func bitChar(b byte, bit int) byte {
	if b&(1<<uint(bit)) != 0 {
		return '1'
	}
	return '0'
}

func printFloat(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error {
	order := endianToByteOrder(endian)
	var v float64
	switch len(group) {
	case 4:
		v = float64(math.Float32frombits(order.Uint32(group)))
	case 8:
		v = math.Float64frombits(order.Uint64(group))
	default:
		return newError(ErrUnsupported, -1, "float width %d not implemented", len(group))
	}
	dst.AppendString(fmt.Sprintf("%.*f", printWidth, v))
	return nil
}

// printDecimalUnsupported always fails: decimal byte-encoding is not
// implemented in the reference library and spec §9 Open Question 3
// explicitly permits returning an unsupported error here while still
// parsing the literal grammar.
func printDecimalUnsupported(dst *buffer.Buffer, group []byte, endian Endianness, printWidth int) error {
	return newError(ErrUnsupported, -1, "decimal output is not implemented")
}

func signExtend(u uint64, bits int) int64 {
	if bits >= 64 {
		return int64(u)
	}
	shift := uint(64 - bits)
	return int64(u<<shift) >> shift
}
