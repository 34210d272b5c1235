package engine

import "strconv"

// extractDataType maps a single grammar TYPE byte to a DataType.
func extractDataType(b byte) (DataType, bool) {
	switch b {
	case 'B':
		return TypeBinary, true
	case 'i':
		return TypeInt, true
	case 'h':
		return TypeHex, true
	case 'o':
		return TypeOctal, true
	case 'b':
		return TypeBoolean, true
	case 'f':
		return TypeFloat, true
	case 'd':
		return TypeDecimal, true
	case 's':
		return TypeString, true
	default:
		return TypeNone, false
	}
}

// verifyDataWidth enforces the per-type minimum width from spec §4.5:
// float >= 2, decimal >= 4, everything else >= 1.
func verifyDataWidth(t DataType, width int) bool {
	return width >= MinWidthFor(t)
}

// typeCommand is the shared shape of `i` and `o` commands: a data type byte
// followed by an optional width, an optional endianness, and (for `o`
// only) an optional trailing decimal print width.
type typeCommand struct {
	dataType   DataType
	width      int
	endianness Endianness
	printWidth int
	hasWidth   bool
}

// parseTypeCommand parses the TYPE WIDTH? ENDIAN? [PRINTWIDTH?] production
// out of tok (which does not include the leading 'i'/'o' command byte).
// allowPrintWidth enables the trailing decimal print-width suffix used only
// by the `o` command.
func parseTypeCommand(tok []byte, allowPrintWidth bool) (typeCommand, *Error) {
	var cmd typeCommand
	if len(tok) == 0 {
		return cmd, newError(ErrCommandSyntax, 0, "missing data type")
	}
	dt, ok := extractDataType(tok[0])
	if !ok {
		return cmd, newError(ErrCommandSyntax, 0, "unrecognized data type %q", tok[0])
	}
	cmd.dataType = dt
	rest := tok[1:]

	// string type takes no width/endianness at all.
	if dt == TypeString {
		return cmd, nil
	}

	width, widthLen, werr := extractWidth(rest)
	if werr != nil {
		return cmd, werr
	}
	cmd.width = width
	cmd.hasWidth = widthLen > 0
	if !cmd.hasWidth {
		return cmd, newError(ErrCommandSyntax, 0, "missing data width")
	}
	if !verifyDataWidth(dt, width) {
		return cmd, newError(ErrCommandSyntax, 0, "width %d too small for type %s", width, dt)
	}
	rest = rest[widthLen:]

	endianRequired := !(width == 1 && dt != TypeBoolean)
	if len(rest) > 0 && (rest[0] == 'l' || rest[0] == 'b') {
		if rest[0] == 'b' {
			cmd.endianness = EndianBig
		} else {
			cmd.endianness = EndianLittle
		}
		rest = rest[1:]
	} else if endianRequired {
		return cmd, newError(ErrCommandSyntax, 0, "missing required endianness for width %d type %s", width, dt)
	} else {
		cmd.endianness = EndianNone
	}

	cmd.printWidth = 1
	if allowPrintWidth && len(rest) > 0 {
		n, perr := strconv.Atoi(string(rest))
		if perr != nil {
			return cmd, newError(ErrCommandSyntax, 0, "invalid print width %q", rest)
		}
		if n < 0 {
			return cmd, newError(ErrCommandSyntax, 0, "print width must be non-negative %q", rest)
		}
		cmd.printWidth = n
	} else if !allowPrintWidth && len(rest) > 0 {
		return cmd, newError(ErrCommandSyntax, 0, "unexpected trailing characters %q", rest)
	}
	return cmd, nil
}

// extractWidth reads the leading width digits (1, 2, 4, 8, or 16) from tok
// and returns the parsed width and how many bytes it occupied.
func extractWidth(tok []byte) (int, int, *Error) {
	if len(tok) == 0 {
		return 0, 0, nil
	}
	if len(tok) >= 2 && tok[0] == '1' && tok[1] == '6' {
		return 16, 2, nil
	}
	switch tok[0] {
	case '1', '2', '4', '8':
		return int(tok[0] - '0'), 1, nil
	default:
		return 0, 0, nil
	}
}

func (c *Context) onInputType(tok []byte) {
	cmd, err := parseTypeCommand(tok, false)
	if err != nil {
		c.MarkError(err)
		return
	}
	c.Input = InputSpec{DataType: cmd.dataType, DataWidth: DataWidth(cmd.width), Endianness: cmd.endianness}
}

func (c *Context) onOutputType(tok []byte) {
	cmd, err := parseTypeCommand(tok, true)
	if err != nil {
		c.MarkError(err)
		return
	}
	if ferr := c.flushWorkBuffer(true); ferr != nil {
		return
	}
	c.output = OutputSpec{
		DataType:   cmd.dataType,
		DataWidth:  cmd.width,
		TextWidth:  cmd.printWidth,
		Endianness: cmd.endianness,
	}
	if cmd.dataType == TypeBinary {
		c.output.Prefix = ""
		c.output.Suffix = ""
		c.output.TextWidth = 0
	}
}

func (c *Context) onPrefix(content []byte) {
	c.output.Prefix = string(content)
}

func (c *Context) onSuffix(content []byte) {
	c.output.Suffix = string(content)
}

// onPreset applies preset 'c' (C-style initializer) or 's' (space
// separated). Presets are expected to follow the `o` command they
// decorate.
func (c *Context) onPreset(b byte) {
	switch b {
	case 'c':
		c.output.Suffix = ", "
		switch c.output.DataType {
		case TypeHex:
			c.output.Prefix = "0x"
		case TypeOctal:
			c.output.Prefix = "0"
		}
	case 's':
		c.output.Suffix = " "
	default:
		c.MarkError(newError(ErrCommandSyntax, 0, "unknown preset %q", b))
	}
}

// onString handles a bare quoted-string data token: its decoded bytes are
// appended to the work buffer directly, bypassing the numeric input-type
// machinery entirely (a quoted string is always taken literally, whatever
// the active input type is).
func (c *Context) onString(decoded []byte) {
	if c.Input.DataType == TypeNone {
		c.MarkError(newError(ErrSemantic, -1, "data token before input type set"))
		return
	}
	c.Work.AppendBytes(decoded)
	c.maybeFlushOnHighWater()
}

// onNumber parses tok under the active input spec and appends the result
// to the work buffer.
func (c *Context) onNumber(tok []byte) {
	if c.Input.DataType == TypeNone {
		c.MarkError(newError(ErrSemantic, -1, "numeric token before input type set"))
		return
	}
	width := int(c.Input.DataWidth)
	switch c.Input.DataType {
	case TypeInt:
		v, err := parseIntLiteral(tok, 10, width)
		if err != nil {
			c.MarkError(newError(ErrLex, -1, "malformed int literal %q", tok))
			return
		}
		c.addUint(v, width, c.Input.Endianness)
	case TypeHex:
		v, err := parseIntLiteral(tok, 16, width)
		if err != nil {
			c.MarkError(newError(ErrLex, -1, "malformed hex literal %q", tok))
			return
		}
		c.addUint(v, width, c.Input.Endianness)
	case TypeOctal:
		v, err := parseIntLiteral(tok, 8, width)
		if err != nil {
			c.MarkError(newError(ErrLex, -1, "malformed octal literal %q", tok))
			return
		}
		c.addUint(v, width, c.Input.Endianness)
	case TypeBoolean:
		v, err := parseIntLiteral(tok, 2, width)
		if err != nil {
			c.MarkError(newError(ErrLex, -1, "malformed boolean literal %q", tok))
			return
		}
		c.addUint(v, width, c.Input.Endianness)
	case TypeFloat:
		v, err := parseFloatLiteral(tok, width)
		if err != nil {
			c.MarkError(newError(ErrLex, -1, "malformed float literal %q", tok))
			return
		}
		c.addFloat(v, width, c.Input.Endianness)
	case TypeDecimal:
		if _, err := parseDecimalLiteral(tok); err != nil {
			c.MarkError(newError(ErrLex, -1, "malformed decimal literal %q", tok))
			return
		}
		c.MarkError(newError(ErrUnsupported, -1, "decimal input is not implemented"))
		return
	case TypeBinary:
		c.MarkError(newError(ErrSemantic, -1, "numeric token not valid under binary input type"))
		return
	default:
		c.MarkError(newError(ErrSemantic, -1, "numeric token under unsupported input type %s", c.Input.DataType))
		return
	}
	c.maybeFlushOnHighWater()
}

func (c *Context) maybeFlushOnHighWater() {
	if c.Work.IsHighWater() {
		c.flushWorkBuffer(false)
	}
}
