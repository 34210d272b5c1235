package engine

import (
	"github.com/cruxbyte/bo/internal/charclass"
	"github.com/cruxbyte/bo/internal/strescape"
)

// pendingStringKind records what a spanning quoted string will become once
// its closing quote arrives.
type pendingStringKind int

const (
	pendingNone pendingStringKind = iota
	pendingData
	pendingPrefix
	pendingSuffix
)

// Process drives the lexer/parser over one chunk, per spec §4.4's
// contract: it returns the unconsumed suffix of chunk, which the caller
// must prepend to its next refill. kind distinguishes a mid-stream segment
// (truncation pauses) from the terminal segment (truncation errors).
func (c *Context) Process(chunk []byte, kind SegmentKind) ([]byte, error) {
	if !c.parseShouldContinue {
		return chunk, nil
	}
	c.segmentKind = kind
	c.isAtEndOfInput = kind == Last

	if c.Input.DataType == TypeBinary && !c.spanningString {
		return c.processBinary(chunk)
	}

	pos := 0

	if c.spanningString {
		endIdx, closed, serr := c.decodeStringChunk(chunk, kind)
		if serr != nil {
			c.MarkError(serr)
			return chunk[endIdx:], serr
		}
		if !closed {
			return chunk[endIdx:], nil
		}
		c.finishString()
		pos = endIdx
		if !c.parseShouldContinue {
			return chunk[pos:], nil
		}
	}

	for {
		for pos < len(chunk) && charclass.Is(chunk[pos], charclass.Whitespace) {
			pos++
		}
		if pos >= len(chunk) {
			return chunk[pos:], nil
		}

		start := pos
		b := chunk[pos]

		switch {
		case b == '"':
			stop, closed, err := c.enterString(chunk, pos+1, kind, pendingData)
			if err != nil {
				c.MarkError(err)
				return chunk[stop:], err
			}
			if !closed {
				return chunk[stop:], nil // need more
			}
			pos = stop

		case b == 'i':
			end, truncated := scanToken(chunk, pos)
			if truncated {
				if kind == Last {
					err := newError(ErrCommandSyntax, start, "truncated input-type command")
					c.MarkError(err)
					return chunk[start:], err
				}
				return chunk[start:], nil
			}
			c.onInputType(chunk[pos+1 : end])
			if !c.parseShouldContinue {
				return chunk[end:], nil
			}
			pos = end

		case b == 'o':
			end, truncated := scanToken(chunk, pos)
			if truncated {
				if kind == Last {
					err := newError(ErrCommandSyntax, start, "truncated output-type command")
					c.MarkError(err)
					return chunk[start:], err
				}
				return chunk[start:], nil
			}
			c.onOutputType(chunk[pos+1 : end])
			if !c.parseShouldContinue {
				return chunk[end:], nil
			}
			pos = end

		case b == 'p' || b == 's':
			if pos+1 >= len(chunk) {
				if kind == Last {
					err := newError(ErrCommandSyntax, start, "truncated prefix/suffix command")
					c.MarkError(err)
					return chunk[start:], err
				}
				return chunk[start:], nil
			}
			if chunk[pos+1] != '"' {
				err := newError(ErrCommandSyntax, start, "prefix/suffix command must be followed by a quoted string")
				c.MarkError(err)
				return chunk[start:], err
			}
			kindWanted := pendingPrefix
			if b == 's' {
				kindWanted = pendingSuffix
			}
			stop, closed, err := c.enterString(chunk, pos+2, kind, kindWanted)
			if err != nil {
				c.MarkError(err)
				return chunk[stop:], err
			}
			if !closed {
				return chunk[stop:], nil
			}
			pos = stop

		case b == 'P':
			if pos+1 >= len(chunk) {
				if kind == Last {
					err := newError(ErrCommandSyntax, start, "truncated preset command")
					c.MarkError(err)
					return chunk[start:], err
				}
				return chunk[start:], nil
			}
			c.onPreset(chunk[pos+1])
			if !c.parseShouldContinue {
				return chunk[pos+2:], nil
			}
			pos += 2

		case charclass.Is(b, charclass.Base10) || b == '+' || b == '-' || b == '.' ||
			(c.Input.DataType == TypeHex && charclass.Is(b, charclass.Base16)):
			// A number literal that runs to the end of the last chunk is
			// terminated by the end of input rather than truncated.
			end, truncated := scanToken(chunk, pos)
			if truncated && kind != Last {
				return chunk[start:], nil
			}
			c.onNumber(chunk[pos:end])
			if !c.parseShouldContinue {
				return chunk[end:], nil
			}
			pos = end

		default:
			err := newError(ErrLex, start, "unrecognized token starting with %q", b)
			c.MarkError(err)
			return chunk[start:], err
		}
	}
}

// scanToken finds the end of a whitespace-delimited token starting at
// start. It returns the index of the terminating whitespace byte, or
// truncated=true if the chunk ends before any whitespace is found.
func scanToken(chunk []byte, start int) (end int, truncated bool) {
	i := start
	for i < len(chunk) {
		if charclass.Is(chunk[i], charclass.Whitespace) {
			return i, false
		}
		i++
	}
	return i, true
}

// enterString begins decoding a quoted string body starting at
// bodyStart (just past the opening quote). It returns an absolute index
// into chunk: if closed, the index just past the closing quote; otherwise
// the index of the first byte not yet consumed (stream mode only, with
// spanningString left set so the next Process call resumes the body
// directly with no opening quote expected).
func (c *Context) enterString(chunk []byte, bodyStart int, kind SegmentKind, want pendingStringKind) (stop int, closed bool, err *Error) {
	endIdx, isClosed, derr := c.decodeStringChunk(chunk[bodyStart:], kind)
	if derr != nil {
		derr.Offset += bodyStart
		return bodyStart + endIdx, false, derr
	}
	if !isClosed {
		c.spanningString = true
		c.pendingKind = want
		return bodyStart + endIdx, false, nil
	}
	c.pendingKind = want
	c.finishString()
	return bodyStart + endIdx, true, nil
}

// decodeStringChunk decodes as much of a quoted string body as appears in
// data, appending decoded bytes to c.stringAccum. It returns the index in
// data just past the closing quote (closed=true), or the index it stopped
// at needing more data (closed=false, stream mode only — last mode reports
// an error instead of returning closed=false).
func (c *Context) decodeStringChunk(data []byte, kind SegmentKind) (endIdx int, closed bool, err *Error) {
	i := 0
	for i < len(data) {
		switch data[i] {
		case '"':
			return i + 1, true, nil
		case '\\':
			consumed, out, outcome := strescape.DecodeOne(data[i:])
			switch outcome {
			case strescape.OK:
				c.stringAccum = append(c.stringAccum, out...)
				i += consumed
			case strescape.Incomplete:
				if kind == Last {
					return i, false, newError(ErrString, i, "truncated escape sequence at end of input")
				}
				return i, false, nil
			case strescape.Invalid:
				return i, false, newError(ErrString, i, "invalid escape sequence")
			}
		default:
			c.stringAccum = append(c.stringAccum, data[i])
			i++
		}
	}
	if kind == Last {
		return i, false, newError(ErrString, i, "unterminated string literal")
	}
	return i, false, nil
}

// finishString dispatches a fully-decoded string's accumulated bytes
// according to what it was parsed for, then resets string-parsing state.
func (c *Context) finishString() {
	content := c.stringAccum
	c.stringAccum = nil
	c.spanningString = false
	switch c.pendingKind {
	case pendingPrefix:
		c.onPrefix(content)
	case pendingSuffix:
		c.onSuffix(content)
	default:
		c.onString(content)
	}
	c.pendingKind = pendingNone
}

// processBinary implements the binary input-type fast path (spec §4.4):
// the lexer degenerates and the whole chunk is handed to the work buffer
// as raw bytes, swapped per input width if the active endianness differs
// from how the caller's bytes are naturally ordered.
func (c *Context) processBinary(chunk []byte) ([]byte, error) {
	width := int(c.Input.DataWidth)
	if width < 1 {
		width = 1
	}
	swap := isForeignEndian(width, c.Input.Endianness)
	usable := len(chunk) - (len(chunk) % width)
	if usable > 0 {
		c.addRawBytes(chunk[:usable], width, swap)
		c.maybeFlushOnHighWater()
	}
	return chunk[usable:], nil
}
