package engine

import "github.com/sirupsen/logrus"

// flushWorkBuffer is the single funnel that moves pending work-buffer bytes
// through the active output printer into the output buffer, applying
// prefix/suffix, and draining to the sink as needed. final is true for the
// terminal flush and for any reformat flush triggered by a new `o` command;
// both behave identically (spec §4.9): the remainder is zero-filled and
// fully emitted, with no tail retained across the boundary.
func (c *Context) flushWorkBuffer(final bool) error {
	if c.Work.IsEmpty() {
		return nil
	}
	c.logf(logrus.Fields{"final": final, "used": c.Work.Used()}, "flushing work buffer")

	if c.output.DataType == TypeBinary {
		c.flushBinary()
		return nil
	}

	if c.output.DataType == TypeString {
		return c.flushString()
	}

	width := c.output.DataWidth
	if width <= 0 {
		width = 1
	}
	used := c.Work.Used()

	var usable int
	if final {
		rem := used % width
		if rem != 0 {
			pad := width - rem
			c.Work.ZeroFill(pad)
			used += pad
		}
		usable = used
	} else {
		usable = used - (used % width)
	}

	printer, err := getStringPrinter(c.output.DataType, width)
	if err != nil {
		c.MarkError(err.(*Error))
		return err
	}

	groupCount := usable / width
	all := c.Work.Peek(usable)
	for i := 0; i < groupCount; i++ {
		group := all[i*width : (i+1)*width]
		if c.output.Prefix != "" {
			c.Output.AppendString(c.output.Prefix)
		}
		if perr := printer(c.Output, group, c.output.Endianness, c.output.TextWidth); perr != nil {
			e := perr.(*Error)
			c.MarkError(e)
			return e
		}
		if c.output.Suffix != "" && i != groupCount-1 {
			c.Output.AppendString(c.output.Suffix)
		}
		c.drainOutputBuffer(false)
	}

	c.retainOrClearWork(used, usable, final)
	return nil
}

// flushBinary implements spec §4.9 step 2: binary output is a verbatim
// (optionally byte-swapped) copy of the work buffer straight to the sink,
// ignoring prefix/suffix entirely, per invariant 2.
func (c *Context) flushBinary() {
	used := c.Work.Used()
	width := c.output.DataWidth
	data := c.Work.PeekUsed(used)
	if width > 1 && isForeignEndian(width, c.output.Endianness) {
		swapped := make([]byte, used)
		for off := 0; off+width <= used; off += width {
			copySwapped(swapped[off:off+width], data[off:off+width])
		}
		c.emit(swapped)
	} else {
		c.emit(data)
	}
	c.Work.Clear()
}

// flushString renders every pending byte through the string printer, which
// consumes a variable number of bytes per call (UTF-8 runs). Prefix/suffix
// are not applied between characters; they only ever decorate fixed-width
// numeric/boolean groups.
func (c *Context) flushString() error {
	used := c.Work.Used()
	all := c.Work.PeekUsed(used)
	i := 0
	for i < len(all) {
		i += printStringGroup(c.Output, all[i:])
		c.drainOutputBuffer(false)
	}
	c.Work.Clear()
	return nil
}

// retainOrClearWork clears the work buffer, memmove-ing any unconsumed tail
// (bytes between usable and used, only possible on a non-final flush) down
// to the start first, per spec §4.9 step 6.
func (c *Context) retainOrClearWork(used, usable int, final bool) {
	if final || usable >= used {
		c.Work.Clear()
		return
	}
	tail := used - usable
	c.Work.RetainTail(tail)
}
