// Package engine implements the bo streaming translation engine: the
// chunk-tolerant lexer, the type-directed parser, the work-buffer pipeline,
// and the endianness-aware string printers described by the translator's
// design. The root bo package is a thin public wrapper over Context.
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/cruxbyte/bo/internal/buffer"
)

// Default buffer sizes, carried over unchanged from the reference
// implementation's own constants.
const (
	DefaultWorkBufferSize       = 1600
	DefaultWorkBufferOverhead   = 32
	DefaultOutputBufferSize     = DefaultWorkBufferSize * 10
	DefaultOutputBufferOverhead = 100
)

// Context holds all state for one translation: the active input/output
// formats, the work and output buffers, the callbacks, and the parser's
// error/continuation flags. It is not safe for concurrent use.
type Context struct {
	Work   *buffer.Buffer
	Output *buffer.Buffer

	Input  InputSpec
	output OutputSpec

	onOutput OutputFunc
	onError  ErrorFunc
	userData any

	segmentKind        SegmentKind
	isAtEndOfInput     bool
	isErrorCondition   bool
	parseShouldContinue bool

	// spanningString is true when a previous Process call paused in the
	// middle of a quoted string literal; the next call resumes directly
	// in string-body mode without expecting a re-issued opening quote.
	spanningString bool
	// pendingKind records what a spanning (or in-progress) quoted string
	// will become once its closing quote arrives.
	pendingKind pendingStringKind
	// stringAccum accumulates the decoded bytes of a quoted string,
	// across chunk boundaries if necessary.
	stringAccum []byte

	log *logrus.Logger
}

// New allocates a context with the given buffer sizes and callbacks.
func New(workSize, workOverhead, outputSize, outputOverhead int, userData any, onOutput OutputFunc, onError ErrorFunc, log *logrus.Logger) *Context {
	c := &Context{
		Work:                buffer.New(workSize, workOverhead),
		Output:              buffer.New(outputSize, outputOverhead),
		onOutput:            onOutput,
		onError:             onError,
		userData:            userData,
		parseShouldContinue: true,
		log:                 log,
	}
	c.logf(logrus.Fields{"workSize": workSize, "outputSize": outputSize}, "context created")
	return c
}

func (c *Context) logf(fields logrus.Fields, msg string) {
	if c.log == nil {
		return
	}
	c.log.WithFields(fields).Debug(msg)
}

// ShouldContinue reports whether the parser is still accepting input.
func (c *Context) ShouldContinue() bool { return c.parseShouldContinue }

// IsErrorCondition reports whether an unrecoverable error has occurred.
func (c *Context) IsErrorCondition() bool { return c.isErrorCondition }

// MarkError records the error condition, disables further parsing, and
// notifies the caller's error callback exactly once, per the translator's
// error policy (spec §7): on_error fires at most once per error event.
func (c *Context) MarkError(err *Error) {
	if c.isErrorCondition {
		return
	}
	c.isErrorCondition = true
	c.parseShouldContinue = false
	c.logf(logrus.Fields{"kind": err.Kind, "offset": err.Offset}, err.Message)
	if c.onError != nil {
		c.onError(c.userData, err)
	}
}

// emit hands a block of output bytes (the drained output buffer, or the
// work buffer under binary output) to the caller's output callback. A false
// return from on_output becomes a sink error and stops the engine.
func (c *Context) emit(data []byte) {
	if c.onOutput == nil {
		return
	}
	if !c.onOutput(c.userData, data) {
		c.MarkError(newError(ErrSink, -1, "on_output returned false"))
	}
}

// drainOutputBuffer flushes the output buffer to the sink if it has
// reached its high water mark, or unconditionally when force is true (used
// by the final flush).
func (c *Context) drainOutputBuffer(force bool) {
	if c.Output.IsEmpty() {
		return
	}
	if force || c.Output.IsHighWater() {
		c.emit(c.Output.Bytes())
		c.Output.Clear()
	}
}

// FlushAndDestroy performs a final flush, drains the output buffer, and
// releases the context's buffers. It is always safe to call, even after an
// error, and always returns whether the translation as a whole succeeded.
//
// The reference driver and library disagree on whether an already-errored
// context should still drain its output buffer; this implementation always
// drains first and reports failure afterward.
func (c *Context) FlushAndDestroy() bool {
	if c.Work == nil {
		// Already destroyed: a repeated call only reports the outcome.
		return !c.isErrorCondition
	}
	hadError := c.isErrorCondition
	// Clear the error flag just long enough to allow one last flush to
	// run, matching the "drain, then report false" resolution.
	c.isErrorCondition = false
	err := c.flushWorkBuffer(true)
	if err != nil {
		hadError = true
	}
	c.drainOutputBuffer(true)
	if c.isErrorCondition {
		// A sink failure during the final flush or drain.
		hadError = true
	}
	c.isErrorCondition = hadError
	c.Work = nil
	c.Output = nil
	c.logf(logrus.Fields{"hadError": hadError}, "context destroyed")
	return !hadError
}
