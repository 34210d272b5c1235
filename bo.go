// Package bo implements a byte-oriented data translator: a streaming
// engine that reads commands and numeric/string tokens from chunked input,
// interprets each token under a caller-specified input format, and emits
// each resulting value under a caller-specified output format.
//
// The package exposes exactly three entry points, mirroring the reference
// embedding contract: NewContext, (*Context).Process, and
// (*Context).FlushAndDestroy.
package bo

import (
	"github.com/sirupsen/logrus"

	"github.com/cruxbyte/bo/internal/engine"
)

// SegmentKind tells Process whether more chunks are coming for this
// translation.
type SegmentKind = engine.SegmentKind

const (
	// Stream means more chunks will follow a truncated token pauses
	// rather than errors.
	Stream = engine.Stream
	// Last means this is the final chunk; a truncated token is an error.
	Last = engine.Last
)

// OutputFunc receives formatted output bytes. Returning false tells the
// engine to stop and enter the error state.
type OutputFunc = engine.OutputFunc

// ErrorFunc is called at most once per distinct error.
type ErrorFunc = engine.ErrorFunc

// Context is an opaque translation handle. It is not safe for concurrent
// use; the caller must serialize all calls on one Context.
type Context struct {
	eng *engine.Context
}

type engineOptions struct {
	workBufferSize        int
	workBufferOverhead    int
	outputBufferSize      int
	outputBufferOverhead  int
	logger                *logrus.Logger
}

func defaultOptions() engineOptions {
	return engineOptions{
		workBufferSize:       engine.DefaultWorkBufferSize,
		workBufferOverhead:   engine.DefaultWorkBufferOverhead,
		outputBufferSize:     engine.DefaultOutputBufferSize,
		outputBufferOverhead: engine.DefaultOutputBufferOverhead,
	}
}

// Option configures a Context at construction time. Options follow the
// chainable-clone shape used throughout this module's ambient
// configuration: each With* function returns an Option that mutates a
// private copy of the engine's defaults, never the caller's arguments.
type Option func(*engineOptions)

// WithWorkBufferSize overrides the work buffer's usable capacity in bytes.
// The default is 1600, taken from the reference implementation.
func WithWorkBufferSize(n int) Option {
	return func(o *engineOptions) { o.workBufferSize = n }
}

// WithOutputBufferSize overrides the output buffer's usable capacity in
// bytes. The default is 16000.
func WithOutputBufferSize(n int) Option {
	return func(o *engineOptions) { o.outputBufferSize = n }
}

// WithLogger attaches a logrus.Logger that receives structured Debug
// entries at each meaningful engine state transition (context creation,
// flush, error). A nil logger (the default) means no logging, mirroring
// the reference library's BO_ENABLE_LOGGING compile-time switch.
func WithLogger(log *logrus.Logger) Option {
	return func(o *engineOptions) { o.logger = log }
}

// NewContext allocates a new translation context. userData is passed back
// unmodified to onOutput and onError.
func NewContext(userData any, onOutput OutputFunc, onError ErrorFunc, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	eng := engine.New(
		o.workBufferSize, o.workBufferOverhead,
		o.outputBufferSize, o.outputBufferOverhead,
		userData, onOutput, onError, o.logger,
	)
	return &Context{eng: eng}
}

// Process drives the lexer/parser over one chunk, returning the
// unconsumed suffix of chunk. The caller must copy this suffix to the head
// of its next buffer and refill behind it before calling Process again.
// kind distinguishes a mid-stream segment (a truncated token pauses) from
// the terminal segment (a truncated token is an error). Process returns a
// nil error and a non-nil unread slice in the ordinary case; it returns a
// non-nil error only on an unrecoverable failure.
func (c *Context) Process(chunk []byte, kind SegmentKind) ([]byte, error) {
	return c.eng.Process(chunk, kind)
}

// FlushAndDestroy performs a final flush, drains the output buffer, and
// releases the context's resources. It is always safe to call, even after
// an error, and returns whether the translation as a whole succeeded.
func (c *Context) FlushAndDestroy() bool {
	return c.eng.FlushAndDestroy()
}
