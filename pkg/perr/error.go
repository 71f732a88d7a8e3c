package perr

import (
	"fmt"
	"strings"
)

// Error is a native library failure carrying its full chronological frame
// history, oldest first. The trace is never empty. The error's code is the
// code of the most recent frame at construction time, so a handler can match
// a specific kind with errors.Is against the package sentinels while
// errors.As(&target) with target *Error catches any library failure.
type Error struct {
	code    Code
	frames  []Frame
	display string
	cause   *Error
}

// Per-kind sentinels for errors.Is. Each carries a single synthetic frame so
// the non-empty-trace invariant holds even for sentinels.
var (
	NullInput        = sentinel(CodeNullInput)
	IllegalInput     = sentinel(CodeIllegalInput)
	IllegalOutput    = sentinel(CodeIllegalOutput)
	FileNotFound     = sentinel(CodeFileNotFound)
	TypeMismatch     = sentinel(CodeTypeMismatch)
	InvalidType      = sentinel(CodeInvalidType)
	DataNotFound     = sentinel(CodeDataNotFound)
	AccessOutOfRange = sentinel(CodeAccessOutOfRange)
	UnsupportedMode  = sentinel(CodeUnsupportedMode)
	DivisionByZero   = sentinel(CodeDivisionByZero)
	NoWCS            = sentinel(CodeNoWCS)
	Unspecified      = sentinel(CodeUnspecified)
)

func sentinel(c Code) *Error {
	return newError(c, []Frame{{Code: c, Message: c.String()}}, nil)
}

// newError builds an Error over a copy of frames. The display string is
// composed once here; frames must be non-empty and chronological.
func newError(code Code, frames []Frame, cause *Error) *Error {
	trace := make([]Frame, len(frames))
	copy(trace, frames)
	return &Error{
		code:    code,
		frames:  trace,
		display: buildDisplay(code, trace),
		cause:   cause,
	}
}

// buildDisplay renders the full trace, one frame per line, most recent last.
func buildDisplay(code Code, frames []Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "perseid: %s: %s", code, frames[len(frames)-1].Message)
	for i, f := range frames {
		fmt.Fprintf(&b, "\n  #%d %s", i+1, f)
	}
	return b.String()
}

// New builds an Error from a single frame raised by the wrapper layer
// itself, without a native drain. The frame's code selects the kind.
func New(frame Frame) *Error {
	return newError(frame.Code, []Frame{frame}, nil)
}

// Chain builds a new Error in response to cause: the resulting trace is the
// cause's full history followed by the new context frame, so the report
// reads oldest-cause-first, newest-context-last. The new frame's code
// selects the kind, and Unwrap exposes the cause.
func Chain(cause *Error, frame Frame) *Error {
	frames := append(cause.Trace(), frame)
	return newError(frame.Code, frames, cause)
}

// Error returns the multi-line display string composed at construction.
func (e *Error) Error() string {
	return e.display
}

// Code returns the native error code that selected this error's kind.
func (e *Error) Code() Code {
	return e.code
}

// Last returns the most recent frame.
func (e *Error) Last() Frame {
	return e.frames[len(e.frames)-1]
}

// Trace returns a copy of the full chronological frame history, oldest
// first.
func (e *Error) Trace() []Frame {
	trace := make([]Frame, len(e.frames))
	copy(trace, e.frames)
	return trace
}

// Unwrap returns the causal parent error, if this error was chained.
func (e *Error) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// Is matches any *Error with the same code, so
// errors.Is(err, perr.IllegalInput) selects a kind regardless of trace.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}
