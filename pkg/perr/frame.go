package perr

import "fmt"

// Frame is an immutable snapshot of one native error event: the failure
// code, where it was raised, and the human-readable message. Frames are
// produced only by draining the native error stack and are never mutated
// after construction.
type Frame struct {
	Code     Code
	Function string
	File     string
	Line     int
	Message  string
}

// String renders the frame as a single line of the error trace.
func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d): [%s] %s", f.Function, f.File, f.Line, f.Code, f.Message)
}
