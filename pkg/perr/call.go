package perr

import (
	"errors"
	"fmt"
)

// Channel is the native error-stack capability the call-wrap primitive
// drains. The native adapter implements it; passing it explicitly keeps all
// ambient-state reads confined to that adapter.
//
// A Channel belongs to one logical thread of execution. Nested Call
// invocations on the same channel are safe (each captures its own
// checkpoint), but a channel must not be shared across goroutines and only
// one drain may be in progress at a time.
type Channel interface {
	// Depth returns the current number of recorded frames.
	Depth() int

	// FramesSince returns the frames appended after the given checkpoint,
	// in chronological order, oldest first.
	FramesSince(depth int) []Frame

	// Acknowledge truncates the stack back to the given checkpoint,
	// marking the drained frames as consumed.
	Acknowledge(depth int)
}

// Call invokes fn with the channel checkpointed. If fn left the native error
// stack where it found it, the returned value passes through untouched. If
// new frames appeared, they are drained in chronological order, acknowledged
// so no outer caller re-observes them, and converted into the typed error
// selected by the most recent frame's code.
//
// Either way, the channel's depth after Call equals the checkpoint: success
// leaves the stack byte-identical, failure consumes exactly the new frames.
func Call[T any](ch Channel, fn func() T) (T, error) {
	mark := ch.Depth()
	v := fn()
	if ch.Depth() == mark {
		return v, nil
	}
	frames := ch.FramesSince(mark)
	ch.Acknowledge(mark)
	var zero T
	return zero, translate(frames)
}

// Call0 is Call for native functions with no result.
func Call0(ch Channel, fn func()) error {
	_, err := Call(ch, func() struct{} {
		fn()
		return struct{}{}
	})
	return err
}

// translate builds the typed error for a drained frame sequence. The most
// recent frame's code picks the kind; the whole sequence becomes the trace.
// A code outside the native enum means the translation table itself is
// broken, so the result is a plain error rather than a downgraded *Error.
func translate(frames []Frame) error {
	if len(frames) == 0 {
		return errors.New("perr: error stack advanced but drain produced no frames")
	}
	last := frames[len(frames)-1]
	if !last.Code.known() {
		return fmt.Errorf("perr: native error code %d not in translation table", int(last.Code))
	}
	return newError(last.Code, frames, nil)
}
