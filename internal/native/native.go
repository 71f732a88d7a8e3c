// Package native is the adapter over the perseid native core. It owns the
// two pieces of ambient state the C ABI exposes — the per-thread error stack
// and the opaque handle table — and is the only package that touches either
// directly. Entity wrappers in pkg/perseid drive it exclusively through
// handles and the perr call-wrap primitive.
//
// Because this module ships as pure Go, the native core itself is realized
// here as a handle-table simulation of the C ABI: handles are opaque indexes
// into a registry owned by this boundary layer, and every registry entry
// carries a capability token proving exclusive ownership.
package native

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

// State holds one logical thread's error stack and handle registry. It is
// the Go rendering of the native library's thread-local error state: one
// State per goroutine, never shared. State implements perr.Channel so the
// call-wrap primitive can checkpoint and drain it.
type State struct {
	id      uuid.UUID
	stack   []perr.Frame
	entries map[Handle]*entry
	next    Handle
}

// NewState creates an empty native state for the calling goroutine.
func NewState() *State {
	return &State{
		id:      newUUID(),
		entries: make(map[Handle]*entry),
		next:    1,
	}
}

// ID returns the state's unique identity.
func (s *State) ID() uuid.UUID {
	return s.id
}

// Depth returns the number of recorded error frames.
func (s *State) Depth() int {
	return len(s.stack)
}

// FramesSince returns a copy of the frames recorded after the checkpoint,
// oldest first.
func (s *State) FramesSince(depth int) []perr.Frame {
	if depth < 0 {
		depth = 0
	}
	if depth > len(s.stack) {
		depth = len(s.stack)
	}
	out := make([]perr.Frame, len(s.stack)-depth)
	copy(out, s.stack[depth:])
	return out
}

// Acknowledge truncates the stack back to the checkpoint, consuming the
// drained frames.
func (s *State) Acknowledge(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth > len(s.stack) {
		return
	}
	s.stack = s.stack[:depth]
}

// fail records an error frame for the named native function. The file and
// line are the raise site inside this adapter.
func (s *State) fail(function string, code perr.Code, format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	s.stack = append(s.stack, perr.Frame{
		Code:     code,
		Function: function,
		File:     filepath.Base(file),
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// newUUID generates a UUID v7, falling back to v4 if v7 generation fails.
func newUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
