// Package perseid wraps the native perseid data-processing library behind
// value-semantics Go types. Every wrapper instance exclusively owns one
// native handle: Clone deep-copies, TakeFrom moves (the source becomes
// inert), Release unwraps the handle back to the caller, and Close frees it.
// All native calls are routed through the perr call-wrap primitive, so the
// only failure signal is a returned error.
package perseid

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Lib is one session with the native library. It owns the per-thread native
// state (error stack plus handle registry) and is the factory for every
// entity wrapper. A Lib must stay on the goroutine that opened it; two
// goroutines each using their own Lib never interfere.
type Lib struct {
	state *native.State
	log   *slog.Logger
}

// Open starts a native session. A nil logger falls back to slog.Default();
// the logger only ever sees close-time failures reported via CloseOrLog.
func Open(logger *slog.Logger) *Lib {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lib{state: native.NewState(), log: logger}
}

// CloseOrLog closes c and routes any failure to the session logger. This is
// the defer-friendly cleanup path: releasing a native resource can fail,
// and swallowing that silently would hide double frees.
func (l *Lib) CloseOrLog(c io.Closer) {
	if err := c.Close(); err != nil {
		l.log.Error("perseid: close failed", "error", err)
	}
}

// raise builds a library error for a failure detected by the wrapper layer
// itself, before any native call is made.
func raise(code perr.Code, function, format string, args ...any) *perr.Error {
	_, file, line, _ := runtime.Caller(1)
	return perr.New(perr.Frame{
		Code:     code,
		Function: function,
		File:     filepath.Base(file),
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}
