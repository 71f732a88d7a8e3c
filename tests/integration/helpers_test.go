// Package integration provides end-to-end tests exercising the public
// perseid API across whole workflows: entity lifecycles, header editing,
// and snapshot interchange between sessions.
package integration

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perseid-io/perseid-go/pkg/perseid"
)

// newSession opens a library session with a quiet logger. Each test gets its
// own session for isolation.
func newSession(t *testing.T) *perseid.Lib {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return perseid.Open(logger)
}

// mustVector builds an owned vector from elems.
func mustVector(t *testing.T, lib *perseid.Lib, elems []float64) *perseid.Vector {
	t.Helper()
	v, err := lib.NewVectorFrom(elems)
	require.NoError(t, err)
	return v
}

// mustProperty builds an owned property holding v.
func mustProperty(t *testing.T, lib *perseid.Lib, name string, v perseid.Value) *perseid.Property {
	t.Helper()
	p, err := lib.NewProperty(name, v.Kind())
	require.NoError(t, err)
	require.NoError(t, p.SetTyped(v))
	return p
}
