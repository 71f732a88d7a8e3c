// Shared helpers for pcat commands.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/perseid-io/perseid-go/pkg/perseid"
)

// openSession starts a library session with a logger at the configured level.
func openSession() *perseid.Lib {
	var level slog.Level
	switch configLogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return perseid.Open(logger)
}

// snapshotPath resolves a snapshot file argument. Absolute paths are used as
// given; relative paths land in the resolved data directory, which is created
// on demand.
func snapshotPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dataDir, name), nil
}

// parseColumnSpecs parses a comma-separated list of name:kind column specs.
func parseColumnSpecs(spec string) ([]columnSpec, error) {
	var out []columnSpec
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, kindName, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("column spec %q must be name:kind", part)
		}
		kind, ok := perseid.ParseKind(kindName)
		if !ok {
			return nil, fmt.Errorf("column spec %q has unknown kind %q", part, kindName)
		}
		out = append(out, columnSpec{name: name, kind: kind})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no columns in spec %q", spec)
	}
	return out, nil
}

type columnSpec struct {
	name string
	kind perseid.Kind
}

// parseValue parses a raw string into the widest value of the kind's family.
// Narrowing into the actual column kind happens at store time, so lossy
// inputs are rejected there.
func parseValue(kind perseid.Kind, raw string) (perseid.Value, error) {
	switch kind {
	case perseid.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return perseid.Value{}, fmt.Errorf("parse %q as bool: %w", raw, err)
		}
		return perseid.BoolValue(b), nil
	case perseid.KindChar, perseid.KindInt, perseid.KindLong, perseid.KindLongLong:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return perseid.Value{}, fmt.Errorf("parse %q as integer: %w", raw, err)
		}
		return perseid.LongLongValue(i), nil
	case perseid.KindFloat, perseid.KindDouble:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return perseid.Value{}, fmt.Errorf("parse %q as float: %w", raw, err)
		}
		return perseid.DoubleValue(f), nil
	case perseid.KindFloatComplex, perseid.KindDoubleComplex:
		c, err := strconv.ParseComplex(raw, 128)
		if err != nil {
			return perseid.Value{}, fmt.Errorf("parse %q as complex: %w", raw, err)
		}
		return perseid.DoubleComplexValue(c), nil
	default:
		return perseid.StringValue(raw), nil
	}
}
