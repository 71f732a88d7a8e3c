// Package paths resolves configuration and data directory locations for the
// pcat CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDirName is the CWD-relative data directory used when no
// override is active.
const DefaultDataDirName = ".perseid-data"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PERSEID_CONFIG_DIR"
	EnvDataDir   = "PERSEID_DATA_DIR"
)

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/perseid (fallback ~/.config/perseid)
// macOS:   ~/Library/Application Support/perseid
// Windows: %APPDATA%/perseid
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "perseid"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "perseid"), nil
	}
	// macOS and Windows use os.UserConfigDir which returns
	// ~/Library/Application Support on macOS and %APPDATA% on Windows.
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "perseid"), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > PERSEID_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config value > PERSEID_DATA_DIR env > $(CWD)/.perseid-data.
//
// The CWD-relative default keeps snapshot files next to the project being
// worked on when no override is active.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
