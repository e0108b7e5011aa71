package connection

import (
	"os"
	"runtime"
)

// HostEnv provides the process environment and platform identity to the
// display helpers, keeping them testable without touching global state.
type HostEnv interface {
	// Getenv returns the value of an environment variable, or "" if unset.
	Getenv(key string) string
	// IsWindows reports whether the host is a Windows-like platform.
	IsWindows() bool
}

// OSEnv is the HostEnv backed by the real process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string { return os.Getenv(key) }

func (OSEnv) IsWindows() bool { return runtime.GOOS == "windows" }
