package wick

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/wickjs/wick/internal/engine"
)

// Config holds host construction settings. Callers adjust it through the
// With* options passed to New.
type Config struct {
	// Timeout is the wall-clock budget for one script run. Runs that
	// exceed it fail with a timeout error. Default 30s; zero or negative
	// keeps the default.
	Timeout time.Duration

	// MemoryLimit is the heap budget in bytes enforced by the watchdog.
	// Zero disables enforcement.
	MemoryLimit uint64

	// StackDepth caps the script call-stack depth. Zero keeps the
	// runtime default.
	StackDepth int

	// Logger receives engine diagnostics and script log output. Nil
	// keeps the process default logger.
	Logger *slog.Logger

	// Stdout and Stderr receive script print output. Nil writers keep
	// the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Harden disables eval and freezes the core prototypes before any
	// script runs.
	Harden bool
}

// defaultConfig returns the settings New starts from before options are
// applied.
func defaultConfig() *Config {
	return &Config{
		Timeout: engine.DefaultTimeout,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Option adjusts host construction settings.
type Option func(*Config)

// WithTimeout bounds each script run to d of wall-clock time.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMemoryLimit enforces a heap budget of limit bytes. Scripts that push
// the heap past it are halted with an out-of-memory error.
func WithMemoryLimit(limit uint64) Option {
	return func(c *Config) {
		c.MemoryLimit = limit
	}
}

// WithStackDepth caps the script call-stack depth at n frames.
func WithStackDepth(n int) Option {
	return func(c *Config) {
		c.StackDepth = n
	}
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithOutput sends script print output, both stdout and stderr streams,
// to w.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Stdout = w
		c.Stderr = w
	}
}

// WithHardening disables eval and freezes the core prototypes before any
// script runs.
func WithHardening() Option {
	return func(c *Config) {
		c.Harden = true
	}
}
