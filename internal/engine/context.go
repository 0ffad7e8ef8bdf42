// Package engine hosts the embedded JavaScript runtime and the error bridge
// between it and native Go code. A Context owns one runtime instance, its
// single pending-exception slot, and the diagnostic reporting channel.
package engine

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// DefaultTimeout is the wall-clock budget for one script run.
const DefaultTimeout = 30 * time.Second

// DefaultMaxCallStack caps runtime call depth to keep runaway recursion from
// exhausting the Go stack.
const DefaultMaxCallStack = 1024

// bootstrapSrc defines the error constructors the runtime does not ship as
// intrinsics, so every Kind has a real constructor behind it.
const bootstrapSrc = `
(function() {
	if (typeof InternalError === 'undefined') {
		globalThis.InternalError = class InternalError extends Error {
			constructor(message) {
				super(message);
				this.name = 'InternalError';
			}
		};
	}
	if (typeof StopIteration === 'undefined') {
		globalThis.StopIteration = class StopIteration extends Error {
			constructor(message) {
				super(message);
				this.name = 'StopIteration';
			}
		};
	}
})();
`

// Context is one embedded runtime instance driven by Go code. It is not
// safe for concurrent entry: every operation that touches runtime state or
// the pending-exception slot runs inside the exclusive request bracket and
// releases it on all exit paths.
type Context struct {
	vm *goja.Runtime

	// mu is the request bracket. It guards pending, the constructor cache,
	// and the current script fields. It is never held across script
	// execution, since native callbacks re-enter the bridge.
	mu      sync.Mutex
	pending goja.Value // current in-flight exception, nil when empty

	// ctors holds the canonical constructor for each Kind, captured at
	// init so script-side tampering with the globals cannot change what
	// the bridge raises.
	ctors [kindCount]*goja.Object

	reporter *Reporter
	logger   *slog.Logger

	timeout time.Duration

	stdout io.Writer
	stderr io.Writer

	// Current script, for error enrichment and diagnostic reports.
	currentFile string
	currentSrc  string

	wd *watchdog
}

// New creates a Context ready to run scripts: call depth capped, the full
// kind set bootstrapped, and the canonical constructors captured.
func New() *Context {
	vm := goja.New()
	vm.SetMaxCallStackSize(DefaultMaxCallStack)

	c := &Context{
		vm:      vm,
		logger:  slog.Default(),
		timeout: DefaultTimeout,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	c.reporter = NewReporter(c.logger)

	// Failure here leaves the affected constructor slots empty; raising
	// those kinds then takes the fallback-report path instead of crashing.
	_, _ = vm.RunString(bootstrapSrc)
	c.captureCtors()

	return c
}

// captureCtors snapshots the global error constructors into the canonical
// cache. Called once at init, before any script runs.
func (c *Context) captureCtors() {
	for k := KindGeneric; k < kindCount; k++ {
		v := c.vm.Get(ctorNames[k])
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		if obj, ok := v.(*goja.Object); ok {
			c.ctors[k] = obj
		}
	}
}

// enter acquires the exclusive request bracket and returns its release
// func. Use as: defer c.enter()()
func (c *Context) enter() (release func()) {
	c.mu.Lock()
	return c.mu.Unlock
}

// SetTimeout sets the wall-clock execution budget for script runs.
func (c *Context) SetTimeout(d time.Duration) {
	c.timeout = d
}

// SetLogger replaces the logger used for bridge traces and diagnostic
// report routing.
func (c *Context) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	c.logger = l
	c.reporter.logger = l
}

// SetMaxCallStack adjusts the runtime call depth cap.
func (c *Context) SetMaxCallStack(n int) {
	c.vm.SetMaxCallStackSize(n)
}

// SetOutput redirects the script-facing print functions. Nil writers keep
// the current destination.
func (c *Context) SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		c.stdout = stdout
	}
	if stderr != nil {
		c.stderr = stderr
	}
}

// Reporter returns the diagnostic reporting channel for this context.
func (c *Context) Reporter() *Reporter {
	return c.reporter
}

// VM returns the underlying runtime.
// Use with caution: direct access bypasses the request bracket.
func (c *Context) VM() *goja.Runtime {
	return c.vm
}

// Harden disables runtime features that allow scripts to fabricate code or
// pollute shared prototypes. Intended for running untrusted input.
func (c *Context) Harden() {
	c.vm.Set("eval", goja.Undefined())

	_, _ = c.vm.RunString(`
		(function() {
			try {
				Object.freeze(Object.prototype);
				Object.freeze(Array.prototype);
				Object.freeze(String.prototype);
				Object.freeze(Number.prototype);
				Object.freeze(Boolean.prototype);
			} catch(e) {}
		})();
	`)
}

// Pending returns the exception currently in flight, or nil.
func (c *Context) Pending() goja.Value {
	defer c.enter()()
	return c.pending
}

// HasPending reports whether an exception is in flight.
func (c *Context) HasPending() bool {
	defer c.enter()()
	return c.pending != nil
}

// SetPending places v into the pending slot, displacing any previous value.
func (c *Context) SetPending(v goja.Value) {
	defer c.enter()()
	c.pending = v
}

// ClearPending empties the pending slot.
func (c *Context) ClearPending() {
	defer c.enter()()
	c.pending = nil
}

// TakePending returns the pending exception and empties the slot.
func (c *Context) TakePending() goja.Value {
	defer c.enter()()
	v := c.pending
	c.pending = nil
	return v
}

// TrySetPending stores v only when no exception is in flight and reports
// whether it was stored.
func (c *Context) TrySetPending(v goja.Value) bool {
	defer c.enter()()
	if c.pending != nil {
		return false
	}
	c.pending = v
	return true
}

// scriptName returns the name of the script currently associated with the
// context. Safe to call from the watchdog goroutine.
func (c *Context) scriptName() string {
	defer c.enter()()
	return c.currentFile
}

// setScript records the script being run, for error enrichment.
func (c *Context) setScript(name, src string) {
	defer c.enter()()
	c.currentFile = name
	c.currentSrc = src
}

// scriptSource returns the source text of the current script.
func (c *Context) scriptSource() string {
	defer c.enter()()
	return c.currentSrc
}
