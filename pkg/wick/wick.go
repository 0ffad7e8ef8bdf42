// Package wick embeds a JavaScript runtime behind a small host API.
//
// A Host owns one script context. Create it with New, bind Go values with
// Set or DefineLazy, run code with RunString or RunFile, and Close it when
// done. A failed run surfaces a coded error in the script domain wrapping
// a *ScriptError that carries the position, source line and stack of the
// failure.
//
// Basic usage:
//
//	host, err := wick.New(wick.WithTimeout(5 * time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer host.Close()
//
//	v, err := host.RunString(`6 * 7`)
//	if err != nil {
//		if se, ok := wick.AsScriptError(err); ok {
//			log.Fatalf("script failed at %s:%d: %s", se.File, se.Line, se.Message)
//		}
//		log.Fatal(err)
//	}
//	fmt.Println(v.ToInteger())
package wick

import (
	"errors"
	"sync"

	"github.com/dop251/goja"

	"github.com/wickjs/wick/internal/engine"
	"github.com/wickjs/wick/internal/wkerr"
)

// Value is a handle to a runtime value. Values are only valid while the
// Host that produced them is open.
type Value = goja.Value

// evalName is the script name given to RunString sources in stack traces
// and error positions.
const evalName = "<eval>"

// Host is an embedded script runtime with console bindings installed and
// an execution budget enforced. A Host is not safe for concurrent use;
// callers run one script at a time.
type Host struct {
	cfg *Config
	ctx *engine.Context

	mu     sync.Mutex
	closed bool
}

// New creates a Host with the given options applied. The returned Host has
// the console installed and, when a memory limit is configured, the heap
// watchdog running.
func New(opts ...Option) (*Host, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := engine.New()
	if cfg.Timeout > 0 {
		ctx.SetTimeout(cfg.Timeout)
	}
	if cfg.StackDepth > 0 {
		ctx.SetMaxCallStack(cfg.StackDepth)
	}
	if cfg.Logger != nil {
		ctx.SetLogger(cfg.Logger)
	}
	ctx.SetOutput(cfg.Stdout, cfg.Stderr)

	if err := ctx.InstallConsole(); err != nil {
		return nil, wkerr.Wrap(wkerr.DomainEngine, wkerr.CodeFailed, err, "install console")
	}
	if cfg.Harden {
		ctx.Harden()
	}
	if cfg.MemoryLimit > 0 {
		if err := ctx.StartWatchdog(cfg.MemoryLimit); err != nil {
			return nil, wkerr.Wrap(wkerr.DomainEngine, wkerr.CodeFailed, err, "start memory watchdog")
		}
	}

	return &Host{cfg: cfg, ctx: ctx}, nil
}

// RunString compiles and runs src. The script is named "<eval>" in stack
// traces and error positions.
func (h *Host) RunString(src string) (Value, error) {
	if err := h.live(); err != nil {
		return nil, err
	}
	v, err := h.ctx.RunScript(evalName, src)
	if err != nil {
		return nil, wrapRun(evalName, err)
	}
	return v, nil
}

// RunFile reads and runs the script at path. The path becomes the script
// name in stack traces and error positions.
func (h *Host) RunFile(path string) (Value, error) {
	if err := h.live(); err != nil {
		return nil, err
	}
	v, err := h.ctx.RunFile(path)
	if err != nil {
		return nil, wrapRun(path, err)
	}
	return v, nil
}

// Set binds value to name in the global scope.
func (h *Host) Set(name string, value any) error {
	if err := h.live(); err != nil {
		return err
	}
	return h.ctx.VM().Set(name, value)
}

// Get returns the value bound to name in the global scope, or nil when
// name is not defined.
func (h *Host) Get(name string) Value {
	if h.live() != nil {
		return nil
	}
	return h.ctx.VM().Get(name)
}

// DefineLazy installs a global whose value is produced by resolve on first
// access. A successful resolve is cached, so resolve runs at most once. A
// failed resolve logs a warning, reads as undefined, and is retried on the
// next access.
func (h *Host) DefineLazy(name string, resolve func() (any, error)) error {
	if err := h.live(); err != nil {
		return err
	}
	return h.ctx.DefineLazy(nil, name, func(c *engine.Context) (goja.Value, error) {
		v, err := resolve()
		if err != nil {
			return nil, err
		}
		return c.VM().ToValue(v), nil
	})
}

// Close stops the watchdog and marks the Host unusable. Further calls on
// the Host return ErrClosed. Close is safe to call more than once.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.ctx.StopWatchdog()
	return nil
}

// live reports whether the Host is still open.
func (h *Host) live() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	return nil
}

// wrapRun folds a failed run into a coded error. Script failures wrap the
// ScriptError under the script domain; anything else came from reading the
// file.
func wrapRun(name string, err error) error {
	var se *engine.ScriptError
	if !errors.As(err, &se) {
		return wkerr.Wrap(wkerr.DomainIO, wkerr.CodeIORead, err, "read script").
			WithFile(name, 0, 0)
	}
	return wkerr.Wrapf(wkerr.DomainScript, scriptCode(se), se, "run %s", name)
}

// scriptCode maps a failed run to its script-domain error code.
func scriptCode(se *engine.ScriptError) int {
	switch {
	case errors.Is(se, engine.ErrTimeout):
		return wkerr.CodeScriptTimeout
	case errors.Is(se, engine.ErrOutOfMemory):
		return wkerr.CodeScriptOOM
	}
	var syntax *goja.CompilerSyntaxError
	if errors.As(se, &syntax) {
		return wkerr.CodeScriptSyntax
	}
	return wkerr.CodeScriptThrown
}
