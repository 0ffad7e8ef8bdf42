package engine

import (
	"errors"
	"os"
	"time"

	"github.com/dop251/goja"
)

// Execution sentinels, reachable through a ScriptError's chain.
var (
	// ErrTimeout reports that a script exceeded its execution budget.
	ErrTimeout = errors.New("engine: execution timeout")
	// ErrOutOfMemory reports that the watchdog halted a script.
	ErrOutOfMemory = errors.New("engine: out of memory")
)

// Interrupt payloads. The interrupt value identifies which budget was
// exhausted when execution stopped.
const (
	interruptTimeout = "execution timeout"
	interruptOOM     = "out of memory"
)

// RunScript compiles and runs src under the configured timeout. name is the
// script name used in stack traces and error positions.
//
// The request bracket is NOT held while the script runs: native callbacks
// invoked from the script re-enter the bridge. A run that ends with an
// exception still pending surfaces it as the returned error.
func (c *Context) RunScript(name, src string) (goja.Value, error) {
	c.setScript(name, src)

	timer := time.AfterFunc(c.timeout, func() {
		c.vm.Interrupt(interruptTimeout)
	})
	defer timer.Stop()

	v, err := c.vm.RunScript(name, src)
	if err != nil {
		return nil, c.wrapRunError(err)
	}

	// A native callback may have placed an exception in the slot without
	// throwing into the script. It becomes the result of the run.
	if exc := c.TakePending(); exc != nil {
		return nil, c.scriptErrorFromValue(exc)
	}

	return v, nil
}

// RunProgram runs a previously compiled program under the configured
// timeout. Used by the REPL and watch mode to separate compile errors from
// runtime errors.
func (c *Context) RunProgram(name string, prg *goja.Program) (goja.Value, error) {
	c.setScript(name, "")

	timer := time.AfterFunc(c.timeout, func() {
		c.vm.Interrupt(interruptTimeout)
	})
	defer timer.Stop()

	v, err := c.vm.RunProgram(prg)
	if err != nil {
		return nil, c.wrapRunError(err)
	}

	if exc := c.TakePending(); exc != nil {
		return nil, c.scriptErrorFromValue(exc)
	}

	return v, nil
}

// RunFile reads and runs a script from disk.
func (c *Context) RunFile(path string) (goja.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.RunScript(path, string(src))
}

// Compile parses src without running it.
func Compile(name, src string) (*goja.Program, error) {
	return goja.Compile(name, src, false)
}

// wrapRunError folds a runtime error into a ScriptError, mapping interrupts
// to their sentinels and attaching the failing source line when the current
// script provides one.
func (c *Context) wrapRunError(err error) *ScriptError {
	if interrupted, ok := err.(*goja.InterruptedError); ok {
		// Interrupts latch until cleared; clear so the context stays
		// usable for the next run.
		c.vm.ClearInterrupt()

		se := &ScriptError{
			Message: "execution interrupted: " + interrupted.String(),
			File:    c.scriptName(),
			Cause:   err,
		}
		switch interrupted.Value() {
		case interruptTimeout:
			se.Message = "execution timed out"
			se.Cause = ErrTimeout
		case interruptOOM:
			se.Message = "memory limit exceeded"
			se.Cause = ErrOutOfMemory
		}
		return se
	}

	se := parseScriptError(err)
	if se.File == "" {
		se.File = c.scriptName()
	}
	if se.Line > 0 && se.Source == "" {
		se.Source = GetSourceLine(c.scriptSource(), se.Line)
		if se.Source == "" {
			se.Source = GetSourceLineFromFile(se.File, se.Line)
		}
	}
	return se
}

// scriptErrorFromValue builds a ScriptError from an exception value that
// was left pending rather than thrown.
func (c *Context) scriptErrorFromValue(v goja.Value) *ScriptError {
	return &ScriptError{
		Message: v.String(),
		File:    c.scriptName(),
	}
}
