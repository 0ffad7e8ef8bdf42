package engine

import (
	"fmt"

	"github.com/dop251/goja"
)

// Throw raises a Generic exception with a literal message. The message is
// used verbatim, with no format interpolation.
//
// An exception already in flight is never displaced: the attempted message
// is logged at debug level so the root cause stays observable, and the slot
// is left untouched.
func (c *Context) Throw(msg string) {
	c.throwInto(KindGeneric, "", msg)
}

// Throwf formats and raises a Generic exception.
func (c *Context) Throwf(format string, args ...any) {
	c.throwInto(KindGeneric, "", fmt.Sprintf(format, args...))
}

// ThrowCustom raises an exception of the given kind. A non-empty name
// overrides the constructor's own name property, so callers can raise, say,
// a TypeError-shaped object that also carries a custom name. The message is
// used verbatim.
//
// kind must be one of the declared Kind values; anything else panics.
func (c *Context) ThrowCustom(kind Kind, name, msg string) {
	c.throwInto(kind, name, msg)
}

// ThrowCustomf is ThrowCustom with message formatting.
func (c *Context) ThrowCustomf(kind Kind, name, format string, args ...any) {
	c.throwInto(kind, name, fmt.Sprintf(format, args...))
}

// throwInto is the single raise path behind the public entry points: it
// takes an already-formatted message, builds the exception, and places it
// into the pending slot unless one is already there.
//
// Construction runs outside the request bracket: instantiating a
// constructor executes script code, and the bracket is never held across
// that.
func (c *Context) throwInto(kind Kind, name, msg string) {
	kind.mustBeValid()

	if c.HasPending() {
		c.logger.Debug("ignoring second exception", "message", msg)
		return
	}

	excep, ok := c.newException(kind, name, msg)
	if !ok {
		c.fallbackReport(msg)
		return
	}
	c.TrySetPending(excep)
}

// newException instantiates the canonical constructor for kind with the
// message, applying the optional name tag. ok is false when any step of
// construction failed.
func (c *Context) newException(kind Kind, name, msg string) (excep goja.Value, ok bool) {
	ctor := c.ctors[kind]
	if ctor == nil {
		return nil, false
	}

	obj, err := c.vm.New(ctor, c.vm.ToValue(msg))
	if err != nil || obj == nil {
		return nil, false
	}

	if name != "" {
		if err := obj.Set("name", c.vm.ToValue(name)); err != nil {
			return nil, false
		}
	}

	return obj, true
}

// fallbackReport routes a failed exception construction through the
// diagnostic channel so the message is never silently dropped.
func (c *Context) fallbackReport(msg string) {
	c.reporter.Report(Report{
		Severity: SeverityError,
		Filename: c.scriptName(),
		Message:  fmt.Sprintf("failed to throw exception '%s'", msg),
	})
}

// ThrowPending transfers the pending exception into the running script by
// panicking with its value; the runtime converts the panic into a script
// throw. Call only from native functions invoked by the runtime. A no-op
// when nothing is pending.
func (c *Context) ThrowPending() {
	if v := c.TakePending(); v != nil {
		panic(v)
	}
}
