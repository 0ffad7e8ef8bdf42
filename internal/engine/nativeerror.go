package engine

import (
	"github.com/dop251/goja"

	"github.com/wickjs/wick/internal/jsutil"
	"github.com/wickjs/wick/internal/wkerr"
)

// ThrowNative converts a native error value into a script exception and
// places it into the pending slot, displacing whatever was there. A native
// error is the freshest, most specific failure signal, so unlike Throw this
// path overwrites.
//
// nerr is consumed: it is freed exactly once whether or not conversion
// succeeds. A nil nerr is a no-op and frees nothing.
func (c *Context) ThrowNative(nerr *wkerr.Error) {
	if nerr == nil {
		return
	}
	defer nerr.Free()

	excep := c.exceptionFromNative(nerr)
	if excep == nil {
		// Construction failed; the slot stays as it was.
		return
	}
	c.SetPending(excep)
}

// exceptionFromNative builds the script-side shape of a native error: a
// Generic exception named after the native domain, carrying domain and code
// properties for script-side inspection. Returns nil when construction
// fails at any step.
func (c *Context) exceptionFromNative(nerr *wkerr.Error) goja.Value {
	ctor := c.ctors[KindGeneric]
	if ctor == nil {
		return nil
	}

	obj, err := c.vm.New(ctor, c.vm.ToValue(nerr.GetMessage()))
	if err != nil || obj == nil {
		return nil
	}

	if err := obj.Set("name", c.vm.ToValue(string(nerr.GetDomain()))); err != nil {
		return nil
	}
	if err := obj.Set("domain", c.vm.ToValue(string(nerr.GetDomain()))); err != nil {
		return nil
	}
	if err := obj.Set("code", c.vm.ToValue(nerr.GetCode())); err != nil {
		return nil
	}

	return obj
}

// NativeFromValue derives a native error from a thrown script value, the
// reverse of ThrowNative. Values produced by ThrowNative round-trip their
// domain and code; plain script errors land in the script domain. Ownership
// of the result transfers to the caller. A nil, undefined, or null value
// yields nil.
func (c *Context) NativeFromValue(v goja.Value) *wkerr.Error {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return wkerr.New(wkerr.DomainScript, wkerr.CodeScriptThrown, v.String())
	}

	domain := wkerr.DomainScript
	if d, ok := jsutil.GetString(obj, "domain"); ok && d != "" {
		domain = wkerr.Domain(d)
	}

	code := wkerr.CodeScriptThrown
	if n, ok := jsutil.GetInt(obj, "code"); ok {
		code = n
	}

	msg, ok := jsutil.GetString(obj, "message")
	if !ok || msg == "" {
		msg = v.String()
	}

	return wkerr.New(domain, code, msg)
}
