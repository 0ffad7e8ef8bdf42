package engine

import (
	"fmt"

	"github.com/dop251/goja"
)

// LazyResolver produces the value for a deferred property on first access.
// Resolvers run on the script goroutine with no bridge lock held, so they may
// throw through the context like any other native callback.
type LazyResolver func(c *Context) (goja.Value, error)

// DefineLazy installs name on obj as an accessor that resolves on first read.
// A successful resolve replaces the accessor with a plain data property, so
// the resolver runs at most once. A failed resolve reports a lazy-resolution
// warning, leaves the accessor in place for a later retry, and yields
// undefined to the script.
func (c *Context) DefineLazy(obj *goja.Object, name string, resolve LazyResolver) error {
	if obj == nil {
		obj = c.vm.GlobalObject()
	}

	getter := c.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		val, err := resolve(c)
		if err != nil {
			c.reporter.Report(Report{
				Severity: SeverityWarning,
				Code:     CodeLazyResolve,
				Filename: c.scriptName(),
				Message:  fmt.Sprintf("failed to resolve lazy property '%s': %v", name, err),
			})
			return goja.Undefined()
		}
		if val == nil {
			val = goja.Undefined()
		}

		// Replace the accessor with the resolved value. If the property was
		// made non-configurable behind our back the resolved value still
		// reaches the caller.
		_ = obj.DefineDataProperty(name, val, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE)
		return val
	})

	return obj.DefineAccessorProperty(name, getter, goja.Undefined(), goja.FLAG_TRUE, goja.FLAG_TRUE)
}
