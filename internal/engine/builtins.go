package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
)

// InstallConsole binds the script-facing output functions:
//
//	print(...)      write a line to stdout
//	printerr(...)   write a line to stderr
//	log(...)        route a line through the host log at message level
//	logError(e[, prefix])  render a thrown value with its stack at error level
//
// Argument problems raise through the bridge, so an exception already in
// flight takes priority over the complaint.
func (c *Context) InstallConsole() error {
	if err := c.vm.Set("print", c.printFunc(func() io.Writer { return c.stdout })); err != nil {
		return err
	}
	if err := c.vm.Set("printerr", c.printFunc(func() io.Writer { return c.stderr })); err != nil {
		return err
	}
	if err := c.vm.Set("log", c.logFunc()); err != nil {
		return err
	}
	return c.vm.Set("logError", c.logErrorFunc())
}

// joinArgs renders call arguments the way the console functions print them:
// space-separated, each value stringified by the runtime.
func joinArgs(call goja.FunctionCall) string {
	parts := make([]string, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ")
}

func (c *Context) printFunc(w func() io.Writer) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(w(), joinArgs(call))
		return goja.Undefined()
	}
}

func (c *Context) logFunc() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		c.logger.Info("JS LOG: " + joinArgs(call))
		return goja.Undefined()
	}
}

func (c *Context) logErrorFunc() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			c.ThrowCustom(KindType, "", "logError expects an error value")
			c.ThrowPending()
		}

		prefix := ""
		if len(call.Arguments) > 1 {
			prefix = call.Arguments[1].String()
		}
		c.logException(call.Arguments[0], prefix)
		return goja.Undefined()
	}
}
