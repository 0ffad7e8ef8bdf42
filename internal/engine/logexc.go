package engine

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/wickjs/wick/internal/jsutil"
)

// LogException renders a thrown value at error level, including its script
// stack when one is attached. The value is not modified and the pending slot
// is not consulted; callers log whatever they caught.
func (c *Context) LogException(v goja.Value) {
	c.logException(v, "")
}

func (c *Context) logException(v goja.Value, prefix string) {
	headline, stack := describeThrown(v)
	if prefix != "" {
		headline = prefix + ": " + headline
	}
	if stack != "" {
		c.logger.Error("JS ERROR: " + headline + "\n" + stack)
		return
	}
	c.logger.Error("JS ERROR: " + headline)
}

// describeThrown splits a thrown value into a one-line headline and an
// optional stack block. Error objects contribute name, message and their
// stack property; anything else is stringified as-is.
func describeThrown(v goja.Value) (headline, stack string) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "unknown exception", ""
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return v.String(), ""
	}

	name, _ := jsutil.GetString(obj, "name")
	message, _ := jsutil.GetString(obj, "message")
	switch {
	case name != "" && message != "":
		headline = name + ": " + message
	case name != "":
		headline = name
	case message != "":
		headline = message
	default:
		headline = v.String()
	}

	if raw, ok := jsutil.GetString(obj, "stack"); ok {
		stack = indentStack(raw)
	}
	return headline, stack
}

// indentStack normalizes a script stack for log output: two-space indent on
// every frame line, no trailing newline.
func indentStack(raw string) string {
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s", strings.TrimSpace(line))
	}
	return b.String()
}
