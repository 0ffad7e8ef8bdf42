package engine

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// StackSnapshot is a captured set of call frames, usable for diagnostic
// rendering after the calls that produced it have returned.
type StackSnapshot struct {
	frames []goja.StackFrame
}

// Frames returns the number of captured frames.
func (s *StackSnapshot) Frames() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// CaptureStack records the currently active call frames. depth limits how
// many frames are captured; depth <= 0 captures the entire stack. Capturing
// outside a running script yields an empty snapshot.
func (c *Context) CaptureStack(depth int) *StackSnapshot {
	if depth < 0 {
		depth = 0
	}
	return &StackSnapshot{frames: c.vm.CaptureCallStack(depth, nil)}
}

// FormatStackTrace renders a snapshot into a printable block, one frame per
// line with a two-space indent:
//
//	  at inner (main.js:4:2)
//	  at <anonymous> (main.js:6:1)
//
// The pending exception state is saved on entry and restored on every exit
// path: formatting must not be observable through exception handling.
// Returns "" when no trace can be produced.
func (c *Context) FormatStackTrace(snap *StackSnapshot) string {
	defer c.enter()()

	saved := c.pending
	defer func() { c.pending = saved }()

	if snap == nil || len(snap.frames) == 0 {
		return ""
	}

	var b strings.Builder
	for i := range snap.frames {
		frame := &snap.frames[i]
		fn := frame.FuncName()
		if fn == "" {
			fn = "<anonymous>"
		}
		pos := frame.Position()
		fmt.Fprintf(&b, "  at %s (%s:%d:%d)\n", fn, frame.SrcName(), pos.Line, pos.Column)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
