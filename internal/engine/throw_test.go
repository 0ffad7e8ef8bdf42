package engine

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/dop251/goja"

	"github.com/wickjs/wick/internal/jsutil"
)

// ---------------------------------------------------------------------------
// Throw: basic raising
// ---------------------------------------------------------------------------

func TestThrowf_FormatsIntoGenericException(t *testing.T) {
	c, _ := newTestContext(t)

	c.Throwf("%s failed: %d", "load", 4)

	exc := c.Pending()
	if exc == nil {
		t.Fatal("expected a pending exception, got nil")
	}
	obj, ok := exc.(*goja.Object)
	if !ok {
		t.Fatalf("pending exception is %T, want *goja.Object", exc)
	}

	if msg, _ := jsutil.GetString(obj, "message"); msg != "load failed: 4" {
		t.Errorf("message = %q, want %q", msg, "load failed: 4")
	}
	if name, _ := jsutil.GetString(obj, "name"); name != "Error" {
		t.Errorf("name = %q, want %q", name, "Error")
	}

	// The exception must be a real Error instance, usable from scripts.
	c.VM().Set("e", c.TakePending())
	v, err := c.VM().RunString("e instanceof Error")
	if err != nil {
		t.Fatalf("instanceof check failed: %v", err)
	}
	if !v.ToBoolean() {
		t.Error("exception is not an instanceof Error")
	}
}

func TestThrow_MessageIsLiteral(t *testing.T) {
	c, _ := newTestContext(t)

	// Format verbs must pass through untouched on the literal path.
	c.Throw("progress 100% done, next %s")

	obj := c.Pending().(*goja.Object)
	if msg, _ := jsutil.GetString(obj, "message"); msg != "progress 100% done, next %s" {
		t.Errorf("message = %q, want the literal input", msg)
	}
}

// ---------------------------------------------------------------------------
// Throw: first failure wins
// ---------------------------------------------------------------------------

func TestThrow_SecondThrowLeavesFirstPending(t *testing.T) {
	c, sink := newTestContext(t)

	c.Throw("first failure")
	c.Throw("second failure")

	obj := c.Pending().(*goja.Object)
	if msg, _ := jsutil.GetString(obj, "message"); msg != "first failure" {
		t.Errorf("pending message = %q, want %q", msg, "first failure")
	}

	// The ignored message goes to the debug log, not into the void.
	entry, ok := sink.find("ignoring second exception")
	if !ok {
		t.Fatal("expected a debug entry for the ignored throw")
	}
	if entry.level != slog.LevelDebug {
		t.Errorf("ignored-throw entry level = %v, want %v", entry.level, slog.LevelDebug)
	}
	if entry.attrs["message"] != "second failure" {
		t.Errorf("ignored-throw attr message = %q, want %q", entry.attrs["message"], "second failure")
	}
}

func TestThrow_AfterClearRaisesAgain(t *testing.T) {
	c, _ := newTestContext(t)

	c.Throw("first")
	c.ClearPending()
	c.Throw("second")

	obj := c.Pending().(*goja.Object)
	if msg, _ := jsutil.GetString(obj, "message"); msg != "second" {
		t.Errorf("pending message = %q, want %q", msg, "second")
	}
}

// ---------------------------------------------------------------------------
// ThrowCustom: kinds and name override
// ---------------------------------------------------------------------------

func TestThrowCustom_KindsMapToConstructors(t *testing.T) {
	c, _ := newTestContext(t)

	wantNames := map[Kind]string{
		KindGeneric:       "Error",
		KindInternal:      "InternalError",
		KindEval:          "EvalError",
		KindRange:         "RangeError",
		KindReference:     "ReferenceError",
		KindSyntax:        "SyntaxError",
		KindType:          "TypeError",
		KindURI:           "URIError",
		KindIterationStop: "StopIteration",
	}

	for kind, want := range wantNames {
		c.ClearPending()
		c.ThrowCustom(kind, "", "boom")

		exc := c.Pending()
		if exc == nil {
			t.Errorf("kind %v: no pending exception", kind)
			continue
		}
		obj := exc.(*goja.Object)
		if name, _ := jsutil.GetString(obj, "name"); name != want {
			t.Errorf("kind %v: name = %q, want %q", kind, name, want)
		}
	}
}

func TestThrowCustomf_NameOverride(t *testing.T) {
	c, _ := newTestContext(t)

	c.ThrowCustomf(KindType, "ConfigError", "bad value for %q", "port")

	obj := c.TakePending().(*goja.Object)
	if name, _ := jsutil.GetString(obj, "name"); name != "ConfigError" {
		t.Errorf("name = %q, want %q", name, "ConfigError")
	}
	if msg, _ := jsutil.GetString(obj, "message"); msg != `bad value for "port"` {
		t.Errorf("message = %q, want %q", msg, `bad value for "port"`)
	}

	// The override tags the object; its prototype chain is unchanged.
	c.VM().Set("e", obj)
	v, err := c.VM().RunString("e instanceof TypeError")
	if err != nil {
		t.Fatalf("instanceof check failed: %v", err)
	}
	if !v.ToBoolean() {
		t.Error("named exception is not an instanceof TypeError")
	}
}

func TestThrowCustom_InvalidKindPanics(t *testing.T) {
	c, _ := newTestContext(t)

	for _, kind := range []Kind{Kind(-1), kindCount, Kind(99)} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("kind %d: expected panic, got none", kind)
					return
				}
				if !strings.Contains(r.(string), "invalid exception kind") {
					t.Errorf("kind %d: panic = %v, want invalid-kind message", kind, r)
				}
			}()
			c.ThrowCustom(kind, "", "boom")
		}()
	}

	if c.HasPending() {
		t.Error("invalid kind must not leave an exception pending")
	}
}

// ---------------------------------------------------------------------------
// Throw: canonical constructors resist tampering
// ---------------------------------------------------------------------------

func TestThrow_TamperedGlobalDoesNotChangeRaise(t *testing.T) {
	c, _ := newTestContext(t)

	if _, err := c.VM().RunString(`TypeError = function() { return { evil: true }; };`); err != nil {
		t.Fatalf("tampering setup failed: %v", err)
	}

	c.ThrowCustom(KindType, "", "still canonical")

	obj := c.Pending().(*goja.Object)
	if name, _ := jsutil.GetString(obj, "name"); name != "TypeError" {
		t.Errorf("name = %q, want canonical %q", name, "TypeError")
	}
	if _, hasEvil := jsutil.GetBool(obj, "evil"); hasEvil {
		t.Error("tampered constructor was used for the raise")
	}
}

// ---------------------------------------------------------------------------
// Throw: fallback report on construction failure
// ---------------------------------------------------------------------------

func TestThrow_ConstructionFailureReportsFallback(t *testing.T) {
	c, sink := newTestContext(t)
	c.setScript("main.js", "")

	// Simulate a constructor that never made it into the cache.
	c.ctors[KindInternal] = nil

	c.ThrowCustom(KindInternal, "", "boom")

	if c.HasPending() {
		t.Error("failed construction must not leave an exception pending")
	}

	entry, ok := sink.find("failed to throw exception 'boom'")
	if !ok {
		t.Fatal("expected a fallback report for the failed throw")
	}
	want := "JS REPORTED: [main.js 0]: failed to throw exception 'boom'"
	if entry.msg != want {
		t.Errorf("report line = %q, want %q", entry.msg, want)
	}
}

// ---------------------------------------------------------------------------
// ThrowPending
// ---------------------------------------------------------------------------

func TestThrowPending_PanicsWithTakenValue(t *testing.T) {
	c, _ := newTestContext(t)

	c.Throw("carried into script")
	want := c.Pending()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected ThrowPending to panic")
		}
		if r != want {
			t.Errorf("panic value = %v, want the pending exception", r)
		}
		if c.HasPending() {
			t.Error("slot must be empty after ThrowPending")
		}
	}()
	c.ThrowPending()
}

func TestThrowPending_NoOpWhenEmpty(t *testing.T) {
	c, _ := newTestContext(t)

	// Must not panic.
	c.ThrowPending()
}
