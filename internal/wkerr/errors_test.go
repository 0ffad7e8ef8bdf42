package wkerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// New / Newf
// ---------------------------------------------------------------------------

func TestNew_Fields(t *testing.T) {
	err := New(DomainIO, CodeIORead, "failed to read script")

	if err.GetDomain() != DomainIO {
		t.Errorf("GetDomain() = %q, want %q", err.GetDomain(), DomainIO)
	}
	if err.GetCode() != CodeIORead {
		t.Errorf("GetCode() = %d, want %d", err.GetCode(), CodeIORead)
	}
	if err.GetMessage() != "failed to read script" {
		t.Errorf("GetMessage() = %q, want %q", err.GetMessage(), "failed to read script")
	}
	if err.GetStack() == "" {
		t.Error("expected a captured stack, got empty")
	}
}

func TestNewf_FormatsMessage(t *testing.T) {
	err := Newf(DomainScript, CodeScriptTimeout, "timed out after %dms", 250)

	want := "timed out after 250ms"
	if err.GetMessage() != want {
		t.Errorf("GetMessage() = %q, want %q", err.GetMessage(), want)
	}
}

// ---------------------------------------------------------------------------
// Error() rendering
// ---------------------------------------------------------------------------

func TestError_Format(t *testing.T) {
	err := New(DomainIO, CodeIORead, "failed to read script").
		With("file", "main.js")

	got := err.Error()
	if !strings.HasPrefix(got, "[wick-io:1] failed to read script") {
		t.Errorf("Error() = %q, want prefix %q", got, "[wick-io:1] failed to read script")
	}
	if !strings.Contains(got, "\n  file: main.js") {
		t.Errorf("Error() = %q, want context line for file", got)
	}
}

func TestError_ContextSorted(t *testing.T) {
	err := New(DomainConfig, CodeConfigValue, "bad value").
		With("zeta", 1).
		With("alpha", 2)

	got := err.Error()
	alphaIdx := strings.Index(got, "alpha")
	zetaIdx := strings.Index(got, "zeta")
	if alphaIdx == -1 || zetaIdx == -1 {
		t.Fatalf("Error() = %q, want both context keys present", got)
	}
	if alphaIdx > zetaIdx {
		t.Errorf("context keys not sorted: alpha at %d, zeta at %d", alphaIdx, zetaIdx)
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap(DomainIO, CodeIORead, cause, "failed to read script")

	if !strings.Contains(err.Error(), "cause: disk gone") {
		t.Errorf("Error() = %q, want cause rendered", err.Error())
	}
}

// ---------------------------------------------------------------------------
// Wrapping and errors.Is / errors.As
// ---------------------------------------------------------------------------

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(DomainEngine, CodeFailed, cause, "wrapped")

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.GetCause() != cause {
		t.Errorf("GetCause() = %v, want %v", err.GetCause(), cause)
	}
}

func TestWrap_NilCause(t *testing.T) {
	err := Wrap(DomainEngine, CodeFailed, nil, "no cause")
	if err.GetCause() != nil {
		t.Errorf("GetCause() = %v, want nil", err.GetCause())
	}
}

func TestIs_MatchesDomainAndCode(t *testing.T) {
	err := New(DomainScript, CodeScriptTimeout, "timed out")

	if !Is(err, DomainScript, CodeScriptTimeout) {
		t.Error("Is() = false, want true for matching domain and code")
	}
	if Is(err, DomainScript, CodeScriptThrown) {
		t.Error("Is() = true, want false for mismatched code")
	}
	if Is(err, DomainIO, CodeScriptTimeout) {
		t.Error("Is() = true, want false for mismatched domain")
	}
}

func TestIs_WrappedChain(t *testing.T) {
	inner := New(DomainScript, CodeScriptSyntax, "bad token")
	outer := fmt.Errorf("running file: %w", inner)

	if !Is(outer, DomainScript, CodeScriptSyntax) {
		t.Error("Is() = false, want true through a wrapped chain")
	}
	if GetDomain(outer) != DomainScript {
		t.Errorf("GetDomain() = %q, want %q", GetDomain(outer), DomainScript)
	}
	if GetCode(outer) != CodeScriptSyntax {
		t.Errorf("GetCode() = %d, want %d", GetCode(outer), CodeScriptSyntax)
	}
}

func TestGetCode_NoNativeError(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != -1 {
		t.Errorf("GetCode(plain error) = %d, want -1", got)
	}
	if got := GetCode(nil); got != -1 {
		t.Errorf("GetCode(nil) = %d, want -1", got)
	}
}

// ---------------------------------------------------------------------------
// FromError
// ---------------------------------------------------------------------------

func TestFromError(t *testing.T) {
	native := New(DomainIO, CodeIORead, "native")
	if got := FromError(DomainEngine, native); got != native {
		t.Errorf("FromError(native) = %v, want the same value back", got)
	}

	plain := errors.New("plain failure")
	wrapped := FromError(DomainEngine, plain)
	if wrapped.GetDomain() != DomainEngine || wrapped.GetCode() != CodeFailed {
		t.Errorf("FromError(plain) = [%s:%d], want [%s:%d]",
			wrapped.GetDomain(), wrapped.GetCode(), DomainEngine, CodeFailed)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("FromError(plain) should wrap the original error")
	}

	if FromError(DomainEngine, nil) != nil {
		t.Error("FromError(nil) should be nil")
	}
}

// ---------------------------------------------------------------------------
// Free: consumed-once ownership
// ---------------------------------------------------------------------------

func TestFree_Once(t *testing.T) {
	err := New(DomainIO, CodeIORead, "owned")

	if err.Released() {
		t.Error("Released() = true before Free")
	}
	err.Free()
	if !err.Released() {
		t.Error("Released() = false after Free")
	}
}

func TestFree_TwicePanics(t *testing.T) {
	err := New(DomainIO, CodeIORead, "owned")
	err.Free()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on double free, got none")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "double free") {
			t.Errorf("panic = %v, want message mentioning double free", r)
		}
	}()
	err.Free()
}

func TestFree_NilIsSafe(t *testing.T) {
	var err *Error
	err.Free() // must not panic
}
