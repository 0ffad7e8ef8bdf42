package engine

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/wickjs/wick/internal/jsutil"
	"github.com/wickjs/wick/internal/wkerr"
)

// ---------------------------------------------------------------------------
// ThrowNative: conversion and overwrite
// ---------------------------------------------------------------------------

func TestThrowNative_ConvertsDomainAndCode(t *testing.T) {
	c, _ := newTestContext(t)

	c.ThrowNative(wkerr.New(wkerr.DomainIO, wkerr.CodeIORead, "disk failed"))

	exc := c.Pending()
	if exc == nil {
		t.Fatal("expected a pending exception, got nil")
	}
	obj := exc.(*goja.Object)

	if msg, _ := jsutil.GetString(obj, "message"); msg != "disk failed" {
		t.Errorf("message = %q, want %q", msg, "disk failed")
	}
	if name, _ := jsutil.GetString(obj, "name"); name != "wick-io" {
		t.Errorf("name = %q, want %q", name, "wick-io")
	}
	if domain, _ := jsutil.GetString(obj, "domain"); domain != "wick-io" {
		t.Errorf("domain = %q, want %q", domain, "wick-io")
	}
	if code, _ := jsutil.GetInt(obj, "code"); code != wkerr.CodeIORead {
		t.Errorf("code = %d, want %d", code, wkerr.CodeIORead)
	}
}

func TestThrowNative_OverwritesPending(t *testing.T) {
	c, _ := newTestContext(t)

	c.Throw("stale script failure")
	c.ThrowNative(wkerr.New(wkerr.DomainIO, wkerr.CodeIOWrite, "fresh native failure"))

	obj := c.Pending().(*goja.Object)
	if msg, _ := jsutil.GetString(obj, "message"); msg != "fresh native failure" {
		t.Errorf("pending message = %q, want the native error to win", msg)
	}
}

func TestThrowNative_NilIsNoOp(t *testing.T) {
	c, _ := newTestContext(t)

	c.ThrowNative(nil)
	if c.HasPending() {
		t.Error("nil error must not raise")
	}

	c.Throw("already here")
	c.ThrowNative(nil)
	obj := c.Pending().(*goja.Object)
	if msg, _ := jsutil.GetString(obj, "message"); msg != "already here" {
		t.Errorf("pending message = %q, nil error must not disturb the slot", msg)
	}
}

// ---------------------------------------------------------------------------
// ThrowNative: ownership
// ---------------------------------------------------------------------------

func TestThrowNative_ConsumesError(t *testing.T) {
	c, _ := newTestContext(t)

	nerr := wkerr.New(wkerr.DomainEngine, wkerr.CodeFailed, "boom")
	c.ThrowNative(nerr)

	if !nerr.Released() {
		t.Error("error must be released after ThrowNative")
	}

	// A second release is the caller's bug and must be loud.
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected Free after ThrowNative to panic")
			}
		}()
		nerr.Free()
	}()
}

func TestThrowNative_ConsumesErrorOnFailure(t *testing.T) {
	c, _ := newTestContext(t)

	// Simulate conversion failure: no constructor to instantiate.
	c.ctors[KindGeneric] = nil

	nerr := wkerr.New(wkerr.DomainIO, wkerr.CodeIORead, "boom")
	c.ThrowNative(nerr)

	if c.HasPending() {
		t.Error("failed conversion must leave the slot untouched")
	}
	if !nerr.Released() {
		t.Error("error must be released even when conversion fails")
	}
}

// ---------------------------------------------------------------------------
// NativeFromValue
// ---------------------------------------------------------------------------

func TestNativeFromValue_RoundTrip(t *testing.T) {
	c, _ := newTestContext(t)

	c.ThrowNative(wkerr.New(wkerr.DomainConfig, wkerr.CodeConfigValue, "bad port"))
	back := c.NativeFromValue(c.TakePending())
	if back == nil {
		t.Fatal("expected a native error, got nil")
	}
	defer back.Free()

	if got := back.GetDomain(); got != wkerr.DomainConfig {
		t.Errorf("domain = %q, want %q", got, wkerr.DomainConfig)
	}
	if got := back.GetCode(); got != wkerr.CodeConfigValue {
		t.Errorf("code = %d, want %d", got, wkerr.CodeConfigValue)
	}
	if got := back.GetMessage(); got != "bad port" {
		t.Errorf("message = %q, want %q", got, "bad port")
	}
}

func TestNativeFromValue_PlainScriptError(t *testing.T) {
	c, _ := newTestContext(t)

	v, err := c.VM().RunString(`new RangeError("out of range")`)
	if err != nil {
		t.Fatalf("building value: %v", err)
	}

	nerr := c.NativeFromValue(v)
	if nerr == nil {
		t.Fatal("expected a native error, got nil")
	}
	defer nerr.Free()

	if got := nerr.GetDomain(); got != wkerr.DomainScript {
		t.Errorf("domain = %q, want %q", got, wkerr.DomainScript)
	}
	if got := nerr.GetCode(); got != wkerr.CodeScriptThrown {
		t.Errorf("code = %d, want %d", got, wkerr.CodeScriptThrown)
	}
	if got := nerr.GetMessage(); got != "out of range" {
		t.Errorf("message = %q, want %q", got, "out of range")
	}
}

func TestNativeFromValue_NonObjectValue(t *testing.T) {
	c, _ := newTestContext(t)

	nerr := c.NativeFromValue(c.VM().ToValue("bare string throw"))
	if nerr == nil {
		t.Fatal("expected a native error, got nil")
	}
	defer nerr.Free()

	if got := nerr.GetMessage(); got != "bare string throw" {
		t.Errorf("message = %q, want %q", got, "bare string throw")
	}
	if got := nerr.GetDomain(); got != wkerr.DomainScript {
		t.Errorf("domain = %q, want %q", got, wkerr.DomainScript)
	}
}

func TestNativeFromValue_EmptyValues(t *testing.T) {
	c, _ := newTestContext(t)

	if got := c.NativeFromValue(nil); got != nil {
		t.Errorf("NativeFromValue(nil) = %v, want nil", got)
	}
	if got := c.NativeFromValue(goja.Undefined()); got != nil {
		t.Errorf("NativeFromValue(undefined) = %v, want nil", got)
	}
	if got := c.NativeFromValue(goja.Null()); got != nil {
		t.Errorf("NativeFromValue(null) = %v, want nil", got)
	}
}
