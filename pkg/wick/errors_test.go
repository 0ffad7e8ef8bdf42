package wick

import (
	"errors"
	"testing"

	"github.com/wickjs/wick/internal/engine"
	"github.com/wickjs/wick/internal/wkerr"
)

// ===========================================================================
// AsScriptError Tests
// ===========================================================================

func TestAsScriptError_Nil(t *testing.T) {
	if _, ok := AsScriptError(nil); ok {
		t.Error("AsScriptError(nil) should report false")
	}
}

func TestAsScriptError_PlainError(t *testing.T) {
	if _, ok := AsScriptError(errors.New("boom")); ok {
		t.Error("AsScriptError should report false for a plain error")
	}
}

func TestAsScriptError_Wrapped(t *testing.T) {
	se := &ScriptError{Message: "ReferenceError: nope is not defined", File: "main.js", Line: 3}
	err := wkerr.Wrap(wkerr.DomainScript, wkerr.CodeScriptThrown, se, "run main.js")

	got, ok := AsScriptError(err)
	if !ok {
		t.Fatalf("AsScriptError() = false for %v", err)
	}
	if got != se {
		t.Error("AsScriptError should return the wrapped value")
	}
}

// ===========================================================================
// Script Code Mapping Tests
// ===========================================================================

func TestScriptCode(t *testing.T) {
	_, syntaxErr := engine.Compile("t.js", `function {`)
	if syntaxErr == nil {
		t.Fatal("Compile should reject invalid syntax")
	}

	tests := []struct {
		name  string
		cause error
		want  int
	}{
		{"thrown", nil, wkerr.CodeScriptThrown},
		{"timeout", engine.ErrTimeout, wkerr.CodeScriptTimeout},
		{"oom", engine.ErrOutOfMemory, wkerr.CodeScriptOOM},
		{"syntax", syntaxErr, wkerr.CodeScriptSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := &ScriptError{Message: "failed", Cause: tt.cause}
			if got := scriptCode(se); got != tt.want {
				t.Errorf("scriptCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
