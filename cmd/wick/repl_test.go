package main

import (
	"errors"
	"testing"

	"github.com/wickjs/wick/pkg/wick"
)

// ===========================================================================
// Continuation Detection Tests
// ===========================================================================

func TestIncompleteInput(t *testing.T) {
	host, err := wick.New()
	if err != nil {
		t.Fatalf("wick.New() error = %v", err)
	}
	defer host.Close()

	tests := []struct {
		name    string
		src     string
		wantErr bool
		want    bool
	}{
		{"open function body", "function f() {", true, true},
		{"open array literal", "[1, 2,", true, true},
		{"dangling operator", "1 +", true, true},
		{"complete syntax error", "function ((", true, false},
		{"thrown error", "nope()", true, false},
		{"valid input", "1 + 1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, runErr := host.RunString(tt.src)
			if (runErr != nil) != tt.wantErr {
				t.Fatalf("RunString(%q) error = %v, wantErr %v", tt.src, runErr, tt.wantErr)
			}
			if got := incompleteInput(runErr); got != tt.want {
				t.Errorf("incompleteInput(%v) = %v, want %v", runErr, got, tt.want)
			}
		})
	}
}

func TestIncompleteInput_NonScriptErrors(t *testing.T) {
	if incompleteInput(nil) {
		t.Error("nil error should not read as incomplete input")
	}
	if incompleteInput(errors.New("Unexpected end of input")) {
		t.Error("plain errors should not read as incomplete input")
	}
}
