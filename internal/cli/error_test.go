package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/wickjs/wick/internal/engine"
	"github.com/wickjs/wick/internal/wkerr"
)

func init() {
	// Force plain mode in tests so style functions return raw text (no ANSI codes).
	SetDefault(&Config{Mode: ModePlain})
}

// ---------------------------------------------------------------------------
// FormatError: script error with full source context
// ---------------------------------------------------------------------------

func TestFormatError_ScriptError(t *testing.T) {
	err := &engine.ScriptError{
		Message: "TypeError: col is not a function",
		File:    "scripts/user.js",
		Line:    15,
		Column:  13,
		Source:  "  userName: col.string(50),",
	}

	output := FormatError(err)

	checks := []string{
		"error",
		"TypeError: col is not a function",
		"-->",
		"scripts/user.js:15:13",
		"15",
		"col.string(50)",
		"^",
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("FormatError output missing %q\ngot:\n%s", want, output)
		}
	}
}

// ---------------------------------------------------------------------------
// FormatError: script error wrapped by a native error carries its code
// ---------------------------------------------------------------------------

func TestFormatError_ScriptErrorWrapped(t *testing.T) {
	se := &engine.ScriptError{
		Message: "ReferenceError: db is not defined",
		File:    "scripts/load.js",
		Line:    3,
		Column:  1,
		Source:  "db.connect();",
	}
	err := wkerr.Wrap(wkerr.DomainScript, wkerr.CodeScriptThrown, se, "script failed")

	output := FormatError(err)

	if !strings.Contains(output, "wick-script:1") {
		t.Errorf("expected domain:code label in output\ngot:\n%s", output)
	}
	if !strings.Contains(output, "ReferenceError: db is not defined") {
		t.Errorf("expected script message in output\ngot:\n%s", output)
	}
	if !strings.Contains(output, "scripts/load.js:3:1") {
		t.Errorf("expected file location in output\ngot:\n%s", output)
	}
}

// ---------------------------------------------------------------------------
// FormatError: script stack filtering
// ---------------------------------------------------------------------------

func TestFormatError_ScriptStackFiltered(t *testing.T) {
	err := &engine.ScriptError{
		Message: "Error: boom",
		File:    "main.js",
		Line:    5,
		Stack: "at inner (main.js:2:3)\n" +
			"at github.com/wickjs/wick/internal/engine.run (native)\n" +
			"at outer (main.js:5:1)",
	}

	output := FormatError(err)

	if !strings.Contains(output, "script stack") {
		t.Errorf("expected script stack note\ngot:\n%s", output)
	}
	if !strings.Contains(output, "at inner (main.js:2:3)") {
		t.Errorf("expected script frame preserved\ngot:\n%s", output)
	}
	if !strings.Contains(output, "at outer (main.js:5:1)") {
		t.Errorf("expected script frame preserved\ngot:\n%s", output)
	}
	if strings.Contains(output, "github.com") {
		t.Errorf("host frames should be filtered out\ngot:\n%s", output)
	}
}

func TestFormatError_HostOnlyStackOmitted(t *testing.T) {
	err := &engine.ScriptError{
		Message: "Error: boom",
		File:    "main.js",
		Line:    1,
		Stack:   "at github.com/wickjs/wick/internal/engine.run (native)",
	}

	output := FormatError(err)

	if strings.Contains(output, "script stack") {
		t.Errorf("stack note should be omitted when no script frames remain\ngot:\n%s", output)
	}
}

// ---------------------------------------------------------------------------
// FormatError: native error with context and help
// ---------------------------------------------------------------------------

func TestFormatError_NativeError(t *testing.T) {
	err := wkerr.New(wkerr.DomainConfig, wkerr.CodeConfigValue, "invalid timeout value").
		With("value", "chunky").
		With("help", "use a duration like 30s or 500ms")

	output := FormatError(err)

	checks := []string{
		"error",
		"wick-config:2",
		"invalid timeout value",
		"value: chunky",
		"help:",
		"use a duration like 30s or 500ms",
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("FormatError output missing %q\ngot:\n%s", want, output)
		}
	}
}

// ---------------------------------------------------------------------------
// FormatError: native error, file only (no line number)
// ---------------------------------------------------------------------------

func TestFormatError_NativeFileOnly(t *testing.T) {
	err := wkerr.New(wkerr.DomainIO, wkerr.CodeIORead, "cannot read script").
		WithLocation("scripts/missing.js", 0, 0)

	output := FormatError(err)

	if !strings.Contains(output, "-->") {
		t.Errorf("expected file header\ngot:\n%s", output)
	}
	if !strings.Contains(output, "scripts/missing.js") {
		t.Errorf("expected file path\ngot:\n%s", output)
	}
	// Should NOT have ":0" when line==0
	if strings.Contains(output, "scripts/missing.js:0") {
		t.Errorf("FormatError should not include :0 for line 0\ngot:\n%s", output)
	}
}

// ---------------------------------------------------------------------------
// FormatError: native error with source context
// ---------------------------------------------------------------------------

func TestFormatError_NativeSourceContext(t *testing.T) {
	err := wkerr.New(wkerr.DomainScript, wkerr.CodeScriptSyntax, "unexpected token").
		WithLocation("scripts/app.js", 7, 9).
		WithSource("var x = ;")

	output := FormatError(err)

	checks := []string{
		"wick-script:2",
		"scripts/app.js:7:9",
		"var x = ;",
		"^",
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("FormatError output missing %q\ngot:\n%s", want, output)
		}
	}
}

// ---------------------------------------------------------------------------
// FormatError: wrapped cause
// ---------------------------------------------------------------------------

func TestFormatError_WithCause(t *testing.T) {
	cause := errors.New("open scripts/main.js: no such file or directory")
	err := wkerr.Wrap(wkerr.DomainIO, wkerr.CodeIORead, cause, "failed to read script")

	output := FormatError(err)

	if !strings.Contains(output, "cause:") {
		t.Errorf("expected 'cause:' in output\ngot:\n%s", output)
	}
	if !strings.Contains(output, "no such file or directory") {
		t.Errorf("expected cause message in output\ngot:\n%s", output)
	}
}

// ---------------------------------------------------------------------------
// trimNativeFrames tests
// ---------------------------------------------------------------------------

func TestTrimNativeFrames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "goja native frame",
			input: "some error at github.com/dop251/goja.run (native)",
			want:  "some error",
		},
		{
			name:  "no frames",
			input: "plain message",
			want:  "plain message",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trimNativeFrames(tt.input)
			if got != tt.want {
				t.Errorf("trimNativeFrames(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// codeLabel tests
// ---------------------------------------------------------------------------

func TestCodeLabel(t *testing.T) {
	if got := codeLabel(errors.New("plain")); got != "" {
		t.Errorf("codeLabel(plain error) = %q, want empty", got)
	}

	err := wkerr.New(wkerr.DomainScript, wkerr.CodeScriptTimeout, "timed out")
	if got := codeLabel(err); got != "wick-script:3" {
		t.Errorf("codeLabel = %q, want %q", got, "wick-script:3")
	}
}

// ---------------------------------------------------------------------------
// FormatError: generic error
// ---------------------------------------------------------------------------

func TestFormatError_GenericError(t *testing.T) {
	err := errors.New("something went wrong")
	output := FormatError(err)

	if !strings.Contains(output, "error:") {
		t.Errorf("expected 'error:' in output\ngot:\n%s", output)
	}
	if !strings.Contains(output, "something went wrong") {
		t.Errorf("expected message in output\ngot:\n%s", output)
	}
	// Should NOT contain a code label since it's not structured
	if strings.Contains(output, "error[") {
		t.Errorf("generic error should not have a code label\ngot:\n%s", output)
	}
}

// ---------------------------------------------------------------------------
// FormatError: nil error
// ---------------------------------------------------------------------------

func TestFormatError_Nil(t *testing.T) {
	output := FormatError(nil)
	if output != "" {
		t.Errorf("FormatError(nil) should return empty string\ngot: %q", output)
	}
}

// ---------------------------------------------------------------------------
// Diagnostic helpers
// ---------------------------------------------------------------------------

func TestFormatWarning_WithSource(t *testing.T) {
	output := FormatWarning("reference to undefined property",
		WithFile("scripts/app.js", 12, 3),
		WithSource("  obj.missing;", 3, 13, "not defined"))

	checks := []string{
		"warning",
		"reference to undefined property",
		"scripts/app.js:12:3",
		"obj.missing",
		"^",
		"not defined",
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("FormatWarning output missing %q\ngot:\n%s", want, output)
		}
	}
}

func TestFormatWarning_NotesAndHelps(t *testing.T) {
	output := FormatWarning("slow script",
		WithNotes("took longer than 1s"),
		WithHelps("consider raising the timeout"))

	if !strings.Contains(output, "note:") {
		t.Errorf("expected 'note:' in output\ngot:\n%s", output)
	}
	if !strings.Contains(output, "help:") {
		t.Errorf("expected 'help:' in output\ngot:\n%s", output)
	}
}

func TestFormatNote(t *testing.T) {
	output := FormatNote("watching 3 files")
	if !strings.Contains(output, "note: watching 3 files") {
		t.Errorf("unexpected note output: %q", output)
	}
}

func TestFormatHelp(t *testing.T) {
	output := FormatHelp("run with --harden to freeze prototypes")
	if !strings.Contains(output, "help: run with --harden to freeze prototypes") {
		t.Errorf("unexpected help output: %q", output)
	}
}

func TestFormatSuccess(t *testing.T) {
	output := FormatSuccess("ran 3 scripts")
	if !strings.Contains(output, "success: ran 3 scripts") {
		t.Errorf("unexpected success output: %q", output)
	}
}
