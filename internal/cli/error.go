package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wickjs/wick/internal/engine"
	"github.com/wickjs/wick/internal/wkerr"
)

// MessageType represents the type of diagnostic message.
type MessageType int

const (
	TypeError MessageType = iota
	TypeWarning
	TypeNote
	TypeHelp
)

// DiagnosticMessage represents a single diagnostic message with optional
// source context.
type DiagnosticMessage struct {
	Type    MessageType
	Code    string // Error code like "wick-script:1" (empty for warnings/notes/help)
	Message string
	File    string
	Line    int
	Column  int
	Source  string   // The source line
	Span    [2]int   // [start, end] column indices for highlighting
	Label   string   // Label to show under the span
	Notes   []string // Additional notes
	Helps   []string // Help suggestions
}

// FormatError formats an error for CLI display in Cargo/rustc style.
//
// Script failures render with their source position, the failing line, and
// a caret under the failing column. Native errors render with their
// domain:code label and context. Anything else formats as a generic error.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var se *engine.ScriptError
	if errors.As(err, &se) {
		return formatScriptError(se, codeLabel(err))
	}

	var nerr *wkerr.Error
	if errors.As(err, &nerr) {
		return formatNativeError(nerr)
	}

	return formatGenericError(err)
}

// codeLabel extracts the domain:code label when a native error wraps the
// script failure, e.g. "wick-script:3" for a timeout surfaced by the host.
func codeLabel(err error) string {
	var nerr *wkerr.Error
	if !errors.As(err, &nerr) {
		return ""
	}
	return fmt.Sprintf("%s:%d", nerr.GetDomain(), nerr.GetCode())
}

// formatScriptError renders a failed script run:
//
//	error[wick-script:1]: TypeError: col is not a function
//	  --> schemas/user.js:15:12
//	   |
//	15 |   userName: col.string(50),
//	   |             ^
//	   |
func formatScriptError(se *engine.ScriptError, code string) string {
	var b strings.Builder

	b.WriteString(Error("error"))
	if code != "" {
		b.WriteString("[")
		b.WriteString(Code(code))
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(trimNativeFrames(se.Message))
	b.WriteString("\n")

	if se.File != "" {
		b.WriteString(RenderFileHeader(se.File, se.Line, se.Column))
	}

	if se.Source != "" && se.Line > 0 {
		b.WriteString(formatSourceContext(se.Line, se.Source, se.Column, 0, 0, ""))
	}

	// The script-side stack, dimmed so the position block stays prominent.
	if stack := scriptStackBlock(se.Stack); stack != "" {
		b.WriteString(stack)
	}

	return b.String()
}

// scriptStackBlock renders the runtime stack under a "note:" label, dropping
// host-side frames that mean nothing to script authors.
func scriptStackBlock(stack string) string {
	lines := strings.Split(strings.TrimRight(stack, "\n"), "\n")
	var frames []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "at ") {
			continue
		}
		if strings.Contains(line, "(native)") || strings.Contains(line, "github.com/") {
			continue
		}
		frames = append(frames, line)
	}
	if len(frames) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(Note("note"))
	b.WriteString(": script stack\n")
	for _, f := range frames {
		b.WriteString("  ")
		b.WriteString(Dim(f))
		b.WriteString("\n")
	}
	return b.String()
}

// formatNativeError formats a *wkerr.Error in Cargo style.
func formatNativeError(err *wkerr.Error) string {
	var b strings.Builder

	ctx := err.GetContext()

	// First line: error[wick-config:2]: message
	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(fmt.Sprintf("%s:%d", err.GetDomain(), err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	file, line, col, hasLoc := err.Location()
	if hasLoc {
		b.WriteString(RenderFileHeader(file, line, col))
	}

	source, hasSource := ctx["source"].(string)
	var linePadding string
	if hasSource && line > 0 {
		b.WriteString(formatSourceContext(line, source, col, 0, 0, ""))
		linePadding = strings.Repeat(" ", len(fmt.Sprintf("%d", line))) + " "
	}

	// Context details (excluding already shown items)
	excludeKeys := map[string]bool{
		"file": true, "line": true, "column": true,
		"source": true, "help": true,
	}

	var details []string
	for k, v := range ctx {
		if excludeKeys[k] {
			continue
		}
		details = append(details, fmt.Sprintf("%s: %v", k, v))
	}

	if len(details) > 0 && !hasSource {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		for _, detail := range details {
			b.WriteString("   ")
			b.WriteString(Pipe())
			b.WriteString(" ")
			b.WriteString(detail)
			b.WriteString("\n")
		}
	}

	if help, ok := ctx["help"].(string); ok && help != "" {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	if cause := err.GetCause(); cause != nil {
		if linePadding != "" {
			b.WriteString(linePadding)
		} else {
			b.WriteString("   ")
		}
		b.WriteString(Pipe())
		b.WriteString("\n")
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(trimNativeFrames(cause.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// trimNativeFrames removes runtime-rendered Go stack noise from error
// messages. Thrown values stringified by the runtime carry trailing
// " at github.com/.../func (native)" fragments that mean nothing to script
// authors.
func trimNativeFrames(msg string) string {
	if idx := strings.Index(msg, " at github.com"); idx != -1 {
		msg = strings.TrimSpace(msg[:idx])
	}
	return msg
}

// formatSourceContext renders source code with line numbers and an optional
// caret highlight.
func formatSourceContext(line int, source string, col, spanStart, spanEnd int, label string) string {
	var b strings.Builder

	lineStr := fmt.Sprintf("%d", line)
	padding := strings.Repeat(" ", len(lineStr))

	// Empty line with pipe
	b.WriteString(padding)
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString("\n")

	// Source line: "15 |   userName: col.string(50),"
	b.WriteString(LineNum(lineStr))
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString(" ")
	b.WriteString(Source(source))
	b.WriteString("\n")

	// Pointer line: "   |   ^^^^^^^^ message"
	if spanStart > 0 || spanEnd > 0 || col > 0 {
		b.WriteString(padding)
		b.WriteString(" ")
		b.WriteString(Pipe())
		b.WriteString(" ")

		start := spanStart
		if start == 0 && col > 0 {
			start = col
		}
		end := spanEnd
		if end == 0 {
			end = start + 1
		}

		if start > 1 {
			b.WriteString(strings.Repeat(" ", start-1))
		}

		pointerLen := end - start + 1
		if pointerLen < 1 {
			pointerLen = 1
		}
		b.WriteString(Pointer(strings.Repeat("^", pointerLen)))

		if label != "" {
			b.WriteString(" ")
			b.WriteString(label)
		}
		b.WriteString("\n")

		// Closing pipe line
		b.WriteString(padding)
		b.WriteString(" ")
		b.WriteString(Pipe())
		b.WriteString("\n")
	}

	return b.String()
}

// formatGenericError formats an error with no structured information.
func formatGenericError(err error) string {
	var b strings.Builder
	b.WriteString(Error("error"))
	b.WriteString(": ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	return b.String()
}

// FormatWarning formats a warning message in Cargo style.
func FormatWarning(msg string, opts ...DiagnosticOption) string {
	diag := &DiagnosticMessage{
		Type:    TypeWarning,
		Message: msg,
	}
	for _, opt := range opts {
		opt(diag)
	}
	return formatDiagnostic(diag)
}

// FormatNote formats a note message.
func FormatNote(msg string) string {
	var b strings.Builder
	b.WriteString(Note("note"))
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	return b.String()
}

// FormatHelp formats a help message.
func FormatHelp(msg string) string {
	var b strings.Builder
	b.WriteString(Help("help"))
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	return b.String()
}

// FormatSuccess formats a success message.
func FormatSuccess(msg string) string {
	var b strings.Builder
	b.WriteString(Success("success"))
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	return b.String()
}

// DiagnosticOption configures a diagnostic message.
type DiagnosticOption func(*DiagnosticMessage)

// WithFile sets the file location for a diagnostic.
func WithFile(file string, line, col int) DiagnosticOption {
	return func(d *DiagnosticMessage) {
		d.File = file
		d.Line = line
		d.Column = col
	}
}

// WithSource sets the source context for a diagnostic.
func WithSource(source string, spanStart, spanEnd int, label string) DiagnosticOption {
	return func(d *DiagnosticMessage) {
		d.Source = source
		d.Span = [2]int{spanStart, spanEnd}
		d.Label = label
	}
}

// WithNotes adds notes to a diagnostic.
func WithNotes(notes ...string) DiagnosticOption {
	return func(d *DiagnosticMessage) {
		d.Notes = append(d.Notes, notes...)
	}
}

// WithHelps adds help suggestions to a diagnostic.
func WithHelps(helps ...string) DiagnosticOption {
	return func(d *DiagnosticMessage) {
		d.Helps = append(d.Helps, helps...)
	}
}

// formatDiagnostic formats a DiagnosticMessage.
func formatDiagnostic(d *DiagnosticMessage) string {
	var b strings.Builder

	switch d.Type {
	case TypeError:
		b.WriteString(Error("error"))
		if d.Code != "" {
			b.WriteString("[")
			b.WriteString(Code(d.Code))
			b.WriteString("]")
		}
	case TypeWarning:
		b.WriteString(Warning("warning"))
	case TypeNote:
		b.WriteString(Note("note"))
	case TypeHelp:
		b.WriteString(Help("help"))
	}

	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteString("\n")

	if d.File != "" {
		b.WriteString(RenderFileHeader(d.File, d.Line, d.Column))
	}

	if d.Source != "" && d.Line > 0 {
		b.WriteString(formatSourceContext(d.Line, d.Source, d.Column, d.Span[0], d.Span[1], d.Label))
	}

	for _, note := range d.Notes {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		b.WriteString(Note("note"))
		b.WriteString(": ")
		b.WriteString(note)
		b.WriteString("\n")
	}

	for _, help := range d.Helps {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	return b.String()
}
