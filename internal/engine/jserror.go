package engine

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

// ScriptError describes a failed script run: the script-visible message
// plus the source position and stack extracted from the runtime's error
// types. It wraps the underlying runtime error (or one of the execution
// sentinels) for errors.Is checks.
type ScriptError struct {
	Message string
	File    string
	Line    int
	Column  int
	Stack   string // runtime-rendered stack, empty when unavailable
	Source  string // source text of the failing line, when available
	Cause   error
}

// Error returns the position-prefixed message.
func (e *ScriptError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying runtime error.
func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// parseScriptError extracts position and stack information from a runtime
// error. The runtime surfaces three error shapes: compiler syntax errors,
// thrown exceptions, and interrupts.
func parseScriptError(err error) *ScriptError {
	if err == nil {
		return nil
	}

	se := &ScriptError{
		Message: err.Error(),
		Cause:   err,
	}

	// Syntax errors from the compiler carry structured position info.
	if syntaxErr, ok := err.(*goja.CompilerSyntaxError); ok {
		se.Message = syntaxErr.Error()
		if syntaxErr.File != nil {
			pos := syntaxErr.File.Position(syntaxErr.Offset)
			se.Line = pos.Line
			se.Column = pos.Column
		}
		return se
	}

	if exception, ok := err.(*goja.Exception); ok {
		se.Message = exception.Value().String()
		se.Stack = exception.String()

		// Use the structured stack frames, skipping native Go frames
		// (line 0) to find the first script call site.
		if frames := exception.Stack(); len(frames) > 0 {
			for i := range frames {
				pos := frames[i].Position()
				if pos.Line > 0 {
					se.File = frames[i].SrcName()
					se.Line = pos.Line
					se.Column = pos.Column
					break
				}
			}
		} else {
			// Syntax errors wrapped in an exception have zero stack
			// frames; fall back to the runtime's message format.
			parsePositionFromMessage(se)
		}
		return se
	}

	if interrupted, ok := err.(*goja.InterruptedError); ok {
		se.Message = "execution interrupted: " + interrupted.String()
		return se
	}

	return se
}

// parsePositionFromMessage parses the runtime's syntax-error message
// format: "SyntaxError: (file): Line X:Y Unexpected ...". Used only when an
// exception carries no stack frames.
func parsePositionFromMessage(se *ScriptError) {
	msg := se.Message

	lineIdx := strings.Index(msg, "Line ")
	if lineIdx == -1 {
		return
	}

	rest := msg[lineIdx+5:]

	colonIdx := strings.Index(rest, ":")
	if colonIdx == -1 {
		return
	}

	if line, err := strconv.Atoi(rest[:colonIdx]); err == nil {
		se.Line = line
	}

	rest = rest[colonIdx+1:]
	spaceIdx := strings.Index(rest, " ")
	if spaceIdx != -1 {
		if col, err := strconv.Atoi(rest[:spaceIdx]); err == nil {
			se.Column = col
		}
	}
}

// GetSourceLine reads a specific line from a string of code.
//
// Line numbers are 1-indexed (first line is 1, not 0), matching the
// runtime's error reporting convention. Do NOT adjust line numbers before
// calling this function.
func GetSourceLine(code string, lineNum int) string {
	if lineNum <= 0 || code == "" {
		return ""
	}

	scanner := bufio.NewScanner(strings.NewReader(code))
	currentLine := 0
	for scanner.Scan() {
		currentLine++
		if currentLine == lineNum {
			return scanner.Text()
		}
	}
	return ""
}

// GetSourceLineFromFile reads a specific line from a file.
//
// Line numbers are 1-indexed, matching the runtime's error reporting
// convention. Adjusting them before the call causes off-by-one source
// display in error messages.
func GetSourceLineFromFile(path string, lineNum int) string {
	if lineNum <= 0 || path == "" {
		return ""
	}

	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	currentLine := 0
	for scanner.Scan() {
		currentLine++
		if currentLine == lineNum {
			return scanner.Text()
		}
	}
	return ""
}
