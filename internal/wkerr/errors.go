// Package wkerr provides the native error value exchanged between Go code
// and embedded scripts. Every error carries a domain, a numeric code within
// that domain, structured context, and proper wrapping. Errors handed to the
// script bridge are owned values: the bridge consumes them with Free exactly
// once, and freeing twice is a programming error.
package wkerr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Domain groups error codes by the subsystem that produced them.
type Domain string

// Error domains.
const (
	// DomainEngine covers failures inside the embedded runtime itself.
	DomainEngine Domain = "wick-engine"
	// DomainScript covers failures surfaced from script execution.
	DomainScript Domain = "wick-script"
	// DomainIO covers file and stream failures in the host.
	DomainIO Domain = "wick-io"
	// DomainConfig covers configuration loading and validation failures.
	DomainConfig Domain = "wick-config"
)

// CodeFailed is the catch-all code every domain reserves for failures that
// have no more specific classification.
const CodeFailed = 0

// Script domain codes.
const (
	CodeScriptThrown  = 1 // Script threw an uncaught exception
	CodeScriptSyntax  = 2 // Script failed to compile
	CodeScriptTimeout = 3 // Execution exceeded the configured timeout
	CodeScriptOOM     = 4 // Execution exceeded the memory limit
)

// IO domain codes.
const (
	CodeIORead  = 1 // Reading a source file failed
	CodeIOWrite = 2 // Writing an output file failed
)

// Config domain codes.
const (
	CodeConfigParse = 1 // Config file could not be parsed
	CodeConfigValue = 2 // A configuration value is invalid
)

// Error is the standard native error value for Wick. It is the currency the
// bridge converts into script exceptions and back.
type Error struct {
	domain   Domain         // Subsystem that produced the error
	code     int            // Machine-readable code within the domain
	message  string         // Human-readable error message
	context  map[string]any // Structured context data
	cause    error          // Wrapped underlying error
	stack    string         // Stack trace for debugging
	released bool           // Set once the value has been consumed
}

// Error returns the formatted error string.
// Format:
//
//	[wick-io:1] failed to read script
//	  file: main.js
//	  cause: open main.js: no such file or directory
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s:%d] %s", e.domain, e.code, e.message))

	// Write context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// Two *Error values match when they share a domain and code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.domain == targetErr.domain && e.code == targetErr.code
	}

	return false
}

// Matches reports whether the error belongs to the given domain and code.
func (e *Error) Matches(domain Domain, code int) bool {
	return e.domain == domain && e.code == code
}

// GetDomain returns the error domain.
func (e *Error) GetDomain() Domain {
	return e.domain
}

// GetCode returns the numeric error code.
func (e *Error) GetCode() int {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the underlying cause error.
func (e *Error) GetCause() error {
	return e.cause
}

// GetStack returns the stack trace captured at construction.
func (e *Error) GetStack() string {
	return e.stack
}

// Free marks the error as consumed. Callers that hand an error to a
// consuming operation give up ownership; the consumer frees it exactly once.
// Freeing an already-freed error panics.
func (e *Error) Free() {
	if e == nil {
		return
	}
	if e.released {
		panic(fmt.Sprintf("wkerr: double free of [%s:%d]", e.domain, e.code))
	}
	e.released = true
}

// Released reports whether the error has been consumed via Free.
func (e *Error) Released() bool {
	return e.released
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithFile adds file location context to the error.
func (e *Error) WithFile(path string, line int) *Error {
	e.With("file", path)
	if line > 0 {
		e.With("line", line)
	}
	return e
}

// WithLocation adds complete source location context (file, line, column).
func (e *Error) WithLocation(file string, line, col int) *Error {
	e.With("file", file)
	if line > 0 {
		e.With("line", line)
	}
	if col > 0 {
		e.With("column", col)
	}
	return e
}

// WithSource adds the source code line for display in error messages.
func (e *Error) WithSource(source string) *Error {
	return e.With("source", source)
}

// Location returns the file location if set.
func (e *Error) Location() (file string, line, col int, ok bool) {
	file, _ = e.context["file"].(string)
	line, _ = e.context["line"].(int)
	col, _ = e.context["column"].(int)
	ok = file != ""
	return
}

// captureStack captures a stack trace for debugging.
func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		// Skip runtime internals
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// New creates a new Error in the given domain with the given code and message.
func New(domain Domain, code int, msg string) *Error {
	return &Error{
		domain:  domain,
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf creates a new Error with a formatted message.
func Newf(domain Domain, code int, format string, args ...any) *Error {
	return &Error{
		domain:  domain,
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(domain Domain, code int, err error, msg string) *Error {
	if err == nil {
		return New(domain, code, msg)
	}
	return &Error{
		domain:  domain,
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
		stack:   captureStack(3),
	}
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(domain Domain, code int, err error, format string, args ...any) *Error {
	return Wrap(domain, code, err, fmt.Sprintf(format, args...))
}

// FromError converts any error into an *Error. Existing *Error values are
// returned as-is; everything else is wrapped under the given domain with
// CodeFailed.
func FromError(domain Domain, err error) *Error {
	if err == nil {
		return nil
	}

	var werr *Error
	if errors.As(err, &werr) {
		return werr
	}

	return Wrap(domain, CodeFailed, err, err.Error())
}

// GetDomain extracts the domain from an error chain.
// Returns empty string if no native error is found.
func GetDomain(err error) Domain {
	if err == nil {
		return ""
	}

	var werr *Error
	if errors.As(err, &werr) {
		return werr.domain
	}

	return ""
}

// GetCode extracts the numeric code from an error chain.
// Returns -1 if no native error is found, since CodeFailed is a valid code.
func GetCode(err error) int {
	if err == nil {
		return -1
	}

	var werr *Error
	if errors.As(err, &werr) {
		return werr.code
	}

	return -1
}

// Is checks if an error belongs to the given domain and code.
func Is(err error, domain Domain, code int) bool {
	if err == nil {
		return false
	}

	var werr *Error
	if errors.As(err, &werr) {
		return werr.Matches(domain, code)
	}

	return false
}
