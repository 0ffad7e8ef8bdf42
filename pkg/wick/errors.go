package wick

import (
	"errors"

	"github.com/wickjs/wick/internal/engine"
)

// Common errors returned by the host API.
var (
	// ErrClosed reports use of a Host after Close.
	ErrClosed = errors.New("wick: host is closed")
)

// ScriptError carries the script-visible message of a failed run together
// with the file, position, failing source line and rendered stack when the
// runtime provides them. Failed runs return a coded error wrapping one of
// these; unwrap it with AsScriptError.
type ScriptError = engine.ScriptError

// AsScriptError returns the ScriptError in err's chain, if any.
func AsScriptError(err error) (*ScriptError, bool) {
	var se *ScriptError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
