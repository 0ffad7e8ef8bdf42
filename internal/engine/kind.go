package engine

import "fmt"

// Kind identifies which standard error constructor a raised exception uses.
// The set is closed: raising any other kind is a bug in the caller and
// panics rather than producing a malformed exception.
type Kind int

// Exception kinds.
const (
	// KindGeneric is the plain Error constructor.
	KindGeneric Kind = iota
	// KindInternal marks failures inside the runtime or bridge itself.
	KindInternal
	KindEval
	KindRange
	KindReference
	KindSyntax
	KindType
	KindURI
	// KindIterationStop mirrors the legacy StopIteration protocol object.
	KindIterationStop

	kindCount // sentinel, keep last
)

// ctorNames maps each kind to the global constructor it instantiates.
// InternalError and StopIteration are not runtime intrinsics; the Context
// bootstraps them before capturing the canonical set.
var ctorNames = [kindCount]string{
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

// String returns the constructor name for the kind.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return ctorNames[k]
}

func (k Kind) valid() bool {
	return k >= KindGeneric && k < kindCount
}

// mustBeValid panics when k is outside the closed set of raisable kinds.
func (k Kind) mustBeValid() {
	if !k.valid() {
		panic(fmt.Sprintf("engine: invalid exception kind %d", int(k)))
	}
}
