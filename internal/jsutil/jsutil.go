// Package jsutil provides safe, consistent JS<->Go value access for the
// embedded runtime. All accessors tolerate nil objects and missing keys
// instead of panicking.
package jsutil

import (
	"fmt"

	"github.com/dop251/goja"
)

// GetString safely retrieves a string property from a runtime object.
// Returns the value and true if the key exists and is a string, otherwise
// returns "" and false.
func GetString(obj *goja.Object, key string) (string, bool) {
	if obj == nil {
		return "", false
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return "", false
	}
	s, ok := v.Export().(string)
	return s, ok
}

// GetInt safely retrieves an integer property from a runtime object.
// Returns the value and true if the key exists and is a number, otherwise
// returns 0 and false.
func GetInt(obj *goja.Object, key string) (int, bool) {
	if obj == nil {
		return 0, false
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0, false
	}
	return toInt(v.Export())
}

// GetBool safely retrieves a boolean property from a runtime object.
// Returns the value and true if the key exists and is a boolean, otherwise
// returns false and false.
func GetBool(obj *goja.Object, key string) (bool, bool) {
	if obj == nil {
		return false, false
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return false, false
	}
	b, ok := v.Export().(bool)
	return b, ok
}

// GetObject safely retrieves an object property from a runtime object.
// Returns the object and true if the key exists and is an object, otherwise
// returns nil and false.
func GetObject(obj *goja.Object, key string) (*goja.Object, bool) {
	if obj == nil {
		return nil, false
	}
	v := obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, false
	}
	o, ok := v.(*goja.Object)
	return o, ok
}

// Call invokes a script value as a function with this=undefined.
// Returns an error when the value is not callable or the call throws.
func Call(fn goja.Value, args ...goja.Value) (goja.Value, error) {
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil, fmt.Errorf("jsutil: value is not callable")
	}
	return callable(goja.Undefined(), args...)
}

// toInt converts exported numeric values to int. The runtime exports
// numbers as int64 or float64 depending on their value.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
