// Package value defines Ironcamel's runtime value model: the primitive
// values (integers, booleans, strings), the persistent singly-linked list,
// callable objects (global functions, built-ins, closures), and the
// environment that binds names to values (spec.md §3 Value & List core,
// Callable object, Environment).
package value

import (
	"fmt"
	"strconv"
)

// Value is any runtime value Ironcamel programs can produce: Integer, Bool,
// String, List, or Callable.
type Value interface {
	// Type names the value's kind, used in type-mismatch diagnostics
	// (spec.md §7 "type" error kind).
	Type() string
	// String renders the value as text. For Integer, Bool, and String this
	// is the writeline/writelist format (spec.md §4.4); lists and callables
	// render a diagnostic form only.
	String() string
}

// Integer is a 64-bit signed integer value.
type Integer struct{ V int64 }

func (Integer) Type() string     { return "integer" }
func (i Integer) String() string { return strconv.FormatInt(i.V, 10) }

// Bool is a boolean value, formatted as true/false (spec.md §4.4 writeline).
type Bool struct{ V bool }

func (Bool) Type() string     { return "bool" }
func (b Bool) String() string { return strconv.FormatBool(b.V) }

// String is a string value.
type String struct{ V string }

func (String) Type() string     { return "string" }
func (s String) String() string { return s.V }

// TypeMismatchError reports that a built-in or evaluator step received a
// value of the wrong kind (spec.md §7 "type" error kind).
type TypeMismatchError struct {
	Where string
	Want  string
	Got   Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Where, e.Want, e.Got.Type())
}

// AsInteger extracts an int64 from v, or returns a TypeMismatchError.
func AsInteger(where string, v Value) (int64, error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, &TypeMismatchError{Where: where, Want: "integer", Got: v}
	}
	return i.V, nil
}

// AsBool extracts a bool from v, or returns a TypeMismatchError.
func AsBool(where string, v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, &TypeMismatchError{Where: where, Want: "bool", Got: v}
	}
	return b.V, nil
}

// AsString extracts a string from v, or returns a TypeMismatchError.
func AsString(where string, v Value) (string, error) {
	s, ok := v.(String)
	if !ok {
		return "", &TypeMismatchError{Where: where, Want: "string", Got: v}
	}
	return s.V, nil
}

// AsList extracts a *List from v, or returns a TypeMismatchError.
func AsList(where string, v Value) (*List, error) {
	l, ok := v.(*List)
	if !ok {
		return nil, &TypeMismatchError{Where: where, Want: "list", Got: v}
	}
	return l, nil
}
