// Package builtins implements Ironcamel's fixed built-in dispatch table:
// arithmetic/comparison operators, list constructors/destructors, string
// parsing, and the I/O adapters over file handles and standard streams
// (spec.md §4.4). Each entry receives an already-evaluated argument
// sequence, matching the evaluator's strict, eager calling convention.
package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/ironcamel-lang/ironcamel/internal/value"
)

// Func is a pure (no I/O) built-in: arithmetic, comparison, list, and
// string operations. I/O built-ins (readstr, writeline, writelist,
// fopen_read, fopen_write) are reached through the `@` statement forms and
// dispatched via Handles, not through this table (spec.md §6 I/O syntax).
type Func func(args []value.Value) (value.Value, error)

// arity describes how many arguments a pure built-in accepts; -1 means
// variadic (spec.md §4.4 `list`).
type entry struct {
	arity int
	fn    Func
}

var registry = map[string]entry{
	"+":        {2, arith("+", addInt)},
	"-":        {2, arith("-", subInt)},
	"*":        {2, arith("*", mulInt)},
	"==":       {2, compare("==", func(a, b int64) bool { return a == b })},
	"<":        {2, compare("<", func(a, b int64) bool { return a < b })},
	">":        {2, compare(">", func(a, b int64) bool { return a > b })},
	"<=":       {2, compare("<=", func(a, b int64) bool { return a <= b })},
	">=":       {2, compare(">=", func(a, b int64) bool { return a >= b })},
	"list":     {-1, list},
	"cons":     {2, cons},
	"hd":       {1, hd},
	"tl":       {1, tl},
	"is_empty": {1, isEmpty},
	"atoi":     {1, atoi},
	"strtok":   {2, strtok},
}

// IsPure reports whether name is one of the side-effect-free built-ins.
func IsPure(name string) bool {
	_, ok := registry[name]
	return ok
}

// Arity returns the expected argument count for a pure built-in, or -1 for
// variadic; ok is false if name is not a pure built-in.
func Arity(name string) (n int, ok bool) {
	e, found := registry[name]
	if !found {
		return 0, false
	}
	return e.arity, true
}

// Call dispatches to a pure built-in by name. The caller (the evaluator)
// is responsible for the arity check against Arity before calling.
func Call(name string, args []value.Value) (value.Value, error) {
	e, ok := registry[name]
	if !ok {
		return nil, &UnknownBuiltinError{Name: name}
	}
	return e.fn(args)
}

// UnknownBuiltinError reports a name that is not in the closed built-in
// set (spec.md §4.4 "Builtin names form a closed set").
type UnknownBuiltinError struct{ Name string }

func (e *UnknownBuiltinError) Error() string { return "unknown builtin: " + e.Name }

func addInt(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subInt(a, b int64) (int64, bool) {
	if b == math.MinInt64 {
		// -b is not representable as int64; a - MinInt64 is a + 2^63, which
		// fits in int64 exactly when a is negative.
		if a < 0 {
			return a - b, true
		}
		return 0, false
	}
	return addInt(a, -b)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	r := a * b
	if r/a != b {
		return 0, false
	}
	return r, true
}

// arith wraps an overflow-checked integer operator into a Func; overflow is
// fatal per spec.md §4.4/§9 (no silent wrapping).
func arith(name string, op func(a, b int64) (int64, bool)) Func {
	return func(args []value.Value) (value.Value, error) {
		a, err := value.AsInteger(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := value.AsInteger(name, args[1])
		if err != nil {
			return nil, err
		}
		r, ok := op(a, b)
		if !ok {
			return nil, &OverflowError{Op: name, A: a, B: b}
		}
		return value.Integer{V: r}, nil
	}
}

// OverflowError reports integer overflow in +, -, or * (spec.md §7
// "runtime" error kind, §9 "reject overflow as fatal").
type OverflowError struct {
	Op   string
	A, B int64
}

func (e *OverflowError) Error() string {
	return "integer overflow in " + e.Op + " operation"
}

func compare(name string, op func(a, b int64) bool) Func {
	return func(args []value.Value) (value.Value, error) {
		a, err := value.AsInteger(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := value.AsInteger(name, args[1])
		if err != nil {
			return nil, err
		}
		return value.Bool{V: op(a, b)}, nil
	}
}

func list(args []value.Value) (value.Value, error) {
	return value.FromSlice(args), nil
}

func cons(args []value.Value) (value.Value, error) {
	tail, err := value.AsList("cons", args[1])
	if err != nil {
		return nil, err
	}
	return value.Cons(args[0], tail), nil
}

func hd(args []value.Value) (value.Value, error) {
	l, err := value.AsList("hd", args[0])
	if err != nil {
		return nil, err
	}
	v, ok := l.Head()
	if !ok {
		return nil, &EmptyListError{Op: "hd"}
	}
	return v, nil
}

// EmptyListError reports hd() applied to the empty list (spec.md §4.4
// "Head of non-empty list").
type EmptyListError struct{ Op string }

func (e *EmptyListError) Error() string { return e.Op + ": list is empty" }

func tl(args []value.Value) (value.Value, error) {
	l, err := value.AsList("tl", args[0])
	if err != nil {
		return nil, err
	}
	if l.IsEmpty() {
		return nil, &EmptyListError{Op: "tl"}
	}
	if t, ok := l.Tail(); ok {
		return t, nil
	}
	// tail of a singleton is the empty list (spec.md §4.4 `tl`).
	return value.Empty, nil
}

func isEmpty(args []value.Value) (value.Value, error) {
	l, err := value.AsList("is_empty", args[0])
	if err != nil {
		return nil, err
	}
	return value.Bool{V: l.IsEmpty()}, nil
}

// atoi parses a string to an integer, fatal on non-numeric input
// (spec.md §4.4, §7 "runtime" error kind "atoi parse failure").
func atoi(args []value.Value) (value.Value, error) {
	s, err := value.AsString("atoi", args[0])
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, &AtoiError{Input: s}
	}
	return value.Integer{V: n}, nil
}

// AtoiError reports that atoi's argument could not be parsed as an integer.
type AtoiError struct{ Input string }

func (e *AtoiError) Error() string { return "atoi: not a valid integer: " + strconv.Quote(e.Input) }

// strtok splits the first string by any character in the second, dropping
// empty fragments, returning a list of string values in order (spec.md
// §4.4 `strtok`). Line terminators (`\r`, `\n`) always split too, on top of
// whatever the caller passed, since a string handed to strtok may carry
// `readstr`'s raw file-line terminator (spec.md §5: file reads keep it,
// stdin reads don't) and a terminator is never meaningful token content
// (spec.md §8 S5).
func strtok(args []value.Value) (value.Value, error) {
	s, err := value.AsString("strtok", args[0])
	if err != nil {
		return nil, err
	}
	seps, err := value.AsString("strtok", args[1])
	if err != nil {
		return nil, err
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r) || r == '\r' || r == '\n'
	})
	vals := make([]value.Value, len(fields))
	for i, f := range fields {
		vals[i] = value.String{V: f}
	}
	return value.FromSlice(vals), nil
}
