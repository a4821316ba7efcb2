package value

import "github.com/ironcamel-lang/ironcamel/internal/ast"

// Callable lifts global functions, built-ins, and closures into the value
// universe, so a variable may hold any of them and a call expression can
// resolve through a single pathway (spec.md §3 "Callable object", §9
// "Callables as values").
type Callable interface {
	Value
	callableNode()
}

// GlobalFunction is a callable value referring to a top-level function by
// name (spec.md §3).
type GlobalFunction struct{ Name string }

func (GlobalFunction) Type() string     { return "function" }
func (g GlobalFunction) String() string { return "<function " + g.Name + ">" }
func (GlobalFunction) callableNode()    {}

// BuiltinFunction is a callable value referring to one of the fixed
// dispatch built-ins by name (spec.md §3).
type BuiltinFunction struct{ Name string }

func (BuiltinFunction) Type() string     { return "builtin" }
func (b BuiltinFunction) String() string { return "<builtin " + b.Name + ">" }
func (BuiltinFunction) callableNode()    {}

// Closure is a callable value pairing a closure AST node with a snapshot of
// the environment captured at its creation time. The snapshot is shared,
// never mutated after capture (spec.md §3 "Callable object", §8 property
// 6 "Closure capture").
type Closure struct {
	Decl    *ast.Closure
	Capture *Environment
}

func (Closure) Type() string   { return "closure" }
func (Closure) String() string { return "<closure>" }
func (Closure) callableNode()  {}
