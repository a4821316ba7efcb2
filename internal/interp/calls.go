package interp

import (
	"github.com/ironcamel-lang/ironcamel/internal/ast"
	"github.com/ironcamel-lang/ironcamel/internal/builtins"
	"github.com/ironcamel-lang/ironcamel/internal/diag"
	"github.com/ironcamel-lang/ironcamel/internal/token"
	"github.com/ironcamel-lang/ironcamel/internal/value"
)

// evalCall resolves and invokes a CallByName expression. Resolution order
// is the mirror image of a bare Variable reference: locals first, then
// built-ins, then global functions (spec.md §4.5 "CallByName"). ioEnabled
// is the calling context's flag, threaded through to a closure's body but
// never to a global function's (spec.md §4.5).
func (in *Interpreter) evalCall(env *value.Environment, n *ast.Call, ioEnabled bool) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(env, a, ioEnabled)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if local, ok := env.Get(n.Callee); ok {
		callable, ok := local.(value.Callable)
		if !ok {
			return nil, diag.NewNamed(diag.TypeErr, n.Position, n.Callee, "value is not callable")
		}
		return in.invoke(callable, args, n.Position, ioEnabled)
	}
	if builtins.IsPure(n.Callee) {
		return in.invoke(value.BuiltinFunction{Name: n.Callee}, args, n.Position, ioEnabled)
	}
	if _, ok := in.globals[n.Callee]; ok {
		return in.invoke(value.GlobalFunction{Name: n.Callee}, args, n.Position, ioEnabled)
	}
	return nil, diag.NewNamed(diag.Name, n.Position, n.Callee, "undefined function")
}

// invoke dispatches a resolved Callable to its concrete evaluation rule
// (spec.md §4.5 "Calling a value").
func (in *Interpreter) invoke(callable value.Callable, args []value.Value, pos token.Position, ioEnabled bool) (value.Value, error) {
	switch c := callable.(type) {
	case value.BuiltinFunction:
		return in.invokeBuiltin(c, args, pos)
	case value.GlobalFunction:
		return in.invokeGlobal(c, args, pos)
	case value.Closure:
		return in.invokeClosure(c, args, pos, ioEnabled)
	default:
		return nil, diag.New(diag.Runtime, pos, "unhandled callable kind")
	}
}

func (in *Interpreter) invokeBuiltin(c value.BuiltinFunction, args []value.Value, pos token.Position) (value.Value, error) {
	arity, ok := builtins.Arity(c.Name)
	if !ok {
		return nil, diag.NewNamed(diag.Name, pos, c.Name, "undefined function")
	}
	if arity >= 0 && len(args) != arity {
		return nil, diag.NewNamed(diag.Arity, pos, c.Name, "expected %d argument(s), got %d", arity, len(args))
	}
	v, err := builtins.Call(c.Name, args)
	if err != nil {
		return nil, classifyBuiltinError(pos, c.Name, err)
	}
	return v, nil
}

// invokeGlobal calls a top-level function: a fresh, empty environment
// extended with its parameters, body evaluated with I/O unconditionally
// disabled (spec.md §4.5 "A global function call extends an empty
// environment with its parameters and evaluates its body with I/O
// disabled").
func (in *Interpreter) invokeGlobal(c value.GlobalFunction, args []value.Value, pos token.Position) (value.Value, error) {
	fn, ok := in.globals[c.Name]
	if !ok {
		return nil, diag.NewNamed(diag.Name, pos, c.Name, "undefined function")
	}
	if len(fn.Params) != len(args) {
		return nil, diag.NewNamed(diag.Arity, pos, c.Name, "expected %d argument(s), got %d", len(fn.Params), len(args))
	}
	env := value.NewEnvironment()
	for i, p := range fn.Params {
		if env.Has(p) {
			return nil, diag.NewNamed(diag.Name, fn.Position, p, "duplicate parameter name")
		}
		env.Define(p, args[i])
	}
	return in.evalBlock(env, fn.Body, false)
}

// invokeClosure calls a closure value: its captured snapshot extended with
// its parameters, body evaluated with ioEnabled inherited from the calling
// context (spec.md §3 Closure, §4.5; only global-function calls disable
// I/O, so a closure invoked from within main still has I/O enabled).
func (in *Interpreter) invokeClosure(c value.Closure, args []value.Value, pos token.Position, ioEnabled bool) (value.Value, error) {
	if len(c.Decl.Params) != len(args) {
		return nil, diag.New(diag.Arity, pos, "closure expected %d argument(s), got %d", len(c.Decl.Params), len(args))
	}
	env := c.Capture.Clone()
	for i, p := range c.Decl.Params {
		if env.Has(p) {
			return nil, diag.NewNamed(diag.Name, c.Decl.Position, p, "parameter name shadows captured binding")
		}
		env.Define(p, args[i])
	}
	return in.evalBlock(env, c.Decl.Body, ioEnabled)
}

// classifyBuiltinError maps a builtins error value to the fatal diagnostic
// kind spec.md §7 assigns it.
func classifyBuiltinError(pos token.Position, name string, err error) error {
	switch err.(type) {
	case *builtins.OverflowError, *builtins.EmptyListError, *builtins.AtoiError:
		return diag.New(diag.Runtime, pos, "%s", err.Error())
	case *value.TypeMismatchError:
		return diag.New(diag.TypeErr, pos, "%s", err.Error())
	case *builtins.UnknownBuiltinError:
		return diag.NewNamed(diag.Name, pos, name, "undefined function")
	default:
		return diag.New(diag.Runtime, pos, "%s", err.Error())
	}
}
