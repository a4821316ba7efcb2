package interp

import (
	"github.com/ironcamel-lang/ironcamel/internal/ast"
	"github.com/ironcamel-lang/ironcamel/internal/builtins"
	"github.com/ironcamel-lang/ironcamel/internal/diag"
	"github.com/ironcamel-lang/ironcamel/internal/value"
)

// eval evaluates a single expression node against env. ioEnabled propagates
// unchanged through every expression form except a global-function call
// body, which always disables it (spec.md §4.5).
func (in *Interpreter) eval(env *value.Environment, expr ast.Expr, ioEnabled bool) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return value.Integer{V: n.Value}, nil
	case *ast.BoolLit:
		return value.Bool{V: n.Value}, nil
	case *ast.StringLit:
		return value.String{V: n.Value}, nil
	case *ast.Variable:
		return in.evalVariable(env, n)
	case *ast.Closure:
		return value.Closure{Decl: n, Capture: env.Clone()}, nil
	case *ast.If:
		return in.evalIf(env, n, ioEnabled)
	case *ast.Block:
		return in.evalBlock(env, n, ioEnabled)
	case *ast.Call:
		return in.evalCall(env, n, ioEnabled)
	default:
		return nil, diag.New(diag.Runtime, expr.Pos(), "unhandled expression form")
	}
}

// evalVariable resolves a bare name reference: global functions first, then
// built-ins, then the local environment (spec.md §4.5 "Variable"). Since
// Environment only ever stores fully-evaluated Values, the further
// normalization spec.md describes for a variable bound to another variable
// or a deferred call is a no-op here — there is no deferred form to unwind
// (see DESIGN.md).
func (in *Interpreter) evalVariable(env *value.Environment, n *ast.Variable) (value.Value, error) {
	if _, ok := in.globals[n.Name]; ok {
		return value.GlobalFunction{Name: n.Name}, nil
	}
	if builtins.IsPure(n.Name) {
		return value.BuiltinFunction{Name: n.Name}, nil
	}
	if v, ok := env.Get(n.Name); ok {
		return v, nil
	}
	return nil, diag.NewNamed(diag.Name, n.Position, n.Name, "undefined variable")
}

// evalIf evaluates the condition, requires a Bool, then evaluates exactly
// one branch with the same env and ioEnabled (spec.md §4.5 "If", §8
// property 7: branch-local bindings never escape).
func (in *Interpreter) evalIf(env *value.Environment, n *ast.If, ioEnabled bool) (value.Value, error) {
	cond, err := in.eval(env, n.Condition, ioEnabled)
	if err != nil {
		return nil, err
	}
	b, err := value.AsBool("if condition", cond)
	if err != nil {
		return nil, diag.New(diag.TypeErr, n.Condition.Pos(), "%s", err.Error())
	}
	if b {
		return in.evalBlock(env, n.ThenBlock, ioEnabled)
	}
	return in.evalBlock(env, n.ElseBlock, ioEnabled)
}
