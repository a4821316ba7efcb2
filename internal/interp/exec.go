package interp

import (
	"github.com/ironcamel-lang/ironcamel/internal/ast"
	"github.com/ironcamel-lang/ironcamel/internal/diag"
	"github.com/ironcamel-lang/ironcamel/internal/token"
	"github.com/ironcamel-lang/ironcamel/internal/value"
)

// evalBlock clones env into the block's own working scope, runs its
// statements in order against that clone, then evaluates and returns the
// mandatory trailing expression (spec.md §4.5 "Block": "clone the current
// environment", §3 "no block may omit its return expression"). The clone
// is what makes a block's own let-bindings invisible to its caller and to
// any sibling branch (spec.md §8 property 7).
func (in *Interpreter) evalBlock(env *value.Environment, block *ast.Block, ioEnabled bool) (value.Value, error) {
	scope := env.Clone()
	for _, stmt := range block.Statements {
		if err := in.execStmt(scope, stmt, ioEnabled); err != nil {
			return nil, err
		}
	}
	return in.eval(scope, block.Return, ioEnabled)
}

// execStmt executes one statement of a block against scope, which it may
// extend in place (spec.md §4.5).
func (in *Interpreter) execStmt(scope *value.Environment, stmt ast.Stmt, ioEnabled bool) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return in.execLet(scope, s, ioEnabled)
	case *ast.OpenStmt:
		return in.execOpen(scope, s, ioEnabled)
	case *ast.ReadStmt:
		return in.execRead(scope, s, ioEnabled)
	case *ast.WriteStmt:
		return in.execWrite(scope, s, ioEnabled)
	default:
		return diag.New(diag.Runtime, stmt.Pos(), "unhandled statement form")
	}
}

// execLet evaluates the bound expression and defines the name, rejecting a
// name already bound in this scope or colliding with a global function
// (spec.md §4.5 "No-shadowing rule").
func (in *Interpreter) execLet(scope *value.Environment, s *ast.LetStmt, ioEnabled bool) error {
	if err := in.checkNoShadow(scope, s.Name, s.Position); err != nil {
		return err
	}
	v, err := in.eval(scope, s.Value, ioEnabled)
	if err != nil {
		return err
	}
	scope.Define(s.Name, v)
	return nil
}

// checkNoShadow enforces that name is not already visible in scope and
// does not collide with a global function's name (spec.md §4.5).
func (in *Interpreter) checkNoShadow(scope *value.Environment, name string, pos token.Position) error {
	if scope.Has(name) {
		return diag.NewNamed(diag.Name, pos, name, "name already bound in this scope")
	}
	if _, ok := in.globals[name]; ok {
		return diag.NewNamed(diag.Name, pos, name, "name shadows a global function")
	}
	return nil
}

// execOpen performs `proc@handle = "path";`, fatal outside main and fatal
// on failure to open the file (spec.md §4.5 FileOpen, §5).
func (in *Interpreter) execOpen(scope *value.Environment, s *ast.OpenStmt, ioEnabled bool) error {
	if !ioEnabled {
		return diag.New(diag.IO, s.Position, "I/O is not allowed outside main")
	}
	var err error
	switch s.Proc {
	case ast.ProcFopenRead:
		err = in.handles.OpenRead(s.Handle, s.Path)
	case ast.ProcFopenWrite:
		err = in.handles.OpenWrite(s.Handle, s.Path)
	default:
		return diag.New(diag.Runtime, s.Position, "unexpected open procedure %q", s.Proc)
	}
	if err != nil {
		return diag.New(diag.IO, s.Position, "%s", err.Error())
	}
	return nil
}

// execRead performs `readstr@handle >> var;`: reads a line and binds it,
// subject to the same no-shadowing rule as let (spec.md §4.5, §4.4).
func (in *Interpreter) execRead(scope *value.Environment, s *ast.ReadStmt, ioEnabled bool) error {
	if !ioEnabled {
		return diag.New(diag.IO, s.Position, "I/O is not allowed outside main")
	}
	if err := in.checkNoShadow(scope, s.Target, s.Position); err != nil {
		return err
	}
	line, err := in.handles.ReadLine(s.Handle)
	if err != nil {
		return diag.New(diag.IO, s.Position, "%s", err.Error())
	}
	scope.Define(s.Target, value.String{V: line})
	return nil
}

// execWrite performs `writeline@handle << expr;` or `writelist@handle <<
// expr;` (spec.md §4.4, §4.5).
func (in *Interpreter) execWrite(scope *value.Environment, s *ast.WriteStmt, ioEnabled bool) error {
	if !ioEnabled {
		return diag.New(diag.IO, s.Position, "I/O is not allowed outside main")
	}
	v, err := in.eval(scope, s.Value, ioEnabled)
	if err != nil {
		return err
	}
	switch s.Proc {
	case ast.ProcWriteline:
		err = in.handles.WriteLine(s.Handle, v)
	case ast.ProcWritelist:
		l, aserr := value.AsList("writelist", v)
		if aserr != nil {
			return diag.New(diag.TypeErr, s.Position, "%s", aserr.Error())
		}
		err = in.handles.WriteList(s.Handle, l)
	default:
		return diag.New(diag.Runtime, s.Position, "unexpected write procedure %q", s.Proc)
	}
	if err != nil {
		return diag.New(diag.IO, s.Position, "%s", err.Error())
	}
	return nil
}
