// Package interp implements Ironcamel's evaluator: global table
// construction, execution of `main` with I/O enabled, and recursive
// expression evaluation with local environments, closure capture, and
// layered name resolution (spec.md §4.5).
package interp

import (
	"io"

	"github.com/ironcamel-lang/ironcamel/internal/ast"
	"github.com/ironcamel-lang/ironcamel/internal/builtins"
	"github.com/ironcamel-lang/ironcamel/internal/diag"
	"github.com/ironcamel-lang/ironcamel/internal/token"
	"github.com/ironcamel-lang/ironcamel/internal/value"
)

// State names the three phases of a run (spec.md §4.5 "State machine").
type State int

const (
	Initializing State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Interpreter holds the global state of one run: the function table built
// during Initializing, and the open-file table handed to statement
// execution while Running `main` (spec.md §3 "Global state", §5).
type Interpreter struct {
	globals map[string]*ast.Function
	handles *builtins.Handles
	state   State
}

// New creates an Interpreter with stdin/stdout wired to the given streams.
func New(stdin io.Reader, stdout io.Writer) *Interpreter {
	return &Interpreter{handles: builtins.NewHandles(stdin, stdout)}
}

// State reports the interpreter's current lifecycle state.
func (in *Interpreter) State() State { return in.state }

// Run builds the global function table from prog (every function except
// `main`) and then executes `main`'s statements in order with an initially
// empty local environment and I/O enabled (spec.md §4.5 "Entry point").
func (in *Interpreter) Run(prog *ast.Program) error {
	in.state = Initializing
	var main *ast.Function
	in.globals = make(map[string]*ast.Function, len(prog.Functions))
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			main = fn
			continue
		}
		in.globals[fn.Name] = fn
	}
	if main == nil {
		in.state = Terminated
		return diag.New(diag.Name, token.Position{}, "program has no main function")
	}

	in.state = Running
	env := value.NewEnvironment()
	_, runErr := in.evalBlock(env, main.Body, true)
	in.state = Terminated

	// Partial output already written is never rolled back (spec.md §7), so
	// buffered writers are flushed whether or not main ran to completion.
	if flushErr := in.handles.Flush(); flushErr != nil && runErr == nil {
		return flushErr
	}
	return runErr
}

// Close releases every file handle the run opened (spec.md §3 "released at
// process exit").
func (in *Interpreter) Close() { in.handles.Close() }
