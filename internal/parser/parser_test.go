package parser

import (
	"testing"

	"github.com/ironcamel-lang/ironcamel/internal/ast"
	"github.com/ironcamel-lang/ironcamel/internal/lexer"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := ParseProgram(toks)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return prog
}

func TestParseSimpleFunction(t *testing.T) {
	prog := parse(t, `fn main() { 0 }`)
	if len(prog.Functions) != 1 || prog.Functions[0].Name != "main" {
		t.Fatalf("unexpected program: %+v", prog)
	}
}

func TestParseInfixOperatorsDesugarToCalls(t *testing.T) {
	prog := parse(t, `fn main() { 40 + 2 }`)
	call, ok := prog.Functions[0].Body.Return.(*ast.Call)
	if !ok {
		t.Fatalf("return expr = %T, want *ast.Call", prog.Functions[0].Body.Return)
	}
	if call.Callee != "+" || len(call.Args) != 2 {
		t.Fatalf("call = %+v, want +/2-arg", call)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3).
	prog := parse(t, `fn main() { 1 + 2 * 3 }`)
	call, ok := prog.Functions[0].Body.Return.(*ast.Call)
	if !ok || call.Callee != "+" {
		t.Fatalf("outer call = %+v, want +", prog.Functions[0].Body.Return)
	}
	rhs, ok := call.Args[1].(*ast.Call)
	if !ok || rhs.Callee != "*" {
		t.Fatalf("rhs = %+v, want *", call.Args[1])
	}
}

func TestParseClosure(t *testing.T) {
	prog := parse(t, `fn main() { |x| { x } }`)
	closure, ok := prog.Functions[0].Body.Return.(*ast.Closure)
	if !ok || len(closure.Params) != 1 || closure.Params[0] != "x" {
		t.Fatalf("return expr = %+v, want a one-param closure", prog.Functions[0].Body.Return)
	}
}

func TestParseIf(t *testing.T) {
	prog := parse(t, `fn main() { if true then { 1 } else { 2 } }`)
	ifExpr, ok := prog.Functions[0].Body.Return.(*ast.If)
	if !ok {
		t.Fatalf("return expr = %T, want *ast.If", prog.Functions[0].Body.Return)
	}
	if _, ok := ifExpr.Condition.(*ast.BoolLit); !ok {
		t.Fatalf("condition = %T, want *ast.BoolLit", ifExpr.Condition)
	}
}

func TestParseIOStatements(t *testing.T) {
	prog := parse(t, `fn main() {
fopen_read@f = "input.txt";
readstr@f >> line;
writeline@stdout << line;
0
}`)
	stmts := prog.Functions[0].Body.Statements
	if len(stmts) != 3 {
		t.Fatalf("statements = %+v, want 3", stmts)
	}
	if _, ok := stmts[0].(*ast.OpenStmt); !ok {
		t.Fatalf("stmt 0 = %T, want *ast.OpenStmt", stmts[0])
	}
	if _, ok := stmts[1].(*ast.ReadStmt); !ok {
		t.Fatalf("stmt 1 = %T, want *ast.ReadStmt", stmts[1])
	}
	if _, ok := stmts[2].(*ast.WriteStmt); !ok {
		t.Fatalf("stmt 2 = %T, want *ast.WriteStmt", stmts[2])
	}
}

func TestMissingReturnExpressionIsFatal(t *testing.T) {
	_, err := lexer.Tokenize(`fn main() { let x = 1; }`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	toks, _ := lexer.Tokenize(`fn main() { let x = 1; }`)
	if _, err := ParseProgram(toks); err == nil {
		t.Fatal("expected a parse error for a block with no return expression")
	}
}

func TestUnknownTokenIsSyntaxError(t *testing.T) {
	toks, err := lexer.Tokenize(`fn main() { ) }`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := ParseProgram(toks); err == nil {
		t.Fatal("expected a parse error")
	}
}
