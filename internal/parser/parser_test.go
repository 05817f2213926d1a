package parser

import (
	"testing"

	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/lexer"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens := lexer.Tokenize(source)
	program, errs := Parse(tokens, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parser errors for %q: %v", source, errs)
	}
	return program
}

func TestParsePragma(t *testing.T) {
	program := parseSource(t, `pragma grishex 1;`)
	if program.Pragma == nil {
		t.Fatalf("expected pragma, got none")
	}
	if program.Pragma.Name != "grishex" || program.Pragma.Version != "1" {
		t.Fatalf("unexpected pragma: %+v", program.Pragma)
	}
}

func TestParseSimpleContract(t *testing.T) {
	source := `
	contract SimpleToken {
		state name: string;
		state symbol: string;
		state decimals: uint;

		constructor(name: string, symbol: string, decimals: uint) {
			self.name = name;
			self.symbol = symbol;
			self.decimals = decimals;
		}

		view function getName() returns string {
			return self.name;
		}
	}
	`
	program := parseSource(t, source)
	if len(program.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.Declarations))
	}

	contract, ok := program.Declarations[0].(*ast.ContractDecl)
	if !ok {
		t.Fatalf("expected ContractDecl, got %T", program.Declarations[0])
	}
	if contract.Name != "SimpleToken" {
		t.Fatalf("expected name SimpleToken, got %s", contract.Name)
	}
	if len(contract.States) != 3 {
		t.Fatalf("expected 3 state vars, got %d", len(contract.States))
	}
	if contract.Constructor == nil {
		t.Fatalf("expected constructor")
	}
	if len(contract.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(contract.Functions))
	}
	fn := contract.Functions[0]
	if !fn.IsView || fn.Name != "getName" {
		t.Fatalf("unexpected function: %+v", fn)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"1 + 2 + 3;", "((1 + 2) + 3);"},
		{"!true == false;", "((!true) == false);"},
		{"a.b[0];", "a.b[0];"},
		{"-a * b;", "((-a) * b);"},
		{"a || b && c;", "(a || (b && c));"},
	}

	for _, tt := range tests {
		src := "contract C { function f() { " + tt.input + " } }"
		tokens := lexer.Tokenize(src)
		program, errs := Parse(tokens, src)
		if len(errs) > 0 {
			t.Fatalf("input=%q: unexpected errors: %v", tt.input, errs)
		}
		contract := program.Declarations[0].(*ast.ContractDecl)
		fn := contract.Functions[0]
		stmt := fn.Body.Statements[0]
		if stmt.String() != tt.expected {
			t.Fatalf("input=%q: expected %q, got %q", tt.input, tt.expected, stmt.String())
		}
	}
}

func TestParseIfElseWhileReturn(t *testing.T) {
	source := `
	contract C {
		function f() returns int {
			if (true) {
				return 1;
			} else {
				return 0;
			}
		}

		function g() returns int {
			let i: int = 0;
			while (i < 10) {
				i = i + 1;
			}
			return i;
		}
	}
	`
	program := parseSource(t, source)
	contract := program.Declarations[0].(*ast.ContractDecl)
	if len(contract.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(contract.Functions))
	}

	f := contract.Functions[0]
	ifStmt, ok := f.Body.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", f.Body.Statements[0])
	}
	if ifStmt.Alternative == nil {
		t.Fatalf("expected else branch")
	}

	g := contract.Functions[1]
	if _, ok := g.Body.Statements[1].(*ast.WhileStatement); !ok {
		t.Fatalf("expected WhileStatement, got %T", g.Body.Statements[1])
	}
}

func TestParseRequireEmitEvent(t *testing.T) {
	source := `
	contract C {
		event Transfer(from: address, to: address, amount: uint);

		function f() {
			require(true, "must hold");
			emit Transfer(self, self, 1);
		}
	}
	`
	program := parseSource(t, source)
	contract := program.Declarations[0].(*ast.ContractDecl)
	if len(contract.Events) != 1 || contract.Events[0].Name != "Transfer" {
		t.Fatalf("expected Transfer event, got %+v", contract.Events)
	}

	fn := contract.Functions[0]
	if _, ok := fn.Body.Statements[0].(*ast.RequireStatement); !ok {
		t.Fatalf("expected RequireStatement, got %T", fn.Body.Statements[0])
	}
	if _, ok := fn.Body.Statements[1].(*ast.EmitStatement); !ok {
		t.Fatalf("expected EmitStatement, got %T", fn.Body.Statements[1])
	}
}

func TestParseArrayAndMapTypes(t *testing.T) {
	source := `
	contract C {
		state balances: map<address,uint>;
		state history: array<uint>;
	}
	`
	program := parseSource(t, source)
	contract := program.Declarations[0].(*ast.ContractDecl)

	balances := contract.States[0]
	if balances.Type.Name != "map" || balances.Type.Key.Name != "address" || balances.Type.Value.Name != "uint" {
		t.Fatalf("unexpected map type: %+v", balances.Type)
	}

	history := contract.States[1]
	if history.Type.Name != "array" || history.Type.Elem.Name != "uint" {
		t.Fatalf("unexpected array type: %+v", history.Type)
	}
}

func TestParseErrorRecoveryAbandonsProgram(t *testing.T) {
	source := `contract C { state x }` // missing ':' Type ';'
	tokens := lexer.Tokenize(source)
	program, errs := Parse(tokens, source)
	if len(errs) == 0 {
		t.Fatalf("expected parser errors")
	}
	if len(program.Declarations) != 0 {
		t.Fatalf("expected empty program on failure, got %+v", program)
	}
}
