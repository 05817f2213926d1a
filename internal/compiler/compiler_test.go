package compiler

import (
	"reflect"
	"testing"

	"github.com/grishinium/grishex/internal/bytecode"
	"github.com/grishinium/grishex/internal/lexer"
	"github.com/grishinium/grishex/internal/parser"
	"github.com/grishinium/grishex/internal/vm"
)

const simpleTokenSource = `
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

	view function getSymbol() returns string {
		return self.symbol;
	}

	view function getDecimals() returns uint {
		return self.decimals;
	}
}
`

func compileSource(t *testing.T, source string) *bytecode.Artifact {
	t.Helper()
	tokens := lexer.Tokenize(source)
	program, perrs := parser.Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	artifact, cerrs := c.Compile(program)
	if len(cerrs) > 0 {
		t.Fatalf("unexpected compiler errors: %v", cerrs)
	}
	return artifact
}

func TestCompileSimpleTokenStateOffsets(t *testing.T) {
	artifact := compileSource(t, simpleTokenSource)
	contract := artifact.Contracts["SimpleToken"]

	want := map[string]int{"name": 0, "symbol": 1, "decimals": 2}
	for name, offset := range want {
		sv, ok := contract.StateVariables[name]
		if !ok {
			t.Fatalf("missing state variable %s", name)
		}
		if sv.Offset != offset {
			t.Errorf("state variable %s: expected offset %d, got %d", name, offset, sv.Offset)
		}
	}
}

func TestCompileConstructorParamIndices(t *testing.T) {
	artifact := compileSource(t, simpleTokenSource)
	ctor := artifact.Contracts["SimpleToken"].Functions["constructor"]

	wantNames := []string{"name", "symbol", "decimals"}
	if len(ctor.Params) != len(wantNames) {
		t.Fatalf("expected %d params, got %d", len(wantNames), len(ctor.Params))
	}
	for i, name := range wantNames {
		if ctor.Params[i].Name != name {
			t.Errorf("param %d: expected %s, got %s", i, name, ctor.Params[i].Name)
		}
	}
}

func TestCompileDeterministic(t *testing.T) {
	a1 := compileSource(t, simpleTokenSource)
	a2 := compileSource(t, simpleTokenSource)

	b1, err := bytecode.Serialize(a1)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b2, err := bytecode.Serialize(a2)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(b1) != string(b2) {
		t.Fatalf("expected byte-identical bytecode across compiles")
	}
}

func TestCompileFunctionsAlwaysEndInReturn(t *testing.T) {
	artifact := compileSource(t, simpleTokenSource)
	for name, fn := range artifact.Contracts["SimpleToken"].Functions {
		if len(fn.Code) == 0 || fn.Code[len(fn.Code)-1].Op != bytecode.RETURN {
			t.Errorf("function %s: expected last instruction to be RETURN, got %+v", name, fn.Code)
		}
	}
}

// A RETURN nested in an if-consequence only covers the true branch; the
// compiler must still append a reachable default RETURN after the whole
// body so the false branch doesn't fall off the end of the instruction
// slice at runtime.
func TestCompileConditionalReturnWithoutElseGetsImplicitReturn(t *testing.T) {
	source := `
	contract C {
		function f(x: int) returns int {
			if (x > 0) {
				return 1;
			}
		}
	}
	`
	artifact := compileSource(t, source)
	fn := artifact.Contracts["C"].Functions["f"]

	last := fn.Code[len(fn.Code)-1]
	if last.Op != bytecode.RETURN {
		t.Fatalf("expected last instruction to be a reachable RETURN, got %s", last.Op)
	}
	if !reflect.DeepEqual(last.Value, int64(0)) {
		t.Errorf("expected implicit default 0, got %v", last.Value)
	}

	machine := vm.NewVM()
	machine.LoadContract(artifact)
	address, err := machine.DeployContract("C", nil)
	if err != nil {
		t.Fatalf("DeployContract: %v", err)
	}

	result, err := machine.ExecuteFunction("C", "f", []vm.Value{vm.Int(-1)}, address)
	if err != nil {
		t.Fatalf("ExecuteFunction: %v", err)
	}
	if result.GoValue() != int64(0) {
		t.Errorf("false branch: expected default 0, got %v", result.GoValue())
	}

	result, err = machine.ExecuteFunction("C", "f", []vm.Value{vm.Int(5)}, address)
	if err != nil {
		t.Fatalf("ExecuteFunction: %v", err)
	}
	if result.GoValue() != int64(1) {
		t.Errorf("true branch: expected 1, got %v", result.GoValue())
	}
}

func TestCompileFunctionFallthroughGetsImplicitReturn(t *testing.T) {
	source := `
	contract C {
		function f() returns int {
			let x: int = 1;
		}
	}
	`
	artifact := compileSource(t, source)
	fn := artifact.Contracts["C"].Functions["f"]

	last := fn.Code[len(fn.Code)-1]
	if last.Op != bytecode.RETURN {
		t.Fatalf("expected last instruction to be RETURN, got %s", last.Op)
	}
	if !reflect.DeepEqual(last.Value, int64(0)) {
		t.Errorf("expected implicit default 0, got %v", last.Value)
	}
}

func TestCompileDuplicateContractIsError(t *testing.T) {
	source := `
	contract C { }
	contract C { }
	`
	tokens := lexer.Tokenize(source)
	program, perrs := parser.Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	_, errs := c.Compile(program)
	if len(errs) == 0 {
		t.Fatalf("expected a duplicate-contract compiler error")
	}
}

func TestCompileUnknownTypeIsError(t *testing.T) {
	source := `
	contract C {
		state balance: nosuchtype;
	}
	`
	tokens := lexer.Tokenize(source)
	program, perrs := parser.Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	_, errs := c.Compile(program)
	if len(errs) == 0 {
		t.Fatalf("expected an unknown-type compiler error")
	}
}

func TestCompileIfElseOffsets(t *testing.T) {
	source := `
	contract C {
		function f() returns int {
			if (true) {
				return 1;
			} else {
				return 2;
			}
		}
	}
	`
	artifact := compileSource(t, source)
	code := artifact.Contracts["C"].Functions["f"].Code

	var jumpIfFalse, jump *bytecode.Instruction
	for i := range code {
		switch code[i].Op {
		case bytecode.JUMP_IF_FALSE:
			jumpIfFalse = &code[i]
		case bytecode.JUMP:
			jump = &code[i]
		}
	}
	if jumpIfFalse == nil || jump == nil {
		t.Fatalf("expected both JUMP_IF_FALSE and JUMP in %+v", code)
	}
}

func TestCompileEmitArityMismatch(t *testing.T) {
	source := `
	contract C {
		event E(x: uint);

		function f() {
			emit E(1, 2);
		}
	}
	`
	tokens := lexer.Tokenize(source)
	program, perrs := parser.Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	_, errs := c.Compile(program)
	if len(errs) == 0 {
		t.Fatalf("expected an event-arity compiler error")
	}
}

func TestCompileResetClearsState(t *testing.T) {
	c := NewCompiler()

	tokens := lexer.Tokenize(simpleTokenSource)
	program, _ := parser.Parse(tokens, simpleTokenSource)
	if _, errs := c.Compile(program); len(errs) > 0 {
		t.Fatalf("unexpected compiler errors: %v", errs)
	}

	c.Reset()
	if len(c.artifact.Contracts) != 0 {
		t.Fatalf("expected Reset to clear contracts, got %d", len(c.artifact.Contracts))
	}
	if len(c.errors) != 0 {
		t.Fatalf("expected Reset to clear errors")
	}
}
