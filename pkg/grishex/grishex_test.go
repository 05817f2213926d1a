package grishex

import (
	"testing"

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

func TestTokenizeTrivialProgram(t *testing.T) {
	tokens := Tokenize("pragma grishex 1;")
	if len(tokens) == 0 || tokens[len(tokens)-1].Type.String() != "EOF" {
		t.Fatalf("expected tokens to end in EOF, got %v", tokens)
	}
}

func TestEndToEndSimpleToken(t *testing.T) {
	tokens := Tokenize(simpleTokenSource)
	program, perrs := Parse(tokens, simpleTokenSource)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	artifact, cerrs := c.Compile(program)
	if len(cerrs) > 0 {
		t.Fatalf("unexpected compiler errors: %v", cerrs)
	}

	machine := NewVM()
	machine.LoadContract(artifact)

	address, err := machine.DeployContract("SimpleToken", []Value{
		vString("Grishinium Token"),
		vString("GRISH"),
		vUint(18),
	})
	if err != nil {
		t.Fatalf("DeployContract: %v", err)
	}

	name, err := machine.ExecuteFunction("SimpleToken", "getName", nil, address)
	if err != nil {
		t.Fatalf("getName: %v", err)
	}
	if name.GoValue() != "Grishinium Token" {
		t.Errorf("getName: expected %q, got %v", "Grishinium Token", name.GoValue())
	}

	symbol, err := machine.ExecuteFunction("SimpleToken", "getSymbol", nil, address)
	if err != nil {
		t.Fatalf("getSymbol: %v", err)
	}
	if symbol.GoValue() != "GRISH" {
		t.Errorf("getSymbol: expected %q, got %v", "GRISH", symbol.GoValue())
	}

	decimals, err := machine.ExecuteFunction("SimpleToken", "getDecimals", nil, address)
	if err != nil {
		t.Fatalf("getDecimals: %v", err)
	}
	if decimals.GoValue() != uint64(18) {
		t.Errorf("getDecimals: expected 18, got %v", decimals.GoValue())
	}

	storage := machine.GetStorage("SimpleToken", address)
	if storage[0].GoValue() != "Grishinium Token" || storage[1].GoValue() != "GRISH" || storage[2].GoValue() != uint64(18) {
		t.Errorf("unexpected storage layout: %+v", storage)
	}
}

func TestDivisionByZeroIsVMError(t *testing.T) {
	source := `
	contract C {
		function f() returns int {
			return 1 / 0;
		}
	}
	`
	tokens := Tokenize(source)
	program, perrs := Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	artifact, cerrs := c.Compile(program)
	if len(cerrs) > 0 {
		t.Fatalf("unexpected compiler errors: %v", cerrs)
	}

	machine := NewVM()
	machine.LoadContract(artifact)
	_, err := machine.ExecuteFunction("C", "f", nil, "")
	if err == nil {
		t.Fatalf("expected a division-by-zero VM error")
	}
}

func TestRequireFailureCarriesMessage(t *testing.T) {
	source := `
	contract C {
		function f() {
			require(false, "nope");
		}
	}
	`
	tokens := Tokenize(source)
	program, perrs := Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	artifact, cerrs := c.Compile(program)
	if len(cerrs) > 0 {
		t.Fatalf("unexpected compiler errors: %v", cerrs)
	}

	machine := NewVM()
	machine.LoadContract(artifact)
	_, err := machine.ExecuteFunction("C", "f", nil, "")
	if err == nil || err.Error() != "nope" {
		t.Fatalf("expected a VM error carrying %q, got %v", "nope", err)
	}
}

func TestEventLogRecordsEmission(t *testing.T) {
	source := `
	contract C {
		event E(x: uint);

		function f() {
			emit E(42);
		}
	}
	`
	tokens := Tokenize(source)
	program, perrs := Parse(tokens, source)
	if len(perrs) > 0 {
		t.Fatalf("unexpected parser errors: %v", perrs)
	}

	c := NewCompiler()
	artifact, cerrs := c.Compile(program)
	if len(cerrs) > 0 {
		t.Fatalf("unexpected compiler errors: %v", cerrs)
	}

	machine := NewVM()
	machine.LoadContract(artifact)
	address, err := machine.DeployContract("C", nil)
	if err != nil {
		t.Fatalf("DeployContract: %v", err)
	}
	if _, err := machine.ExecuteFunction("C", "f", nil, address); err != nil {
		t.Fatalf("f: %v", err)
	}

	logs := machine.GetLogs()
	if len(logs) != 1 {
		t.Fatalf("expected exactly 1 log entry, got %d", len(logs))
	}
	entry := logs[0]
	if entry.Event != "E" || entry.Address != address {
		t.Errorf("unexpected log entry: %+v", entry)
	}
	if len(entry.Data) != 1 || entry.Data[0] != int64(42) {
		t.Errorf("expected data==[42], got %v", entry.Data)
	}
}

func TestDeploymentAddressesAreUnique(t *testing.T) {
	source := `contract C { }`
	tokens := Tokenize(source)
	program, _ := Parse(tokens, source)

	c := NewCompiler()
	artifact, _ := c.Compile(program)

	machine := NewVM()
	machine.LoadContract(artifact)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		address, err := machine.DeployContract("C", nil)
		if err != nil {
			t.Fatalf("DeployContract: %v", err)
		}
		if seen[address] {
			t.Fatalf("duplicate deployment address %s", address)
		}
		seen[address] = true
	}
}

func vString(s string) Value { return vm.String(s) }
func vUint(u uint64) Value   { return vm.Uint(u) }
