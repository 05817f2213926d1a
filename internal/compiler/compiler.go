// Package compiler lowers a parsed program into a bytecode artifact.
//
// Compilation is two-pass over the program root: a declaration-gathering
// pass that populates the global symbol table (contracts, interfaces,
// structs, enums, enum values), followed by a code-generation pass that
// walks each contract's state, constructor, functions, and events.
package compiler

import (
	"fmt"

	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/bytecode"
	grisherrors "github.com/grishinium/grishex/internal/errors"
	"github.com/grishinium/grishex/internal/symbols"
)

// Compiler turns a *ast.Program into a *bytecode.Artifact. Reuse a single
// Compiler across sources with Reset rather than allocating a fresh one.
type Compiler struct {
	artifact *bytecode.Artifact

	global  *symbols.SymbolTable
	current *symbols.SymbolTable

	contract   string
	localCount int

	source string
	errors []*grisherrors.CompilerError
}

// NewCompiler creates a Compiler ready to compile its first program.
func NewCompiler() *Compiler {
	c := &Compiler{}
	c.Reset()
	return c
}

// Reset clears all accumulated state, discarding the symbol tables and
// error list so the Compiler can be reused for an unrelated source.
func (c *Compiler) Reset() {
	c.artifact = bytecode.NewArtifact()
	c.global = symbols.New()
	c.current = c.global
	c.contract = ""
	c.localCount = 0
	c.source = ""
	c.errors = nil
}

// Compile lowers program into a bytecode artifact, accumulating
// CompilerErrors along the way. The artifact may be partially populated
// when errors are present; callers must check the error list before
// treating the artifact as usable.
func (c *Compiler) Compile(program *ast.Program) (*bytecode.Artifact, []*grisherrors.CompilerError) {
	c.gatherDeclarations(program)
	if len(c.errors) > 0 {
		return c.artifact, c.errors
	}

	for _, decl := range program.Declarations {
		if contract, ok := decl.(*ast.ContractDecl); ok {
			c.compileContract(contract)
		}
	}

	return c.artifact, c.errors
}

// gatherDeclarations is pass 1: register every top-level declaration in
// the global symbol table. A duplicate name at this level is an error and
// the offending declaration is skipped; enum values receive sequential
// ordinals starting at 0 in declaration order.
func (c *Compiler) gatherDeclarations(program *ast.Program) {
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.ContractDecl:
			if _, exists := c.global.ResolveLocal(d.Name); exists {
				c.errorf(d, "contract %s already defined", d.Name)
				continue
			}
			c.global.Define(&symbols.Symbol{Name: d.Name, Kind: symbols.KindContract})
			c.artifact.Contracts[d.Name] = bytecode.ContractSpec{
				StateVariables: make(map[string]bytecode.StateVarSpec),
				Functions:      make(map[string]bytecode.FunctionSpec),
				Events:         make(map[string]bytecode.EventSpec),
			}

		case *ast.InterfaceDecl:
			if _, exists := c.global.ResolveLocal(d.Name); exists {
				c.errorf(d, "interface %s already defined", d.Name)
				continue
			}
			c.global.Define(&symbols.Symbol{Name: d.Name, Kind: symbols.KindInterface})

		case *ast.StructDecl:
			if _, exists := c.global.ResolveLocal(d.Name); exists {
				c.errorf(d, "struct %s already defined", d.Name)
				continue
			}
			c.global.Define(&symbols.Symbol{Name: d.Name, Kind: symbols.KindStruct})

		case *ast.EnumDecl:
			if _, exists := c.global.ResolveLocal(d.Name); exists {
				c.errorf(d, "enum %s already defined", d.Name)
				continue
			}
			c.global.Define(&symbols.Symbol{Name: d.Name, Kind: symbols.KindEnum})

			for i, valueName := range d.Values {
				if _, exists := c.global.ResolveLocal(valueName); exists {
					c.errorf(d, "enum value %s already defined", valueName)
					continue
				}
				c.global.Define(&symbols.Symbol{
					Name: valueName, Kind: symbols.KindEnumValue,
					EnumName: d.Name, Value: i,
				})
			}
		}
	}
}

// compileContract is pass 2 for one contract: a nested symbol table,
// dense zero-based state-variable offsets in declaration order, then its
// events, constructor, and functions.
func (c *Compiler) compileContract(contract *ast.ContractDecl) {
	c.contract = contract.Name
	c.current = symbols.NewEnclosed(c.global)
	spec := c.artifact.Contracts[c.contract]

	offset := 0
	for _, state := range contract.States {
		if _, exists := c.current.ResolveLocal(state.Name); exists {
			c.errorf(state, "variable %s already defined", state.Name)
			continue
		}
		if !c.isValidType(state.Type) {
			c.errorf(state.Type, "unknown type %s", state.Type.String())
			continue
		}

		typeName := state.Type.String()
		c.current.Define(&symbols.Symbol{
			Name: state.Name, Kind: symbols.KindStateVariable,
			Type: typeName, Offset: offset,
		})
		spec.StateVariables[state.Name] = bytecode.StateVarSpec{Type: typeName, Offset: offset}
		offset++
	}

	for _, event := range contract.Events {
		c.compileEvent(event, spec)
	}

	if contract.Constructor != nil {
		c.compileConstructor(contract.Constructor, spec)
	}

	for _, fn := range contract.Functions {
		c.compileFunctionDecl(fn, spec)
	}

	c.current = c.global
	c.contract = ""
}

func (c *Compiler) compileEvent(event *ast.EventDecl, spec bytecode.ContractSpec) {
	if _, exists := c.current.ResolveLocal(event.Name); exists {
		c.errorf(event, "event %s already defined", event.Name)
		return
	}

	params := make([]symbols.ParamInfo, 0, len(event.Params))
	specParams := make([]bytecode.ParamSpec, 0, len(event.Params))
	for _, p := range event.Params {
		if !c.isValidType(p.Type) {
			c.errorf(p.Type, "unknown type %s", p.Type.String())
			continue
		}
		params = append(params, symbols.ParamInfo{Name: p.Name, Type: p.Type.String()})
		specParams = append(specParams, bytecode.ParamSpec{Name: p.Name, Type: p.Type.String()})
	}

	c.current.Define(&symbols.Symbol{Name: event.Name, Kind: symbols.KindEvent, Params: params})
	spec.Events[event.Name] = bytecode.EventSpec{Params: specParams}
}

// compileParams binds each parameter in c.current at its declaration
// index and returns the artifact-facing ParamSpec list.
func (c *Compiler) compileParams(params []*ast.Param) []bytecode.ParamSpec {
	specParams := make([]bytecode.ParamSpec, 0, len(params))
	for i, p := range params {
		if _, exists := c.current.ResolveLocal(p.Name); exists {
			c.errorf(p.Type, "parameter %s already defined", p.Name)
			continue
		}
		if !c.isValidType(p.Type) {
			c.errorf(p.Type, "unknown type %s", p.Type.String())
			continue
		}
		c.current.Define(&symbols.Symbol{
			Name: p.Name, Kind: symbols.KindParameter,
			Type: p.Type.String(), Index: i,
		})
		specParams = append(specParams, bytecode.ParamSpec{Name: p.Name, Type: p.Type.String()})
	}
	return specParams
}

func (c *Compiler) compileConstructor(ctor *ast.ConstructorDecl, spec bytecode.ContractSpec) {
	c.current = symbols.NewEnclosed(c.current)
	specParams := c.compileParams(ctor.Params)
	c.localCount = 0

	code := c.compileStatement(ctor.Body)
	code = append(code, bytecode.Instruction{Op: bytecode.RETURN})

	spec.Functions["constructor"] = bytecode.FunctionSpec{Params: specParams, Code: code}

	c.current = c.current.Parent()
}

func (c *Compiler) compileFunctionDecl(fn *ast.FunctionDecl, spec bytecode.ContractSpec) {
	if _, exists := c.current.ResolveLocal(fn.Name); exists {
		c.errorf(fn, "function %s already defined", fn.Name)
		return
	}

	c.current = symbols.NewEnclosed(c.current)
	specParams := c.compileParams(fn.Params)
	c.localCount = 0

	var returnType string
	if fn.ReturnType != nil {
		if c.isValidType(fn.ReturnType) {
			returnType = fn.ReturnType.String()
		} else {
			c.errorf(fn.ReturnType, "unknown return type %s", fn.ReturnType.String())
		}
	}

	code := c.compileStatement(fn.Body)
	if returnType != "" {
		// Appended unconditionally: a RETURN nested inside an if-consequence
		// only covers the true branch, so checking for a RETURN anywhere in
		// the body is not enough to know every path returns. A trailing
		// RETURN after an already-returning body is unreachable and
		// harmless; omitting it on a path that falls through is not.
		code = append(code, bytecode.Instruction{Op: bytecode.RETURN, Value: c.defaultValueForType(fn.ReturnType)})
	} else {
		code = append(code, bytecode.Instruction{Op: bytecode.RETURN})
	}

	spec.Functions[fn.Name] = bytecode.FunctionSpec{
		Params:     specParams,
		ReturnType: returnType,
		IsView:     fn.IsView,
		IsPrivate:  fn.IsPrivate,
		Code:       code,
	}

	// Bound one frame out from the table the function compiled its own
	// parameters in, not in that table itself — matching the reference
	// compiler's _compile_function, which defines the function symbol
	// via current_symbols.parent rather than current_symbols.
	c.current.Parent().Define(&symbols.Symbol{
		Name: fn.Name, Kind: symbols.KindFunction,
		ReturnType: returnType, IsView: fn.IsView, IsPrivate: fn.IsPrivate,
	})

	c.current = c.current.Parent()
}

func (c *Compiler) errorf(node ast.Node, format string, args ...interface{}) {
	c.errors = append(c.errors, grisherrors.NewCompilerError(node, fmt.Sprintf(format, args...), c.source))
}
