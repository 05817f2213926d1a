// Package grishex is the stable embedding surface for the Grishex
// toolchain: tokenize, parse, compile, and run contracts without
// depending on internal/ package layout directly. It exists so an
// external caller (an IDE, a test harness, a script runner) has one
// import path that will not churn as the internal pipeline evolves.
package grishex

import (
	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/bytecode"
	"github.com/grishinium/grishex/internal/compiler"
	grisherrors "github.com/grishinium/grishex/internal/errors"
	"github.com/grishinium/grishex/internal/lexer"
	"github.com/grishinium/grishex/internal/parser"
	"github.com/grishinium/grishex/internal/vm"
)

// Tokenize lexes source into a token stream. Unrecognized characters
// become ILLEGAL tokens rather than errors; the parser rejects those on
// sight.
func Tokenize(source string) []lexer.Token {
	return lexer.Tokenize(source)
}

// Parse builds an AST from a token stream. Parser errors are returned
// rather than raised; the first error abandons the parse and an empty
// Program is returned alongside it.
func Parse(tokens []lexer.Token, source string) (*ast.Program, []*grisherrors.ParserError) {
	return parser.Parse(tokens, source)
}

// Compiler lowers a parsed program into a bytecode artifact. Reuse with
// Reset rather than allocating a new one per compile.
type Compiler = compiler.Compiler

// NewCompiler creates a Compiler ready to compile its first program.
func NewCompiler() *Compiler {
	return compiler.NewCompiler()
}

// Artifact is the compiled bytecode document a VM loads.
type Artifact = bytecode.Artifact

// VM loads bytecode artifacts, deploys contract instances, and executes
// their functions.
type VM = vm.VM

// NewVM creates an empty VM ready to load bytecode.
func NewVM() *VM {
	return vm.NewVM()
}

// Value is a tagged VM runtime value.
type Value = vm.Value

// LogEntry is one emitted event.
type LogEntry = vm.LogEntry

// Stats accumulates a VM's execution counters.
type Stats = vm.Stats
