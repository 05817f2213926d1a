// Package errors defines the three error taxonomies produced by the
// Grishex toolchain — parser, compiler, and VM errors — and formats them
// with caret-annotated source context.
package errors

import (
	"fmt"
	"strings"

	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/lexer"
)

// ParserError is a recoverable parse failure: a required token was
// missing or malformed. Accumulated by the parser rather than thrown.
type ParserError struct {
	Message string
	Source  string
	Pos     lexer.Position
}

// NewParserError creates a parser error anchored at pos.
func NewParserError(pos lexer.Position, message, source string) *ParserError {
	return &ParserError{Pos: pos, Message: message, Source: source}
}

func (e *ParserError) Error() string { return e.Format(false) }

// Format renders the error with a line-numbered, caret-annotated source
// excerpt. If color is true, ANSI escapes highlight the caret and message.
func (e *ParserError) Format(color bool) string {
	return formatAt(e.Pos, e.Message, e.Source, color)
}

// CompilerError is a semantic or code-generation failure pinned to the
// offending AST node. Accumulated; compilation continues where safe.
type CompilerError struct {
	Message string
	Source  string
	Node    ast.Node
}

// NewCompilerError creates a compiler error anchored at node's position.
func NewCompilerError(node ast.Node, message, source string) *CompilerError {
	return &CompilerError{Node: node, Message: message, Source: source}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error the same way ParserError does, using the
// offending node's position.
func (e *CompilerError) Format(color bool) string {
	var pos lexer.Position
	if e.Node != nil {
		pos = e.Node.Pos()
	}
	return formatAt(pos, e.Message, e.Source, color)
}

// VMError is a fatal runtime failure: it terminates the current
// invocation and unwinds frames, but the VM itself remains usable.
type VMError struct {
	Message string
}

// NewVMError creates a VM error with the given message.
func NewVMError(message string) *VMError {
	return &VMError{Message: message}
}

func (e *VMError) Error() string { return e.Message }

// Format matches ParserError/CompilerError's signature for uniform
// presentation by callers, though VM errors carry no source position.
func (e *VMError) Format(color bool) string {
	if color {
		return "\033[1;31m" + e.Message + "\033[0m"
	}
	return e.Message
}

func formatAt(pos lexer.Position, message, source string, color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", pos.Line, pos.Column))

	if line := sourceLine(source, pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
