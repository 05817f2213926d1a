// Package ast defines the abstract syntax tree node types for Grishex.
//
// Unlike a single node type parameterized by a kind tag and a bag of
// named attributes, every node kind here is its own Go type implementing
// Node. The compiler switches on concrete type rather than an attribute
// map, so a missing case is a compile-time gap instead of a runtime one.
package ast

import (
	"bytes"
	"strings"

	"github.com/grishinium/grishex/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action inside a block.
type Statement interface {
	Node
	statementNode()
}

// Declaration is any top-level construct: contract, interface, struct, enum.
type Declaration interface {
	Node
	declarationNode()
}

// Program is the root of every parse: an optional pragma followed by
// zero or more top-level declarations.
type Program struct {
	Pragma       *PragmaDecl
	Declarations []Declaration
}

func (p *Program) TokenLiteral() string {
	if p.Pragma != nil {
		return p.Pragma.TokenLiteral()
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	if p.Pragma != nil {
		out.WriteString(p.Pragma.String())
	}
	for _, d := range p.Declarations {
		out.WriteString(d.String())
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if p.Pragma != nil {
		return p.Pragma.Pos()
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// PragmaDecl is the `pragma name version;` header.
type PragmaDecl struct {
	Token   lexer.Token // the PRAGMA token
	Name    string
	Version string
}

func (p *PragmaDecl) declarationNode()        {}
func (p *PragmaDecl) TokenLiteral() string    { return p.Token.Literal }
func (p *PragmaDecl) Pos() lexer.Position     { return p.Token.Pos }
func (p *PragmaDecl) String() string {
	return "pragma " + p.Name + " " + p.Version + ";"
}

// TypeNode names a type reference: a primitive, a user-defined name, or
// array<T> / map<K,V> with child type nodes.
type TypeNode struct {
	Token lexer.Token
	Name  string // "int", "array", "map", or a user-defined identifier
	Elem  *TypeNode // array<Elem>
	Key   *TypeNode // map<Key,Value>
	Value *TypeNode // map<Key,Value>
}

func (t *TypeNode) expressionNode()          {}
func (t *TypeNode) TokenLiteral() string     { return t.Token.Literal }
func (t *TypeNode) Pos() lexer.Position      { return t.Token.Pos }
func (t *TypeNode) String() string {
	switch t.Name {
	case "array":
		return "array<" + t.Elem.String() + ">"
	case "map":
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	default:
		return t.Name
	}
}

// Identifier is a reference to a named entity: a variable, parameter,
// state variable, function, or enum value.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// SelfExpr is the `self` reference inside a contract method.
type SelfExpr struct {
	Token lexer.Token
}

func (s *SelfExpr) expressionNode()      {}
func (s *SelfExpr) TokenLiteral() string { return s.Token.Literal }
func (s *SelfExpr) Pos() lexer.Position  { return s.Token.Pos }
func (s *SelfExpr) String() string       { return "self" }

// IntegerLiteral is a literal integer value. The compiler always emits it
// as a signed int64 constant, whatever the type it is used with.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Pos() lexer.Position  { return il.Token.Pos }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral is a literal floating-point value.
type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) Pos() lexer.Position  { return fl.Token.Pos }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// StringLiteral is a literal string value, with escapes still raw.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() lexer.Position  { return sl.Token.Pos }
func (sl *StringLiteral) String() string       { return "\"" + sl.Value + "\"" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()      {}
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BoolLiteral) Pos() lexer.Position  { return bl.Token.Pos }
func (bl *BoolLiteral) String() string       { return bl.Token.Literal }

// BinaryExpr is a two-operand expression, e.g. `a + b`.
type BinaryExpr struct {
	Token    lexer.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpr) expressionNode()      {}
func (be *BinaryExpr) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpr) Pos() lexer.Position  { return be.Token.Pos }
func (be *BinaryExpr) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpr is a prefix expression, e.g. `-a`, `!a`.
type UnaryExpr struct {
	Token    lexer.Token // the operator token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpr) expressionNode()      {}
func (ue *UnaryExpr) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpr) Pos() lexer.Position  { return ue.Token.Pos }
func (ue *UnaryExpr) String() string {
	return "(" + ue.Operator + ue.Operand.String() + ")"
}

// CallExpr is a function call `name(args...)`.
type CallExpr struct {
	Token    lexer.Token // the LPAREN token
	Function string
	Args     []Expression
}

func (ce *CallExpr) expressionNode()      {}
func (ce *CallExpr) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpr) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CallExpr) String() string {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = a.String()
	}
	return ce.Function + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpr is `object.member`.
type MemberExpr struct {
	Token  lexer.Token // the DOT token
	Object Expression
	Member string
}

func (me *MemberExpr) expressionNode()      {}
func (me *MemberExpr) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpr) Pos() lexer.Position  { return me.Token.Pos }
func (me *MemberExpr) String() string       { return me.Object.String() + "." + me.Member }

// IndexExpr is `object[index]`.
type IndexExpr struct {
	Token  lexer.Token // the LBRACKET token
	Object Expression
	Index  Expression
}

func (ie *IndexExpr) expressionNode()      {}
func (ie *IndexExpr) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpr) Pos() lexer.Position  { return ie.Token.Pos }
func (ie *IndexExpr) String() string {
	return ie.Object.String() + "[" + ie.Index.String() + "]"
}
