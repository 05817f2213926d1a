package ast

import (
	"strings"

	"github.com/grishinium/grishex/internal/lexer"
)

// Param is a name:type pair — a function parameter or a struct field.
type Param struct {
	Name string
	Type *TypeNode
}

func (p *Param) String() string { return p.Name + ": " + p.Type.String() }

// StateDecl is a contract state variable: `state name: Type;`.
type StateDecl struct {
	Token lexer.Token // the STATE token
	Name  string
	Type  *TypeNode
}

func (s *StateDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StateDecl) Pos() lexer.Position  { return s.Token.Pos }
func (s *StateDecl) String() string {
	return "state " + s.Name + ": " + s.Type.String() + ";"
}

// ConstructorDecl is a contract's `constructor(...) { ... }`.
type ConstructorDecl struct {
	Token  lexer.Token // the CONSTRUCTOR token
	Params []*Param
	Body   *BlockStatement
}

func (c *ConstructorDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ConstructorDecl) Pos() lexer.Position  { return c.Token.Pos }
func (c *ConstructorDecl) String() string {
	return "constructor(" + joinParams(c.Params) + ") " + c.Body.String()
}

// FunctionDecl is a contract member function, optionally `view` and/or
// `private`, with an optional return type and a body.
type FunctionDecl struct {
	Token      lexer.Token // the FUNCTION token
	Name       string
	Params     []*Param
	ReturnType *TypeNode // nil if the function returns nothing
	IsView     bool
	IsPrivate  bool
	Body       *BlockStatement
}

func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	var sb strings.Builder
	if f.IsView {
		sb.WriteString("view ")
	}
	if f.IsPrivate {
		sb.WriteString("private ")
	}
	sb.WriteString("function " + f.Name + "(" + joinParams(f.Params) + ")")
	if f.ReturnType != nil {
		sb.WriteString(" returns " + f.ReturnType.String())
	}
	sb.WriteString(" " + f.Body.String())
	return sb.String()
}

// EventDecl declares an event a contract may `emit`.
type EventDecl struct {
	Token  lexer.Token // the EVENT token
	Name   string
	Params []*Param
}

func (e *EventDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EventDecl) Pos() lexer.Position  { return e.Token.Pos }
func (e *EventDecl) String() string {
	return "event " + e.Name + "(" + joinParams(e.Params) + ");"
}

// ContractDecl is the deployable unit: state, an optional constructor,
// functions, and events.
type ContractDecl struct {
	Token       lexer.Token // the CONTRACT token
	Name        string
	States      []*StateDecl
	Constructor *ConstructorDecl
	Functions   []*FunctionDecl
	Events      []*EventDecl
}

func (c *ContractDecl) declarationNode()    {}
func (c *ContractDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ContractDecl) Pos() lexer.Position  { return c.Token.Pos }
func (c *ContractDecl) String() string {
	var sb strings.Builder
	sb.WriteString("contract " + c.Name + " {\n")
	for _, s := range c.States {
		sb.WriteString("  " + s.String() + "\n")
	}
	if c.Constructor != nil {
		sb.WriteString("  " + c.Constructor.String() + "\n")
	}
	for _, fn := range c.Functions {
		sb.WriteString("  " + fn.String() + "\n")
	}
	for _, ev := range c.Events {
		sb.WriteString("  " + ev.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// FunctionSignature is a bodiless method signature inside an interface.
type FunctionSignature struct {
	Token      lexer.Token
	Name       string
	Params     []*Param
	ReturnType *TypeNode
	IsView     bool
}

// InterfaceDecl is a nominal collection of function signatures. Parsed
// and registered in the global symbol table; no codegen is emitted for it.
type InterfaceDecl struct {
	Token     lexer.Token // the INTERFACE token
	Name      string
	Functions []*FunctionSignature
}

func (i *InterfaceDecl) declarationNode()    {}
func (i *InterfaceDecl) TokenLiteral() string { return i.Token.Literal }
func (i *InterfaceDecl) Pos() lexer.Position  { return i.Token.Pos }
func (i *InterfaceDecl) String() string {
	var sb strings.Builder
	sb.WriteString("interface " + i.Name + " {\n")
	for _, fn := range i.Functions {
		sb.WriteString("  function " + fn.Name + "(" + joinParams(fn.Params) + ");\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// StructDecl is a user-defined composite type.
type StructDecl struct {
	Token  lexer.Token // the STRUCT token
	Name   string
	Fields []*Param
}

func (s *StructDecl) declarationNode()    {}
func (s *StructDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructDecl) Pos() lexer.Position  { return s.Token.Pos }
func (s *StructDecl) String() string {
	return "struct " + s.Name + " { " + joinParams(s.Fields) + " }"
}

// EnumDecl is a user-defined enumerated type; values receive sequential
// integer values starting at 0 in declaration order.
type EnumDecl struct {
	Token  lexer.Token // the ENUM token
	Name   string
	Values []string
}

func (e *EnumDecl) declarationNode()    {}
func (e *EnumDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EnumDecl) Pos() lexer.Position  { return e.Token.Pos }
func (e *EnumDecl) String() string {
	return "enum " + e.Name + " { " + strings.Join(e.Values, ", ") + " }"
}

func joinParams(params []*Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
