package ast

import (
	"strings"

	"github.com/grishinium/grishex/internal/lexer"
)

// BlockStatement is a brace-delimited sequence of statements.
type BlockStatement struct {
	Token      lexer.Token // the LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()      {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range bs.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// LetStatement declares a local variable, optionally typed and/or
// initialized: `let name: T = e;`.
type LetStatement struct {
	Token lexer.Token // the LET token
	Name  string
	Type  *TypeNode  // nil if omitted; the compiler then records the local with no type
	Value Expression // nil if omitted; the compiler emits the type's default
}

func (ls *LetStatement) statementNode()      {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) Pos() lexer.Position  { return ls.Token.Pos }
func (ls *LetStatement) String() string {
	var sb strings.Builder
	sb.WriteString("let " + ls.Name)
	if ls.Type != nil {
		sb.WriteString(": " + ls.Type.String())
	}
	if ls.Value != nil {
		sb.WriteString(" = " + ls.Value.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// AssignStatement assigns to an identifier, member, or index target.
// The target determines whether codegen emits STORE_LOCAL, STORE_STATE,
// STORE_MEMBER, or STORE_INDEX.
type AssignStatement struct {
	Token  lexer.Token // the ASSIGN token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()      {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssignStatement) String() string {
	return as.Target.String() + " = " + as.Value.String() + ";"
}

// ExpressionStatement wraps an expression evaluated for its side effect;
// codegen emits the expression then POP.
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()      {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String() + ";"
}

// ReturnStatement is `return e;` or `return;` (Value nil).
type ReturnStatement struct {
	Token lexer.Token // the RETURN token
	Value Expression
}

func (rs *ReturnStatement) statementNode()      {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// RequireStatement is `require(condition, message);`.
type RequireStatement struct {
	Token     lexer.Token // the REQUIRE token
	Condition Expression
	Message   Expression
}

func (rs *RequireStatement) statementNode()      {}
func (rs *RequireStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RequireStatement) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *RequireStatement) String() string {
	return "require(" + rs.Condition.String() + ", " + rs.Message.String() + ");"
}

// AssertStatement is `assert(condition, message);`.
type AssertStatement struct {
	Token     lexer.Token // the ASSERT token
	Condition Expression
	Message   Expression
}

func (as *AssertStatement) statementNode()      {}
func (as *AssertStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssertStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssertStatement) String() string {
	return "assert(" + as.Condition.String() + ", " + as.Message.String() + ");"
}

// RevertStatement is `revert(message);`.
type RevertStatement struct {
	Token   lexer.Token // the REVERT token
	Message Expression
}

func (rs *RevertStatement) statementNode()      {}
func (rs *RevertStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RevertStatement) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *RevertStatement) String() string {
	if rs.Message == nil {
		return "revert();"
	}
	return "revert(" + rs.Message.String() + ");"
}

// EmitStatement is `emit EventName(args...);`.
type EmitStatement struct {
	Token lexer.Token // the EMIT token
	Event string
	Args  []Expression
}

func (es *EmitStatement) statementNode()      {}
func (es *EmitStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EmitStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *EmitStatement) String() string {
	args := make([]string, len(es.Args))
	for i, a := range es.Args {
		args[i] = a.String()
	}
	return "emit " + es.Event + "(" + strings.Join(args, ", ") + ");"
}
