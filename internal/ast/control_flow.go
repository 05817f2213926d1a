package ast

import "github.com/grishinium/grishex/internal/lexer"

// IfStatement is `if (cond) consequence else alternative`. Alternative is
// nil when there is no else clause; an `else if` chains as a nested
// IfStatement wrapped directly as Alternative.
type IfStatement struct {
	Token       lexer.Token // the IF token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement
}

func (is *IfStatement) statementNode()      {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	out := "if (" + is.Condition.String() + ") " + is.Consequence.String()
	if is.Alternative != nil {
		out += " else " + is.Alternative.String()
	}
	return out
}

// WhileStatement is `while (cond) { body }`.
type WhileStatement struct {
	Token     lexer.Token // the WHILE token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()      {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() lexer.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ForStatement is a C-style `for (init; cond; post) { body }`. Any clause
// may be nil.
type ForStatement struct {
	Token     lexer.Token // the FOR token
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *BlockStatement
}

func (fs *ForStatement) statementNode()      {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	out := "for ("
	if fs.Init != nil {
		out += fs.Init.String()
	}
	out += " "
	if fs.Condition != nil {
		out += fs.Condition.String()
	}
	out += "; "
	if fs.Post != nil {
		out += fs.Post.String()
	}
	out += ") " + fs.Body.String()
	return out
}

// ForeachStatement is `foreach (item in collection) { body }`.
type ForeachStatement struct {
	Token      lexer.Token // the FOREACH token
	Var        string
	Collection Expression
	Body       *BlockStatement
}

func (fs *ForeachStatement) statementNode()      {}
func (fs *ForeachStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForeachStatement) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForeachStatement) String() string {
	return "foreach (" + fs.Var + " in " + fs.Collection.String() + ") " + fs.Body.String()
}

// TryStatement is `try { block } catch (name) { handler }`.
type TryStatement struct {
	Token      lexer.Token // the TRY token
	TryBlock   *BlockStatement
	CatchParam string
	CatchBlock *BlockStatement
}

func (ts *TryStatement) statementNode()      {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) Pos() lexer.Position  { return ts.Token.Pos }
func (ts *TryStatement) String() string {
	return "try " + ts.TryBlock.String() + " catch (" + ts.CatchParam + ") " + ts.CatchBlock.String()
}
