// Package parser implements a recursive-descent / Pratt parser that
// turns a Grishex token stream into a Program AST.
package parser

import (
	"fmt"

	"github.com/grishinium/grishex/internal/ast"
	grisherrors "github.com/grishinium/grishex/internal/errors"
	"github.com/grishinium/grishex/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	LOGICAL_OR
	LOGICAL_AND
	EQUALS
	RELATIONAL
	SUM
	PRODUCT
	PREFIX
	POSTFIX // call, member, index
)

var precedences = map[lexer.TokenType]int{
	lexer.OR_OR:    LOGICAL_OR,
	lexer.AND_AND:  LOGICAL_AND,
	lexer.EQ:       EQUALS,
	lexer.NEQ:      EQUALS,
	lexer.LT:       RELATIONAL,
	lexer.GT:       RELATIONAL,
	lexer.LTE:      RELATIONAL,
	lexer.GTE:      RELATIONAL,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.LPAREN:   POSTFIX,
	lexer.DOT:      POSTFIX,
	lexer.LBRACKET: POSTFIX,
}

type prefixParseFn func() (ast.Expression, bool)
type infixParseFn func(ast.Expression) (ast.Expression, bool)

// Parser consumes a fixed token slice and produces a Program, recording
// recoverable errors rather than panicking across the parse boundary.
type Parser struct {
	tokens []lexer.Token
	pos    int

	curToken  lexer.Token
	peekToken lexer.Token

	source string
	errors []*grisherrors.ParserError

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over tokens. source, if non-empty, is used only to
// render caret-annotated error context; it has no effect on parsing.
func New(tokens []lexer.Token, source string) *Parser {
	p := &Parser{tokens: tokens, source: source}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.SELF, p.parseSelfExpr)
	p.registerPrefix(lexer.BANG, p.parseUnaryExpr)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, t := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE,
		lexer.AND_AND, lexer.OR_OR,
	} {
		p.registerInfix(t, p.parseBinaryExpr)
	}
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)

	// prime curToken/peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse tokenizes errors aside, runs a full program parse over tokens.
// On any recoverable failure it returns an empty Program alongside the
// accumulated errors, per the fail-soft contract: a single mismatch
// abandons the current parse rather than yielding a partial tree.
func Parse(tokens []lexer.Token, source string) (*ast.Program, []*grisherrors.ParserError) {
	p := New(tokens, source)
	program := p.ParseProgram()
	return program, p.errors
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// expect advances past the current token if it matches t, else records an
// error and returns false.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.curToken.Type, p.curToken.Literal)
	return false
}

// expectPeek is the peek-based counterpart used by the expression Pratt
// parser, where curToken sits on the last token already consumed.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, grisherrors.NewParserError(p.curToken.Pos, msg, p.source))
}

// ParseProgram parses an optional pragma followed by zero or more
// top-level declarations.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	if p.curTokenIs(lexer.PRAGMA) {
		pragma, ok := p.parsePragma()
		if !ok {
			return &ast.Program{}
		}
		program.Pragma = pragma
	}

	for !p.curTokenIs(lexer.EOF) {
		decl, ok := p.parseDeclaration()
		if !ok {
			return &ast.Program{}
		}
		program.Declarations = append(program.Declarations, decl)
	}

	return program
}

func (p *Parser) parsePragma() (*ast.PragmaDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.PRAGMA) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected pragma name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()
	if !p.curTokenIs(lexer.INT) {
		p.errorf("expected pragma version, got %s", p.curToken.Type)
		return nil, false
	}
	version := p.curToken.Literal
	p.nextToken()
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return &ast.PragmaDecl{Token: tok, Name: name, Version: version}, true
}

func (p *Parser) parseDeclaration() (ast.Declaration, bool) {
	switch p.curToken.Type {
	case lexer.CONTRACT:
		return p.parseContract()
	case lexer.INTERFACE:
		return p.parseInterface()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.ENUM:
		return p.parseEnum()
	default:
		p.errorf("expected a top-level declaration (contract/interface/struct/enum), got %s", p.curToken.Type)
		return nil, false
	}
}

// parseType parses a primitive, array<T>, map<K,V>, or user-defined type
// reference.
func (p *Parser) parseType() (*ast.TypeNode, bool) {
	tok := p.curToken

	switch tok.Type {
	case lexer.ARRAY_TYPE:
		p.nextToken()
		if !p.expect(lexer.LT) {
			return nil, false
		}
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if !p.expect(lexer.GT) {
			return nil, false
		}
		return &ast.TypeNode{Token: tok, Name: "array", Elem: elem}, true
	case lexer.MAP_TYPE:
		p.nextToken()
		if !p.expect(lexer.LT) {
			return nil, false
		}
		key, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if !p.expect(lexer.COMMA) {
			return nil, false
		}
		val, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if !p.expect(lexer.GT) {
			return nil, false
		}
		return &ast.TypeNode{Token: tok, Name: "map", Key: key, Value: val}, true
	case lexer.INT_TYPE, lexer.UINT_TYPE, lexer.BOOL_TYPE, lexer.ADDRESS_TYPE,
		lexer.STRING_TYPE, lexer.BYTES_TYPE, lexer.HASH_TYPE, lexer.FLOAT_TYPE:
		p.nextToken()
		return &ast.TypeNode{Token: tok, Name: tok.Literal}, true
	case lexer.IDENT:
		p.nextToken()
		return &ast.TypeNode{Token: tok, Name: tok.Literal}, true
	default:
		p.errorf("expected a type, got %s", tok.Type)
		return nil, false
	}
}

// parseParamList parses a parenthesized `(name: Type, ...)` list. The
// opening LPAREN must already be current.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}

	var params []*ast.Param
	if p.curTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		if !p.curTokenIs(lexer.IDENT) {
			p.errorf("expected parameter name, got %s", p.curToken.Type)
			return nil, false
		}
		name := p.curToken.Literal
		p.nextToken()
		if !p.expect(lexer.COLON) {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		params = append(params, &ast.Param{Name: name, Type: typ})

		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	return params, true
}
