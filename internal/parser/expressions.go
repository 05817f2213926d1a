package parser

import (
	"strconv"

	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/lexer"
)

// parseExpression implements Pratt parsing: a prefix function builds the
// left operand from curToken, then infix functions fold in operators for
// as long as the upcoming token binds tighter than precedence.
func (p *Parser) parseExpression(precedence int) (ast.Expression, bool) {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errorf("unexpected token in expression: %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil, false
	}

	left, ok := prefix()
	if !ok {
		return nil, false
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left, true
		}
		p.nextToken()
		left, ok = infix(left)
		if !ok {
			return nil, false
		}
	}

	return left, true
}

func (p *Parser) parseIdentifier() (ast.Expression, bool) {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}, true
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, bool) {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf("could not parse %q as integer", tok.Literal)
		return nil, false
	}
	return &ast.IntegerLiteral{Token: tok, Value: value}, true
}

func (p *Parser) parseFloatLiteral() (ast.Expression, bool) {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf("could not parse %q as float", tok.Literal)
		return nil, false
	}
	return &ast.FloatLiteral{Token: tok, Value: value}, true
}

func (p *Parser) parseStringLiteral() (ast.Expression, bool) {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}, true
}

func (p *Parser) parseBoolLiteral() (ast.Expression, bool) {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}, true
}

func (p *Parser) parseSelfExpr() (ast.Expression, bool) {
	return &ast.SelfExpr{Token: p.curToken}, true
}

func (p *Parser) parseUnaryExpr() (ast.Expression, bool) {
	tok := p.curToken
	p.nextToken()
	operand, ok := p.parseExpression(PREFIX)
	if !ok {
		return nil, false
	}
	return &ast.UnaryExpr{Token: tok, Operator: tok.Literal, Operand: operand}, true
}

func (p *Parser) parseGroupedExpr() (ast.Expression, bool) {
	p.nextToken()
	exp, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}
	return exp, true
}

func (p *Parser) parseBinaryExpr(left ast.Expression) (ast.Expression, bool) {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right, ok := p.parseExpression(precedence)
	if !ok {
		return nil, false
	}
	return &ast.BinaryExpr{Token: tok, Operator: tok.Literal, Left: left, Right: right}, true
}

func (p *Parser) parseCallExpr(left ast.Expression) (ast.Expression, bool) {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorf("left-hand side of call expression is not a function name")
		return nil, false
	}

	tok := p.curToken // LPAREN
	var args []ast.Expression

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return &ast.CallExpr{Token: tok, Function: ident.Value, Args: args}, true
	}

	p.nextToken()
	arg, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}
	args = append(args, arg)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		arg, ok := p.parseExpression(LOWEST)
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}

	return &ast.CallExpr{Token: tok, Function: ident.Value, Args: args}, true
}

func (p *Parser) parseMemberExpr(left ast.Expression) (ast.Expression, bool) {
	tok := p.curToken // DOT
	if !p.expectPeek(lexer.IDENT) {
		return nil, false
	}
	return &ast.MemberExpr{Token: tok, Object: left, Member: p.curToken.Literal}, true
}

func (p *Parser) parseIndexExpr(left ast.Expression) (ast.Expression, bool) {
	tok := p.curToken // LBRACKET
	p.nextToken()
	idx, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil, false
	}
	return &ast.IndexExpr{Token: tok, Object: left, Index: idx}, true
}
