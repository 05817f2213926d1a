package parser

import (
	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/lexer"
)

// parseExpr parses an expression and advances one token past it, so that
// curToken is again "the next unconsumed token" for the LL(1)-style
// statement grammar that calls it. (parseExpression itself, used by the
// Pratt machinery in expressions.go, leaves curToken on the expression's
// last token.)
func (p *Parser) parseExpr(precedence int) (ast.Expression, bool) {
	expr, ok := p.parseExpression(precedence)
	if !ok {
		return nil, false
	}
	p.nextToken()
	return expr, true
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.LBRACE) {
		return nil, false
	}

	block := &ast.BlockStatement{Token: tok}

	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.errorf("unexpected EOF inside block")
			return nil, false
		}
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		block.Statements = append(block.Statements, stmt)
	}

	if !p.expect(lexer.RBRACE) {
		return nil, false
	}

	return block, true
}

func (p *Parser) parseStatement() (ast.Statement, bool) {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.FOREACH:
		return p.parseForeachStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.REQUIRE:
		return p.parseRequireStatement()
	case lexer.ASSERT:
		return p.parseAssertStatement()
	case lexer.REVERT:
		return p.parseRevertStatement()
	case lexer.EMIT:
		return p.parseEmitStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseLetStatement() (*ast.LetStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.LET) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected variable name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	stmt := &ast.LetStatement{Token: tok, Name: name}

	if p.curTokenIs(lexer.COLON) {
		p.nextToken()
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		stmt.Type = typ
	}

	if p.curTokenIs(lexer.ASSIGN) {
		p.nextToken()
		val, ok := p.parseExpr(LOWEST)
		if !ok {
			return nil, false
		}
		stmt.Value = val
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}

	return stmt, true
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.IF) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	cond, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}

	consequence, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Consequence: consequence}

	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		if p.curTokenIs(lexer.IF) {
			alt, ok := p.parseIfStatement()
			if !ok {
				return nil, false
			}
			stmt.Alternative = alt
		} else {
			alt, ok := p.parseBlockStatement()
			if !ok {
				return nil, false
			}
			stmt.Alternative = alt
		}
	}

	return stmt, true
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.WHILE) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	cond, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	body, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}, true
}

func (p *Parser) parseForStatement() (*ast.ForStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.FOR) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}

	stmt := &ast.ForStatement{Token: tok}

	if !p.curTokenIs(lexer.SEMICOLON) {
		init, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		stmt.Init = init
	} else if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}

	if !p.curTokenIs(lexer.SEMICOLON) {
		cond, ok := p.parseExpr(LOWEST)
		if !ok {
			return nil, false
		}
		stmt.Condition = cond
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}

	if !p.curTokenIs(lexer.RPAREN) {
		post, ok := p.parseSimpleStatement()
		if !ok {
			return nil, false
		}
		stmt.Post = post
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}

	body, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}
	stmt.Body = body
	return stmt, true
}

// parseSimpleStatement parses an assignment or bare expression without a
// trailing semicolon, used for the `for` loop's post-clause.
func (p *Parser) parseSimpleStatement() (ast.Statement, bool) {
	tok := p.curToken
	expr, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if p.curTokenIs(lexer.ASSIGN) {
		p.nextToken()
		val, ok := p.parseExpr(LOWEST)
		if !ok {
			return nil, false
		}
		return &ast.AssignStatement{Token: tok, Target: expr, Value: val}, true
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}, true
}

func (p *Parser) parseForeachStatement() (*ast.ForeachStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.FOREACH) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected loop variable name, got %s", p.curToken.Type)
		return nil, false
	}
	varName := p.curToken.Literal
	p.nextToken()
	if !p.expect(lexer.IN) {
		return nil, false
	}
	collection, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	body, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}
	return &ast.ForeachStatement{Token: tok, Var: varName, Collection: collection, Body: body}, true
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.RETURN) {
		return nil, false
	}
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.curTokenIs(lexer.SEMICOLON) {
		val, ok := p.parseExpr(LOWEST)
		if !ok {
			return nil, false
		}
		stmt.Value = val
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return stmt, true
}

func (p *Parser) parseRequireStatement() (*ast.RequireStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.REQUIRE) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	cond, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.COMMA) {
		return nil, false
	}
	msg, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return &ast.RequireStatement{Token: tok, Condition: cond, Message: msg}, true
}

func (p *Parser) parseAssertStatement() (*ast.AssertStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.ASSERT) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	cond, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.COMMA) {
		return nil, false
	}
	msg, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return &ast.AssertStatement{Token: tok, Condition: cond, Message: msg}, true
}

func (p *Parser) parseRevertStatement() (*ast.RevertStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.REVERT) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	stmt := &ast.RevertStatement{Token: tok}
	if !p.curTokenIs(lexer.RPAREN) {
		msg, ok := p.parseExpr(LOWEST)
		if !ok {
			return nil, false
		}
		stmt.Message = msg
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return stmt, true
}

func (p *Parser) parseEmitStatement() (*ast.EmitStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.EMIT) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected event name, got %s", p.curToken.Type)
		return nil, false
	}
	event := p.curToken.Literal
	p.nextToken()

	if !p.expect(lexer.LPAREN) {
		return nil, false
	}

	var args []ast.Expression
	if !p.curTokenIs(lexer.RPAREN) {
		for {
			arg, ok := p.parseExpr(LOWEST)
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if p.curTokenIs(lexer.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}

	return &ast.EmitStatement{Token: tok, Event: event, Args: args}, true
}

func (p *Parser) parseTryStatement() (*ast.TryStatement, bool) {
	tok := p.curToken
	if !p.expect(lexer.TRY) {
		return nil, false
	}
	tryBlock, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.CATCH) {
		return nil, false
	}
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected catch parameter name, got %s", p.curToken.Type)
		return nil, false
	}
	catchParam := p.curToken.Literal
	p.nextToken()
	if !p.expect(lexer.RPAREN) {
		return nil, false
	}
	catchBlock, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}
	return &ast.TryStatement{Token: tok, TryBlock: tryBlock, CatchParam: catchParam, CatchBlock: catchBlock}, true
}

// parseExpressionOrAssignStatement parses either an assignment
// (identifier/member/index target followed by `=`) or a bare expression
// statement, both terminated by `;`.
func (p *Parser) parseExpressionOrAssignStatement() (ast.Statement, bool) {
	tok := p.curToken
	expr, ok := p.parseExpr(LOWEST)
	if !ok {
		return nil, false
	}

	if p.curTokenIs(lexer.ASSIGN) {
		p.nextToken()
		val, ok := p.parseExpr(LOWEST)
		if !ok {
			return nil, false
		}
		if !p.expect(lexer.SEMICOLON) {
			return nil, false
		}
		return &ast.AssignStatement{Token: tok, Target: expr, Value: val}, true
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}, true
}
