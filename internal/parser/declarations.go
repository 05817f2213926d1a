package parser

import (
	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/lexer"
)

func (p *Parser) parseContract() (*ast.ContractDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.CONTRACT) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected contract name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.expect(lexer.LBRACE) {
		return nil, false
	}

	contract := &ast.ContractDecl{Token: tok, Name: name}

	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.errorf("unexpected EOF inside contract %s", name)
			return nil, false
		}

		switch p.curToken.Type {
		case lexer.STATE:
			state, ok := p.parseStateDecl()
			if !ok {
				return nil, false
			}
			contract.States = append(contract.States, state)
		case lexer.CONSTRUCTOR:
			ctor, ok := p.parseConstructor()
			if !ok {
				return nil, false
			}
			contract.Constructor = ctor
		case lexer.EVENT:
			event, ok := p.parseEventDecl()
			if !ok {
				return nil, false
			}
			contract.Events = append(contract.Events, event)
		case lexer.VIEW, lexer.PRIVATE, lexer.FUNCTION:
			fn, ok := p.parseFunctionDecl()
			if !ok {
				return nil, false
			}
			contract.Functions = append(contract.Functions, fn)
		default:
			p.errorf("unexpected token inside contract body: %s", p.curToken.Type)
			return nil, false
		}
	}

	if !p.expect(lexer.RBRACE) {
		return nil, false
	}

	return contract, true
}

func (p *Parser) parseStateDecl() (*ast.StateDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.STATE) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected state variable name, got %s", p.curToken.Type)
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
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return &ast.StateDecl{Token: tok, Name: name, Type: typ}, true
}

func (p *Parser) parseConstructor() (*ast.ConstructorDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.CONSTRUCTOR) {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}
	return &ast.ConstructorDecl{Token: tok, Params: params, Body: body}, true
}

func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, bool) {
	var isView, isPrivate bool
	for p.curTokenIs(lexer.VIEW) || p.curTokenIs(lexer.PRIVATE) {
		if p.curTokenIs(lexer.VIEW) {
			isView = true
		} else {
			isPrivate = true
		}
		p.nextToken()
	}

	tok := p.curToken
	if !p.expect(lexer.FUNCTION) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected function name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}

	var returnType *ast.TypeNode
	if p.curTokenIs(lexer.RETURNS) {
		p.nextToken()
		returnType, ok = p.parseType()
		if !ok {
			return nil, false
		}
	}

	body, ok := p.parseBlockStatement()
	if !ok {
		return nil, false
	}

	return &ast.FunctionDecl{
		Token: tok, Name: name, Params: params, ReturnType: returnType,
		IsView: isView, IsPrivate: isPrivate, Body: body,
	}, true
}

func (p *Parser) parseEventDecl() (*ast.EventDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.EVENT) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected event name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil, false
	}
	return &ast.EventDecl{Token: tok, Name: name, Params: params}, true
}

func (p *Parser) parseInterface() (*ast.InterfaceDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.INTERFACE) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected interface name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.expect(lexer.LBRACE) {
		return nil, false
	}

	iface := &ast.InterfaceDecl{Token: tok, Name: name}

	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.errorf("unexpected EOF inside interface %s", name)
			return nil, false
		}

		var isView bool
		for p.curTokenIs(lexer.VIEW) {
			isView = true
			p.nextToken()
		}

		sigTok := p.curToken
		if !p.expect(lexer.FUNCTION) {
			return nil, false
		}
		if !p.curTokenIs(lexer.IDENT) {
			p.errorf("expected function name, got %s", p.curToken.Type)
			return nil, false
		}
		fnName := p.curToken.Literal
		p.nextToken()

		params, ok := p.parseParamList()
		if !ok {
			return nil, false
		}

		var returnType *ast.TypeNode
		if p.curTokenIs(lexer.RETURNS) {
			p.nextToken()
			returnType, ok = p.parseType()
			if !ok {
				return nil, false
			}
		}

		if !p.expect(lexer.SEMICOLON) {
			return nil, false
		}

		iface.Functions = append(iface.Functions, &ast.FunctionSignature{
			Token: sigTok, Name: fnName, Params: params, ReturnType: returnType, IsView: isView,
		})
	}

	if !p.expect(lexer.RBRACE) {
		return nil, false
	}

	return iface, true
}

func (p *Parser) parseStruct() (*ast.StructDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.STRUCT) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected struct name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.expect(lexer.LBRACE) {
		return nil, false
	}

	var fields []*ast.Param
	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.errorf("unexpected EOF inside struct %s", name)
			return nil, false
		}
		if !p.curTokenIs(lexer.IDENT) {
			p.errorf("expected field name, got %s", p.curToken.Type)
			return nil, false
		}
		fieldName := p.curToken.Literal
		p.nextToken()
		if !p.expect(lexer.COLON) {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fields = append(fields, &ast.Param{Name: fieldName, Type: typ})
		if !p.expect(lexer.SEMICOLON) {
			return nil, false
		}
	}

	if !p.expect(lexer.RBRACE) {
		return nil, false
	}

	return &ast.StructDecl{Token: tok, Name: name, Fields: fields}, true
}

func (p *Parser) parseEnum() (*ast.EnumDecl, bool) {
	tok := p.curToken
	if !p.expect(lexer.ENUM) {
		return nil, false
	}
	if !p.curTokenIs(lexer.IDENT) {
		p.errorf("expected enum name, got %s", p.curToken.Type)
		return nil, false
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.expect(lexer.LBRACE) {
		return nil, false
	}

	var values []string
	for !p.curTokenIs(lexer.RBRACE) {
		if !p.curTokenIs(lexer.IDENT) {
			p.errorf("expected enum value name, got %s", p.curToken.Type)
			return nil, false
		}
		values = append(values, p.curToken.Literal)
		p.nextToken()
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(lexer.RBRACE) {
		return nil, false
	}

	return &ast.EnumDecl{Token: tok, Name: name, Values: values}, true
}
