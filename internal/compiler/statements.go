package compiler

import (
	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/bytecode"
	"github.com/grishinium/grishex/internal/symbols"
)

func (c *Compiler) compileStatement(stmt ast.Statement) []bytecode.Instruction {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return c.compileBlock(s)
	case *ast.LetStatement:
		return c.compileLet(s)
	case *ast.AssignStatement:
		return c.compileAssign(s)
	case *ast.IfStatement:
		return c.compileIf(s)
	case *ast.WhileStatement:
		return c.compileWhile(s)
	case *ast.ForStatement:
		return c.compileFor(s)
	case *ast.ForeachStatement:
		return c.compileForeach(s)
	case *ast.ReturnStatement:
		return c.compileReturn(s)
	case *ast.RequireStatement:
		return c.compileRequire(s)
	case *ast.AssertStatement:
		return c.compileAssert(s)
	case *ast.RevertStatement:
		return c.compileRevert(s)
	case *ast.EmitStatement:
		return c.compileEmit(s)
	case *ast.TryStatement:
		return c.compileTry(s)
	case *ast.ExpressionStatement:
		return c.compileExpressionStatement(s)
	default:
		c.errorf(stmt, "unknown statement type: %T", stmt)
		return nil
	}
}

func (c *Compiler) compileBlock(block *ast.BlockStatement) []bytecode.Instruction {
	outer := c.current
	c.current = symbols.NewEnclosed(outer)

	var code []bytecode.Instruction
	for _, stmt := range block.Statements {
		code = append(code, c.compileStatement(stmt)...)
	}

	c.current = outer
	return code
}

func (c *Compiler) compileLet(stmt *ast.LetStatement) []bytecode.Instruction {
	if _, exists := c.current.ResolveLocal(stmt.Name); exists {
		c.errorf(stmt, "variable %s already defined", stmt.Name)
		return nil
	}

	var typeName string
	if stmt.Type != nil {
		if !c.isValidType(stmt.Type) {
			c.errorf(stmt.Type, "unknown type %s", stmt.Type.String())
			return nil
		}
		typeName = stmt.Type.String()
	}

	var code []bytecode.Instruction
	switch {
	case stmt.Value != nil:
		code = c.compileExpression(stmt.Value)
	case stmt.Type != nil:
		code = []bytecode.Instruction{{Op: bytecode.PUSH, Value: c.defaultValueForType(stmt.Type)}}
	default:
		c.errorf(stmt, "let %s needs a type or an initializer", stmt.Name)
		return nil
	}

	index := c.localCount
	c.current.Define(&symbols.Symbol{Name: stmt.Name, Kind: symbols.KindLocal, Type: typeName, Index: index})
	c.localCount++

	return append(code, bytecode.Instruction{Op: bytecode.STORE_LOCAL, Index: index})
}

func (c *Compiler) compileAssign(stmt *ast.AssignStatement) []bytecode.Instruction {
	code := c.compileExpression(stmt.Value)

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		sym, ok := c.current.Resolve(target.Value)
		if !ok {
			c.errorf(target, "undefined identifier: %s", target.Value)
			return code
		}
		switch sym.Kind {
		case symbols.KindLocal, symbols.KindParameter:
			code = append(code, bytecode.Instruction{Op: bytecode.STORE_LOCAL, Index: sym.Index})
		case symbols.KindStateVariable:
			code = append(code, bytecode.Instruction{Op: bytecode.STORE_STATE, Offset: sym.Offset})
		default:
			c.errorf(target, "cannot assign to %s", target.Value)
		}

	case *ast.MemberExpr:
		if _, isSelf := target.Object.(*ast.SelfExpr); isSelf {
			// self.x = ... writes a state variable, not a dict member:
			// STORE_MEMBER is dict-only (unlike LOAD_MEMBER, which special-
			// cases "self"), so this must resolve straight to STORE_STATE.
			// The lookup skips a parameter or local that shadows the state
			// variable's name, as in `self.name = name`.
			var sym *symbols.Symbol
			for scope := c.current; scope != nil && sym == nil; scope = scope.Parent() {
				if s, ok := scope.ResolveLocal(target.Member); ok && s.Kind == symbols.KindStateVariable {
					sym = s
				}
			}
			if sym == nil {
				c.errorf(target, "undefined state variable: %s", target.Member)
				return code
			}
			return append(code, bytecode.Instruction{Op: bytecode.STORE_STATE, Offset: sym.Offset})
		}

		// The value is duplicated before the object so the assignment
		// itself is an expression with the stored value left on the stack.
		code = append(code, bytecode.Instruction{Op: bytecode.DUP})
		code = append(code, c.compileExpression(target.Object)...)
		code = append(code, bytecode.Instruction{Op: bytecode.STORE_MEMBER, Member: target.Member})

	case *ast.IndexExpr:
		code = append(code, bytecode.Instruction{Op: bytecode.DUP})
		code = append(code, c.compileExpression(target.Object)...)
		code = append(code, c.compileExpression(target.Index)...)
		code = append(code, bytecode.Instruction{Op: bytecode.STORE_INDEX})

	default:
		c.errorf(stmt.Target, "invalid assignment target")
	}

	return code
}

func (c *Compiler) compileExpressionStatement(stmt *ast.ExpressionStatement) []bytecode.Instruction {
	if stmt.Expression == nil {
		return nil
	}
	return append(c.compileExpression(stmt.Expression), bytecode.Instruction{Op: bytecode.POP})
}

func (c *Compiler) compileReturn(stmt *ast.ReturnStatement) []bytecode.Instruction {
	if stmt.Value == nil {
		return []bytecode.Instruction{{Op: bytecode.RETURN}}
	}
	return append(c.compileExpression(stmt.Value), bytecode.Instruction{Op: bytecode.RETURN, ReturnsValue: true})
}

// stringLiteralValue extracts the literal text of a require/assert/revert
// message, which the grammar restricts to a plain string literal.
func (c *Compiler) stringLiteralValue(node ast.Node, expr ast.Expression, fallback string) string {
	if expr == nil {
		return fallback
	}
	lit, ok := expr.(*ast.StringLiteral)
	if !ok {
		c.errorf(node, "message must be a string literal")
		return fallback
	}
	return lit.Value
}

func (c *Compiler) compileRequire(stmt *ast.RequireStatement) []bytecode.Instruction {
	code := c.compileExpression(stmt.Condition)
	message := c.stringLiteralValue(stmt, stmt.Message, "Requirement failed")
	return append(code, bytecode.Instruction{Op: bytecode.REQUIRE, Message: message})
}

// compileAssert reuses REQUIRE: an assertion and a require differ only in
// their default message, not in VM-observable behavior.
func (c *Compiler) compileAssert(stmt *ast.AssertStatement) []bytecode.Instruction {
	code := c.compileExpression(stmt.Condition)
	message := c.stringLiteralValue(stmt, stmt.Message, "Assertion failed")
	return append(code, bytecode.Instruction{Op: bytecode.REQUIRE, Message: message})
}

// compileRevert is an unconditional failure: PUSH false followed by
// REQUIRE always fails, reusing REQUIRE rather than a dedicated opcode.
func (c *Compiler) compileRevert(stmt *ast.RevertStatement) []bytecode.Instruction {
	message := c.stringLiteralValue(stmt, stmt.Message, "Reverted")
	return []bytecode.Instruction{
		{Op: bytecode.PUSH, Value: false},
		{Op: bytecode.REQUIRE, Message: message},
	}
}

func (c *Compiler) compileEmit(stmt *ast.EmitStatement) []bytecode.Instruction {
	sym, ok := c.current.Resolve(stmt.Event)
	if !ok || sym.Kind != symbols.KindEvent {
		c.errorf(stmt, "undefined event: %s", stmt.Event)
		return nil
	}
	if len(stmt.Args) != len(sym.Params) {
		c.errorf(stmt, "event %s expects %d arguments, got %d", stmt.Event, len(sym.Params), len(stmt.Args))
		return nil
	}

	var code []bytecode.Instruction
	for _, arg := range stmt.Args {
		code = append(code, c.compileExpression(arg)...)
	}
	return append(code, bytecode.Instruction{Op: bytecode.EMIT, Event: stmt.Event, ArgsCount: len(stmt.Args)})
}

// compileIf follows the construct's literal codegen rule: the
// JUMP_IF_FALSE offset is always len(consequence)+1, in both the
// with-else and without-else form. With an else clause this lands the
// false branch on the trailing JUMP rather than past it — reproducing
// the reference compiler's jump arithmetic exactly rather than the
// distinct (and bug-free) offset a from-scratch design would choose.
func (c *Compiler) compileIf(stmt *ast.IfStatement) []bytecode.Instruction {
	code := c.compileExpression(stmt.Condition)

	jumpIfFalseIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP_IF_FALSE})

	consequence := c.compileStatement(stmt.Consequence)
	code = append(code, consequence...)

	if stmt.Alternative == nil {
		code[jumpIfFalseIdx].Offset = len(consequence) + 1
		return code
	}

	jumpIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP})
	code[jumpIfFalseIdx].Offset = len(consequence) + 1

	alternative := c.compileStatement(stmt.Alternative)
	code = append(code, alternative...)
	code[jumpIdx].Offset = len(alternative) + 1

	return code
}

// compileWhile and compileFor are not named in the construct table — the
// shipped compiler never reached them. They reuse the same JUMP/
// JUMP_IF_FALSE primitives but size their forward jump to clear the
// trailing backward JUMP, so a false condition exits the loop rather
// than bouncing through it.
func (c *Compiler) compileWhile(stmt *ast.WhileStatement) []bytecode.Instruction {
	condCode := c.compileExpression(stmt.Condition)
	bodyCode := c.compileStatement(stmt.Body)

	code := append([]bytecode.Instruction{}, condCode...)

	jumpIfFalseIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP_IF_FALSE})
	code = append(code, bodyCode...)

	jumpBackIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP, Offset: -jumpBackIdx})

	code[jumpIfFalseIdx].Offset = len(bodyCode) + 2
	return code
}

func (c *Compiler) compileFor(stmt *ast.ForStatement) []bytecode.Instruction {
	var code []bytecode.Instruction
	if stmt.Init != nil {
		code = append(code, c.compileStatement(stmt.Init)...)
	}

	var condCode []bytecode.Instruction
	if stmt.Condition != nil {
		condCode = c.compileExpression(stmt.Condition)
	} else {
		condCode = []bytecode.Instruction{{Op: bytecode.PUSH, Value: true}}
	}

	bodyCode := c.compileStatement(stmt.Body)

	var postCode []bytecode.Instruction
	if stmt.Post != nil {
		postCode = c.compileStatement(stmt.Post)
	}

	loopStart := len(code)
	code = append(code, condCode...)

	jumpIfFalseIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP_IF_FALSE})
	code = append(code, bodyCode...)
	code = append(code, postCode...)

	jumpBackIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP, Offset: loopStart - jumpBackIdx})

	code[jumpIfFalseIdx].Offset = len(bodyCode) + len(postCode) + 2
	return code
}

// compileForeach lowers `foreach (item in collection) body` to a counted
// loop over three hidden locals (the materialized collection, an index
// counter, and the loop variable), using LOAD_INDEX to read each element
// and a "length" builtin call to find the bound — the instruction set has
// no dedicated iterator or LENGTH opcode.
func (c *Compiler) compileForeach(stmt *ast.ForeachStatement) []bytecode.Instruction {
	collectionCode := c.compileExpression(stmt.Collection)

	outer := c.current
	c.current = symbols.NewEnclosed(outer)

	collectionIdx := c.localCount
	c.current.Define(&symbols.Symbol{Name: " collection", Kind: symbols.KindLocal, Index: collectionIdx})
	c.localCount++

	counterIdx := c.localCount
	c.current.Define(&symbols.Symbol{Name: " index", Kind: symbols.KindLocal, Index: counterIdx})
	c.localCount++

	itemIdx := c.localCount
	c.current.Define(&symbols.Symbol{Name: stmt.Var, Kind: symbols.KindLocal, Index: itemIdx})
	c.localCount++

	bodyCode := c.compileStatement(stmt.Body)
	c.current = outer

	code := append([]bytecode.Instruction{}, collectionCode...)
	code = append(code,
		bytecode.Instruction{Op: bytecode.STORE_LOCAL, Index: collectionIdx},
		bytecode.Instruction{Op: bytecode.PUSH, Value: int64(0)},
		bytecode.Instruction{Op: bytecode.STORE_LOCAL, Index: counterIdx},
	)

	loopStart := len(code)
	code = append(code,
		bytecode.Instruction{Op: bytecode.LOAD_LOCAL, Index: counterIdx},
		bytecode.Instruction{Op: bytecode.LOAD_LOCAL, Index: collectionIdx},
		bytecode.Instruction{Op: bytecode.CALL, Function: "length", ArgsCount: 1},
		bytecode.Instruction{Op: bytecode.LT},
	)

	jumpIfFalseIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP_IF_FALSE})

	code = append(code,
		bytecode.Instruction{Op: bytecode.LOAD_LOCAL, Index: collectionIdx},
		bytecode.Instruction{Op: bytecode.LOAD_LOCAL, Index: counterIdx},
		bytecode.Instruction{Op: bytecode.LOAD_INDEX},
		bytecode.Instruction{Op: bytecode.STORE_LOCAL, Index: itemIdx},
	)
	code = append(code, bodyCode...)
	code = append(code,
		bytecode.Instruction{Op: bytecode.LOAD_LOCAL, Index: counterIdx},
		bytecode.Instruction{Op: bytecode.PUSH, Value: int64(1)},
		bytecode.Instruction{Op: bytecode.ADD},
		bytecode.Instruction{Op: bytecode.STORE_LOCAL, Index: counterIdx},
	)

	jumpBackIdx := len(code)
	code = append(code, bytecode.Instruction{Op: bytecode.JUMP, Offset: loopStart - jumpBackIdx})

	code[jumpIfFalseIdx].Offset = len(code) - jumpIfFalseIdx
	return code
}

// compileTry compiles the try block's code; the catch block is compiled
// for symbol and type checking but contributes no instructions, since
// the instruction set has no exception-unwind-to-handler opcode and a VM
// error always terminates the invocation outright.
func (c *Compiler) compileTry(stmt *ast.TryStatement) []bytecode.Instruction {
	code := c.compileStatement(stmt.TryBlock)

	outer := c.current
	c.current = symbols.NewEnclosed(outer)
	if stmt.CatchParam != "" {
		c.current.Define(&symbols.Symbol{Name: stmt.CatchParam, Kind: symbols.KindLocal, Type: "string", Index: c.localCount})
		c.localCount++
	}
	c.compileStatement(stmt.CatchBlock)
	c.current = outer

	return code
}
