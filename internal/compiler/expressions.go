package compiler

import (
	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/bytecode"
	"github.com/grishinium/grishex/internal/symbols"
)

var binaryOps = map[string]bytecode.OpCode{
	"+": bytecode.ADD, "-": bytecode.SUB, "*": bytecode.MUL, "/": bytecode.DIV, "%": bytecode.MOD,
	"==": bytecode.EQ, "!=": bytecode.NEQ, "<": bytecode.LT, ">": bytecode.GT,
	"<=": bytecode.LTE, ">=": bytecode.GTE, "&&": bytecode.AND, "||": bytecode.OR,
}

func (c *Compiler) compileExpression(expr ast.Expression) []bytecode.Instruction {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return []bytecode.Instruction{{Op: bytecode.PUSH, Value: e.Value}}
	case *ast.FloatLiteral:
		return []bytecode.Instruction{{Op: bytecode.PUSH, Value: e.Value}}
	case *ast.StringLiteral:
		return []bytecode.Instruction{{Op: bytecode.PUSH, Value: e.Value}}
	case *ast.BoolLiteral:
		return []bytecode.Instruction{{Op: bytecode.PUSH, Value: e.Value}}
	case *ast.SelfExpr:
		return []bytecode.Instruction{{Op: bytecode.PUSH, Value: "self"}}
	case *ast.Identifier:
		return c.compileIdentifier(e)
	case *ast.MemberExpr:
		code := c.compileExpression(e.Object)
		return append(code, bytecode.Instruction{Op: bytecode.LOAD_MEMBER, Member: e.Member})
	case *ast.IndexExpr:
		code := c.compileExpression(e.Object)
		code = append(code, c.compileExpression(e.Index)...)
		return append(code, bytecode.Instruction{Op: bytecode.LOAD_INDEX})
	case *ast.CallExpr:
		return c.compileCall(e)
	case *ast.BinaryExpr:
		return c.compileBinary(e)
	case *ast.UnaryExpr:
		return c.compileUnary(e)
	default:
		c.errorf(expr, "unknown expression type: %T", expr)
		return nil
	}
}

func (c *Compiler) compileIdentifier(id *ast.Identifier) []bytecode.Instruction {
	sym, ok := c.current.Resolve(id.Value)
	if !ok {
		c.errorf(id, "undefined identifier: %s", id.Value)
		return nil
	}

	switch sym.Kind {
	case symbols.KindLocal, symbols.KindParameter:
		return []bytecode.Instruction{{Op: bytecode.LOAD_LOCAL, Index: sym.Index}}
	case symbols.KindStateVariable:
		return []bytecode.Instruction{{Op: bytecode.LOAD_STATE, Offset: sym.Offset}}
	case symbols.KindEnumValue:
		return []bytecode.Instruction{{Op: bytecode.PUSH, Value: sym.Value}}
	default:
		c.errorf(id, "cannot use %s as an expression", id.Value)
		return nil
	}
}

func (c *Compiler) compileCall(call *ast.CallExpr) []bytecode.Instruction {
	var code []bytecode.Instruction
	for _, arg := range call.Args {
		code = append(code, c.compileExpression(arg)...)
	}
	return append(code, bytecode.Instruction{Op: bytecode.CALL, Function: call.Function, ArgsCount: len(call.Args)})
}

func (c *Compiler) compileBinary(expr *ast.BinaryExpr) []bytecode.Instruction {
	code := c.compileExpression(expr.Left)
	code = append(code, c.compileExpression(expr.Right)...)

	op, ok := binaryOps[expr.Operator]
	if !ok {
		c.errorf(expr, "unknown binary operator: %s", expr.Operator)
		return code
	}
	return append(code, bytecode.Instruction{Op: op})
}

func (c *Compiler) compileUnary(expr *ast.UnaryExpr) []bytecode.Instruction {
	code := c.compileExpression(expr.Operand)
	switch expr.Operator {
	case "-":
		return append(code, bytecode.Instruction{Op: bytecode.NEG})
	case "!":
		return append(code, bytecode.Instruction{Op: bytecode.NOT})
	default:
		c.errorf(expr, "unknown unary operator: %s", expr.Operator)
		return code
	}
}
