package vm

import (
	"fmt"

	grisherrors "github.com/grishinium/grishex/internal/errors"
)

// callBuiltin handles a CALL to one of the builtins; call consults it
// before the contract's own functions, so a builtin name takes precedence
// over a same-named contract function. print echoes its arguments to
// standard output and always yields nil; length backs the foreach
// lowering the compiler emits, since the opcode set has no dedicated
// iterator/LENGTH opcode.
func (vm *VM) callBuiltin(name string, args []Value) (Value, bool, error) {
	switch name {
	case "print":
		values := make([]interface{}, len(args))
		for i, a := range args {
			values[i] = a.GoValue()
		}
		fmt.Println(values...)
		return Nil(), true, nil
	case "length":
		if len(args) != 1 {
			return Value{}, true, grisherrors.NewVMError("length expects exactly 1 argument")
		}
		switch args[0].Kind {
		case KindList:
			return Int(int64(len(args[0].Data.([]Value)))), true, nil
		case KindMap:
			return Int(int64(len(args[0].Data.(map[string]Value)))), true, nil
		case KindString, KindBytes:
			return Int(int64(len(args[0].Data.(string)))), true, nil
		default:
			return Value{}, true, grisherrors.NewVMError(fmt.Sprintf("length: unsupported operand type %s", args[0].Kind))
		}
	default:
		return Value{}, false, nil
	}
}
