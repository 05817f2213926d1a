package vm

import (
	"fmt"

	grisherrors "github.com/grishinium/grishex/internal/errors"
)

// numericOp applies an int/uint/float-dispatching binary operator. Mixed
// numeric kinds (e.g. int + float) promote to float, matching the
// source's untyped Python arithmetic; a non-numeric operand falls back
// to string concatenation for ADD (the source's `a + b` also covers str)
// and is otherwise a VM error.
func numericOp(op string, a, b Value) (Value, error) {
	if op == "+" && (a.Kind == KindString || b.Kind == KindString) {
		return String(fmt.Sprint(a.GoValue()) + fmt.Sprint(b.GoValue())), nil
	}
	if op == "+" && a.Kind == KindList && b.Kind == KindList {
		return List(append(append([]Value{}, a.Data.([]Value)...), b.Data.([]Value)...)), nil
	}

	if a.Kind == KindInt && b.Kind == KindInt {
		ai, bi := a.Data.(int64), b.Data.(int64)
		switch op {
		case "+":
			return Int(ai + bi), nil
		case "-":
			return Int(ai - bi), nil
		case "*":
			return Int(ai * bi), nil
		case "/":
			if bi == 0 {
				return Value{}, grisherrors.NewVMError("Division by zero")
			}
			return Int(ai / bi), nil
		case "%":
			if bi == 0 {
				return Value{}, grisherrors.NewVMError("Division by zero")
			}
			return Int(ai % bi), nil
		}
	}

	if a.Kind == KindUint && b.Kind == KindUint {
		au, bu := a.Data.(uint64), b.Data.(uint64)
		switch op {
		case "+":
			return Uint(au + bu), nil
		case "-":
			return Uint(au - bu), nil
		case "*":
			return Uint(au * bu), nil
		case "/":
			if bu == 0 {
				return Value{}, grisherrors.NewVMError("Division by zero")
			}
			return Uint(au / bu), nil
		case "%":
			if bu == 0 {
				return Value{}, grisherrors.NewVMError("Division by zero")
			}
			return Uint(au % bu), nil
		}
	}

	af, aok := a.asFloat()
	bf, bok := b.asFloat()
	if aok && bok {
		switch op {
		case "+":
			return Float(af + bf), nil
		case "-":
			return Float(af - bf), nil
		case "*":
			return Float(af * bf), nil
		case "/":
			if bf == 0 {
				return Value{}, grisherrors.NewVMError("Division by zero")
			}
			return Float(af / bf), nil
		case "%":
			if bf == 0 {
				return Value{}, grisherrors.NewVMError("Division by zero")
			}
			return Float(float64(int64(af) % int64(bf))), nil
		}
	}

	return Value{}, grisherrors.NewVMError(fmt.Sprintf("unsupported operand types for %s: %s and %s", op, a.Kind, b.Kind))
}

// compareOp applies an ordering comparison, numeric-promoting the same
// way numericOp does and falling back to lexicographic order for
// strings.
func compareOp(op string, a, b Value) (Value, error) {
	if af, aok := a.asFloat(); aok {
		if bf, bok := b.asFloat(); bok {
			return Bool(orderFloat(op, af, bf)), nil
		}
	}
	if (a.Kind == KindString || a.Kind == KindAddress || a.Kind == KindHash || a.Kind == KindBytes) &&
		a.Kind == b.Kind {
		return Bool(orderString(op, a.Data.(string), b.Data.(string))), nil
	}
	return Value{}, grisherrors.NewVMError(fmt.Sprintf("unsupported comparison %s between %s and %s", op, a.Kind, b.Kind))
}

func orderFloat(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	}
	return false
}

func orderString(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	}
	return false
}

func negate(v Value) (Value, error) {
	switch v.Kind {
	case KindInt:
		return Int(-v.Data.(int64)), nil
	case KindFloat:
		return Float(-v.Data.(float64)), nil
	case KindUint:
		return Value{}, grisherrors.NewVMError("cannot negate an unsigned value")
	default:
		return Value{}, grisherrors.NewVMError(fmt.Sprintf("cannot negate a %s value", v.Kind))
	}
}
