package vm

import (
	"fmt"

	"github.com/grishinium/grishex/internal/bytecode"
	grisherrors "github.com/grishinium/grishex/internal/errors"
)

// run executes one function's instruction stream against frame, returning
// whatever RETURN produces, or the stack top (or nil) if the stream ends
// without an explicit RETURN.
//
// The program counter is linear: every instruction increments the
// instructions-executed and gas counters by one and then advances i by
// one, except JUMP and JUMP_IF_FALSE, which add their offset to i and
// skip the trailing increment entirely — a relative displacement from
// the jump instruction itself.
func (vm *VM) run(frame *Frame, code []bytecode.Instruction) (Value, error) {
	i := 0
	for i < len(code) {
		inst := code[i]
		vm.stats.InstructionsExecuted++
		vm.stats.GasUsed++

		switch inst.Op {
		case bytecode.PUSH:
			frame.push(FromGoValue(inst.Value))

		case bytecode.POP:
			if _, ok := frame.pop(); !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on POP")
			}

		case bytecode.DUP:
			top, ok := frame.top()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on DUP")
			}
			frame.push(top)

		case bytecode.LOAD_LOCAL:
			v, ok := frame.locals[inst.Index]
			if !ok {
				return Nil(), grisherrors.NewVMError(fmt.Sprintf("Local variable at index %d not found", inst.Index))
			}
			frame.push(v)

		case bytecode.STORE_LOCAL:
			v, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on STORE_LOCAL")
			}
			frame.locals[inst.Index] = v

		case bytecode.LOAD_STATE:
			frame.push(vm.loadState(frame.ContractAddress, inst.Offset))

		case bytecode.STORE_STATE:
			v, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on STORE_STATE")
			}
			vm.storeState(frame.ContractAddress, inst.Offset, v)

		case bytecode.LOAD_MEMBER:
			obj, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on LOAD_MEMBER")
			}
			v, err := vm.loadMember(frame, obj, inst.Member)
			if err != nil {
				return Nil(), err
			}
			frame.push(v)

		case bytecode.STORE_MEMBER:
			obj, ok1 := frame.pop()
			value, ok2 := frame.pop()
			if !ok1 || !ok2 {
				return Nil(), grisherrors.NewVMError("stack underflow on STORE_MEMBER")
			}
			if obj.Kind != KindMap {
				return Nil(), grisherrors.NewVMError(fmt.Sprintf("Cannot store member %s in non-object value", inst.Member))
			}
			obj.Data.(map[string]Value)[inst.Member] = value

		case bytecode.LOAD_INDEX:
			index, ok1 := frame.pop()
			obj, ok2 := frame.pop()
			if !ok1 || !ok2 {
				return Nil(), grisherrors.NewVMError("stack underflow on LOAD_INDEX")
			}
			v, err := loadIndex(obj, index)
			if err != nil {
				return Nil(), err
			}
			frame.push(v)

		case bytecode.STORE_INDEX:
			index, ok1 := frame.pop()
			obj, ok2 := frame.pop()
			value, ok3 := frame.pop()
			if !ok1 || !ok2 || !ok3 {
				return Nil(), grisherrors.NewVMError("stack underflow on STORE_INDEX")
			}
			if err := storeIndex(obj, index, value); err != nil {
				return Nil(), err
			}

		case bytecode.CALL:
			result, err := vm.call(frame, inst.Function, inst.ArgsCount)
			if err != nil {
				return Nil(), err
			}
			frame.push(result)

		case bytecode.RETURN:
			if inst.ReturnsValue {
				if v, ok := frame.pop(); ok {
					return v, nil
				}
				return Nil(), nil
			}
			if inst.Value == nil {
				return Nil(), nil
			}
			return FromGoValue(inst.Value), nil

		case bytecode.JUMP:
			i += inst.Offset
			continue

		case bytecode.JUMP_IF_FALSE:
			cond, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on JUMP_IF_FALSE")
			}
			if !cond.Truthy() {
				i += inst.Offset
				continue
			}

		case bytecode.REQUIRE:
			cond, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on REQUIRE")
			}
			if !cond.Truthy() {
				message := inst.Message
				if message == "" {
					message = "Requirement failed"
				}
				return Nil(), grisherrors.NewVMError(message)
			}

		case bytecode.EMIT:
			args, err := popArgs(frame, inst.ArgsCount)
			if err != nil {
				return Nil(), err
			}
			data := make([]interface{}, len(args))
			for i, a := range args {
				data[i] = a.GoValue()
			}
			vm.logs = append(vm.logs, LogEntry{
				Contract: frame.ContractName,
				Address:  frame.ContractAddress,
				Event:    inst.Event,
				Topics:   []string{},
				Data:     data,
			})

		case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV, bytecode.MOD:
			if err := vm.binaryArith(frame, inst.Op); err != nil {
				return Nil(), err
			}

		case bytecode.EQ, bytecode.NEQ:
			b, ok1 := frame.pop()
			a, ok2 := frame.pop()
			if !ok1 || !ok2 {
				return Nil(), grisherrors.NewVMError("stack underflow on comparison")
			}
			eq := a.Equal(b)
			if inst.Op == bytecode.NEQ {
				eq = !eq
			}
			frame.push(Bool(eq))

		case bytecode.LT, bytecode.GT, bytecode.LTE, bytecode.GTE:
			if err := vm.comparison(frame, inst.Op); err != nil {
				return Nil(), err
			}

		case bytecode.AND, bytecode.OR:
			b, ok1 := frame.pop()
			a, ok2 := frame.pop()
			if !ok1 || !ok2 {
				return Nil(), grisherrors.NewVMError("stack underflow on logical operator")
			}
			if inst.Op == bytecode.AND {
				frame.push(Bool(a.Truthy() && b.Truthy()))
			} else {
				frame.push(Bool(a.Truthy() || b.Truthy()))
			}

		case bytecode.NEG:
			a, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on NEG")
			}
			v, err := negate(a)
			if err != nil {
				return Nil(), err
			}
			frame.push(v)

		case bytecode.NOT:
			a, ok := frame.pop()
			if !ok {
				return Nil(), grisherrors.NewVMError("stack underflow on NOT")
			}
			frame.push(Bool(!a.Truthy()))

		default:
			return Nil(), grisherrors.NewVMError(fmt.Sprintf("Unknown opcode: %s", inst.Op))
		}

		i++
	}

	if top, ok := frame.top(); ok {
		return top, nil
	}
	return Nil(), nil
}

func (vm *VM) loadState(address string, offset int) Value {
	vm.stats.StorageReads++
	storage := vm.storage[address]
	if v, ok := storage[offset]; ok {
		return v
	}
	return Nil()
}

func (vm *VM) storeState(address string, offset int, v Value) {
	vm.stats.StorageWrites++
	storage := vm.storage[address]
	if storage == nil {
		storage = make(map[int]Value)
		vm.storage[address] = storage
	}
	storage[offset] = v
}

// loadMember implements LOAD_MEMBER: a map reads by key (nil if absent);
// the "self" sentinel reads a state variable, by name, from the current
// frame's own contract storage via contract metadata.
func (vm *VM) loadMember(frame *Frame, obj Value, member string) (Value, error) {
	if obj.Kind == KindMap {
		if v, ok := obj.Data.(map[string]Value)[member]; ok {
			return v, nil
		}
		return Nil(), nil
	}
	if obj.IsSelf() {
		spec := vm.contracts[frame.ContractName]
		sv, ok := spec.StateVariables[member]
		if !ok {
			return Nil(), grisherrors.NewVMError(fmt.Sprintf("State variable %s not found", member))
		}
		return vm.loadState(frame.ContractAddress, sv.Offset), nil
	}
	return Nil(), grisherrors.NewVMError(fmt.Sprintf("Cannot load member %s from non-object value", member))
}

func loadIndex(obj, index Value) (Value, error) {
	switch obj.Kind {
	case KindList:
		items := obj.Data.([]Value)
		idx, ok := indexAsInt(index)
		if !ok || idx < 0 || idx >= len(items) {
			return Nil(), grisherrors.NewVMError(fmt.Sprintf("Cannot load index %v from object", index.GoValue()))
		}
		return items[idx], nil
	case KindMap:
		key := fmt.Sprint(index.GoValue())
		if v, ok := obj.Data.(map[string]Value)[key]; ok {
			return v, nil
		}
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Cannot load index %v from object", index.GoValue()))
	default:
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Cannot load index %v from object", index.GoValue()))
	}
}

// storeIndex is not in spec.md's opcode table (the bytecode format's
// distillation dropped it), but the compiler's assignment lowering emits
// it and the reference compiler (original_source/compiler.py) does too —
// its VM counterpart simply never implemented a handler. Implemented
// here rather than left to fail, since nothing marks this an intended
// gap.
func storeIndex(obj, index, value Value) error {
	switch obj.Kind {
	case KindList:
		items := obj.Data.([]Value)
		idx, ok := indexAsInt(index)
		if !ok || idx < 0 || idx >= len(items) {
			return grisherrors.NewVMError(fmt.Sprintf("index %v out of range", index.GoValue()))
		}
		items[idx] = value
		return nil
	case KindMap:
		obj.Data.(map[string]Value)[fmt.Sprint(index.GoValue())] = value
		return nil
	default:
		return grisherrors.NewVMError("cannot store by index in non-object value")
	}
}

func indexAsInt(v Value) (int, bool) {
	switch v.Kind {
	case KindInt:
		return int(v.Data.(int64)), true
	case KindUint:
		return int(v.Data.(uint64)), true
	default:
		return 0, false
	}
}

func popArgs(frame *Frame, count int) ([]Value, error) {
	args := make([]Value, count)
	for i := count - 1; i >= 0; i-- {
		v, ok := frame.pop()
		if !ok {
			return nil, grisherrors.NewVMError("stack underflow reading call arguments")
		}
		args[i] = v
	}
	return args, nil
}

// call implements CALL: the print and length builtins, or a sibling
// function on the same contract instance.
func (vm *VM) call(frame *Frame, function string, argsCount int) (Value, error) {
	args, err := popArgs(frame, argsCount)
	if err != nil {
		return Nil(), err
	}

	if result, handled, err := vm.callBuiltin(function, args); handled {
		return result, err
	}

	spec, ok := vm.contracts[frame.ContractName]
	if !ok {
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Contract %s not found", frame.ContractName))
	}
	if _, ok := spec.Functions[function]; !ok {
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Function %s not found", function))
	}

	return vm.ExecuteFunction(frame.ContractName, function, args, frame.ContractAddress)
}

func (vm *VM) binaryArith(frame *Frame, op bytecode.OpCode) error {
	b, ok1 := frame.pop()
	a, ok2 := frame.pop()
	if !ok1 || !ok2 {
		return grisherrors.NewVMError("stack underflow on arithmetic operator")
	}
	symbol := map[bytecode.OpCode]string{
		bytecode.ADD: "+", bytecode.SUB: "-", bytecode.MUL: "*", bytecode.DIV: "/", bytecode.MOD: "%",
	}[op]
	result, err := numericOp(symbol, a, b)
	if err != nil {
		return err
	}
	frame.push(result)
	return nil
}

func (vm *VM) comparison(frame *Frame, op bytecode.OpCode) error {
	b, ok1 := frame.pop()
	a, ok2 := frame.pop()
	if !ok1 || !ok2 {
		return grisherrors.NewVMError("stack underflow on comparison")
	}
	symbol := map[bytecode.OpCode]string{
		bytecode.LT: "<", bytecode.GT: ">", bytecode.LTE: "<=", bytecode.GTE: ">=",
	}[op]
	result, err := compareOp(symbol, a, b)
	if err != nil {
		return err
	}
	frame.push(result)
	return nil
}
