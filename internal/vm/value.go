// Package vm executes bytecode artifacts produced by internal/compiler:
// it loads contracts, deploys instances, runs their functions, and
// records storage, event logs, and execution statistics.
package vm

import "fmt"

// ValueKind is the type tag for a Value.
type ValueKind byte

const (
	KindNil ValueKind = iota
	KindInt
	KindUint
	KindBool
	KindFloat
	KindString
	KindBytes
	KindAddress
	KindHash
	KindList
	KindMap
	KindSelf
)

var kindNames = [...]string{
	KindNil:     "nil",
	KindInt:     "int",
	KindUint:    "uint",
	KindBool:    "bool",
	KindFloat:   "float",
	KindString:  "string",
	KindBytes:   "bytes",
	KindAddress: "address",
	KindHash:    "hash",
	KindList:    "list",
	KindMap:     "map",
	KindSelf:    "self",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a tagged runtime value. Exactly one of the Data field's dynamic
// types is meaningful for a given Kind; the constructors below are the only
// sanctioned way to build one.
type Value struct {
	Data interface{}
	Kind ValueKind
}

func Nil() Value                { return Value{Kind: KindNil} }
func Int(i int64) Value         { return Value{Kind: KindInt, Data: i} }
func Uint(u uint64) Value       { return Value{Kind: KindUint, Data: u} }
func Bool(b bool) Value         { return Value{Kind: KindBool, Data: b} }
func Float(f float64) Value     { return Value{Kind: KindFloat, Data: f} }
func String(s string) Value     { return Value{Kind: KindString, Data: s} }
func Bytes(b string) Value      { return Value{Kind: KindBytes, Data: b} }
func Address(a string) Value    { return Value{Kind: KindAddress, Data: a} }
func Hash(h string) Value       { return Value{Kind: KindHash, Data: h} }
func List(items []Value) Value  { return Value{Kind: KindList, Data: items} }
func Map(m map[string]Value) Value { return Value{Kind: KindMap, Data: m} }

// Self is the opaque sentinel pushed by `PUSH "self"` in compiled
// contract code; LOAD_MEMBER special-cases it to mean "read this state
// variable from the currently executing contract's own storage".
func Self() Value { return Value{Kind: KindSelf} }

func (v Value) IsNil() bool  { return v.Kind == KindNil }
func (v Value) IsSelf() bool { return v.Kind == KindSelf }

// Truthy mirrors the source's duck-typed falsiness: nil and false are
// falsy, zero numbers are falsy, empty strings/lists/maps are falsy,
// everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Data.(bool)
	case KindInt:
		return v.Data.(int64) != 0
	case KindUint:
		return v.Data.(uint64) != 0
	case KindFloat:
		return v.Data.(float64) != 0
	case KindString, KindBytes, KindAddress, KindHash:
		return v.Data.(string) != ""
	case KindList:
		return len(v.Data.([]Value)) != 0
	case KindMap:
		return len(v.Data.(map[string]Value)) != 0
	default:
		return true
	}
}

// Equal implements the VM's EQ/NEQ opcodes: same kind and same underlying
// data, with the numeric kinds cross-comparing by value so `1 == 1u`
// behaves the way a dynamically typed source language would.
func (v Value) Equal(other Value) bool {
	if af, ok := v.asFloat(); ok {
		if bf, ok := other.asFloat(); ok {
			return af == bf
		}
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil, KindSelf:
		return true
	case KindList:
		a, b := v.Data.([]Value), other.Data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	default:
		return v.Data == other.Data
	}
}

func (v Value) asFloat() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Data.(int64)), true
	case KindUint:
		return float64(v.Data.(uint64)), true
	case KindFloat:
		return v.Data.(float64), true
	default:
		return 0, false
	}
}

// GoValue unwraps a Value to the plain Go value the embedding API and
// logs/storage accessors hand back to callers (PUSH's literal operand and
// STORE_*'s stored form are likewise plain Go values, not Values).
func (v Value) GoValue() interface{} {
	switch v.Kind {
	case KindList:
		items := v.Data.([]Value)
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = item.GoValue()
		}
		return out
	case KindMap:
		m := v.Data.(map[string]Value)
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[k] = val.GoValue()
		}
		return out
	case KindSelf:
		return "self"
	default:
		return v.Data
	}
}

// FromGoValue lifts a plain Go value (as produced by PUSH's embedded
// literal, an embedding caller's argument, or a JSON-decoded artifact
// constant) into a tagged Value.
func FromGoValue(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Nil()
	case Value:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint64:
		return Uint(x)
	case float64:
		return Float(x)
	case string:
		if x == "self" {
			return Self()
		}
		return String(x)
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromGoValue(item)
		}
		return List(items)
	case []Value:
		return List(x)
	case map[string]interface{}:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			m[k] = FromGoValue(item)
		}
		return Map(m)
	default:
		return Value{Kind: KindNil, Data: fmt.Sprintf("%v", x)}
	}
}
