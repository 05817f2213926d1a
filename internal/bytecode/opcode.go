// Package bytecode defines the instruction set and the serialized
// artifact format produced by the compiler and consumed by the VM.
package bytecode

import (
	"encoding/json"
	"fmt"
)

// OpCode identifies the operation an Instruction performs.
type OpCode int

const (
	PUSH OpCode = iota
	POP
	DUP
	LOAD_LOCAL
	STORE_LOCAL
	LOAD_STATE
	STORE_STATE
	LOAD_MEMBER
	STORE_MEMBER
	LOAD_INDEX
	STORE_INDEX
	CALL
	RETURN
	JUMP
	JUMP_IF_FALSE
	REQUIRE
	EMIT
	ADD
	SUB
	MUL
	DIV
	MOD
	EQ
	NEQ
	LT
	GT
	LTE
	GTE
	AND
	OR
	NEG
	NOT
)

var opcodeNames = map[OpCode]string{
	PUSH:          "PUSH",
	POP:           "POP",
	DUP:           "DUP",
	LOAD_LOCAL:    "LOAD_LOCAL",
	STORE_LOCAL:   "STORE_LOCAL",
	LOAD_STATE:    "LOAD_STATE",
	STORE_STATE:   "STORE_STATE",
	LOAD_MEMBER:   "LOAD_MEMBER",
	STORE_MEMBER:  "STORE_MEMBER",
	LOAD_INDEX:    "LOAD_INDEX",
	STORE_INDEX:   "STORE_INDEX",
	CALL:          "CALL",
	RETURN:        "RETURN",
	JUMP:          "JUMP",
	JUMP_IF_FALSE: "JUMP_IF_FALSE",
	REQUIRE:       "REQUIRE",
	EMIT:          "EMIT",
	ADD:           "ADD",
	SUB:           "SUB",
	MUL:           "MUL",
	DIV:           "DIV",
	MOD:           "MOD",
	EQ:            "EQ",
	NEQ:           "NEQ",
	LT:            "LT",
	GT:            "GT",
	LTE:           "LTE",
	GTE:           "GTE",
	AND:           "AND",
	OR:            "OR",
	NEG:           "NEG",
	NOT:           "NOT",
}

var namesToOpcode = func() map[string]OpCode {
	m := make(map[string]OpCode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", int(op))
}

// MarshalJSON renders the opcode as its mnemonic, keeping the artifact
// human-inspectable.
func (op OpCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.String())
}

// UnmarshalJSON parses the opcode back from its mnemonic.
func (op *OpCode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	code, ok := namesToOpcode[name]
	if !ok {
		return fmt.Errorf("bytecode: unknown opcode %q", name)
	}
	*op = code
	return nil
}
