package bytecode

import (
	"fmt"
	"io"
	"sort"
)

// Disassembler renders an Artifact as a readable instruction listing.
type Disassembler struct {
	w io.Writer
}

// NewDisassembler creates a Disassembler writing to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// Disassemble writes a full listing of artifact: version header, then per
// contract its state variables, events, and each function's instructions.
func (d *Disassembler) Disassemble(artifact *Artifact) error {
	if _, err := fmt.Fprintf(d.w, "; grishex bytecode v%s\n", artifact.Version); err != nil {
		return err
	}

	for _, name := range sortedKeys(artifact.Contracts) {
		contract := artifact.Contracts[name]
		if _, err := fmt.Fprintf(d.w, "\ncontract %s\n", name); err != nil {
			return err
		}

		for _, svName := range sortedStateVarKeys(contract.StateVariables) {
			sv := contract.StateVariables[svName]
			fmt.Fprintf(d.w, "  state %s: %s @%d\n", svName, sv.Type, sv.Offset)
		}

		for _, evName := range sortedEventKeys(contract.Events) {
			ev := contract.Events[evName]
			fmt.Fprintf(d.w, "  event %s(%s)\n", evName, formatParams(ev.Params))
		}

		for _, fnName := range sortedFunctionKeys(contract.Functions) {
			fn := contract.Functions[fnName]
			if err := d.disassembleFunction(fnName, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *Disassembler) disassembleFunction(name string, fn FunctionSpec) error {
	header := fmt.Sprintf("  function %s(%s)", name, formatParams(fn.Params))
	if fn.ReturnType != "" {
		header += " returns " + fn.ReturnType
	}
	if fn.IsView {
		header += " view"
	}
	if fn.IsPrivate {
		header += " private"
	}
	if _, err := fmt.Fprintln(d.w, header); err != nil {
		return err
	}

	for i, inst := range fn.Code {
		if _, err := fmt.Fprintf(d.w, "    %4d  %s\n", i, formatInstruction(inst)); err != nil {
			return err
		}
	}
	return nil
}

func formatInstruction(inst Instruction) string {
	switch inst.Op {
	case PUSH:
		return fmt.Sprintf("%s %v", inst.Op, inst.Value)
	case LOAD_LOCAL, STORE_LOCAL:
		return fmt.Sprintf("%s %d", inst.Op, inst.Index)
	case LOAD_STATE, STORE_STATE:
		return fmt.Sprintf("%s %d", inst.Op, inst.Offset)
	case JUMP, JUMP_IF_FALSE:
		return fmt.Sprintf("%s %+d", inst.Op, inst.Offset)
	case LOAD_MEMBER, STORE_MEMBER:
		return fmt.Sprintf("%s %s", inst.Op, inst.Member)
	case CALL:
		return fmt.Sprintf("%s %s %d", inst.Op, inst.Function, inst.ArgsCount)
	case RETURN:
		if inst.ReturnsValue {
			return inst.Op.String() + " value=stack"
		}
		return inst.Op.String()
	case REQUIRE:
		return fmt.Sprintf("%s %q", inst.Op, inst.Message)
	case EMIT:
		return fmt.Sprintf("%s %s %d", inst.Op, inst.Event, inst.ArgsCount)
	default:
		return inst.Op.String()
	}
}

func formatParams(params []ParamSpec) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p.Name + ": " + p.Type
	}
	return out
}

func sortedKeys(m map[string]ContractSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStateVarKeys(m map[string]StateVarSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return m[keys[i]].Offset < m[keys[j]].Offset })
	return keys
}

func sortedEventKeys(m map[string]EventSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFunctionKeys(m map[string]FunctionSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
