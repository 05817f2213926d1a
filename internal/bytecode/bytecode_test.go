package bytecode

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func sampleArtifact() *Artifact {
	artifact := NewArtifact()
	artifact.Contracts["SimpleToken"] = ContractSpec{
		StateVariables: map[string]StateVarSpec{
			"name":     {Type: "string", Offset: 0},
			"symbol":   {Type: "string", Offset: 1},
			"decimals": {Type: "uint", Offset: 2},
		},
		Events: map[string]EventSpec{
			"Transfer": {Params: []ParamSpec{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint"}}},
		},
		Functions: map[string]FunctionSpec{
			"getName": {
				ReturnType: "string",
				IsView:     true,
				Code: []Instruction{
					{Op: LOAD_STATE, Offset: 0},
					{Op: RETURN, ReturnsValue: true},
				},
			},
		},
	}
	return artifact
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := sampleArtifact()

	data, err := Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if restored.Version != original.Version {
		t.Fatalf("expected version %q, got %q", original.Version, restored.Version)
	}

	fn := restored.Contracts["SimpleToken"].Functions["getName"]
	if len(fn.Code) != 2 || fn.Code[0].Op != LOAD_STATE || fn.Code[1].Op != RETURN {
		t.Fatalf("unexpected round-tripped code: %+v", fn.Code)
	}
	if fn.Code[0].Offset != 0 {
		t.Fatalf("expected offset 0, got %d", fn.Code[0].Offset)
	}
}

func TestOpCodeJSONRoundTrip(t *testing.T) {
	for op := range opcodeNames {
		data, err := op.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%s): %v", op, err)
		}
		var restored OpCode
		if err := restored.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", op, err)
		}
		if restored != op {
			t.Fatalf("expected %s, got %s", op, restored)
		}
	}
}

func TestDeserializeUnknownOpcode(t *testing.T) {
	_, err := Deserialize([]byte(`{"version":"1.0","contracts":{"C":{"state_variables":{},"events":{},"functions":{"f":{"params":[],"code":[{"op":"NOT_A_REAL_OP"}]}}}}}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown opcode")
	}
}

func TestDisassembleDeterministic(t *testing.T) {
	artifact := sampleArtifact()

	var buf1, buf2 bytes.Buffer
	if err := NewDisassembler(&buf1).Disassemble(artifact); err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if err := NewDisassembler(&buf2).Disassemble(artifact); err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if buf1.String() != buf2.String() {
		t.Fatalf("expected identical output across runs, got:\n%s\nvs\n%s", buf1.String(), buf2.String())
	}

	snaps.MatchSnapshot(t, "disassemble_simple_token", buf1.String())
}
