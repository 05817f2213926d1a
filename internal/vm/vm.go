package vm

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/grishinium/grishex/internal/bytecode"
	grisherrors "github.com/grishinium/grishex/internal/errors"
)

// LogEntry is one emitted event, appended in emission order.
type LogEntry struct {
	Contract string
	Address  string
	Event    string
	Topics   []string
	Data     []interface{}
}

// Stats accumulates execution counters across the VM's lifetime, until
// Reset.
type Stats struct {
	GasUsed             int
	InstructionsExecuted int
	FunctionCalls       int
	StorageReads        int
	StorageWrites       int
}

type instance struct {
	name    string
	address string
}

// VM loads bytecode artifacts, deploys contract instances, and executes
// their functions. One VM owns its own storage, logs, and stats; running
// multiple contracts concurrently means instantiating multiple VMs.
type VM struct {
	contracts map[string]bytecode.ContractSpec

	instances map[string]instance      // address -> instance
	storage   map[string]map[int]Value // address -> offset -> value
	addresses map[string]string        // contract name -> latest deployed address

	logs []LogEntry

	callStack []*Frame
	stats     Stats
}

// NewVM creates an empty VM ready to load bytecode.
func NewVM() *VM {
	vm := &VM{}
	vm.Reset()
	return vm
}

// Reset discards every loaded contract, deployed instance, storage slot,
// log entry, and statistic, returning the VM to its zero state.
func (vm *VM) Reset() {
	vm.contracts = make(map[string]bytecode.ContractSpec)
	vm.instances = make(map[string]instance)
	vm.storage = make(map[string]map[int]Value)
	vm.addresses = make(map[string]string)
	vm.logs = nil
	vm.callStack = nil
	vm.stats = Stats{}
}

// LoadContract registers every contract in artifact, making it available
// to DeployContract and ExecuteFunction. Loading the same contract name
// twice overwrites the earlier definition.
func (vm *VM) LoadContract(artifact *bytecode.Artifact) {
	for name, spec := range artifact.Contracts {
		vm.contracts[name] = spec
	}
}

// DeployContract creates a fresh instance of a loaded contract, assigns
// it a unique address, records the name-to-address shortcut (latest
// deployment wins), and — if the contract declares a constructor — runs
// it against the new instance's empty storage.
func (vm *VM) DeployContract(name string, args []Value) (string, error) {
	if _, ok := vm.contracts[name]; !ok {
		return "", grisherrors.NewVMError(fmt.Sprintf("Contract %s not found", name))
	}

	address := vm.freshAddress()
	vm.instances[address] = instance{name: name, address: address}
	vm.storage[address] = make(map[int]Value)
	vm.addresses[name] = address

	if _, hasCtor := vm.contracts[name].Functions["constructor"]; hasCtor {
		if _, err := vm.ExecuteFunction(name, "constructor", args, address); err != nil {
			return "", err
		}
	}

	return address, nil
}

// freshAddress materializes a 20-byte address as "0x" followed by 40
// lower-case hex digits, reseeding on a collision to preserve uniqueness
// across deployments within one VM. crypto/rand replaces the source's
// pseudo-random generator; the spec only requires uniqueness, not
// reproducibility of the Python implementation's exact bit pattern.
func (vm *VM) freshAddress() string {
	for {
		buf := make([]byte, 20)
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("vm: failed to read random bytes: %v", err))
		}
		address := "0x" + hex.EncodeToString(buf)
		if _, exists := vm.instances[address]; !exists {
			return address
		}
	}
}

// ExecuteFunction resolves a deployed contract address, validates the
// call's argument count, and runs the named function's bytecode.
//
// Address resolution, in order: the explicit address argument, the
// contract's latest deployment shortcut, the first deployed instance of
// name found in the instance map, or — failing all three — a fresh
// no-argument deployment. The last case is a convenience carried over
// from the source VM rather than a documented guarantee: a caller that
// relies on it gets whatever empty-argument constructor happens to run.
func (vm *VM) ExecuteFunction(contractName, functionName string, args []Value, address string) (Value, error) {
	spec, ok := vm.contracts[contractName]
	if !ok {
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Contract %s not found", contractName))
	}

	fn, ok := spec.Functions[functionName]
	if !ok {
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Function %s not found in contract %s", functionName, contractName))
	}

	if address == "" {
		address = vm.resolveAddress(contractName)
		if address == "" {
			deployed, err := vm.DeployContract(contractName, nil)
			if err != nil {
				return Nil(), err
			}
			address = deployed
		}
	}

	if len(args) != len(fn.Params) {
		return Nil(), grisherrors.NewVMError(fmt.Sprintf("Expected %d arguments, got %d", len(fn.Params), len(args)))
	}

	frame := newFrame(contractName, address, functionName)
	for i, arg := range args {
		frame.locals[i] = arg
	}

	vm.callStack = append(vm.callStack, frame)
	vm.stats.FunctionCalls++

	result, err := vm.run(frame, fn.Code)

	vm.callStack = vm.callStack[:len(vm.callStack)-1]
	return result, err
}

func (vm *VM) resolveAddress(contractName string) string {
	if address, ok := vm.addresses[contractName]; ok {
		return address
	}
	for address, inst := range vm.instances {
		if inst.name == contractName {
			return address
		}
	}
	return ""
}

// GetStorage returns the storage slots of the given contract's deployed
// instance, by explicit address if given, else by the contract's latest
// deployment shortcut or first found instance.
func (vm *VM) GetStorage(contractName, address string) map[int]Value {
	if address != "" {
		return vm.storage[address]
	}
	if resolved := vm.resolveAddress(contractName); resolved != "" {
		return vm.storage[resolved]
	}
	return nil
}

// GetLogs returns every event log entry recorded since the last Reset, in
// emission order.
func (vm *VM) GetLogs() []LogEntry {
	return vm.logs
}

// GetStats returns the VM's cumulative execution counters.
func (vm *VM) GetStats() Stats {
	return vm.stats
}
