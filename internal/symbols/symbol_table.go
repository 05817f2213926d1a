// Package symbols implements the nested symbol tables used by the
// compiler to resolve names during code generation.
package symbols

import "fmt"

// Kind identifies what a Symbol names.
type Kind int

const (
	KindContract Kind = iota
	KindInterface
	KindFunction
	KindParameter
	KindLocal
	KindStateVariable
	KindEvent
	KindStruct
	KindEnum
	KindEnumValue
)

func (k Kind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindInterface:
		return "interface"
	case KindFunction:
		return "function"
	case KindParameter:
		return "parameter"
	case KindLocal:
		return "local variable"
	case KindStateVariable:
		return "state variable"
	case KindEvent:
		return "event"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindEnumValue:
		return "enum value"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParamInfo is a name:type pair recorded for functions and events.
type ParamInfo struct {
	Name string
	Type string
}

// Symbol is a named entry bound inside a SymbolTable. Only the fields
// relevant to its Kind are populated; the rest are zero.
type Symbol struct {
	Name string
	Kind Kind

	Type string // variable/parameter/state-variable type name

	Offset int // state variable: dense zero-based index
	Index  int // parameter/local: slot index

	Params     []ParamInfo // function/event: declaration-order parameters
	ReturnType string      // function: declared return type, "" if none
	IsView     bool
	IsPrivate  bool

	EnumName string // enum value: owning enum's name
	Value    int    // enum value: sequential ordinal starting at 0
}

// SymbolTable maps names to symbols within one lexical frame, with an
// optional parent forming a chain (global -> contract -> function ->
// block). Resolve walks the chain; Define only touches the local frame.
type SymbolTable struct {
	symbols map[string]*Symbol
	parent  *SymbolTable
}

// New creates a top-level symbol table with no parent.
func New() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosed creates a symbol table nested inside parent.
func NewEnclosed(parent *SymbolTable) *SymbolTable {
	st := New()
	st.parent = parent
	return st
}

// Parent returns the enclosing table, or nil at the global frame.
func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

// Define binds sym in this frame only. Returns false, leaving the prior
// binding in place, if the name was already bound in this frame (the
// caller should report a duplicate-declaration error rather than
// silently shadow it).
func (st *SymbolTable) Define(sym *Symbol) bool {
	if _, exists := st.symbols[sym.Name]; exists {
		return false
	}
	st.symbols[sym.Name] = sym
	return true
}

// Resolve walks this frame and its ancestors, innermost first, for name.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.parent != nil {
		return st.parent.Resolve(name)
	}
	return nil, false
}

// ResolveLocal looks up name in this frame only, without consulting
// ancestors.
func (st *SymbolTable) ResolveLocal(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}
