package compiler

import (
	"strings"

	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/symbols"
)

var primitiveTypes = map[string]bool{
	"int": true, "uint": true, "bool": true, "address": true,
	"string": true, "bytes": true, "hash": true, "float": true,
}

// isValidType accepts the primitive names, array<T>/map<K,V> whose element
// types are themselves valid, and any globally declared struct or enum.
func (c *Compiler) isValidType(t *ast.TypeNode) bool {
	switch t.Name {
	case "array":
		return t.Elem != nil && c.isValidType(t.Elem)
	case "map":
		return t.Key != nil && t.Value != nil && c.isValidType(t.Key) && c.isValidType(t.Value)
	default:
		if primitiveTypes[t.Name] {
			return true
		}
		sym, ok := c.global.Resolve(t.Name)
		return ok && (sym.Kind == symbols.KindStruct || sym.Kind == symbols.KindEnum)
	}
}

// defaultValueForType returns the zero value emitted for a `let`/field
// declaration that has a type but no initializer.
func (c *Compiler) defaultValueForType(t *ast.TypeNode) interface{} {
	switch t.Name {
	case "int", "uint":
		return int64(0)
	case "bool":
		return false
	case "float":
		return 0.0
	case "address":
		return "0x" + strings.Repeat("0", 40)
	case "string":
		return ""
	case "bytes":
		return ""
	case "hash":
		return "0x" + strings.Repeat("0", 64)
	case "array":
		return []interface{}{}
	case "map":
		return map[string]interface{}{}
	default:
		return nil
	}
}
