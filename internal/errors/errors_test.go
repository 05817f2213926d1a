package errors

import (
	"strings"
	"testing"

	"github.com/grishinium/grishex/internal/ast"
	"github.com/grishinium/grishex/internal/lexer"
)

func TestParserErrorFormat(t *testing.T) {
	source := "let x = ;\n"
	err := NewParserError(lexer.Position{Line: 1, Column: 9}, "expected expression, got ;", source)

	out := err.Format(false)
	if !strings.Contains(out, "1:9") {
		t.Fatalf("expected position in output, got %q", out)
	}
	if !strings.Contains(out, "expected expression") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if err.Error() != out {
		t.Fatalf("Error() should match Format(false)")
	}
}

func TestCompilerErrorFormat(t *testing.T) {
	node := &ast.Identifier{Token: lexer.Token{Pos: lexer.Position{Line: 3, Column: 5}}, Value: "missing"}
	err := NewCompilerError(node, "undefined identifier: missing", "")

	out := err.Format(false)
	if !strings.Contains(out, "3:5") {
		t.Fatalf("expected position in output, got %q", out)
	}
}

func TestVMErrorFormat(t *testing.T) {
	err := NewVMError("division by zero")
	if err.Error() != "division by zero" {
		t.Fatalf("expected message, got %q", err.Error())
	}
	if !strings.Contains(err.Format(true), "division by zero") {
		t.Fatalf("expected message in colored format")
	}
}
