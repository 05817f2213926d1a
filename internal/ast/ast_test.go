package ast

import (
	"testing"

	"github.com/grishinium/grishex/internal/lexer"
)

func TestProgramString(t *testing.T) {
	program := &Program{
		Pragma: &PragmaDecl{
			Token:   lexer.Token{Type: lexer.PRAGMA, Literal: "pragma"},
			Name:    "grishex",
			Version: "1",
		},
		Declarations: []Declaration{
			&ContractDecl{
				Token: lexer.Token{Type: lexer.CONTRACT, Literal: "contract"},
				Name:  "Counter",
				States: []*StateDecl{
					{
						Token: lexer.Token{Type: lexer.STATE, Literal: "state"},
						Name:  "count",
						Type:  &TypeNode{Token: lexer.Token{Literal: "uint"}, Name: "uint"},
					},
				},
			},
		},
	}

	got := program.String()
	if got == "" {
		t.Fatalf("expected non-empty program string")
	}
	if program.TokenLiteral() != "pragma" {
		t.Fatalf("expected TokenLiteral 'pragma', got %q", program.TokenLiteral())
	}
}

func TestAssignStatementString(t *testing.T) {
	stmt := &AssignStatement{
		Token:  lexer.Token{Type: lexer.ASSIGN, Literal: "="},
		Target: &Identifier{Token: lexer.Token{Literal: "count"}, Value: "count"},
		Value: &BinaryExpr{
			Token:    lexer.Token{Type: lexer.PLUS, Literal: "+"},
			Operator: "+",
			Left:     &Identifier{Token: lexer.Token{Literal: "count"}, Value: "count"},
			Right:    &IntegerLiteral{Token: lexer.Token{Literal: "1"}, Value: 1},
		},
	}

	expected := "count = (count + 1);"
	if stmt.String() != expected {
		t.Fatalf("expected %q, got %q", expected, stmt.String())
	}
}

func TestTypeNodeString(t *testing.T) {
	mapType := &TypeNode{
		Name: "map",
		Key:  &TypeNode{Name: "address"},
		Value: &TypeNode{
			Name: "array",
			Elem: &TypeNode{Name: "uint"},
		},
	}

	expected := "map<address,array<uint>>"
	if mapType.String() != expected {
		t.Fatalf("expected %q, got %q", expected, mapType.String())
	}
}
