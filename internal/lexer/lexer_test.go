package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x = 5 + 10;
	x = x * 2;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "5"},
		{PLUS, "+"},
		{INT, "10"},
		{SEMICOLON, ";"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{IDENT, "x"},
		{ASTERISK, "*"},
		{INT, "2"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `contract interface struct enum pragma function constructor event
		state view private require assert revert emit try catch self
		if else while for foreach in return returns true false`

	tests := []TokenType{
		CONTRACT, INTERFACE, STRUCT, ENUM, PRAGMA, FUNCTION, CONSTRUCTOR, EVENT,
		STATE, VIEW, PRIVATE, REQUIRE, ASSERT, REVERT, EMIT, TRY, CATCH, SELF,
		IF, ELSE, WHILE, FOR, FOREACH, IN, RETURN, RETURNS, TRUE, FALSE, EOF,
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%s, got=%s (literal=%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestTypeKeywords(t *testing.T) {
	input := `int uint bool address string bytes hash float array map`

	tests := []TokenType{
		INT_TYPE, UINT_TYPE, BOOL_TYPE, ADDRESS_TYPE, STRING_TYPE,
		BYTES_TYPE, HASH_TYPE, FLOAT_TYPE, ARRAY_TYPE, MAP_TYPE, EOF,
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, expected, tok.Type)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `== != <= >= < > -> && || ! % = + - * /`

	tests := []TokenType{
		EQ, NEQ, LTE, GTE, LT, GT, ARROW, AND_AND, OR_OR, BANG, PERCENT,
		ASSIGN, PLUS, MINUS, ASTERISK, SLASH, EOF,
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%s, got=%s (literal=%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input        string
		expectedType TokenType
		expectedLit  string
	}{
		{"42", INT, "42"},
		{"3.14", FLOAT, "3.14"},
		{"0", INT, "0"},
		{"10.", INT, "10"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLit {
			t.Fatalf("input=%q: expected {%s %q}, got {%s %q}",
				tt.input, tt.expectedType, tt.expectedLit, tok.Type, tok.Literal)
		}
	}
}

func TestStrings(t *testing.T) {
	input := `"hello world" "escaped \"quote\"" "unterminated`

	l := New(input)

	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello world" {
		t.Fatalf("got %v", tok)
	}

	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != `escaped \"quote\"` {
		t.Fatalf("got %v", tok)
	}

	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != "unterminated" {
		t.Fatalf("expected partial unterminated string, got %v", tok)
	}

	tok = l.NextToken()
	if tok.Type != EOF {
		t.Fatalf("expected EOF, got %v", tok)
	}
}

func TestComments(t *testing.T) {
	input := `let x = 1; // line comment
	/* block
	   comment */
	let y = 2;
	/* unterminated`

	l := New(input)
	var got []TokenType
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == EOF {
			break
		}
	}

	expected := []TokenType{LET, IDENT, ASSIGN, INT, SEMICOLON, LET, IDENT, ASSIGN, INT, SEMICOLON, EOF}
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("token[%d]: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

func TestPositionTracking(t *testing.T) {
	input := "let x = 1;\nlet y = 2;"

	l := New(input)

	tok := l.NextToken() // let
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %s", tok.Pos)
	}

	for i := 0; i < 4; i++ {
		l.NextToken() // x = 1 ;
	}

	tok = l.NextToken() // let, on line 2
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %s", tok.Pos)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("let x = @;")
	for i := 0; i < 3; i++ {
		l.NextToken()
	}
	tok := l.NextToken()
	if tok.Type != ILLEGAL || tok.Literal != "@" {
		t.Fatalf("expected ILLEGAL '@', got %v", tok)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("let x = 1;")
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		t.Fatalf("expected EOF-terminated stream, got %v", tokens)
	}
	if tokens[0].Type != LET {
		t.Fatalf("expected first token LET, got %s", tokens[0].Type)
	}
}
