package lexer

import (
	"testing"
)

func TestScanTokens(t *testing.T) {
	input := `var x = 5;
x = x + 10;
`

	tests := []struct {
		expectedType   TokenType
		expectedLexeme string
	}{
		{VAR, "var"},
		{IDENTIFIER, "x"},
		{EQUAL, "="},
		{NUMBER, "5"},
		{SEMICOLON, ";"},
		{IDENTIFIER, "x"},
		{EQUAL, "="},
		{IDENTIFIER, "x"},
		{PLUS, "+"},
		{NUMBER, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	tokens := New(input).ScanTokens()

	if len(tokens) != len(tests) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(tests), len(tokens))
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (lexeme=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `and class else false fun for if nil or print return super this true var while static getter setter`

	expected := []TokenType{
		AND, CLASS, ELSE, FALSE, FUN, FOR, IF, NIL, OR, PRINT,
		RETURN, SUPER, THIS, TRUE, VAR, WHILE, STATIC, GETTER, SETTER, EOF,
	}

	tokens := New(input).ScanTokens()

	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(expected), len(tokens))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Fatalf("tokens[%d] wrong. expected=%q, got=%q", i, want, tokens[i].Type)
		}
	}
}

func TestOperatorFamilies(t *testing.T) {
	input := `+ ++ += - -- -= * ** *= / /= ! != = == < <= > >=`

	expected := []TokenType{
		PLUS, PLUS_PLUS, PLUS_EQUAL,
		MINUS, MINUS_MINUS, MINUS_EQUAL,
		STAR, STAR_STAR, STAR_EQUAL,
		SLASH, SLASH_EQUAL,
		BANG, BANG_EQUAL,
		EQUAL, EQUAL_EQUAL,
		LESS, LESS_EQUAL,
		GREATER, GREATER_EQUAL,
		EOF,
	}

	tokens := New(input).ScanTokens()

	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(expected), len(tokens))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Fatalf("tokens[%d] wrong. expected=%q, got=%q (lexeme=%q)", i, want, tokens[i].Type, tokens[i].Lexeme)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{`"hello"`, "hello"},
		{`'world'`, "world"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`""`, ""},
	}

	for _, tt := range tests {
		tokens := New(tt.input).ScanTokens()
		if len(tokens) != 2 {
			t.Fatalf("input %q: expected 2 tokens, got %d", tt.input, len(tokens))
		}
		tok := tokens[0]
		if tok.Type != STRING {
			t.Fatalf("input %q: expected STRING, got %q", tt.input, tok.Type)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("input %q: literal wrong. expected=%q, got=%q", tt.input, tt.literal, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal float64
	}{
		{"0", 0},
		{"123", 123},
		{"3.14", 3.14},
		{"0.5", 0.5},
	}

	for _, tt := range tests {
		tokens := New(tt.input).ScanTokens()
		tok := tokens[0]
		if tok.Type != NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %q", tt.input, tok.Type)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("input %q: literal wrong. expected=%v, got=%v", tt.input, tt.literal, tok.Literal)
		}
	}
}

func TestDotIsNotPartOfNumberWithoutDigits(t *testing.T) {
	tokens := New("1.foo").ScanTokens()

	expected := []TokenType{NUMBER, DOT, IDENTIFIER, EOF}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Fatalf("tokens[%d] wrong. expected=%q, got=%q", i, want, tokens[i].Type)
		}
	}
}

func TestComments(t *testing.T) {
	input := `var a = 1; // line comment
/* block
   comment */ var b = 2;`

	tokens := New(input).ScanTokens()

	expected := []TokenType{VAR, IDENTIFIER, EQUAL, NUMBER, SEMICOLON, VAR, IDENTIFIER, EQUAL, NUMBER, SEMICOLON, EOF}
	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(expected), len(tokens))
	}

	// block comment newlines advance the line counter
	if tokens[5].Line != 3 {
		t.Fatalf("expected second var on line 3, got %d", tokens[5].Line)
	}
}

func TestLineTracking(t *testing.T) {
	input := "var a;\nvar b;\n\nvar c;"
	tokens := New(input).ScanTokens()

	lines := map[string]int{"a": 1, "b": 2, "c": 4}
	for _, tok := range tokens {
		if tok.Type != IDENTIFIER {
			continue
		}
		if want := lines[tok.Lexeme]; tok.Line != want {
			t.Errorf("identifier %q: expected line %d, got %d", tok.Lexeme, want, tok.Line)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	l.ScanTokens()

	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "Unterminated string." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestUnclosedBlockComment(t *testing.T) {
	l := New("/* never ends")
	l.ScanTokens()

	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "Unclosed block comment." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("var a = 1; @ var b = 2;")
	tokens := l.ScanTokens()

	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "Unexpected character '@'." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}

	// scanning continues past the bad character
	if tokens[len(tokens)-1].Type != EOF {
		t.Fatal("expected EOF terminator")
	}
	if len(tokens) != 11 {
		t.Fatalf("expected 11 tokens, got %d", len(tokens))
	}
}

func TestEmptySource(t *testing.T) {
	tokens := New("").ScanTokens()
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Fatalf("expected only EOF, got %v", tokens)
	}
}
