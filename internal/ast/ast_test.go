package ast

import (
	"testing"

	"github.com/defpis/golox/internal/lexer"
)

func token(t lexer.TokenType, lexeme string) lexer.Token {
	return lexer.Token{Type: t, Lexeme: lexeme, Line: 1}
}

func TestExpressionStrings(t *testing.T) {
	variable := &VariableExpr{Name: token(lexer.IDENTIFIER, "a")}
	one := &LiteralExpr{Value: float64(1)}

	tests := []struct {
		node     Node
		expected string
	}{
		{&BinaryExpr{Left: variable, Operator: token(lexer.PLUS, "+"), Right: one}, "(a + 1)"},
		{&LogicalExpr{Left: variable, Operator: token(lexer.OR, "or"), Right: one}, "(a or 1)"},
		{&UnaryExpr{Operator: token(lexer.BANG, "!"), Right: variable}, "(!a)"},
		{&GroupingExpr{Expression: one}, "(group 1)"},
		{&LiteralExpr{Value: nil}, "nil"},
		{&LiteralExpr{Value: true}, "true"},
		{&LiteralExpr{Value: "hi"}, `"hi"`},
		{&LiteralExpr{Value: float64(2.5)}, "2.5"},
		{&AssignExpr{Name: token(lexer.IDENTIFIER, "a"), Value: one}, "(a = 1)"},
		{&GetExpr{Object: variable, Name: token(lexer.IDENTIFIER, "f")}, "a.f"},
		{&SetExpr{Object: variable, Name: token(lexer.IDENTIFIER, "f"), Value: one}, "(a.f = 1)"},
		{&ThisExpr{Keyword: token(lexer.THIS, "this")}, "this"},
		{&SuperExpr{Keyword: token(lexer.SUPER, "super"), Method: token(lexer.IDENTIFIER, "m")}, "super.m"},
		{&CallExpr{Callee: variable, Arguments: []Expression{one, variable}}, "a(1, a)"},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestStatementStrings(t *testing.T) {
	one := &LiteralExpr{Value: float64(1)}
	name := token(lexer.IDENTIFIER, "a")

	tests := []struct {
		node     Node
		expected string
	}{
		{&ExpressionStmt{Expression: one}, "1;"},
		{&PrintStmt{Expression: one}, "print 1;"},
		{&ReturnStmt{Keyword: token(lexer.RETURN, "return")}, "return;"},
		{&ReturnStmt{Keyword: token(lexer.RETURN, "return"), Value: one}, "return 1;"},
		{&VarStmt{Name: name}, "var a;"},
		{&VarStmt{Name: name, Initializer: one}, "var a = 1;"},
		{&VarStmt{Name: name, Initializer: one, Modifier: ModifierStatic}, "static var a = 1;"},
		{&WhileStmt{Condition: one, Body: &PrintStmt{Expression: one}}, "while (1) print 1;"},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestProgramString(t *testing.T) {
	program := &Program{Statements: []Statement{
		&PrintStmt{Expression: &LiteralExpr{Value: float64(1)}},
		&PrintStmt{Expression: &LiteralExpr{Value: float64(2)}},
	}}
	if got := program.String(); got != "print 1;print 2;" {
		t.Errorf("unexpected program string: %q", got)
	}
}
