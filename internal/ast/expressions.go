package ast

import (
	"bytes"
	"strings"

	"github.com/defpis/golox/internal/lexer"
)

// BinaryExpr is an infix arithmetic, comparison, or equality expression.
type BinaryExpr struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (e *BinaryExpr) expressionNode() {}
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

// LogicalExpr is a short-circuiting `and`/`or` expression.
type LogicalExpr struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (e *LogicalExpr) expressionNode() {}
func (e *LogicalExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

// UnaryExpr is a prefix `!`, `-`, or `+` expression.
type UnaryExpr struct {
	Operator lexer.Token
	Right    Expression
}

func (e *UnaryExpr) expressionNode() {}
func (e *UnaryExpr) String() string {
	return "(" + e.Operator.Lexeme + e.Right.String() + ")"
}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Expression Expression
}

func (e *GroupingExpr) expressionNode() {}
func (e *GroupingExpr) String() string {
	return "(group " + e.Expression.String() + ")"
}

// LiteralExpr carries a literal value: nil, bool, float64, or string.
type LiteralExpr struct {
	Value any
}

func (e *LiteralExpr) expressionNode() {}
func (e *LiteralExpr) String() string {
	return literalString(e.Value)
}

// VariableExpr is a reference to a named binding.
type VariableExpr struct {
	Name lexer.Token
}

func (e *VariableExpr) expressionNode() {}
func (e *VariableExpr) String() string {
	return e.Name.Lexeme
}

// AssignExpr assigns Value to the binding named by Name. ReturnOriginal is
// set for postfix increment/decrement desugarings, which evaluate to the
// binding's previous value.
type AssignExpr struct {
	Name           lexer.Token
	Value          Expression
	ReturnOriginal bool
}

func (e *AssignExpr) expressionNode() {}
func (e *AssignExpr) String() string {
	return "(" + e.Name.Lexeme + " = " + e.Value.String() + ")"
}

// CallExpr invokes a callable. Paren is the closing parenthesis token, kept
// for error reporting.
type CallExpr struct {
	Callee    Expression
	Paren     lexer.Token
	Arguments []Expression
}

func (e *CallExpr) expressionNode() {}
func (e *CallExpr) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		args = append(args, a.String())
	}
	out.WriteString(e.Callee.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// GetExpr reads property Name from the value of Object.
type GetExpr struct {
	Object Expression
	Name   lexer.Token
}

func (e *GetExpr) expressionNode() {}
func (e *GetExpr) String() string {
	return e.Object.String() + "." + e.Name.Lexeme
}

// SetExpr writes Value to property Name on the value of Object. ReturnOriginal
// mirrors AssignExpr.
type SetExpr struct {
	Object         Expression
	Name           lexer.Token
	Value          Expression
	ReturnOriginal bool
}

func (e *SetExpr) expressionNode() {}
func (e *SetExpr) String() string {
	return "(" + e.Object.String() + "." + e.Name.Lexeme + " = " + e.Value.String() + ")"
}

// ThisExpr is a reference to the receiver inside a method body.
type ThisExpr struct {
	Keyword lexer.Token
}

func (e *ThisExpr) expressionNode() {}
func (e *ThisExpr) String() string {
	return "this"
}

// SuperExpr is a superclass method reference `super.method`.
type SuperExpr struct {
	Keyword lexer.Token
	Method  lexer.Token
}

func (e *SuperExpr) expressionNode() {}
func (e *SuperExpr) String() string {
	return "super." + e.Method.Lexeme
}
