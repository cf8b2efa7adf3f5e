package ast

import (
	"bytes"
	"strings"

	"github.com/defpis/golox/internal/lexer"
)

// ExpressionStmt evaluates an expression for its side effects.
type ExpressionStmt struct {
	Expression Expression
}

func (s *ExpressionStmt) statementNode() {}
func (s *ExpressionStmt) String() string {
	return s.Expression.String() + ";"
}

// PrintStmt writes the stringified value of Expression to program output.
type PrintStmt struct {
	Expression Expression
}

func (s *PrintStmt) statementNode() {}
func (s *PrintStmt) String() string {
	return "print " + s.Expression.String() + ";"
}

// ReturnStmt unwinds to the nearest function call boundary. Value is nil for
// a bare `return;`.
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expression
}

func (s *ReturnStmt) statementNode() {}
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// VarStmt declares a variable, optionally initialized. Inside a class body a
// VarStmt is an attribute declaration and Modifier may be ModifierStatic.
type VarStmt struct {
	Name        lexer.Token
	Initializer Expression
	Modifier    Modifier
}

func (s *VarStmt) statementNode() {}
func (s *VarStmt) String() string {
	var out bytes.Buffer
	if s.Modifier == ModifierStatic {
		out.WriteString("static ")
	}
	out.WriteString("var ")
	out.WriteString(s.Name.Lexeme)
	if s.Initializer != nil {
		out.WriteString(" = ")
		out.WriteString(s.Initializer.String())
	}
	out.WriteString(";")
	return out.String()
}

// BlockStmt executes its statements in a fresh nested scope.
type BlockStmt struct {
	Statements []Statement
}

func (s *BlockStmt) statementNode() {}
func (s *BlockStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, stmt := range s.Statements {
		out.WriteString(stmt.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStmt branches on the truthiness of Condition. Else may be nil.
type IfStmt struct {
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStmt) statementNode() {}
func (s *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(s.Condition.String())
	out.WriteString(") ")
	out.WriteString(s.Then.String())
	if s.Else != nil {
		out.WriteString(" else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// WhileStmt loops while Condition is truthy. `for` loops desugar to this.
type WhileStmt struct {
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) statementNode() {}
func (s *WhileStmt) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// FunStmt declares a named function or method. Modifier distinguishes plain
// methods from static/getter/setter members inside class bodies.
type FunStmt struct {
	Name     lexer.Token
	Params   []lexer.Token
	Body     *BlockStmt
	Modifier Modifier
}

func (s *FunStmt) statementNode() {}
func (s *FunStmt) String() string {
	var out bytes.Buffer
	if s.Modifier != ModifierNone {
		out.WriteString(s.Modifier.String())
		out.WriteString(" ")
	}
	out.WriteString("fun ")
	out.WriteString(s.Name.Lexeme)
	out.WriteString("(")
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.Lexeme)
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ClassAttributes groups the variable and method members of one side of a
// class body (instance or static).
type ClassAttributes struct {
	Variables []*VarStmt
	Methods   []*FunStmt
}

// ClassStmt declares a class with optional single inheritance. Superclass is
// nil when the class has no parent.
type ClassStmt struct {
	Name       lexer.Token
	Superclass *VariableExpr
	Instance   ClassAttributes
	Static     ClassAttributes
}

func (s *ClassStmt) statementNode() {}
func (s *ClassStmt) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(s.Name.Lexeme)
	if s.Superclass != nil {
		out.WriteString(" < ")
		out.WriteString(s.Superclass.Name.Lexeme)
	}
	out.WriteString(" { ")
	for _, v := range s.Instance.Variables {
		out.WriteString(v.String())
		out.WriteString(" ")
	}
	for _, v := range s.Static.Variables {
		out.WriteString(v.String())
		out.WriteString(" ")
	}
	for _, m := range s.Instance.Methods {
		out.WriteString(classMethodString(m))
		out.WriteString(" ")
	}
	for _, m := range s.Static.Methods {
		out.WriteString(classMethodString(m))
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// classMethodString renders a method without the `fun` keyword, matching
// class body syntax.
func classMethodString(m *FunStmt) string {
	s := m.String()
	return strings.Replace(s, "fun ", "", 1)
}
