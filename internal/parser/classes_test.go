package parser

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/defpis/golox/internal/ast"
)

func TestClassDeclaration(t *testing.T) {
	input := heredoc.Doc(`
		class Point {
			x = 0;
			y = 0;

			init(x, y) {
				this.x = x;
				this.y = y;
			}

			len() {
				return (this.x ** 2 + this.y ** 2) ** 0.5;
			}
		}
	`)

	program := parseNoErrors(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}

	class, ok := program.Statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected ClassStmt, got %T", program.Statements[0])
	}

	if class.Name.Lexeme != "Point" {
		t.Errorf("expected class name Point, got %q", class.Name.Lexeme)
	}
	if class.Superclass != nil {
		t.Error("expected no superclass")
	}
	if len(class.Instance.Variables) != 2 {
		t.Fatalf("expected 2 instance variables, got %d", len(class.Instance.Variables))
	}
	if len(class.Instance.Methods) != 2 {
		t.Fatalf("expected 2 instance methods, got %d", len(class.Instance.Methods))
	}
	if len(class.Static.Variables) != 0 || len(class.Static.Methods) != 0 {
		t.Error("expected no static members")
	}
}

func TestClassInheritance(t *testing.T) {
	program := parseNoErrors(t, "class B < A {}")

	class := program.Statements[0].(*ast.ClassStmt)
	if class.Superclass == nil {
		t.Fatal("expected a superclass")
	}
	if class.Superclass.Name.Lexeme != "A" {
		t.Errorf("expected superclass A, got %q", class.Superclass.Name.Lexeme)
	}
}

func TestClassStaticMembers(t *testing.T) {
	input := heredoc.Doc(`
		class Counter {
			static total = 0;
			value = 0;

			static bump() {
				Counter.total = Counter.total + 1;
			}

			read() {
				return this.value;
			}
		}
	`)

	program := parseNoErrors(t, input)
	class := program.Statements[0].(*ast.ClassStmt)

	if len(class.Static.Variables) != 1 {
		t.Fatalf("expected 1 static variable, got %d", len(class.Static.Variables))
	}
	if class.Static.Variables[0].Name.Lexeme != "total" {
		t.Errorf("expected static variable total, got %q", class.Static.Variables[0].Name.Lexeme)
	}
	if len(class.Static.Methods) != 1 {
		t.Fatalf("expected 1 static method, got %d", len(class.Static.Methods))
	}
	if class.Static.Methods[0].Modifier != ast.ModifierStatic {
		t.Error("expected static modifier on bump")
	}
	if len(class.Instance.Variables) != 1 || len(class.Instance.Methods) != 1 {
		t.Error("expected 1 instance variable and 1 instance method")
	}
}

func TestClassAccessors(t *testing.T) {
	input := heredoc.Doc(`
		class Box {
			getter value() {
				return this._value;
			}

			setter value(v) {
				this._value = v;
			}
		}
	`)

	program := parseNoErrors(t, input)
	class := program.Statements[0].(*ast.ClassStmt)

	if len(class.Instance.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(class.Instance.Methods))
	}
	if class.Instance.Methods[0].Modifier != ast.ModifierGetter {
		t.Error("expected getter modifier")
	}
	if class.Instance.Methods[1].Modifier != ast.ModifierSetter {
		t.Error("expected setter modifier")
	}
	if len(class.Instance.Methods[1].Params) != 1 {
		t.Error("expected setter to have one parameter")
	}
}

func TestAccessorArityErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"class A { getter v(x) { return x; } }", "'getter' method should have no parameters."},
		{"class A { setter v() { } }", "'setter' method should have only one parameter."},
		{"class A { setter v(a, b) { } }", "'setter' method should have only one parameter."},
	}

	for _, tt := range tests {
		_, p := parseProgram(t, tt.input)
		if len(p.Errors()) == 0 {
			t.Errorf("input %q: expected a parse error", tt.input)
			continue
		}
		if msg := p.Errors()[0].Message; msg != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, msg)
		}
	}
}

func TestClassMemberErrorRecovery(t *testing.T) {
	input := heredoc.Doc(`
		class A {
			bad( {;
			ok() { return 1; }
		}
	`)

	program, p := parseProgram(t, input)
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error")
	}

	class, ok := program.Statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected ClassStmt, got %T", program.Statements[0])
	}
	found := false
	for _, m := range class.Instance.Methods {
		if m.Name.Lexeme == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("expected the ok method to survive recovery")
	}
}
