// Package resolver implements the static resolution pass that runs between
// parsing and evaluation.
//
// The resolver walks the AST with a stack of lexical scopes and computes,
// for every variable, this, and super reference that names a local binding,
// the distance from the use site to the scope that declares it. The
// interpreter later uses those distances for direct environment lookups.
// The same walk enforces the static semantic rules (returns outside
// functions, this/super placement, duplicate declarations, self-inheriting
// classes) and emits unused-variable warnings when scopes close.
package resolver

import (
	"github.com/defpis/golox/internal/ast"
	"github.com/defpis/golox/internal/errors"
	"github.com/defpis/golox/internal/lexer"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeMethod
	functionTypeInitializer
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

type staticType int

const (
	staticTypeNone staticType = iota
	staticTypeClass
)

// scopeEntry tracks one declared name inside a scope.
type scopeEntry struct {
	name    lexer.Token
	defined bool
	used    bool
}

// scope is one level of the lexical scope stack. checkUnused suppresses the
// unused-variable warning for synthetic scopes (this/super).
type scope struct {
	entries     map[string]*scopeEntry
	checkUnused bool
}

// Resolver performs the resolution pass.
type Resolver struct {
	scopes          []*scope
	currentFunction functionType
	currentClass    classType
	currentStatic   staticType
	locals          map[ast.Expression]int
	errors          []*errors.Diagnostic
	warnings        []*errors.Diagnostic
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{locals: make(map[ast.Expression]int)}
}

// Resolve walks the program and returns the distance map. Static errors are
// collected rather than aborting the walk; check Errors() before evaluating.
func (r *Resolver) Resolve(program *ast.Program) map[ast.Expression]int {
	r.beginScope(true)
	for _, stmt := range program.Statements {
		r.resolveStmt(stmt)
	}
	r.endScope()
	return r.locals
}

// Errors returns the static errors found during resolution.
func (r *Resolver) Errors() []*errors.Diagnostic {
	return r.errors
}

// Warnings returns the warnings found during resolution.
func (r *Resolver) Warnings() []*errors.Diagnostic {
	return r.warnings
}

func (r *Resolver) resolveStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.ReturnStmt:
		if r.currentFunction == functionTypeNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionTypeInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.BlockStmt:
		r.beginScope(true)
		for _, inner := range s.Statements {
			r.resolveStmt(inner)
		}
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *ast.FunStmt:
		if s.Modifier != ast.ModifierNone {
			r.error(s.Name, "Can't use '"+s.Modifier.String()+"' modifier outside of a class.")
		}
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionTypeFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

// resolveClass mirrors the runtime environment nesting built for classes:
// an optional scope holding super, then a scope holding this, around the
// instance members. Static members resolve outside both.
func (r *Resolver) resolveClass(stmt *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass

	r.declare(stmt.Name)

	hasSuperScope := false
	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.error(stmt.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = classTypeSubclass
			r.resolveExpr(stmt.Superclass)

			r.beginScope(false)
			r.inject("super", stmt.Superclass.Name)
			hasSuperScope = true
		}
	}

	r.beginScope(false)
	r.inject("this", stmt.Name)

	// Instance variable initializers resolve in the this scope but declare
	// nothing: they are class attributes, not locals.
	for _, variable := range stmt.Instance.Variables {
		if variable.Initializer != nil {
			r.resolveExpr(variable.Initializer)
		}
	}

	for _, method := range stmt.Instance.Methods {
		declaration := functionTypeMethod
		if method.Name.Lexeme == "init" {
			declaration = functionTypeInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()
	if hasSuperScope {
		r.endScope()
	}

	enclosingStatic := r.currentStatic
	r.currentStatic = staticTypeClass

	for _, variable := range stmt.Static.Variables {
		if variable.Initializer != nil {
			r.resolveExpr(variable.Initializer)
		}
	}
	for _, method := range stmt.Static.Methods {
		if method.Name.Lexeme == "init" {
			r.error(method.Name, "'init' method can't be static.")
		}
		r.resolveFunction(method, functionTypeFunction)
	}

	r.currentStatic = enclosingStatic

	r.define(stmt.Name)
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)

	case *ast.LiteralExpr:
		// nothing to resolve

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if entry, ok := r.peekScope().entries[e.Name.Lexeme]; ok && !entry.defined {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.SetExpr:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Value)

	case *ast.ThisExpr:
		if r.currentStatic != staticTypeNone {
			r.error(e.Keyword, "Can't use 'this' in a static method.")
			return
		}
		if r.currentClass == classTypeNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.SuperExpr:
		if r.currentStatic != staticTypeNone {
			r.error(e.Keyword, "Can't use 'super' in a static method.")
			return
		}
		if r.currentClass == classTypeNone {
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
			return
		}
		if r.currentClass != classTypeSubclass {
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	}
}

func (r *Resolver) resolveFunction(fun *ast.FunStmt, declaration functionType) {
	enclosing := r.currentFunction
	r.currentFunction = declaration

	r.beginScope(true)
	for _, param := range fun.Params {
		r.declare(param)
		r.define(param)
	}
	for _, stmt := range fun.Body.Statements {
		r.resolveStmt(stmt)
	}
	r.endScope()

	r.currentFunction = enclosing
}

// resolveLocal scans scopes innermost-out and records the distance of the
// first match. Unmatched names are left for the global environment.
func (r *Resolver) resolveLocal(expr ast.Expression, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if entry, ok := r.scopes[i].entries[name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			entry.used = true
			return
		}
	}
}

func (r *Resolver) beginScope(checkUnused bool) {
	r.scopes = append(r.scopes, &scope{entries: make(map[string]*scopeEntry), checkUnused: checkUnused})
}

func (r *Resolver) endScope() {
	top := r.peekScope()
	if top.checkUnused {
		for _, entry := range top.entries {
			if !entry.used {
				r.warnings = append(r.warnings, errors.WarnAtToken(entry.name, "Variable unused."))
			}
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() *scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.peekScope()
	if _, ok := top.entries[name.Lexeme]; ok {
		r.error(name, "Already declared a variable with this name in this scope.")
		return
	}
	top.entries[name.Lexeme] = &scopeEntry{name: name}
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	if entry, ok := r.peekScope().entries[name.Lexeme]; ok {
		entry.defined = true
	}
}

// inject adds a synthetic binding (this/super) already defined and used.
func (r *Resolver) inject(name string, token lexer.Token) {
	r.peekScope().entries[name] = &scopeEntry{name: token, defined: true, used: true}
}

func (r *Resolver) error(token lexer.Token, message string) {
	r.errors = append(r.errors, errors.AtToken(token, message))
}
