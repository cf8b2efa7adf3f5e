package interp

import (
	"fmt"
	"io"
	"math"

	"github.com/defpis/golox/internal/ast"
	"github.com/defpis/golox/internal/lexer"
)

// Interpreter executes resolved Lox programs. It owns the global environment
// (seeded with the built-ins), tracks the active environment, and reads the
// resolver's distance map. One interpreter instance persists across REPL
// inputs, so globals survive between runs.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expression]int
	output  io.Writer
	counter int
}

// New creates an Interpreter writing program output to output.
func New(output io.Writer) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[ast.Expression]int),
		output:  output,
	}
	i.registerBuiltins()
	return i
}

// Interpret executes the program against the given resolution map. The
// map's entries are merged into the interpreter's store: expression nodes
// from earlier runs keep their distances, so functions and classes defined
// on previous REPL lines stay callable. The first runtime error aborts the
// run and is returned.
func (i *Interpreter) Interpret(program *ast.Program, locals map[ast.Expression]int) error {
	for expr, distance := range locals {
		i.locals[expr] = distance
	}

	for _, stmt := range program.Statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Globals returns the global environment.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

func (i *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.output, value.String())
		return nil

	case *ast.VarStmt:
		var value Value = &NilValue{}
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.env))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.ReturnStmt:
		var value Value = &NilValue{}
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.FunStmt:
		fn := &Function{Declaration: s, Closure: i.env}
		i.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ClassStmt:
		return i.executeClass(s)
	}

	return nil
}

// executeBlock runs statements in env and restores the previous active
// environment on every exit path, including return signals and runtime
// errors.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClass builds the runtime class object. The environment nesting
// mirrors the resolver: an optional environment holding super, then the
// class closure that receives this during construction. Instance methods
// close over the super-level environment; Bind supplies the this level at
// call time. Static members are evaluated in the declaring environment and
// stored as fields on the class itself.
func (i *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		sv, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	methodEnv := i.env
	if superclass != nil {
		methodEnv = NewEnclosedEnvironment(i.env)
		methodEnv.Define("super", superclass)
	}
	closure := NewEnclosedEnvironment(methodEnv)

	methods := make(map[string]*Function)
	setters := make(map[string]*Function)
	for _, m := range s.Instance.Methods {
		fn := &Function{
			Declaration:   m,
			Closure:       methodEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
		if m.Modifier == ast.ModifierSetter {
			setters[m.Name.Lexeme] = fn
		} else {
			methods[m.Name.Lexeme] = fn
		}
	}

	class := &Class{
		Name:       s.Name,
		Superclass: superclass,
		Methods:    methods,
		Setters:    setters,
		Variables:  s.Instance.Variables,
		Closure:    closure,
		Fields:     make(map[string]Value),
	}

	for _, variable := range s.Static.Variables {
		var value Value = &NilValue{}
		if variable.Initializer != nil {
			v, err := i.evaluate(variable.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		class.Fields[variable.Name.Lexeme] = value
	}
	for _, method := range s.Static.Methods {
		class.Fields[method.Name.Lexeme] = &Function{Declaration: method, Closure: i.env}
	}

	i.env.Define(s.Name.Lexeme, class)
	return nil
}

func (i *Interpreter) evaluate(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.GroupingExpr:
		return i.evaluate(e.Expression)

	case *ast.UnaryExpr:
		return i.evaluateUnary(e)

	case *ast.BinaryExpr:
		return i.evaluateBinary(e)

	case *ast.LogicalExpr:
		return i.evaluateLogical(e)

	case *ast.VariableExpr:
		return i.lookUpVariable(e.Name, e)

	case *ast.AssignExpr:
		return i.evaluateAssign(e)

	case *ast.CallExpr:
		return i.evaluateCall(e)

	case *ast.GetExpr:
		object, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		return i.getProperty(object, e.Name)

	case *ast.SetExpr:
		return i.evaluateSet(e)

	case *ast.ThisExpr:
		return i.lookUpVariable(e.Keyword, e)

	case *ast.SuperExpr:
		return i.evaluateSuper(e)
	}

	return nil, fmt.Errorf("unexpected expression %T", expr)
}

// literalValue boxes a parsed literal into a runtime value.
func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return &NilValue{}
	case bool:
		return &BooleanValue{Value: val}
	case float64:
		return &NumberValue{Value: val}
	case string:
		return &StringValue{Value: val}
	default:
		return &NilValue{}
	}
}

func (i *Interpreter) evaluateUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.BANG:
		return &BooleanValue{Value: !isTruthy(right)}, nil
	case lexer.MINUS:
		n, ok := right.(*NumberValue)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return &NumberValue{Value: -n.Value}, nil
	case lexer.PLUS:
		n, ok := right.(*NumberValue)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return &NumberValue{Value: n.Value}, nil
	}

	return nil, newRuntimeError(e.Operator, "Unexpected operator type.")
}

func (i *Interpreter) evaluateBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.BANG_EQUAL:
		return &BooleanValue{Value: !isEqual(left, right)}, nil
	case lexer.EQUAL_EQUAL:
		return &BooleanValue{Value: isEqual(left, right)}, nil
	case lexer.PLUS:
		if ln, lok := left.(*NumberValue); lok {
			if rn, rok := right.(*NumberValue); rok {
				return &NumberValue{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, lok := left.(*StringValue); lok {
			if rs, rok := right.(*StringValue); rok {
				return &StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	}

	ln, lok := left.(*NumberValue)
	rn, rok := right.(*NumberValue)
	if !lok || !rok {
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers.")
	}

	switch e.Operator.Type {
	case lexer.MINUS:
		return &NumberValue{Value: ln.Value - rn.Value}, nil
	case lexer.STAR:
		return &NumberValue{Value: ln.Value * rn.Value}, nil
	case lexer.SLASH:
		if rn.Value == 0 {
			return nil, newRuntimeError(e.Operator, "Division by zero")
		}
		return &NumberValue{Value: ln.Value / rn.Value}, nil
	case lexer.STAR_STAR:
		return &NumberValue{Value: math.Pow(ln.Value, rn.Value)}, nil
	case lexer.GREATER:
		return &BooleanValue{Value: ln.Value > rn.Value}, nil
	case lexer.GREATER_EQUAL:
		return &BooleanValue{Value: ln.Value >= rn.Value}, nil
	case lexer.LESS:
		return &BooleanValue{Value: ln.Value < rn.Value}, nil
	case lexer.LESS_EQUAL:
		return &BooleanValue{Value: ln.Value <= rn.Value}, nil
	}

	return nil, newRuntimeError(e.Operator, "Unexpected operator type.")
}

// evaluateLogical short-circuits and yields the deciding operand itself,
// not a coerced boolean.
func (i *Interpreter) evaluateLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == lexer.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return i.evaluate(e.Right)
}

func (i *Interpreter) evaluateAssign(e *ast.AssignExpr) (Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[e]; ok {
		if e.ReturnOriginal {
			original, found := i.env.GetAt(distance, e.Name.Lexeme)
			if !found {
				return nil, newRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
			}
			i.env.AssignAt(distance, e.Name.Lexeme, value)
			return original, nil
		}
		i.env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}

	if e.ReturnOriginal {
		original, found := i.globals.Get(e.Name.Lexeme)
		if !found {
			return nil, newRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		i.globals.Assign(e.Name.Lexeme, value)
		return original, nil
	}
	if !i.globals.Assign(e.Name.Lexeme, value) {
		return nil, newRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateCall(e *ast.CallExpr) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		v, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(arguments))
	}

	return callable.Call(i, arguments)
}

func (i *Interpreter) evaluateSet(e *ast.SetExpr) (Value, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if e.ReturnOriginal {
		original, err := i.getProperty(object, e.Name)
		if err != nil {
			return nil, err
		}
		if _, err := i.setProperty(object, e.Name, value); err != nil {
			return nil, err
		}
		return original, nil
	}

	return i.setProperty(object, e.Name, value)
}

func (i *Interpreter) evaluateSuper(e *ast.SuperExpr) (Value, error) {
	distance, ok := i.locals[e]
	if !ok {
		return nil, newRuntimeError(e.Keyword, "Undefined variable 'super'.")
	}

	superValue, found := i.env.GetAt(distance, "super")
	if !found {
		return nil, newRuntimeError(e.Keyword, "Undefined variable 'super'.")
	}
	superclass, ok := superValue.(*Class)
	if !ok {
		return nil, newRuntimeError(e.Keyword, "Superclass must be a class.")
	}

	// The receiver lives one scope closer than super, by construction of
	// the class environment nesting.
	thisValue, found := i.env.GetAt(distance-1, "this")
	if !found {
		return nil, newRuntimeError(e.Keyword, "Undefined variable 'this'.")
	}
	instance, ok := thisValue.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Keyword, "Undefined variable 'this'.")
	}

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(e.Method, "Undefined property '%s' can't be get.", e.Method.Lexeme)
	}

	bound := method.Bind(instance)
	if method.Declaration.Modifier == ast.ModifierGetter {
		return bound.Call(i, nil)
	}
	return bound, nil
}

// lookUpVariable fetches a resolved reference at its recorded distance and
// falls back to the global environment for unresolved names.
func (i *Interpreter) lookUpVariable(name lexer.Token, expr ast.Expression) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		v, found := i.env.GetAt(distance, name.Lexeme)
		if !found {
			return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
		}
		return v, nil
	}

	v, found := i.globals.Get(name.Lexeme)
	if !found {
		return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

// getProperty reads a property from an instance or a class. Instance reads
// consult fields, then methods; getter methods are invoked immediately.
// Class reads serve static members from the class's own fields.
func (i *Interpreter) getProperty(object Value, name lexer.Token) (Value, error) {
	switch obj := object.(type) {
	case *Instance:
		if v, ok := obj.Fields[name.Lexeme]; ok {
			return v, nil
		}
		if method := obj.Class.FindMethod(name.Lexeme); method != nil {
			bound := method.Bind(obj)
			if method.Declaration.Modifier == ast.ModifierGetter {
				return bound.Call(i, nil)
			}
			return bound, nil
		}
		return nil, newRuntimeError(name, "Undefined property '%s' can't be get.", name.Lexeme)

	case *Class:
		if v, ok := obj.Fields[name.Lexeme]; ok {
			return v, nil
		}
		return nil, newRuntimeError(name, "Undefined property '%s' can't be get.", name.Lexeme)

	default:
		return nil, newRuntimeError(name, "Only classes and instances have properties.")
	}
}

// setProperty writes a property. Existing fields update in place; otherwise
// a matching setter runs with the value; otherwise the write creates a new
// field. A setter write evaluates to the setter's return value.
func (i *Interpreter) setProperty(object Value, name lexer.Token, value Value) (Value, error) {
	switch obj := object.(type) {
	case *Instance:
		if _, ok := obj.Fields[name.Lexeme]; ok {
			obj.Fields[name.Lexeme] = value
			return value, nil
		}
		if setter := obj.Class.FindSetter(name.Lexeme); setter != nil {
			return setter.Bind(obj).Call(i, []Value{value})
		}
		obj.Fields[name.Lexeme] = value
		return value, nil

	case *Class:
		obj.Fields[name.Lexeme] = value
		return value, nil

	default:
		return nil, newRuntimeError(name, "Only classes and instances have properties.")
	}
}
