package interp

import (
	"errors"

	"github.com/defpis/golox/internal/ast"
)

// Callable is the protocol shared by user functions, built-ins, and classes
// used as constructors.
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, arguments []Value) (Value, error)
}

// Function is a user-declared function or method together with the
// environment it closed over. IsInitializer marks methods named init, whose
// calls always evaluate to the bound receiver.
type Function struct {
	Declaration   *ast.FunStmt
	Closure       *Environment
	IsInitializer bool
}

// Type returns "FUNCTION".
func (f *Function) Type() string { return "FUNCTION" }

// String returns "<function NAME>".
func (f *Function) String() string {
	return "<function " + f.Declaration.Name.Lexeme + ">"
}

// Arity returns the declared parameter count.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Call binds the parameters in a fresh environment enclosing the closure and
// executes the body. A return signal from the body supplies the result; an
// initializer's result is always the receiver captured in its closure.
func (f *Function) Call(i *Interpreter, arguments []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Declaration.Params {
		env.Define(param.Lexeme, arguments[idx])
	}

	if err := i.executeBlock(f.Declaration.Body.Statements, env); err != nil {
		var ret *returnSignal
		if !errors.As(err, &ret) {
			return nil, err
		}
		if f.IsInitializer {
			return f.receiver()
		}
		return ret.value, nil
	}

	if f.IsInitializer {
		return f.receiver()
	}
	return &NilValue{}, nil
}

func (f *Function) receiver() (Value, error) {
	this, ok := f.Closure.GetAt(0, "this")
	if !ok {
		return nil, newRuntimeError(f.Declaration.Name, "Undefined variable 'this'.")
	}
	return this, nil
}

// Bind returns a copy of the function whose closure is a fresh environment
// wrapping the original, with this bound to the receiver. The binding
// environment sits at exactly the depth the resolver assigned to this.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// Builtin is a native function provided by the interpreter's global
// environment.
type Builtin struct {
	Name string
	N    int
	Fn   func(i *Interpreter, arguments []Value) (Value, error)
}

// Type returns "FUNCTION".
func (b *Builtin) Type() string { return "FUNCTION" }

// String returns "<function native-NAME>".
func (b *Builtin) String() string {
	return "<function native-" + b.Name + ">"
}

// Arity returns the builtin's parameter count.
func (b *Builtin) Arity() int { return b.N }

// Call invokes the native implementation.
func (b *Builtin) Call(i *Interpreter, arguments []Value) (Value, error) {
	return b.Fn(i, arguments)
}
