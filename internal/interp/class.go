package interp

import (
	"github.com/defpis/golox/internal/ast"
	"github.com/defpis/golox/internal/lexer"
)

// Class is a runtime class object. It doubles as the constructor callable
// and as a property target for static members, which live in Fields.
//
// Methods holds instance methods and getters; setters live in their own map
// so a getter and a setter may share a property name. Variables are the
// instance attribute declarations, evaluated against Closure at
// construction time. Closure wraps the environment holding super (when
// present) and receives the this binding during construction, mirroring the
// resolver's class scope nesting.
type Class struct {
	Name       lexer.Token
	Superclass *Class
	Methods    map[string]*Function
	Setters    map[string]*Function
	Variables  []*ast.VarStmt
	Closure    *Environment
	Fields     map[string]Value
}

// Type returns "CLASS".
func (c *Class) Type() string { return "CLASS" }

// String returns "<class NAME>".
func (c *Class) String() string {
	return "<class " + c.Name.Lexeme + ">"
}

// FindMethod looks up an instance method or getter, walking the superclass
// chain.
func (c *Class) FindMethod(name string) *Function {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// FindSetter looks up a setter method, walking the superclass chain.
func (c *Class) FindSetter(name string) *Function {
	if method, ok := c.Setters[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindSetter(name)
	}
	return nil
}

// Arity is the init method's arity, or zero for classes without one.
func (c *Class) Arity() int {
	if initializer := c.FindMethod("init"); initializer != nil {
		return initializer.Arity()
	}
	return 0
}

// Call constructs an instance: run init when present, then evaluate the
// instance variable initializers in the class closure with this bound to
// the new instance. Initializer results overwrite fields init wrote.
func (c *Class) Call(i *Interpreter, arguments []Value) (Value, error) {
	instance := NewInstance(c)

	if initializer := c.FindMethod("init"); initializer != nil {
		if _, err := initializer.Bind(instance).Call(i, arguments); err != nil {
			return nil, err
		}
	}

	c.Closure.Define("this", instance)

	previous := i.env
	i.env = c.Closure
	defer func() { i.env = previous }()

	for _, variable := range c.Variables {
		var value Value = &NilValue{}
		if variable.Initializer != nil {
			v, err := i.evaluate(variable.Initializer)
			if err != nil {
				return nil, err
			}
			value = v
		}
		if _, err := i.setProperty(instance, variable.Name, value); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// Instance is a runtime object: a reference to its class plus its fields.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance creates an instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// Type returns "INSTANCE".
func (o *Instance) Type() string { return "INSTANCE" }

// String returns "<instance of NAME>".
func (o *Instance) String() string {
	return "<instance of " + o.Class.Name.Lexeme + ">"
}
