package interp

import (
	"time"
)

// registerBuiltins seeds the global environment with the native functions.
func (i *Interpreter) registerBuiltins() {
	i.globals.Define("clock", &Builtin{
		Name: "clock",
		N:    0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return &NumberValue{Value: float64(time.Now().UnixMilli())}, nil
		},
	})

	i.globals.Define("count", &Builtin{
		Name: "count",
		N:    0,
		Fn: func(in *Interpreter, _ []Value) (Value, error) {
			in.counter++
			return &NumberValue{Value: float64(in.counter)}, nil
		},
	})
}
