// Package interp provides the tree-walking evaluator and runtime for Lox.
package interp

import (
	"strconv"
	"strings"
)

// Value represents a runtime value. All runtime values implement this
// interface; there is no interface{} boxing anywhere in the evaluator.
type Value interface {
	// Type returns the type name of the value (e.g. "NUMBER", "STRING").
	Type() string
	// String returns the print rendering of the value.
	String() string
}

// NilValue represents nil.
type NilValue struct{}

// Type returns "NIL".
func (v *NilValue) Type() string { return "NIL" }

// String returns "nil".
func (v *NilValue) String() string { return "nil" }

// BooleanValue represents a boolean value.
type BooleanValue struct {
	Value bool
}

// Type returns "BOOLEAN".
func (v *BooleanValue) Type() string { return "BOOLEAN" }

// String returns "true" or "false".
func (v *BooleanValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// NumberValue represents a number. All numbers are IEEE-754 doubles.
type NumberValue struct {
	Value float64
}

// Type returns "NUMBER".
func (v *NumberValue) Type() string { return "NUMBER" }

// String renders the number with six fixed decimals, trimmed of trailing
// zeros and a trailing dot, so integers print without a fractional part.
func (v *NumberValue) String() string {
	return trimNumberString(strconv.FormatFloat(v.Value, 'f', 6, 64))
}

// trimNumberString removes redundant trailing zeros and the decimal point
// from a fixed-notation float rendering.
func trimNumberString(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// StringValue represents a string value. Strings are raw byte sequences.
type StringValue struct {
	Value string
}

// Type returns "STRING".
func (v *StringValue) Type() string { return "STRING" }

// String returns the string itself.
func (v *StringValue) String() string { return v.Value }

// isTruthy projects a value onto a boolean: nil is false, booleans are
// themselves, numbers are non-zero, strings are non-empty, every object is
// true.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case *NilValue, nil:
		return false
	case *BooleanValue:
		return val.Value
	case *NumberValue:
		return val.Value != 0
	case *StringValue:
		return val.Value != ""
	default:
		return true
	}
}

// isPrimitive reports whether the value takes part in coercing equality.
func isPrimitive(v Value) bool {
	switch v.(type) {
	case *NilValue, *BooleanValue, *NumberValue, *StringValue:
		return true
	default:
		return false
	}
}

// asNumber coerces a primitive to a number: nil is 0, booleans are 0 or 1,
// strings must parse as numbers. The second result reports success.
func asNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case *NilValue:
		return 0, true
	case *BooleanValue:
		if val.Value {
			return 1, true
		}
		return 0, true
	case *NumberValue:
		return val.Value, true
	case *StringValue:
		n, err := strconv.ParseFloat(val.Value, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// isEqual implements `==`. Two primitives are equal when any of their string
// forms, successfully coerced numeric forms, or truthiness projections
// agree. Objects compare by reference identity; an object never equals a
// primitive.
func isEqual(a, b Value) bool {
	if isPrimitive(a) && isPrimitive(b) {
		if a.String() == b.String() {
			return true
		}
		na, aok := asNumber(a)
		nb, bok := asNumber(b)
		if aok && bok && na == nb {
			return true
		}
		return isTruthy(a) == isTruthy(b)
	}
	return a == b
}
