package interp

import (
	"testing"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", &NumberValue{Value: 1})

	v, ok := env.Get("a")
	if !ok {
		t.Fatal("expected a to be defined")
	}
	if v.String() != "1" {
		t.Errorf("expected 1, got %s", v)
	}

	if _, ok := env.Get("b"); ok {
		t.Error("expected b to be undefined")
	}
}

func TestEnvironmentChainLookup(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})

	inner := NewEnclosedEnvironment(outer)
	inner.Define("b", &NumberValue{Value: 2})

	if _, ok := inner.Get("a"); !ok {
		t.Error("expected inner scope to see outer binding")
	}
	if _, ok := outer.Get("b"); ok {
		t.Error("outer scope must not see inner binding")
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})

	inner := NewEnclosedEnvironment(outer)
	inner.Define("a", &NumberValue{Value: 2})

	v, _ := inner.Get("a")
	if v.String() != "2" {
		t.Errorf("expected shadowing binding, got %s", v)
	}
	v, _ = outer.Get("a")
	if v.String() != "1" {
		t.Errorf("expected outer binding untouched, got %s", v)
	}
}

func TestEnvironmentGetAt(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})

	middle := NewEnclosedEnvironment(outer)
	middle.Define("a", &NumberValue{Value: 2})

	inner := NewEnclosedEnvironment(middle)

	v, ok := inner.GetAt(2, "a")
	if !ok || v.String() != "1" {
		t.Errorf("expected outer binding at distance 2, got %v", v)
	}
	v, ok = inner.GetAt(1, "a")
	if !ok || v.String() != "2" {
		t.Errorf("expected middle binding at distance 1, got %v", v)
	}
	if _, ok := inner.GetAt(0, "a"); ok {
		t.Error("distance 0 must not search enclosing scopes")
	}
}

func TestEnvironmentAssign(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})
	inner := NewEnclosedEnvironment(outer)

	if !inner.Assign("a", &NumberValue{Value: 5}) {
		t.Fatal("expected assignment to outer binding to succeed")
	}
	v, _ := outer.Get("a")
	if v.String() != "5" {
		t.Errorf("expected 5, got %s", v)
	}

	if inner.Assign("missing", &NilValue{}) {
		t.Error("assigning an undefined name must fail")
	}
}

func TestEnvironmentAssignAt(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})

	middle := NewEnclosedEnvironment(outer)
	middle.Define("a", &NumberValue{Value: 2})

	inner := NewEnclosedEnvironment(middle)
	inner.AssignAt(2, "a", &NumberValue{Value: 9})

	v, _ := outer.GetAt(0, "a")
	if v.String() != "9" {
		t.Errorf("expected 9 in the outer scope, got %s", v)
	}
	v, _ = middle.GetAt(0, "a")
	if v.String() != "2" {
		t.Errorf("expected middle binding untouched, got %s", v)
	}
}

func TestEnvironmentDepth(t *testing.T) {
	outer := NewEnvironment()
	middle := NewEnclosedEnvironment(outer)
	inner := NewEnclosedEnvironment(middle)

	if outer.depth != 0 || middle.depth != 1 || inner.depth != 2 {
		t.Errorf("unexpected depths: %d %d %d", outer.depth, middle.depth, inner.depth)
	}
}
