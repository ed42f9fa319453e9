package typing

import "testing"

func TestPrimEquiv(t *testing.T) {
	if !PrimI64.Equiv(PrimI64) {
		t.Error("a primitive should be equivalent to itself")
	}

	if PrimI32.Equiv(PrimI64) {
		t.Error("distinct primitives should not be equivalent")
	}

	if PrimI64.Equiv(&FuncType{ReturnType: PrimI64}) {
		t.Error("a primitive should not be equivalent to a function type")
	}
}

func TestFuncTypeEquiv(t *testing.T) {
	a := &FuncType{Args: []DataType{PrimI64, PrimF64}, ReturnType: PrimBool}
	b := &FuncType{Args: []DataType{PrimI64, PrimF64}, ReturnType: PrimBool}

	if !a.Equiv(b) {
		t.Error("structurally identical function types should be equivalent")
	}

	c := &FuncType{Args: []DataType{PrimI64}, ReturnType: PrimBool}
	if a.Equiv(c) {
		t.Error("arity should distinguish function types")
	}

	d := &FuncType{Args: []DataType{PrimI64, PrimF64}, ReturnType: PrimUnit}
	if a.Equiv(d) {
		t.Error("the return type should distinguish function types")
	}

	e := &FuncType{Args: []DataType{PrimF64, PrimI64}, ReturnType: PrimBool}
	if a.Equiv(e) {
		t.Error("argument order should distinguish function types")
	}
}

func TestRepr(t *testing.T) {
	tests := []struct {
		typ  DataType
		want string
	}{
		{PrimI32, "i32"},
		{PrimString, "string"},
		{PrimUnit, "unit"},
		{&FuncType{ReturnType: PrimUnit}, "() -> unit"},
		{&FuncType{Args: []DataType{PrimI64, PrimBool}, ReturnType: PrimF64}, "(i64, bool) -> f64"},
	}

	for _, tc := range tests {
		if got := tc.typ.Repr(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestPredicates(t *testing.T) {
	if !IsUnit(PrimUnit) || IsUnit(PrimI64) {
		t.Error("IsUnit should hold exactly for unit")
	}

	if !IsInteger(PrimI32) || !IsInteger(PrimI64) || IsInteger(PrimF64) {
		t.Error("IsInteger should hold exactly for the integral primitives")
	}
}
