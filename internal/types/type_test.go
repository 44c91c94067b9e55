package types

import "testing"

func TestNullaryTypesAreSingletons(t *testing.T) {
	p := NewPool()
	if p.Boolean() != p.Boolean() {
		t.Fatal("Boolean() not interned")
	}
	if p.Integer() == p.Real() {
		t.Fatal("Integer and Real must not collide")
	}
}

func TestFunctionTypeInterning(t *testing.T) {
	p := NewPool()
	params := []*Type{p.Integer(), p.Boolean()}
	a := p.Function(params, p.Real())
	b := p.Function([]*Type{p.Integer(), p.Boolean()}, p.Real())
	if a != b {
		t.Fatal("structurally identical function types must be pointer-equal")
	}
	c := p.Function([]*Type{p.Boolean(), p.Integer()}, p.Real())
	if a == c {
		t.Fatal("parameter order must be significant")
	}
}

func TestErrorTypeCarriesMessage(t *testing.T) {
	p := NewPool()
	e := p.Error(p.Boolean(), "expected Int")
	if !e.IsError() {
		t.Fatal("IsError false for Error type")
	}
	if e.ErrorMessage() != "expected Int" {
		t.Fatalf("got message %q", e.ErrorMessage())
	}
	if e.ErrorInner() != p.Boolean() {
		t.Fatal("ErrorInner mismatch")
	}
}

func TestDistinctPoolsNeverShareIdentity(t *testing.T) {
	p1, p2 := NewPool(), NewPool()
	if p1.Boolean() == p2.Boolean() {
		t.Fatal("types from distinct pools must not be pointer-equal")
	}
}

func TestStringRendering(t *testing.T) {
	p := NewPool()
	fn := p.Function([]*Type{p.Integer()}, p.Boolean())
	if got, want := fn.String(), "(Int) -> Bool"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
