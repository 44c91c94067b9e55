package term

import (
	"testing"

	"github.com/black-sat/black/internal/label"
)

func TestConstantsAreInterned(t *testing.T) {
	p := NewPool()
	if p.Integer(3) != p.Integer(3) {
		t.Fatal("Integer(3) not interned")
	}
	if p.Boolean(true) == p.Boolean(false) {
		t.Fatal("Boolean(true) and Boolean(false) must not collide")
	}
}

func TestConjunctionInterningIsOrderSensitive(t *testing.T) {
	p := NewPool()
	a := p.Boolean(true)
	b := p.Integer(1)

	c1 := p.Conjunction(a, b)
	c2 := p.Conjunction(a, b)
	if c1 != c2 {
		t.Fatal("structurally identical conjunctions must be pointer-equal")
	}

	c3 := p.Conjunction(b, a)
	if c1 == c3 {
		t.Fatal("operand order must be significant")
	}
}

func TestObjectInterningIsEntityIdentity(t *testing.T) {
	p := NewPool()
	e1 := &Entity{Name: label.Of("p")}
	e2 := &Entity{Name: label.Of("p")}

	if p.Object(e1) != p.Object(e1) {
		t.Fatal("repeated Object() of the same entity must be pointer-equal")
	}
	if p.Object(e1) == p.Object(e2) {
		t.Fatal("distinct entities with the same name must not collide")
	}
}

func TestTemporalUnaryInterning(t *testing.T) {
	p := NewPool()
	inner := p.Boolean(true)
	if p.Eventually(inner) != p.Eventually(inner) {
		t.Fatal("Eventually(x) not interned")
	}
	if p.Eventually(inner) == p.Always(inner) {
		t.Fatal("Eventually and Always over the same operand must not collide")
	}
	if p.Yesterday(inner) == p.Tomorrow(inner) {
		t.Fatal("past and future duals must not collide")
	}
}

func TestBinderInterningRespectsDeclsAndBody(t *testing.T) {
	p := NewPool()
	decls := []Decl{{Name: label.Of("x")}}
	body := p.Boolean(true)

	f1 := p.Forall(decls, body)
	f2 := p.Forall([]Decl{{Name: label.Of("x")}}, body)
	if f1 != f2 {
		t.Fatal("structurally identical binders must be pointer-equal")
	}
	if f1 == p.Exists(decls, body) {
		t.Fatal("Forall and Exists over the same decls/body must not collide")
	}
}

func TestDistinctPoolsNeverShareIdentity(t *testing.T) {
	p1, p2 := NewPool(), NewPool()
	if p1.Boolean(true) == p2.Boolean(true) {
		t.Fatal("terms from distinct pools must not be pointer-equal")
	}
}

func TestSizeCountsCanonicalNodesOnce(t *testing.T) {
	p := NewPool()
	p.Boolean(true)
	p.Boolean(true)
	p.Boolean(false)
	if got, want := p.Size(), 2; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}
