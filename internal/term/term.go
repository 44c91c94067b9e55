package term

import (
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/types"
)

// Term is the single, immutable, hash-consed node type for every variant of
// spec.md §3.2. A node's Kind plus a small fixed set of optional fields
// determine its shape; see the accessor methods in accessors.go for the
// shape-appropriate view of a given Kind.
//
// Terms are never mutated after construction (Pool.intern returns the same
// *Term for structurally-identical input forever); equality is therefore
// pointer equality and hashing is the identity of the canonical pointer,
// satisfying spec.md §8 property 1.
type Term struct {
	kind Kind

	intVal  int64
	realVal float64
	boolVal bool

	varLabel label.Label
	obj      *Entity

	// a/b/c are reused across shapes:
	//   unary (negation, temporal, minus):      a = operand
	//   binary (implication, until, ..., /, <): a = left,  b = right
	//   ite:                                     a = guard, b = then, c = else
	//   atom:                                    a = head (operands in `operands`)
	//   error:                                   a = inner term
	a, b, c *Term

	// operands holds n-ary children: conjunction/disjunction/sum/product
	// operands, equal/distinct operands, and atom arguments.
	operands []*Term

	// binder fields (forall/exists/lambda)
	decls []Decl
	body  *Term

	message string
}

// Kind returns the term's variant tag.
func (t *Term) Kind() Kind { return t.kind }

// Decl is a (label, type) pair bound by a quantifier or lambda (spec.md
// §3.2).
type Decl struct {
	Name label.Label
	Type *types.Type
}

// Entity is a named, typed, optionally-valued module member (spec.md §3.4).
// It lives in this package (rather than the module package that owns it)
// because the Object term variant holds a direct, non-owning pointer to
// one — Go has no forward-declared types across packages, so the type that
// both `term.Term` and `module.Root` need to share must live wherever the
// tighter reference (Object -> Entity) is. The module package is still the
// sole owner: it is the only code that constructs and appends Entities to
// Roots (see internal/module).
type Entity struct {
	Name  label.Label
	Type  *types.Type
	Value *Term // nil => declaration, non-nil => definition
}

// IsDeclaration reports whether the entity carries no value.
func (e *Entity) IsDeclaration() bool { return e.Value == nil }
