package module

import (
	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/eval"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
)

// Resolver is the operation surface spec.md §4.5 names: Declare, Define,
// Adopt, Resolved, Require, Push, Pop, Replay, wrapping a Module and adding
// the two behaviors a bare Module doesn't do on its own — replacing a
// KindVariable reference with the KindObject the module resolved it to
// (ResolveTerm), and closing a ModeAllowed root by tying its recursive
// knot via eval.EvalRecursiveBindings once every sibling definition is in
// (CloseRecursiveRoot).
type Resolver struct {
	m *Module
}

// NewResolver wraps m (a fresh Module if m is nil).
func NewResolver(m *Module) *Resolver {
	if m == nil {
		m = New("")
	}
	return &Resolver{m: m}
}

// Module returns the underlying Module.
func (r *Resolver) Module() *Module { return r.m }

// Declare forwards to Module.Declare.
func (r *Resolver) Declare(rootName string, mode Mode, name label.Label, ty *types.Type) (*term.Entity, error) {
	return r.m.Declare(rootName, mode, name, ty)
}

// Define forwards to Module.Define.
func (r *Resolver) Define(rootName string, mode Mode, name label.Label, value *term.Term) (*term.Entity, error) {
	return r.m.Define(rootName, mode, name, value)
}

// Resolved looks up name and, if found, returns it; callers that need a
// RES001 diagnostic on failure should use Resolve instead.
func (r *Resolver) Resolved(name label.Label) (*term.Entity, bool) {
	return r.m.Resolved(name)
}

// Resolve looks up name, returning a RES001-coded error when the module
// has no entity by that name (spec.md §4.5, §7).
func (r *Resolver) Resolve(name label.Label) (*term.Entity, error) {
	e, ok := r.m.Resolved(name)
	if !ok {
		return nil, errors.Wrap(errors.New("resolver", errors.RES001, "unbound variable: "+name.String(), map[string]any{
			"name": name.String(),
		}))
	}
	return e, nil
}

// ResolveTerm replaces every free KindVariable reference in t with the
// KindObject of the module entity it resolves to, leaving any variable the
// module does not know about untouched (the caller's type checker then
// correctly reports it as unbound, per typecheck's own "unbound free
// variable" rule).
func (r *Resolver) ResolveTerm(t *term.Term) *term.Term {
	var decls []term.Decl
	var values []*term.Term
	for _, d := range term.FreeVariables(t) {
		if e, ok := r.m.Resolved(d.Name); ok {
			decls = append(decls, term.Decl{Name: d.Name})
			values = append(values, term.Object(e))
		}
	}
	if len(decls) == 0 {
		return t
	}
	return eval.Substitute(t, decls, values)
}

// Push/Pop/Require/Adopt forward directly to the underlying Module.
func (r *Resolver) Push()                      { r.m.Push() }
func (r *Resolver) Pop(n int) error            { return r.m.Pop(n) }
func (r *Resolver) Require(f *term.Term) error { return r.m.Require(f) }
func (r *Resolver) Adopt(other *Module)        { r.m.Adopt(other) }

// CloseRecursiveRoot resolves a ModeAllowed root's mutually-recursive
// definitions via eval.EvalRecursiveBindings and commits the evaluated
// values back as the entities' resolved values, returning the updated
// entities in the root's declaration order. Calling this on a
// ModeForbidden root is a no-op (its entities, having already passed
// detectRecursion at Define time, have no recursive knot to tie) and
// simply returns the root's current entities unchanged.
func (r *Resolver) CloseRecursiveRoot(rootName string) []*term.Entity {
	root, ok := r.m.roots[rootName]
	if !ok {
		return nil
	}

	closed := root.closed().Entities()
	for _, e := range closed {
		r.m.state = r.m.state.Set(e.Name.Key(), e)
	}
	return closed
}

// Replay rebuilds a Resolver's Module from its action log.
func (r *Resolver) Replay() *Resolver {
	return NewResolver(Replay(r.m.Log()))
}
