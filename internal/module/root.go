// Package module implements the scoped, possibly-recursive declaration
// store of spec.md §3.5/§3.6/§4.5: Root (a flat namespace of Entities
// under one recursion Mode) and Module (an ordered log of actions over one
// or more Roots, with persistent push/pop state).
package module

import (
	"github.com/black-sat/black/internal/eval"
	"github.com/black-sat/black/internal/term"
)

// Mode controls whether a Root's definitions may refer to each other
// (spec.md §3.5).
type Mode int

const (
	// ModeForbidden rejects any definition whose body closes a reference
	// cycle among the Root's entities, directly or transitively; this is
	// the default for ordinary top-level declarations.
	ModeForbidden Mode = iota
	// ModeAllowed permits mutual recursion among a Root's definitions,
	// resolved via eval.EvalRecursiveBindings when the Root is closed.
	ModeAllowed
)

func (m Mode) String() string {
	if m == ModeAllowed {
		return "allowed"
	}
	return "forbidden"
}

// Root is a flat, named collection of Entities sharing one recursion Mode
// (spec.md §3.5). A Root is built incrementally (Declare/Define):
// ModeForbidden roots reject a reference cycle at the Define that would
// close it, ModeAllowed roots have theirs resolved by closed(), running eval.EvalRecursiveBindings over
// every definition with a non-nil Value.
type Root struct {
	Mode     Mode
	entities map[string]*term.Entity
	order    []string
}

// NewRoot creates an empty Root with the given recursion mode.
func NewRoot(mode Mode) *Root {
	return &Root{Mode: mode, entities: make(map[string]*term.Entity)}
}

// Entities returns the Root's members in declaration order.
func (r *Root) Entities() []*term.Entity {
	out := make([]*term.Entity, len(r.order))
	for i, k := range r.order {
		out[i] = r.entities[k]
	}
	return out
}

// Lookup returns the entity named key (label.Label.Key()), if any.
func (r *Root) Lookup(key string) (*term.Entity, bool) {
	e, ok := r.entities[key]
	return e, ok
}

// put inserts or replaces an entity, recording first-insertion order.
func (r *Root) put(e *term.Entity) {
	key := e.Name.Key()
	if _, exists := r.entities[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entities[key] = e
}

// closed returns a view of r with a mode=allowed root's mutual recursion
// tied via eval.EvalRecursiveBindings (spec.md §3.5), as a fresh Root so
// the original (and any Push-held snapshot of it) is left untouched. A
// mode=forbidden root, having already passed detectRecursion at Define
// time, has no knot to tie and is returned unchanged — this is the single
// place that ties recursion, shared by Module.Roots() (so the solver path
// sees the tied values) and Resolver.CloseRecursiveRoot (so name
// resolution does too).
func (r *Root) closed() *Root {
	if r.Mode != ModeAllowed {
		return r
	}

	entities := r.Entities()
	var decls []term.Decl
	var bodies []*term.Term
	for _, e := range entities {
		if e.Value != nil {
			decls = append(decls, term.Decl{Name: e.Name, Type: e.Type})
			bodies = append(bodies, e.Value)
		}
	}
	resolved := eval.EvalRecursiveBindings(decls, bodies)

	out := NewRoot(r.Mode)
	for _, e := range entities {
		if v, ok := resolved[e.Name.Key()]; ok {
			out.put(&term.Entity{Name: e.Name, Type: e.Type, Value: v})
		} else {
			out.put(e)
		}
	}
	return out
}

// clone returns a shallow copy of r, used when a Module snapshot needs to
// mutate a Root without disturbing a previously-pushed state (Push
// shallow-copies Module's plain map of names -> *Root, so Push/Pop never
// needs to clone a Root that hasn't changed — see module.go).
func (r *Root) clone() *Root {
	n := &Root{Mode: r.Mode, entities: make(map[string]*term.Entity, len(r.entities)), order: append([]string(nil), r.order...)}
	for k, v := range r.entities {
		n.entities[k] = v
	}
	return n
}
