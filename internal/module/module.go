package module

import (
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/typecheck"
	"github.com/black-sat/black/internal/types"
)

// Module is an ordered action log plus a persistent projection of it
// (spec.md §3.6, §4.5): a flat set of named Roots, a flat resolution map from
// label key to resolved Entity (spanning every Root, since names are
// resolved module-wide once declared), and a requirement list. Push/Pop
// snapshot and restore the resolution map in O(log n) via the structural
// sharing of github.com/benbjohnson/immutable's persistent Map — the
// library this module is wired to specifically because a Go map has no
// cheap immutable snapshot, and the teacher's own persistent module state
// (internal/link's environment chaining) only chains parent pointers
// rather than sharing structure at the leaf level.
type Module struct {
	Name string

	state *immutable.Map[string, *term.Entity]
	roots map[string]*Root

	log          []Action
	marks        []moduleMark
	requirements []*term.Term

	hasher stringHasher
}

// moduleMark is a Push snapshot: enough to restore state, roots, and
// requirements to exactly what they were.
type moduleMark struct {
	state        *immutable.Map[string, *term.Entity]
	roots        map[string]*Root
	requirements []*term.Term
	logLen       int
}

// New creates an empty, named Module.
func New(name string) *Module {
	h := newStringHasher()
	return &Module{
		Name:   name,
		state:  immutable.NewMap[string, *term.Entity](h),
		roots:  make(map[string]*Root),
		hasher: h,
	}
}

func (m *Module) root(name string, mode Mode) *Root {
	r, ok := m.roots[name]
	if !ok {
		r = NewRoot(mode)
		m.roots[name] = r
	}
	return r
}

func (m *Module) cloneRoots() map[string]*Root {
	next := make(map[string]*Root, len(m.roots))
	for k, v := range m.roots {
		next[k] = v
	}
	return next
}

// Declare adds an undefined entity (spec.md §4.5 "declare") to rootName,
// creating the Root with the given Mode on first use.
func (m *Module) Declare(rootName string, mode Mode, name label.Label, ty *types.Type) (*term.Entity, error) {
	m.root(rootName, mode) // ensure the root exists with the requested mode
	e := &term.Entity{Name: name, Type: ty}
	m.apply(Action{Kind: ActionDeclare, RootName: rootName, Entity: e})
	return e, nil
}

// Define records name := value as a defined member of rootName. value is
// type-checked in every Mode and its inferred type becomes the entity's
// Type (MOD001 if it does not type-check); it is not compared with a type
// given by an earlier Declare of the same name. If the root's Mode is
// ModeForbidden, value must not close a reference cycle among the root's
// entities (MOD002); references to members that do not lead back to name
// are accepted. In a ModeAllowed root, value may reference a sibling entity's label directly
// (spec.md §3.5's mutual recursion, tied later by Root.closed) as long as
// that sibling already has a Type on record from an earlier Declare/Define
// in the same root — the type check below is against that root-local
// environment rather than the empty one ModeForbidden uses.
func (m *Module) Define(rootName string, mode Mode, name label.Label, value *term.Term) (*term.Entity, error) {
	r := m.root(rootName, mode)

	ty := typeOfInRoot(r, value, mode)
	if ty.IsError() {
		return nil, errors.Wrap(errors.New("module", errors.MOD001, ty.ErrorMessage(), map[string]any{
			"entity": name.String(),
		}))
	}

	e := &term.Entity{Name: name, Type: ty, Value: value}

	if r.Mode == ModeForbidden {
		candidate := append(append([]*term.Entity(nil), r.Entities()...), e)
		if sccs := detectRecursion(candidate); len(sccs) > 0 {
			return nil, errors.Wrap(errors.New("module", errors.MOD002, fmt.Sprintf("mode=forbidden root %q: recursive reference in %s", rootName, name), map[string]any{
				"root": rootName, "entity": name.String(),
			}))
		}
	}

	m.apply(Action{Kind: ActionDefine, RootName: rootName, Entity: e})
	return e, nil
}

// typeOfInRoot checks value the way Define requires: ModeForbidden gets the
// plain, environment-free check (a reference to any other name is simply
// unbound, which is the MOD001 behavior Define already relied on before a
// root's Mode mattered to type checking); ModeAllowed additionally binds
// every sibling entity r already holds to its declared Type, so a body can
// name a not-yet-defined (but already Declared/Defined) sibling by label.
func typeOfInRoot(r *Root, value *term.Term, mode Mode) *types.Type {
	if mode != ModeAllowed {
		return typecheck.TypeOf(value)
	}
	vars := make(map[string]*types.Type, len(r.Entities()))
	for _, e := range r.Entities() {
		if e.Type != nil {
			vars[e.Name.Key()] = e.Type
		}
	}
	return typecheck.TypeOfWithVars(value, vars)
}

// Adopt copies every resolved entity of other into m (spec.md §3.6
// "adopt"), grouped into a single ModeForbidden root named after other's
// Name so a later FromModule hands the whole group to a Consumer in one
// Consumer.Adopt call (spec.md §4.6), exactly as if it had been declared
// here directly; a name already present in m is overwritten, matching the
// teacher's builtin_module.go seeding semantics (a later adopt wins, since
// adopt models importing a whole compiled unit wholesale rather than
// merging field-by-field).
func (m *Module) Adopt(other *Module) {
	entities := other.AllEntities()
	m.apply(Action{Kind: ActionAdopt, RootName: other.Name, Adopted: entities})
}

// Resolved looks up a name across every Root of m.
func (m *Module) Resolved(name label.Label) (*term.Entity, bool) {
	return m.state.Get(name.Key())
}

// Roots returns every Root m holds, in first-use order (the order each
// root name first appears in the action log), each reflecting its current
// state (entities added after a later Pop are absent, per the same
// clone-then-replace semantics Declare/Define use). FromModule drives
// this, not AllEntities, so a Consumer.Adopt call sees a whole Root's
// entities and Mode together (spec.md §4.6) instead of a flattened
// cross-root entity stream.
func (m *Module) Roots() []*Root {
	seen := make(map[string]bool, len(m.roots))
	var order []string
	for _, a := range m.log {
		switch a.Kind {
		case ActionDeclare, ActionDefine, ActionAdopt:
			if !seen[a.RootName] {
				seen[a.RootName] = true
				order = append(order, a.RootName)
			}
		}
	}
	out := make([]*Root, 0, len(order))
	for _, name := range order {
		if r, ok := m.roots[name]; ok {
			out = append(out, r.closed())
		}
	}
	return out
}

// AllEntities returns every resolved entity across all roots, in a stable
// order (root declaration order within the module, root names in
// first-use order).
func (m *Module) AllEntities() []*term.Entity {
	var out []*term.Entity
	seen := make(map[string]bool)
	for _, a := range m.log {
		switch a.Kind {
		case ActionDeclare, ActionDefine:
			key := a.Entity.Name.Key()
			if !seen[key] {
				seen[key] = true
				out = append(out, a.Entity)
			} else {
				for i, e := range out {
					if e.Name.Key() == key {
						out[i] = a.Entity
					}
				}
			}
		case ActionAdopt:
			for _, e := range a.Adopted {
				key := e.Name.Key()
				if !seen[key] {
					seen[key] = true
					out = append(out, e)
				}
			}
		}
	}
	return out
}

// Require adds formula to the module's requirement list (spec.md §4.5);
// formula must type to Bool (MOD004).
func (m *Module) Require(formula *term.Term) error {
	ty := typecheck.TypeOf(formula)
	if ty.IsError() {
		return errors.Wrap(errors.New("module", errors.MOD004, ty.ErrorMessage(), nil))
	}
	if ty.Kind() != types.KindBoolean {
		return errors.Wrap(errors.New("module", errors.MOD004, fmt.Sprintf("require: expected Bool, got %s", ty), nil))
	}
	m.apply(Action{Kind: ActionRequire, Formula: formula})
	return nil
}

// Requirements returns the module's accumulated requirement formulas.
func (m *Module) Requirements() []*term.Term {
	return append([]*term.Term(nil), m.requirements...)
}

// Push snapshots the current state so a later Pop can restore it
// (spec.md §4.5). The resolution map is captured in O(1) thanks to the
// persistent map's structural sharing; the roots map (plain Go map of
// *Root) and the requirement slice are shallow-copied, the roots map since Root mutation always goes through put on the
// Module's apply path, never in place on a shared Root.
func (m *Module) Push() {
	m.marks = append(m.marks, moduleMark{
		state:        m.state,
		roots:        m.cloneRoots(),
		requirements: append([]*term.Term(nil), m.requirements...),
		logLen:       len(m.log),
	})
	m.log = append(m.log, Action{Kind: ActionPush})
}

// Pop restores the state from n Push calls ago (MOD003 if n exceeds the
// current push depth).
func (m *Module) Pop(n int) error {
	if n <= 0 {
		return nil
	}
	if n > len(m.marks) {
		return errors.Wrap(errors.New("module", errors.MOD003, fmt.Sprintf("pop(%d) exceeds push depth %d", n, len(m.marks)), nil))
	}
	target := m.marks[len(m.marks)-n]
	m.state = target.state
	m.roots = target.roots
	m.requirements = target.requirements
	m.marks = m.marks[:len(m.marks)-n]
	m.log = m.log[:target.logLen]
	return nil
}

// Depth returns the current push-stack depth.
func (m *Module) Depth() int { return len(m.marks) }

// Log returns the module's action log, for Replay or inspection.
func (m *Module) Log() []Action { return append([]Action(nil), m.log...) }

// apply is the single choke point that both mutates the live projection
// and appends to the log, so Log() is always exactly what produced the
// current state.
func (m *Module) apply(a Action) {
	switch a.Kind {
	case ActionDeclare, ActionDefine:
		// Clone-then-replace rather than mutating the existing *Root in
		// place: a Push snapshot holds the same *Root pointer until a
		// later action touches it, so mutating in place would leak
		// through to state Pop is supposed to restore.
		existing := m.root(a.RootName, ModeForbidden)
		cloned := existing.clone()
		cloned.put(a.Entity)
		m.roots[a.RootName] = cloned
		m.state = m.state.Set(a.Entity.Name.Key(), a.Entity)
	case ActionAdopt:
		root := m.root(a.RootName, ModeForbidden).clone()
		for _, e := range a.Adopted {
			root.put(e)
			m.state = m.state.Set(e.Name.Key(), e)
		}
		m.roots[a.RootName] = root
	case ActionRequire:
		m.requirements = append(m.requirements, a.Formula)
	}
	m.log = append(m.log, a)
}

// Replay rebuilds a fresh Module from log by reapplying every action in
// order, Push and Pop markers included (Pop drops a popped scope's actions
// and its Push marker from the log, so a live module's log only holds the
// markers of still-open scopes) — this is spec.md §8's replay-determinism property:
// Replay(m).Resolved(x) == m.Resolved(x) for every resolved x, and the
// rebuilt module's Log() is byte-for-byte m.Log().
func Replay(log []Action) *Module {
	m := New("")
	for _, a := range log {
		switch a.Kind {
		case ActionDeclare, ActionDefine, ActionAdopt, ActionRequire:
			m.apply(a)
		case ActionPush:
			m.Push()
		case ActionPop:
			_ = m.Pop(a.PopCount)
		}
	}
	return m
}
