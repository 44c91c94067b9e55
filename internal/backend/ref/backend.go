// Package ref implements the reference, brute-force, finite-domain decision
// procedure spec.md §6 describes as the thing a real CVC5/SMT-LIB adapter
// plugs in behind (a concrete such binding is explicitly out of scope per
// spec.md §1's Non-goals). It satisfies backend.Consumer end-to-end so the
// solver facade, and spec.md §8's S4/S6 scenarios, have something real to
// drive.
//
// The decision procedure only covers the boolean-propositional fragment a
// pipeline.SurrogateEncoder chain produces: every temporal operator has
// already been rewritten to a boolean surrogate plus init/transition/final
// facts (spec.md §4.7) by the time a formula reaches Backend.State, so
// Decide only ever needs to search over boolean valuations of a bounded
// trace. A formula that still mentions a non-boolean atom, a quantifier, or
// anything else outside that fragment makes the corresponding check
// unsupported (see ground.go's holdsAt) and Decide reports Unknown rather
// than guessing — exactly spec.md §4.8's third verdict value.
package ref

import (
	"context"
	"fmt"

	"github.com/black-sat/black/internal/backend"
	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
)

type fact struct {
	kind    consumer.StateKind
	formula *term.Term
}

// Backend is the reference decision procedure. The zero value is not
// usable; construct with New.
type Backend struct {
	bound int

	entities []*term.Entity
	byKey    map[string]*term.Entity

	facts []fact

	entityMarks []int
	factMarks   []int

	model map[string]bool
	found bool
}

// New returns a Backend that searches bounded traces up to length bound
// (inclusive) before giving up and reporting Unsat. bound must be at least
// 1; a bound of 0 would mean no trace is ever tried.
func New(bound int) *Backend {
	if bound < 1 {
		bound = 1
	}
	return &Backend{bound: bound, byKey: make(map[string]*term.Entity)}
}

func (b *Backend) Import(e *term.Entity) error {
	key := e.Name.Key()
	if _, exists := b.byKey[key]; !exists {
		b.entities = append(b.entities, e)
	}
	b.byKey[key] = e
	b.found = false
	return nil
}

// Adopt has no define-funs-rec-shaped batching to do — this reference
// decision procedure only ever searches boolean valuations, so a
// mode=allowed root's tied values (already resolved by the time they
// reach here, see module.Root.closed) are asserted exactly like any other
// root's via consumer.ImportRoot.
func (b *Backend) Adopt(root *module.Root) error {
	return consumer.ImportRoot(b, root)
}

func (b *Backend) State(kind consumer.StateKind, formula *term.Term) error {
	b.facts = append(b.facts, fact{kind, formula})
	b.found = false
	return nil
}

func (b *Backend) Push() error {
	b.entityMarks = append(b.entityMarks, len(b.entities))
	b.factMarks = append(b.factMarks, len(b.facts))
	return nil
}

func (b *Backend) Pop(n int) error {
	if n <= 0 {
		return nil
	}
	if n > len(b.factMarks) {
		return errors.Wrap(errors.New("backend", errors.SOLV003,
			fmt.Sprintf("pop(%d) exceeds push depth %d", n, len(b.factMarks)), nil))
	}
	var entityMark, factMark int
	for ; n > 0; n-- {
		entityMark = b.entityMarks[len(b.entityMarks)-1]
		factMark = b.factMarks[len(b.factMarks)-1]
		b.entityMarks = b.entityMarks[:len(b.entityMarks)-1]
		b.factMarks = b.factMarks[:len(b.factMarks)-1]
	}
	for _, e := range b.entities[entityMark:] {
		delete(b.byKey, e.Name.Key())
	}
	b.entities = b.entities[:entityMark]
	b.facts = b.facts[:factMark]
	b.found = false
	return nil
}

func (b *Backend) booleanAtoms() []*term.Entity {
	var atoms []*term.Entity
	for _, e := range b.entities {
		if e.Type != nil && e.Type.Kind() == types.KindBoolean {
			atoms = append(atoms, e)
		}
	}
	formulas := make([]*term.Term, len(b.facts))
	for i, f := range b.facts {
		formulas[i] = f.formula
	}
	return atomPriority(formulas, atoms)
}

// Decide runs a brute-force search over traces of length 1..b.bound. See
// the package doc comment for the fragment it can decide.
func (b *Backend) Decide(ctx context.Context) (backend.Verdict, error) {
	atoms := b.booleanAtoms()
	keys := make([]string, len(atoms))
	for i, e := range atoms {
		keys[i] = e.Name.Key()
	}

	unsupported := false
	for length := 1; length <= b.bound; length++ {
		states := make([]map[string]bool, length)
		for i := range states {
			states[i] = make(map[string]bool, len(keys))
		}

		var rec func(state, idx int) (bool, error)
		rec = func(state, idx int) (bool, error) {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			default:
			}
			if idx == len(keys) {
				if state+1 < length {
					return rec(state+1, 0)
				}
				ok, supported := b.verify(states)
				if !supported {
					unsupported = true
					return false, nil
				}
				return ok, nil
			}
			for _, v := range []bool{false, true} {
				states[state][keys[idx]] = v
				ok, err := rec(state, idx+1)
				if err != nil || ok {
					return ok, err
				}
			}
			delete(states[state], keys[idx])
			return false, nil
		}

		ok, err := rec(0, 0)
		if err != nil {
			return backend.Unknown, nil
		}
		if ok {
			b.model = cloneModel(states[0])
			b.found = true
			return backend.Sat, nil
		}
	}

	b.found = false
	if unsupported {
		return backend.Unknown, nil
	}
	return backend.Unsat, nil
}

// verify checks every fact against a fully-assigned trace. Init/Final
// facts are scoped to the trace's first/last state; Transition and
// Requirement facts are checked at every state (Transition's own Tomorrow/
// Yesterday shifts make it vacuous wherever it doesn't apply; Requirement
// facts are state-independent axioms so they must hold everywhere).
func (b *Backend) verify(states []map[string]bool) (holds bool, supported bool) {
	last := len(states) - 1
	for _, f := range b.facts {
		switch f.kind {
		case consumer.StateInit:
			v, ok := holdsAt(f.formula, states, 0)
			if !ok {
				return false, false
			}
			if !v {
				return false, true
			}
		case consumer.StateFinal:
			v, ok := holdsAt(f.formula, states, last)
			if !ok {
				return false, false
			}
			if !v {
				return false, true
			}
		case consumer.StateTransition, consumer.StateRequirement:
			for i := 0; i <= last; i++ {
				v, ok := holdsAt(f.formula, states, i)
				if !ok {
					return false, false
				}
				if !v {
					return false, true
				}
			}
		}
	}
	return true, true
}

// GetValue returns the boolean constant Decide's model assigned to e, if
// the last Decide call found one.
func (b *Backend) GetValue(e *term.Entity) (*term.Term, bool) {
	if !b.found || b.model == nil {
		return nil, false
	}
	v, ok := b.model[e.Name.Key()]
	if !ok {
		return nil, false
	}
	return term.Boolean(v), true
}

func cloneModel(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
