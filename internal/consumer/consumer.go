// Package consumer defines the sink interface spec.md §4.6/§6 describes:
// the narrow contract a backend (the bundled reference decision procedure,
// or — out of scope per spec.md §1's Non-goals — a real CVC5/SMT-LIB
// binding) must implement to receive a stream of logical statements from a
// pipeline.Producer. It deliberately mirrors a CVC5-style incremental
// solver API (Assert/Push/Pop) rather than a batch "solve this formula"
// call, since the pipeline streams statements incrementally as it
// transforms them (spec.md §2 component 7).
package consumer

import (
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/term"
)

// StateKind tags the four categories of state assertion a pipeline stage
// may hand a Consumer (spec.md §4.6): an initial-state constraint, a
// one-step transition relation, a constraint that holds only in a final
// state (bounded/finite traces), or a side requirement independent of any
// state (module.Module.Requirements()).
type StateKind int

const (
	StateInit StateKind = iota
	StateTransition
	StateFinal
	StateRequirement
)

func (k StateKind) String() string {
	switch k {
	case StateInit:
		return "init"
	case StateTransition:
		return "transition"
	case StateFinal:
		return "final"
	case StateRequirement:
		return "requirement"
	default:
		return "unknown"
	}
}

// Consumer is the sink every pipeline stage ultimately writes into
// (spec.md §4.6). Import's *term.Entity and State's *term.Term are already
// resolved and type-checked by the time it reaches the consumer; a
// Consumer is free to reject a construct it cannot translate with a
// SOLV001-coded error, but must not panic on well-typed input.
type Consumer interface {
	// Import declares a module entity (a free symbol the consumer's
	// backend must know how to name/sort), without asserting anything
	// about it.
	Import(e *term.Entity) error

	// Adopt hands the consumer a whole Root at once (spec.md §4.6
	// "adopt(root)"): every entity the Root holds, in declaration order,
	// together with the Root's recursion Mode. This is what lets a real
	// backend batch a mode=allowed root's mutually-recursive definitions
	// into a single define-funs-rec-shaped call (spec.md §6) instead of
	// reconstructing the grouping from a flattened entity stream — a
	// Consumer that has no such batching to do can satisfy this with
	// ImportRoot.
	Adopt(root *module.Root) error

	// State asserts formula as holding in the given StateKind's scope.
	State(kind StateKind, formula *term.Term) error

	// Push opens a new assertion scope (spec.md §4.6), mirroring
	// module.Module.Push for the consumer side of the pipeline.
	Push() error

	// Pop closes n assertion scopes opened by Push.
	Pop(n int) error
}

// ImportRoot satisfies a Consumer.Adopt call the straightforward way, for
// a Consumer with no Root-level batching of its own: Import every entity
// of root in declaration order, then assert `entity = value` for each
// definition. A backend that batches a mode=allowed root into one
// define-funs-rec-shaped call should do that itself instead of calling
// this helper for such roots.
func ImportRoot(c Consumer, root *module.Root) error {
	for _, e := range root.Entities() {
		if err := c.Import(e); err != nil {
			return err
		}
		if e.Value != nil {
			if err := c.State(StateRequirement, term.Equal(term.Object(e), e.Value)); err != nil {
				return err
			}
		}
	}
	return nil
}
