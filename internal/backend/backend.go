// Package backend defines the extension of consumer.Consumer that a
// decision procedure must satisfy to stand behind internal/solver.Facade
// (spec.md §6's "back-end contract"). consumer.Consumer alone is enough to
// receive a module's statements; Decide and GetValue are the two
// additional operations a real backend needs so the facade can ask for a
// verdict and read back a model.
//
// A real CVC5/SMT-LIB adapter (out of scope per spec.md §1) would satisfy
// this interface by: translating every primitive type to the backend's
// sort, translating every term variant to the backend's term-building API
// respecting arity, declaring non-recursive Imports one by one and batching
// a recursive root's Imports into a single define-funs-rec-shaped call on
// Adopt, asserting every State(_, requirement) formula, forwarding
// Push/Pop verbatim, and implementing GetValue via get-value on the
// translated constant. internal/backend/ref ships the reference/test
// decision procedure this package's contract is designed around.
package backend

import (
	"context"

	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/term"
)

// Verdict is the three-valued result of a satisfiability check (spec.md
// §4.8: "check(module) -> {true, false, unknown}").
type Verdict int

const (
	Unsat Verdict = iota
	Sat
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Consumer is the full contract a decision procedure exposes to
// internal/solver.Facade: the streaming sink (consumer.Consumer) plus the
// two pull-based operations Facade needs once the stream is exhausted.
type Consumer interface {
	consumer.Consumer

	// Decide asks the backend for a verdict over everything asserted so
	// far. ctx governs cancellation/timeout (spec.md §5): a backend that
	// honors ctx.Done() mid-search must return Unknown, nil rather than a
	// wrong verdict, and must leave its internal state as if the call had
	// never happened (the facade's next Push/Pop/Decide must behave as if
	// the timed-out Decide had not modified state).
	Decide(ctx context.Context) (Verdict, error)

	// GetValue returns the constant term the last Sat verdict's model
	// assigns to e, if the backend can provide one.
	GetValue(e *term.Entity) (*term.Term, bool)
}
