// Package solver implements spec.md §4.8's solver facade: the thin,
// backend-agnostic entry point that replays a module.Module through a
// pipeline and asks the resulting backend.Consumer for a verdict.
package solver

import (
	"context"

	"github.com/black-sat/black/internal/backend"
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/pipeline"
	"github.com/black-sat/black/internal/term"
)

// Verdict re-exports backend.Verdict so callers of this package never need
// to import internal/backend directly for the type alone.
type Verdict = backend.Verdict

const (
	Unsat   = backend.Unsat
	Sat     = backend.Sat
	Unknown = backend.Unknown
)

// Facade drives one backend.Consumer through zero or more pipeline stages
// (spec.md §4.7's SurrogateEncoder is the canonical one for an LTL-bearing
// module). Value reads the model of the backend's last Decide for an
// entity the caller already holds; the Facade keeps no record of the
// checked module.
type Facade struct {
	backend backend.Consumer
	stages  []pipeline.Stage
}

// New returns a Facade driving backend through the given stage chain
// (applied outermost-first, exactly pipeline.Compose's convention; pass no
// stages to hand the module straight to backend).
func New(b backend.Consumer, stages ...pipeline.Stage) *Facade {
	return &Facade{backend: b, stages: stages}
}

// Check replays m's entities and requirements through the Facade's stage
// chain into its backend, then asks for a verdict (spec.md §4.8). ctx
// governs cancellation and timeout (spec.md §5) of the Decide call only: a
// timed-out or cancelled Decide returns Unknown, nil without changing the
// backend's model (see backend.Consumer.Decide's doc comment), but the
// entities and facts this Check already replayed into the backend stay
// there; Check does not undo them.
func (f *Facade) Check(ctx context.Context, m *module.Module) (Verdict, error) {
	producer := pipeline.Compose(f.stages...)(pipeline.FromModule(m))
	if err := pipeline.Run(f.backend, producer); err != nil {
		return Unknown, err
	}
	return f.backend.Decide(ctx)
}

// Value returns the constant the last successful Check's model assigns to
// e, if any (spec.md §4.8: "value(object) -> option<term>").
func (f *Facade) Value(e *term.Entity) (*term.Term, bool) {
	return f.backend.GetValue(e)
}
