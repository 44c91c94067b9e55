package pipeline

import (
	"testing"

	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
	"github.com/stretchr/testify/require"
)

// recordingConsumer is a fake consumer.Consumer that just records every
// call it receives, so tests can assert on the shape of a stage's output
// without needing a real backend.
type recordingConsumer struct {
	imported []*term.Entity
	adopted  []*module.Root
	states   []recordedState
	pushes   int
	pops     []int
}

type recordedState struct {
	kind    consumer.StateKind
	formula *term.Term
}

func (r *recordingConsumer) Import(e *term.Entity) error {
	r.imported = append(r.imported, e)
	return nil
}

func (r *recordingConsumer) Adopt(root *module.Root) error {
	r.adopted = append(r.adopted, root)
	return consumer.ImportRoot(r, root)
}

func (r *recordingConsumer) State(kind consumer.StateKind, formula *term.Term) error {
	r.states = append(r.states, recordedState{kind, formula})
	return nil
}

func (r *recordingConsumer) Push() error { r.pushes++; return nil }

func (r *recordingConsumer) Pop(n int) error { r.pops = append(r.pops, n); return nil }

func (r *recordingConsumer) byKind(kind consumer.StateKind) []*term.Term {
	var out []*term.Term
	for _, s := range r.states {
		if s.kind == kind {
			out = append(out, s.formula)
		}
	}
	return out
}

func TestIdentityStagePassesThrough(t *testing.T) {
	rec := &recordingConsumer{}
	p := Identity(func(sink consumer.Consumer) error {
		return sink.State(consumer.StateRequirement, term.Boolean(true))
	})
	require.NoError(t, Run(rec, p))
	require.Len(t, rec.states, 1)
	require.Equal(t, term.Boolean(true), rec.states[0].formula)
}

func TestComposeAppliesOutermostFirst(t *testing.T) {
	var order []string
	outer := func(next Producer) Producer {
		return func(sink consumer.Consumer) error {
			order = append(order, "outer")
			return next(sink)
		}
	}
	inner := func(next Producer) Producer {
		return func(sink consumer.Consumer) error {
			order = append(order, "inner")
			return next(sink)
		}
	}
	chain := Compose(outer, inner)
	base := func(sink consumer.Consumer) error {
		order = append(order, "base")
		return nil
	}
	require.NoError(t, Run(&recordingConsumer{}, chain(base)))
	require.Equal(t, []string{"outer", "inner", "base"}, order)
}

func entity(name string, ty *types.Type, value *term.Term) *term.Entity {
	return &term.Entity{Name: label.Of(name), Type: ty, Value: value}
}

func TestFromModuleImportsAndAssertsDefinitions(t *testing.T) {
	rec := &recordingConsumer{}

	m := module.New("m")
	p := label.Of("p")
	q := label.Of("q")
	_, err := m.Declare("top", module.ModeForbidden, p, types.Default().Boolean())
	require.NoError(t, err)
	_, err = m.Define("top", module.ModeForbidden, q, term.Boolean(true))
	require.NoError(t, err)
	require.NoError(t, m.Require(term.Boolean(false)))

	require.NoError(t, Run(rec, FromModule(m)))

	require.Len(t, rec.adopted, 1)
	require.Len(t, rec.imported, 2)
	reqs := rec.byKind(consumer.StateRequirement)
	// one for q's definition, one for the extra requirement
	require.Len(t, reqs, 2)
}

// TestFromModuleGroupsEachRootIntoOneAdoptCall covers the Root/Mode
// grouping spec.md §4.6's adopt(root) requires: two roots produce two
// Adopt calls, each carrying only its own root's entities and Mode, never
// a flattened cross-root entity stream.
func TestFromModuleGroupsEachRootIntoOneAdoptCall(t *testing.T) {
	rec := &recordingConsumer{}

	m := module.New("m")
	p := label.Of("p")
	q := label.Of("q")
	_, err := m.Declare("forbidden-root", module.ModeForbidden, p, types.Default().Boolean())
	require.NoError(t, err)
	_, err = m.Declare("allowed-root", module.ModeAllowed, q, types.Default().Boolean())
	require.NoError(t, err)

	require.NoError(t, Run(rec, FromModule(m)))

	require.Len(t, rec.adopted, 2)
	require.Equal(t, module.ModeForbidden, rec.adopted[0].Mode)
	require.Len(t, rec.adopted[0].Entities(), 1)
	require.Equal(t, module.ModeAllowed, rec.adopted[1].Mode)
	require.Len(t, rec.adopted[1].Entities(), 1)
}

func TestSurrogateEncoderCachesRepeatedSubterm(t *testing.T) {
	rec := &recordingConsumer{}
	p := SurrogateEncoder(func(sink consumer.Consumer) error {
		a := term.Object(entity("a", types.Default().Boolean(), nil))
		ev := term.Eventually(a)
		// same subterm twice: the encoder must reuse one surrogate rather
		// than emitting duplicate transition/final facts.
		return sink.State(consumer.StateRequirement, term.Conjunction(ev, ev))
	})
	require.NoError(t, Run(rec, p))

	transitions := rec.byKind(consumer.StateTransition)
	finals := rec.byKind(consumer.StateFinal)
	require.Len(t, transitions, 1)
	require.Len(t, finals, 1)
}

func TestSurrogateEncoderEventuallyShape(t *testing.T) {
	rec := &recordingConsumer{}
	aEntity := entity("a", types.Default().Boolean(), nil)
	aProp := term.Object(aEntity)
	p := SurrogateEncoder(func(sink consumer.Consumer) error {
		return sink.State(consumer.StateRequirement, term.Eventually(aProp))
	})
	require.NoError(t, Run(rec, p))

	require.Len(t, rec.imported, 1)
	require.Len(t, rec.byKind(consumer.StateTransition), 1)
	require.Len(t, rec.byKind(consumer.StateFinal), 1)

	surrogate := term.Object(rec.imported[0])
	wantFinal := term.Equal(surrogate, aProp)
	require.Equal(t, wantFinal, rec.byKind(consumer.StateFinal)[0])
}

func TestSurrogateEncoderYesterdayInitIsFalse(t *testing.T) {
	rec := &recordingConsumer{}
	p := SurrogateEncoder(func(sink consumer.Consumer) error {
		a := term.Object(entity("a", types.Default().Boolean(), nil))
		return sink.State(consumer.StateRequirement, term.Yesterday(a))
	})
	require.NoError(t, Run(rec, p))

	inits := rec.byKind(consumer.StateInit)
	require.Len(t, inits, 1)
	surrogate := term.Object(rec.imported[0])
	require.Equal(t, term.Equal(surrogate, term.Boolean(false)), inits[0])
}

func TestSurrogateEncoderWYesterdayInitIsTrue(t *testing.T) {
	rec := &recordingConsumer{}
	p := SurrogateEncoder(func(sink consumer.Consumer) error {
		a := term.Object(entity("a", types.Default().Boolean(), nil))
		return sink.State(consumer.StateRequirement, term.WYesterday(a))
	})
	require.NoError(t, Run(rec, p))

	inits := rec.byKind(consumer.StateInit)
	require.Len(t, inits, 1)
	surrogate := term.Object(rec.imported[0])
	require.Equal(t, term.Equal(surrogate, term.Boolean(true)), inits[0])
}

func TestSurrogateEncoderUntilFinalIsRightOperand(t *testing.T) {
	rec := &recordingConsumer{}
	aProp := term.Object(entity("a", types.Default().Boolean(), nil))
	bProp := term.Object(entity("b", types.Default().Boolean(), nil))
	p := SurrogateEncoder(func(sink consumer.Consumer) error {
		return sink.State(consumer.StateRequirement, term.Until(aProp, bProp))
	})
	require.NoError(t, Run(rec, p))

	finals := rec.byKind(consumer.StateFinal)
	require.Len(t, finals, 1)
	surrogate := term.Object(rec.imported[0])
	require.Equal(t, term.Equal(surrogate, bProp), finals[0])
}
