package ref

import (
	"context"
	"testing"

	"github.com/black-sat/black/internal/backend"
	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func boolEntity(name string) *term.Entity {
	return &term.Entity{Name: label.Of(name), Type: types.Default().Boolean()}
}

// TestFreeBooleanIsSatisfiable covers spec.md §8 S4: declaring p : boolean
// and requiring p must be satisfiable against a backend that treats p as a
// free boolean variable.
func TestFreeBooleanIsSatisfiable(t *testing.T) {
	b := New(2)
	p := boolEntity("p")
	require.NoError(t, b.Import(p))
	require.NoError(t, b.State(consumer.StateRequirement, term.Object(p)))

	v, err := b.Decide(context.Background())
	require.NoError(t, err)
	require.Equal(t, backend.Sat, v)

	val, ok := b.GetValue(p)
	require.True(t, ok)
	require.Equal(t, term.Boolean(true), val)
}

func TestContradictionIsUnsat(t *testing.T) {
	b := New(2)
	p := boolEntity("p")
	require.NoError(t, b.Import(p))
	prop := term.Object(p)
	require.NoError(t, b.State(consumer.StateRequirement, term.Conjunction(prop, term.Negation(prop))))

	v, err := b.Decide(context.Background())
	require.NoError(t, err)
	require.Equal(t, backend.Unsat, v)
}

// TestPushPopDiscardsContradiction covers spec.md §8 S6: a requirement
// asserted inside a push scope that is later popped must not affect the
// verdict.
func TestPushPopDiscardsContradiction(t *testing.T) {
	b := New(2)
	p := boolEntity("p")
	require.NoError(t, b.Import(p))

	require.NoError(t, b.Push())
	require.NoError(t, b.State(consumer.StateRequirement, term.Boolean(false)))
	require.NoError(t, b.Pop(1))

	v, err := b.Decide(context.Background())
	require.NoError(t, err)
	require.Equal(t, backend.Sat, v)
}

func TestPopBeyondDepthErrors(t *testing.T) {
	b := New(2)
	require.NoError(t, b.Push())
	require.Error(t, b.Pop(2))
}

// TestGetValueReportsAWitnessForEveryAssignedAtom checks the model's shape
// with cmp rather than field-by-field require.Equal calls, since the thing
// under test is the whole valuation map, not one field of it.
func TestGetValueReportsAWitnessForEveryAssignedAtom(t *testing.T) {
	b := New(2)
	p := boolEntity("p")
	q := boolEntity("q")
	require.NoError(t, b.Import(p))
	require.NoError(t, b.Import(q))
	require.NoError(t, b.State(consumer.StateRequirement, term.Object(p)))
	require.NoError(t, b.State(consumer.StateRequirement, term.Negation(term.Object(q))))

	v, err := b.Decide(context.Background())
	require.NoError(t, err)
	require.Equal(t, backend.Sat, v)

	got := map[string]bool{}
	for _, e := range []*term.Entity{p, q} {
		val, ok := b.GetValue(e)
		require.True(t, ok)
		got[e.Name.String()] = val.Bool()
	}

	want := map[string]bool{"p": true, "q": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestEventuallySurrogateIsSatisfiableWithinBound(t *testing.T) {
	b := New(3)
	p := boolEntity("p")
	require.NoError(t, b.Import(p))

	surr := boolEntity("$surrogate1")
	require.NoError(t, b.Import(surr))

	pProp := term.Object(p)
	surrProp := term.Object(surr)
	transition := term.Equal(surrProp, term.Disjunction(pProp, term.Tomorrow(surrProp)))
	final := term.Equal(surrProp, pProp)
	require.NoError(t, b.State(consumer.StateTransition, transition))
	require.NoError(t, b.State(consumer.StateFinal, final))
	require.NoError(t, b.State(consumer.StateRequirement, surrProp))

	v, err := b.Decide(context.Background())
	require.NoError(t, err)
	require.Equal(t, backend.Sat, v)
}
