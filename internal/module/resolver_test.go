package module

import (
	"testing"

	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/stretchr/testify/require"
)

func TestCloseRecursiveRootTiesKnot(t *testing.T) {
	m := New("m")
	r := NewResolver(m)

	a := label.Of("a")
	b := label.Of("b")
	_, err := r.Define("rec", ModeAllowed, a, term.Integer(1))
	require.NoError(t, err)
	_, err = r.Define("rec", ModeAllowed, b, term.Variable(a))
	require.NoError(t, err)

	entities := r.CloseRecursiveRoot("rec")
	require.Len(t, entities, 2)
	for _, e := range entities {
		require.Equal(t, term.Integer(1), e.Value)
	}
}

func TestResolveTermReplacesVariableWithObject(t *testing.T) {
	m := New("m")
	r := NewResolver(m)
	x := label.Of("x")
	_, err := r.Declare("top", ModeForbidden, x, nil)
	_ = err

	entity, _ := r.Resolved(x)
	free := term.Variable(x)
	resolved := r.ResolveTerm(free)
	require.Equal(t, term.KindObject, resolved.Kind())
	require.Equal(t, entity, resolved.Entity())
}
