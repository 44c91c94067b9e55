package module

import (
	"testing"

	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
	"github.com/stretchr/testify/require"
)

func TestDeclareThenResolve(t *testing.T) {
	m := New("m")
	x := label.Of("x")
	_, err := m.Declare("top", ModeForbidden, x, types.Default().Integer())
	require.NoError(t, err)

	e, ok := m.Resolved(x)
	require.True(t, ok)
	require.True(t, e.IsDeclaration())
	require.Equal(t, types.Default().Integer(), e.Type)
}

func TestDefineRejectsIllTyped(t *testing.T) {
	m := New("m")
	x := label.Of("x")
	unbound := term.Variable(label.Of("unbound"))
	_, err := m.Define("top", ModeForbidden, x, unbound)
	require.Error(t, err)
}

func TestDefineForbiddenRejectsRecursion(t *testing.T) {
	m := New("m")
	a := label.Of("a")
	// a := a  (self-reference)
	_, err := m.Define("top", ModeForbidden, a, term.Variable(a))
	require.Error(t, err)
}

func TestPushPopRestoresState(t *testing.T) {
	m := New("m")
	x := label.Of("x")
	_, err := m.Declare("top", ModeForbidden, x, types.Default().Integer())
	require.NoError(t, err)

	m.Push()
	y := label.Of("y")
	_, err = m.Declare("top", ModeForbidden, y, types.Default().Integer())
	require.NoError(t, err)

	_, ok := m.Resolved(y)
	require.True(t, ok)

	require.NoError(t, m.Pop(1))

	_, ok = m.Resolved(y)
	require.False(t, ok, "y must not survive Pop")
	_, ok = m.Resolved(x)
	require.True(t, ok, "x declared before Push must survive Pop")
}

func TestPopBeyondDepthIsError(t *testing.T) {
	m := New("m")
	require.Error(t, m.Pop(1))
}

func TestReplayReproducesState(t *testing.T) {
	m := New("m")
	x := label.Of("x")
	_, _ = m.Declare("top", ModeForbidden, x, types.Default().Integer())
	m.Push()
	y := label.Of("y")
	_, _ = m.Declare("top", ModeForbidden, y, types.Default().Integer())
	_ = m.Pop(1)

	replayed := Replay(m.Log())
	_, okX := replayed.Resolved(x)
	require.True(t, okX)
	_, okY := replayed.Resolved(y)
	require.False(t, okY)
}

func TestAdoptCopiesEntities(t *testing.T) {
	lib := New("lib")
	f := label.Of("f")
	_, _ = lib.Declare("top", ModeForbidden, f, types.Default().Integer())

	main := New("main")
	main.Adopt(lib)

	_, ok := main.Resolved(f)
	require.True(t, ok)
}

func TestRequireRejectsNonBoolean(t *testing.T) {
	m := New("m")
	require.Error(t, m.Require(term.Integer(1)))
	require.NoError(t, m.Require(term.Boolean(true)))
	require.Len(t, m.Requirements(), 1)
}
