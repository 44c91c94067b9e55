package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndAsRoundTrip(t *testing.T) {
	d := New("module", MOD003, "pop depth exceeded", map[string]any{"n": 3})
	err := Wrap(d)
	require.Error(t, err)

	got, ok := As(err)
	require.True(t, ok)
	require.Equal(t, MOD003, got.Code)
	require.Equal(t, "pop depth exceeded", got.Message)
}

func TestWrapNilIsNil(t *testing.T) {
	require.NoError(t, Wrap(nil))
}

func TestToJSONDeterministic(t *testing.T) {
	d := New("term", AST001, "bad arity", nil)
	s1, err := d.ToJSON(true)
	require.NoError(t, err)
	s2, err := d.ToJSON(true)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
}
