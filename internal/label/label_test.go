package label

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualityByPayload(t *testing.T) {
	a := Of("p")
	b := Of("p")
	c := Of("q")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestKeyAgreesWithEqual(t *testing.T) {
	a := Of("x")
	b := Of("x")
	require.Equal(t, a.Key(), b.Key())
}

func TestOfIntDistinctFromString(t *testing.T) {
	n := OfInt(42)
	s := Of("#42")
	require.NotEqual(t, n.Key(), s.Key())
}

func TestOfComparable(t *testing.T) {
	type payload struct{ A, B int }
	a := OfComparable(payload{1, 2})
	b := OfComparable(payload{1, 2})
	c := OfComparable(payload{1, 3})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
