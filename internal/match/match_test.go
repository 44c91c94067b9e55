package match

import (
	"testing"

	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/term"
	"github.com/stretchr/testify/require"
)

func TestWhenDispatchesByKind(t *testing.T) {
	sum := On[string](term.Conjunction(term.Boolean(true), term.Boolean(false))).
		When(func(x *term.Term) string { return "and" }, term.KindConjunction).
		When(func(x *term.Term) string { return "or" }, term.KindDisjunction).
		Run()
	require.Equal(t, "and", sum)
}

func TestElseFallback(t *testing.T) {
	got := On[string](term.Integer(1)).
		When(func(x *term.Term) string { return "bool" }, term.KindBoolean).
		Else(func(x *term.Term) string { return "other" })
	require.Equal(t, "other", got)
}

func TestUnmatchedRunPanicsAndRecovers(t *testing.T) {
	err := Safely(func() {
		On[string](term.Integer(1)).
			When(func(x *term.Term) string { return "bool" }, term.KindBoolean).
			Run()
	})
	require.Error(t, err)
	d, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, "PAT001", d.Code)
}

func TestSafelyPassesThroughOtherPanics(t *testing.T) {
	require.Panics(t, func() {
		_ = Safely(func() { panic("boom") })
	})
}
