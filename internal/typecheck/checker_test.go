package typecheck

import (
	"testing"

	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
	"github.com/stretchr/testify/require"
)

func TestConstantsTypeToThemselves(t *testing.T) {
	require.Equal(t, types.Default().Integer(), TypeOf(term.Integer(1)))
	require.Equal(t, types.Default().Real(), TypeOf(term.Real(1.5)))
	require.Equal(t, types.Default().Boolean(), TypeOf(term.Boolean(true)))
}

func TestConjunctionRequiresBoolean(t *testing.T) {
	ok := TypeOf(term.Conjunction(term.Boolean(true), term.Boolean(false)))
	require.Equal(t, types.Default().Boolean(), ok)

	bad := TypeOf(term.Conjunction(term.Boolean(true), term.Integer(1)))
	require.True(t, bad.IsError())
}

func TestUnboundVariableIsError(t *testing.T) {
	x := term.Variable(label.Of("x"))
	ty := TypeOf(x)
	require.True(t, ty.IsError())
}

func TestQuantifierBindsDeclInBody(t *testing.T) {
	pool := types.Default()
	decl := term.Decl{Name: label.Of("x"), Type: pool.Integer()}
	body := term.Equal(term.Variable(label.Of("x")), term.Integer(0))
	f := term.Forall([]term.Decl{decl}, body)
	ty := TypeOf(f)
	require.Equal(t, pool.Boolean(), ty)
}

func TestArithmeticPromotesToReal(t *testing.T) {
	pool := types.Default()
	sum := term.Sum(term.Integer(1), term.Real(2.5))
	require.Equal(t, pool.Real(), TypeOf(sum))

	allInt := term.Sum(term.Integer(1), term.Integer(2))
	require.Equal(t, pool.Integer(), TypeOf(allInt))
}

func TestIteBranchesMustAgree(t *testing.T) {
	guard := term.Boolean(true)
	ite := term.Ite(guard, term.Integer(1), term.Real(2))
	ty := TypeOf(ite)
	require.True(t, ty.IsError())
}

func TestLambdaProducesFunctionType(t *testing.T) {
	pool := types.Default()
	decl := term.Decl{Name: label.Of("n"), Type: pool.Integer()}
	lam := term.Lambda([]term.Decl{decl}, term.Equal(term.Variable(label.Of("n")), term.Integer(0)))
	ty := TypeOf(lam)
	require.Equal(t, types.KindFunction, ty.Kind())
	require.Equal(t, []*types.Type{pool.Integer()}, ty.Params())
	require.Equal(t, pool.Boolean(), ty.Range())
}

func TestDiagnoseWrapsTypeError(t *testing.T) {
	x := term.Variable(label.Of("unbound"))
	ty := TypeOf(x)
	err := Diagnose(ty, label.Of("unbound"))
	require.Error(t, err)
	d, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, "AST001", d.Code)
}
