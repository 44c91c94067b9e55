package eval

import (
	"testing"

	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/stretchr/testify/require"
)

func TestConstantFoldingConjunction(t *testing.T) {
	f := term.Conjunction(term.Boolean(true), term.Boolean(false))
	require.Equal(t, term.Boolean(false), Evaluate(f))
}

func TestConjunctionDropsTrueOperands(t *testing.T) {
	x := term.Variable(label.Of("x"))
	f := term.Conjunction(term.Boolean(true), x)
	require.Equal(t, x, Evaluate(f))
}

func TestShortCircuitDisjunction(t *testing.T) {
	x := term.Variable(label.Of("x"))
	f := term.Disjunction(x, term.Boolean(true))
	require.Equal(t, term.Boolean(true), Evaluate(f))
}

func TestIteConstantGuard(t *testing.T) {
	ite := term.Ite(term.Boolean(true), term.Integer(1), term.Integer(2))
	require.Equal(t, term.Integer(1), Evaluate(ite))
}

func TestArithmeticFolding(t *testing.T) {
	sum := term.Sum(term.Integer(2), term.Integer(3))
	require.Equal(t, term.Integer(5), Evaluate(sum))

	mixed := term.Sum(term.Integer(2), term.Real(0.5))
	require.Equal(t, term.Real(2.5), Evaluate(mixed))
}

func TestRelationalFolding(t *testing.T) {
	lt := term.LessThan(term.Integer(1), term.Integer(2))
	require.Equal(t, term.Boolean(true), Evaluate(lt))
}

func TestBetaReductionOfFullyAppliedLambda(t *testing.T) {
	n := label.Of("n")
	decl := term.Decl{Name: n}
	lam := term.Lambda([]term.Decl{decl}, term.Sum(term.Variable(n), term.Integer(1)))
	app := term.Atom(lam, term.Integer(41))
	require.Equal(t, term.Integer(42), Evaluate(app))
}

// TestBetaReductionThroughResolvedObject covers spec.md §8 S3: "Define
// succ(x:int)=x+1. evaluate(atom(succ,[integer(3)])) yields integer(4)" —
// succ is a module-resolved Object, not a bare Lambda, so Evaluate must
// dereference the Object to its lambda-valued entity before evalAtom's
// arity check can see a lambda to β-reduce.
func TestBetaReductionThroughResolvedObject(t *testing.T) {
	x := label.Of("x")
	decl := term.Decl{Name: x}
	lam := term.Lambda([]term.Decl{decl}, term.Sum(term.Variable(x), term.Integer(1)))
	succ := &term.Entity{Name: label.Of("succ"), Value: lam}

	app := term.Atom(term.Object(succ), term.Integer(3))
	require.Equal(t, term.Integer(4), Evaluate(app))
}

// TestObjectDereferencesNonLambdaValue covers the other half of spec.md
// §4.4's "object with a non-lambda value -> evaluate that value": a
// defined (non-lambda) entity folds through Evaluate exactly as if its
// value had been substituted in directly.
func TestObjectDereferencesNonLambdaValue(t *testing.T) {
	e := &term.Entity{Name: label.Of("k"), Value: term.Sum(term.Integer(2), term.Integer(3))}
	require.Equal(t, term.Integer(5), Evaluate(term.Object(e)))
}

// TestObjectWithNoValueIsUnchanged covers a plain declaration (no Value):
// Evaluate must leave it as the Object it is, not mistake a nil Value for
// something to dereference.
func TestObjectWithNoValueIsUnchanged(t *testing.T) {
	e := &term.Entity{Name: label.Of("p")}
	obj := term.Object(e)
	require.Equal(t, obj, Evaluate(obj))
}

func TestEvalRecursiveBindingsResolvesMutualReference(t *testing.T) {
	a := label.Of("a")
	b := label.Of("b")
	decls := []term.Decl{{Name: a}, {Name: b}}
	bodies := []*term.Term{term.Integer(1), term.Variable(a)}
	result := EvalRecursiveBindings(decls, bodies)
	require.Equal(t, term.Integer(1), result[a.Key()])
	require.Equal(t, term.Integer(1), result[b.Key()])
}
