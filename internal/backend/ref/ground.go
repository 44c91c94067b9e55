package ref

import (
	"github.com/black-sat/black/internal/eval"
	"github.com/black-sat/black/internal/term"
)

// groundAt substitutes every Object leaf of t with the constant its state
// carries at the appropriate trace index, shifting the index for Tomorrow/
// WTomorrow (look one state ahead) and Yesterday/WYesterday (look one state
// behind) exactly as their semantics require. ok is false when a shift
// falls outside [0, len(states)) — the formula reaches past either end of
// the bounded trace, which callers treat as vacuously satisfied (spec.md's
// bounded/finite-trace semantics: a transition fact simply does not apply
// where one of its two states doesn't exist).
func groundAt(t *term.Term, states []map[string]bool, i int) (*term.Term, bool) {
	switch t.Kind() {
	case term.KindBoolean, term.KindInteger, term.KindReal, term.KindVariable:
		return t, true

	case term.KindObject:
		if v, ok := states[i][t.Entity().Name.Key()]; ok {
			return term.Boolean(v), true
		}
		return t, true

	case term.KindTomorrow, term.KindWTomorrow:
		if i+1 >= len(states) {
			return nil, false
		}
		return groundAt(t.Operand(), states, i+1)

	case term.KindYesterday, term.KindWYesterday:
		if i-1 < 0 {
			return nil, false
		}
		return groundAt(t.Operand(), states, i-1)

	case term.KindNegation:
		inner, ok := groundAt(t.Operand(), states, i)
		if !ok {
			return nil, false
		}
		return term.Negation(inner), true

	case term.KindMinus:
		inner, ok := groundAt(t.Operand(), states, i)
		if !ok {
			return nil, false
		}
		return term.Minus(inner), true

	case term.KindConjunction, term.KindDisjunction, term.KindEqual, term.KindDistinct,
		term.KindSum, term.KindProduct:
		args := make([]*term.Term, len(t.Args()))
		for idx, a := range t.Args() {
			g, ok := groundAt(a, states, i)
			if !ok {
				return nil, false
			}
			args[idx] = g
		}
		return rebuildNary(t.Kind(), args), true

	case term.KindImplication, term.KindDifference, term.KindDivision,
		term.KindLessThan, term.KindLessThanEq, term.KindGreaterThan, term.KindGreaterThanEq:
		l, ok := groundAt(t.Left(), states, i)
		if !ok {
			return nil, false
		}
		r, ok := groundAt(t.Right(), states, i)
		if !ok {
			return nil, false
		}
		return rebuildBinary(t.Kind(), l, r), true

	case term.KindIte:
		g, ok := groundAt(t.Guard(), states, i)
		if !ok {
			return nil, false
		}
		then, ok := groundAt(t.Then(), states, i)
		if !ok {
			return nil, false
		}
		els, ok := groundAt(t.Else(), states, i)
		if !ok {
			return nil, false
		}
		return term.Ite(g, then, els), true

	case term.KindAtom:
		head, ok := groundAt(t.Head(), states, i)
		if !ok {
			return nil, false
		}
		args := make([]*term.Term, len(t.Args()))
		for idx, a := range t.Args() {
			g, ok := groundAt(a, states, i)
			if !ok {
				return nil, false
			}
			args[idx] = g
		}
		return term.Atom(head, args...), true

	default:
		// Quantifiers/lambdas have no finite-domain ground value here —
		// the reference backend does not enumerate a first-order domain.
		// Left as-is; holdsAt will find it doesn't fold to a boolean
		// constant and report the check as unsupported.
		return t, true
	}
}

// holdsAt grounds formula at trace index i and folds it with eval.Evaluate.
// supported is false when the grounded formula doesn't collapse to a
// boolean constant (an atom outside the boolean domain, or a construct
// groundAt left untouched) — the caller must treat the overall verdict as
// Unknown rather than guessing.
func holdsAt(formula *term.Term, states []map[string]bool, i int) (value bool, supported bool) {
	grounded, ok := groundAt(formula, states, i)
	if !ok {
		return true, true // vacuous: this fact's scope doesn't reach index i
	}
	folded := eval.Evaluate(grounded)
	if folded.Kind() != term.KindBoolean {
		return false, false
	}
	return folded.Bool(), true
}

func rebuildNary(k term.Kind, args []*term.Term) *term.Term {
	switch k {
	case term.KindConjunction:
		return term.Conjunction(args...)
	case term.KindDisjunction:
		return term.Disjunction(args...)
	case term.KindEqual:
		return term.Equal(args...)
	case term.KindDistinct:
		return term.Distinct(args...)
	case term.KindSum:
		return term.Sum(args...)
	default:
		return term.Product(args...)
	}
}

func rebuildBinary(k term.Kind, l, r *term.Term) *term.Term {
	switch k {
	case term.KindImplication:
		return term.Implication(l, r)
	case term.KindDifference:
		return term.Difference(l, r)
	case term.KindDivision:
		return term.Division(l, r)
	case term.KindLessThan:
		return term.LessThan(l, r)
	case term.KindLessThanEq:
		return term.LessThanEq(l, r)
	case term.KindGreaterThan:
		return term.GreaterThan(l, r)
	default:
		return term.GreaterThanEq(l, r)
	}
}
