package eval

import "github.com/black-sat/black/internal/term"

// Substitute replaces each free occurrence of decls[i].Name in t with
// values[i], respecting binder scoping (a nested binder that rebinds the
// same name shadows the substitution within its own body). Used by evalAtom
// for β-reduction and by EvalRecursiveBindings for tying the knot on
// mutually-recursive module definitions.
func Substitute(t *term.Term, decls []term.Decl, values []*term.Term) *term.Term {
	bindings := make(map[string]*term.Term, len(decls))
	for i, d := range decls {
		bindings[d.Name.Key()] = values[i]
	}
	return substitute(t, bindings)
}

func substitute(t *term.Term, bindings map[string]*term.Term) *term.Term {
	if t == nil || len(bindings) == 0 {
		return t
	}
	switch t.Kind() {
	case term.KindInteger, term.KindReal, term.KindBoolean:
		return t
	case term.KindVariable:
		if v, ok := bindings[t.Label().Key()]; ok {
			return v
		}
		return t
	case term.KindObject:
		return t
	case term.KindForall, term.KindExists, term.KindLambda:
		inner := withoutShadowed(bindings, t.Decls())
		body := substitute(t.Body(), inner)
		return rebuildBinder(t.Kind(), t.Decls(), body)
	case term.KindAtom:
		head := substitute(t.Head(), bindings)
		args := substituteAll(t.Args(), bindings)
		return term.Atom(head, args...)
	case term.KindIte:
		return term.Ite(substitute(t.Guard(), bindings), substitute(t.Then(), bindings), substitute(t.Else(), bindings))
	case term.KindError:
		return term.ErrorTerm(substitute(t.Inner(), bindings), t.Message())
	case term.KindEqual:
		return term.Equal(substituteAll(t.Args(), bindings)...)
	case term.KindDistinct:
		return term.Distinct(substituteAll(t.Args(), bindings)...)
	case term.KindConjunction:
		return term.Conjunction(substituteAll(t.Args(), bindings)...)
	case term.KindDisjunction:
		return term.Disjunction(substituteAll(t.Args(), bindings)...)
	case term.KindSum:
		return term.Sum(substituteAll(t.Args(), bindings)...)
	case term.KindProduct:
		return term.Product(substituteAll(t.Args(), bindings)...)
	}

	// remaining shapes: unary and binary operators/predicates
	if t.Right() != nil || isBinaryKind(t.Kind()) {
		return rebuildBinary(t.Kind(), substitute(t.Left(), bindings), substitute(t.Right(), bindings))
	}
	if t.Operand() != nil {
		return rebuildUnary(t.Kind(), substitute(t.Operand(), bindings))
	}
	return t
}

func substituteAll(ts []*term.Term, bindings map[string]*term.Term) []*term.Term {
	out := make([]*term.Term, len(ts))
	for i, x := range ts {
		out[i] = substitute(x, bindings)
	}
	return out
}

func withoutShadowed(bindings map[string]*term.Term, decls []term.Decl) map[string]*term.Term {
	shadowed := false
	for _, d := range decls {
		if _, ok := bindings[d.Name.Key()]; ok {
			shadowed = true
			break
		}
	}
	if !shadowed {
		return bindings
	}
	next := make(map[string]*term.Term, len(bindings))
	for k, v := range bindings {
		next[k] = v
	}
	for _, d := range decls {
		delete(next, d.Name.Key())
	}
	return next
}

func rebuildBinder(k term.Kind, decls []term.Decl, body *term.Term) *term.Term {
	switch k {
	case term.KindForall:
		return term.Forall(decls, body)
	case term.KindExists:
		return term.Exists(decls, body)
	default:
		return term.Lambda(decls, body)
	}
}

func isBinaryKind(k term.Kind) bool {
	switch k {
	case term.KindImplication, term.KindUntil, term.KindRelease, term.KindSince, term.KindTriggered,
		term.KindDifference, term.KindDivision,
		term.KindLessThan, term.KindLessThanEq, term.KindGreaterThan, term.KindGreaterThanEq:
		return true
	default:
		return false
	}
}

func rebuildBinary(k term.Kind, l, r *term.Term) *term.Term {
	switch k {
	case term.KindImplication:
		return term.Implication(l, r)
	case term.KindUntil:
		return term.Until(l, r)
	case term.KindRelease:
		return term.Release(l, r)
	case term.KindSince:
		return term.Since(l, r)
	case term.KindTriggered:
		return term.Triggered(l, r)
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

func rebuildUnary(k term.Kind, a *term.Term) *term.Term {
	switch k {
	case term.KindNegation:
		return term.Negation(a)
	case term.KindTomorrow:
		return term.Tomorrow(a)
	case term.KindWTomorrow:
		return term.WTomorrow(a)
	case term.KindEventually:
		return term.Eventually(a)
	case term.KindAlways:
		return term.Always(a)
	case term.KindYesterday:
		return term.Yesterday(a)
	case term.KindWYesterday:
		return term.WYesterday(a)
	case term.KindOnce:
		return term.Once(a)
	case term.KindHistorically:
		return term.Historically(a)
	default:
		return term.Minus(a)
	}
}
