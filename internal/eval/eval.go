// Package eval implements BLACK's partial evaluator (spec.md §2, §4.4): a
// best-effort constant folder and β-reducer over term.Term, used by the
// reference backend to evaluate formulas at each state of a candidate
// trace, by internal/module to tie a mode=allowed root's recursive
// definitions (EvalRecursiveBindings), and by module.Resolver.ResolveTerm
// to substitute resolved entities into a term (Substitute).
//
// It is deliberately partial: anything it cannot simplify (free variables,
// unresolved objects, temporal operators, quantified bodies) is returned
// unchanged rather than erroring, matching spec.md §4.4's "evaluator makes
// a best effort; an unevaluated term is not a failure."
package eval

import (
	"github.com/black-sat/black/internal/match"
	"github.com/black-sat/black/internal/term"
)

// Evaluate returns a simplified form of t: constants fold through boolean
// connectives, arithmetic, relational and equality operators, ite with a
// constant guard reduces to its taken branch, and a fully-applied lambda
// atom β-reduces. Everything else is returned as-is (Evaluate never
// returns nil for a non-nil input).
func Evaluate(t *term.Term) *term.Term {
	if t == nil {
		return nil
	}
	return match.On[*term.Term](t).
		When(evalUnchanged, term.KindInteger, term.KindReal, term.KindBoolean,
			term.KindVariable).
		When(evalObject, term.KindObject).
		When(evalNegation, term.KindNegation).
		When(evalConjunction, term.KindConjunction).
		When(evalDisjunction, term.KindDisjunction).
		When(evalImplication, term.KindImplication).
		When(evalEquality(true), term.KindEqual).
		When(evalEquality(false), term.KindDistinct).
		When(evalIte, term.KindIte).
		When(evalAtom, term.KindAtom).
		When(evalMinus, term.KindMinus).
		When(evalArithNary(term.Sum, addReal, addInt), term.KindSum).
		When(evalArithNary(term.Product, mulReal, mulInt), term.KindProduct).
		When(evalArithBinary(term.Difference, subReal, subInt), term.KindDifference).
		When(evalArithBinary(term.Division, divReal, divInt), term.KindDivision).
		When(evalRelational(term.LessThan, func(a, b float64) bool { return a < b }), term.KindLessThan).
		When(evalRelational(term.LessThanEq, func(a, b float64) bool { return a <= b }), term.KindLessThanEq).
		When(evalRelational(term.GreaterThan, func(a, b float64) bool { return a > b }), term.KindGreaterThan).
		When(evalRelational(term.GreaterThanEq, func(a, b float64) bool { return a >= b }), term.KindGreaterThanEq).
		Else(evalUnchanged)
}

func evalUnchanged(t *term.Term) *term.Term { return t }

// evalObject dereferences a resolved module entity to its defined value
// (spec.md §4.4: "object with a non-lambda value -> evaluate that value"),
// so a defined entity's meaning folds through Evaluate exactly as if its
// value had been substituted in directly. A declaration (no Value), or a
// lambda-valued entity (the closure itself is the value; evalAtom resolves
// it through this same dereference when the entity is applied), is left as
// the Object it is.
func evalObject(t *term.Term) *term.Term {
	e := t.Entity()
	if e == nil || e.Value == nil || e.Value.Kind() == term.KindLambda {
		return t
	}
	return Evaluate(e.Value)
}

func evalNegation(t *term.Term) *term.Term {
	inner := Evaluate(t.Operand())
	if inner.Kind() == term.KindBoolean {
		return term.Boolean(!inner.Bool())
	}
	return term.Negation(inner)
}

func evalConjunction(t *term.Term) *term.Term {
	var kept []*term.Term
	for _, a := range t.Args() {
		v := Evaluate(a)
		if v.Kind() == term.KindBoolean {
			if !v.Bool() {
				return term.Boolean(false)
			}
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return term.Boolean(true)
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return term.Conjunction(kept...)
}

func evalDisjunction(t *term.Term) *term.Term {
	var kept []*term.Term
	for _, a := range t.Args() {
		v := Evaluate(a)
		if v.Kind() == term.KindBoolean {
			if v.Bool() {
				return term.Boolean(true)
			}
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return term.Boolean(false)
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return term.Disjunction(kept...)
}

func evalImplication(t *term.Term) *term.Term {
	l := Evaluate(t.Left())
	if l.Kind() == term.KindBoolean {
		if !l.Bool() {
			return term.Boolean(true)
		}
		return Evaluate(t.Right())
	}
	r := Evaluate(t.Right())
	if r.Kind() == term.KindBoolean && r.Bool() {
		return term.Boolean(true)
	}
	return term.Implication(l, r)
}

func evalEquality(equal bool) func(*term.Term) *term.Term {
	return func(t *term.Term) *term.Term {
		args := make([]*term.Term, len(t.Args()))
		allConst := true
		for i, a := range t.Args() {
			args[i] = Evaluate(a)
			if !isConstant(args[i]) {
				allConst = false
			}
		}
		if allConst && len(args) > 1 {
			same := allPointerEqual(args)
			if equal {
				return term.Boolean(same)
			}
			return term.Boolean(!same)
		}
		if equal {
			return term.Equal(args...)
		}
		return term.Distinct(args...)
	}
}

func allPointerEqual(ts []*term.Term) bool {
	for _, t := range ts[1:] {
		if t != ts[0] {
			return false
		}
	}
	return true
}

func isConstant(t *term.Term) bool {
	switch t.Kind() {
	case term.KindInteger, term.KindReal, term.KindBoolean:
		return true
	default:
		return false
	}
}

func evalIte(t *term.Term) *term.Term {
	guard := Evaluate(t.Guard())
	if guard.Kind() == term.KindBoolean {
		if guard.Bool() {
			return Evaluate(t.Then())
		}
		return Evaluate(t.Else())
	}
	return term.Ite(guard, Evaluate(t.Then()), Evaluate(t.Else()))
}

// evalAtom β-reduces a fully-applied lambda atom: Atom(Lambda(decls, body),
// args...) becomes body with each decl substituted by the corresponding
// (already-evaluated) argument. The head may be a literal Lambda or a
// module-resolved Object whose entity's Value is one (spec.md §3.5/§4.4's
// S3 scenario: `define succ(x:int)=x+1` resolves to an Object, not a bare
// Lambda, by the time an atom applies it) — lambdaOf looks through one
// Object dereference to find the lambda either way.
func evalAtom(t *term.Term) *term.Term {
	head := Evaluate(t.Head())
	args := make([]*term.Term, len(t.Args()))
	for i, a := range t.Args() {
		args[i] = Evaluate(a)
	}
	if lambda := lambdaOf(head); lambda != nil && len(lambda.Decls()) == len(args) {
		return Evaluate(Substitute(lambda.Body(), lambda.Decls(), args))
	}
	return term.Atom(head, args...)
}

// lambdaOf returns t itself if it is a Lambda, or the Lambda its entity
// resolves to if t is an Object whose Value is one, or nil otherwise.
func lambdaOf(t *term.Term) *term.Term {
	if t.Kind() == term.KindLambda {
		return t
	}
	if t.Kind() == term.KindObject {
		if e := t.Entity(); e != nil && e.Value != nil && e.Value.Kind() == term.KindLambda {
			return e.Value
		}
	}
	return nil
}

func evalMinus(t *term.Term) *term.Term {
	inner := Evaluate(t.Operand())
	switch inner.Kind() {
	case term.KindInteger:
		return term.Integer(-inner.Int())
	case term.KindReal:
		return term.Real(-inner.Real())
	default:
		return term.Minus(inner)
	}
}

func addReal(a, b float64) float64 { return a + b }
func mulReal(a, b float64) float64 { return a * b }
func subReal(a, b float64) float64 { return a - b }
func divReal(a, b float64) float64 { return a / b }
func addInt(a, b int64) int64      { return a + b }
func mulInt(a, b int64) int64      { return a * b }
func subInt(a, b int64) int64      { return a - b }
func divInt(a, b int64) int64      { return a / b }

func evalArithNary(rebuild func(...*term.Term) *term.Term, fReal func(a, b float64) float64, fInt func(a, b int64) int64) func(*term.Term) *term.Term {
	return func(t *term.Term) *term.Term {
		args := t.Args()
		if len(args) == 0 {
			return rebuild()
		}
		acc := Evaluate(args[0])
		var kept []*term.Term
		isReal := acc.Kind() == term.KindReal
		hasConst := isConstant(acc) && (acc.Kind() == term.KindInteger || acc.Kind() == term.KindReal)
		if !hasConst {
			kept = append(kept, acc)
		}
		for _, a := range args[1:] {
			v := Evaluate(a)
			if (v.Kind() == term.KindInteger || v.Kind() == term.KindReal) && hasConst {
				if v.Kind() == term.KindReal {
					isReal = true
				}
				acc = combineNumeric(acc, v, isReal, fReal, fInt)
				continue
			}
			if v.Kind() == term.KindInteger || v.Kind() == term.KindReal {
				hasConst = true
				acc = v
				isReal = v.Kind() == term.KindReal
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) == 0 {
			return acc
		}
		if hasConst {
			kept = append([]*term.Term{acc}, kept...)
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return rebuild(kept...)
	}
}

func combineNumeric(a, b *term.Term, isReal bool, fReal func(a, b float64) float64, fInt func(a, b int64) int64) *term.Term {
	if isReal {
		return term.Real(fReal(numericValue(a), numericValue(b)))
	}
	return term.Integer(fInt(a.Int(), b.Int()))
}

func numericValue(t *term.Term) float64 {
	if t.Kind() == term.KindReal {
		return t.Real()
	}
	return float64(t.Int())
}

func evalArithBinary(rebuild func(l, r *term.Term) *term.Term, fReal func(a, b float64) float64, fInt func(a, b int64) int64) func(*term.Term) *term.Term {
	return func(t *term.Term) *term.Term {
		l := Evaluate(t.Left())
		r := Evaluate(t.Right())
		if isNumericConst(l) && isNumericConst(r) {
			isReal := l.Kind() == term.KindReal || r.Kind() == term.KindReal
			return combineNumeric(l, r, isReal, fReal, fInt)
		}
		return rebuild(l, r)
	}
}

func isNumericConst(t *term.Term) bool {
	return t.Kind() == term.KindInteger || t.Kind() == term.KindReal
}

func evalRelational(rebuild func(l, r *term.Term) *term.Term, cmp func(a, b float64) bool) func(*term.Term) *term.Term {
	return func(t *term.Term) *term.Term {
		l := Evaluate(t.Left())
		r := Evaluate(t.Right())
		if isNumericConst(l) && isNumericConst(r) {
			return term.Boolean(cmp(numericValue(l), numericValue(r)))
		}
		return rebuild(l, r)
	}
}
