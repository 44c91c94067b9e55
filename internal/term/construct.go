package term

import (
	"fmt"
	"strconv"

	"github.com/black-sat/black/internal/label"
)

// --- Constants ---------------------------------------------------------

func (p *Pool) Integer(v int64) *Term {
	return p.intern(key(KindInteger, strconv.FormatInt(v, 10)), func() *Term {
		return &Term{kind: KindInteger, intVal: v}
	})
}

func (p *Pool) Real(v float64) *Term {
	return p.intern(key(KindReal, strconv.FormatFloat(v, 'g', -1, 64)), func() *Term {
		return &Term{kind: KindReal, realVal: v}
	})
}

func (p *Pool) Boolean(v bool) *Term {
	return p.intern(key(KindBoolean, strconv.FormatBool(v)), func() *Term {
		return &Term{kind: KindBoolean, boolVal: v}
	})
}

// --- Symbols -------------------------------------------------------------

func (p *Pool) Variable(l label.Label) *Term {
	return p.intern(key(KindVariable, l.Key()), func() *Term {
		return &Term{kind: KindVariable, varLabel: l}
	})
}

// Object builds a reference to a resolved module entity. Per spec.md §3.2,
// the entity must outlive the term; since module.Module owns Entities via
// ordinary Go pointers kept alive by the module's action log, Go's garbage
// collector (not reference counting) makes this invariant automatic.
func (p *Pool) Object(e *Entity) *Term {
	return p.intern(key(KindObject, fmt.Sprintf("%p", e)), func() *Term {
		return &Term{kind: KindObject, obj: e}
	})
}

// --- Predicates ------------------------------------------------------------

func (p *Pool) Equal(args ...*Term) *Term {
	return p.nary(KindEqual, args)
}

func (p *Pool) Distinct(args ...*Term) *Term {
	return p.nary(KindDistinct, args)
}

func (p *Pool) Atom(head *Term, args ...*Term) *Term {
	return p.intern(key(KindAtom, ptr(head), ptrList(args)), func() *Term {
		return &Term{kind: KindAtom, a: head, operands: append([]*Term(nil), args...)}
	})
}

// --- Connectives -----------------------------------------------------------

func (p *Pool) Negation(t *Term) *Term { return p.unary(KindNegation, t) }

func (p *Pool) Conjunction(args ...*Term) *Term { return p.nary(KindConjunction, args) }

func (p *Pool) Disjunction(args ...*Term) *Term { return p.nary(KindDisjunction, args) }

func (p *Pool) Implication(l, r *Term) *Term { return p.binary(KindImplication, l, r) }

func (p *Pool) Ite(guard, then, els *Term) *Term {
	return p.intern(key(KindIte, ptr(guard), ptr(then), ptr(els)), func() *Term {
		return &Term{kind: KindIte, a: guard, b: then, c: els}
	})
}

// --- Quantifiers / binders ---------------------------------------------------

func (p *Pool) Forall(decls []Decl, body *Term) *Term { return p.binder(KindForall, decls, body) }

func (p *Pool) Exists(decls []Decl, body *Term) *Term { return p.binder(KindExists, decls, body) }

func (p *Pool) Lambda(decls []Decl, body *Term) *Term { return p.binder(KindLambda, decls, body) }

// --- Temporal operators (future) --------------------------------------------

func (p *Pool) Tomorrow(t *Term) *Term   { return p.unary(KindTomorrow, t) }
func (p *Pool) WTomorrow(t *Term) *Term  { return p.unary(KindWTomorrow, t) }
func (p *Pool) Eventually(t *Term) *Term { return p.unary(KindEventually, t) }
func (p *Pool) Always(t *Term) *Term     { return p.unary(KindAlways, t) }
func (p *Pool) Until(l, r *Term) *Term   { return p.binary(KindUntil, l, r) }
func (p *Pool) Release(l, r *Term) *Term { return p.binary(KindRelease, l, r) }

// --- Temporal operators (past) ----------------------------------------------

func (p *Pool) Yesterday(t *Term) *Term     { return p.unary(KindYesterday, t) }
func (p *Pool) WYesterday(t *Term) *Term    { return p.unary(KindWYesterday, t) }
func (p *Pool) Once(t *Term) *Term          { return p.unary(KindOnce, t) }
func (p *Pool) Historically(t *Term) *Term  { return p.unary(KindHistorically, t) }
func (p *Pool) Since(l, r *Term) *Term      { return p.binary(KindSince, l, r) }
func (p *Pool) Triggered(l, r *Term) *Term  { return p.binary(KindTriggered, l, r) }

// --- Arithmetic --------------------------------------------------------------

func (p *Pool) Minus(t *Term) *Term          { return p.unary(KindMinus, t) }
func (p *Pool) Sum(args ...*Term) *Term      { return p.nary(KindSum, args) }
func (p *Pool) Product(args ...*Term) *Term  { return p.nary(KindProduct, args) }
func (p *Pool) Difference(l, r *Term) *Term  { return p.binary(KindDifference, l, r) }
func (p *Pool) Division(l, r *Term) *Term    { return p.binary(KindDivision, l, r) }

// --- Relational ----------------------------------------------------------------

func (p *Pool) LessThan(l, r *Term) *Term      { return p.binary(KindLessThan, l, r) }
func (p *Pool) LessThanEq(l, r *Term) *Term    { return p.binary(KindLessThanEq, l, r) }
func (p *Pool) GreaterThan(l, r *Term) *Term   { return p.binary(KindGreaterThan, l, r) }
func (p *Pool) GreaterThanEq(l, r *Term) *Term { return p.binary(KindGreaterThanEq, l, r) }

// --- Error -----------------------------------------------------------------------

// Error builds an error term, produced by the type checker (spec.md §4.3)
// and propagated unchanged by consumers that observe it.
func (p *Pool) Error(inner *Term, message string) *Term {
	return p.intern(key(KindError, ptr(inner), message), func() *Term {
		return &Term{kind: KindError, a: inner, message: message}
	})
}

// --- shape helpers -----------------------------------------------------------------

func (p *Pool) unary(k Kind, t *Term) *Term {
	return p.intern(key(k, ptr(t)), func() *Term {
		return &Term{kind: k, a: t}
	})
}

func (p *Pool) binary(k Kind, l, r *Term) *Term {
	return p.intern(key(k, ptr(l), ptr(r)), func() *Term {
		return &Term{kind: k, a: l, b: r}
	})
}

func (p *Pool) nary(k Kind, args []*Term) *Term {
	return p.intern(key(k, ptrList(args)), func() *Term {
		return &Term{kind: k, operands: append([]*Term(nil), args...)}
	})
}

func (p *Pool) binder(k Kind, decls []Decl, body *Term) *Term {
	return p.intern(key(k, declKey(decls), ptr(body)), func() *Term {
		return &Term{kind: k, decls: append([]Decl(nil), decls...), body: body}
	})
}

// --- Default-pool free functions, for convenience ----------------------------------

func Integer(v int64) *Term                     { return Default().Integer(v) }
func Real(v float64) *Term                      { return Default().Real(v) }
func Boolean(v bool) *Term                      { return Default().Boolean(v) }
func Variable(l label.Label) *Term              { return Default().Variable(l) }
func Object(e *Entity) *Term                    { return Default().Object(e) }
func Equal(args ...*Term) *Term                 { return Default().Equal(args...) }
func Distinct(args ...*Term) *Term              { return Default().Distinct(args...) }
func Atom(head *Term, args ...*Term) *Term      { return Default().Atom(head, args...) }
func Negation(t *Term) *Term                    { return Default().Negation(t) }
func Conjunction(args ...*Term) *Term           { return Default().Conjunction(args...) }
func Disjunction(args ...*Term) *Term           { return Default().Disjunction(args...) }
func Implication(l, r *Term) *Term              { return Default().Implication(l, r) }
func Ite(guard, then, els *Term) *Term          { return Default().Ite(guard, then, els) }
func Forall(decls []Decl, body *Term) *Term     { return Default().Forall(decls, body) }
func Exists(decls []Decl, body *Term) *Term     { return Default().Exists(decls, body) }
func Lambda(decls []Decl, body *Term) *Term     { return Default().Lambda(decls, body) }
func Tomorrow(t *Term) *Term                    { return Default().Tomorrow(t) }
func WTomorrow(t *Term) *Term                   { return Default().WTomorrow(t) }
func Eventually(t *Term) *Term                  { return Default().Eventually(t) }
func Always(t *Term) *Term                      { return Default().Always(t) }
func Until(l, r *Term) *Term                    { return Default().Until(l, r) }
func Release(l, r *Term) *Term                  { return Default().Release(l, r) }
func Yesterday(t *Term) *Term                   { return Default().Yesterday(t) }
func WYesterday(t *Term) *Term                  { return Default().WYesterday(t) }
func Once(t *Term) *Term                        { return Default().Once(t) }
func Historically(t *Term) *Term                { return Default().Historically(t) }
func Since(l, r *Term) *Term                    { return Default().Since(l, r) }
func Triggered(l, r *Term) *Term                { return Default().Triggered(l, r) }
func Minus(t *Term) *Term                       { return Default().Minus(t) }
func Sum(args ...*Term) *Term                   { return Default().Sum(args...) }
func Product(args ...*Term) *Term               { return Default().Product(args...) }
func Difference(l, r *Term) *Term               { return Default().Difference(l, r) }
func Division(l, r *Term) *Term                 { return Default().Division(l, r) }
func LessThan(l, r *Term) *Term                 { return Default().LessThan(l, r) }
func LessThanEq(l, r *Term) *Term               { return Default().LessThanEq(l, r) }
func GreaterThan(l, r *Term) *Term              { return Default().GreaterThan(l, r) }
func GreaterThanEq(l, r *Term) *Term            { return Default().GreaterThanEq(l, r) }
func ErrorTerm(inner *Term, message string) *Term { return Default().Error(inner, message) }
