package pipeline

import (
	"fmt"

	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
)

// SurrogateEncoder is the canonical stage of spec.md §4.7: it replaces
// every distinct temporal subterm with a fresh boolean surrogate symbol
// and emits the init/transition/final facts that pin down the surrogate's
// meaning, so that downstream consumers (in particular the bounded,
// finite-domain reference backend of internal/backend/ref) never have to
// reason about temporal operators directly — only about plain
// propositional formulas over surrogate atoms across an init/transition/
// final triple of assertion scopes, exactly the shape consumer.StateKind
// models.
//
// The expansion follows the standard until/release normal-form identities
// (φ U ψ ≡ ψ ∨ (φ ∧ X(φ U ψ)), φ R ψ ≡ ψ ∧ (φ ∨ X(φ R ψ)), and the past
// duals with Y in place of X), with a StateFinal fact closing the
// recursion at the last state of a finite trace (spec.md's LTLf
// extension): at the final state X has no successor, so the surrogate's
// meaning there collapses to the non-recursive disjunct/conjunct.
func SurrogateEncoder(next Producer) Producer {
	return func(sink consumer.Consumer) error {
		enc := &surrogateConsumer{next: sink, cache: make(map[*term.Term]*term.Term)}
		return next(enc)
	}
}

type surrogateConsumer struct {
	next    consumer.Consumer
	counter int
	cache   map[*term.Term]*term.Term
}

func (s *surrogateConsumer) Import(e *term.Entity) error { return s.next.Import(e) }

// Adopt has no root-level batching of its own to do — every formula it
// asserts (including a root's own `entity = value` facts, via
// consumer.ImportRoot) flows through s.State, so a temporal value in a
// mode=allowed root's definition is surrogate-encoded exactly like any
// other asserted formula.
func (s *surrogateConsumer) Adopt(root *module.Root) error { return consumer.ImportRoot(s, root) }

func (s *surrogateConsumer) Push() error { return s.next.Push() }

func (s *surrogateConsumer) Pop(n int) error { return s.next.Pop(n) }

func (s *surrogateConsumer) State(kind consumer.StateKind, formula *term.Term) error {
	encoded, err := s.encode(formula)
	if err != nil {
		return err
	}
	return s.next.State(kind, encoded)
}

// encode walks t bottom-up, rewriting every temporal subterm to its
// surrogate and pushing the defining facts straight to s.next as it goes,
// so a formula containing several temporal subterms only ever asserts each
// distinct one once (cache keyed by original subterm pointer — terms are
// hash-consed, so pointer identity is structural identity).
func (s *surrogateConsumer) encode(t *term.Term) (*term.Term, error) {
	if t == nil {
		return nil, nil
	}
	if cached, ok := s.cache[t]; ok {
		return cached, nil
	}

	switch t.Kind() {
	case term.KindInteger, term.KindReal, term.KindBoolean, term.KindVariable, term.KindObject:
		return t, nil

	case term.KindTomorrow, term.KindWTomorrow, term.KindEventually, term.KindAlways,
		term.KindYesterday, term.KindWYesterday, term.KindOnce, term.KindHistorically:
		return s.encodeUnaryTemporal(t)

	case term.KindUntil, term.KindRelease, term.KindSince, term.KindTriggered:
		return s.encodeBinaryTemporal(t)

	case term.KindNegation:
		inner, err := s.encode(t.Operand())
		if err != nil {
			return nil, err
		}
		return term.Negation(inner), nil

	case term.KindConjunction, term.KindDisjunction, term.KindEqual, term.KindDistinct,
		term.KindSum, term.KindProduct:
		args, err := s.encodeAll(t.Args())
		if err != nil {
			return nil, err
		}
		return rebuildNary(t.Kind(), args), nil

	case term.KindImplication, term.KindDifference, term.KindDivision,
		term.KindLessThan, term.KindLessThanEq, term.KindGreaterThan, term.KindGreaterThanEq:
		l, err := s.encode(t.Left())
		if err != nil {
			return nil, err
		}
		r, err := s.encode(t.Right())
		if err != nil {
			return nil, err
		}
		return rebuildBinary(t.Kind(), l, r), nil

	case term.KindIte:
		g, err := s.encode(t.Guard())
		if err != nil {
			return nil, err
		}
		then, err := s.encode(t.Then())
		if err != nil {
			return nil, err
		}
		els, err := s.encode(t.Else())
		if err != nil {
			return nil, err
		}
		return term.Ite(g, then, els), nil

	case term.KindMinus:
		inner, err := s.encode(t.Operand())
		if err != nil {
			return nil, err
		}
		return term.Minus(inner), nil

	case term.KindAtom:
		head, err := s.encode(t.Head())
		if err != nil {
			return nil, err
		}
		args, err := s.encodeAll(t.Args())
		if err != nil {
			return nil, err
		}
		return term.Atom(head, args...), nil

	case term.KindForall, term.KindExists, term.KindLambda:
		body, err := s.encode(t.Body())
		if err != nil {
			return nil, err
		}
		return rebuildBinder(t.Kind(), t.Decls(), body), nil

	case term.KindError:
		return t, nil

	default:
		return t, nil
	}
}

func (s *surrogateConsumer) encodeAll(ts []*term.Term) ([]*term.Term, error) {
	out := make([]*term.Term, len(ts))
	for i, x := range ts {
		v, err := s.encode(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fresh synthesizes a new boolean surrogate entity and declares it to the
// downstream consumer via Import, exactly as a module-declared boolean
// entity would be (spec.md §4.6 "import").
func (s *surrogateConsumer) fresh() (*term.Entity, error) {
	s.counter++
	e := &term.Entity{
		Name: label.Of(fmt.Sprintf("$surrogate%d", s.counter)),
		Type: types.Default().Boolean(),
	}
	if err := s.next.Import(e); err != nil {
		return nil, err
	}
	return e, nil
}

// boundaryFact names the StateKind scope a unary temporal surrogate's
// non-recursive base case is pinned down in, and the term it is pinned to
// — either the already-encoded operand (Once/Historically mirror
// Eventually/Always's final-state base case, but at the trace's initial
// state instead) or a plain boolean constant (Tomorrow/Yesterday have no
// operand-dependent base case: a strong step operator is simply false
// where there is no further state to step to, a weak one simply true).
type boundaryFact struct {
	kind  consumer.StateKind
	value *term.Term
}

func (s *surrogateConsumer) encodeUnaryTemporal(t *term.Term) (*term.Term, error) {
	inner, err := s.encode(t.Operand())
	if err != nil {
		return nil, err
	}
	e, err := s.fresh()
	if err != nil {
		return nil, err
	}
	surrogate := term.Object(e)

	var transition *term.Term
	var boundary boundaryFact

	switch t.Kind() {
	case term.KindTomorrow:
		transition = term.Equal(surrogate, term.Tomorrow(inner))
		boundary = boundaryFact{consumer.StateFinal, term.Boolean(false)}
	case term.KindWTomorrow:
		transition = term.Equal(surrogate, term.Tomorrow(inner))
		boundary = boundaryFact{consumer.StateFinal, term.Boolean(true)}
	case term.KindEventually:
		transition = term.Equal(surrogate, term.Disjunction(inner, term.Tomorrow(surrogate)))
		boundary = boundaryFact{consumer.StateFinal, inner}
	case term.KindAlways:
		transition = term.Equal(surrogate, term.Conjunction(inner, term.Tomorrow(surrogate)))
		boundary = boundaryFact{consumer.StateFinal, inner}
	case term.KindYesterday:
		transition = term.Equal(surrogate, term.Yesterday(inner))
		boundary = boundaryFact{consumer.StateInit, term.Boolean(false)}
	case term.KindWYesterday:
		transition = term.Equal(surrogate, term.Yesterday(inner))
		boundary = boundaryFact{consumer.StateInit, term.Boolean(true)}
	case term.KindOnce:
		transition = term.Equal(surrogate, term.Disjunction(inner, term.Yesterday(surrogate)))
		boundary = boundaryFact{consumer.StateInit, inner}
	case term.KindHistorically:
		transition = term.Equal(surrogate, term.Conjunction(inner, term.Yesterday(surrogate)))
		boundary = boundaryFact{consumer.StateInit, inner}
	}

	if err := s.next.State(consumer.StateTransition, transition); err != nil {
		return nil, err
	}
	if err := s.next.State(boundary.kind, term.Equal(surrogate, boundary.value)); err != nil {
		return nil, err
	}

	s.cache[t] = surrogate
	return surrogate, nil
}

func (s *surrogateConsumer) encodeBinaryTemporal(t *term.Term) (*term.Term, error) {
	l, err := s.encode(t.Left())
	if err != nil {
		return nil, err
	}
	r, err := s.encode(t.Right())
	if err != nil {
		return nil, err
	}
	e, err := s.fresh()
	if err != nil {
		return nil, err
	}
	surrogate := term.Object(e)

	var transition, boundary *term.Term
	var boundaryKind consumer.StateKind
	switch t.Kind() {
	case term.KindUntil:
		transition = term.Equal(surrogate, term.Disjunction(r, term.Conjunction(l, term.Tomorrow(surrogate))))
		boundary, boundaryKind = r, consumer.StateFinal
	case term.KindRelease:
		transition = term.Equal(surrogate, term.Conjunction(r, term.Disjunction(l, term.Tomorrow(surrogate))))
		boundary, boundaryKind = r, consumer.StateFinal
	case term.KindSince:
		transition = term.Equal(surrogate, term.Disjunction(r, term.Conjunction(l, term.Yesterday(surrogate))))
		boundary, boundaryKind = r, consumer.StateInit
	case term.KindTriggered:
		transition = term.Equal(surrogate, term.Conjunction(r, term.Disjunction(l, term.Yesterday(surrogate))))
		boundary, boundaryKind = r, consumer.StateInit
	}

	if err := s.next.State(consumer.StateTransition, transition); err != nil {
		return nil, err
	}
	if err := s.next.State(boundaryKind, term.Equal(surrogate, boundary)); err != nil {
		return nil, err
	}

	s.cache[t] = surrogate
	return surrogate, nil
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
