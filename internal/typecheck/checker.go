// Package typecheck implements BLACK's type_of function (spec.md §4.3): a
// small, total, syntax-directed checker over term.Term, producing
// types.Type. It is its own package — rather than living in internal/types
// alongside the Type AST, the way the teacher's type checker lives in
// internal/types alongside its Type representation — because here the
// dependency runs the other way: internal/term already holds *types.Type
// fields (Decl.Type, Entity.Type), so internal/types must stay free of any
// term import to avoid a cycle. typecheck depends on both and contains only
// the checking logic, never the AST itself.
package typecheck

import (
	"fmt"

	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/label"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
)

// env maps a bound variable's label key to its declared type, extended when
// descending into a quantifier or lambda body (spec.md §4.3).
type env map[string]*types.Type

// TypeOf computes the type of t against the package-level default Type
// pool. It is total: every Term, including ill-formed ones, yields some
// Type — ill-typed subterms yield types.KindError rather than a panic or a
// Go error, per spec.md §7's "type errors are data, not control flow".
func TypeOf(t *term.Term) *types.Type {
	return typeOf(t, env{}, types.Default())
}

// TypeOfIn is TypeOf against an explicit Type pool, for callers that keep
// their own pool so that types
// constructed during resolution and types constructed during checking are
// the same canonical instances.
func TypeOfIn(t *term.Term, pool *types.Pool) *types.Type {
	return typeOf(t, env{}, pool)
}

// TypeOfWithVars is TypeOf with the free-variable environment pre-populated
// from vars (a label key -> declared Type map), for checking a mode=allowed
// root's mutually-recursive definitions (spec.md §3.5): a body there may
// reference a sibling entity's label before that sibling has a Value, only
// a Type already on record from its own Declare/Define.
func TypeOfWithVars(t *term.Term, vars map[string]*types.Type) *types.Type {
	return typeOf(t, env(vars), types.Default())
}

func typeOf(t *term.Term, e env, pool *types.Pool) *types.Type {
	if t == nil {
		return pool.Error(nil, "nil term")
	}

	switch t.Kind() {
	case term.KindInteger:
		return pool.Integer()
	case term.KindReal:
		return pool.Real()
	case term.KindBoolean:
		return pool.Boolean()

	case term.KindVariable:
		if ty, ok := e[t.Label().Key()]; ok {
			return ty
		}
		return pool.Error(nil, fmt.Sprintf("unbound free variable %s", t.Label()))

	case term.KindObject:
		if t.Entity().Type == nil {
			return pool.Error(nil, fmt.Sprintf("entity %s has no declared type", t.Entity().Name))
		}
		return t.Entity().Type

	case term.KindEqual, term.KindDistinct:
		return checkSameType(t.Args(), e, pool, t.Kind().String())

	case term.KindAtom:
		return checkAtom(t, e, pool)

	case term.KindNegation:
		return checkUnary(t.Operand(), e, pool, pool.Boolean())

	case term.KindConjunction, term.KindDisjunction:
		return checkAllBoolean(t.Args(), e, pool)

	case term.KindImplication:
		return checkBinary(t.Left(), t.Right(), e, pool, pool.Boolean(), pool.Boolean())

	case term.KindIte:
		return checkIte(t, e, pool)

	case term.KindForall, term.KindExists:
		return checkQuantifier(t, e, pool)

	case term.KindLambda:
		return checkLambda(t, e, pool)

	case term.KindTomorrow, term.KindWTomorrow, term.KindEventually, term.KindAlways,
		term.KindYesterday, term.KindWYesterday, term.KindOnce, term.KindHistorically:
		return checkUnary(t.Operand(), e, pool, pool.Boolean())

	case term.KindUntil, term.KindRelease, term.KindSince, term.KindTriggered:
		return checkBinary(t.Left(), t.Right(), e, pool, pool.Boolean(), pool.Boolean())

	case term.KindMinus:
		return checkArithUnary(t.Operand(), e, pool)

	case term.KindSum, term.KindProduct:
		return checkArithNary(t.Args(), e, pool)

	case term.KindDifference, term.KindDivision:
		return checkArithBinary(t.Left(), t.Right(), e, pool)

	case term.KindLessThan, term.KindLessThanEq, term.KindGreaterThan, term.KindGreaterThanEq:
		lt, rt := typeOf(t.Left(), e, pool), typeOf(t.Right(), e, pool)
		if lt.IsError() {
			return lt
		}
		if rt.IsError() {
			return rt
		}
		if !isNumeric(lt) || !isNumeric(rt) {
			return pool.Error(lt, fmt.Sprintf("%s expects numeric operands, got %s and %s", t.Kind(), lt, rt))
		}
		return pool.Boolean()

	case term.KindError:
		// An Error term is already the checker's own output re-injected into
		// the AST (spec.md §3.2); it types to itself.
		return pool.Error(nil, t.Message())

	default:
		return pool.Error(nil, fmt.Sprintf("type_of: unhandled term kind %s", t.Kind()))
	}
}

func checkUnary(operand *term.Term, e env, pool *types.Pool, want *types.Type) *types.Type {
	ot := typeOf(operand, e, pool)
	if ot.IsError() {
		return ot
	}
	if ot != want {
		return pool.Error(want, fmt.Sprintf("expected %s, got %s", want, ot))
	}
	return want
}

func checkBinary(l, r *term.Term, e env, pool *types.Pool, wantL, wantR *types.Type) *types.Type {
	lt := typeOf(l, e, pool)
	if lt.IsError() {
		return lt
	}
	rt := typeOf(r, e, pool)
	if rt.IsError() {
		return rt
	}
	if lt != wantL {
		return pool.Error(wantL, fmt.Sprintf("expected %s, got %s", wantL, lt))
	}
	if rt != wantR {
		return pool.Error(wantR, fmt.Sprintf("expected %s, got %s", wantR, rt))
	}
	return pool.Boolean()
}

func checkAllBoolean(args []*term.Term, e env, pool *types.Pool) *types.Type {
	for _, a := range args {
		at := typeOf(a, e, pool)
		if at.IsError() {
			return at
		}
		if at != pool.Boolean() {
			return pool.Error(pool.Boolean(), fmt.Sprintf("expected Bool, got %s", at))
		}
	}
	return pool.Boolean()
}

func checkSameType(args []*term.Term, e env, pool *types.Pool, op string) *types.Type {
	if len(args) == 0 {
		return pool.Error(nil, fmt.Sprintf("%s requires at least one argument", op))
	}
	first := typeOf(args[0], e, pool)
	if first.IsError() {
		return first
	}
	for _, a := range args[1:] {
		at := typeOf(a, e, pool)
		if at.IsError() {
			return at
		}
		if at != first {
			return pool.Error(first, fmt.Sprintf("%s: mismatched operand types %s and %s", op, first, at))
		}
	}
	return pool.Boolean()
}

func checkArithUnary(operand *term.Term, e env, pool *types.Pool) *types.Type {
	ot := typeOf(operand, e, pool)
	if ot.IsError() {
		return ot
	}
	if !isNumeric(ot) {
		return pool.Error(ot, fmt.Sprintf("expected numeric operand, got %s", ot))
	}
	return ot
}

func checkArithBinary(l, r *term.Term, e env, pool *types.Pool) *types.Type {
	lt := typeOf(l, e, pool)
	if lt.IsError() {
		return lt
	}
	rt := typeOf(r, e, pool)
	if rt.IsError() {
		return rt
	}
	return arithResult(lt, rt, pool)
}

func checkArithNary(args []*term.Term, e env, pool *types.Pool) *types.Type {
	if len(args) == 0 {
		return pool.Integer()
	}
	result := typeOf(args[0], e, pool)
	if result.IsError() {
		return result
	}
	if !isNumeric(result) {
		return pool.Error(result, fmt.Sprintf("expected numeric operand, got %s", result))
	}
	for _, a := range args[1:] {
		at := typeOf(a, e, pool)
		if at.IsError() {
			return at
		}
		result = arithResult(result, at, pool)
		if result.IsError() {
			return result
		}
	}
	return result
}

// arithResult applies the usual Int/Real promotion: two Ints stay Int, any
// Real operand makes the result Real.
func arithResult(l, r *types.Type, pool *types.Pool) *types.Type {
	if !isNumeric(l) {
		return pool.Error(l, fmt.Sprintf("expected numeric operand, got %s", l))
	}
	if !isNumeric(r) {
		return pool.Error(r, fmt.Sprintf("expected numeric operand, got %s", r))
	}
	if l == pool.Real() || r == pool.Real() {
		return pool.Real()
	}
	return pool.Integer()
}

func isNumeric(t *types.Type) bool {
	return t.Kind() == types.KindInteger || t.Kind() == types.KindReal
}

func checkAtom(t *term.Term, e env, pool *types.Pool) *types.Type {
	headType := typeOf(t.Head(), e, pool)
	if headType.IsError() {
		return headType
	}
	if headType.Kind() != types.KindFunction {
		return pool.Error(pool.Boolean(), fmt.Sprintf("%s is not applicable", t.Head()))
	}
	params := headType.Params()
	args := t.Args()
	if len(params) != len(args) {
		return pool.Error(headType.Range(), fmt.Sprintf("expected %d argument(s), got %d", len(params), len(args)))
	}
	for i, a := range args {
		at := typeOf(a, e, pool)
		if at.IsError() {
			return at
		}
		if at != params[i] {
			return pool.Error(params[i], fmt.Sprintf("argument %d: expected %s, got %s", i+1, params[i], at))
		}
	}
	return headType.Range()
}

func checkIte(t *term.Term, e env, pool *types.Pool) *types.Type {
	gt := typeOf(t.Guard(), e, pool)
	if gt.IsError() {
		return gt
	}
	if gt != pool.Boolean() {
		return pool.Error(pool.Boolean(), fmt.Sprintf("ite guard: expected Bool, got %s", gt))
	}
	thenType := typeOf(t.Then(), e, pool)
	if thenType.IsError() {
		return thenType
	}
	elseType := typeOf(t.Else(), e, pool)
	if elseType.IsError() {
		return elseType
	}
	if thenType != elseType {
		return pool.Error(thenType, fmt.Sprintf("ite branches disagree: %s vs %s", thenType, elseType))
	}
	return thenType
}

func checkQuantifier(t *term.Term, e env, pool *types.Pool) *types.Type {
	inner := extend(e, t.Decls())
	bodyType := typeOf(t.Body(), inner, pool)
	if bodyType.IsError() {
		return bodyType
	}
	if bodyType != pool.Boolean() {
		return pool.Error(pool.Boolean(), fmt.Sprintf("quantifier body: expected Bool, got %s", bodyType))
	}
	return pool.Boolean()
}

func checkLambda(t *term.Term, e env, pool *types.Pool) *types.Type {
	inner := extend(e, t.Decls())
	bodyType := typeOf(t.Body(), inner, pool)
	if bodyType.IsError() {
		return bodyType
	}
	return pool.Function(term.DeclTypes(t.Decls()), bodyType)
}

func extend(e env, decls []term.Decl) env {
	next := make(env, len(e)+len(decls))
	for k, v := range e {
		next[k] = v
	}
	for _, d := range decls {
		next[d.Name.Key()] = d.Type
	}
	return next
}

// Diagnose converts a type_of result into an *errors.Diagnostic when it is
// the Error variant, or nil otherwise — the bridge between "type errors are
// data" (spec.md §7) and the structured diagnostic codes callers at the
// module/pipeline boundary report through.
func Diagnose(ty *types.Type, subject label.Label) error {
	if ty == nil || !ty.IsError() {
		return nil
	}
	return errors.Wrap(errors.New("typecheck", "AST001", ty.ErrorMessage(), map[string]any{
		"subject": subject.String(),
	}))
}
